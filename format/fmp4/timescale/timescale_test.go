package timescale

import (
	"testing"
	"time"
)

func TestToDuration(t *testing.T) {
	values := []struct {
		V     uint64
		Scale uint32
		T     time.Duration
	}{
		{0, 90000, 0},
		{1500, 90000, 16666667},
		{90000, 90000, time.Second},
		{1, 3, 333333333},
		{2, 3, 666666667},
		{48000, 48000, time.Second},
		{1024, 44100, 23219955},
		{90000 * (1 << 32), 90000, time.Second * (1 << 32)},
		{1000, 0, 0},
		{1 << 63, 1, time.Duration(1<<63 - 1)},
	}
	for _, ex := range values {
		d := ToDuration(ex.V, ex.Scale)
		if d != ex.T {
			t.Errorf("%d/%d: expected %d (%s), got %d (%s)", ex.V, ex.Scale, ex.T, ex.T, d, d)
		}
	}
}
