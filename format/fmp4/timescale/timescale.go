package timescale

import (
	"math/bits"
	"time"
)

// ToDuration converts a value in the given timescale to a time.Duration,
// rounding to the nearest nanosecond. A zero scale yields 0.
func ToDuration(v uint64, scale uint32) time.Duration {
	if scale == 0 {
		return 0
	}
	hi, lo := bits.Mul64(v, uint64(time.Second))
	if hi >= uint64(scale) {
		// does not fit in 64 bits
		return time.Duration(1<<63 - 1)
	}
	d, rem := bits.Div64(hi, lo, uint64(scale))
	if rem >= (uint64(scale)+1)/2 {
		// round up
		d++
	}
	if d > 1<<63-1 {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(d)
}
