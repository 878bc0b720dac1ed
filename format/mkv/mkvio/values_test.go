package mkvio

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUnsignedInteger(t *testing.T) {
	values := []struct {
		B []byte
		V uint64
	}{
		{nil, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x01, 0x02}, 258},
		{[]byte{0x0f, 0x42, 0x40}, 1000000},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 1<<64 - 1},
	}
	for _, ex := range values {
		n, err := ReadUnsignedInteger(bytes.NewReader(ex.B), uint64(len(ex.B)))
		if err != nil || n != ex.V {
			t.Errorf("% x: expected %d, got %d (%v)", ex.B, ex.V, n, err)
		}
	}
}

func TestReadSignedInteger(t *testing.T) {
	values := []struct {
		B []byte
		V int64
	}{
		{nil, 0},
		{[]byte{0x80}, -128},
		{[]byte{0x7f}, 127},
		{[]byte{0x00}, 0},
		{[]byte{0xff, 0xff}, -1},
		{[]byte{0xff, 0x38}, -200},
		{[]byte{0x01, 0x00}, 256},
		{[]byte{0x80, 0x00, 0x00}, -(1 << 23)},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe}, -2},
		{[]byte{0x80, 0, 0, 0, 0, 0, 0, 0}, -1 << 63},
		{[]byte{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 1<<63 - 1},
	}
	for _, ex := range values {
		n, err := ReadSignedInteger(bytes.NewReader(ex.B), uint64(len(ex.B)))
		if err != nil || n != ex.V {
			t.Errorf("% x: expected %d, got %d (%v)", ex.B, ex.V, n, err)
		}
	}
}

func TestReadIntegerErrors(t *testing.T) {
	_, err := ReadUnsignedInteger(bytes.NewReader(make([]byte, 9)), 9)
	assert.ErrorIs(t, err, ErrUnsupportedIntegerSize)

	_, err = ReadSignedInteger(bytes.NewReader(make([]byte, 9)), 9)
	assert.ErrorIs(t, err, ErrUnsupportedIntegerSize)

	_, err = ReadUnsignedInteger(bytes.NewReader([]byte{1, 2}), 3)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, err = ReadSignedInteger(bytes.NewReader([]byte{0xff}), 2)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadFloat(t *testing.T) {
	f, err := ReadFloat(bytes.NewReader(nil), 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)

	f, err = ReadFloat(bytes.NewReader(float32Bytes(1.5)), 4)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	f, err = ReadFloat(bytes.NewReader(float64Bytes(-1234.5678)), 8)
	require.NoError(t, err)
	assert.Equal(t, -1234.5678, f)

	for _, size := range []uint64{1, 2, 3, 5, 6, 7, 9, 16} {
		_, err = ReadFloat(bytes.NewReader(make([]byte, 16)), size)
		assert.ErrorIs(t, err, ErrUnsupportedFloatSize, "size %d", size)
	}

	_, err = ReadFloat(bytes.NewReader([]byte{0x3f, 0xc0}), 4)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadString(t *testing.T) {
	s, err := ReadString(bytes.NewReader([]byte("AB\x00CD")), 5)
	require.NoError(t, err)
	assert.Equal(t, "AB", s)

	s, err = ReadString(bytes.NewReader([]byte("webm")), 4)
	require.NoError(t, err)
	assert.Equal(t, "webm", s)

	s, err = ReadString(bytes.NewReader(nil), 0)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	// the bytes after the NUL are still consumed
	d := doc('A', 0, 'C', 'D', 'E')
	_, err = ReadString(d, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 4, d.Pos())

	_, err = ReadString(bytes.NewReader([]byte("abc")), 4)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadUnicodeString(t *testing.T) {
	s, ok, err := ReadUnicodeString(bytes.NewReader([]byte("AB\x00CD")), 5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AB\x00CD", s)

	s, ok, err = ReadUnicodeString(bytes.NewReader([]byte("héllo")), 6)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "héllo", s)

	d := doc('x')
	s, ok, err = ReadUnicodeString(d, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", s)
	assert.EqualValues(t, 0, d.Pos())

	_, _, err = ReadUnicodeString(bytes.NewReader([]byte{0xc3, 0x28}), 2)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, _, err = ReadUnicodeString(bytes.NewReader([]byte("ab")), 3)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadDate(t *testing.T) {
	values := []struct {
		NS int64
		T  time.Time
	}{
		{0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)},
		{86400000000000, time.Date(2001, 1, 2, 0, 0, 0, 0, time.UTC)},
		{1999, time.Date(2001, 1, 1, 0, 0, 0, 1000, time.UTC)},
		{-1, time.Date(2000, 12, 31, 23, 59, 59, 999999000, time.UTC)},
		{-86400000000000, time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC)},
		{-1 << 63, time.Date(1708, 9, 22, 0, 12, 43, 145224000, time.UTC)},
	}
	if epochUnix != time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC).Unix() {
		t.Fatalf("epoch: expected %d, got %d", time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC).Unix(), epochUnix)
	}
	for _, ex := range values {
		d, err := ReadDate(bytes.NewReader(int64Bytes(ex.NS)), 8)
		if err != nil || !d.Equal(ex.T) {
			t.Errorf("%d: expected %s, got %s (%v)", ex.NS, ex.T, d, err)
		}
	}
}

func TestReadDateErrors(t *testing.T) {
	for _, size := range []uint64{0, 4, 7, 9} {
		_, err := ReadDate(bytes.NewReader(make([]byte, 16)), size)
		assert.ErrorIs(t, err, ErrUnsupportedDateSize, "size %d", size)
	}

	_, err := ReadDate(bytes.NewReader(make([]byte, 7)), 8)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}
