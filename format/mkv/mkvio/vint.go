package mkvio

// DecodeVintLength classifies the leading byte of a variable-length integer.
// length is the 1-based position of the highest set bit. When mask is set the
// length marker is cleared from value, otherwise b is returned as is.
func DecodeVintLength(b byte, mask bool) (length int, value byte, err error) {
	for n := 1; n <= 8; n++ {
		marker := byte(0x80) >> (n - 1)
		if b&marker == 0 {
			continue
		}
		if mask {
			return n, b & (marker - 1), nil
		}
		return n, b, nil
	}

	return 0, 0, ErrInvalidVint
}

// MaxElementSize returns the largest size representable in a size vint of
// the given length. The next value up is the unknown size sentinel.
func MaxElementSize(length int) uint64 {
	return 1<<(7*uint(length)) - 2
}
