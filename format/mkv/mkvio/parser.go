package mkvio

import (
	"io"
)

// ReadElementID reads an element id starting at the reader's current position.
// The length marker bits are part of the id.
func ReadElementID(r io.Reader) (id uint32, length int, err error) {
	var b [4]byte

	if err = readFull("element id", r, b[:1]); err != nil {
		return 0, 0, err
	}

	length, _, err = DecodeVintLength(b[0], false)
	if err != nil {
		return 0, 0, parseErr("element id", r, err)
	}
	if length > 4 {
		return 0, 0, parseErr("element id", r, ErrUnsupportedIDLength)
	}

	if length > 1 {
		if err = readFull("element id", r, b[1:length]); err != nil {
			return 0, 0, err
		}
	}

	return uint32(pack(0, b[:length])), length, nil
}

// ReadElementSize reads an element size starting at the reader's current position.
// The reserved all-ones value decodes to UnknownSize.
func ReadElementSize(r io.Reader) (size Size, length int, err error) {
	var b [8]byte

	if err = readFull("element size", r, b[:1]); err != nil {
		return Size{}, 0, err
	}

	length, first, err := DecodeVintLength(b[0], true)
	if err != nil {
		return Size{}, 0, parseErr("element size", r, err)
	}

	if length > 1 {
		if err = readFull("element size", r, b[1:length]); err != nil {
			return Size{}, 0, err
		}
	}

	v := pack(uint64(first), b[1:length])
	if v == MaxElementSize(length)+1 {
		return UnknownSize(), length, nil
	}

	return KnownSize(v), length, nil
}
