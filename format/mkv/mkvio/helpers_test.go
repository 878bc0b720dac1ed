package mkvio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// encodeVint writes v as a length-byte vint with the marker set.
func encodeVint(v uint64, length int) []byte {
	b := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	b[0] |= 0x80 >> (length - 1)
	return b
}

func minimalLength(v uint64) int {
	for l := 1; l < 8; l++ {
		if v <= MaxElementSize(l) {
			return l
		}
	}
	return 8
}

func float32Bytes(f float32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, math.Float32bits(f))
	return b
}

func float64Bytes(f float64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(f))
	return b
}

func int64Bytes(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func doc(b ...byte) *Document {
	return InitDocument(bytes.NewReader(b))
}
