package mkvio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"time"
	"unicode/utf8"
)

// epochUnix is 2001-01-01T00:00:00Z, the reference instant of EBML dates.
const epochUnix = 978307200

// ReadUnsignedInteger decodes a big-endian unsigned integer of size bytes.
func ReadUnsignedInteger(r io.Reader, size uint64) (uint64, error) {
	if size > 8 {
		return 0, parseErr("unsigned integer", r, ErrUnsupportedIntegerSize)
	}

	var b [8]byte
	if err := readFull("unsigned integer", r, b[:size]); err != nil {
		return 0, err
	}

	return pack(0, b[:size]), nil
}

// ReadSignedInteger decodes a big-endian two's complement integer of size bytes.
func ReadSignedInteger(r io.Reader, size uint64) (int64, error) {
	if size > 8 {
		return 0, parseErr("signed integer", r, ErrUnsupportedIntegerSize)
	}
	if size == 0 {
		return 0, nil
	}

	var b [8]byte
	if err := readFull("signed integer", r, b[:size]); err != nil {
		return 0, err
	}

	v := pack(0, b[:size])
	if size < 8 && b[0]&0x80 != 0 {
		return int64(v) - int64(1)<<(8*size), nil
	}

	return int64(v), nil
}

// ReadFloat decodes a big-endian IEEE-754 value of 0, 4 or 8 bytes.
func ReadFloat(r io.Reader, size uint64) (float64, error) {
	var b [8]byte

	switch size {
	case 0:
		return 0, nil
	case 4:
		if err := readFull("float", r, b[:4]); err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b[:4]))), nil
	case 8:
		if err := readFull("float", r, b[:]); err != nil {
			return 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b[:])), nil
	}

	return 0, parseErr("float", r, ErrUnsupportedFloatSize)
}

// ReadString decodes an ASCII string of size bytes, cut at the first NUL.
func ReadString(r io.Reader, size uint64) (string, error) {
	if size == 0 {
		return "", nil
	}

	b, err := readBytes("string", r, size)
	if err != nil {
		return "", err
	}

	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b), nil
}

// ReadUnicodeString decodes a UTF-8 string of size bytes.
// A zero size reads nothing and produces no value: ok is false.
// NUL bytes are kept.
func ReadUnicodeString(r io.Reader, size uint64) (s string, ok bool, err error) {
	if size == 0 {
		return "", false, nil
	}

	b, err := readBytes("unicode string", r, size)
	if err != nil {
		return "", false, err
	}

	if !utf8.Valid(b) {
		return "", false, parseErr("unicode string", r, ErrInvalidUTF8)
	}

	return string(b), true, nil
}

// ReadDate decodes an 8-byte signed nanosecond offset from 2001-01-01T00:00:00 UTC.
// Precision below one microsecond is floored away.
func ReadDate(r io.Reader, size uint64) (time.Time, error) {
	if size != 8 {
		return time.Time{}, parseErr("date", r, ErrUnsupportedDateSize)
	}

	var b [8]byte
	if err := readFull("date", r, b[:]); err != nil {
		return time.Time{}, err
	}

	us := floorDiv(int64(binary.BigEndian.Uint64(b[:])), 1000)
	sec := floorDiv(us, 1000000)

	return time.Unix(epochUnix+sec, (us-sec*1000000)*1000).UTC(), nil
}

// readBytes reads exactly size bytes. The buffer grows with the data
// actually read rather than with the declared size.
func readBytes(op string, r io.Reader, size uint64) ([]byte, error) {
	if size > math.MaxInt64 {
		return nil, parseErr(op, r, ErrUnexpectedEOF)
	}

	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, int64(size))
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, parseErr(op, r, err)
	}
	if uint64(n) < size {
		return nil, parseErr(op, r, ErrUnexpectedEOF)
	}

	return buf.Bytes(), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
