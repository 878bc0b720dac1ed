package mkvio

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidVint            = errors.New("invalid variable-length integer")
	ErrUnsupportedIDLength    = errors.New("element id longer than 4 bytes")
	ErrUnsupportedFloatSize   = errors.New("float size must be 0, 4 or 8 bytes")
	ErrUnsupportedDateSize    = errors.New("date size must be 8 bytes")
	ErrUnsupportedIntegerSize = errors.New("integer size larger than 8 bytes")
	ErrInvalidUTF8            = errors.New("invalid utf-8 string")
	ErrUnexpectedEOF          = errors.New("unexpected end of stream")
)

// ParseError reports which decode failed and where.
// Offset is -1 when the byte source does not report a position.
type ParseError struct {
	Op     string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("mkvio: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("mkvio: %s at %d: %v", e.Op, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type positioner interface {
	Pos() int64
}

func parseErr(op string, r io.Reader, err error) error {
	var offset int64 = -1
	if p, ok := r.(positioner); ok {
		offset = p.Pos()
	}
	return &ParseError{Op: op, Offset: offset, Err: err}
}

// readFull fills b or fails with ErrUnexpectedEOF on a short read.
func readFull(op string, r io.Reader, b []byte) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrUnexpectedEOF
		}
		return parseErr(op, r, err)
	}
	return nil
}
