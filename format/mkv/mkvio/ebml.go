package mkvio

import (
	"fmt"
	"io"
)

// Document is a positioned EBML byte source.
// It never buffers beyond the bytes requested by a single read.
type Document struct {
	r   io.Reader
	pos int64
}

// InitDocument wraps r. It does not do any parsing.
func InitDocument(r io.Reader) *Document {
	doc := new(Document)
	doc.r = r

	return doc
}

func (doc *Document) Read(b []byte) (int, error) {
	n, err := doc.r.Read(b)
	doc.pos += int64(n)
	return n, err
}

// Pos returns the number of bytes consumed so far.
func (doc *Document) Pos() int64 {
	return doc.pos
}

// Skip discards the next n bytes.
func (doc *Document) Skip(n uint64) error {
	m, err := io.CopyN(io.Discard, doc, int64(n))
	if err == io.EOF || (err == nil && uint64(m) < n) {
		return &ParseError{Op: "skip", Offset: doc.pos, Err: ErrUnexpectedEOF}
	}
	return err
}

// Size is a decoded element size. The zero value is a known size of 0.
type Size struct {
	n       uint64
	unknown bool
}

// UnknownSize returns the reserved "size not declared" value.
func UnknownSize() Size {
	return Size{unknown: true}
}

// KnownSize returns a declared size of n bytes.
func KnownSize(n uint64) Size {
	return Size{n: n}
}

func (s Size) Known() bool {
	return !s.unknown
}

// Value returns the declared size, ok is false for UnknownSize.
func (s Size) Value() (n uint64, ok bool) {
	return s.n, !s.unknown
}

func (s Size) String() string {
	if s.unknown {
		return "unknown"
	}
	return fmt.Sprintf("%d", s.n)
}
