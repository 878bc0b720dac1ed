package fmp4io

import (
	"encoding/binary"
)

type Tag uint32

func (a Tag) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(a))
	for i := 0; i < 4; i++ {
		if b[i] == 0 {
			b[i] = ' '
		}
	}
	return string(b[:])
}

func StringToTag(tag string) Tag {
	var b [4]byte
	copy(b[:], []byte(tag))
	return Tag(binary.BigEndian.Uint32(b[:]))
}

type AtomPos struct {
	Offset int
	Size   int
}

func (a AtomPos) Pos() (int, int) {
	return a.Offset, a.Size
}

func (a *AtomPos) setPos(offset int, size int) {
	a.Offset, a.Size = offset, size
}

type FullAtom struct {
	Version uint8
	Flags   uint32
	AtomPos
}

// unmarshalAtom reads the box header, version and flags.
// b starts at the box size field.
func (f *FullAtom) unmarshalAtom(b []byte, offset int) (n int, err error) {
	f.AtomPos.setPos(offset, len(b))
	n = 8
	if len(b) < n+4 {
		return 0, parseErr("fullAtom", offset, nil)
	}
	f.Version = b[n]
	f.Flags = uint32(b[n+1])<<16 | uint32(b[n+2])<<8 | uint32(b[n+3])
	n += 4
	return
}
