package fmp4io

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"

	"github.com/deepch/ebml/format/fmp4/timescale"
)

const SIDX = Tag(0x73696478)

var ErrNoSegmentIndex = errors.New("fmp4io: no sidx box")

type SegmentIndex struct {
	FullAtom
	ReferenceID uint32
	TimeScale   uint32
	EarliestPTS uint64
	FirstOffset uint64
	References  []SegmentReference
}

type SegmentReference struct {
	ReferencesBox      bool
	ReferencedSize     uint32
	SubsegmentDuration uint32
	StartsWithSAP      bool
	SAPType            uint8
	SAPDeltaTime       uint32
}

// Duration converts the subsegment duration from the index timescale.
func (r SegmentReference) Duration(scale uint32) time.Duration {
	return timescale.ToDuration(uint64(r.SubsegmentDuration), scale)
}

func (s SegmentIndex) Tag() Tag {
	return SIDX
}

func (s *SegmentIndex) Unmarshal(b []byte, offset int) (n int, err error) {
	n, err = s.FullAtom.unmarshalAtom(b, offset)
	if err != nil {
		return
	}
	if len(b) < n+8 {
		return 0, parseErr("ReferenceID", n+offset, nil)
	}
	s.ReferenceID = binary.BigEndian.Uint32(b[n:])
	n += 4
	s.TimeScale = binary.BigEndian.Uint32(b[n:])
	n += 4
	if s.Version == 0 {
		if len(b) < n+8 {
			return 0, parseErr("EarliestPTS", n+offset, nil)
		}
		s.EarliestPTS = uint64(binary.BigEndian.Uint32(b[n:]))
		n += 4
		s.FirstOffset = uint64(binary.BigEndian.Uint32(b[n:]))
		n += 4
	} else {
		if len(b) < n+16 {
			return 0, parseErr("EarliestPTS", n+offset, nil)
		}
		s.EarliestPTS = binary.BigEndian.Uint64(b[n:])
		n += 8
		s.FirstOffset = binary.BigEndian.Uint64(b[n:])
		n += 8
	}
	if len(b) < n+4 {
		return 0, parseErr("ReferenceCount", n+offset, nil)
	}
	n += 2
	refCount := int(binary.BigEndian.Uint16(b[n:]))
	n += 2
	if len(b) < n+(12*refCount) {
		return 0, parseErr("SegmentReference", n+offset, nil)
	}
	s.References = make([]SegmentReference, refCount)
	for i := range s.References {
		ref := &s.References[i]
		refSize := binary.BigEndian.Uint32(b[n:])
		n += 4
		ref.ReferencesBox = refSize&(1<<31) != 0
		ref.ReferencedSize = refSize & (1<<31 - 1)
		ref.SubsegmentDuration = binary.BigEndian.Uint32(b[n:])
		n += 4
		sap := binary.BigEndian.Uint32(b[n:])
		n += 4
		ref.StartsWithSAP = sap&(1<<31) != 0
		ref.SAPType = uint8(0x7 & (sap >> 28))
		ref.SAPDeltaTime = sap & (1<<28 - 1)
	}
	return
}

// FindSegmentIndex locates the first sidx box in data by its tag and decodes it.
func FindSegmentIndex(data []byte) (*SegmentIndex, error) {
	tag := []byte("sidx")

	for from := 0; ; {
		i := bytes.Index(data[from:], tag)
		if i < 0 {
			return nil, ErrNoSegmentIndex
		}
		i += from
		if i >= 4 {
			start := i - 4
			b := data[start:]
			if size := int(binary.BigEndian.Uint32(b)); size >= 8 && size <= len(b) {
				b = b[:size]
			}
			s := &SegmentIndex{}
			if _, err := s.Unmarshal(b, start); err != nil {
				return nil, parseErr("sidx", start, err)
			}
			return s, nil
		}
		from = i + 1
	}
}
