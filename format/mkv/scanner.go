package mkv

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/deepch/ebml/format/mkv/mkvio"
)

var (
	ErrUnknownSize  = errors.New("mkv: unknown size on a non-master element")
	ErrInvalidBlock = errors.New("mkv: invalid block header")
	ErrOverrun      = errors.New("mkv: child element overruns its parent")
	ErrNoCluster    = errors.New("mkv: no cluster found")
)

type Header struct {
	EBMLVersion        uint64 `json:"ebml_version"`
	EBMLReadVersion    uint64 `json:"ebml_read_version"`
	MaxIDLength        uint64 `json:"max_id_length"`
	MaxSizeLength      uint64 `json:"max_size_length"`
	DocType            string `json:"doc_type"`
	DocTypeVersion     uint64 `json:"doc_type_version"`
	DocTypeReadVersion uint64 `json:"doc_type_read_version"`
}

type Info struct {
	TimecodeScale uint64    `json:"timecode_scale"`
	Duration      float64   `json:"duration"`
	DateUTC       time.Time `json:"date_utc"`
	Title         string    `json:"title,omitempty"`
	MuxingApp     string    `json:"muxing_app,omitempty"`
	WritingApp    string    `json:"writing_app,omitempty"`
}

// Block is a SimpleBlock or a Block inside a BlockGroup.
// Offset is where the element header starts, End is just past its data.
// A grouped Block is a keyframe when its group has no ReferenceBlock.
type Block struct {
	Index           int    `json:"index"`
	Offset          int64  `json:"offset"`
	End             int64  `json:"end"`
	Size            uint64 `json:"size"`
	Track           uint64 `json:"track"`
	ClusterTimecode uint64 `json:"cluster_timecode"`
	Timecode        int64  `json:"timecode"`
	Keyframe        bool   `json:"keyframe"`
	Simple          bool   `json:"simple"`
}

// Report is the result of ScanWebM. FirstCluster is the offset of the
// first Cluster element, -1 when none was seen.
type Report struct {
	Header       *Header `json:"header,omitempty"`
	Info         *Info   `json:"info,omitempty"`
	Clusters     int     `json:"clusters"`
	FirstCluster int64   `json:"first_cluster"`
	Blocks       []Block `json:"blocks"`
}

func idSet(ids ...uint32) func(uint32) bool {
	set := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id uint32) bool { return set[id] }
}

var (
	headerChild = idSet(
		mkvio.ElementEBMLVersion, mkvio.ElementEBMLReadVersion,
		mkvio.ElementEBMLMaxIDLength, mkvio.ElementEBMLMaxSizeLength,
		mkvio.ElementDocType, mkvio.ElementDocTypeVersion, mkvio.ElementDocTypeReadVersion,
		mkvio.ElementVoid, mkvio.ElementCRC32,
	)
	infoChild = idSet(
		mkvio.ElementTimecodeScale, mkvio.ElementDuration, mkvio.ElementDateUTC,
		mkvio.ElementTitle, mkvio.ElementMuxingApp, mkvio.ElementWritingApp,
		mkvio.ElementSegmentUID, mkvio.ElementSegmentFile,
		mkvio.ElementPrevUID, mkvio.ElementPrevFilename,
		mkvio.ElementNextUID, mkvio.ElementNextFilename,
		mkvio.ElementSegmentFamily, mkvio.ElementChapterTrans,
		mkvio.ElementVoid, mkvio.ElementCRC32,
	)
	blockGroupChild = idSet(
		mkvio.ElementBlock, mkvio.ElementBlockAdditions, mkvio.ElementBlockDuration,
		mkvio.ElementReferencePriority, mkvio.ElementReferenceBlock,
		mkvio.ElementCodecState, mkvio.ElementDiscardPadding, mkvio.ElementSlices,
		mkvio.ElementVoid, mkvio.ElementCRC32,
	)
)

// Scanner walks a WebM/Matroska byte range element by element,
// descending into Segment, Cluster and BlockGroup.
type Scanner struct {
	Header       *Header
	Info         *Info
	Clusters     int
	FirstCluster int64

	doc      *mkvio.Document
	base     int64
	limit    int64
	blocks   int
	timecode uint64

	// one element id of lookahead, left by a master of unknown size
	peeked    bool
	peekID    uint32
	peekStart int64
}

// NewScanner scans at most limit bytes of r, or up to EOF when limit is negative.
func NewScanner(r io.Reader, limit int64) *Scanner {
	return &Scanner{
		FirstCluster: -1,
		doc:          mkvio.InitDocument(r),
		limit:        limit,
	}
}

func (s *Scanner) nextID() (id uint32, start int64, err error) {
	if s.peeked {
		s.peeked = false
		return s.peekID, s.peekStart, nil
	}
	start = s.doc.Pos()
	id, _, err = mkvio.ReadElementID(s.doc)
	return
}

func (s *Scanner) unread(id uint32, start int64) {
	s.peeked, s.peekID, s.peekStart = true, id, start
}

func (s *Scanner) exhausted() bool {
	return !s.peeked && s.limit >= 0 && s.doc.Pos() >= s.limit
}

// cleanEOF reports whether err is the source ending exactly on an element boundary.
func (s *Scanner) cleanEOF(start int64, err error) bool {
	return s.limit < 0 && s.doc.Pos() == start && errors.Is(err, mkvio.ErrUnexpectedEOF)
}

// ReadBlock returns the next block, or io.EOF at the end of the scanned range.
func (s *Scanner) ReadBlock() (blk Block, err error) {
	for {
		if s.exhausted() {
			return blk, io.EOF
		}

		var id uint32
		var start int64
		id, start, err = s.nextID()
		if err != nil {
			if s.cleanEOF(start, err) {
				err = io.EOF
			}
			return
		}

		var size mkvio.Size
		size, _, err = mkvio.ReadElementSize(s.doc)
		if err != nil {
			return
		}

		switch id {
		case mkvio.ElementSegment:
		case mkvio.ElementCluster:
			if s.Clusters == 0 {
				s.FirstCluster = s.base + start
			}
			s.Clusters++
		case mkvio.ElementEBML:
			s.Header = &Header{}
			err = s.children(size, headerChild, s.headerField)
		case mkvio.ElementInfo:
			s.Info = &Info{TimecodeScale: 1000000}
			err = s.children(size, infoChild, s.infoField)
		case mkvio.ElementTimecode:
			err = s.leaf(size, func(n uint64) (err error) {
				s.timecode, err = mkvio.ReadUnsignedInteger(s.doc, n)
				return
			})
		case mkvio.ElementSimpleBlock:
			n, ok := size.Value()
			if !ok {
				return blk, ErrUnknownSize
			}
			return s.emit(s.readBlock(start, id, n))
		case mkvio.ElementBlockGroup:
			var found bool
			if blk, found, err = s.readGroup(size); err == nil && found {
				return s.emit(blk, nil)
			}
		default:
			err = s.leaf(size, s.doc.Skip)
		}
		if err != nil {
			return
		}
	}
}

func (s *Scanner) emit(blk Block, err error) (Block, error) {
	if err != nil {
		return Block{}, err
	}
	s.blocks++
	blk.Index = s.blocks
	return blk, nil
}

func (s *Scanner) leaf(size mkvio.Size, fn func(n uint64) error) error {
	n, ok := size.Value()
	if !ok {
		return ErrUnknownSize
	}
	return fn(n)
}

// children decodes the children of a master element. A master of unknown
// size ends at the first id that isChild rejects, or at the end of the
// scanned range; that id is left for the caller.
func (s *Scanner) children(size mkvio.Size, isChild func(uint32) bool, field func(id uint32, start int64, n uint64) error) error {
	n, known := size.Value()
	end := s.doc.Pos() + int64(n)

	for {
		if known && s.doc.Pos() >= end {
			return nil
		}
		if !known && s.exhausted() {
			return nil
		}

		id, start, err := s.nextID()
		if err != nil {
			if !known && s.cleanEOF(start, err) {
				return nil
			}
			return err
		}
		if !known && !isChild(id) {
			s.unread(id, start)
			return nil
		}

		size, _, err := mkvio.ReadElementSize(s.doc)
		if err != nil {
			return err
		}
		cn, ok := size.Value()
		if !ok {
			return ErrUnknownSize
		}
		if known && cn > uint64(end-s.doc.Pos()) {
			return ErrOverrun
		}
		if err = field(id, start, cn); err != nil {
			return err
		}
	}
}

func (s *Scanner) headerField(id uint32, _ int64, n uint64) (err error) {
	h := s.Header

	switch id {
	case mkvio.ElementEBMLVersion:
		h.EBMLVersion, err = mkvio.ReadUnsignedInteger(s.doc, n)
	case mkvio.ElementEBMLReadVersion:
		h.EBMLReadVersion, err = mkvio.ReadUnsignedInteger(s.doc, n)
	case mkvio.ElementEBMLMaxIDLength:
		h.MaxIDLength, err = mkvio.ReadUnsignedInteger(s.doc, n)
	case mkvio.ElementEBMLMaxSizeLength:
		h.MaxSizeLength, err = mkvio.ReadUnsignedInteger(s.doc, n)
	case mkvio.ElementDocType:
		h.DocType, err = mkvio.ReadString(s.doc, n)
	case mkvio.ElementDocTypeVersion:
		h.DocTypeVersion, err = mkvio.ReadUnsignedInteger(s.doc, n)
	case mkvio.ElementDocTypeReadVersion:
		h.DocTypeReadVersion, err = mkvio.ReadUnsignedInteger(s.doc, n)
	default:
		err = s.doc.Skip(n)
	}

	return
}

func (s *Scanner) infoField(id uint32, _ int64, n uint64) (err error) {
	info := s.Info

	switch id {
	case mkvio.ElementTimecodeScale:
		info.TimecodeScale, err = mkvio.ReadUnsignedInteger(s.doc, n)
	case mkvio.ElementDuration:
		info.Duration, err = mkvio.ReadFloat(s.doc, n)
	case mkvio.ElementDateUTC:
		info.DateUTC, err = mkvio.ReadDate(s.doc, n)
	case mkvio.ElementTitle:
		info.Title, _, err = mkvio.ReadUnicodeString(s.doc, n)
	case mkvio.ElementMuxingApp:
		info.MuxingApp, _, err = mkvio.ReadUnicodeString(s.doc, n)
	case mkvio.ElementWritingApp:
		info.WritingApp, _, err = mkvio.ReadUnicodeString(s.doc, n)
	default:
		err = s.doc.Skip(n)
	}

	return
}

// readGroup walks a BlockGroup. The Block is only complete at the end of
// the group, once it is known whether a ReferenceBlock follows it.
func (s *Scanner) readGroup(size mkvio.Size) (blk Block, found bool, err error) {
	var referenced bool

	err = s.children(size, blockGroupChild, func(id uint32, start int64, n uint64) (err error) {
		switch id {
		case mkvio.ElementBlock:
			blk, err = s.readBlock(start, id, n)
			found = true
		case mkvio.ElementReferenceBlock:
			_, err = mkvio.ReadSignedInteger(s.doc, n)
			referenced = true
		default:
			err = s.doc.Skip(n)
		}
		return
	})
	if err != nil {
		return Block{}, false, err
	}

	blk.Keyframe = found && !referenced
	return blk, found, nil
}

// readBlock decodes the block header (track, relative timecode, flags)
// and skips the frame data.
func (s *Scanner) readBlock(start int64, id uint32, n uint64) (blk Block, err error) {
	hdr := s.doc.Pos()

	track, _, err := mkvio.ReadElementSize(s.doc)
	if err != nil {
		return
	}
	if !track.Known() {
		return blk, ErrInvalidBlock
	}

	blk.Timecode, err = mkvio.ReadSignedInteger(s.doc, 2)
	if err != nil {
		return
	}

	flags, err := mkvio.ReadUnsignedInteger(s.doc, 1)
	if err != nil {
		return
	}

	used := uint64(s.doc.Pos() - hdr)
	if used > n {
		return blk, ErrInvalidBlock
	}
	if err = s.doc.Skip(n - used); err != nil {
		return
	}

	blk.Offset = s.base + start
	blk.End = s.base + s.doc.Pos()
	blk.Size = n
	blk.Track, _ = track.Value()
	blk.ClusterTimecode = s.timecode
	blk.Simple = id == mkvio.ElementSimpleBlock
	blk.Keyframe = blk.Simple && flags&0x80 != 0

	return blk, nil
}

// ScanWebM scans a whole payload. A payload without an EBML header is taken
// to be a fragment and is scanned from its first Cluster.
func ScanWebM(data []byte) (*Report, error) {
	start := 0
	if !Probe(data) {
		if start = FindCluster(data); start < 0 {
			return nil, ErrNoCluster
		}
	}

	s := NewScanner(bytes.NewReader(data[start:]), int64(len(data)-start))
	s.base = int64(start)

	report := &Report{Blocks: []Block{}}
	for {
		blk, err := s.ReadBlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		report.Blocks = append(report.Blocks, blk)
	}

	report.Header = s.Header
	report.Info = s.Info
	report.Clusters = s.Clusters
	report.FirstCluster = s.FirstCluster

	return report, nil
}
