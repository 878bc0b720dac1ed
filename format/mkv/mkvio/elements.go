package mkvio

// Element IDs used when walking WebM/Matroska payloads.
const (
	ElementEBML               uint32 = 0x1a45dfa3
	ElementEBMLVersion        uint32 = 0x4286
	ElementEBMLReadVersion    uint32 = 0x42f7
	ElementEBMLMaxIDLength    uint32 = 0x42f2
	ElementEBMLMaxSizeLength  uint32 = 0x42f3
	ElementDocType            uint32 = 0x4282
	ElementDocTypeVersion     uint32 = 0x4287
	ElementDocTypeReadVersion uint32 = 0x4285
	ElementVoid               uint32 = 0xec
	ElementCRC32              uint32 = 0xbf

	ElementSegment       uint32 = 0x18538067
	ElementSeekHead      uint32 = 0x114d9b74
	ElementInfo          uint32 = 0x1549a966
	ElementTimecodeScale uint32 = 0x2ad7b1
	ElementDuration      uint32 = 0x4489
	ElementDateUTC       uint32 = 0x4461
	ElementTitle         uint32 = 0x7ba9
	ElementMuxingApp     uint32 = 0x4d80
	ElementWritingApp    uint32 = 0x5741
	ElementSegmentUID    uint32 = 0x73a4
	ElementSegmentFile   uint32 = 0x7384
	ElementPrevUID       uint32 = 0x3cb923
	ElementPrevFilename  uint32 = 0x3c83ab
	ElementNextUID       uint32 = 0x3eb923
	ElementNextFilename  uint32 = 0x3e83bb
	ElementSegmentFamily uint32 = 0x4444
	ElementChapterTrans  uint32 = 0x6924
	ElementTracks        uint32 = 0x1654ae6b
	ElementCues          uint32 = 0x1c53bb6b

	ElementCluster     uint32 = 0x1f43b675
	ElementTimecode    uint32 = 0xe7
	ElementSimpleBlock uint32 = 0xa3
	ElementBlockGroup  uint32 = 0xa0
	ElementBlock       uint32 = 0xa1

	ElementBlockAdditions    uint32 = 0x75a1
	ElementBlockDuration     uint32 = 0x9b
	ElementReferencePriority uint32 = 0xfa
	ElementReferenceBlock    uint32 = 0xfb
	ElementCodecState        uint32 = 0xa4
	ElementDiscardPadding    uint32 = 0x75a2
	ElementSlices            uint32 = 0x8e
)
