package mkv

import (
	"bytes"
	"encoding/binary"

	"github.com/deepch/ebml/format/mkv/mkvio"
)

var clusterMagic = []byte{0x1f, 0x43, 0xb6, 0x75}

// Probe reports whether b starts with an EBML header.
func Probe(b []byte) bool {
	return len(b) >= 4 && binary.BigEndian.Uint32(b) == mkvio.ElementEBML
}

// FindCluster returns the offset of the first Cluster id in data, or -1.
func FindCluster(data []byte) int {
	return bytes.Index(data, clusterMagic)
}
