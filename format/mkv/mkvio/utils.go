package mkvio

// pack appends b to v big-endian.
func pack(v uint64, b []byte) uint64 {
	for _, c := range b {
		v = v<<8 | uint64(c)
	}

	return v
}
