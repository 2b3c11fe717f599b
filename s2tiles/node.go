package s2tiles

import "encoding/binary"

// nodeLenBytes is the fixed on-disk size of a node record.
const nodeLenBytes = 10

// node is a directory slot: either a tile's (offset, length) on disk, or a
// pointer to a leaf directory. The zero value is the absent sentinel.
type node struct {
	offset uint64
	length uint32
}

func (n node) absent() bool {
	return n.offset == 0 && n.length == 0
}

// encodeNode packs offset as a 48-bit little-endian integer followed by a
// 32-bit little-endian length, mirroring the teacher's u48 offset packing
// in readerv2.go/writer.go but widened to a shared codec used by both
// directions.
func encodeNode(n node) [nodeLenBytes]byte {
	var b [nodeLenBytes]byte
	binary.LittleEndian.PutUint16(b[0:2], uint16(n.offset&0xffff))
	binary.LittleEndian.PutUint32(b[2:6], uint32(n.offset>>16))
	binary.LittleEndian.PutUint32(b[6:10], n.length)
	return b
}

func decodeNode(b []byte) node {
	low := uint64(binary.LittleEndian.Uint16(b[0:2]))
	high := uint64(binary.LittleEndian.Uint32(b[2:6]))
	return node{
		offset: (high << 16) | low,
		length: binary.LittleEndian.Uint32(b[6:10]),
	}
}
