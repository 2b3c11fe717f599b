package s2tiles

// Directory geometry: the on-disk quad-trie is laid out in five-level
// chunks. Each chunk has up to 6 levels (0..5), level k holding 4^k slots;
// a chunk's slot count is the partial sum of that geometric series.

// quadSums[k] = sum_{i=0}^{k} 4^i, for k in [0,5].
var quadSums = [6]uint32{1, 5, 21, 85, 341, 1365}

// rootDirSlots is the fixed slot count pre-allocated for each face's root
// directory: the full 1365-slot, 6-level quad-trie covering zoom 0..5
// inline. spec.md's §3 aside claims the on-disk convention doubles this to
// 2730 slots per face; that reading is inconsistent with the byte counts
// in spec.md's own worked scenarios (see DESIGN.md "Root directory size"),
// so this implementation uses the plain 1365-slot geometry, identical to
// any other depth-0 directory with remainder 5.
const rootDirSlots = 1365

// rootDirBytes is the byte size of one face's root directory.
const rootDirBytes = rootDirSlots * nodeLenBytes

// rootRegionBytes is the byte size of all six root directories, contiguous.
const rootRegionBytes = 6 * rootDirBytes

// headerLenBytes is the fixed size of the header region.
const headerLenBytes = 128 * 1024

// dataRegionStart is the first byte offset usable for tile payloads and
// leaf directories.
const dataRegionStart = headerLenBytes + rootRegionBytes

// directorySlotCount returns the slot count of a newly allocated leaf
// directory given the zoom depth already descended and the archive's
// maxzoom, per spec.md §4.2.
func directorySlotCount(depthWritten, maxzoom uint8) uint32 {
	remainder := maxzoom - depthWritten
	if remainder > 5 {
		remainder = 5
	}
	return quadSums[remainder]
}

// directoryByteSize returns the byte size of a newly allocated leaf
// directory.
func directoryByteSize(depthWritten, maxzoom uint8) uint32 {
	return directorySlotCount(depthWritten, maxzoom) * nodeLenBytes
}

// slotByteOffset returns the byte offset of a slot index within its
// directory's byte block.
func slotByteOffset(slot uint16) uint32 {
	return uint32(slot) * nodeLenBytes
}
