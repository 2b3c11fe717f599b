package s2tiles

import "fmt"

// absentCursor is returned by walk when a read-only traversal finds no
// node at the requested coordinate. spec.md's §9 flags the source's use of
// 0 as an absence sentinel as ambiguous (0 is a valid cursor position
// within face 0's root directory); this implementation instead returns a
// cursor that can never be a real slot position, paired with ok=false.
const absentCursor = ^uint64(0)

// rootBase returns the byte offset of face's root directory.
func rootBase(face uint8) uint64 {
	return uint64(headerLenBytes) + uint64(face)*uint64(rootDirBytes)
}

// walk navigates from face's root directory down through leaf
// directories to the byte position of the terminal node for (zoom, x, y),
// per spec.md §4.5. With create=false it never mutates the archive; with
// create=true it lazily allocates leaf directories as needed, returning
// the position of the (possibly still-absent) terminal node so the caller
// can write it.
func (a *Archive) walk(face uint8, zoom uint8, x, y uint32, create bool) (uint64, bool, error) {
	path := tilePath(zoom, x, y)
	cursor := rootBase(face)
	var depthWritten uint8

	for i, slot := range path {
		cursor += uint64(slotByteOffset(slot))
		rest := path[i+1:]

		if len(rest) == 0 {
			return cursor, true, nil
		}

		if a.maxzoom%5 == 0 && len(rest) == 1 && zoom == a.maxzoom && rest[0] == 0 {
			return cursor, true, nil
		}

		var buf [nodeLenBytes]byte
		if _, err := a.store.ReadAt(buf[:], int64(cursor)); err != nil {
			return 0, false, fmt.Errorf("s2tiles: read directory node at %d: %w", cursor, err)
		}
		n := decodeNode(buf[:])

		if n.absent() {
			if !create {
				return absentCursor, false, nil
			}
			depthWritten += 5
			size := directoryByteSize(depthWritten, a.maxzoom)
			newOffset, err := a.allocate(size)
			if err != nil {
				return 0, false, err
			}
			if _, err := a.store.WriteAt(make([]byte, size), int64(newOffset)); err != nil {
				return 0, false, fmt.Errorf("s2tiles: write leaf directory at %d: %w", newOffset, err)
			}
			pointer := encodeNode(node{offset: newOffset, length: size})
			if _, err := a.store.WriteAt(pointer[:], int64(cursor)); err != nil {
				return 0, false, fmt.Errorf("s2tiles: write directory pointer at %d: %w", cursor, err)
			}
			cursor = newOffset
		} else {
			depthWritten += 5
			cursor = n.offset
		}
	}

	// unreachable: path always has at least one element, and the loop
	// returns as soon as rest is empty or the terminal shortcut applies.
	return absentCursor, false, nil
}
