package s2tiles

import (
	"fmt"
)

const maxOffset = (uint64(1) << 48) - 1

// Archive is the top-level archive engine: it owns the random-access byte
// store, the append cursor, and the cached header state, per spec.md
// §4.6. Grounded on the teacher's Writer (writer.go) for the
// owns-the-file-and-cursor shape, generalized from PMTiles' flat entry
// list to the trie-structured directory index, and on pmtiles.Loop
// (loop.go) for the lazily-parsed-header-on-first-read idiom.
type Archive struct {
	store       RandomAccessStore
	maxzoom     uint8
	compression Compression
	cursor      uint64

	headerParsed bool
	metadata     []byte
}

// Open opens path as an S2Tiles archive, creating it (zero-filled header
// and root region) if it does not already exist. maxzoom and compression
// configure a newly created archive; for an existing archive with a
// committed header, the persisted values take precedence (see OpenStore).
func Open(path string, maxzoom uint8, compression Compression) (*Archive, error) {
	store, err := openFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("s2tiles: open %s: %w", path, err)
	}
	return OpenStore(store, maxzoom, compression)
}

// OpenStore opens an archive backed by an arbitrary RandomAccessStore,
// initializing it if empty. If the store already holds a committed
// archive (a valid header with a non-empty metadata blob), its persisted
// maxzoom and compression take precedence over the maxzoom and
// compression arguments, which only apply to a newly created archive;
// otherwise a caller inspecting or appending to an existing archive with
// placeholder arguments (as the CLI's get/put/show/stats/commit commands
// do) would silently have it reconfigured to Unknown compression.
func OpenStore(store RandomAccessStore, maxzoom uint8, compression Compression) (*Archive, error) {
	size, err := store.Size()
	if err != nil {
		return nil, fmt.Errorf("s2tiles: stat store: %w", err)
	}
	existed := size >= int64(dataRegionStart)
	if !existed {
		if err := store.Truncate(int64(dataRegionStart)); err != nil {
			return nil, fmt.Errorf("s2tiles: initialize archive: %w", err)
		}
		size = int64(dataRegionStart)
	}
	// The append cursor resumes from the store's current size: appended
	// payloads and leaf directories always sit past everything already
	// on disk, so a reopened archive must not restart from
	// dataRegionStart and overwrite prior appends.
	a := &Archive{
		store:       store,
		maxzoom:     maxzoom,
		compression: compression,
		cursor:      uint64(size),
	}
	if existed {
		if err := a.ensureHeaderParsed(); err != nil && err != ErrBadMagic && err != ErrMissingMetadata {
			return nil, err
		}
	}
	return a, nil
}

// Close releases the underlying store.
func (a *Archive) Close() error {
	return a.store.Close()
}

// allocate reserves size bytes at the append cursor and advances it,
// returning the byte offset the caller should write at.
func (a *Archive) allocate(size uint32) (uint64, error) {
	offset := a.cursor
	if offset+uint64(size) > maxOffset+1 || offset > maxOffset {
		return 0, ErrOffsetOverflow
	}
	a.cursor += uint64(size)
	return offset, nil
}

func (a *Archive) ensureHeaderParsed() error {
	if a.headerParsed {
		return nil
	}
	block := make([]byte, headerLenBytes)
	if _, err := a.store.ReadAt(block, 0); err != nil {
		return fmt.Errorf("s2tiles: read header: %w", err)
	}
	h, rawMetadata, err := decodeHeader(block)
	if err != nil {
		return err
	}
	metadata, err := h.compression.decompress(rawMetadata)
	if err != nil {
		return fmt.Errorf("s2tiles: decompress metadata: %w", err)
	}
	a.maxzoom = h.maxzoom
	a.compression = h.compression
	a.metadata = metadata
	a.headerParsed = true
	return nil
}

// GetMetadata returns the archive's opaque metadata bytes, lazily parsing
// the header on first call. Fails with ErrBadMagic or ErrMissingMetadata.
func (a *Archive) GetMetadata() ([]byte, error) {
	if err := a.ensureHeaderParsed(); err != nil {
		return nil, err
	}
	return a.metadata, nil
}

// Commit compresses metadata with the archive's configured compression
// and writes the header preamble and metadata blob. It may be called more
// than once; the most recent call wins.
func (a *Archive) Commit(metadata []byte) error {
	compressed, err := a.compression.compress(metadata)
	if err != nil {
		return fmt.Errorf("s2tiles: compress metadata: %w", err)
	}
	h := header{version: currentVersion, maxzoom: a.maxzoom, compression: a.compression}
	block, err := encodeHeader(h, compressed)
	if err != nil {
		return err
	}
	if _, err := a.store.WriteAt(block, 0); err != nil {
		return fmt.Errorf("s2tiles: write header: %w", err)
	}
	a.metadata = metadata
	a.headerParsed = true
	return nil
}

// HasFaceTile reports whether a tile is present at (face, zoom, x, y).
func (a *Archive) HasFaceTile(face, zoom uint8, x, y uint32) (bool, error) {
	cursor, ok, err := a.walk(face, zoom, x, y, false)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	var buf [nodeLenBytes]byte
	if _, err := a.store.ReadAt(buf[:], int64(cursor)); err != nil {
		return false, fmt.Errorf("s2tiles: read node at %d: %w", cursor, err)
	}
	n := decodeNode(buf[:])
	return !n.absent(), nil
}

// GetFaceTile returns the decompressed tile bytes at (face, zoom, x, y),
// or (nil, false) if absent.
func (a *Archive) GetFaceTile(face, zoom uint8, x, y uint32) ([]byte, bool, error) {
	cursor, ok, err := a.walk(face, zoom, x, y, false)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	var buf [nodeLenBytes]byte
	if _, err := a.store.ReadAt(buf[:], int64(cursor)); err != nil {
		return nil, false, fmt.Errorf("s2tiles: read node at %d: %w", cursor, err)
	}
	n := decodeNode(buf[:])
	if n.absent() {
		return nil, false, nil
	}
	raw := make([]byte, n.length)
	if _, err := a.store.ReadAt(raw, int64(n.offset)); err != nil {
		return nil, false, fmt.Errorf("s2tiles: read tile payload at %d: %w", n.offset, err)
	}
	decompressed, err := a.compression.decompress(raw)
	if err != nil {
		return nil, false, fmt.Errorf("s2tiles: decompress tile: %w", err)
	}
	return decompressed, true, nil
}

// PutFaceTile compresses data and appends it, then writes the terminal
// node record for (face, zoom, x, y), allocating leaf directories as
// needed.
func (a *Archive) PutFaceTile(face, zoom uint8, x, y uint32, data []byte) error {
	compressed, err := a.compression.compress(data)
	if err != nil {
		return fmt.Errorf("s2tiles: compress tile: %w", err)
	}
	payloadOffset, err := a.allocate(uint32(len(compressed)))
	if err != nil {
		return err
	}
	if _, err := a.store.WriteAt(compressed, int64(payloadOffset)); err != nil {
		return fmt.Errorf("s2tiles: write tile payload at %d: %w", payloadOffset, err)
	}

	cursor, _, err := a.walk(face, zoom, x, y, true)
	if err != nil {
		return err
	}
	rec := encodeNode(node{offset: payloadOffset, length: uint32(len(compressed))})
	if _, err := a.store.WriteAt(rec[:], int64(cursor)); err != nil {
		return fmt.Errorf("s2tiles: write node at %d: %w", cursor, err)
	}
	return nil
}

// HasTile, GetTile and PutTile are the web-mercator convenience wrappers
// with face hard-wired to 0, per spec.md §4.6.
func (a *Archive) HasTile(zoom uint8, x, y uint32) (bool, error) {
	return a.HasFaceTile(0, zoom, x, y)
}

func (a *Archive) GetTile(zoom uint8, x, y uint32) ([]byte, bool, error) {
	return a.GetFaceTile(0, zoom, x, y)
}

func (a *Archive) PutTile(zoom uint8, x, y uint32, data []byte) error {
	return a.PutFaceTile(0, zoom, x, y, data)
}

// Maxzoom reports the archive's configured maximum zoom.
func (a *Archive) Maxzoom() uint8 { return a.maxzoom }

// CompressionKind reports the archive's configured compression.
func (a *Archive) CompressionKind() Compression { return a.compression }
