package s2tiles

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Show prints a human-readable summary of an archive's header and
// metadata to w. Grounded on the teacher's Show (pmtiles/show.go),
// adapted from PMTiles' flat entry-count header fields to S2Tiles'
// face/trie layout, and wired to go-humanize for the byte-count output the
// teacher's own Show left commented out.
func Show(w io.Writer, a *Archive, size int64) error {
	metadata, err := a.GetMetadata()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "s2tiles version: %d\n", currentVersion)
	fmt.Fprintf(w, "total size: %s\n", humanize.Bytes(uint64(size)))
	fmt.Fprintf(w, "max zoom: %d\n", a.Maxzoom())
	fmt.Fprintf(w, "compression: %s\n", a.CompressionKind())

	var metadataMap map[string]interface{}
	if err := json.Unmarshal(metadata, &metadataMap); err != nil {
		fmt.Fprintf(w, "metadata: <%d raw bytes, not JSON>\n", len(metadata))
		return nil
	}
	for k, v := range metadataMap {
		switch v := v.(type) {
		case string:
			fmt.Fprintln(w, k, v)
		default:
			fmt.Fprintln(w, k, "<object...>")
		}
	}
	return nil
}

// Stats samples tiles at maxzoom across all six faces and reports the
// count and total compressed byte size found, as a coarse content census.
// Only the window x < 64, y < 64 of each face is visited; tiles outside it
// are not counted. Grounded on the teacher's Stats (pmtiles/stats.go),
// trimmed of its MVT-layer protobuf scanning: spec.md's tile payloads are
// opaque blobs of any content type, not exclusively vector tiles, so a
// layer-level census does not generalize.
func Stats(w io.Writer, a *Archive) error {
	var count int
	var totalBytes uint64
	var face uint8
	for face = 0; face < 6; face++ {
		n := uint32(1) << a.Maxzoom()
		var x uint32
		for x = 0; x < n && x < 64; x++ {
			var y uint32
			for y = 0; y < n && y < 64; y++ {
				cursor, ok, err := a.walk(face, a.Maxzoom(), x, y, false)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				var buf [nodeLenBytes]byte
				if _, err := a.store.ReadAt(buf[:], int64(cursor)); err != nil {
					return fmt.Errorf("s2tiles: read node at %d: %w", cursor, err)
				}
				if n := decodeNode(buf[:]); !n.absent() {
					count++
					totalBytes += uint64(n.length)
				}
			}
		}
	}
	fmt.Fprintf(w, "sampled tiles at maxzoom: %d\n", count)
	fmt.Fprintf(w, "sampled tile bytes: %s\n", humanize.Bytes(totalBytes))
	return nil
}
