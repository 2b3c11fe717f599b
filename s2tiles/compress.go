package s2tiles

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the codec applied to tile payloads and the
// metadata blob. The numbering matches spec.md §4.4's header field and the
// teacher's Compression enum in directory.go.
type Compression uint8

const (
	Unknown Compression = 0
	None    Compression = 1
	Gzip    Compression = 2
	Brotli  Compression = 3
	Zstd    Compression = 4
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Brotli:
		return "brotli"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// compress dispatches to the codec's compressor. Grounded on the teacher's
// SerializeMetadata in directory.go, generalized to a shared dispatch used
// by both tile payloads and metadata (and extended to Brotli/Zstd, which
// the teacher only stubs out).
func (c Compression) compress(data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Gzip:
		var b bytes.Buffer
		w, err := gzip.NewWriterLevel(&b, gzip.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("s2tiles: gzip writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("s2tiles: gzip write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("s2tiles: gzip close: %w", err)
		}
		return b.Bytes(), nil
	case Brotli:
		var b bytes.Buffer
		w := brotli.NewWriterLevel(&b, brotli.BestCompression)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("s2tiles: brotli write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("s2tiles: brotli close: %w", err)
		}
		return b.Bytes(), nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("s2tiles: zstd writer: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedCompression, c)
	}
}

// decompress dispatches to the codec's decompressor. Decompression
// failures are wrapped (spec.md's codec-error kind).
func (c Compression) decompress(data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("s2tiles: gzip reader: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("s2tiles: gzip read: %w", err)
		}
		return out, nil
	case Brotli:
		r := brotli.NewReader(bytes.NewReader(data))
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("s2tiles: brotli read: %w", err)
		}
		return out, nil
	case Zstd:
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("s2tiles: zstd reader: %w", err)
		}
		defer dec.Close()
		out, err := io.ReadAll(dec)
		if err != nil {
			return nil, fmt.Errorf("s2tiles: zstd read: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedCompression, c)
	}
}
