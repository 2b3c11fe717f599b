package s2tiles

import "errors"

// Sentinel errors for the error kinds named in spec.md §7. Wrapped causes
// (codec/I-O failures) are attached with fmt.Errorf's %w and recoverable
// via errors.Is/errors.As, matching the teacher's fmt.Errorf("...: %w", err)
// convention throughout pmtiles/convert.go.
var (
	ErrBadMagic               = errors.New("s2tiles: bad magic")
	ErrMissingMetadata        = errors.New("s2tiles: missing metadata")
	ErrMetadataTooLarge       = errors.New("s2tiles: compressed metadata too large")
	ErrUnsupportedCompression = errors.New("s2tiles: unsupported compression")
	ErrOffsetOverflow         = errors.New("s2tiles: offset overflow, archive full")
)
