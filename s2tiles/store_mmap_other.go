//go:build !unix

package s2tiles

import "fmt"

// mmapStore is unavailable on non-Unix platforms; openMmapStore always
// fails there. Grounded on pspoerri-geotiff2pmtiles/internal/cog/mmap_other.go.
type mmapStore struct{}

func openMmapStore(path string) (*mmapStore, error) {
	return nil, fmt.Errorf("s2tiles: memory-mapped store is not supported on this platform")
}

func (s *mmapStore) ReadAt(p []byte, off int64) (int, error)  { return 0, fmt.Errorf("unsupported") }
func (s *mmapStore) WriteAt(p []byte, off int64) (int, error) { return 0, fmt.Errorf("unsupported") }
func (s *mmapStore) Truncate(size int64) error                { return fmt.Errorf("unsupported") }
func (s *mmapStore) Size() (int64, error)                     { return 0, fmt.Errorf("unsupported") }
func (s *mmapStore) Close() error                             { return nil }
