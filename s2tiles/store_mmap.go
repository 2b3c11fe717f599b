//go:build unix

package s2tiles

import (
	"fmt"
	"os"
	"syscall"
)

// mmapStore is a read-only RandomAccessStore backed by a memory-mapped
// file, for fast repeated local reads without per-read syscalls. Grounded
// on pspoerri-geotiff2pmtiles/internal/cog/mmap_unix.go.
type mmapStore struct {
	f    *os.File
	data []byte
}

// openMmapStore memory-maps path read-only.
func openMmapStore(path string) (*mmapStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, int(info.Size()), syscall.PROT_READ, syscall.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("s2tiles: mmap %s: %w", path, err)
	}
	return &mmapStore{f: f, data: data}, nil
}

func (s *mmapStore) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(s.data)) {
		return 0, fmt.Errorf("s2tiles: mmap read out of range at %d", off)
	}
	return copy(p, s.data[off:off+int64(len(p))]), nil
}

func (s *mmapStore) WriteAt(p []byte, off int64) (int, error) {
	return 0, fmt.Errorf("s2tiles: mmap store is read-only")
}

func (s *mmapStore) Truncate(size int64) error {
	return fmt.Errorf("s2tiles: mmap store is read-only")
}

func (s *mmapStore) Size() (int64, error) {
	return int64(len(s.data)), nil
}

func (s *mmapStore) Close() error {
	if err := syscall.Munmap(s.data); err != nil {
		return err
	}
	return s.f.Close()
}
