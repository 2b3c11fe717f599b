package s2tiles

// memStore is an in-memory RandomAccessStore for tests, grounded on the
// teacher's mockBucket in bucket.go/bucket_test.go.
type memStore struct {
	data []byte
}

func (m *memStore) ReadAt(p []byte, off int64) (int, error) {
	copy(p, m.data[off:off+int64(len(p))])
	return len(p), nil
}

func (m *memStore) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[off:end], p)
	return len(p), nil
}

func (m *memStore) Truncate(size int64) error {
	if int64(len(m.data)) >= size {
		m.data = m.data[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
	return nil
}

func (m *memStore) Size() (int64, error) {
	return int64(len(m.data)), nil
}

func (m *memStore) Close() error { return nil }
