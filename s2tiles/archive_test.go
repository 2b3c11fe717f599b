package s2tiles

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T, maxzoom uint8, compression Compression) (*Archive, *memStore) {
	t.Helper()
	store := &memStore{}
	a, err := OpenStore(store, maxzoom, compression)
	require.NoError(t, err)
	return a, store
}

// TestWMSmall mirrors spec.md's "WM small" scenario: three web-mercator
// tiles, committed metadata, and an exact final archive size.
func TestWMSmall(t *testing.T) {
	a, store := newTestArchive(t, 9, None)

	require.NoError(t, a.PutTile(0, 0, 0, []byte("hello world")))
	require.NoError(t, a.PutTile(1, 0, 1, []byte("hello world")))
	require.NoError(t, a.PutTile(9, 22, 9, []byte("hello world 2")))
	require.NoError(t, a.Commit([]byte(`{"metadata":true}`)))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(216417), size)

	got, ok, err := a.GetTile(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello world", string(got))

	got, ok, err = a.GetTile(1, 0, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello world", string(got))

	got, ok, err = a.GetTile(9, 22, 9)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello world 2", string(got))

	has, err := a.HasTile(1, 1, 1)
	require.NoError(t, err)
	assert.False(t, has)

	_, ok, err = a.GetTile(1, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestS2MultiFace mirrors spec.md's "S2 multi-face" scenario.
func TestS2MultiFace(t *testing.T) {
	a, _ := newTestArchive(t, 8, None)

	require.NoError(t, a.PutFaceTile(0, 0, 0, 0, []byte("hello world")))
	require.NoError(t, a.PutFaceTile(1, 0, 0, 0, []byte("hello world")))
	require.NoError(t, a.PutFaceTile(2, 8, 1, 1, []byte("hello world 2")))
	require.NoError(t, a.PutFaceTile(3, 2, 1, 1, []byte("hello world 2")))
	require.NoError(t, a.PutFaceTile(4, 5, 5, 5, []byte("hello world 2")))
	require.NoError(t, a.PutFaceTile(5, 5, 5, 5, []byte("hello world")))
	require.NoError(t, a.Commit([]byte(`{"metadata":true}`)))

	cases := []struct {
		face, zoom uint8
		x, y       uint32
		want       string
	}{
		{0, 0, 0, 0, "hello world"},
		{1, 0, 0, 0, "hello world"},
		{2, 8, 1, 1, "hello world 2"},
		{3, 2, 1, 1, "hello world 2"},
		{4, 5, 5, 5, "hello world 2"},
		{5, 5, 5, 5, "hello world"},
	}
	for _, c := range cases {
		got, ok, err := a.GetFaceTile(c.face, c.zoom, c.x, c.y)
		require.NoError(t, err)
		require.True(t, ok, "face %d z=%d x=%d y=%d", c.face, c.zoom, c.x, c.y)
		assert.Equal(t, c.want, string(got))
	}

	has, err := a.HasFaceTile(1, 1, 1, 1)
	require.NoError(t, err)
	assert.False(t, has)
}

// TestDensePyramid mirrors spec.md's "Dense pyramid" scenario.
func TestDensePyramid(t *testing.T) {
	a, _ := newTestArchive(t, 8, None)

	var z uint8
	for z = 0; z < 8; z++ {
		n := uint32(1) << z
		var x uint32
		for x = 0; x < n; x++ {
			var y uint32
			for y = 0; y < n; y++ {
				require.NoError(t, a.PutTile(z, x, y, []byte(fmt.Sprintf("%d-%d-%d", z, x, y))))
			}
		}
	}
	require.NoError(t, a.Commit([]byte(`{}`)))

	got, ok, err := a.GetTile(6, 22, 45)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "6-22-45", string(got))

	got, ok, err = a.GetTile(5, 12, 30)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "5-12-30", string(got))
}

// TestMaxzoomBoundaryMultipleOf5 mirrors spec.md's "Maxzoom boundary
// multiple-of-5" scenario.
func TestMaxzoomBoundaryMultipleOf5(t *testing.T) {
	a, _ := newTestArchive(t, 10, None)

	require.NoError(t, a.PutTile(10, 513, 513, []byte("x")))

	got, ok, err := a.GetTile(10, 513, 513)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", string(got))

	has, err := a.HasTile(10, 514, 513)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = a.HasTile(10, 513, 514)
	require.NoError(t, err)
	assert.False(t, has)
}

// TestGzipRoundtrip mirrors spec.md's "Gzip round-trip" scenario,
// including a simulated close/reopen against the same backing bytes.
func TestGzipRoundtrip(t *testing.T) {
	store := &memStore{}
	a, err := OpenStore(store, 5, Gzip)
	require.NoError(t, err)

	payload := make([]byte, 10000)
	rand.New(rand.NewSource(1)).Read(payload)
	require.NoError(t, a.PutTile(0, 0, 0, payload))
	require.NoError(t, a.Commit([]byte(`{}`)))
	require.NoError(t, a.Close())

	reopened, err := OpenStore(store, 5, Gzip)
	require.NoError(t, err)
	got, ok, err := reopened.GetTile(0, 0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

// TestBadMagic mirrors spec.md's "Bad magic" scenario.
func TestBadMagic(t *testing.T) {
	a, store := newTestArchive(t, 5, None)
	require.NoError(t, a.Commit([]byte(`{}`)))

	store.data[0] = 0x00
	store.data[1] = 0x00

	reopened, err := OpenStore(store, 5, None)
	require.NoError(t, err)
	_, err = reopened.GetMetadata()
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestHeaderStability(t *testing.T) {
	store := &memStore{}
	a, err := OpenStore(store, 7, Brotli)
	require.NoError(t, err)
	require.NoError(t, a.Commit([]byte(`{"a":1}`)))
	require.NoError(t, a.Close())

	reopened, err := OpenStore(store, 0, Unknown)
	require.NoError(t, err)
	metadata, err := reopened.GetMetadata()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(metadata))
	assert.Equal(t, uint8(7), reopened.Maxzoom())
	assert.Equal(t, Brotli, reopened.CompressionKind())
}

func TestEmptyTilePayload(t *testing.T) {
	a, _ := newTestArchive(t, 3, None)
	require.NoError(t, a.PutTile(0, 0, 0, []byte{}))
	got, ok, err := a.GetTile(0, 0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{}, got)
}

func TestOffsetsStayUnder48Bits(t *testing.T) {
	a, _ := newTestArchive(t, 3, None)
	for i := 0; i < 50; i++ {
		require.NoError(t, a.PutTile(0, 0, 0, []byte("x")))
	}
	cursor, ok, err := a.walk(0, 0, 0, 0, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Less(t, cursor, uint64(1)<<48)
}
