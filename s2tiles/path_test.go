package s2tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTilePathZoomZero(t *testing.T) {
	assert.Equal(t, []uint16{0}, tilePath(0, 0, 0))
}

func TestTilePathSingleChunk(t *testing.T) {
	// zoom=1, (x=0,y=1): base=quadSums[0]=1, levelSize=2, val=1+1*2+0=3
	assert.Equal(t, []uint16{3}, tilePath(1, 0, 1))
}

func TestTilePathLength(t *testing.T) {
	assert.Len(t, tilePath(0, 0, 0), 1)
	assert.Len(t, tilePath(4, 0, 0), 1)
	assert.Len(t, tilePath(5, 0, 0), 2)
	assert.Len(t, tilePath(9, 22, 9), 2)
	assert.Len(t, tilePath(10, 513, 513), 3)
}

func TestTilePathDeterministic(t *testing.T) {
	var z uint8
	for z = 0; z < 14; z++ {
		var x uint32
		for x = 0; x < (1 << (z % 10)); x++ {
			p1 := tilePath(z, x, x)
			p2 := tilePath(z, x, x)
			assert.Equal(t, p1, p2)
		}
	}
}

func TestTilePathSlotsInRange(t *testing.T) {
	var z uint8
	for z = 0; z < 16; z++ {
		n := uint32(1) << z
		if n > 64 {
			n = 64
		}
		var x, y uint32
		for x = 0; x < n; x++ {
			for y = 0; y < n; y++ {
				for _, s := range tilePath(z, x, y) {
					assert.Less(t, s, uint16(1365))
				}
			}
		}
	}
}

func TestSlotIndexLevelBases(t *testing.T) {
	assert.Equal(t, uint16(0), slotIndex(slice{z: 0}))
	assert.Equal(t, uint16(1), slotIndex(slice{z: 1}))
	assert.Equal(t, uint16(5), slotIndex(slice{z: 2}))
	assert.Equal(t, uint16(21), slotIndex(slice{z: 3}))
	assert.Equal(t, uint16(85), slotIndex(slice{z: 4}))
	assert.Equal(t, uint16(341), slotIndex(slice{z: 5}))
}
