package voxel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedRoot2dAllocatesEveryChunk(t *testing.T) {
	r, err := NewFixedRoot2d[uint8](2)
	require.NoError(t, err)
	require.Equal(t, uint32(16), r.Size())

	seen := map[*Leaf2d[uint8]]bool{}
	for i := uint32(0); i < r.Size(); i++ {
		leaf := r.ChunkFromIndex(i)
		require.NotNil(t, leaf)
		require.True(t, leaf.Mask().IsOff())
		seen[leaf] = true
	}
	require.Len(t, seen, 16, "chunks must not alias each other")

	require.PanicsWithError(t, "voxel: index out of range: chunk index 16 >= 16", func() { r.ChunkFromIndex(16) })

	_, err = NewFixedRoot2d[uint8](MaxWorldLog2Dim + 1)
	require.ErrorIs(t, err, ErrWorldTooLarge)
}

func TestFixedRoot2dSetAndGet(t *testing.T) {
	r, err := NewFixedRoot2d[uint8](2)
	require.NoError(t, err)

	r.SetValueOn(IVec2{3, 3}, 7)
	require.Equal(t, uint8(7), r.Value(IVec2{3, 3}))
	require.Equal(t, uint8(7), r.ChunkFromIndex(0).Value(51))

	r.SetValueOff(IVec2{3, 3})
	_, on := r.ActiveValue(IVec2{3, 3})
	require.False(t, on)
	require.Equal(t, uint8(7), r.Value(IVec2{3, 3}))
}

func TestFixedRoot2dWraps(t *testing.T) {
	r, err := NewFixedRoot2d[int32](2)
	require.NoError(t, err)

	// 4 chunks of 16 cells per axis: coordinates repeat every 64 cells
	r.SetValueOn(IVec2{-1, -1}, 5)
	require.Equal(t, uint32(15), r.ChunkIndexFromCoord(IVec2{-1, -1}))
	require.Equal(t, int32(5), r.Value(IVec2{63, 63}))
	require.Equal(t, IVec2{48, 48}, r.ChunkCoordFromIndex(15))
	require.Same(t, r.ChunkFromIndex(15), r.ChunkFromCoord(IVec2{-1, -1}))
}

func TestFixedRoot2dNeighbours(t *testing.T) {
	r, err := NewFixedRoot2d[uint8](1)
	require.NoError(t, err)

	c := IVec2{5, 5}
	for i, d := range Grid2dDirections {
		r.SetValueOn(c.Add(d), uint8(i+1))
	}
	for i, d := range Grid2dDiagonals {
		r.SetValueOn(c.Add(d), uint8(i+10))
	}
	require.Equal(t, [4]uint8{1, 2, 3, 4}, r.AdjacentValues(c))
	require.Equal(t, [4]uint8{10, 11, 12, 13}, r.DiagonalValues(c))
}

func TestFixedRoot3d(t *testing.T) {
	r, err := NewFixedRoot3d[uint16](2)
	require.NoError(t, err)
	require.Equal(t, uint32(64), r.Size())

	r.SetValueOn(IVec3{8, 16, -8}, 3)
	require.Equal(t, uint32(57), r.ChunkIndexFromCoord(IVec3{8, 16, -8}))
	require.Equal(t, uint16(3), r.ChunkFromIndex(57).Value(0))
	require.Equal(t, uint16(3), r.Value(IVec3{8, 16, 24}))
	require.Equal(t, IVec3{8, 16, 24}, r.ChunkCoordFromIndex(57))

	c := IVec3{3, 3, 3}
	for i, d := range Grid3dDirections {
		r.SetValueOn(c.Add(d), uint16(i+1))
	}
	require.Equal(t, [6]uint16{1, 2, 3, 4, 5, 6}, r.AdjacentValues(c))

	require.Panics(t, func() { r.ChunkFromIndex(64) })
}

func TestFixedRootUnwrittenValueIsZero(t *testing.T) {
	tests := []struct {
		name  string
		value func(t *testing.T) (float32, bool)
	}{
		{"2d", func(t *testing.T) (float32, bool) {
			r, err := NewFixedRoot2d[float32](2)
			require.NoError(t, err)
			r.SetValueOn(IVec2{X: 1, Y: 1}, 3)
			c := IVec2{X: -7, Y: 20}
			require.Equal(t, float32(0), r.Value(c))
			return r.ActiveValue(c)
		}},
		{"3d", func(t *testing.T) (float32, bool) {
			r, err := NewFixedRoot3d[float32](2)
			require.NoError(t, err)
			r.SetValueOn(IVec3{X: 1, Y: 1, Z: 1}, 3)
			c := IVec3{X: -7, Y: 12, Z: 5}
			require.Equal(t, float32(0), r.Value(c))
			return r.ActiveValue(c)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, on := tt.value(t)
			require.False(t, on)
			require.Equal(t, float32(0), v)
		})
	}
}
