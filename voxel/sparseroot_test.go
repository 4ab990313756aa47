package voxel

import (
	"sync"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSparseRootWorldTooLarge(t *testing.T) {
	_, err := NewSparseRoot2d[uint8](MaxWorldLog2Dim+1, 0)
	require.ErrorIs(t, err, ErrWorldTooLarge)
	_, err = NewSparseRoot3d[uint8](MaxWorldLog2Dim+1, 0)
	require.ErrorIs(t, err, ErrWorldTooLarge)

	r, err := NewSparseRoot2d[uint8](MaxWorldLog2Dim, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(256), r.Dim())
	require.Equal(t, int32(4096), r.TotalDim())
}

func TestSparseRoot2dSetAndGet(t *testing.T) {
	r, err := NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)

	r.SetValueOn(IVec2{3, 3}, 7)
	require.Equal(t, uint8(7), r.Value(IVec2{3, 3}))
	require.Equal(t, 1, r.ChunkCount())

	// the write landed at index 51 of the chunk keyed (0, 0)
	leaf, ok := r.Chunk(IVec2{0, 0})
	require.True(t, ok)
	require.Equal(t, uint8(7), leaf.Value(51))
	require.True(t, leaf.IsValueOn(51))

	// a neighbouring chunk is still absent
	_, ok = r.Chunk(IVec2{16, 0})
	require.False(t, ok)
}

func TestSparseRoot2dBackground(t *testing.T) {
	r, err := NewSparseRoot2d[float32](3, -1)
	require.NoError(t, err)

	require.Equal(t, float32(-1), r.Value(IVec2{5, 5}))
	v, on := r.ActiveValue(IVec2{5, 5})
	require.False(t, on)
	require.Equal(t, float32(-1), v)

	// reads never create chunks
	require.Equal(t, 0, r.ChunkCount())
}

func TestSparseRoot2dNegativeCoords(t *testing.T) {
	r, err := NewSparseRoot2d[int32](2, 0)
	require.NoError(t, err)

	r.SetValueOn(IVec2{-1, -1}, 1)
	r.SetValueOn(IVec2{-16, -16}, 2)
	require.Equal(t, 1, r.ChunkCount(), "both cells live in the chunk keyed (-16, -16)")

	_, ok := r.Chunk(IVec2{-16, -16})
	require.True(t, ok)

	r.SetValueOn(IVec2{-17, -1}, 3)
	require.Equal(t, 2, r.ChunkCount())
	_, ok = r.Chunk(IVec2{-32, -16})
	require.True(t, ok)

	require.Equal(t, int32(1), r.Value(IVec2{-1, -1}))
	require.Equal(t, int32(2), r.Value(IVec2{-16, -16}))
	require.Equal(t, int32(3), r.Value(IVec2{-17, -1}))
}

func TestSparseRoot2dOutOfBoundsWriteIsDropped(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	r, err := NewSparseRoot2d[uint8](2, 9, WithLogger(logger.Sugar.WithServiceName("sparse2d")))
	require.NoError(t, err)

	r.SetValueOn(IVec2{1000, 1000}, 1)
	require.Equal(t, 0, r.ChunkCount())
	require.Equal(t, uint8(9), r.Value(IVec2{1000, 1000}))

	r.SetValueOn(IVec2{32, 0}, 1)
	require.Equal(t, 0, r.ChunkCount())
	r.SetValueOn(IVec2{31, 0}, 1)
	require.Equal(t, 1, r.ChunkCount())
}

func TestSparseRoot2dSetValueOff(t *testing.T) {
	r, err := NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)

	// clearing a cell in an absent chunk does not create it
	r.SetValueOff(IVec2{1, 1})
	require.Equal(t, 0, r.ChunkCount())

	r.SetValueOn(IVec2{1, 1}, 5)
	r.SetValueOff(IVec2{1, 1})

	// the raw slot keeps the stale value, the active read does not see it
	require.Equal(t, uint8(5), r.Value(IVec2{1, 1}))
	v, on := r.ActiveValue(IVec2{1, 1})
	require.False(t, on)
	require.Equal(t, uint8(0), v)
	require.Equal(t, 1, r.ChunkCount())
}

func TestSparseRoot2dChunkHandleIsShared(t *testing.T) {
	r, err := NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)

	r.SetValueOn(IVec2{0, 0}, 1)
	leaf, ok := r.ChunkFromGlobalCoord(IVec2{2, 0})
	require.True(t, ok)

	leaf.Lock()
	leaf.SetValueOn(ValueIndexFromCoord2d(IVec2{2, 0}), 4)
	leaf.Unlock()

	require.Equal(t, uint8(4), r.Value(IVec2{2, 0}))
}

func TestSparseRoot2dForEachChunkOrder(t *testing.T) {
	r, err := NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)

	r.SetValueOn(IVec2{0, 0}, 1)
	r.SetValueOn(IVec2{-1, 0}, 1)
	r.SetValueOn(IVec2{16, -1}, 1)

	var keys []IVec2
	r.ForEachChunk(func(key IVec2, leaf *Leaf2d[uint8]) bool {
		keys = append(keys, key)
		return true
	})
	require.Equal(t, []IVec2{{16, -16}, {-16, 0}, {0, 0}}, keys)

	keys = keys[:0]
	r.ForEachChunk(func(key IVec2, leaf *Leaf2d[uint8]) bool {
		keys = append(keys, key)
		return false
	})
	require.Len(t, keys, 1)
}

func TestSparseRoot2dInsertChunk(t *testing.T) {
	r, err := NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)

	tests := []struct {
		name    string
		key     IVec2
		wantErr error
	}{
		{"aligned", IVec2{16, -32}, nil},
		{"unaligned", IVec2{1, 0}, ErrChunkKeyUnaligned},
		{"outside world", IVec2{64, 0}, ErrCoordOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.InsertChunk(tt.key, NewLeaf2d[uint8]())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			_, ok := r.Chunk(tt.key)
			require.True(t, ok)
		})
	}
	require.Equal(t, 1, r.ChunkCount())
}

func TestSparseRoot2dNeighbours(t *testing.T) {
	r, err := NewSparseRoot2d[uint8](2, 0)
	require.NoError(t, err)

	for i, d := range Grid2dDirections {
		r.SetValueOn(d, uint8(i+1))
	}
	for i, d := range Grid2dDiagonals {
		r.SetValueOn(d, uint8(i+10))
	}

	require.Equal(t, [4]uint8{1, 2, 3, 4}, r.AdjacentValues(IVec2{0, 0}))
	require.Equal(t, [4]uint8{10, 11, 12, 13}, r.DiagonalValues(IVec2{0, 0}))
	require.Equal(t, uint8(3), r.AdjacentValue(IVec2{0, 0}, 2))
	require.Equal(t, uint8(13), r.DiagonalValue(IVec2{0, 0}, 3))
}

func TestSparseRoot3d(t *testing.T) {
	r, err := NewSparseRoot3d[uint16](2, 0)
	require.NoError(t, err)
	require.Equal(t, int32(32), r.TotalDim())
	require.Equal(t, int32(16), r.HalfTotalDim())

	r.SetValueOn(IVec3{1, 2, 3}, 11)
	leaf, ok := r.Chunk(IVec3{0, 0, 0})
	require.True(t, ok)
	require.Equal(t, uint16(11), leaf.Value(209))

	r.SetValueOn(IVec3{-1, -1, -1}, 12)
	_, ok = r.Chunk(IVec3{-8, -8, -8})
	require.True(t, ok)

	// z = 16 is outside [-16, 15]
	r.SetValueOn(IVec3{0, 0, 16}, 13)
	require.Equal(t, 2, r.ChunkCount())

	for i, d := range Grid3dDirections {
		r.SetValueOn(IVec3{4, 4, 4}.Add(d), uint16(i+1))
	}
	assert.Equal(t, [6]uint16{1, 2, 3, 4, 5, 6}, r.AdjacentValues(IVec3{4, 4, 4}))

	var keys []IVec3
	r.ForEachChunk(func(key IVec3, leaf *Leaf3d[uint16]) bool {
		keys = append(keys, key)
		return true
	})
	require.Equal(t, []IVec3{{-8, -8, -8}, {0, 0, 0}}, keys)
}

func TestSparseRoot2dConcurrentWritesOneChunk(t *testing.T) {
	r, err := NewSparseRoot2d[uint32](4, 0)
	require.NoError(t, err)

	const workers = 16
	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)
	for w := 0; w < workers; w++ {
		done.Add(1)
		go func(w int) {
			defer done.Done()
			start.Wait()
			// each worker owns one row of the chunk at the origin
			for x := int32(0); x < Chunk2dDim; x++ {
				r.SetValueOn(IVec2{x, int32(w)}, uint32(w*Chunk2dDim)+uint32(x)+1)
			}
		}(w)
	}
	start.Done()
	done.Wait()

	require.Equal(t, 1, r.ChunkCount())
	leaf, ok := r.Chunk(IVec2{0, 0})
	require.True(t, ok)
	require.True(t, leaf.Mask().IsOn())
	for y := int32(0); y < workers; y++ {
		for x := int32(0); x < Chunk2dDim; x++ {
			v, on := r.ActiveValue(IVec2{x, y})
			require.True(t, on)
			require.Equal(t, uint32(y*Chunk2dDim+x+1), v)
		}
	}
}

func TestSparseRoot3dConcurrentWritesManyChunks(t *testing.T) {
	r, err := NewSparseRoot3d[int32](3, -1)
	require.NoError(t, err)

	half := r.HalfTotalDim()
	var wg sync.WaitGroup
	for z := -half; z < half; z += Chunk3dDim {
		wg.Add(1)
		go func(z int32) {
			defer wg.Done()
			for y := -half; y < half; y += Chunk3dDim {
				for x := -half; x < half; x += Chunk3dDim {
					r.SetValueOn(IVec3{x, y, z}, x+y+z)
					_ = r.Value(IVec3{x + 1, y, z})
				}
			}
		}(z)
	}
	wg.Wait()

	require.Equal(t, int(r.Size()), r.ChunkCount())
	require.Equal(t, -3*half, r.Value(IVec3{-half, -half, -half}))
	v, on := r.ActiveValue(IVec3{-half + 1, -half, -half})
	require.False(t, on)
	require.Equal(t, int32(-1), v)
}

func TestSetValueOffIsIdempotent(t *testing.T) {
	type cellOps struct {
		setOn     func(v int32)
		setOff    func()
		isOn      func() bool
		neighbour func() (int32, bool)
	}
	tests := []struct {
		name  string
		build func(t *testing.T) cellOps
	}{
		{"sparse 2d", func(t *testing.T) cellOps {
			r, err := NewSparseRoot2d[int32](2, -1)
			require.NoError(t, err)
			c, n := IVec2{X: 3, Y: 5}, IVec2{X: 4, Y: 5}
			r.SetValueOn(n, 11)
			return cellOps{
				setOn:     func(v int32) { r.SetValueOn(c, v) },
				setOff:    func() { r.SetValueOff(c) },
				isOn:      func() bool { _, on := r.ActiveValue(c); return on },
				neighbour: func() (int32, bool) { return r.ActiveValue(n) },
			}
		}},
		{"sparse 3d", func(t *testing.T) cellOps {
			r, err := NewSparseRoot3d[int32](2, -1)
			require.NoError(t, err)
			c, n := IVec3{X: 1, Y: 2, Z: 3}, IVec3{X: 1, Y: 3, Z: 3}
			r.SetValueOn(n, 11)
			return cellOps{
				setOn:     func(v int32) { r.SetValueOn(c, v) },
				setOff:    func() { r.SetValueOff(c) },
				isOn:      func() bool { _, on := r.ActiveValue(c); return on },
				neighbour: func() (int32, bool) { return r.ActiveValue(n) },
			}
		}},
		{"fixed 2d", func(t *testing.T) cellOps {
			r, err := NewFixedRoot2d[int32](2)
			require.NoError(t, err)
			c, n := IVec2{X: 3, Y: 5}, IVec2{X: 4, Y: 5}
			r.SetValueOn(n, 11)
			return cellOps{
				setOn:     func(v int32) { r.SetValueOn(c, v) },
				setOff:    func() { r.SetValueOff(c) },
				isOn:      func() bool { _, on := r.ActiveValue(c); return on },
				neighbour: func() (int32, bool) { return r.ActiveValue(n) },
			}
		}},
		{"fixed 3d", func(t *testing.T) cellOps {
			r, err := NewFixedRoot3d[int32](2)
			require.NoError(t, err)
			c, n := IVec3{X: 1, Y: 2, Z: 3}, IVec3{X: 1, Y: 3, Z: 3}
			r.SetValueOn(n, 11)
			return cellOps{
				setOn:     func(v int32) { r.SetValueOn(c, v) },
				setOff:    func() { r.SetValueOff(c) },
				isOn:      func() bool { _, on := r.ActiveValue(c); return on },
				neighbour: func() (int32, bool) { return r.ActiveValue(n) },
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := tt.build(t)
			ops.setOn(7)
			require.True(t, ops.isOn())

			for i := 0; i < 2; i++ {
				ops.setOff()
				assert.False(t, ops.isOn(), "clear %d", i+1)

				v, on := ops.neighbour()
				assert.True(t, on, "clear %d", i+1)
				assert.Equal(t, int32(11), v, "clear %d", i+1)
			}
		})
	}
}
