package voxel

import "fmt"

// FixedRoot2d allocates every chunk of a 1<<log2dim by 1<<log2dim world up
// front. Chunks are addressed by a wrapped chunk-grid index, so there is no
// miss case and no background value.
type FixedRoot2d[T any] struct {
	log2dim uint8
	chunks  []*Leaf2d[T]
}

// NewFixedRoot2d allocates all Size2d(log2dim) chunks with every value off
// and zero. It fails with ErrWorldTooLarge past MaxWorldLog2Dim.
func NewFixedRoot2d[T any](log2dim uint8) (*FixedRoot2d[T], error) {
	if err := checkWorldLog2Dim(log2dim); err != nil {
		return nil, err
	}
	template := NewLeaf2d[T]()
	chunks := make([]*Leaf2d[T], Size2d(log2dim))
	for i := range chunks {
		chunks[i] = template.clone()
	}
	return &FixedRoot2d[T]{log2dim: log2dim, chunks: chunks}, nil
}

func (r *FixedRoot2d[T]) Log2Dim() uint8 { return r.log2dim }
func (r *FixedRoot2d[T]) Dim() uint32 { return Dim(r.log2dim) }
func (r *FixedRoot2d[T]) Size() uint32 { return Size2d(r.log2dim) }

// ChunkFromIndex returns the leaf at a linear chunk-grid index. An index at or
// beyond Size() panics.
func (r *FixedRoot2d[T]) ChunkFromIndex(index uint32) *Leaf2d[T] {
	if index >= uint32(len(r.chunks)) {
		panic(fmt.Errorf("%w: chunk index %d >= %d", ErrIndexOutOfRange, index, len(r.chunks)))
	}
	return r.chunks[index]
}

// ChunkIndexFromCoord returns the wrapped index of the chunk containing coord.
func (r *FixedRoot2d[T]) ChunkIndexFromCoord(coord IVec2) uint32 {
	return ChunkIndexFromCoord2d(coord, r.log2dim)
}

// ChunkCoordFromIndex returns the origin of the chunk at index.
func (r *FixedRoot2d[T]) ChunkCoordFromIndex(index uint32) IVec2 {
	return ChunkCoordFromIndex2d(index, r.log2dim)
}

// ChunkFromCoord returns the leaf containing coord, wrapping at the world edge.
func (r *FixedRoot2d[T]) ChunkFromCoord(coord IVec2) *Leaf2d[T] {
	return r.chunks[r.ChunkIndexFromCoord(coord)]
}

// Value returns the raw slot at coord, zero if it was never written.
func (r *FixedRoot2d[T]) Value(coord IVec2) T {
	leaf := r.ChunkFromCoord(coord)
	leaf.RLock()
	defer leaf.RUnlock()
	return leaf.Value(ValueIndexFromCoord2d(coord))
}

// ActiveValue returns the value at coord and whether it is on.
func (r *FixedRoot2d[T]) ActiveValue(coord IVec2) (T, bool) {
	leaf := r.ChunkFromCoord(coord)
	leaf.RLock()
	defer leaf.RUnlock()
	return leaf.ActiveValue(ValueIndexFromCoord2d(coord))
}

// SetValueOn writes value at coord and marks it on.
func (r *FixedRoot2d[T]) SetValueOn(coord IVec2, value T) {
	leaf := r.ChunkFromCoord(coord)
	leaf.Lock()
	leaf.SetValueOn(ValueIndexFromCoord2d(coord), value)
	leaf.Unlock()
}

// SetValueOff marks coord off. The slot keeps its last value.
func (r *FixedRoot2d[T]) SetValueOff(coord IVec2) {
	leaf := r.ChunkFromCoord(coord)
	leaf.Lock()
	leaf.SetValueOff(ValueIndexFromCoord2d(coord))
	leaf.Unlock()
}

// AdjacentValues reads the four edge neighbours in Grid2dDirections order.
func (r *FixedRoot2d[T]) AdjacentValues(coord IVec2) [4]T {
	var out [4]T
	for i, d := range Grid2dDirections {
		out[i] = r.Value(coord.Add(d))
	}
	return out
}

// DiagonalValues reads the four corner neighbours.
func (r *FixedRoot2d[T]) DiagonalValues(coord IVec2) [4]T {
	var out [4]T
	for i, d := range Grid2dDiagonals {
		out[i] = r.Value(coord.Add(d))
	}
	return out
}
