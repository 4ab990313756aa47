package voxel

import "fmt"

// FixedRoot3d allocates every chunk of a world of 1<<log2dim chunks per axis up
// front. Chunks are addressed by a wrapped chunk-grid index, so there is no
// miss case and no background value.
type FixedRoot3d[T any] struct {
	log2dim uint8
	chunks  []*Leaf3d[T]
}

// NewFixedRoot3d allocates all Size3d(log2dim) chunks with every value off
// and zero.
func NewFixedRoot3d[T any](log2dim uint8) (*FixedRoot3d[T], error) {
	if err := checkWorldLog2Dim(log2dim); err != nil {
		return nil, err
	}
	template := NewLeaf3d[T]()
	chunks := make([]*Leaf3d[T], Size3d(log2dim))
	for i := range chunks {
		chunks[i] = template.clone()
	}
	return &FixedRoot3d[T]{log2dim: log2dim, chunks: chunks}, nil
}

func (r *FixedRoot3d[T]) Log2Dim() uint8 { return r.log2dim }
func (r *FixedRoot3d[T]) Dim() uint32 { return Dim(r.log2dim) }
func (r *FixedRoot3d[T]) Size() uint32 { return Size3d(r.log2dim) }

// ChunkFromIndex returns the leaf at a linear chunk-grid index. An index at or
// beyond Size() panics.
func (r *FixedRoot3d[T]) ChunkFromIndex(index uint32) *Leaf3d[T] {
	if index >= uint32(len(r.chunks)) {
		panic(fmt.Errorf("%w: chunk index %d >= %d", ErrIndexOutOfRange, index, len(r.chunks)))
	}
	return r.chunks[index]
}

func (r *FixedRoot3d[T]) ChunkIndexFromCoord(coord IVec3) uint32 {
	return ChunkIndexFromCoord3d(coord, r.log2dim)
}

func (r *FixedRoot3d[T]) ChunkCoordFromIndex(index uint32) IVec3 {
	return ChunkCoordFromIndex3d(index, r.log2dim)
}

// ChunkFromCoord returns the leaf containing coord, wrapping at the world edge.
func (r *FixedRoot3d[T]) ChunkFromCoord(coord IVec3) *Leaf3d[T] {
	return r.chunks[r.ChunkIndexFromCoord(coord)]
}

// Value returns the raw slot at coord, zero if it was never written.
func (r *FixedRoot3d[T]) Value(coord IVec3) T {
	leaf := r.ChunkFromCoord(coord)
	leaf.RLock()
	defer leaf.RUnlock()
	return leaf.Value(ValueIndexFromCoord3d(coord))
}

// ActiveValue returns the value at coord and whether it is on.
func (r *FixedRoot3d[T]) ActiveValue(coord IVec3) (T, bool) {
	leaf := r.ChunkFromCoord(coord)
	leaf.RLock()
	defer leaf.RUnlock()
	return leaf.ActiveValue(ValueIndexFromCoord3d(coord))
}

func (r *FixedRoot3d[T]) SetValueOn(coord IVec3, value T) {
	leaf := r.ChunkFromCoord(coord)
	leaf.Lock()
	leaf.SetValueOn(ValueIndexFromCoord3d(coord), value)
	leaf.Unlock()
}

// SetValueOff marks coord off. The slot keeps its last value.
func (r *FixedRoot3d[T]) SetValueOff(coord IVec3) {
	leaf := r.ChunkFromCoord(coord)
	leaf.Lock()
	leaf.SetValueOff(ValueIndexFromCoord3d(coord))
	leaf.Unlock()
}

// AdjacentValues reads the six face neighbours in Grid3dDirections order.
func (r *FixedRoot3d[T]) AdjacentValues(coord IVec3) [6]T {
	var out [6]T
	for i, d := range Grid3dDirections {
		out[i] = r.Value(coord.Add(d))
	}
	return out
}
