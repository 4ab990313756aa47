package voxel

import (
	"fmt"
	"slices"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
)

// SparseRoot2d maps chunk coordinates to leaves that are created on first
// write. Reads of cells in absent chunks return the background value.
type SparseRoot2d[T any] struct {
	log2dim    uint8
	background T
	log        logger.Logger

	mu     sync.RWMutex
	chunks map[IVec2]*Leaf2d[T]
}

// NewSparseRoot2d creates an empty root of 1<<log2dim chunks per axis.
func NewSparseRoot2d[T any](log2dim uint8, background T, opts ...Option) (*SparseRoot2d[T], error) {
	if err := checkWorldLog2Dim(log2dim); err != nil {
		return nil, err
	}
	o := newRootOptions(opts...)
	return &SparseRoot2d[T]{
		log2dim:    log2dim,
		background: background,
		log:        o.Log,
		chunks:     make(map[IVec2]*Leaf2d[T]),
	}, nil
}

func (r *SparseRoot2d[T]) Log2Dim() uint8 { return r.log2dim }
func (r *SparseRoot2d[T]) Dim() uint32 { return Dim(r.log2dim) }
func (r *SparseRoot2d[T]) Size() uint32 { return Size2d(r.log2dim) }
func (r *SparseRoot2d[T]) Background() T { return r.background }
func (r *SparseRoot2d[T]) TotalDim() int32 { return TotalDim(r.log2dim, Chunk2dDim) }
func (r *SparseRoot2d[T]) HalfTotalDim() int32 { return r.TotalDim() >> 1 }

// IsCoordOutOfBounds reports whether a write at coord would be dropped.
func (r *SparseRoot2d[T]) IsCoordOutOfBounds(coord IVec2) bool {
	return IsCoordOutOfBounds2d(coord, r.log2dim)
}

// ChunkCount returns the number of allocated chunks.
func (r *SparseRoot2d[T]) ChunkCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chunks)
}

// Chunk returns the leaf stored under the chunk aligned key.
func (r *SparseRoot2d[T]) Chunk(key IVec2) (*Leaf2d[T], bool) {
	r.mu.RLock()
	leaf, ok := r.chunks[key]
	r.mu.RUnlock()
	return leaf, ok
}

// ChunkFromGlobalCoord returns the leaf containing coord, if it exists.
func (r *SparseRoot2d[T]) ChunkFromGlobalCoord(coord IVec2) (*Leaf2d[T], bool) {
	return r.Chunk(ChunkCoordFromGlobalCoord2d(coord))
}

// Chunks returns a copy of the chunk map. The leaves are shared.
func (r *SparseRoot2d[T]) Chunks() map[IVec2]*Leaf2d[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[IVec2]*Leaf2d[T], len(r.chunks))
	for k, v := range r.chunks {
		out[k] = v
	}
	return out
}

// ForEachChunk visits the chunks in ascending (y, x) key order. The map lock is
// not held while fn runs, so fn may read or write through the root.
func (r *SparseRoot2d[T]) ForEachChunk(fn func(key IVec2, leaf *Leaf2d[T]) bool) {
	chunks := r.Chunks()
	keys := make([]IVec2, 0, len(chunks))
	for k := range chunks {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, IVec2.compare)
	for _, k := range keys {
		if !fn(k, chunks[k]) {
			return
		}
	}
}

// InsertChunk stores leaf under key, replacing any existing chunk. It is
// intended for restoring persisted roots.
func (r *SparseRoot2d[T]) InsertChunk(key IVec2, leaf *Leaf2d[T]) error {
	if ChunkCoordFromGlobalCoord2d(key) != key {
		return fmt.Errorf("%w: %v", ErrChunkKeyUnaligned, key)
	}
	if r.IsCoordOutOfBounds(key) {
		return fmt.Errorf("%w: %v", ErrCoordOutOfBounds, key)
	}
	r.mu.Lock()
	r.chunks[key] = leaf
	r.mu.Unlock()
	return nil
}

// getOrCreate is the only path by which chunks are added on write.
func (r *SparseRoot2d[T]) getOrCreate(key IVec2) *Leaf2d[T] {
	if leaf, ok := r.Chunk(key); ok {
		return leaf
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if leaf, ok := r.chunks[key]; ok {
		return leaf
	}
	leaf := NewLeaf2d[T]()
	r.chunks[key] = leaf
	if r.log != nil {
		r.log.Debugf("sparse2d: created chunk %v (%d chunks)", key, len(r.chunks))
	}
	return leaf
}

// Value returns the raw value at coord, or the background when its chunk does
// not exist.
func (r *SparseRoot2d[T]) Value(coord IVec2) T {
	leaf, ok := r.ChunkFromGlobalCoord(coord)
	if !ok {
		return r.background
	}
	leaf.RLock()
	defer leaf.RUnlock()
	return leaf.Value(ValueIndexFromCoord2d(coord))
}

// ActiveValue returns the value at coord and true if the cell is on. Absent
// chunks and inactive cells yield the background and false.
func (r *SparseRoot2d[T]) ActiveValue(coord IVec2) (T, bool) {
	leaf, ok := r.ChunkFromGlobalCoord(coord)
	if !ok {
		return r.background, false
	}
	leaf.RLock()
	defer leaf.RUnlock()
	if v, on := leaf.ActiveValue(ValueIndexFromCoord2d(coord)); on {
		return v, true
	}
	return r.background, false
}

// SetValueOn writes value at coord and marks it active, creating the chunk if
// needed. Writes to coordinates outside the world are dropped.
func (r *SparseRoot2d[T]) SetValueOn(coord IVec2, value T) {
	leaf, ok := r.ChunkFromGlobalCoord(coord)
	if !ok {
		if r.IsCoordOutOfBounds(coord) {
			if r.log != nil {
				r.log.Debugf("sparse2d: dropped write outside world at %v", coord)
			}
			return
		}
		leaf = r.getOrCreate(ChunkCoordFromGlobalCoord2d(coord))
	}
	leaf.Lock()
	leaf.SetValueOn(ValueIndexFromCoord2d(coord), value)
	leaf.Unlock()
}

// SetValueOff marks the cell inactive. It never creates a chunk.
func (r *SparseRoot2d[T]) SetValueOff(coord IVec2) {
	leaf, ok := r.ChunkFromGlobalCoord(coord)
	if !ok {
		return
	}
	leaf.Lock()
	leaf.SetValueOff(ValueIndexFromCoord2d(coord))
	leaf.Unlock()
}

// AdjacentValue reads the neighbour of coord in Grid2dDirections[direction].
func (r *SparseRoot2d[T]) AdjacentValue(coord IVec2, direction int) T {
	return r.Value(coord.Add(Grid2dDirections[direction]))
}

// DiagonalValue reads the neighbour of coord in Grid2dDiagonals[diagonal].
func (r *SparseRoot2d[T]) DiagonalValue(coord IVec2, diagonal int) T {
	return r.Value(coord.Add(Grid2dDiagonals[diagonal]))
}

// AdjacentValues samples the 4 neighbours in Grid2dDirections order.
func (r *SparseRoot2d[T]) AdjacentValues(coord IVec2) [4]T {
	var out [4]T
	for i := range Grid2dDirections {
		out[i] = r.AdjacentValue(coord, i)
	}
	return out
}

// DiagonalValues samples the 4 diagonal neighbours in Grid2dDiagonals order.
func (r *SparseRoot2d[T]) DiagonalValues(coord IVec2) [4]T {
	var out [4]T
	for i := range Grid2dDiagonals {
		out[i] = r.DiagonalValue(coord, i)
	}
	return out
}
