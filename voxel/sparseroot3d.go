package voxel

import (
	"fmt"
	"slices"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
)

// SparseRoot3d maps chunk coordinates to leaves that are created on first
// write. Reads of cells in absent chunks return the background value.
type SparseRoot3d[T any] struct {
	log2dim    uint8
	background T
	log        logger.Logger

	mu     sync.RWMutex
	chunks map[IVec3]*Leaf3d[T]
}

// NewSparseRoot3d creates an empty root of 1<<log2dim chunks per axis.
func NewSparseRoot3d[T any](log2dim uint8, background T, opts ...Option) (*SparseRoot3d[T], error) {
	if err := checkWorldLog2Dim(log2dim); err != nil {
		return nil, err
	}
	o := newRootOptions(opts...)
	return &SparseRoot3d[T]{
		log2dim:    log2dim,
		background: background,
		log:        o.Log,
		chunks:     make(map[IVec3]*Leaf3d[T]),
	}, nil
}

func (r *SparseRoot3d[T]) Log2Dim() uint8 { return r.log2dim }
func (r *SparseRoot3d[T]) Dim() uint32 { return Dim(r.log2dim) }
func (r *SparseRoot3d[T]) Size() uint32 { return Size3d(r.log2dim) }
func (r *SparseRoot3d[T]) Background() T { return r.background }
func (r *SparseRoot3d[T]) TotalDim() int32 { return TotalDim(r.log2dim, Chunk3dDim) }
func (r *SparseRoot3d[T]) HalfTotalDim() int32 { return r.TotalDim() >> 1 }

func (r *SparseRoot3d[T]) IsCoordOutOfBounds(coord IVec3) bool {
	return IsCoordOutOfBounds3d(coord, r.log2dim)
}

// ChunkCount returns the number of allocated chunks.
func (r *SparseRoot3d[T]) ChunkCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chunks)
}

// Chunk returns the leaf stored under the chunk aligned key.
func (r *SparseRoot3d[T]) Chunk(key IVec3) (*Leaf3d[T], bool) {
	r.mu.RLock()
	leaf, ok := r.chunks[key]
	r.mu.RUnlock()
	return leaf, ok
}

// ChunkFromGlobalCoord returns the leaf containing coord, if it exists.
func (r *SparseRoot3d[T]) ChunkFromGlobalCoord(coord IVec3) (*Leaf3d[T], bool) {
	return r.Chunk(ChunkCoordFromGlobalCoord3d(coord))
}

// Chunks returns a copy of the chunk map. The leaves are shared.
func (r *SparseRoot3d[T]) Chunks() map[IVec3]*Leaf3d[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[IVec3]*Leaf3d[T], len(r.chunks))
	for k, v := range r.chunks {
		out[k] = v
	}
	return out
}

// ForEachChunk visits the chunks in ascending (z, y, x) key order. The map lock is
// not held while fn runs, so fn may read or write through the root.
func (r *SparseRoot3d[T]) ForEachChunk(fn func(key IVec3, leaf *Leaf3d[T]) bool) {
	chunks := r.Chunks()
	keys := make([]IVec3, 0, len(chunks))
	for k := range chunks {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, IVec3.compare)
	for _, k := range keys {
		if !fn(k, chunks[k]) {
			return
		}
	}
}

// InsertChunk stores leaf under key, replacing any existing chunk. It is
// intended for restoring persisted roots.
func (r *SparseRoot3d[T]) InsertChunk(key IVec3, leaf *Leaf3d[T]) error {
	if ChunkCoordFromGlobalCoord3d(key) != key {
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
func (r *SparseRoot3d[T]) getOrCreate(key IVec3) *Leaf3d[T] {
	if leaf, ok := r.Chunk(key); ok {
		return leaf
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if leaf, ok := r.chunks[key]; ok {
		return leaf
	}
	leaf := NewLeaf3d[T]()
	r.chunks[key] = leaf
	if r.log != nil {
		r.log.Debugf("sparse3d: created chunk %v (%d chunks)", key, len(r.chunks))
	}
	return leaf
}

// Value returns the raw value at coord, or the background when its chunk does
// not exist.
func (r *SparseRoot3d[T]) Value(coord IVec3) T {
	leaf, ok := r.ChunkFromGlobalCoord(coord)
	if !ok {
		return r.background
	}
	leaf.RLock()
	defer leaf.RUnlock()
	return leaf.Value(ValueIndexFromCoord3d(coord))
}

// ActiveValue returns the value at coord and true if the cell is on. Absent
// chunks and inactive cells yield the background and false.
func (r *SparseRoot3d[T]) ActiveValue(coord IVec3) (T, bool) {
	leaf, ok := r.ChunkFromGlobalCoord(coord)
	if !ok {
		return r.background, false
	}
	leaf.RLock()
	defer leaf.RUnlock()
	if v, on := leaf.ActiveValue(ValueIndexFromCoord3d(coord)); on {
		return v, true
	}
	return r.background, false
}

// SetValueOn writes value at coord and marks it active, creating the chunk if
// needed. Writes to coordinates outside the world are dropped.
func (r *SparseRoot3d[T]) SetValueOn(coord IVec3, value T) {
	leaf, ok := r.ChunkFromGlobalCoord(coord)
	if !ok {
		if r.IsCoordOutOfBounds(coord) {
			if r.log != nil {
				r.log.Debugf("sparse3d: dropped write outside world at %v", coord)
			}
			return
		}
		leaf = r.getOrCreate(ChunkCoordFromGlobalCoord3d(coord))
	}
	leaf.Lock()
	leaf.SetValueOn(ValueIndexFromCoord3d(coord), value)
	leaf.Unlock()
}

// SetValueOff marks the cell inactive. It never creates a chunk.
func (r *SparseRoot3d[T]) SetValueOff(coord IVec3) {
	leaf, ok := r.ChunkFromGlobalCoord(coord)
	if !ok {
		return
	}
	leaf.Lock()
	leaf.SetValueOff(ValueIndexFromCoord3d(coord))
	leaf.Unlock()
}

// AdjacentValue reads the neighbour of coord in Grid3dDirections[direction].
func (r *SparseRoot3d[T]) AdjacentValue(coord IVec3, direction int) T {
	return r.Value(coord.Add(Grid3dDirections[direction]))
}

// AdjacentValues samples the 6 neighbours in Grid3dDirections order.
func (r *SparseRoot3d[T]) AdjacentValues(coord IVec3) [6]T {
	var out [6]T
	for i := range Grid3dDirections {
		out[i] = r.AdjacentValue(coord, i)
	}
	return out
}
