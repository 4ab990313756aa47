package voxel

import (
	"fmt"
	"sync"

	"github.com/taylorrsallen/Luxana/bitmask"
)

// Leaf3d is a 8x8x8 chunk of values plus an occupancy mask.
//
// A *Leaf3d is shared between the root and any holder of a chunk handle. The
// embedded RWMutex guards data and mask; the methods below do not lock.
type Leaf3d[T any] struct {
	sync.RWMutex
	data [Chunk3dSize]T
	mask bitmask.Bitmask
}

// NewLeaf3d returns a leaf with every slot at the zero value and the mask all off.
func NewLeaf3d[T any]() *Leaf3d[T] {
	return &Leaf3d[T]{mask: bitmask.New(Chunk3dWordNum, false)}
}

// NewLeaf3dFrom returns a leaf holding copies of data and mask.
func NewLeaf3dFrom[T any](data *[Chunk3dSize]T, mask bitmask.Bitmask) (*Leaf3d[T], error) {
	if mask.Words() != Chunk3dWordNum {
		return nil, fmt.Errorf("%w: leaf mask has %d words", bitmask.ErrBadWordCount, mask.Words())
	}
	return &Leaf3d[T]{data: *data, mask: mask.Clone()}, nil
}

// clone copies the contents, not the lock.
func (l *Leaf3d[T]) clone() *Leaf3d[T] {
	return &Leaf3d[T]{data: l.data, mask: l.mask.Clone()}
}

func (l *Leaf3d[T]) Data() *[Chunk3dSize]T { return &l.data }
func (l *Leaf3d[T]) Mask() *bitmask.Bitmask { return &l.mask }

// Value reads the slot without consulting the mask.
func (l *Leaf3d[T]) Value(index uint32) T {
	checkLeafIndex(index, Chunk3dSize)
	return l.data[index]
}

// ActiveValue returns the slot and true if its occupancy bit is on, otherwise
// the zero value and false.
func (l *Leaf3d[T]) ActiveValue(index uint32) (T, bool) {
	checkLeafIndex(index, Chunk3dSize)
	if l.mask.IsBitOff(index) {
		var zero T
		return zero, false
	}
	return l.data[index], true
}

// IsValueOn reports whether the slot at index is active.
func (l *Leaf3d[T]) IsValueOn(index uint32) bool {
	checkLeafIndex(index, Chunk3dSize)
	return l.mask.IsBitOn(index)
}

// SetValueOn writes the slot and marks it active.
func (l *Leaf3d[T]) SetValueOn(index uint32, value T) {
	checkLeafIndex(index, Chunk3dSize)
	l.data[index] = value
	l.mask.SetBitOn(index)
}

// SetValueOff marks the slot inactive. The stored value is left in place.
func (l *Leaf3d[T]) SetValueOff(index uint32) {
	checkLeafIndex(index, Chunk3dSize)
	l.mask.SetBitOff(index)
}
