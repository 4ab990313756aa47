package voxel

import (
	"fmt"
	"sync"

	"github.com/taylorrsallen/Luxana/bitmask"
)

// Leaf2d is a 16x16 chunk of values plus an occupancy mask.
//
// A *Leaf2d is shared between the root and any holder of a chunk handle. The
// embedded RWMutex guards data and mask; the methods below do not lock.
type Leaf2d[T any] struct {
	sync.RWMutex
	data [Chunk2dSize]T
	mask bitmask.Bitmask
}

// NewLeaf2d returns a leaf with every slot at the zero value and the mask all off.
func NewLeaf2d[T any]() *Leaf2d[T] {
	return &Leaf2d[T]{mask: bitmask.New(Chunk2dWordNum, false)}
}

// NewLeaf2dFrom returns a leaf holding copies of data and mask.
func NewLeaf2dFrom[T any](data *[Chunk2dSize]T, mask bitmask.Bitmask) (*Leaf2d[T], error) {
	if mask.Words() != Chunk2dWordNum {
		return nil, fmt.Errorf("%w: leaf mask has %d words", bitmask.ErrBadWordCount, mask.Words())
	}
	return &Leaf2d[T]{data: *data, mask: mask.Clone()}, nil
}

// clone copies the contents, not the lock.
func (l *Leaf2d[T]) clone() *Leaf2d[T] {
	return &Leaf2d[T]{data: l.data, mask: l.mask.Clone()}
}

// Data exposes the backing array. Hold the leaf lock while using it.
func (l *Leaf2d[T]) Data() *[Chunk2dSize]T { return &l.data }
func (l *Leaf2d[T]) Mask() *bitmask.Bitmask { return &l.mask }

// Value reads the slot without consulting the mask.
func (l *Leaf2d[T]) Value(index uint32) T {
	checkLeafIndex(index, Chunk2dSize)
	return l.data[index]
}

// ActiveValue returns the slot and true if its occupancy bit is on, otherwise
// the zero value and false.
func (l *Leaf2d[T]) ActiveValue(index uint32) (T, bool) {
	checkLeafIndex(index, Chunk2dSize)
	if l.mask.IsBitOff(index) {
		var zero T
		return zero, false
	}
	return l.data[index], true
}

// IsValueOn reports whether the slot at index is active.
func (l *Leaf2d[T]) IsValueOn(index uint32) bool {
	checkLeafIndex(index, Chunk2dSize)
	return l.mask.IsBitOn(index)
}

// SetValueOn writes the slot and marks it active.
func (l *Leaf2d[T]) SetValueOn(index uint32, value T) {
	checkLeafIndex(index, Chunk2dSize)
	l.data[index] = value
	l.mask.SetBitOn(index)
}

// SetValueOff marks the slot inactive. The stored value is left in place.
func (l *Leaf2d[T]) SetValueOff(index uint32) {
	checkLeafIndex(index, Chunk2dSize)
	l.mask.SetBitOff(index)
}

func checkLeafIndex(index uint32, size uint32) {
	if index >= size {
		panic(fmt.Errorf("%w: leaf index %d >= %d", ErrIndexOutOfRange, index, size))
	}
}
