package bitmask

// OnIter yields the index of every set bit in ascending order. It is single
// pass: once exhausted it stays exhausted.
type OnIter struct {
	index  uint32
	parent *Bitmask
}

// NewOnIter returns an iterator positioned at bit 0 of m.
func NewOnIter(m *Bitmask) *OnIter {
	return &OnIter{parent: m}
}

// Next returns the next set bit, or false when the mask is exhausted.
func (it *OnIter) Next() (uint32, bool) {
	it.index = it.parent.NextBitOn(it.index)
	if it.index >= it.parent.Len() {
		return it.parent.Len(), false
	}
	it.index++
	return it.index - 1, true
}

// OffIter yields the index of every clear bit in ascending order.
type OffIter struct {
	index  uint32
	parent *Bitmask
}

// NewOffIter returns an iterator positioned at bit 0 of m.
func NewOffIter(m *Bitmask) *OffIter {
	return &OffIter{parent: m}
}

// Next returns the next clear bit, or false when the mask is exhausted.
func (it *OffIter) Next() (uint32, bool) {
	it.index = it.parent.NextBitOff(it.index)
	if it.index >= it.parent.Len() {
		return it.parent.Len(), false
	}
	it.index++
	return it.index - 1, true
}

// ForEachOn calls fn for every set bit in ascending order, stopping early if fn
// returns false.
func (m *Bitmask) ForEachOn(fn func(index uint32) bool) {
	it := NewOnIter(m)
	for i, ok := it.Next(); ok; i, ok = it.Next() {
		if !fn(i) {
			return
		}
	}
}
