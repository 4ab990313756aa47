package bitmask

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	// WordBits is the number of bits held by each word of a mask.
	WordBits = 64

	wordShift = 6
	wordMask  = WordBits - 1
	allOn     = ^uint64(0)
)

var (
	ErrIndexOutOfRange = errors.New("bitmask: index out of range")
	ErrBadWordCount    = errors.New("bitmask: word count does not match")
)

// Bitmask is a fixed size set of bits backed by 64 bit words.
//
// A Bitmask holds a slice, so assigning one to another shares the words: use
// Clone for an independent copy.
type Bitmask struct {
	words []uint64
}

// New returns a mask of the given number of words. Every bit starts on when
// active is true and off otherwise.
func New(words int, active bool) Bitmask {
	m := Bitmask{words: make([]uint64, words)}
	if active {
		m.SetOn()
	}
	return m
}

// FromWords copies words into a new mask.
func FromWords(words []uint64) Bitmask {
	m := Bitmask{words: make([]uint64, len(words))}
	copy(m.words, words)
	return m
}

// Words returns the number of 64 bit words in the mask.
func (m *Bitmask) Words() int { return len(m.words) }

// Len returns the bit capacity, which is also the "not found" sentinel
// returned by the scans.
func (m *Bitmask) Len() uint32 { return uint32(len(m.words)) << wordShift }

// Raw returns the backing words. The caller must not retain them across
// mutations of the mask.
func (m *Bitmask) Raw() []uint64 { return m.words }

// Clone returns an independent copy.
func (m *Bitmask) Clone() Bitmask { return FromWords(m.words) }

// Load replaces the mask contents with words. The word count must match.
func (m *Bitmask) Load(words []uint64) error {
	if len(words) != len(m.words) {
		return fmt.Errorf("%w: have %d, got %d", ErrBadWordCount, len(m.words), len(words))
	}
	copy(m.words, words)
	return nil
}

func (m *Bitmask) checkIndex(index uint32) {
	if index >= m.Len() {
		panic(fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, index, m.Len()))
	}
}

// IsBitOn reports whether bit index is set.
func (m *Bitmask) IsBitOn(index uint32) bool {
	m.checkIndex(index)
	return m.words[index>>wordShift]&(1<<(index&wordMask)) != 0
}

// IsBitOff reports whether bit index is clear.
func (m *Bitmask) IsBitOff(index uint32) bool {
	m.checkIndex(index)
	return m.words[index>>wordShift]&(1<<(index&wordMask)) == 0
}

// SetBitOn sets bit index.
func (m *Bitmask) SetBitOn(index uint32) {
	m.checkIndex(index)
	m.words[index>>wordShift] |= 1 << (index & wordMask)
}

// SetBitOff clears bit index.
func (m *Bitmask) SetBitOff(index uint32) {
	m.checkIndex(index)
	m.words[index>>wordShift] &^= 1 << (index & wordMask)
}

// SetBit sets or clears bit index according to active.
func (m *Bitmask) SetBit(index uint32, active bool) {
	if active {
		m.SetBitOn(index)
		return
	}
	m.SetBitOff(index)
}

// SetOn sets every bit.
func (m *Bitmask) SetOn() {
	for i := range m.words {
		m.words[i] = allOn
	}
}

// SetOff clears every bit.
func (m *Bitmask) SetOff() {
	clear(m.words)
}

// IsOn is true when every word is all ones.
func (m *Bitmask) IsOn() bool {
	for _, w := range m.words {
		if w != allOn {
			return false
		}
	}
	return true
}

// IsOff is true when every word is zero.
func (m *Bitmask) IsOff() bool {
	for _, w := range m.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// CountOn returns the number of set bits.
func (m *Bitmask) CountOn() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// NextBitOn returns the smallest set bit index >= start, or Len() if there is
// none.
func (m *Bitmask) NextBitOn(start uint32) uint32 {
	return m.nextBit(start, 0)
}

// NextBitOff returns the smallest clear bit index >= start, or Len() if there
// is none.
func (m *Bitmask) NextBitOff(start uint32) uint32 {
	return m.nextBit(start, allOn)
}

// nextBit scans the words xor'd with flip, so that a single loop serves both
// the "on" (flip = 0) and the "off" (flip = all ones) scans.
func (m *Bitmask) nextBit(start uint32, flip uint64) uint32 {
	n := int(start >> wordShift)
	if n >= len(m.words) {
		return m.Len()
	}

	// mask out the bits below start in the first word
	word := (m.words[n] ^ flip) & (allOn << (start & wordMask))
	for word == 0 {
		n++
		if n == len(m.words) {
			return m.Len()
		}
		word = m.words[n] ^ flip
	}
	return uint32(n)<<wordShift + uint32(bits.TrailingZeros64(word))
}
