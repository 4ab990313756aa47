package bitmask

/*

# Occupancy bitmasks for grid chunks

A Bitmask is a fixed number of 64 bit words. It is sized once, when it is
created, and never grows. Chunks in the voxel package own exactly one mask
each and use it to record which value slots are "active".

## Bit numbering

Bit i is stored in word i >> 6 at position i & 63, so bit 0 is the least
significant bit of word 0:

	word 0                       word 1
	+---------------------------+---------------------------+
	| 63 ............... 1 0    | 127 ............. 65 64   |
	+---------------------------+---------------------------+

## Scanning

NextBitOn and NextBitOff return the first matching bit at or after a start
position. When there is no such bit they return Len(), one past the last valid
index. The iterators in this package are built on those two scans, which means
walking a sparse mask only touches the words that have bits set.

The single bit accessors place a burden of knowledge on the caller: an index
at or beyond Len() is a programming error and panics with an error wrapping
ErrIndexOutOfRange.

*/
