package voxel

/*

# Chunked grids

A world is a grid of values divided into fixed size, power of two chunks. A
chunk (a Leaf) holds a dense array of values and a bitmask marking which slots
are active. Roots map chunk coordinates to leaves.

Two root flavours exist for each dimensionality:

  - SparseRoot2d / SparseRoot3d create leaves on the first write into a chunk
    and return a background value for cells whose chunk does not exist.
  - FixedRoot2d / FixedRoot3d allocate every leaf up front and address them by
    a wrapped chunk-grid index. There is no miss case and no background.

## Addressing

Every global coordinate splits into a chunk origin and a local index using
masks and shifts only. For a chunk dimension of 16 (mask 15):

	chunk origin = coord &^ 15            (-1 -> -16, 17 -> 16)
	local index  = (y & 15) << 4 + (x & 15)

Two's complement masking floors negative coordinates to the chunk below, which
truncating division would not.

The world is centered on the origin. With log2dim chunks per axis the
addressable range on each axis is

	[-half, half-1]  where half = (1 << log2dim) * chunkDim / 2

Sparse roots drop writes outside that range without error; fixed roots wrap
instead. Callers that need to know whether a write landed use
IsCoordOutOfBounds.

## Sharing and locking

A *Leaf2d / *Leaf3d is the shared handle for a chunk. Leaves embed a
sync.RWMutex; the root accessors take the leaf lock for each point access.
Callers that obtain a handle with Chunk or ChunkFromCoord lock it themselves
for bulk access, and leaf methods never lock.

The sparse roots guard their chunk map with a separate lock. The only way a
chunk is created is an atomic get-or-create under that lock, so concurrent
first writes into the same chunk produce exactly one leaf.

## Stale values

SetValueOff clears the occupancy bit and leaves the array slot untouched.
Value reads the slot unconditionally. ActiveValue consults the mask and
reports whether the cell is on; use it whenever occupancy matters.

*/
