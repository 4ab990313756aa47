package voxel

// Size3d returns the number of chunks in a cubic grid of 1<<log2dim chunks
// per axis.
func Size3d(log2dim uint8) uint32 { return 1 << (uint32(log2dim) * 3) }

// ChunkCoordFromGlobalCoord3d floors coord to the origin of its chunk.
func ChunkCoordFromGlobalCoord3d(coord IVec3) IVec3 {
	return coord.AndNot(Chunk3dMask)
}

// ValueIndexFromCoord3d packs the in-chunk part of coord, x lowest, then y,
// then z.
func ValueIndexFromCoord3d(coord IVec3) uint32 {
	return uint32(((coord.Z & Chunk3dMask) << (Chunk3dLog2Dim * 2)) +
		((coord.Y & Chunk3dMask) << Chunk3dLog2Dim) +
		(coord.X & Chunk3dMask))
}

// LocalCoordFromIndex3d unpacks an index of a grid with 1<<log2dim cells per
// axis. With Chunk3dLog2Dim it is the inverse of ValueIndexFromCoord3d.
func LocalCoordFromIndex3d(index uint32, log2dim uint8) IVec3 {
	index &= (1 << (uint32(log2dim) * 3)) - 1
	z := index >> (uint32(log2dim) * 2)
	index &= (1 << (uint32(log2dim) * 2)) - 1
	return IVec3{
		X: int32(index & ((1 << log2dim) - 1)),
		Y: int32(index >> log2dim),
		Z: int32(z),
	}
}

// ChunkIndexFromCoord3d returns the wrapped linear index of the chunk
// containing coord, z in the high bits.
func ChunkIndexFromCoord3d(coord IVec3, rootLog2dim uint8) uint32 {
	wrap := int32(1)<<rootLog2dim - 1
	cx := ((coord.X &^ Chunk3dMask) >> Chunk3dLog2Dim) & wrap
	cy := ((coord.Y &^ Chunk3dMask) >> Chunk3dLog2Dim) & wrap
	cz := ((coord.Z &^ Chunk3dMask) >> Chunk3dLog2Dim) & wrap
	return uint32(cz<<(uint32(rootLog2dim)*2) + cy<<rootLog2dim + cx)
}

// ChunkCoordFromIndex3d is the inverse of ChunkIndexFromCoord3d within one
// wrap of the grid.
func ChunkCoordFromIndex3d(index uint32, rootLog2dim uint8) IVec3 {
	return LocalCoordFromIndex3d(index, rootLog2dim).Shl(Chunk3dLog2Dim)
}

// IsCoordOutOfBounds3d reports whether coord lies outside the centered world
// [-half, half-1] on any axis.
func IsCoordOutOfBounds3d(coord IVec3, log2dim uint8) bool {
	half := TotalDim(log2dim, Chunk3dDim) >> 1
	return outOfRange(coord.X, half) || outOfRange(coord.Y, half) || outOfRange(coord.Z, half)
}
