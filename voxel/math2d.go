package voxel

// Dim returns the number of chunks per axis for a root of the given log2dim.
func Dim(log2dim uint8) uint32 { return 1 << log2dim }

// Size2d returns the number of chunks in a square grid of 1<<log2dim chunks
// per axis.
func Size2d(log2dim uint8) uint32 { return 1 << (uint32(log2dim) * 2) }

// ChunkCoordFromGlobalCoord2d floors coord to the origin of its chunk. The
// result is the key a sparse root stores the chunk under.
func ChunkCoordFromGlobalCoord2d(coord IVec2) IVec2 {
	return coord.AndNot(Chunk2dMask)
}

// ValueIndexFromCoord2d packs the in-chunk part of coord into a leaf index,
// x in the low bits.
func ValueIndexFromCoord2d(coord IVec2) uint32 {
	return uint32(((coord.Y & Chunk2dMask) << Chunk2dLog2Dim) + (coord.X & Chunk2dMask))
}

// LocalCoordFromIndex2d unpacks an index of a grid with 1<<log2dim cells per
// axis. With Chunk2dLog2Dim it is the inverse of ValueIndexFromCoord2d.
func LocalCoordFromIndex2d(index uint32, log2dim uint8) IVec2 {
	index &= (1 << (uint32(log2dim) * 2)) - 1
	return IVec2{
		X: int32(index & ((1 << log2dim) - 1)),
		Y: int32(index >> log2dim),
	}
}

// ChunkIndexFromCoord2d returns the linear index of the chunk containing coord
// in a grid of 1<<rootLog2dim chunks per axis. Chunk coordinates wrap at the
// grid edge, so every coord maps to some index.
func ChunkIndexFromCoord2d(coord IVec2, rootLog2dim uint8) uint32 {
	wrap := int32(1)<<rootLog2dim - 1
	cx := ((coord.X &^ Chunk2dMask) >> Chunk2dLog2Dim) & wrap
	cy := ((coord.Y &^ Chunk2dMask) >> Chunk2dLog2Dim) & wrap
	return uint32(cy<<rootLog2dim + cx)
}

// ChunkCoordFromIndex2d is the chunk aligned origin of the chunk at index in a
// wrapped chunk grid.
func ChunkCoordFromIndex2d(index uint32, rootLog2dim uint8) IVec2 {
	return LocalCoordFromIndex2d(index, rootLog2dim).Shl(Chunk2dLog2Dim)
}

// TotalDim returns the number of cells per axis of a world of 1<<log2dim
// chunks of chunkDim cells.
func TotalDim(log2dim uint8, chunkDim int32) int32 {
	return int32(Dim(log2dim)) * chunkDim
}

// IsCoordOutOfBounds2d reports whether coord lies outside the centered world
// [-half, half-1] on either axis.
func IsCoordOutOfBounds2d(coord IVec2, log2dim uint8) bool {
	half := TotalDim(log2dim, Chunk2dDim) >> 1
	return outOfRange(coord.X, half) || outOfRange(coord.Y, half)
}

func outOfRange(v, half int32) bool {
	return v < -half || v > half-1
}
