package voxel

const (
	Chunk2dLog2Dim  = 4
	Chunk2dDim      = 1 << Chunk2dLog2Dim
	Chunk2dSize     = 1 << (Chunk2dLog2Dim * 2)
	Chunk2dWordNum  = Chunk2dSize >> 6
	Chunk2dMask     = Chunk2dDim - 1
	Chunk3dLog2Dim  = 3
	Chunk3dDim      = 1 << Chunk3dLog2Dim
	Chunk3dSize     = 1 << (Chunk3dLog2Dim * 3)
	Chunk3dWordNum  = Chunk3dSize >> 6
	Chunk3dMask     = Chunk3dDim - 1
	MaxWorldLog2Dim = 8
)
