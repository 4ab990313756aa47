package voxel

import "errors"

var (
	ErrIndexOutOfRange   = errors.New("voxel: index out of range")
	ErrWorldTooLarge     = errors.New("voxel: world log2dim exceeds MaxWorldLog2Dim")
	ErrChunkKeyUnaligned = errors.New("voxel: chunk key is not chunk aligned")
	ErrCoordOutOfBounds  = errors.New("voxel: coordinate out of world bounds")
)
