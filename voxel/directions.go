package voxel

// Grid2dDirections are the 4-connected neighbour offsets.
//
//  0. Left
//  1. Right
//  2. Back
//  3. Front
//
//	x --- 3 --- x
//	|     |     |
//	0 --- o --- 1
//	|     |     |
//	x --- 2 --- x
var Grid2dDirections = [4]IVec2{
	{-1, 0}, // Left
	{1, 0},  // Right
	{0, -1}, // Back
	{0, 1},  // Front
}

// Grid2dDiagonals are the diagonal neighbour offsets.
//
//  0. Left  Back
//  1. Right Back
//  2. Left  Front
//  3. Right Front
//
//	2 --- x --- 3
//	|     |     |
//	x --- o --- x
//	|     |     |
//	0 --- x --- 1
var Grid2dDiagonals = [4]IVec2{
	{-1, -1}, // Left  Back
	{1, -1},  // Right Back
	{-1, 1},  // Left  Front
	{1, 1},   // Right Front
}

// Grid3dDirections are the 6-connected neighbour offsets: Left, Right, Bottom,
// Top, Back, Front.
var Grid3dDirections = [6]IVec3{
	{-1, 0, 0},
	{1, 0, 0},
	{0, -1, 0},
	{0, 1, 0},
	{0, 0, -1},
	{0, 0, 1},
}
