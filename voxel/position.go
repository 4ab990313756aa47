package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GlobalCoordFromVec2 converts a world position to the cell that contains it.
// Each axis truncates toward zero, then moves one cell further from zero when
// the fractional part exceeds one half.
func GlobalCoordFromVec2(pos mgl32.Vec2) IVec2 {
	return IVec2{roundAxis(pos.X()), roundAxis(pos.Y())}
}

// GlobalCoordFromPos2d uses x and y, discarding z.
func GlobalCoordFromPos2d(pos mgl32.Vec3) IVec2 {
	return GlobalCoordFromVec2(mgl32.Vec2{pos.X(), pos.Y()})
}

// GlobalCoordFromPos3d projects onto the ground plane, discarding y.
func GlobalCoordFromPos3d(pos mgl32.Vec3) IVec2 {
	return GlobalCoordFromVec2(mgl32.Vec2{pos.X(), pos.Z()})
}

func ChunkCoordFromPos2d(pos mgl32.Vec3) IVec2 {
	return IVec2{int32(pos.X()), int32(pos.Y())}.AndNot(Chunk2dMask)
}

func ChunkCoordFromPos3d(pos mgl32.Vec3) IVec2 {
	return IVec2{int32(pos.X()), int32(pos.Z())}.AndNot(Chunk2dMask)
}

// ChunkCoordFromPos returns the 3D chunk origin for a position.
func ChunkCoordFromPos(pos mgl32.Vec3) IVec3 {
	return IVec3{int32(pos.X()), int32(pos.Y()), int32(pos.Z())}.AndNot(Chunk3dMask)
}

func roundAxis(v float32) int32 {
	abs := math.Abs(float64(v))
	c := int32(v)
	if abs-math.Floor(abs) > 0.5 {
		if v > 0 {
			c++
		} else {
			c--
		}
	}
	return c
}
