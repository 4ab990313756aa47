package voxel

import (
	"cmp"
	"fmt"
)

// IVec2 is an integer 2D grid coordinate.
type IVec2 struct {
	X, Y int32
}

// IVec3 is an integer 3D grid coordinate.
type IVec3 struct {
	X, Y, Z int32
}

func (v IVec2) Add(o IVec2) IVec2 { return IVec2{v.X + o.X, v.Y + o.Y} }
func (v IVec2) Mul(s int32) IVec2 { return IVec2{v.X * s, v.Y * s} }
func (v IVec2) And(m int32) IVec2 { return IVec2{v.X & m, v.Y & m} }
func (v IVec2) AndNot(m int32) IVec2 { return IVec2{v.X &^ m, v.Y &^ m} }
func (v IVec2) Shl(n uint) IVec2 { return IVec2{v.X << n, v.Y << n} }
func (v IVec2) String() string { return fmt.Sprintf("(%d, %d)", v.X, v.Y) }

func (v IVec3) Add(o IVec3) IVec3 { return IVec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v IVec3) Mul(s int32) IVec3 { return IVec3{v.X * s, v.Y * s, v.Z * s} }
func (v IVec3) And(m int32) IVec3 { return IVec3{v.X & m, v.Y & m, v.Z & m} }
func (v IVec3) AndNot(m int32) IVec3 { return IVec3{v.X &^ m, v.Y &^ m, v.Z &^ m} }
func (v IVec3) Shl(n uint) IVec3 { return IVec3{v.X << n, v.Y << n, v.Z << n} }
func (v IVec3) String() string { return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z) }

func (v IVec2) compare(o IVec2) int { return cmpAxes(v.Y, o.Y, v.X, o.X, 0, 0) }
func (v IVec3) compare(o IVec3) int { return cmpAxes(v.Z, o.Z, v.Y, o.Y, v.X, o.X) }

// cmpAxes orders coordinates most significant axis first, matching the
// layout of the linear chunk and value indices.
func cmpAxes(a0, b0, a1, b1, a2, b2 int32) int {
	switch {
	case a0 != b0:
		return cmp.Compare(a0, b0)
	case a1 != b1:
		return cmp.Compare(a1, b1)
	default:
		return cmp.Compare(a2, b2)
	}
}
