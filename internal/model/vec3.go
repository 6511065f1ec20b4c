package model

import "math"

// Vec3 is a point or direction in world space.
// Value type, passed by value.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates Vec3 from components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns |v|^2 (no sqrt).
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns |v|.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalized returns the unit vector of v, or zero vector for zero input.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// DistanceSquared returns squared distance to o.
func (v Vec3) DistanceSquared(o Vec3) float64 {
	return v.Sub(o).LengthSquared()
}

// Distance returns distance to o.
func (v Vec3) Distance(o Vec3) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}

// Distance2D returns distance to o ignoring Z.
func (v Vec3) Distance2D(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}
