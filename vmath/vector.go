package vmath

import "math"

// Vec2 is a 2D float vector, used for entity offsets and positions
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D float vector
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 is a 4D float vector (colors, quaternion-style data)
type Vec4 struct {
	X, Y, Z, W float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by factor
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{v.X * factor, v.Y * factor}
}

// Dot returns the dot product of v and o
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Magnitude returns vector length
func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{v.X / mag, v.Y / mag}
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v scaled by factor
func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{v.X * factor, v.Y * factor, v.Z * factor}
}

// Add returns v + o
func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
}
