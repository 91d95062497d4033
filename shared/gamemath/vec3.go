package gamemath

import "math"

// Vec3 is a float64 3D vector. 2D contacts use Z = 0.
type Vec3 struct {
	X, Y, Z float64
}

// V2 lifts a 2D vector into the XY plane.
func V2(x, y float64) Vec3 {
	return Vec3{X: x, Y: y}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) MagnitudeSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSq())
}

// Normalized returns the unit vector, or the zero vector when v has no length.
func (v Vec3) Normalized() Vec3 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
