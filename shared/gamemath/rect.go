package gamemath

import "math"

// Rect is an axis-aligned box with its top-left corner at X, Y. Y grows down.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Vec3 {
	return V2(r.X+r.W/2, r.Y+r.H/2)
}

// Overlap returns the extent of the intersection on each axis. Negative
// values are gaps.
func (r Rect) Overlap(o Rect) (x, y float64) {
	x = math.Min(r.X+r.W, o.X+o.W) - math.Max(r.X, o.X)
	y = math.Min(r.Y+r.H, o.Y+o.H) - math.Max(r.Y, o.Y)
	return x, y
}

// ContactNormal returns the unit normal pointing from o toward r along the
// axis of least penetration. Touching boxes have zero penetration on the
// contact axis, so the result is the face they share.
func (r Rect) ContactNormal(o Rect) Vec3 {
	ox, oy := r.Overlap(o)
	rc, oc := r.Center(), o.Center()
	if ox < oy {
		if rc.X < oc.X {
			return V2(-1, 0)
		}
		return V2(1, 0)
	}
	if rc.Y < oc.Y {
		return V2(0, -1)
	}
	return V2(0, 1)
}

// ContactPoint returns a point just past the face of r that faces away from
// normal, inside whatever r is resting against.
func (r Rect) ContactPoint(normal Vec3) Vec3 {
	const inset = 0.5
	c := r.Center()
	if normal.X != 0 {
		return c.Sub(normal.Scale(r.W/2 + inset))
	}
	return c.Sub(normal.Scale(r.H/2 + inset))
}
