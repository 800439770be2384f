// Package geom provides the lane-plane math primitives shared by the
// simulation. The lane is a 2D strip: X is the lateral axis, Z the forward
// axis. Enemies advance toward positive Z, projectiles fly toward negative Z.
package geom

import "math"

// Vec2 is a point or direction on the lane plane.
type Vec2 struct {
	X float64
	Z float64
}

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Z + b.Z} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Z - b.Z} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Z * s} }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Z) }

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// Normalize returns the unit vector pointing along a.
// The zero vector normalizes to zero rather than NaN.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Z / l}
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly from a to b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
