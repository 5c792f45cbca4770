package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is the engine's 2D vector, world units
type Vec2 = mgl64.Vec2

// V2 is shorthand for building a Vec2
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Direction returns the unit vector of v, or zero for a zero-length input
// mgl64 Normalize divides by the length and yields NaN for zero vectors
func Direction(v Vec2) Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Mul(1 / l)
}

// Angle returns the heading of v in radians, measured from +x
func Angle(v Vec2) float64 {
	return math.Atan2(v.Y(), v.X())
}

// Clamp bounds v to [lo, hi]; when hi < lo the result is lo
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
