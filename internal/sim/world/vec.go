package world

import "math"

type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func Dist(a, b Vec2) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// Normalize returns the unit vector, or false for a zero-length input.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}
