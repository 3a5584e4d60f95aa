package core

import "math"

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v scaled by f
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Length returns the euclidean length of v
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns v scaled to unit length, or the zero vector
// when v has no length
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Rect is an axis-aligned rectangle. X, Y is the minimum corner
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns a rect of the given size centered on p
func RectAround(p Vec2, size Vec2) Rect {
	return Rect{X: p.X - size.X/2, Y: p.Y - size.Y/2, W: size.X, H: size.Y}
}

// Center returns the center point of the rect
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Expand grows the rect by pad on every side.
// A negative pad shrinks the rect
func (r Rect) Expand(pad float64) Rect {
	return Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + 2*pad, H: r.H + 2*pad}
}

// Intersects reports whether r and o overlap.
// Touching edges do not count as overlap
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether p lies inside the rect
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Clamp returns p constrained to lie within the rect
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(p.X, r.X), r.X+r.W),
		Y: math.Min(math.Max(p.Y, r.Y), r.Y+r.H),
	}
}
