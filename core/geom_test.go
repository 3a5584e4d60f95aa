package core

import (
	"math"
	"testing"
)

// Test vector normalization, including the zero vector
func TestVec2Normalized(t *testing.T) {
	v := Vec2{X: 3, Y: 4}.Normalized()
	if math.Abs(v.Length()-1) > 1e-9 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := Vec2{}.Normalized()
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("Zero vector should normalize to zero, got %+v", zero)
	}
}

// Touching edges must not count as overlap
func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	if !a.Intersects(Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("Overlapping rects should intersect")
	}
	if a.Intersects(Rect{X: 10, Y: 0, W: 10, H: 10}) {
		t.Error("Edge-touching rects should not intersect")
	}
	if a.Intersects(Rect{X: 20, Y: 0, W: 10, H: 10}) {
		t.Error("Disjoint rects should not intersect")
	}
}

// Expand grows on every side, negative pad shrinks
func TestRectExpand(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}.Expand(5)
	want := Rect{X: 5, Y: 5, W: 30, H: 30}
	if r != want {
		t.Errorf("Expected %+v, got %+v", want, r)
	}

	r = Rect{X: 10, Y: 10, W: 20, H: 20}.Expand(-5)
	want = Rect{X: 15, Y: 15, W: 10, H: 10}
	if r != want {
		t.Errorf("Expected %+v, got %+v", want, r)
	}
}

// RectAround centers the rect on the point
func TestRectAround(t *testing.T) {
	r := RectAround(Vec2{X: 50, Y: 50}, Vec2{X: 10, Y: 20})
	want := Rect{X: 45, Y: 40, W: 10, H: 20}
	if r != want {
		t.Errorf("Expected %+v, got %+v", want, r)
	}
	if c := r.Center(); c.X != 50 || c.Y != 50 {
		t.Errorf("Expected center (50, 50), got %+v", c)
	}
}

// Clamp constrains a point to the rect
func TestRectClamp(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 100}
	p := r.Clamp(Vec2{X: -10, Y: 150})
	if p.X != 0 || p.Y != 100 {
		t.Errorf("Expected (0, 100), got %+v", p)
	}
	inside := Vec2{X: 40, Y: 60}
	if got := r.Clamp(inside); got != inside {
		t.Errorf("Interior point should be unchanged, got %+v", got)
	}
}
