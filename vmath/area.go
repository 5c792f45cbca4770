package vmath

// Rect is an axis-aligned box in world units, Min inclusive and Max exclusive
type Rect struct {
	Min Vec2
	Max Vec2
}

// RectAt builds a box from its top-left corner and size
func RectAt(origin, size Vec2) Rect {
	return Rect{Min: origin, Max: origin.Add(size)}
}

// RectWH builds a box anchored at the origin with the given size
func RectWH(w, h float64) Rect {
	return Rect{Max: Vec2{w, h}}
}

func (r Rect) Width() float64  { return r.Max.X() - r.Min.X() }
func (r Rect) Height() float64 { return r.Max.Y() - r.Min.Y() }
func (r Rect) Size() Vec2      { return r.Max.Sub(r.Min) }

// Empty reports whether the box has no area
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Overlaps is the strict AABB test used for collisions
// Boxes sharing only an edge do not overlap, and empty boxes never overlap
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Min.X() < o.Max.X() && r.Max.X() > o.Min.X() &&
		r.Min.Y() < o.Max.Y() && r.Max.Y() > o.Min.Y()
}

// Touches is the inclusive variant, true when boxes overlap or share an edge
// Degenerate boxes (points, lines) are tested by position
func (r Rect) Touches(o Rect) bool {
	return r.Min.X() <= o.Max.X() && r.Max.X() >= o.Min.X() &&
		r.Min.Y() <= o.Max.Y() && r.Max.Y() >= o.Min.Y()
}

// Contains checks if point is within the box
func (r Rect) Contains(p Vec2) bool {
	return p.X() >= r.Min.X() && p.X() < r.Max.X() && p.Y() >= r.Min.Y() && p.Y() < r.Max.Y()
}

// Translate returns the box moved by d
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Center returns the midpoint of the box
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}
