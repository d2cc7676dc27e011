// Package geom holds the 2D primitives shared by the simulation core.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Rect is an axis-aligned rectangle. Bounds are inclusive.
type Rect struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func NewRect(left, bottom, right, top float64) Rect {
	return Rect{
		Min: mgl64.Vec2{left, bottom},
		Max: mgl64.Vec2{right, top},
	}
}

// Valid reports whether Min <= Max on both axes.
func (r Rect) Valid() bool {
	return r.Min.X() <= r.Max.X() && r.Min.Y() <= r.Max.Y()
}

func (r Rect) Translate(v mgl64.Vec2) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

func (r Rect) Center() mgl64.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

func (r Rect) Size() mgl64.Vec2 {
	return r.Max.Sub(r.Min)
}

// Intersects reports whether r and o share at least one point. Rectangles
// touching along an edge intersect.
func (r Rect) Intersects(o Rect) bool {
	return !(o.Max.X() < r.Min.X() || o.Min.X() > r.Max.X() ||
		o.Max.Y() < r.Min.Y() || o.Min.Y() > r.Max.Y())
}
