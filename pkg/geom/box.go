// Package geom holds the plain geometry shared by the layout engines:
// points, axis-aligned boxes, overlap tests and affine coordinate maps.
//
// Boxes use a y-up convention: Y0 is the bottom edge and Y1 the top edge.
// Display-space boxes produced by surfaces are normalized to the same
// convention so overlap tests behave identically in every space.
package geom

import "math"

// Point is a position in some coordinate space.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Box is an axis-aligned rectangle. X0 <= X1 and Y0 <= Y1.
type Box struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewBox builds a box from two opposite corners in any order.
func NewBox(a, b Point) Box {
	return Box{
		X0: math.Min(a.X, b.X),
		Y0: math.Min(a.Y, b.Y),
		X1: math.Max(a.X, b.X),
		Y1: math.Max(a.Y, b.Y),
	}
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Y0 + b.Y1) / 2 }

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{X0: b.X0 + dx, Y0: b.Y0 + dy, X1: b.X1 + dx, Y1: b.Y1 + dy}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		X0: math.Min(b.X0, o.X0),
		Y0: math.Min(b.Y0, o.Y0),
		X1: math.Max(b.X1, o.X1),
		Y1: math.Max(b.Y1, o.Y1),
	}
}

// Overlaps reports whether a and b share interior area. Intervals are open,
// so boxes that only touch along an edge or a corner do not overlap, while
// identical boxes and boxes contained in one another do.
func Overlaps(a, b Box) bool {
	return OverlapsWithin(a, b, 0)
}

// OverlapsWithin is Overlaps with a tolerance: the boxes must intersect by
// more than tol on both axes. A zero tolerance is exactly Overlaps.
func OverlapsWithin(a, b Box, tol float64) bool {
	return a.X1-b.X0 > tol && b.X1-a.X0 > tol &&
		a.Y1-b.Y0 > tol && b.Y1-a.Y0 > tol
}
