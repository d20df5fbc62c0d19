// Package surface defines the drawing surface the layout engines work
// against, plus the small geometry helpers built on top of it.
//
// A surface owns text elements addressed by opaque handles. Elements can be
// placed, measured, moved, restyled and removed; measurement always
// reflects the element's current state. The layout engines in pkg/text and
// pkg/labels only ever talk to this interface, so they run unchanged on the
// real canvas and on test doubles.
package surface

import (
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
)

// Handle identifies a placed element. The zero value is never issued.
type Handle int

// Space selects the coordinate space a measurement is returned in.
type Space int

const (
	// Data is the surface's data coordinate space (y up).
	Data Space = iota
	// Axes maps the plot area onto [0,1]x[0,1] (y up).
	Axes
	// Display is pixel space. Boxes are still returned with Y0 <= Y1.
	Display
)

// String returns the space name.
func (s Space) String() string {
	switch s {
	case Data:
		return "data"
	case Axes:
		return "axes"
	case Display:
		return "display"
	}
	return "unknown"
}

// Element is the current state of a placed text element.
type Element struct {
	Text  string
	At    geom.Point // anchor in data coordinates
	Style style.Style
}

// Surface is a figure that can host text elements.
//
// Unknown handles yield an error with code NOT_FOUND.
type Surface interface {
	// PlaceText creates a text element anchored at at (data coordinates).
	PlaceText(text string, at geom.Point, st style.Style) Handle
	// Element returns the current state of h.
	Element(h Handle) (Element, error)
	// Measure returns the bounding box of h, padding included, in space.
	Measure(h Handle, space Space) (geom.Box, error)
	// Move re-anchors h at at (data coordinates).
	Move(h Handle, at geom.Point) error
	// Restyle replaces the style of h.
	Restyle(h Handle, st style.Style) error
	// Remove deletes h from the surface.
	Remove(h Handle) error
	// Extent returns the horizontal data limits.
	Extent() (xmin, xmax float64)
	// VerticalExtent returns the vertical data limits.
	VerticalExtent() (ymin, ymax float64)
}
