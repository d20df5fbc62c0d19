package surface

import (
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
)

// BoundingBox measures h in data space, or in the given space when one is
// passed.
func BoundingBox(s Surface, h Handle, space ...Space) (geom.Box, error) {
	sp := Data
	if len(space) > 0 {
		sp = space[0]
	}
	return s.Measure(h, sp)
}

// Overlapping reports whether the display boxes of a and b overlap.
// Boxes that merely touch do not overlap.
func Overlapping(s Surface, a, b Handle) (bool, error) {
	ba, err := s.Measure(a, Display)
	if err != nil {
		return false, err
	}
	bb, err := s.Measure(b, Display)
	if err != nil {
		return false, err
	}
	return geom.Overlaps(ba, bb), nil
}

// LineHeight returns the data-space height of an empty line of text in st,
// measured with a temporary element that is always removed again.
func LineHeight(s Surface, st style.Style) (h float64, err error) {
	xmin, _ := s.Extent()
	ymin, _ := s.VerticalExtent()
	probe := s.PlaceText("", geom.Point{X: xmin, Y: ymin}, st)
	defer func() {
		if rerr := s.Remove(probe); rerr != nil && err == nil {
			h, err = 0, rerr
		}
	}()

	box, err := s.Measure(probe, Data)
	if err != nil {
		return 0, err
	}
	return box.Height(), nil
}
