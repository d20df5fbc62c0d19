// Package surfacetest provides a deterministic in-memory surface for
// exercising layout code without fonts.
//
// Every rune advances Advance data units scaled by FontSize/12, and every
// line is LineHeight data units tall at 12pt. Display space is data space
// scaled by Scale with the y axis flipped.
package surfacetest

import (
	"sort"
	"unicode/utf8"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// Surface is a fake surface.Surface.
type Surface struct {
	Advance    float64
	LineHeight float64
	Scale      float64
	XMin, XMax float64
	YMin, YMax float64

	// Widths overrides the advance of whole texts.
	Widths map[string]float64

	next     surface.Handle
	elements map[surface.Handle]surface.Element

	Placed   int
	Removed  int
	Measured int
}

// New returns a surface over [0,1]x[0,1] with 0.01 advance per rune and
// 0.05 line height.
func New() *Surface {
	return &Surface{
		Advance:    0.01,
		LineHeight: 0.05,
		Scale:      1000,
		XMax:       1,
		YMax:       1,
		elements:   map[surface.Handle]surface.Element{},
	}
}

var _ surface.Surface = (*Surface)(nil)

func (s *Surface) PlaceText(text string, at geom.Point, st style.Style) surface.Handle {
	s.next++
	s.Placed++
	s.elements[s.next] = surface.Element{Text: text, At: at, Style: st}
	return s.next
}

func (s *Surface) Element(h surface.Handle) (surface.Element, error) {
	e, ok := s.elements[h]
	if !ok {
		return surface.Element{}, errors.New(errors.ErrCodeNotFound, "unknown element %d", h)
	}
	return e, nil
}

func (s *Surface) Measure(h surface.Handle, space surface.Space) (geom.Box, error) {
	e, err := s.Element(h)
	if err != nil {
		return geom.Box{}, err
	}
	s.Measured++

	scale := e.Style.FontSize / 12
	if scale == 0 {
		scale = 1
	}
	w, ok := s.Widths[e.Text]
	if !ok {
		w = float64(utf8.RuneCountInString(e.Text)) * s.Advance
	}
	w = w*scale + 2*e.Style.PadX
	ht := s.LineHeight*scale + 2*e.Style.PadY

	var x0, y0 float64
	switch e.Style.HAlign {
	case style.HAlignCenter:
		x0 = e.At.X - w/2
	case style.HAlignRight:
		x0 = e.At.X - w
	default:
		x0 = e.At.X
	}
	switch e.Style.VAlign {
	case style.VAlignTop:
		y0 = e.At.Y - ht
	case style.VAlignBottom:
		y0 = e.At.Y
	default:
		y0 = e.At.Y - ht/2
	}
	box := geom.Box{X0: x0, Y0: y0, X1: x0 + w, Y1: y0 + ht}

	switch space {
	case surface.Display:
		return geom.Affine{Sx: s.Scale, Sy: -s.Scale, Ty: s.YMax * s.Scale}.ApplyBox(box), nil
	case surface.Axes:
		return geom.MapRange(s.XMin, s.XMax, 0, 1, s.YMin, s.YMax, 0, 1).ApplyBox(box), nil
	}
	return box, nil
}

func (s *Surface) Move(h surface.Handle, at geom.Point) error {
	e, err := s.Element(h)
	if err != nil {
		return err
	}
	e.At = at
	s.elements[h] = e
	return nil
}

func (s *Surface) Restyle(h surface.Handle, st style.Style) error {
	e, err := s.Element(h)
	if err != nil {
		return err
	}
	e.Style = st
	s.elements[h] = e
	return nil
}

func (s *Surface) Remove(h surface.Handle) error {
	if _, err := s.Element(h); err != nil {
		return err
	}
	delete(s.elements, h)
	s.Removed++
	return nil
}

func (s *Surface) Extent() (float64, float64)         { return s.XMin, s.XMax }
func (s *Surface) VerticalExtent() (float64, float64) { return s.YMin, s.YMax }

// Len returns the number of live elements.
func (s *Surface) Len() int { return len(s.elements) }

// Texts returns the text of every live element in placement order.
func (s *Surface) Texts() []string {
	hs := make([]int, 0, len(s.elements))
	for h := range s.elements {
		hs = append(hs, int(h))
	}
	sort.Ints(hs)
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = s.elements[surface.Handle(h)].Text
	}
	return out
}
