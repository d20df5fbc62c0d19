package viz

import (
	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/labels"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// SlopeOptions configures one slope.
type SlopeOptions struct {
	LeftLabel  string
	RightLabel string
	Line       style.Override
	LabelStyle style.Override
}

// Slope draws two-point slopes from x=0 to x=1. Labels on each side are
// distributed independently.
type Slope struct {
	c           *canvas.Canvas
	left, right *Labelled
}

// NewSlope returns a Slope drawing on c.
func NewSlope(c *canvas.Canvas, opts ...labels.Option) *Slope {
	return &Slope{c: c, left: NewLabelled(c, opts...), right: NewLabelled(c, opts...)}
}

// Draw adds a slope from (0, y1) to (1, y2).
func (s *Slope) Draw(y1, y2 float64, o SlopeOptions) (surface.Handle, error) {
	line := style.Default().With(o.Line)
	a, b := geom.Point{X: 0, Y: y1}, geom.Point{X: 1, Y: y2}
	h := s.c.Line(a, b, line)

	st := style.Default().With(style.Override{Color: style.Ptr(line.Color)}).With(o.LabelStyle)
	if o.LeftLabel != "" {
		left := st
		left.HAlign = style.HAlignRight
		if _, err := s.left.DrawLabel(o.LeftLabel, a, left); err != nil {
			return h, err
		}
	}
	if o.RightLabel != "" {
		right := st
		right.HAlign = style.HAlignLeft
		if _, err := s.right.DrawLabel(o.RightLabel, b, right); err != nil {
			return h, err
		}
	}
	return h, nil
}

// Labels returns the left and right labels drawn so far.
func (s *Slope) Labels() (left, right []surface.Handle) {
	return s.left.Labels(), s.right.Labels()
}
