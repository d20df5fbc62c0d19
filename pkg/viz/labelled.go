package viz

import (
	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/labels"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// LabelOffset is the gap between a point and its label, as a fraction of
// the canvas's horizontal extent.
const LabelOffset = 0.01

// Labelled draws labels beside data points and re-distributes all of them
// after every new label so none overlap.
type Labelled struct {
	c      *canvas.Canvas
	labels []surface.Handle
	opts   []labels.Option
}

// NewLabelled returns a Labelled drawing on c.
func NewLabelled(c *canvas.Canvas, opts ...labels.Option) *Labelled {
	return &Labelled{c: c, opts: opts}
}

// DrawLabel places text just beside at, vertically centered on it. Labels
// anchored on their right edge are placed to the left of the point.
func (l *Labelled) DrawLabel(text string, at geom.Point, st style.Style) (surface.Handle, error) {
	xmin, xmax := l.c.Extent()
	offset := LabelOffset * (xmax - xmin)
	if st.HAlign == style.HAlignRight {
		offset = -offset
	}
	st.VAlign = style.VAlignCenter

	h := l.c.PlaceText(text, geom.Point{X: at.X + offset, Y: at.Y}, st)
	l.labels = append(l.labels, h)
	return h, labels.Arrange(l.c, l.labels, l.opts...)
}

// Labels returns the labels drawn so far.
func (l *Labelled) Labels() []surface.Handle {
	return append([]surface.Handle(nil), l.labels...)
}
