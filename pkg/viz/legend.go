package viz

import (
	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
	"github.com/matzehuels/multiplex/pkg/text"
)

// Legend geometry in axes units.
const (
	legendTop    = 1.03
	legendSwatch = 0.04
	legendGap    = 0.01
	legendSpread = 0.03
)

// Legend draws legend entries in rows above the plot area.
type Legend struct {
	c      *canvas.Canvas
	row    int
	cursor float64
}

// NewLegend returns a Legend drawing on c.
func NewLegend(c *canvas.Canvas) *Legend {
	return &Legend{c: c}
}

// LegendEntry is a drawn legend item.
type LegendEntry struct {
	Swatch surface.Handle
	Label  surface.Handle
}

// DrawLine adds a line swatch styled st, followed by label. Entries flow
// left to right and wrap to a new row above when they run past the right
// edge.
func (l *Legend) DrawLine(label string, st style.Style) (LegendEntry, error) {
	lst := style.Default().With(style.Override{Color: style.Ptr(st.Color)})
	probe := l.c.PlaceText(label, geom.Point{}, lst)
	box, err := l.c.Measure(probe, surface.Axes)
	if err != nil {
		return LegendEntry{}, err
	}
	if err := l.c.Remove(probe); err != nil {
		return LegendEntry{}, err
	}

	if l.cursor > 0 && l.cursor+legendSwatch+legendGap+box.Width() > 1 {
		l.row++
		l.cursor = 0
	}
	y := legendTop + float64(l.row)*box.Height()*1.2

	swatch := l.c.Line(l.c.FromAxes(geom.Point{X: l.cursor, Y: y}), l.c.FromAxes(geom.Point{X: l.cursor + legendSwatch, Y: y}), st)
	h := l.c.PlaceText(label, l.c.FromAxes(geom.Point{X: l.cursor + legendSwatch + legendGap, Y: y}), lst)
	l.cursor += legendSwatch + legendGap + box.Width() + legendSpread
	return LegendEntry{Swatch: swatch, Label: h}, nil
}

// DrawAnnotation lays out label as text starting at (x, y) in axes
// coordinates and running to the right edge of the plot.
func (l *Legend) DrawAnnotation(label string, x, y float64, o text.Options) ([]text.AnnotatedLine, error) {
	start := l.c.FromAxes(geom.Point{X: x, Y: y})
	end := l.c.FromAxes(geom.Point{X: 1, Y: y})
	o.X = text.Between(start.X, end.X)
	o.Y = start.Y
	return text.Annotate(l.c, text.Split(label), o)
}
