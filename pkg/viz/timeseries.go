package viz

import (
	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/labels"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// SeriesOptions configures one time series.
type SeriesOptions struct {
	// Label is drawn beside the last point when set.
	Label      string
	Line       style.Override
	LabelStyle style.Override
}

// TimeSeries draws line series whose end labels never overlap.
type TimeSeries struct {
	*Labelled
	c *canvas.Canvas
}

// NewTimeSeries returns a TimeSeries drawing on c.
func NewTimeSeries(c *canvas.Canvas, opts ...labels.Option) *TimeSeries {
	return &TimeSeries{Labelled: NewLabelled(c, opts...), c: c}
}

// Draw plots ys against xs. A single point is drawn as a marker, and an
// empty series draws nothing. The label takes the line color unless
// LabelStyle overrides it.
func (ts *TimeSeries) Draw(xs, ys []float64, o SeriesOptions) (surface.Handle, error) {
	if len(xs) != len(ys) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "series has %d x values but %d y values", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return 0, nil
	}

	line := style.Default().With(o.Line)
	pts := make([]geom.Point, len(xs))
	for i := range xs {
		pts[i] = geom.Point{X: xs[i], Y: ys[i]}
	}

	var h surface.Handle
	if len(pts) == 1 {
		h = ts.c.Circle(pts[0], 3, line)
	} else {
		var err error
		if h, err = ts.c.Polyline(pts, line); err != nil {
			return 0, err
		}
	}

	if o.Label != "" {
		st := style.Default().With(style.Override{Color: style.Ptr(line.Color)}).With(o.LabelStyle)
		if _, err := ts.DrawLabel(o.Label, pts[len(pts)-1], st); err != nil {
			return h, err
		}
	}
	return h, nil
}
