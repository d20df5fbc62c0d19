package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/document"
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/labels"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/viz"
)

// Room left for end labels to the right of series, as a fraction of the
// data span.
const (
	seriesLabelRoom = 0.25
	slopeLabelRoom  = 0.3
	fitMargin       = 0.05
)

// Layout draws every section of doc onto a new canvas. Sections are drawn
// in a fixed order: text, bars, population, graph, series, slopes, legend,
// annotations.
func Layout(ctx context.Context, doc *document.Document, opts Options) (*canvas.Canvas, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "no document")
	}
	fig := doc.Figure
	co := canvas.Options{
		Width:      fig.Width,
		Height:     fig.Height,
		Margin:     fig.Margin,
		Background: fig.Background,
	}
	if opts.Width > 0 {
		co.Width = opts.Width
	}
	if opts.Height > 0 {
		co.Height = opts.Height
	}
	if len(fig.XLim) == 2 {
		co.XLim = [2]float64{fig.XLim[0], fig.XLim[1]}
	}
	if len(fig.YLim) == 2 {
		co.YLim = [2]float64{fig.YLim[0], fig.YLim[1]}
	}
	c, err := canvas.New(co)
	if err != nil {
		return nil, err
	}
	if err := fitLimits(c, doc); err != nil {
		return nil, err
	}

	d := &drawer{ctx: ctx, c: c, base: fig.Base()}
	if opts.LabelPasses > 0 {
		d.labels = append(d.labels, labels.WithMaxPasses(opts.LabelPasses))
	}
	steps := []struct {
		name string
		draw func(*document.Document) error
	}{
		{"text", d.text},
		{"bars", d.bars},
		{"population", d.population},
		{"graph", d.graph},
		{"series", d.series},
		{"slope", d.slopes},
		{"legend", d.legend},
		{"annotation", d.annotations},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.draw(doc); err != nil {
			return nil, fmt.Errorf("draw %s: %w", step.name, err)
		}
	}
	return c, nil
}

type drawer struct {
	ctx    context.Context
	c      *canvas.Canvas
	base   style.Override
	labels []labels.Option
	leg    *viz.Legend
}

func (d *drawer) text(doc *document.Document) error {
	if doc.Text == nil {
		return nil
	}
	o := doc.Text.Options()
	o.Style = d.base.Merge(o.Style)
	_, err := viz.NewTextAnnotation(d.c).Draw(doc.Text.TokenList(), o)
	return err
}

func (d *drawer) bars(doc *document.Document) error {
	b := viz.NewBar100(d.c)
	for i, sec := range doc.Bars {
		o := sec.Options()
		o.LabelStyle = d.base.Merge(o.LabelStyle)
		if _, err := b.Draw(sec.Bars, o); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

func (d *drawer) population(doc *document.Document) error {
	if doc.Population == nil {
		return nil
	}
	_, err := viz.NewPopulation(d.c, d.labels...).Draw(doc.Population.Count, doc.Population.Options())
	return err
}

func (d *drawer) graph(doc *document.Document) error {
	g := doc.Graph
	if g == nil {
		return nil
	}
	o := g.Options()
	o.LabelStyle = d.base.Merge(o.LabelStyle)
	_, err := viz.NewGraph(d.c, d.labels...).Draw(d.ctx, g.Nodes, g.Edges, o)
	return err
}

func (d *drawer) series(doc *document.Document) error {
	ts := viz.NewTimeSeries(d.c, d.labels...)
	for i, s := range doc.Series {
		line := s.Line
		if line.Color == nil {
			line.Color = style.Ptr(viz.Palette(i))
		}
		o := viz.SeriesOptions{Label: s.Label, Line: line, LabelStyle: d.base.Merge(s.LabelStyle)}
		if _, err := ts.Draw(s.Xs(), s.Y, o); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

func (d *drawer) slopes(doc *document.Document) error {
	sl := viz.NewSlope(d.c, d.labels...)
	for i, s := range doc.Slopes {
		line := s.Line
		if line.Color == nil {
			line.Color = style.Ptr(viz.Palette(i))
		}
		o := viz.SlopeOptions{
			LeftLabel:  s.LeftLabel,
			RightLabel: s.RightLabel,
			Line:       line,
			LabelStyle: d.base.Merge(s.LabelStyle),
		}
		if _, err := sl.Draw(s.From, s.To, o); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

func (d *drawer) legendFor() *viz.Legend {
	if d.leg == nil {
		d.leg = viz.NewLegend(d.c)
	}
	return d.leg
}

func (d *drawer) legend(doc *document.Document) error {
	for i, l := range doc.Legend {
		st := style.Default().With(d.base).With(l.Line)
		if _, err := d.legendFor().DrawLine(l.Label, st); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

func (d *drawer) annotations(doc *document.Document) error {
	for i, a := range doc.Annotations {
		o := a.Options()
		o.Style = d.base.Merge(o.Style)
		if _, err := d.legendFor().DrawAnnotation(a.Text, a.X, a.Y, o); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

// fitLimits derives data limits the figure leaves unset from series and
// slope values, leaving room on the right (and left, for slopes) for
// labels.
func fitLimits(c *canvas.Canvas, doc *document.Document) error {
	var xs, ys []float64
	switch {
	case len(doc.Series) > 0:
		for _, s := range doc.Series {
			xs = append(xs, s.Xs()...)
			ys = append(ys, s.Y...)
		}
	case len(doc.Slopes) > 0:
		for _, s := range doc.Slopes {
			ys = append(ys, s.From, s.To)
		}
		if len(doc.Figure.XLim) == 0 {
			if err := c.SetXLim(-slopeLabelRoom, 1+slopeLabelRoom); err != nil {
				return err
			}
		}
	default:
		return nil
	}

	if len(doc.Figure.XLim) == 0 && len(xs) > 0 {
		lo, hi := span(xs)
		if err := c.SetXLim(lo, hi+seriesLabelRoom*(hi-lo)); err != nil {
			return err
		}
	}
	if len(doc.Figure.YLim) == 0 && len(ys) > 0 {
		lo, hi := span(ys)
		pad := fitMargin * (hi - lo)
		if err := c.SetYLim(lo-pad, hi+pad); err != nil {
			return err
		}
	}
	return nil
}

// span returns the range of vs, widened to a unit interval when flat.
func span(vs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi-lo == 0 {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi
}
