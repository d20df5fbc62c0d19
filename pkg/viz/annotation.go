package viz

import (
	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
	"github.com/matzehuels/multiplex/pkg/text"
)

// TextAnnotation draws a block of annotated text that fills the canvas,
// with an optional legend down its left edge.
type TextAnnotation struct {
	c     *canvas.Canvas
	lines []text.AnnotatedLine
}

// NewTextAnnotation returns a TextAnnotation drawing on c.
func NewTextAnnotation(c *canvas.Canvas) *TextAnnotation {
	return &TextAnnotation{c: c}
}

// Lines returns the lines drawn by the last call to Draw.
func (t *TextAnnotation) Lines() []text.AnnotatedLine { return t.lines }

// Draw lays out tokens from the top of the canvas. The vertical limits are
// shifted so the top is at zero and extended downwards when the text runs
// past the bottom. o.X and o.Y are ignored.
func (t *TextAnnotation) Draw(tokens []text.Token, o text.Options) ([]text.AnnotatedLine, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	ymin, ymax := t.c.VerticalExtent()
	if err := t.c.SetYLim(ymin-ymax, 0); err != nil {
		return nil, err
	}

	xmin, xmax := t.c.Extent()
	reserve := 0.0
	if o.WithLegend {
		w, err := t.legendWidth(tokens, o)
		if err != nil {
			return nil, err
		}
		reserve = w
	}
	o.X = text.Between(xmin+reserve, xmax)
	o.Y = 0

	lines, err := text.Annotate(t.c, tokens, o)
	if err != nil {
		return nil, err
	}
	t.lines = lines
	if err := t.tighten(xmin); err != nil {
		return lines, err
	}

	box, ok, err := text.Bounds(t.c, lines)
	if err != nil || !ok {
		return lines, err
	}
	if lo, _ := t.c.VerticalExtent(); box.Y0 < lo {
		if err := t.c.SetYLim(box.Y0, 0); err != nil {
			return lines, err
		}
	}
	return lines, nil
}

// legendWidth estimates the room legend labels take on the widest line,
// assuming every distinct label could share one line.
func (t *TextAnnotation) legendWidth(tokens []text.Token, o text.Options) (float64, error) {
	gap := 4 * o.WordSpacing
	base := style.Default().With(o.Style)
	seen := make(map[string]bool)
	total := 0.0
	for _, tok := range tokens {
		if tok.Label == "" || seen[tok.Label] {
			continue
		}
		seen[tok.Label] = true
		w, err := t.probe(tok.Label, base.With(tok.Style))
		if err != nil {
			return 0, err
		}
		total += w + gap
	}
	return total, nil
}

func (t *TextAnnotation) probe(label string, st style.Style) (float64, error) {
	h := t.c.PlaceText(label, geom.Point{}, st)
	defer t.c.Remove(h)
	b, err := t.c.Measure(h, surface.Data)
	if err != nil {
		return 0, err
	}
	return b.Width(), nil
}

// tighten shifts everything left so the leftmost legend label starts at
// xmin.
func (t *TextAnnotation) tighten(xmin float64) error {
	left, found := 0.0, false
	for _, l := range t.lines {
		for _, e := range l.Legend {
			b, err := t.c.Measure(e.Handle, surface.Data)
			if err != nil {
				return err
			}
			if !found || b.X0 < left {
				left, found = b.X0, true
			}
		}
	}
	if !found || left <= xmin {
		return nil
	}
	shift := left - xmin
	for _, h := range text.Handles(t.lines) {
		el, err := t.c.Element(h)
		if err != nil {
			return err
		}
		if err := t.c.Move(h, geom.Point{X: el.At.X - shift, Y: el.At.Y}); err != nil {
			return err
		}
	}
	return nil
}
