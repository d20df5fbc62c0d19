package text

import (
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// DefaultLineHeight is the line spacing multiplier used when Options
// leaves LineHeight at zero.
const DefaultLineHeight = 1.0

// punctuationPull is how far punctuation in a justified line is pulled
// towards the preceding word, in units of the per-side word padding.
const punctuationPull = 1.25

// XRange is the horizontal span of a text block in data coordinates.
type XRange struct {
	Start, End float64
	open       bool
}

// Between spans [start, end].
func Between(start, end float64) XRange { return XRange{Start: start, End: end} }

// From spans from start to the right edge of the surface.
func From(start float64) XRange { return XRange{Start: start, open: true} }

// Options configures Annotate.
type Options struct {
	X XRange
	// Y is where the block starts; the first line sits one line below it.
	Y float64
	// WordSpacing is the gap between words in data units.
	WordSpacing float64
	// LineHeight scales the measured height of a line.
	LineHeight float64
	Align      Align
	WithLegend bool
	// LPad and RPad shrink the range by a fraction of its width.
	LPad, RPad float64
	// TPad moves the block down by a fraction of the surface height.
	TPad float64
	// Style is layered over style.Default for every token.
	Style style.Override
}

// Placed is a token that has been drawn.
type Placed struct {
	Handle surface.Handle
	Token  Token
}

// Line is one row of placed tokens.
type Line struct {
	Index    int
	Y        float64
	Elements []Placed
}

// LegendEntry is the label drawn for a token category.
type LegendEntry struct {
	Label  string
	Handle surface.Handle
}

// AnnotatedLine pairs a line with the legend entries first seen on it.
type AnnotatedLine struct {
	Legend []LegendEntry
	Line   Line
}

// Annotate lays out tokens on s and returns one entry per line, in order.
// Parameters are validated before anything is placed; invalid input yields
// an INVALID_PARAMETER error and leaves the surface untouched.
func Annotate(s surface.Surface, tokens []Token, opts Options) ([]AnnotatedLine, error) {
	a, err := newAnnotator(s, opts)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	lines, err := a.wrap(tokens)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		if err := a.align(lines[i], a.mode.forLine(i == len(lines)-1)); err != nil {
			return nil, err
		}
	}
	return a.result(lines)
}

// metric is a cached measurement: the box's left edge relative to the
// anchor, and its width.
type metric struct {
	dx, w float64
}

type item struct {
	h     surface.Handle
	tok   Token
	st    style.Style
	x     float64 // current box left edge
	punct bool
}

type line struct {
	y     float64
	items []*item
}

type annotator struct {
	s       surface.Surface
	opts    Options
	mode    Align
	base    style.Style
	x0, x1  float64
	top     float64
	spacing float64
	eps     float64
	cache   map[surface.Handle]metric
}

// Validate checks the paddings, spacing and alignment without touching
// any surface.
func (o Options) Validate() error {
	_, err := o.mode()
	return err
}

func (o Options) mode() (Align, error) {
	if err := errors.ValidatePadding(o.LPad, o.RPad, o.TPad); err != nil {
		return "", err
	}
	if err := errors.ValidateNonNegative("word spacing", o.WordSpacing); err != nil {
		return "", err
	}
	if err := errors.ValidateNonNegative("line height", o.LineHeight); err != nil {
		return "", err
	}
	if o.Align == "" {
		return AlignLeft, nil
	}
	return ParseAlign(string(o.Align))
}

func newAnnotator(s surface.Surface, opts Options) (*annotator, error) {
	mode, err := opts.mode()
	if err != nil {
		return nil, err
	}
	xr := opts.X
	if xr.open {
		_, xr.End = s.Extent()
	}
	if err := errors.ValidateRange("x range", xr.Start, xr.End); err != nil {
		return nil, err
	}
	if opts.LineHeight == 0 {
		opts.LineHeight = DefaultLineHeight
	}

	base := style.Default().With(opts.Style)
	lh, err := surface.LineHeight(s, base)
	if err != nil {
		return nil, err
	}
	ymin, ymax := s.VerticalExtent()
	width := xr.End - xr.Start

	return &annotator{
		s:       s,
		opts:    opts,
		mode:    mode,
		base:    base,
		x0:      xr.Start + opts.LPad*width,
		x1:      xr.End - opts.RPad*width,
		top:     opts.Y - opts.TPad*(ymax-ymin),
		spacing: opts.LineHeight * lh,
		eps:     1e-9 * width,
		cache:   map[surface.Handle]metric{},
	}, nil
}

func (a *annotator) lineY(i int) float64 {
	return a.top - float64(i+1)*a.spacing
}

func (a *annotator) measure(h surface.Handle) (metric, error) {
	if m, ok := a.cache[h]; ok {
		return m, nil
	}
	e, err := a.s.Element(h)
	if err != nil {
		return metric{}, err
	}
	box, err := a.s.Measure(h, surface.Data)
	if err != nil {
		return metric{}, err
	}
	m := metric{dx: box.X0 - e.At.X, w: box.Width()}
	a.cache[h] = m
	return m, nil
}

// moveTo positions it so its box starts at x on row y.
func (a *annotator) moveTo(it *item, x, y float64) error {
	m, err := a.measure(it.h)
	if err != nil {
		return err
	}
	it.x = x
	return a.s.Move(it.h, geom.Point{X: x - m.dx, Y: y})
}

func (a *annotator) restyle(it *item, st style.Style) error {
	delete(a.cache, it.h)
	it.st = st
	return a.s.Restyle(it.h, st)
}

// wrap places every token left to right, breaking before any token whose
// box would cross the right edge unless it is alone on its line.
func (a *annotator) wrap(tokens []Token) ([]*line, error) {
	cur := &line{y: a.lineY(0)}
	lines := []*line{cur}
	cursor := a.x0

	for _, tok := range tokens {
		it := &item{tok: tok, st: a.base.With(tok.Style), punct: IsPunctuation(tok.Text)}
		x := a.x0
		if len(cur.items) > 0 {
			x = cursor
			if !it.punct {
				x += a.opts.WordSpacing
			}
		}
		it.h = a.s.PlaceText(tok.Text, geom.Point{X: x, Y: cur.y}, it.st)
		m, err := a.measure(it.h)
		if err != nil {
			return nil, err
		}
		if len(cur.items) > 0 && x+m.w > a.x1+a.eps {
			cur = &line{y: a.lineY(len(lines))}
			lines = append(lines, cur)
			x = a.x0
		}
		if err := a.moveTo(it, x, cur.y); err != nil {
			return nil, err
		}
		cur.items = append(cur.items, it)
		cursor = x + m.w
	}
	return lines, nil
}

func (a *annotator) align(ln *line, mode lineMode) error {
	switch mode {
	case modeRight:
		return a.alignRight(ln)
	case modeCenter:
		return a.alignCenter(ln)
	case modeJustify:
		return a.justify(ln)
	}
	return nil
}

func (a *annotator) alignRight(ln *line) error {
	offset := 0.0
	for i := len(ln.items) - 1; i >= 0; i-- {
		it := ln.items[i]
		m, err := a.measure(it.h)
		if err != nil {
			return err
		}
		offset += m.w
		if err := a.moveTo(it, a.x1-offset, ln.y); err != nil {
			return err
		}
		if !it.punct {
			offset += a.opts.WordSpacing
		}
	}
	return nil
}

func (a *annotator) alignCenter(ln *line) error {
	last := ln.items[len(ln.items)-1]
	m, err := a.measure(last.h)
	if err != nil {
		return err
	}
	shift := (a.x1 - (last.x + m.w)) / 2
	for _, it := range ln.items {
		if err := a.moveTo(it, it.x+shift, ln.y); err != nil {
			return err
		}
	}
	return nil
}

// justify splits the line's slack evenly across its words as horizontal
// padding so the padded boxes tile the line from edge to edge.
func (a *annotator) justify(ln *line) error {
	words := 0
	used := 0.0
	for _, it := range ln.items {
		m, err := a.measure(it.h)
		if err != nil {
			return err
		}
		used += m.w
		if !it.punct {
			words++
		}
	}
	slack := (a.x1 - a.x0) - used
	if words == 0 || slack < 0 {
		return nil
	}
	// trailing punctuation is pulled left too, so its pull comes out of the pad
	gaps := float64(2 * words)
	if ln.items[len(ln.items)-1].punct {
		gaps -= punctuationPull
	}
	pad := slack / gaps

	offset := a.x0
	for _, it := range ln.items {
		if it.punct {
			m, err := a.measure(it.h)
			if err != nil {
				return err
			}
			if err := a.moveTo(it, offset-punctuationPull*pad, ln.y); err != nil {
				return err
			}
			offset += m.w
			continue
		}
		st := it.st
		st.PadX += pad
		if err := a.restyle(it, st); err != nil {
			return err
		}
		m, err := a.measure(it.h)
		if err != nil {
			return err
		}
		if err := a.moveTo(it, offset, ln.y); err != nil {
			return err
		}
		offset += m.w
	}
	return nil
}

func (a *annotator) result(lines []*line) ([]AnnotatedLine, error) {
	out := make([]AnnotatedLine, len(lines))
	seen := map[string]bool{}
	for i, ln := range lines {
		placed := make([]Placed, len(ln.items))
		for j, it := range ln.items {
			placed[j] = Placed{Handle: it.h, Token: it.tok}
		}
		out[i].Line = Line{Index: i, Y: ln.y, Elements: placed}

		if !a.opts.WithLegend {
			continue
		}
		var fresh []*item
		for _, it := range ln.items {
			if it.tok.Label != "" && !seen[it.tok.Label] {
				seen[it.tok.Label] = true
				fresh = append(fresh, it)
			}
		}
		legend, err := a.legend(fresh, ln.y)
		if err != nil {
			return nil, err
		}
		out[i].Legend = legend
	}
	return out, nil
}
