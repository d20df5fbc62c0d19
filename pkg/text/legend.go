package text

import (
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// legendGapFactor separates legend labels from each other and from the
// text block, in multiples of the word spacing.
const legendGapFactor = 4

// legend draws one label per item, right-aligned against the left edge of
// the block, in the items' order.
func (a *annotator) legend(items []*item, y float64) ([]LegendEntry, error) {
	if len(items) == 0 {
		return nil, nil
	}
	gap := legendGapFactor * a.opts.WordSpacing
	labels := make([]*item, len(items))
	for i, src := range items {
		labels[i] = &item{tok: Token{Text: src.tok.Label}, st: src.st}
		labels[i].h = a.s.PlaceText(src.tok.Label, geom.Point{X: a.x0, Y: y}, src.st)
	}

	cursor := a.x0 - gap
	for i := len(labels) - 1; i >= 0; i-- {
		m, err := a.measure(labels[i].h)
		if err != nil {
			return nil, err
		}
		if err := a.moveTo(labels[i], cursor-m.w, y); err != nil {
			return nil, err
		}
		cursor -= m.w + gap
	}

	entries := make([]LegendEntry, len(labels))
	for i, l := range labels {
		entries[i] = LegendEntry{Label: l.tok.Text, Handle: l.h}
	}
	return entries, nil
}

// Handles returns every element drawn for lines, legend labels included.
func Handles(lines []AnnotatedLine) []surface.Handle {
	var hs []surface.Handle
	for _, l := range lines {
		for _, e := range l.Legend {
			hs = append(hs, e.Handle)
		}
		for _, p := range l.Line.Elements {
			hs = append(hs, p.Handle)
		}
	}
	return hs
}

// Bounds returns the union of the data-space boxes of every element in
// lines. ok is false when lines drew nothing.
func Bounds(s surface.Surface, lines []AnnotatedLine) (box geom.Box, ok bool, err error) {
	for _, h := range Handles(lines) {
		b, err := s.Measure(h, surface.Data)
		if err != nil {
			return geom.Box{}, false, err
		}
		if !ok {
			box, ok = b, true
			continue
		}
		box = box.Union(b)
	}
	return box, ok, nil
}
