package document

import (
	"fmt"
	"math"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/text"
)

// Validate checks every section. Errors are INVALID_DOCUMENT and name the
// offending section.
func (d *Document) Validate() error {
	if err := d.Figure.validate(); err != nil {
		return invalid("figure", err)
	}
	if d.IsEmpty() {
		return errors.New(errors.ErrCodeInvalidDocument, "document draws nothing: add a text, series, slope, bars, population, graph, legend or annotation section")
	}

	// these sections rescale the canvas to their own coordinates
	var exclusive []string
	if d.Text != nil {
		exclusive = append(exclusive, "text")
	}
	if len(d.Bars) > 0 {
		exclusive = append(exclusive, "bars")
	}
	if d.Population != nil {
		exclusive = append(exclusive, "population")
	}
	if len(exclusive) > 1 {
		return errors.New(errors.ErrCodeInvalidDocument, "sections %v cannot share a figure", exclusive)
	}

	if d.Text != nil {
		if err := d.Text.validate(); err != nil {
			return invalid("text", err)
		}
	}
	for i, s := range d.Series {
		if err := s.validate(); err != nil {
			return invalid(fmt.Sprintf("series[%d]", i), err)
		}
	}
	for i, s := range d.Slopes {
		if err := checkStyles(s.Line, s.LabelStyle); err != nil {
			return invalid(fmt.Sprintf("slope[%d]", i), err)
		}
	}
	for i, b := range d.Bars {
		if err := b.validate(); err != nil {
			return invalid(fmt.Sprintf("bars[%d]", i), err)
		}
	}
	if d.Population != nil {
		if err := d.Population.validate(); err != nil {
			return invalid("population", err)
		}
	}
	if d.Graph != nil {
		if err := d.Graph.validate(); err != nil {
			return invalid("graph", err)
		}
	}
	for i, l := range d.Legend {
		if l.Label == "" {
			return invalid(fmt.Sprintf("legend[%d]", i), fmt.Errorf("label is required"))
		}
		if err := checkStyles(l.Line); err != nil {
			return invalid(fmt.Sprintf("legend[%d]", i), err)
		}
	}
	for i, a := range d.Annotations {
		if err := a.validate(); err != nil {
			return invalid(fmt.Sprintf("annotation[%d]", i), err)
		}
	}
	return nil
}

func invalid(section string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", section)
}

func (f Figure) validate() error {
	if f.Width < 0 || f.Height < 0 || f.Margin < 0 {
		return fmt.Errorf("width, height and margin must not be negative")
	}
	for name, lim := range map[string][]float64{"xlim": f.XLim, "ylim": f.YLim} {
		if len(lim) == 0 {
			continue
		}
		if len(lim) != 2 {
			return fmt.Errorf("%s needs exactly 2 values, got %d", name, len(lim))
		}
		if err := errors.ValidateRange(name, lim[0], lim[1]); err != nil {
			return err
		}
	}
	switch f.Font {
	case "", style.FamilySans, style.FamilyMono:
	default:
		return fmt.Errorf("unknown font %q (want %s or %s)", f.Font, style.FamilySans, style.FamilyMono)
	}
	if f.FontSize < 0 {
		return fmt.Errorf("font_size must not be negative")
	}
	if f.Background != "" {
		if _, err := style.ParseColor(f.Background, 1); err != nil {
			return err
		}
	}
	return nil
}

func (t *TextSection) validate() error {
	switch {
	case t.Content == "" && len(t.Tokens) == 0:
		return fmt.Errorf("one of content or tokens is required")
	case t.Content != "" && len(t.Tokens) > 0:
		return fmt.Errorf("content and tokens are mutually exclusive")
	}
	if t.Align != "" {
		if _, err := text.ParseAlign(t.Align); err != nil {
			return err
		}
	}
	if err := errors.ValidatePadding(t.LPad, t.RPad, t.TPad); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("word_spacing", t.WordSpacing); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("line_height", t.LineHeight); err != nil {
		return err
	}
	styles := []style.Override{t.Style}
	for _, tok := range t.Tokens {
		styles = append(styles, tok.Style)
	}
	return checkStyles(styles...)
}

func (s *SeriesSection) validate() error {
	if len(s.X) > 0 && len(s.X) != len(s.Y) {
		return fmt.Errorf("x has %d values but y has %d", len(s.X), len(s.Y))
	}
	for _, v := range append(append([]float64(nil), s.X...), s.Y...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("values must be finite")
		}
	}
	return checkStyles(s.Line, s.LabelStyle)
}

func (b *BarsSection) validate() error {
	if len(b.Bars) == 0 {
		return fmt.Errorf("at least one bar is required")
	}
	if b.Height < 0 || b.Height > 1 {
		return fmt.Errorf("height must be in (0, 1], got %g", b.Height)
	}
	styles := []style.Override{b.Style, b.LabelStyle}
	for _, bar := range b.Bars {
		if bar.Value < 0 {
			return fmt.Errorf("bar values must not be negative, got %g", bar.Value)
		}
		styles = append(styles, bar.Style)
	}
	return checkStyles(styles...)
}

func (p *PopulationSection) validate() error {
	if p.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", p.Count)
	}
	if p.Rows < 1 {
		return fmt.Errorf("rows must be at least 1, got %d", p.Rows)
	}
	if p.Height < 0 || p.Height > 1 {
		return fmt.Errorf("height must be in (0, 1], got %g", p.Height)
	}
	return checkStyles(append([]style.Override{p.Marker}, p.Items...)...)
}

func (g *GraphSection) validate() error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("at least one node is required")
	}
	ids := make(map[string]bool, len(g.Nodes))
	styles := []style.Override{g.NodeStyle, g.EdgeStyle, g.LabelStyle}
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node without id")
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node %q", n.ID)
		}
		ids[n.ID] = true
		styles = append(styles, n.Style)
	}
	for _, e := range g.Edges {
		if !ids[e.From] || !ids[e.To] {
			return fmt.Errorf("edge %s -- %s references an unknown node", e.From, e.To)
		}
		styles = append(styles, e.Style)
	}
	return checkStyles(styles...)
}

func (a *AnnotationSection) validate() error {
	if a.Text == "" {
		return fmt.Errorf("text is required")
	}
	if a.X < 0 || a.X >= 1 {
		return fmt.Errorf("x must be in [0, 1), got %g", a.X)
	}
	if a.Align != "" {
		if _, err := text.ParseAlign(a.Align); err != nil {
			return err
		}
	}
	if err := errors.ValidateNonNegative("word_spacing", a.WordSpacing); err != nil {
		return err
	}
	return checkStyles(a.Style)
}

// checkStyles rejects alignment keywords that are unknown or not in their
// canonical lowercase form, colors that are not hex, and out-of-range values.
func checkStyles(overrides ...style.Override) error {
	for _, o := range overrides {
		if err := o.ValidateColors(); err != nil {
			return err
		}
		if o.HAlign != nil {
			h, err := style.ParseHAlign(string(*o.HAlign))
			if err != nil {
				return err
			}
			if h != *o.HAlign {
				return fmt.Errorf("halign %q must be written as %q", *o.HAlign, h)
			}
		}
		if o.VAlign != nil {
			v, err := style.ParseVAlign(string(*o.VAlign))
			if err != nil {
				return err
			}
			if v != *o.VAlign {
				return fmt.Errorf("valign %q must be written as %q", *o.VAlign, v)
			}
		}
		if o.Alpha != nil && (*o.Alpha < 0 || *o.Alpha > 1) {
			return fmt.Errorf("alpha must be in [0, 1], got %g", *o.Alpha)
		}
		if o.FontSize != nil && *o.FontSize <= 0 {
			return fmt.Errorf("font_size must be positive, got %g", *o.FontSize)
		}
	}
	return nil
}
