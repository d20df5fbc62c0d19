package document

import (
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/text"
	"github.com/matzehuels/multiplex/pkg/viz"
)

// Document is a decoded chart description.
type Document struct {
	Title       string              `toml:"title" yaml:"title"`
	Figure      Figure              `toml:"figure" yaml:"figure"`
	Text        *TextSection        `toml:"text" yaml:"text"`
	Series      []SeriesSection     `toml:"series" yaml:"series"`
	Slopes      []SlopeSection      `toml:"slope" yaml:"slope"`
	Bars        []BarsSection       `toml:"bars" yaml:"bars"`
	Population  *PopulationSection  `toml:"population" yaml:"population"`
	Graph       *GraphSection       `toml:"graph" yaml:"graph"`
	Legend      []LegendSection     `toml:"legend" yaml:"legend"`
	Annotations []AnnotationSection `toml:"annotation" yaml:"annotation"`

	// Source is the raw document, kept for cache keys.
	Source []byte `toml:"-" yaml:"-"`
	Format Format `toml:"-" yaml:"-"`
}

// Figure sets up the canvas. Zero values take the canvas defaults.
type Figure struct {
	Width      float64   `toml:"width" yaml:"width"`
	Height     float64   `toml:"height" yaml:"height"`
	Margin     float64   `toml:"margin" yaml:"margin"`
	XLim       []float64 `toml:"xlim" yaml:"xlim"`
	YLim       []float64 `toml:"ylim" yaml:"ylim"`
	Background string    `toml:"background" yaml:"background"`
	// Font is "sans" or "mono".
	Font     string  `toml:"font" yaml:"font"`
	FontSize float64 `toml:"font_size" yaml:"font_size"`
}

// Base returns the style override every section is layered on.
func (f Figure) Base() style.Override {
	var o style.Override
	if f.Font != "" {
		o.FontFamily = style.Ptr(f.Font)
	}
	if f.FontSize != 0 {
		o.FontSize = style.Ptr(f.FontSize)
	}
	return o
}

// TextSection is a block of annotated text. Exactly one of Content and
// Tokens is set.
type TextSection struct {
	Content     string         `toml:"content" yaml:"content"`
	Tokens      []text.Token   `toml:"tokens" yaml:"tokens"`
	Align       string         `toml:"align" yaml:"align"`
	WordSpacing float64        `toml:"word_spacing" yaml:"word_spacing"`
	LineHeight  float64        `toml:"line_height" yaml:"line_height"`
	LPad        float64        `toml:"lpad" yaml:"lpad"`
	RPad        float64        `toml:"rpad" yaml:"rpad"`
	TPad        float64        `toml:"tpad" yaml:"tpad"`
	Legend      bool           `toml:"legend" yaml:"legend"`
	Style       style.Override `toml:"style" yaml:"style"`
}

// Options converts the section to annotator options.
func (t TextSection) Options() text.Options {
	return text.Options{
		WordSpacing: t.WordSpacing,
		LineHeight:  t.LineHeight,
		Align:       text.Align(t.Align),
		WithLegend:  t.Legend,
		LPad:        t.LPad,
		RPad:        t.RPad,
		TPad:        t.TPad,
		Style:       t.Style,
	}
}

// TokenList returns the section's tokens, splitting Content when no
// tokens are given.
func (t TextSection) TokenList() []text.Token {
	if len(t.Tokens) > 0 {
		return t.Tokens
	}
	return text.Split(t.Content)
}

// SeriesSection is one line series. X defaults to 0, 1, 2, ...
type SeriesSection struct {
	Label      string         `toml:"label" yaml:"label"`
	X          []float64      `toml:"x" yaml:"x"`
	Y          []float64      `toml:"y" yaml:"y"`
	Line       style.Override `toml:"line" yaml:"line"`
	LabelStyle style.Override `toml:"label_style" yaml:"label_style"`
}

// Xs returns the x values, generating indexes when X is omitted.
func (s SeriesSection) Xs() []float64 {
	if len(s.X) > 0 {
		return s.X
	}
	xs := make([]float64, len(s.Y))
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// SlopeSection is one slope from From at x=0 to To at x=1.
type SlopeSection struct {
	From       float64        `toml:"from" yaml:"from"`
	To         float64        `toml:"to" yaml:"to"`
	LeftLabel  string         `toml:"left_label" yaml:"left_label"`
	RightLabel string         `toml:"right_label" yaml:"right_label"`
	Line       style.Override `toml:"line" yaml:"line"`
	LabelStyle style.Override `toml:"label_style" yaml:"label_style"`
}

// BarsSection is one 100% bar.
type BarsSection struct {
	Bars          []viz.Bar      `toml:"bar" yaml:"bar"`
	MinPercentage *float64       `toml:"min_percentage" yaml:"min_percentage"`
	Pad           *float64       `toml:"pad" yaml:"pad"`
	Height        float64        `toml:"height" yaml:"height"`
	Style         style.Override `toml:"style" yaml:"style"`
	LabelStyle    style.Override `toml:"label_style" yaml:"label_style"`
}

// Options converts the section to bar options, keeping defaults for
// unset fields.
func (b BarsSection) Options() viz.Bar100Options {
	o := viz.DefaultBar100Options()
	if b.MinPercentage != nil {
		o.MinPercentage = *b.MinPercentage
	}
	if b.Pad != nil {
		o.Pad = *b.Pad
	}
	if b.Height != 0 {
		o.Height = b.Height
	}
	o.Style = b.Style
	o.LabelStyle = b.LabelStyle
	return o
}

// PopulationSection is a marker grid.
type PopulationSection struct {
	Count     int              `toml:"count" yaml:"count"`
	Rows      int              `toml:"rows" yaml:"rows"`
	Height    float64          `toml:"height" yaml:"height"`
	Name      string           `toml:"name" yaml:"name"`
	ShowStart bool             `toml:"show_start" yaml:"show_start"`
	Radius    float64          `toml:"radius" yaml:"radius"`
	Marker    style.Override   `toml:"marker" yaml:"marker"`
	Items     []style.Override `toml:"items" yaml:"items"`
}

// Options converts the section to population options.
func (p PopulationSection) Options() viz.PopulationOptions {
	return viz.PopulationOptions{
		Rows:      p.Rows,
		Height:    p.Height,
		Name:      p.Name,
		ShowStart: p.ShowStart,
		Radius:    p.Radius,
		Marker:    p.Marker,
		Items:     p.Items,
	}
}

// GraphSection is a node-link diagram.
type GraphSection struct {
	Layout     string         `toml:"layout" yaml:"layout"`
	Seed       int            `toml:"seed" yaml:"seed"`
	Radius     float64        `toml:"radius" yaml:"radius"`
	Nodes      []viz.Node     `toml:"nodes" yaml:"nodes"`
	Edges      []viz.Edge     `toml:"edges" yaml:"edges"`
	NodeStyle  style.Override `toml:"node_style" yaml:"node_style"`
	EdgeStyle  style.Override `toml:"edge_style" yaml:"edge_style"`
	LabelStyle style.Override `toml:"label_style" yaml:"label_style"`
}

// Options converts the section to graph options.
func (g GraphSection) Options() viz.GraphOptions {
	return viz.GraphOptions{
		Layout:     g.Layout,
		Seed:       g.Seed,
		Radius:     g.Radius,
		NodeStyle:  g.NodeStyle,
		EdgeStyle:  g.EdgeStyle,
		LabelStyle: g.LabelStyle,
	}
}

// LegendSection is a line swatch with its label.
type LegendSection struct {
	Label string         `toml:"label" yaml:"label"`
	Line  style.Override `toml:"line" yaml:"line"`
}

// AnnotationSection is free text placed in axes coordinates.
type AnnotationSection struct {
	Text        string         `toml:"text" yaml:"text"`
	X           float64        `toml:"x" yaml:"x"`
	Y           float64        `toml:"y" yaml:"y"`
	Align       string         `toml:"align" yaml:"align"`
	WordSpacing float64        `toml:"word_spacing" yaml:"word_spacing"`
	Style       style.Override `toml:"style" yaml:"style"`
}

// Options converts the section to annotator options.
func (a AnnotationSection) Options() text.Options {
	return text.Options{
		WordSpacing: a.WordSpacing,
		Align:       text.Align(a.Align),
		Style:       a.Style,
	}
}

// IsEmpty reports whether the document draws nothing.
func (d *Document) IsEmpty() bool {
	return d.Text == nil && d.Population == nil && d.Graph == nil &&
		len(d.Series) == 0 && len(d.Slopes) == 0 && len(d.Bars) == 0 &&
		len(d.Legend) == 0 && len(d.Annotations) == 0
}

// Sections counts the chart sections in d.
func (d *Document) Sections() int {
	n := len(d.Series) + len(d.Slopes) + len(d.Bars) + len(d.Legend) + len(d.Annotations)
	for _, set := range []bool{d.Text != nil, d.Population != nil, d.Graph != nil} {
		if set {
			n++
		}
	}
	return n
}
