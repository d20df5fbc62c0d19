// Package canvas is the in-memory figure every chart is drawn on.
//
// A Canvas has a pixel size, a margin, and data limits. It keeps an ordered
// list of items (text, lines, polylines, rectangles and circles) that the
// sinks in pkg/render/sink turn into SVG, PNG, PDF or JSON. Canvas
// implements surface.Surface, measuring text with the Go fonts, so the
// layout engines can position text on it directly.
package canvas

import (
	"math"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// Default figure settings.
const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultMargin     = 40.0
	DefaultBackground = "#ffffff"
)

// Options configures a new Canvas. Zero values take the defaults.
type Options struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Margin     float64    `json:"margin"`
	XLim       [2]float64 `json:"xlim"`
	YLim       [2]float64 `json:"ylim"`
	Background string     `json:"background"`
}

// Kind is the type of a drawn item.
type Kind string

const (
	KindText     Kind = "text"
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindRect     Kind = "rect"
	KindCircle   Kind = "circle"
)

// Item is one drawn element. Coordinates are data coordinates except
// Radius, which is in pixels.
type Item struct {
	Handle surface.Handle `json:"handle"`
	Kind   Kind           `json:"kind"`
	Text   string         `json:"text,omitempty"`
	At     geom.Point     `json:"at"`
	Points []geom.Point   `json:"points,omitempty"`
	Size   geom.Point     `json:"size,omitzero"`
	Radius float64        `json:"radius,omitempty"`
	Style  style.Style    `json:"style"`

	removed bool
}

// Canvas is a figure. It is not safe for concurrent use.
type Canvas struct {
	opts  Options
	items []Item
}

var _ surface.Surface = (*Canvas)(nil)

// New creates an empty canvas.
func New(opts Options) (*Canvas, error) {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.Margin == 0 {
		opts.Margin = DefaultMargin
	}
	if opts.XLim == [2]float64{} {
		opts.XLim = [2]float64{0, 1}
	}
	if opts.YLim == [2]float64{} {
		opts.YLim = [2]float64{0, 1}
	}
	if opts.Background == "" {
		opts.Background = DefaultBackground
	}

	if err := errors.ValidatePositive("width", opts.Width); err != nil {
		return nil, err
	}
	if err := errors.ValidatePositive("height", opts.Height); err != nil {
		return nil, err
	}
	if err := errors.ValidateNonNegative("margin", opts.Margin); err != nil {
		return nil, err
	}
	if 2*opts.Margin >= math.Min(opts.Width, opts.Height) {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "margin %g leaves no plot area", opts.Margin)
	}
	if err := errors.ValidateRange("xlim", opts.XLim[0], opts.XLim[1]); err != nil {
		return nil, err
	}
	if err := errors.ValidateRange("ylim", opts.YLim[0], opts.YLim[1]); err != nil {
		return nil, err
	}
	return &Canvas{opts: opts}, nil
}

// Options returns the canvas settings with the current limits.
func (c *Canvas) Options() Options { return c.opts }

// Size returns the figure size in pixels.
func (c *Canvas) Size() (w, h float64) { return c.opts.Width, c.opts.Height }

// Background returns the figure background color.
func (c *Canvas) Background() string { return c.opts.Background }

// SetXLim changes the horizontal data limits.
func (c *Canvas) SetXLim(lo, hi float64) error {
	if err := errors.ValidateRange("xlim", lo, hi); err != nil {
		return err
	}
	c.opts.XLim = [2]float64{lo, hi}
	return nil
}

// SetYLim changes the vertical data limits.
func (c *Canvas) SetYLim(lo, hi float64) error {
	if err := errors.ValidateRange("ylim", lo, hi); err != nil {
		return err
	}
	c.opts.YLim = [2]float64{lo, hi}
	return nil
}

func (c *Canvas) Extent() (float64, float64)         { return c.opts.XLim[0], c.opts.XLim[1] }
func (c *Canvas) VerticalExtent() (float64, float64) { return c.opts.YLim[0], c.opts.YLim[1] }

// PlotArea returns the pixel box data is mapped into.
func (c *Canvas) PlotArea() geom.Box {
	m := c.opts.Margin
	return geom.Box{X0: m, Y0: m, X1: c.opts.Width - m, Y1: c.opts.Height - m}
}

// Transform returns the map from data space into space.
func (c *Canvas) Transform(space surface.Space) geom.Affine {
	xl, yl := c.opts.XLim, c.opts.YLim
	switch space {
	case surface.Display:
		p := c.PlotArea()
		return geom.MapRange(xl[0], xl[1], p.X0, p.X1, yl[0], yl[1], p.Y1, p.Y0)
	case surface.Axes:
		return geom.MapRange(xl[0], xl[1], 0, 1, yl[0], yl[1], 0, 1)
	}
	return geom.Identity
}

// ToDisplay maps a data point to pixels.
func (c *Canvas) ToDisplay(p geom.Point) geom.Point {
	return c.Transform(surface.Display).Apply(p)
}

// FromAxes maps an axes-space point to data space.
func (c *Canvas) FromAxes(p geom.Point) geom.Point {
	return c.Transform(surface.Axes).Inverse().Apply(p)
}

// Items returns the live items in drawing order.
func (c *Canvas) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if !it.removed {
			out = append(out, it)
		}
	}
	return out
}

func (c *Canvas) add(it Item) surface.Handle {
	it.Handle = surface.Handle(len(c.items) + 1)
	c.items = append(c.items, it)
	return it.Handle
}

func (c *Canvas) item(h surface.Handle) (*Item, error) {
	i := int(h) - 1
	if i < 0 || i >= len(c.items) || c.items[i].removed {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown element %d", h)
	}
	return &c.items[i], nil
}

// Item returns the item behind h.
func (c *Canvas) Item(h surface.Handle) (Item, error) {
	it, err := c.item(h)
	if err != nil {
		return Item{}, err
	}
	return *it, nil
}

// PlaceText adds a text item anchored at at.
func (c *Canvas) PlaceText(text string, at geom.Point, st style.Style) surface.Handle {
	return c.add(Item{Kind: KindText, Text: text, At: at, Style: st})
}

// Line adds a straight segment from a to b.
func (c *Canvas) Line(a, b geom.Point, st style.Style) surface.Handle {
	return c.add(Item{Kind: KindLine, At: a, Points: []geom.Point{a, b}, Style: st})
}

// Polyline adds an open path through pts.
func (c *Canvas) Polyline(pts []geom.Point, st style.Style) (surface.Handle, error) {
	if len(pts) < 2 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "polyline needs at least 2 points, got %d", len(pts))
	}
	return c.add(Item{Kind: KindPolyline, At: pts[0], Points: append([]geom.Point(nil), pts...), Style: st}), nil
}

// Rect adds a rectangle covering b. The fill is st.Background and the
// outline st.Border.
func (c *Canvas) Rect(b geom.Box, st style.Style) surface.Handle {
	return c.add(Item{Kind: KindRect, At: geom.Point{X: b.X0, Y: b.Y0}, Size: geom.Point{X: b.Width(), Y: b.Height()}, Style: st})
}

// Circle adds a marker of radius r pixels centered on at, filled with
// st.Color.
func (c *Canvas) Circle(at geom.Point, r float64, st style.Style) surface.Handle {
	return c.add(Item{Kind: KindCircle, At: at, Radius: r, Style: st})
}

func (c *Canvas) Element(h surface.Handle) (surface.Element, error) {
	it, err := c.item(h)
	if err != nil {
		return surface.Element{}, err
	}
	return surface.Element{Text: it.Text, At: it.At, Style: it.Style}, nil
}

func (c *Canvas) Move(h surface.Handle, at geom.Point) error {
	it, err := c.item(h)
	if err != nil {
		return err
	}
	dx, dy := at.X-it.At.X, at.Y-it.At.Y
	for i := range it.Points {
		it.Points[i] = it.Points[i].Add(dx, dy)
	}
	it.At = at
	return nil
}

func (c *Canvas) Restyle(h surface.Handle, st style.Style) error {
	it, err := c.item(h)
	if err != nil {
		return err
	}
	it.Style = st
	return nil
}

func (c *Canvas) Remove(h surface.Handle) error {
	it, err := c.item(h)
	if err != nil {
		return err
	}
	it.removed = true
	it.Points = nil
	return nil
}

// Measure returns the bounding box of h in space.
func (c *Canvas) Measure(h surface.Handle, space surface.Space) (geom.Box, error) {
	it, err := c.item(h)
	if err != nil {
		return geom.Box{}, err
	}
	var box geom.Box
	switch it.Kind {
	case KindText:
		tl, err := c.layoutText(it)
		if err != nil {
			return geom.Box{}, err
		}
		box = tl.Data
	case KindLine, KindPolyline:
		box = geom.NewBox(it.Points[0], it.Points[0])
		for _, p := range it.Points[1:] {
			box = box.Union(geom.NewBox(p, p))
		}
	case KindRect:
		box = geom.Box{X0: it.At.X, Y0: it.At.Y, X1: it.At.X + it.Size.X, Y1: it.At.Y + it.Size.Y}
	case KindCircle:
		m := c.Transform(surface.Display)
		rx, ry := it.Radius/math.Abs(m.Sx), it.Radius/math.Abs(m.Sy)
		box = geom.Box{X0: it.At.X - rx, Y0: it.At.Y - ry, X1: it.At.X + rx, Y1: it.At.Y + ry}
	}
	if space == surface.Data {
		return box, nil
	}
	return c.Transform(space).ApplyBox(box), nil
}
