package canvas

import (
	"math"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/fonts"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// TextLayout is the resolved geometry of a text item.
type TextLayout struct {
	// Data is the padded box in data coordinates.
	Data geom.Box
	// Box is the padded box in pixels.
	Box geom.Box
	// Origin is the left end of the baseline in pixels.
	Origin  geom.Point
	Metrics fonts.Metrics
}

// Variant picks the Go font matching st.
func Variant(st style.Style) fonts.Variant {
	return fonts.Variant{
		Mono:   st.FontFamily == style.FamilyMono,
		Bold:   st.FontWeight == style.WeightBold,
		Italic: st.Italic,
	}
}

// TextLayout resolves where the text item h is drawn.
func (c *Canvas) TextLayout(h surface.Handle) (TextLayout, error) {
	it, err := c.item(h)
	if err != nil {
		return TextLayout{}, err
	}
	if it.Kind != KindText {
		return TextLayout{}, errors.New(errors.ErrCodeInvalidInput, "element %d is a %s, not text", h, it.Kind)
	}
	return c.layoutText(it)
}

func (c *Canvas) layoutText(it *Item) (TextLayout, error) {
	st := it.Style
	m, err := fonts.Measure(Variant(st), st.FontSize, it.Text)
	if err != nil {
		return TextLayout{}, errors.Wrap(errors.ErrCodeInternal, err, "measure %q", it.Text)
	}

	t := c.Transform(surface.Display)
	sx, sy := math.Abs(t.Sx), math.Abs(t.Sy)
	w := m.Width/sx + 2*st.PadX
	h := m.Height()/sy + 2*st.PadY

	var x0, y0 float64
	switch st.HAlign {
	case style.HAlignCenter:
		x0 = it.At.X - w/2
	case style.HAlignRight:
		x0 = it.At.X - w
	default:
		x0 = it.At.X
	}
	switch st.VAlign {
	case style.VAlignTop:
		y0 = it.At.Y - h
	case style.VAlignBottom:
		y0 = it.At.Y
	default:
		y0 = it.At.Y - h/2
	}

	data := geom.Box{X0: x0, Y0: y0, X1: x0 + w, Y1: y0 + h}
	px := t.ApplyBox(data)
	return TextLayout{
		Data: data,
		Box:  px,
		Origin: geom.Point{
			X: px.X0 + st.PadX*sx,
			Y: px.Y0 + st.PadY*sy + m.Ascent,
		},
		Metrics: m,
	}, nil
}
