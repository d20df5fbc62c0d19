package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/fonts"
	"github.com/matzehuels/multiplex/pkg/style"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title string
	boxes bool
}

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithDebugBoxes outlines every text bounding box.
func WithDebugBoxes() SVGOption { return func(r *svgRenderer) { r.boxes = true } }

// RenderSVG draws every live item of c as an SVG document.
func RenderSVG(c *canvas.Canvas, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	w, h := c.Size()
	doc := svg.New(&buf)
	doc.Start(px(w), px(h))
	if r.title != "" {
		doc.Title(r.title)
	}
	doc.Rect(0, 0, px(w), px(h), "fill:"+c.Background())

	for _, it := range c.Items() {
		switch it.Kind {
		case canvas.KindText:
			r.text(doc, c, it)
		case canvas.KindLine, canvas.KindPolyline:
			xs := make([]int, len(it.Points))
			ys := make([]int, len(it.Points))
			for i, p := range it.Points {
				d := c.ToDisplay(p)
				xs[i], ys[i] = px(d.X), px(d.Y)
			}
			doc.Polyline(xs, ys, strokeStyle(it.Style))
		case canvas.KindRect:
			d := c.Transform(displaySpace).ApplyBox(rectBox(it))
			doc.Rect(px(d.X0), px(d.Y0), px(d.Width()), px(d.Height()), fillStyle(it.Style))
		case canvas.KindCircle:
			d := c.ToDisplay(it.At)
			doc.Circle(px(d.X), px(d.Y), px(it.Radius), fmt.Sprintf("fill:%s;fill-opacity:%g", it.Style.Color, it.Style.Alpha))
		}
	}

	doc.End()
	return buf.Bytes()
}

func (r svgRenderer) text(doc *svg.SVG, c *canvas.Canvas, it canvas.Item) {
	tl, err := c.TextLayout(it.Handle)
	if err != nil {
		return
	}
	st := it.Style
	if st.Background != "" || st.Border != "" {
		doc.Rect(px(tl.Box.X0), px(tl.Box.Y0), px(tl.Box.Width()), px(tl.Box.Height()), fillStyle(st))
	} else if r.boxes {
		doc.Rect(px(tl.Box.X0), px(tl.Box.Y0), px(tl.Box.Width()), px(tl.Box.Height()), "fill:none;stroke:#ff00ff;stroke-width:0.5")
	}
	if it.Text == "" {
		return
	}
	doc.Text(px(tl.Origin.X), px(tl.Origin.Y), it.Text, textStyle(st))
}

func textStyle(st style.Style) string {
	family := fonts.FontFamily
	if st.FontFamily == style.FamilyMono {
		family = fonts.MonoFontFamily
	}
	parts := []string{
		"font-family:" + family,
		fmt.Sprintf("font-size:%gpx", st.FontSize),
		"fill:" + st.Color,
	}
	if st.FontWeight == style.WeightBold {
		parts = append(parts, "font-weight:bold")
	}
	if st.Italic {
		parts = append(parts, "font-style:italic")
	}
	if st.Alpha < 1 {
		parts = append(parts, fmt.Sprintf("fill-opacity:%g", st.Alpha))
	}
	return strings.Join(parts, ";")
}

func strokeStyle(st style.Style) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-opacity:%g;stroke-linejoin:round", st.Color, st.LineWidth, st.Alpha)
}

func fillStyle(st style.Style) string {
	fill := st.Background
	if fill == "" {
		fill = "none"
	}
	s := fmt.Sprintf("fill:%s;fill-opacity:%g", fill, st.Alpha)
	if st.Border != "" {
		bw := st.BorderWidth
		if bw == 0 {
			bw = 1
		}
		s += fmt.Sprintf(";stroke:%s;stroke-width:%g", st.Border, bw)
	}
	return s
}

func px(v float64) int { return int(math.Round(v)) }
