package sink

import (
	"bytes"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/fonts"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	faces map[faceKey]font.Face
}

type faceKey struct {
	v    fonts.Variant
	size float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes c.
func RenderPNG(c *canvas.Canvas, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, faces: map[faceKey]font.Face{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "png scale must be positive, got %g", r.scale)
	}

	w, h := c.Size()
	dc := gg.NewContext(px(w*r.scale), px(h*r.scale))
	bg, err := style.ParseColor(c.Background(), 1)
	if err != nil {
		return nil, err
	}
	dc.SetColor(bg)
	dc.Clear()

	s := r.scale
	at := func(p geom.Point) (float64, float64) {
		d := c.ToDisplay(p)
		return d.X * s, d.Y * s
	}

	for _, it := range c.Items() {
		st := it.Style
		switch it.Kind {
		case canvas.KindText:
			tl, err := c.TextLayout(it.Handle)
			if err != nil {
				return nil, err
			}
			if st.Background != "" || st.Border != "" {
				b := tl.Box
				dc.DrawRectangle(b.X0*s, b.Y0*s, b.Width()*s, b.Height()*s)
				if err := r.fillStroke(dc, st.Background, st.Border, st.BorderWidth, st.Alpha); err != nil {
					return nil, err
				}
			}
			if it.Text == "" {
				continue
			}
			face, err := r.face(canvas.Variant(st), st.FontSize*s)
			if err != nil {
				return nil, err
			}
			dc.SetFontFace(face)
			if err := setColor(dc, st.Color, st.Alpha); err != nil {
				return nil, err
			}
			dc.DrawString(it.Text, tl.Origin.X*s, tl.Origin.Y*s)
		case canvas.KindLine, canvas.KindPolyline:
			for i, p := range it.Points {
				x, y := at(p)
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.SetLineWidth(st.LineWidth * s)
			dc.SetLineJoin(gg.LineJoinRound)
			if err := setColor(dc, st.Color, st.Alpha); err != nil {
				return nil, err
			}
			dc.Stroke()
		case canvas.KindRect:
			b := c.Transform(displaySpace).ApplyBox(rectBox(it))
			dc.DrawRectangle(b.X0*s, b.Y0*s, b.Width()*s, b.Height()*s)
			if err := r.fillStroke(dc, st.Background, st.Border, st.BorderWidth, st.Alpha); err != nil {
				return nil, err
			}
		case canvas.KindCircle:
			x, y := at(it.At)
			dc.DrawCircle(x, y, it.Radius*s)
			if err := setColor(dc, st.Color, st.Alpha); err != nil {
				return nil, err
			}
			dc.Fill()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// face returns a face owned by this render. Faces hold glyph buffers, so
// concurrent renders never share one.
func (r pngRenderer) face(v fonts.Variant, size float64) (font.Face, error) {
	key := faceKey{v, size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(v, size)
	if err != nil {
		return nil, err
	}
	r.faces[key] = f
	return f, nil
}

func (r pngRenderer) fillStroke(dc *gg.Context, fill, border string, width, alpha float64) error {
	defer dc.ClearPath()
	if fill != "" {
		if err := setColor(dc, fill, alpha); err != nil {
			return err
		}
		if border != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if border != "" {
		if width == 0 {
			width = 1
		}
		dc.SetLineWidth(width * r.scale)
		if err := setColor(dc, border, alpha); err != nil {
			return err
		}
		dc.Stroke()
	}
	return nil
}

func setColor(dc *gg.Context, hex string, alpha float64) error {
	c, err := style.ParseColor(hex, alpha)
	if err != nil {
		return err
	}
	dc.SetColor(c)
	return nil
}
