// Package fonts provides the font faces used to measure and rasterize text.
//
// The Go font family ships inside golang.org/x/image, so faces are
// available without system fonts. Parsed fonts are cached for the lifetime
// of the process; faces are not shared between goroutines.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DPI is the resolution faces are built at. At 72 DPI one point is one pixel.
const DPI = 72

// Variant selects one of the embedded Go fonts.
type Variant struct {
	Mono   bool
	Bold   bool
	Italic bool
}

// FontFamily is the CSS font-family for proportional text.
const FontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// MonoFontFamily is the CSS font-family for monospaced text.
const MonoFontFamily = `'Go Mono', Menlo, Consolas, monospace`

type faceKey struct {
	v    Variant
	size float64
}

var (
	mu     sync.Mutex
	parsed = map[Variant]*opentype.Font{}

	// pools hold idle faces per key. A face keeps glyph buffers and must
	// not be shared between goroutines.
	pools sync.Map // faceKey -> *sync.Pool
)

// TTF returns the raw font bytes for v.
func TTF(v Variant) []byte {
	switch {
	case v.Mono && v.Bold:
		return gomonobold.TTF
	case v.Mono:
		return gomono.TTF
	case v.Bold && v.Italic:
		return gobolditalic.TTF
	case v.Bold:
		return gobold.TTF
	case v.Italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

// Font returns the parsed font for v. Parsed fonts are cached and safe to
// share.
func Font(v Variant) (*opentype.Font, error) {
	mu.Lock()
	defer mu.Unlock()

	if fnt, ok := parsed[v]; ok {
		return fnt, nil
	}
	fnt, err := opentype.Parse(TTF(v))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	parsed[v] = fnt
	return fnt, nil
}

// NewFace returns a new face for v at size points. The caller owns the
// face: it is not safe for concurrent use.
func NewFace(v Variant, size float64) (font.Face, error) {
	fnt, err := Font(v)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// Metrics is the pixel measurement of a run of text.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height is Ascent + Descent.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent }

// Measure returns the advance width and vertical metrics of s in pixels.
// It is safe for concurrent use.
func Measure(v Variant, size float64, s string) (Metrics, error) {
	key := faceKey{v, size}
	p, _ := pools.LoadOrStore(key, &sync.Pool{})
	pool := p.(*sync.Pool)

	face, _ := pool.Get().(font.Face)
	if face == nil {
		var err error
		if face, err = NewFace(v, size); err != nil {
			return Metrics{}, err
		}
	}
	defer pool.Put(face)

	m := face.Metrics()
	return Metrics{
		Width:   float64(font.MeasureString(face, s)) / 64,
		Ascent:  float64(m.Ascent) / 64,
		Descent: float64(m.Descent) / 64,
	}, nil
}
