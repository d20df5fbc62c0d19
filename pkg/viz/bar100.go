package viz

import (
	"math"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// Defaults for 100% bars.
const (
	DefaultMinPercentage = 1.0
	DefaultBarPad        = 0.25
	DefaultBarHeight     = 0.8
)

// pctTolerance is the precision percentages are compared at.
const pctTolerance = 1e-10

// Bar is one segment of a 100% bar.
type Bar struct {
	Value float64        `toml:"value" yaml:"value"`
	Label string         `toml:"label" yaml:"label"`
	Style style.Override `toml:"style" yaml:"style"`
	// Pad overrides Bar100Options.Pad for this segment.
	Pad *float64 `toml:"pad" yaml:"pad"`
}

// Bar100Options configures a 100% bar.
type Bar100Options struct {
	// MinPercentage is the smallest share any segment is drawn with, so
	// zero values stay visible as a sliver.
	MinPercentage float64
	// Pad is the gap between segments in percentage points, split evenly
	// between neighbors.
	Pad float64
	// Height is the bar thickness in rows.
	Height     float64
	Style      style.Override
	LabelStyle style.Override
}

// DefaultBar100Options returns the stock settings.
func DefaultBar100Options() Bar100Options {
	return Bar100Options{MinPercentage: DefaultMinPercentage, Pad: DefaultBarPad, Height: DefaultBarHeight}
}

// Bar100 stacks bars that each add up to 100%. Every call to Draw adds a
// row below the previous one.
type Bar100 struct {
	c    *canvas.Canvas
	rows [][]surface.Handle
}

// NewBar100 returns a Bar100 drawing on c.
func NewBar100(c *canvas.Canvas) *Bar100 {
	return &Bar100{c: c}
}

// Rows returns the segments drawn so far, one slice per bar.
func (b *Bar100) Rows() [][]surface.Handle { return b.rows }

func validateMinPercentage(minPct float64, n int) error {
	if math.IsNaN(minPct) || minPct < 0 || minPct > 100 {
		return errors.New(errors.ErrCodeInvalidParameter, "minimum percentage must be between 0%% and 100%%, got %g", minPct)
	}
	if minPct*float64(n) > 100 {
		return errors.New(errors.ErrCodeInvalidParameter, "minimum percentage exceeds 100%%: %g x %d = %g", minPct, n, minPct*float64(n))
	}
	return nil
}

// ToPercentages converts values to shares of 100. Shares below minPct are
// raised to it and everything is rescaled, repeatedly, until every share
// reaches minPct. Empty or all-zero input is returned unchanged.
func ToPercentages(values []float64, minPct float64) ([]float64, error) {
	if err := validateMinPercentage(minPct, len(values)); err != nil {
		return nil, err
	}
	out := append([]float64(nil), values...)
	if sum(out) == 0 {
		return out, nil
	}

	for {
		total := sum(out)
		short := false
		for i, v := range out {
			out[i] = 100 * v / total
			if round10(out[i]) < round10(minPct) {
				short = true
			}
		}
		if minPct == 0 || !short {
			return out, nil
		}
		for i, v := range out {
			out[i] = math.Max(minPct, v)
		}
	}
}

// Pad returns the padding for one side of a segment of pct percent. The
// segment keeps at least minPct after padding on both sides.
func Pad(pct, pad, minPct float64) (float64, error) {
	switch {
	case pct < 0 || pct > 100:
		return 0, errors.New(errors.ErrCodeInvalidParameter, "percentage must be between 0%% and 100%%, got %g", pct)
	case round10(pad) < 0 || round10(pad) > 100:
		return 0, errors.New(errors.ErrCodeInvalidParameter, "padding must be between 0%% and 100%%, got %g", pad)
	case minPct < 0 || minPct > 100:
		return 0, errors.New(errors.ErrCodeInvalidParameter, "minimum percentage must be between 0%% and 100%%, got %g", minPct)
	case round10(minPct) > round10(pct):
		return 0, errors.New(errors.ErrCodeInvalidParameter, "minimum percentage cannot exceed the percentage: %g > %g", minPct, pct)
	}
	leftover := math.Max(pct-pad, minPct)
	return (pct - leftover) / 2, nil
}

// Segment is the horizontal extent of one drawn bar segment.
type Segment struct {
	Left, Width float64
}

// Segments lays out bars along [0, 100]. Inner segments lose padding on
// both sides; the first and last only on their inner side.
func Segments(bars []Bar, o Bar100Options) ([]Segment, error) {
	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one non-zero value has to be provided")
	}
	values := make([]float64, len(bars))
	for i, b := range bars {
		if b.Value < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "all values must be non-negative, got %g", b.Value)
		}
		values[i] = b.Value
	}
	if sum(values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one non-zero value has to be provided")
	}

	pcts, err := ToPercentages(values, o.MinPercentage)
	if err != nil {
		return nil, err
	}

	segs := make([]Segment, len(pcts))
	offset := 0.0
	for i, pct := range pcts {
		pad := o.Pad
		if bars[i].Pad != nil {
			pad = *bars[i].Pad
		}
		p, err := Pad(pct, pad, o.MinPercentage)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			offset += p
		}
		sides := 0.0
		if i > 0 {
			sides++
		}
		if i < len(pcts)-1 {
			sides++
		}
		width := pct - p*sides
		segs[i] = Segment{Left: offset, Width: width}
		offset += width + p
	}
	return segs, nil
}

// Draw adds a bar. The canvas is rescaled to [0, 100] horizontally and to
// fit every row vertically; row n is centered on y = -n.
func (b *Bar100) Draw(bars []Bar, o Bar100Options) ([]surface.Handle, error) {
	if o.Height == 0 {
		o.Height = DefaultBarHeight
	}
	if o.Height < 0 || o.Height > 1 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "bar height must be in (0, 1], got %g", o.Height)
	}
	segs, err := Segments(bars, o)
	if err != nil {
		return nil, err
	}

	row := len(b.rows)
	y := -float64(row)
	if err := b.c.SetXLim(0, 100); err != nil {
		return nil, err
	}
	if err := b.c.SetYLim(-float64(row)-0.5, 0.5); err != nil {
		return nil, err
	}

	handles := make([]surface.Handle, 0, len(segs))
	for i, s := range segs {
		st := style.Default().With(style.Override{Background: style.Ptr(Palette(i))}).With(o.Style).With(bars[i].Style)
		box := geom.Box{X0: s.Left, Y0: y - o.Height/2, X1: s.Left + s.Width, Y1: y + o.Height/2}
		handles = append(handles, b.c.Rect(box, st))

		if bars[i].Label != "" {
			lst := style.Default().With(style.Override{
				HAlign: style.Ptr(style.HAlignCenter),
				Color:  style.Ptr("#ffffff"),
			}).With(o.LabelStyle)
			b.c.PlaceText(bars[i].Label, geom.Point{X: box.CenterX(), Y: y}, lst)
		}
	}
	b.rows = append(b.rows, handles)
	return handles, nil
}

var defaultPalette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"}

// Palette returns the i-th color of the default categorical palette, cycling.
func Palette(i int) string { return defaultPalette[i%len(defaultPalette)] }

func sum(vs []float64) float64 {
	t := 0.0
	for _, v := range vs {
		t += v
	}
	return t
}

func round10(v float64) float64 {
	return math.Round(v/pctTolerance) * pctTolerance
}
