// Package style defines the typed style record attached to every drawn
// element, and the sparse overrides layered on top of it.
//
// A [Style] is always complete. An [Override] names only the fields it
// changes; [Style.With] merges field by field and the override wins.
package style

import (
	"strings"

	"github.com/matzehuels/multiplex/pkg/errors"
)

// HAlign anchors an element horizontally relative to its position.
type HAlign string

// Horizontal anchors. The zero value behaves like HAlignLeft.
const (
	HAlignLeft   HAlign = "left"
	HAlignCenter HAlign = "center"
	HAlignRight  HAlign = "right"
)

// VAlign anchors an element vertically relative to its position.
type VAlign string

// Vertical anchors. The zero value behaves like VAlignCenter.
const (
	VAlignCenter VAlign = "center"
	VAlignTop    VAlign = "top"
	VAlignBottom VAlign = "bottom"
)

// Weight is a font weight.
type Weight string

const (
	WeightNormal Weight = "normal"
	WeightBold   Weight = "bold"
)

// Font families available to every surface.
const (
	FamilySans = "sans"
	FamilyMono = "mono"
)

// Style is the full set of visual attributes of an element.
//
// Padding is expressed in data units and enlarges the element's bounding
// box on each side. Colors are CSS hex strings; an empty Background or
// Border means none.
type Style struct {
	FontFamily  string  `json:"font_family"`
	FontSize    float64 `json:"font_size"` // points
	FontWeight  Weight  `json:"font_weight"`
	Italic      bool    `json:"italic,omitempty"`
	Color       string  `json:"color"`
	Background  string  `json:"background,omitempty"`
	Border      string  `json:"border,omitempty"`
	BorderWidth float64 `json:"border_width,omitempty"`
	PadX        float64 `json:"pad_x,omitempty"`
	PadY        float64 `json:"pad_y,omitempty"`
	HAlign      HAlign  `json:"halign"`
	VAlign      VAlign  `json:"valign"`
	Alpha       float64 `json:"alpha"`
	LineWidth   float64 `json:"line_width"`
}

// Default returns the base style: 12pt sans, black, left/center anchored.
func Default() Style {
	return Style{
		FontFamily: FamilySans,
		FontSize:   12,
		FontWeight: WeightNormal,
		Color:      "#222222",
		HAlign:     HAlignLeft,
		VAlign:     VAlignCenter,
		Alpha:      1,
		LineWidth:  1.5,
	}
}

// Override is a sparse set of style changes. Nil fields leave the base
// value untouched.
type Override struct {
	FontFamily  *string  `json:"font_family,omitempty" toml:"font_family" yaml:"font_family"`
	FontSize    *float64 `json:"font_size,omitempty" toml:"font_size" yaml:"font_size"`
	FontWeight  *Weight  `json:"font_weight,omitempty" toml:"font_weight" yaml:"font_weight"`
	Italic      *bool    `json:"italic,omitempty" toml:"italic" yaml:"italic"`
	Color       *string  `json:"color,omitempty" toml:"color" yaml:"color"`
	Background  *string  `json:"background,omitempty" toml:"background" yaml:"background"`
	Border      *string  `json:"border,omitempty" toml:"border" yaml:"border"`
	BorderWidth *float64 `json:"border_width,omitempty" toml:"border_width" yaml:"border_width"`
	PadX        *float64 `json:"pad_x,omitempty" toml:"pad_x" yaml:"pad_x"`
	PadY        *float64 `json:"pad_y,omitempty" toml:"pad_y" yaml:"pad_y"`
	HAlign      *HAlign  `json:"halign,omitempty" toml:"halign" yaml:"halign"`
	VAlign      *VAlign  `json:"valign,omitempty" toml:"valign" yaml:"valign"`
	Alpha       *float64 `json:"alpha,omitempty" toml:"alpha" yaml:"alpha"`
	LineWidth   *float64 `json:"line_width,omitempty" toml:"line_width" yaml:"line_width"`
}

// Ptr returns a pointer to v, for building overrides inline.
func Ptr[T any](v T) *T { return &v }

// With returns s with every non-nil field of o applied.
func (s Style) With(o Override) Style {
	setIf(&s.FontFamily, o.FontFamily)
	setIf(&s.FontSize, o.FontSize)
	setIf(&s.FontWeight, o.FontWeight)
	setIf(&s.Italic, o.Italic)
	setIf(&s.Color, o.Color)
	setIf(&s.Background, o.Background)
	setIf(&s.Border, o.Border)
	setIf(&s.BorderWidth, o.BorderWidth)
	setIf(&s.PadX, o.PadX)
	setIf(&s.PadY, o.PadY)
	setIf(&s.HAlign, o.HAlign)
	setIf(&s.VAlign, o.VAlign)
	setIf(&s.Alpha, o.Alpha)
	setIf(&s.LineWidth, o.LineWidth)
	return s
}

// Merge layers b on top of o: fields set in b win.
func (o Override) Merge(b Override) Override {
	pick(&o.FontFamily, b.FontFamily)
	pick(&o.FontSize, b.FontSize)
	pick(&o.FontWeight, b.FontWeight)
	pick(&o.Italic, b.Italic)
	pick(&o.Color, b.Color)
	pick(&o.Background, b.Background)
	pick(&o.Border, b.Border)
	pick(&o.BorderWidth, b.BorderWidth)
	pick(&o.PadX, b.PadX)
	pick(&o.PadY, b.PadY)
	pick(&o.HAlign, b.HAlign)
	pick(&o.VAlign, b.VAlign)
	pick(&o.Alpha, b.Alpha)
	pick(&o.LineWidth, b.LineWidth)
	return o
}

// IsZero reports whether o changes nothing.
func (o Override) IsZero() bool {
	return o == Override{}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

// ParseHAlign parses a horizontal anchor keyword.
func ParseHAlign(s string) (HAlign, error) {
	switch h := HAlign(strings.ToLower(strings.TrimSpace(s))); h {
	case HAlignLeft, HAlignCenter, HAlignRight:
		return h, nil
	case "":
		return HAlignLeft, nil
	}
	return "", errors.New(errors.ErrCodeInvalidParameter, "unknown horizontal alignment %q", s)
}

// ParseVAlign parses a vertical anchor keyword.
func ParseVAlign(s string) (VAlign, error) {
	switch v := VAlign(strings.ToLower(strings.TrimSpace(s))); v {
	case VAlignCenter, VAlignTop, VAlignBottom:
		return v, nil
	case "":
		return VAlignCenter, nil
	}
	return "", errors.New(errors.ErrCodeInvalidParameter, "unknown vertical alignment %q", s)
}
