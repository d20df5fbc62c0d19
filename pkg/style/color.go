package style

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/multiplex/pkg/errors"
)

// ParseColor reads a #rgb or #rrggbb color and applies alpha. Alpha outside
// (0, 1] means opaque.
func ParseColor(hex string, alpha float64) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err == nil && len(hex) != 4 && len(hex) != 7 {
		err = fmt.Errorf("color: %s has %d digits", hex, len(hex)-1)
	}
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidParameter, err, "invalid color %q (want #rgb or #rrggbb)", hex)
	}
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}, nil
}

// ValidateColors checks every color field set in o. An empty Background or
// Border means none and is accepted.
func (o Override) ValidateColors() error {
	if o.Color != nil {
		if _, err := ParseColor(*o.Color, 1); err != nil {
			return err
		}
	}
	for _, c := range []*string{o.Background, o.Border} {
		if c == nil || *c == "" {
			continue
		}
		if _, err := ParseColor(*c, 1); err != nil {
			return err
		}
	}
	return nil
}
