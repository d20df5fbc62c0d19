package text

import (
	"strings"

	"github.com/matzehuels/multiplex/pkg/errors"
)

// Align is a paragraph alignment mode.
type Align string

// Alignment modes. The justify variants differ only in how the last line
// of a block is aligned.
const (
	AlignLeft          Align = "left"
	AlignRight         Align = "right"
	AlignCenter        Align = "center"
	AlignJustify       Align = "justify"
	AlignJustifyStart  Align = "justify-start"
	AlignJustifyLeft   Align = "justify-left"
	AlignJustifyCenter Align = "justify-center"
	AlignJustifyEnd    Align = "justify-end"
	AlignJustifyRight  Align = "justify-right"
)

// ParseAlign parses an alignment keyword, case-insensitively.
func ParseAlign(s string) (Align, error) {
	a := Align(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case AlignLeft, AlignRight, AlignCenter,
		AlignJustify, AlignJustifyStart, AlignJustifyLeft,
		AlignJustifyCenter, AlignJustifyEnd, AlignJustifyRight:
		return a, nil
	}
	return "", errors.New(errors.ErrCodeInvalidParameter, "unknown alignment %q", s)
}

// lineMode is how a single line is laid out.
type lineMode int

const (
	modeLeft lineMode = iota
	modeRight
	modeCenter
	modeJustify
)

// forLine returns the mode for a line; the last line of a justified block
// degrades to its terminal alignment.
func (a Align) forLine(last bool) lineMode {
	switch a {
	case AlignRight:
		return modeRight
	case AlignCenter:
		return modeCenter
	case AlignLeft:
		return modeLeft
	}
	if !last {
		return modeJustify
	}
	switch a {
	case AlignJustifyCenter:
		return modeCenter
	case AlignJustifyEnd, AlignJustifyRight:
		return modeRight
	}
	return modeLeft
}
