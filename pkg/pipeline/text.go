package pipeline

import (
	"strings"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/text"
	"github.com/matzehuels/multiplex/pkg/viz"
)

// DefaultWordSpacing is the word gap of quick text layouts, in data units
// of the unit x axis.
const DefaultWordSpacing = 0.01

// TextRequest is a one-off text layout, as accepted by the text command
// and the /text endpoint. Exactly one of Text and Tokens is set.
type TextRequest struct {
	Text   string       `json:"text,omitempty"`
	Tokens []text.Token `json:"tokens,omitempty"`
	Align  string       `json:"align,omitempty"`
	// Width is the share of the axis the block may fill; zero means all.
	Width       float64 `json:"width,omitempty"`
	WordSpacing float64 `json:"word_spacing,omitempty"`
	LineHeight  float64 `json:"line_height,omitempty"`
	Legend      bool    `json:"legend,omitempty"`
	// Canvas size in pixels; zero keeps the canvas default.
	CanvasWidth  float64 `json:"canvas_width,omitempty"`
	CanvasHeight float64 `json:"canvas_height,omitempty"`
}

// TextLine summarizes one laid out line.
type TextLine struct {
	Index  int      `json:"index"`
	Y      float64  `json:"y"`
	Words  []string `json:"words"`
	Legend []string `json:"legend,omitempty"`
}

// String joins the line's words, attaching punctuation to the word before.
func (l TextLine) String() string {
	var b strings.Builder
	for i, w := range l.Words {
		if i > 0 && !text.IsPunctuation(w) {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return b.String()
}

// LayoutText annotates req on a fresh canvas.
func LayoutText(req TextRequest) (*canvas.Canvas, []TextLine, error) {
	tokens := req.Tokens
	switch {
	case req.Text != "" && len(tokens) > 0:
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "text and tokens are mutually exclusive")
	case req.Text != "":
		tokens = text.Split(req.Text)
	}
	if len(tokens) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "no text to lay out")
	}

	width := req.Width
	if width == 0 {
		width = 1
	}
	if width < 0 || width > 1 {
		return nil, nil, errors.New(errors.ErrCodeInvalidParameter, "width must be in (0, 1], got %g", width)
	}
	ws := req.WordSpacing
	if ws == 0 {
		ws = DefaultWordSpacing
	}

	c, err := canvas.New(canvas.Options{Width: req.CanvasWidth, Height: req.CanvasHeight})
	if err != nil {
		return nil, nil, err
	}
	lines, err := viz.NewTextAnnotation(c).Draw(tokens, text.Options{
		WordSpacing: ws,
		LineHeight:  req.LineHeight,
		Align:       text.Align(req.Align),
		WithLegend:  req.Legend,
		RPad:        1 - width,
	})
	if err != nil {
		return nil, nil, err
	}
	return c, summarize(lines), nil
}

func summarize(lines []text.AnnotatedLine) []TextLine {
	out := make([]TextLine, len(lines))
	for i, al := range lines {
		tl := TextLine{Index: al.Line.Index, Y: al.Line.Y, Words: make([]string, len(al.Line.Elements))}
		for j, el := range al.Line.Elements {
			tl.Words[j] = el.Token.Text
		}
		for _, le := range al.Legend {
			tl.Legend = append(tl.Legend, le.Label)
		}
		out[i] = tl
	}
	return out
}
