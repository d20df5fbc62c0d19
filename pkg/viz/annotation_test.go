package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/surface"
	"github.com/matzehuels/multiplex/pkg/text"
)

func TestTextAnnotationShiftsLimits(t *testing.T) {
	c := newTestCanvas(t)
	a := NewTextAnnotation(c)

	lines, err := a.Draw(text.Split("a few words"), text.Options{WordSpacing: 0.01})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	ymin, ymax := c.VerticalExtent()
	assert.Equal(t, 0.0, ymax)
	assert.Equal(t, -1.0, ymin)
	assert.Less(t, lines[0].Line.Y, 0.0)
}

func TestTextAnnotationRejectsBeforeDrawing(t *testing.T) {
	tests := []struct {
		name string
		opts text.Options
	}{
		{"padding", text.Options{LPad: 0.6, RPad: 0.5}},
		{"align", text.Options{Align: "middle"}},
		{"spacing", text.Options{WordSpacing: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t)
			ymin, ymax := c.VerticalExtent()

			_, err := NewTextAnnotation(c).Draw(text.Split("a few words"), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter), "got %v", err)

			gotMin, gotMax := c.VerticalExtent()
			assert.Equal(t, ymin, gotMin)
			assert.Equal(t, ymax, gotMax)
			assert.Empty(t, c.Items())
		})
	}
}

func TestTextAnnotationExtendsDownwards(t *testing.T) {
	c := newTestCanvas(t)
	a := NewTextAnnotation(c)

	tokens := text.Split("one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen")
	lines, err := a.Draw(tokens, text.Options{RPad: 0.8, WordSpacing: 0.01, LineHeight: 3})
	require.NoError(t, err)
	require.Greater(t, len(lines), 4)

	ymin, _ := c.VerticalExtent()
	assert.Less(t, ymin, -1.0)
	assert.GreaterOrEqual(t, lines[len(lines)-1].Line.Y, ymin)
	assert.Equal(t, lines, a.Lines())
}

func TestTextAnnotationLegend(t *testing.T) {
	c := newTestCanvas(t)
	a := NewTextAnnotation(c)

	tokens := []text.Token{
		{Text: "prices", Label: "subject"},
		{Text: "rose"},
		{Text: "sharply", Label: "trend"},
		{Text: "again"},
	}
	lines, err := a.Draw(tokens, text.Options{WordSpacing: 0.01, WithLegend: true})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Len(t, lines[0].Legend, 2)

	xmin, _ := c.Extent()
	first, err := c.Measure(lines[0].Legend[0].Handle, surface.Data)
	require.NoError(t, err)
	assert.InDelta(t, xmin, first.X0, 1e-9)

	last, err := c.Measure(lines[0].Legend[1].Handle, surface.Data)
	require.NoError(t, err)
	word, err := c.Measure(lines[0].Line.Elements[0].Handle, surface.Data)
	require.NoError(t, err)
	assert.Less(t, last.X1, word.X0)
}
