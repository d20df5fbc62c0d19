package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/errors"
)

func newTestCanvas(t *testing.T) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(canvas.Options{Width: 500, Height: 300, Margin: 50})
	require.NoError(t, err)
	return c
}

func TestToPercentages(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		min    float64
		want   []float64
	}{
		{"plain shares", []float64{1, 1, 2}, 1, []float64{25, 25, 50}},
		{"no minimum", []float64{0, 3}, 0, []float64{0, 100}},
		{"empty", nil, 1, []float64{}},
		{"all zero", []float64{0, 0}, 1, []float64{0, 0}},
		{"equal split at the limit", []float64{0, 1}, 50, []float64{50, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToPercentages(tt.values, tt.min)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-8, "share %d", i)
			}
		})
	}
}

func TestToPercentagesRaisesSmallShares(t *testing.T) {
	got, err := ToPercentages([]float64{0, 0.1, 100}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 100, sum(got), 1e-8)
	for _, v := range got {
		assert.GreaterOrEqual(t, round10(v), 2.0-1e-9)
	}
	assert.Greater(t, got[2], got[0])
}

func TestToPercentagesRejectsMinimum(t *testing.T) {
	for _, min := range []float64{-1, 101, 40} {
		_, err := ToPercentages([]float64{1, 2, 3}, min)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter), "min %g: %v", min, err)
	}
}

func TestPad(t *testing.T) {
	p, err := Pad(50, 0.25, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.125, p, 1e-12)

	p, err = Pad(1, 0.25, 1)
	require.NoError(t, err)
	assert.Zero(t, p)

	p, err = Pad(1.1, 0.25, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, p, 1e-12)

	for _, args := range [][3]float64{{-1, 0, 0}, {101, 0, 0}, {50, -1, 0}, {50, 0, 101}, {0.5, 0.25, 1}} {
		_, err := Pad(args[0], args[1], args[2])
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter), "args %v: %v", args, err)
	}
}

func TestSegments(t *testing.T) {
	segs, err := Segments([]Bar{{Value: 1}, {Value: 1}}, DefaultBar100Options())
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.InDelta(t, 0, segs[0].Left, 1e-9)
	assert.InDelta(t, 49.875, segs[0].Width, 1e-9)
	assert.InDelta(t, 50.125, segs[1].Left, 1e-9)
	assert.InDelta(t, 100, segs[1].Left+segs[1].Width, 1e-9)
}

func TestSegmentsInnerPaddedTwice(t *testing.T) {
	segs, err := Segments([]Bar{{Value: 1}, {Value: 2}, {Value: 1}}, DefaultBar100Options())
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.InDelta(t, 49.75, segs[1].Width, 1e-9)
	assert.InDelta(t, 0.25, segs[1].Left-(segs[0].Left+segs[0].Width), 1e-9)
	assert.InDelta(t, 0.25, segs[2].Left-(segs[1].Left+segs[1].Width), 1e-9)
	assert.InDelta(t, 100, segs[2].Left+segs[2].Width, 1e-9)
}

func TestSegmentsSingleBarUnpadded(t *testing.T) {
	segs, err := Segments([]Bar{{Value: 3}}, DefaultBar100Options())
	require.NoError(t, err)
	assert.Equal(t, []Segment{{Left: 0, Width: 100}}, segs)
}

func TestSegmentsPerBarPad(t *testing.T) {
	none := 0.0
	segs, err := Segments([]Bar{{Value: 1, Pad: &none}, {Value: 1, Pad: &none}}, DefaultBar100Options())
	require.NoError(t, err)
	assert.InDelta(t, 50, segs[1].Left, 1e-9)
}

func TestSegmentsRejectsInput(t *testing.T) {
	for name, bars := range map[string][]Bar{
		"empty":    nil,
		"zero":     {{Value: 0}},
		"negative": {{Value: 1}, {Value: -1}},
	} {
		_, err := Segments(bars, DefaultBar100Options())
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "%s: %v", name, err)
	}
}

func TestBar100DrawRows(t *testing.T) {
	c := newTestCanvas(t)
	b := NewBar100(c)

	_, err := b.Draw([]Bar{{Value: 1, Label: "a"}, {Value: 3}}, DefaultBar100Options())
	require.NoError(t, err)
	hs, err := b.Draw([]Bar{{Value: 2}, {Value: 2}}, DefaultBar100Options())
	require.NoError(t, err)
	require.Len(t, b.Rows(), 2)

	xmin, xmax := c.Extent()
	assert.Equal(t, [2]float64{0, 100}, [2]float64{xmin, xmax})
	ymin, ymax := c.VerticalExtent()
	assert.Equal(t, [2]float64{-1.5, 0.5}, [2]float64{ymin, ymax})

	it, err := c.Item(hs[0])
	require.NoError(t, err)
	assert.Equal(t, canvas.KindRect, it.Kind)
	assert.InDelta(t, -1.4, it.At.Y, 1e-9)
	assert.InDelta(t, 0.8, it.Size.Y, 1e-9)
	assert.Equal(t, Palette(0), it.Style.Background)
}

func TestBar100DrawRejectsHeight(t *testing.T) {
	o := DefaultBar100Options()
	o.Height = 1.5
	_, err := NewBar100(newTestCanvas(t)).Draw([]Bar{{Value: 1}}, o)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
}
