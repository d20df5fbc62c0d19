package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

func assertNoOverlaps(t *testing.T, s surface.Surface, hs []surface.Handle) {
	t.Helper()
	for i := range hs {
		for j := i + 1; j < len(hs); j++ {
			overlap, err := surface.Overlapping(s, hs[i], hs[j])
			require.NoError(t, err)
			assert.False(t, overlap, "labels %d and %d overlap", i, j)
		}
	}
}

func TestDrawLabelOffset(t *testing.T) {
	c := newTestCanvas(t)
	l := NewLabelled(c)

	right, err := l.DrawLabel("right", geom.Point{X: 0.5, Y: 0.2}, style.Default())
	require.NoError(t, err)
	st := style.Default()
	st.HAlign = style.HAlignRight
	left, err := l.DrawLabel("left", geom.Point{X: 0.5, Y: 0.8}, st)
	require.NoError(t, err)

	br, err := c.Measure(right, surface.Data)
	require.NoError(t, err)
	assert.InDelta(t, 0.5+LabelOffset, br.X0, 1e-9)
	assert.InDelta(t, 0.2, br.CenterY(), 1e-9)

	bl, err := c.Measure(left, surface.Data)
	require.NoError(t, err)
	assert.InDelta(t, 0.5-LabelOffset, bl.X1, 1e-9)
}

func TestTimeSeriesLabelsDoNotOverlap(t *testing.T) {
	c := newTestCanvas(t)
	ts := NewTimeSeries(c)
	for _, s := range []struct {
		label string
		end   float64
	}{{"alpha", 0.5}, {"beta", 0.5}, {"gamma", 0.51}, {"delta", 0.49}} {
		_, err := ts.Draw([]float64{0, 0.5, 0.9}, []float64{0.1, 0.3, s.end}, SeriesOptions{Label: s.label})
		require.NoError(t, err)
	}
	hs := ts.Labels()
	require.Len(t, hs, 4)
	assertNoOverlaps(t, c, hs)
}

func TestTimeSeriesLabelColor(t *testing.T) {
	c := newTestCanvas(t)
	ts := NewTimeSeries(c)
	_, err := ts.Draw([]float64{0, 1}, []float64{0, 1}, SeriesOptions{Label: "x", Line: style.Override{Color: style.Ptr("#ff0000")}})
	require.NoError(t, err)

	el, err := c.Element(ts.Labels()[0])
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", el.Style.Color)
}

func TestTimeSeriesShapes(t *testing.T) {
	c := newTestCanvas(t)
	ts := NewTimeSeries(c)

	_, err := ts.Draw([]float64{0, 1}, []float64{0}, SeriesOptions{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	h, err := ts.Draw(nil, nil, SeriesOptions{})
	require.NoError(t, err)
	assert.Zero(t, h)

	h, err = ts.Draw([]float64{0.5}, []float64{0.5}, SeriesOptions{})
	require.NoError(t, err)
	it, err := c.Item(h)
	require.NoError(t, err)
	assert.Equal(t, "circle", string(it.Kind))
}

func TestSlopeLabelsPerSide(t *testing.T) {
	c := newTestCanvas(t)
	s := NewSlope(c)
	_, err := s.Draw(0.5, 0.2, SlopeOptions{LeftLabel: "a", RightLabel: "b"})
	require.NoError(t, err)
	_, err = s.Draw(0.5, 0.8, SlopeOptions{LeftLabel: "c", RightLabel: "d"})
	require.NoError(t, err)

	left, right := s.Labels()
	require.Len(t, left, 2)
	require.Len(t, right, 2)
	assertNoOverlaps(t, c, left)

	for _, h := range left {
		b, err := c.Measure(h, surface.Data)
		require.NoError(t, err)
		assert.Less(t, b.X1, 0.0)
	}
	for _, h := range right {
		b, err := c.Measure(h, surface.Data)
		require.NoError(t, err)
		assert.Greater(t, b.X0, 1.0)
	}

	// far apart on the right, so they stay where they were drawn
	b, err := c.Measure(right[0], surface.Data)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, b.CenterY(), 1e-9)
}
