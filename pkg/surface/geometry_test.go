package surface_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
	"github.com/matzehuels/multiplex/pkg/surface/surfacetest"
)

func TestBoundingBox(t *testing.T) {
	s := surfacetest.New()
	h := s.PlaceText("abcd", geom.Point{X: 0.2, Y: 0.5}, style.Default())

	box, err := surface.BoundingBox(s, h)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, box.X0, 1e-12)
	assert.InDelta(t, 0.24, box.X1, 1e-12)
	assert.InDelta(t, 0.475, box.Y0, 1e-12)
	assert.InDelta(t, 0.525, box.Y1, 1e-12)

	disp, err := surface.BoundingBox(s, h, surface.Display)
	require.NoError(t, err)
	assert.InDelta(t, 200, disp.X0, 1e-9)
	assert.InDelta(t, 40, disp.Width(), 1e-9)
	assert.LessOrEqual(t, disp.Y0, disp.Y1)
}

func TestBoundingBoxUnknownHandle(t *testing.T) {
	s := surfacetest.New()
	_, err := surface.BoundingBox(s, 42)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestOverlapping(t *testing.T) {
	s := surfacetest.New()
	st := style.Default()
	a := s.PlaceText("aaaa", geom.Point{X: 0, Y: 0.5}, st)
	b := s.PlaceText("bbbb", geom.Point{X: 0.02, Y: 0.5}, st)
	c := s.PlaceText("cccc", geom.Point{X: 0.04, Y: 0.5}, st)
	d := s.PlaceText("dddd", geom.Point{X: 0, Y: 0.5}, st)

	tests := []struct {
		name string
		x, y surface.Handle
		want bool
	}{
		{"partial", a, b, true},
		{"touching", a, c, false},
		{"identical", a, d, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := surface.Overlapping(s, tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineHeightRemovesProbe(t *testing.T) {
	s := surfacetest.New()
	s.PlaceText("keep", geom.Point{}, style.Default())

	h, err := surface.LineHeight(s, style.Default())
	require.NoError(t, err)
	assert.InDelta(t, 0.05, h, 1e-12)
	assert.Equal(t, 1, s.Len())

	big := style.Default().With(style.Override{FontSize: style.Ptr(24.0)})
	h, err = surface.LineHeight(s, big)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, h, 1e-12)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Removed)
}

// stuckSurface refuses to remove anything.
type stuckSurface struct {
	*surfacetest.Surface
}

func (stuckSurface) Remove(h surface.Handle) error {
	return errors.New(errors.ErrCodeInternal, "element %d is locked", h)
}

func TestLineHeightReportsRemoveFailure(t *testing.T) {
	s := stuckSurface{surfacetest.New()}

	h, err := surface.LineHeight(s, style.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInternal), "got %v", err)
	assert.Zero(t, h)
}
