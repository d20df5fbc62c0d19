package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxDimensions(t *testing.T) {
	tests := []struct {
		name                   string
		box                    Box
		width, height, cx, cy float64
	}{
		{"unit", Box{0, 0, 1, 1}, 1, 1, 0.5, 0.5},
		{"offset", Box{10, 20, 50, 30}, 40, 10, 30, 25},
		{"degenerate", Box{2, 2, 2, 2}, 0, 0, 2, 2},
		{"negative", Box{-4, -2, -1, 0}, 3, 2, -2.5, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Width(); got != tt.width {
				t.Errorf("Width() = %v, want %v", got, tt.width)
			}
			if got := tt.box.Height(); got != tt.height {
				t.Errorf("Height() = %v, want %v", got, tt.height)
			}
			if got := tt.box.CenterX(); got != tt.cx {
				t.Errorf("CenterX() = %v, want %v", got, tt.cx)
			}
			if got := tt.box.CenterY(); got != tt.cy {
				t.Errorf("CenterY() = %v, want %v", got, tt.cy)
			}
		})
	}
}

func TestNewBoxNormalizesCorners(t *testing.T) {
	b := NewBox(Point{3, 1}, Point{1, 4})
	assert.Equal(t, Box{1, 1, 3, 4}, b)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"identical", Box{0, 0, 1, 1}, Box{0, 0, 1, 1}, true},
		{"contained", Box{0, 0, 1, 1}, Box{0.25, 0.25, 0.75, 0.75}, true},
		{"containing", Box{0.25, 0.25, 0.75, 0.75}, Box{0, 0, 1, 1}, true},
		{"partial", Box{0, 0, 1, 1}, Box{0.5, 0.5, 1.5, 1.5}, true},
		{"touching right edge", Box{0, 0, 1, 1}, Box{1, 0, 2, 1}, false},
		{"touching top edge", Box{0, 0, 1, 1}, Box{0, 1, 1, 2}, false},
		{"touching corner", Box{0, 0, 1, 1}, Box{1, 1, 2, 2}, false},
		{"disjoint horizontally", Box{0, 0, 1, 1}, Box{2, 0, 3, 1}, false},
		{"disjoint vertically", Box{0, 0, 1, 1}, Box{0, 2, 1, 3}, false},
		{"x overlap only", Box{0, 0, 1, 1}, Box{0.5, 2, 1.5, 3}, false},
		{"cross shape", Box{0, 0.4, 1, 0.6}, Box{0.4, 0, 0.6, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapsWithin(t *testing.T) {
	a := Box{0, 0, 1, 1}
	b := Box{0, 1 - 1e-12, 1, 2}
	assert.True(t, Overlaps(a, b))
	assert.False(t, OverlapsWithin(a, b, 1e-9))
	assert.True(t, OverlapsWithin(a, Box{0, 0.5, 1, 2}, 1e-9))
}

func TestBoxTranslateUnion(t *testing.T) {
	b := Box{0, 0, 1, 2}.Translate(1, -1)
	assert.Equal(t, Box{1, -1, 2, 1}, b)
	assert.Equal(t, Box{0, -1, 2, 2}, Box{0, 0, 1, 2}.Union(b))
}

func TestAffine(t *testing.T) {
	// data [0,1]x[0,1] onto a 100x50 pixel area with y flipped
	m := MapRange(0, 1, 10, 110, 0, 1, 60, 10)

	p := m.Apply(Point{0.5, 0.5})
	assert.InDelta(t, 60, p.X, 1e-12)
	assert.InDelta(t, 35, p.Y, 1e-12)

	back := m.Inverse().Apply(p)
	assert.InDelta(t, 0.5, back.X, 1e-12)
	assert.InDelta(t, 0.5, back.Y, 1e-12)

	box := m.ApplyBox(Box{0, 0, 1, 1})
	assert.InDelta(t, 10, box.X0, 1e-12)
	assert.InDelta(t, 10, box.Y0, 1e-12)
	assert.InDelta(t, 110, box.X1, 1e-12)
	assert.InDelta(t, 60, box.Y1, 1e-12)

	round := m.Then(m.Inverse()).Apply(Point{0.3, 0.7})
	assert.InDelta(t, 0.3, round.X, 1e-12)
	assert.InDelta(t, 0.7, round.Y, 1e-12)
}
