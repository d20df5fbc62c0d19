package viz

import (
	"math"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/labels"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// DefaultPopulationHeight is the share of the vertical extent a
// population column spans.
const DefaultPopulationHeight = 0.6

// PopulationOptions configures a population grid.
type PopulationOptions struct {
	// Rows is the number of markers per column.
	Rows int
	// Height is the vertical span of a column, in (0, 1].
	Height float64
	// Name labels the grid on its left.
	Name string
	// ShowStart draws a "1" beside the first marker.
	ShowStart bool
	// Radius is the marker radius in pixels.
	Radius float64
	Marker style.Override
	// Items styles individual markers, in drawing order.
	Items []style.Override
}

// Population draws a count as a grid of markers filled column by column.
type Population struct {
	*Labelled
	c *canvas.Canvas
}

// NewPopulation returns a Population drawing on c.
func NewPopulation(c *canvas.Canvas, opts ...labels.Option) *Population {
	return &Population{Labelled: NewLabelled(c, opts...), c: c}
}

// Grid returns marker positions for population items, as columns of rows.
// Columns sit at x = 1, 2, ...; rows are spread evenly over a band of the
// given height centered on y = 0.5, starting at its bottom.
func Grid(population, rows int, height float64) ([][]geom.Point, error) {
	if population < 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "population must be zero or positive, got %d", population)
	}
	if rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "rows must be a positive integer, got %d", rows)
	}
	if math.IsNaN(height) || height <= 0 || height > 1 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "height must be in (0, 1], got %g", height)
	}

	lo, hi := 0.5-height/2, 0.5+height/2
	gap := 0.0
	if rows > 1 {
		gap = (hi - lo) / float64(rows-1)
	}

	columns := (population + rows - 1) / rows
	grid := make([][]geom.Point, columns)
	for x := 0; x < columns; x++ {
		for y := 0; y < rows && x*rows+y < population; y++ {
			grid[x] = append(grid[x], geom.Point{X: float64(1 + x), Y: lo + float64(y)*gap})
		}
	}
	return grid, nil
}

// Draw lays out population markers, filling each column from the top. The
// canvas is rescaled so every column is visible.
func (p *Population) Draw(population int, o PopulationOptions) ([][]surface.Handle, error) {
	if o.Height == 0 {
		o.Height = DefaultPopulationHeight
	}
	if o.Radius == 0 {
		o.Radius = 4
	}
	grid, err := Grid(population, o.Rows, o.Height)
	if err != nil {
		return nil, err
	}

	if err := p.c.SetXLim(0, float64(len(grid)+1)); err != nil {
		return nil, err
	}
	if err := p.c.SetYLim(-0.1, 1.1); err != nil {
		return nil, err
	}

	base := style.Default().With(o.Marker)
	drawn := make([][]surface.Handle, len(grid))
	i := 0
	for x, col := range grid {
		for _, pt := range col {
			st := base
			if i < len(o.Items) {
				st = st.With(o.Items[i])
			}
			// the first row is drawn at the top
			drawn[x] = append(drawn[x], p.c.Circle(geom.Point{X: pt.X, Y: 1 - pt.Y}, o.Radius, st))
			i++
		}
	}

	muted := style.Default().With(style.Override{Color: style.Ptr("#777777"), HAlign: style.Ptr(style.HAlignRight)})
	if o.Name != "" {
		p.c.PlaceText(o.Name, geom.Point{X: 0.5, Y: 0.5}, muted)
	}
	if o.ShowStart && len(grid) > 0 {
		if _, err := p.DrawLabel("1", geom.Point{X: 0.7, Y: 1 - grid[0][0].Y}, muted); err != nil {
			return drawn, err
		}
	}
	return drawn, nil
}
