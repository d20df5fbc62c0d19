package sink

import (
	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/surface"
)

const displaySpace = surface.Display

func rectBox(it canvas.Item) geom.Box {
	return geom.Box{X0: it.At.X, Y0: it.At.Y, X1: it.At.X + it.Size.X, Y1: it.At.Y + it.Size.Y}
}
