package viz

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/multiplex/pkg/canvas"
	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/labels"
	"github.com/matzehuels/multiplex/pkg/style"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// DefaultGraphLayout is the Graphviz engine used when none is set.
const DefaultGraphLayout = "fdp"

// graphMargin keeps nodes off the canvas edges, as a fraction of each extent.
const graphMargin = 0.05

// Node is a graph vertex.
type Node struct {
	ID    string         `toml:"id" yaml:"id"`
	Label string         `toml:"label" yaml:"label"`
	Style style.Override `toml:"style" yaml:"style"`
}

// Edge joins two nodes by ID.
type Edge struct {
	From  string         `toml:"from" yaml:"from"`
	To    string         `toml:"to" yaml:"to"`
	Style style.Override `toml:"style" yaml:"style"`
}

// GraphOptions configures graph drawing.
type GraphOptions struct {
	// Layout names the Graphviz engine: dot, neato, fdp, sfdp, circo or twopi.
	Layout string
	// Seed makes force-directed layouts reproducible.
	Seed int
	// Radius is the node radius in pixels.
	Radius     float64
	NodeStyle  style.Override
	EdgeStyle  style.Override
	LabelStyle style.Override
}

var graphLayouts = map[string]graphviz.Layout{
	"dot":   graphviz.DOT,
	"neato": graphviz.NEATO,
	"fdp":   graphviz.FDP,
	"sfdp":  graphviz.SFDP,
	"circo": graphviz.CIRCO,
	"twopi": graphviz.TWOPI,
}

// Graph draws node-link diagrams with labelled nodes.
type Graph struct {
	*Labelled
	c *canvas.Canvas
}

// NewGraph returns a Graph drawing on c.
func NewGraph(c *canvas.Canvas, opts ...labels.Option) *Graph {
	return &Graph{Labelled: NewLabelled(c, opts...), c: c}
}

// ToDOT converts nodes and edges to an undirected Graphviz graph.
func ToDOT(nodes []Node, edges []Edge, seed int) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  start=%d;\n", seed)
	buf.WriteString("  node [shape=point];\n")
	buf.WriteString("\n")
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q;\n", n.ID)
	}
	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// Layout positions nodes with a Graphviz engine. Positions are in the
// engine's own units.
func Layout(ctx context.Context, nodes []Node, edges []Edge, engine string, seed int) (map[string]geom.Point, error) {
	if engine == "" {
		engine = DefaultGraphLayout
	}
	layout, ok := graphLayouts[engine]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "unknown graph layout %q", engine)
	}
	if err := checkGraph(nodes, edges); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return map[string]geom.Point{}, nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(ToDOT(nodes, edges, seed)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format("plain"), &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "layout graph")
	}
	return parsePlain(buf.Bytes())
}

func checkGraph(nodes []Node, edges []Edge) error {
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "node without id")
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range edges {
		if !seen[e.From] || !seen[e.To] {
			return errors.New(errors.ErrCodeInvalidInput, "edge %q -- %q references an unknown node", e.From, e.To)
		}
	}
	return nil
}

// parsePlain reads node positions from Graphviz "plain" output:
//
//	node name x y width height label style shape color fillcolor
func parsePlain(out []byte) (map[string]geom.Point, error) {
	pos := make(map[string]geom.Point)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := plainFields(sc.Text())
		if len(fields) < 4 || fields[0] != "node" {
			continue
		}
		x, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %q x", fields[1])
		}
		y, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %q y", fields[1])
		}
		pos[fields[1]] = geom.Point{X: x, Y: y}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read layout")
	}
	return pos, nil
}

// plainFields splits a line on spaces, keeping double-quoted names whole.
func plainFields(line string) []string {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
		escape bool
		opened bool
	)
	flush := func() {
		if cur.Len() > 0 || opened {
			fields = append(fields, cur.String())
		}
		cur.Reset()
		opened = false
	}
	for _, r := range line {
		switch {
		case escape:
			cur.WriteRune(r)
			escape = false
		case quoted && r == '\\':
			escape = true
		case r == '"':
			quoted = !quoted
			opened = true
		case r == ' ' && !quoted:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}

// Draw lays out the graph, scales it into the canvas extents and draws
// edges, nodes and node labels.
func (g *Graph) Draw(ctx context.Context, nodes []Node, edges []Edge, o GraphOptions) (map[string]surface.Handle, error) {
	pos, err := Layout(ctx, nodes, edges, o.Layout, o.Seed)
	if err != nil {
		return nil, err
	}
	if o.Radius == 0 {
		o.Radius = 5
	}

	fit := g.fit(pos)
	edgeStyle := style.Default().With(style.Override{Color: style.Ptr("#999999"), LineWidth: style.Ptr(1.0)}).With(o.EdgeStyle)
	for _, e := range edges {
		g.c.Line(fit.Apply(pos[e.From]), fit.Apply(pos[e.To]), edgeStyle.With(e.Style))
	}

	nodeStyle := style.Default().With(style.Override{Color: style.Ptr(Palette(0))}).With(o.NodeStyle)
	labelStyle := style.Default().With(o.LabelStyle)
	drawn := make(map[string]surface.Handle, len(nodes))
	for _, n := range nodes {
		at := fit.Apply(pos[n.ID])
		drawn[n.ID] = g.c.Circle(at, o.Radius, nodeStyle.With(n.Style))
		label := n.Label
		if label == "" {
			label = n.ID
		}
		if _, err := g.DrawLabel(label, at, labelStyle); err != nil {
			return drawn, err
		}
	}
	return drawn, nil
}

// fit maps layout positions into the inner part of the canvas extents.
func (g *Graph) fit(pos map[string]geom.Point) geom.Affine {
	xmin, xmax := g.c.Extent()
	ymin, ymax := g.c.VerticalExtent()
	dx, dy := xmax-xmin, ymax-ymin
	tx0, tx1 := xmin+graphMargin*dx, xmax-graphMargin*dx
	ty0, ty1 := ymin+graphMargin*dy, ymax-graphMargin*dy

	first := true
	var b geom.Box
	for _, p := range pos {
		pb := geom.Box{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y}
		if first {
			b, first = pb, false
			continue
		}
		b = b.Union(pb)
	}
	// a degenerate span maps to the middle of the target range
	if b.Width() == 0 {
		b.X0, b.X1 = b.X0-1, b.X1+1
	}
	if b.Height() == 0 {
		b.Y0, b.Y1 = b.Y0-1, b.Y1+1
	}
	return geom.MapRange(b.X0, b.X1, tx0, tx1, b.Y0, b.Y1, ty0, ty1)
}
