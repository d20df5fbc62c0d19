// Package labels spreads floating labels vertically until none overlap.
//
// Labels are grouped by overlap, and every group of two or more is
// restacked contiguously, in its original bottom-to-top order, centered on
// the span the group occupied. Restacked labels stay together in later
// passes. Passes repeat until no overlap remains or a pass limit is
// reached.
package labels

import (
	stderrors "errors"
	"math"
	"sort"

	"github.com/matzehuels/multiplex/pkg/errors"
	"github.com/matzehuels/multiplex/pkg/geom"
	"github.com/matzehuels/multiplex/pkg/surface"
)

// DefaultMaxPasses bounds the number of redistribution passes.
const DefaultMaxPasses = 100

// relTolerance is the overlap tolerance relative to the vertical span of
// all labels. Stacked labels are also separated by twice this amount.
const relTolerance = 1e-9

// ErrNotConverged is wrapped by the error returned when labels still
// overlap after the pass limit.
var ErrNotConverged = stderrors.New("label distribution did not converge")

type config struct {
	maxPasses int
}

// Option configures Resolve and Arrange.
type Option func(*config)

// WithMaxPasses overrides DefaultMaxPasses. Values below one are ignored.
func WithMaxPasses(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPasses = n
		}
	}
}

func newConfig(opts []Option) config {
	c := config{maxPasses: DefaultMaxPasses}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Groups partitions boxes into overlap groups: sets of boxes connected by
// pairwise overlap. Groups hold indices into boxes ordered by ascending
// bottom edge, groups are ordered by their lowest member, and singletons
// are dropped.
func Groups(boxes []geom.Box) [][]int {
	return newResolver(len(boxes)).groups(boxes, tolerance(boxes))
}

// resolver remembers which labels have been stacked together. A stack
// stays one unit in later passes, so a label pushed into it is restacked
// with the whole stack rather than with its nearest member only.
type resolver struct {
	parent []int
}

func newResolver(n int) *resolver {
	r := &resolver{parent: make([]int, n)}
	for i := range r.parent {
		r.parent[i] = i
	}
	return r
}

func find(parent []int, i int) int {
	for parent[i] != i {
		parent[i] = parent[parent[i]]
		i = parent[i]
	}
	return i
}

func union(parent []int, a, b int) {
	if ra, rb := find(parent, a), find(parent, b); ra != rb {
		parent[rb] = ra
	}
}

// groups returns the units that contain at least one overlap, merged with
// every unit they overlap.
func (r *resolver) groups(boxes []geom.Box, tol float64) [][]int {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return boxes[order[a]].Y0 < boxes[order[b]].Y0
	})

	parent := append([]int(nil), r.parent...)
	var edges [][2]int
	for a, i := range order {
		for _, j := range order[a+1:] {
			if boxes[j].Y0 >= boxes[i].Y1 {
				break
			}
			if geom.OverlapsWithin(boxes[i], boxes[j], tol) {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	for _, e := range edges {
		union(parent, e[0], e[1])
	}
	overlapping := map[int]bool{}
	for _, e := range edges {
		overlapping[find(parent, e[0])] = true
	}

	index := map[int]int{}
	var out [][]int
	for _, i := range order {
		root := find(parent, i)
		if !overlapping[root] {
			continue
		}
		g, ok := index[root]
		if !ok {
			g = len(out)
			index[root] = g
			out = append(out, nil)
		}
		out[g] = append(out[g], i)
	}
	return out
}

// bond records that every member of gs now forms one stack.
func (r *resolver) bond(gs [][]int) {
	for _, g := range gs {
		for _, i := range g[1:] {
			union(r.parent, g[0], i)
		}
	}
}

func tolerance(boxes []geom.Box) float64 {
	if len(boxes) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range boxes {
		lo = math.Min(lo, b.Y0)
		hi = math.Max(hi, b.Y1)
	}
	return relTolerance * (hi - lo)
}

// restack returns boxes with every group stacked around its middle.
func restack(boxes []geom.Box, gs [][]int, tol float64) []geom.Box {
	out := append([]geom.Box(nil), boxes...)
	sep := 2 * tol
	for _, g := range gs {
		members := append([]int(nil), g...)
		sort.SliceStable(members, func(a, b int) bool {
			return boxes[members[a]].Y0 < boxes[members[b]].Y0
		})

		total := sep * float64(len(members)-1)
		for _, i := range members {
			total += boxes[i].Height()
		}
		// the span runs from the lowest bottom edge to the top of the
		// label with the highest bottom edge
		lo := boxes[members[0]].Y0
		hi := boxes[members[len(members)-1]].Y1

		cursor := (lo+hi)/2 - total/2
		for _, i := range members {
			b := boxes[i]
			out[i] = geom.Box{X0: b.X0, Y0: cursor, X1: b.X1, Y1: cursor + b.Height()}
			cursor += b.Height() + sep
		}
	}
	return out
}

// Resolve returns boxes moved vertically so that no two overlap. The input
// is not modified. If overlaps remain after the pass limit, the last pass's
// boxes are returned with an INVALID_PARAMETER error wrapping
// ErrNotConverged.
func Resolve(boxes []geom.Box, opts ...Option) ([]geom.Box, error) {
	c := newConfig(opts)
	cur := append([]geom.Box(nil), boxes...)
	tol := tolerance(cur)
	r := newResolver(len(cur))
	for pass := 0; pass < c.maxPasses; pass++ {
		gs := r.groups(cur, tol)
		if len(gs) == 0 {
			return cur, nil
		}
		cur = restack(cur, gs, tol)
		r.bond(gs)
	}
	if len(r.groups(cur, tol)) > 0 {
		return cur, notConverged(c.maxPasses)
	}
	return cur, nil
}

// Arrange distributes the labels behind handles on s, moving each one
// vertically by the change of its box center. Boxes are re-measured on the
// surface before every pass.
func Arrange(s surface.Surface, handles []surface.Handle, opts ...Option) error {
	c := newConfig(opts)
	r := newResolver(len(handles))
	for pass := 0; pass <= c.maxPasses; pass++ {
		boxes := make([]geom.Box, len(handles))
		for i, h := range handles {
			b, err := s.Measure(h, surface.Data)
			if err != nil {
				return err
			}
			boxes[i] = b
		}

		tol := tolerance(boxes)
		gs := r.groups(boxes, tol)
		if len(gs) == 0 {
			return nil
		}
		if pass == c.maxPasses {
			break
		}

		next := restack(boxes, gs, tol)
		for _, g := range gs {
			for _, i := range g {
				e, err := s.Element(handles[i])
				if err != nil {
					return err
				}
				at := e.At.Add(0, next[i].CenterY()-boxes[i].CenterY())
				if err := s.Move(handles[i], at); err != nil {
					return err
				}
			}
		}
		r.bond(gs)
	}
	return notConverged(c.maxPasses)
}

func notConverged(passes int) error {
	return errors.Wrap(errors.ErrCodeInvalidParameter, ErrNotConverged, "labels still overlap after %d passes", passes)
}
