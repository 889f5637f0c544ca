// Copyright 2026 The topogen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topology

import (
	"slices"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen/errs"
)

const (
	MinSize = 2
	MaxSize = 100
)

// Graph is an immutable set of nodes and deduplicated undirected edges on a
// size×size plane. Nodes and edges are kept sorted. The neighbor index is
// derived from the edge list when the graph is created and never updated
// afterwards.
type Graph struct {
	size   int
	family Family
	nodes  []grid.Coord
	edges  []grid.Edge

	edgeSet   map[grid.Edge]struct{}
	neighbors map[grid.Coord][]grid.Coord
}

// Build constructs the graph of a regular family.
func Build(size int, family Family) (*Graph, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	wrap, err := family.Wrap()
	if err != nil {
		return nil, err
	}
	nodes := make([]grid.Coord, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			nodes = append(nodes, grid.C(r, c))
		}
	}
	return NewGraph(size, family, nodes, adjacency(size, wrap))
}

// CheckSize validates a plane size.
func CheckSize(size int) error {
	if size < MinSize || size > MaxSize {
		return errs.Range("size", size, MinSize, MaxSize)
	}
	return nil
}

// adjacency returns the edges of a size×size plane with the given wraparound.
// Each node contributes its south and east neighbor, so every pair is visited
// at most twice (only for size 2 with wraparound) and the result is
// deduplicated through canonical edges.
func adjacency(size int, wrap Wrap) []grid.Edge {
	seen := make(map[grid.Edge]struct{}, 2*size*size)
	edges := make([]grid.Edge, 0, 2*size*size)
	add := func(a, b grid.Coord) {
		e := grid.MustEdge(a, b)
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			here := grid.C(r, c)
			if south, ok := step(r, size, wrap.Rows); ok {
				add(here, grid.C(south, c))
			}
			if east, ok := step(c, size, wrap.Cols); ok {
				add(here, grid.C(r, east))
			}
		}
	}
	return edges
}

// step returns the successor of i on an axis of the given length.
func step(i, size int, wrap bool) (int, bool) {
	switch {
	case i+1 < size:
		return i + 1, true
	case wrap:
		return (i + 1) % size, true
	}
	return 0, false
}

// NewGraph creates a graph from explicit nodes and edges. Duplicate edges are
// merged; duplicate nodes and edges referencing unknown nodes are rejected.
func NewGraph(size int, family Family, nodes []grid.Coord, edges []grid.Edge) (*Graph, error) {
	g := &Graph{
		size:      size,
		family:    family,
		nodes:     slices.Clone(nodes),
		edgeSet:   make(map[grid.Edge]struct{}, len(edges)),
		neighbors: make(map[grid.Coord][]grid.Coord, len(nodes)),
	}
	for _, n := range g.nodes {
		if !n.InBounds(size) {
			return nil, serrors.JoinNoStack(errs.ErrReference, nil, "coord", n, "size", size)
		}
		if _, ok := g.neighbors[n]; ok {
			return nil, serrors.New("duplicate node", "coord", n)
		}
		g.neighbors[n] = nil
	}
	slices.SortFunc(g.nodes, grid.Compare)
	g.edges = make([]grid.Edge, 0, len(edges))
	for _, raw := range edges {
		e, err := grid.NewEdge(raw.A, raw.B)
		if err != nil {
			return nil, err
		}
		if _, ok := g.edgeSet[e]; ok {
			continue
		}
		for _, c := range []grid.Coord{e.A, e.B} {
			if _, ok := g.neighbors[c]; !ok {
				return nil, serrors.JoinNoStack(errs.ErrReference, nil, "coord", c, "edge", e)
			}
		}
		g.edgeSet[e] = struct{}{}
		g.edges = append(g.edges, e)
		g.neighbors[e.A] = append(g.neighbors[e.A], e.B)
		g.neighbors[e.B] = append(g.neighbors[e.B], e.A)
	}
	slices.SortFunc(g.edges, grid.CompareEdges)
	for _, n := range g.neighbors {
		slices.SortFunc(n, grid.Compare)
	}
	return g, nil
}

// Size returns the side length of the plane.
func (g *Graph) Size() int {
	return g.size
}

// Family returns the family the graph was built for.
func (g *Graph) Family() Family {
	return g.family
}

// Nodes returns the nodes in row-major order. The slice must not be modified.
func (g *Graph) Nodes() []grid.Coord {
	return g.nodes
}

// Edges returns the edges in canonical order. The slice must not be modified.
func (g *Graph) Edges() []grid.Edge {
	return g.edges
}

// HasNode reports whether c is a node of g.
func (g *Graph) HasNode(c grid.Coord) bool {
	_, ok := g.neighbors[c]
	return ok
}

// HasEdge reports whether e is an edge of g.
func (g *Graph) HasEdge(e grid.Edge) bool {
	_, ok := g.edgeSet[e]
	return ok
}

// Neighbors returns the sorted neighbors of c. The slice must not be
// modified.
func (g *Graph) Neighbors(c grid.Coord) []grid.Coord {
	return g.neighbors[c]
}

// Degree returns the number of neighbors of c.
func (g *Graph) Degree(c grid.Coord) int {
	return len(g.neighbors[c])
}

// Direction returns the direction from c to its neighbor o.
func (g *Graph) Direction(c, o grid.Coord) grid.Direction {
	return grid.DirectionOf(c, o, g.size)
}
