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

// Package special assembles multi-AS topologies. Regular base graphs are
// overlaid with explicit bridge links, and autonomous systems are derived
// from connectivity: every connected component of the graph without its
// torus bridges is one AS.
package special

import (
	"fmt"
	"slices"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/topology"
)

// Result is a merged special topology.
type Result struct {
	// Graph holds all nodes, base links and bridges.
	Graph *topology.Graph
	// Source and Dest are the traffic endpoints.
	Source grid.Coord
	Dest   grid.Coord

	component  map[grid.Coord]int
	components [][]grid.Coord
	kinds      map[grid.Edge]topology.LinkKind
	gateways   map[grid.Coord]struct{}
	bridges    []grid.Edge
}

// Merge builds the special topology described by cfg on a size×size plane.
// All coordinates are validated before any graph is built.
func Merge(size int, cfg Config) (*Result, error) {
	cfg.InitDefaults()
	if err := topology.CheckSize(size); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkReferences(size, &cfg); err != nil {
		return nil, err
	}
	internal, err := canonical("special.internal_bridge_edges", cfg.InternalBridges)
	if err != nil {
		return nil, err
	}
	torus, err := canonical("special.torus_bridge_edges", cfg.TorusBridges)
	if err != nil {
		return nil, err
	}

	kinds := make(map[grid.Edge]topology.LinkKind)
	var edges []grid.Edge
	addEdge := func(e grid.Edge, k topology.LinkKind) {
		if _, ok := kinds[e]; !ok {
			edges = append(edges, e)
		}
		kinds[e] = k
	}
	if cfg.IncludesBase() {
		base, err := baseEdges(size, cfg.BaseTopology, cfg.RegionSize)
		if err != nil {
			return nil, err
		}
		for _, e := range base {
			addEdge(e, topology.BaseLink)
		}
	}
	for _, e := range internal {
		addEdge(e, topology.InternalBridge)
	}
	for _, e := range torus {
		addEdge(e, topology.TorusBridge)
	}

	g, err := topology.NewGraph(size, topology.Special, mergedNodes(size, &cfg, edges), edges)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Graph:    g,
		Source:   cfg.Source,
		Dest:     cfg.Dest,
		kinds:    kinds,
		gateways: make(map[grid.Coord]struct{}, len(cfg.Gateways)),
	}
	for _, gw := range cfg.Gateways {
		res.gateways[gw] = struct{}{}
	}
	res.deriveComponents()

	for _, e := range g.Edges() {
		if kinds[e] != topology.TorusBridge {
			continue
		}
		res.bridges = append(res.bridges, e)
		if res.component[e.A] == res.component[e.B] {
			return nil, serrors.JoinNoStack(errs.ErrContradiction, nil,
				"reason", "torus bridge does not cross an AS boundary",
				"edge", e, "as_index", res.component[e.A])
		}
		for _, c := range []grid.Coord{e.A, e.B} {
			if !res.IsGateway(c) {
				return nil, serrors.JoinNoStack(errs.ErrContradiction, nil,
					"reason", "torus bridge endpoint is not a gateway",
					"edge", e, "coord", c)
			}
		}
	}
	return res, nil
}

// mergedNodes returns the routers of the merged topology. With base links
// every node of the plane is kept. Without them only the traffic endpoints,
// the gateways and the bridge endpoints remain, so no router is left without
// a reason to exist.
func mergedNodes(size int, cfg *Config, edges []grid.Edge) []grid.Coord {
	if cfg.IncludesBase() {
		nodes := make([]grid.Coord, 0, size*size)
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				nodes = append(nodes, grid.C(r, c))
			}
		}
		return nodes
	}
	seen := make(map[grid.Coord]struct{})
	var nodes []grid.Coord
	add := func(c grid.Coord) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		nodes = append(nodes, c)
	}
	add(cfg.Source)
	add(cfg.Dest)
	for _, gw := range cfg.Gateways {
		add(gw)
	}
	for _, e := range edges {
		add(e.A)
		add(e.B)
	}
	return nodes
}

// deriveComponents labels connected components of the graph without torus
// bridges. Components are numbered by their row-major smallest node, which is
// the first node of the component met in the sorted node list.
func (r *Result) deriveComponents() {
	nodes := r.Graph.Nodes()
	size := r.Graph.Size()
	uf := newUnionFind(size * size)
	for _, e := range r.Graph.Edges() {
		if r.kinds[e] == topology.TorusBridge {
			continue
		}
		uf.union(e.A.Index(size), e.B.Index(size))
	}
	index := make(map[int]int)
	r.component = make(map[grid.Coord]int, len(nodes))
	for _, n := range nodes {
		root := uf.find(n.Index(size))
		id, ok := index[root]
		if !ok {
			id = len(r.components)
			index[root] = id
			r.components = append(r.components, nil)
		}
		r.component[n] = id
		r.components[id] = append(r.components[id], n)
	}
}

// Component returns the AS index of c.
func (r *Result) Component(c grid.Coord) int {
	return r.component[c]
}

// Components returns the members of every AS, indexed by AS index. Members
// are sorted row-major. The slices must not be modified.
func (r *Result) Components() [][]grid.Coord {
	return r.components
}

// EdgeKind returns how e entered the graph.
func (r *Result) EdgeKind(e grid.Edge) topology.LinkKind {
	return r.kinds[e]
}

// TorusBridges returns the inter-AS links in canonical order.
func (r *Result) TorusBridges() []grid.Edge {
	return r.bridges
}

// IsGateway reports whether c terminates inter-AS sessions.
func (r *Result) IsGateway(c grid.Coord) bool {
	_, ok := r.gateways[c]
	return ok
}

// Gateways returns the gateway nodes in row-major order.
func (r *Result) Gateways() []grid.Coord {
	gws := make([]grid.Coord, 0, len(r.gateways))
	for gw := range r.gateways {
		gws = append(gws, gw)
	}
	slices.SortFunc(gws, grid.Compare)
	return gws
}

// Role classifies c. Source and destination take precedence over the
// gateway role.
func (r *Result) Role(c grid.Coord) topology.NodeType {
	switch {
	case c == r.Source:
		return topology.Source
	case c == r.Dest:
		return topology.Destination
	case r.IsGateway(c):
		return topology.Gateway
	}
	return topology.Internal
}

func checkReferences(size int, cfg *Config) error {
	check := func(field string, c grid.Coord) error {
		if c.InBounds(size) {
			return nil
		}
		return serrors.JoinNoStack(errs.ErrReference, nil,
			"field", field, "coord", c, "size", size)
	}
	if err := check("special.source_node", cfg.Source); err != nil {
		return err
	}
	if err := check("special.dest_node", cfg.Dest); err != nil {
		return err
	}
	for _, gw := range cfg.Gateways {
		if err := check("special.gateway_nodes", gw); err != nil {
			return err
		}
	}
	lists := []struct {
		field string
		edges [][2]grid.Coord
	}{
		{"special.internal_bridge_edges", cfg.InternalBridges},
		{"special.torus_bridge_edges", cfg.TorusBridges},
	}
	for _, l := range lists {
		for _, e := range l.edges {
			for _, c := range e {
				if err := check(l.field, c); err != nil {
					return err
				}
			}
		}
	}
	if cfg.RegionSize != 0 && size%cfg.RegionSize != 0 {
		return serrors.JoinNoStack(errs.ErrRange, nil,
			"field", "special.region_size", "value", cfg.RegionSize,
			"reason", fmt.Sprintf("must divide size %d", size))
	}
	return nil
}

func canonical(field string, pairs [][2]grid.Coord) ([]grid.Edge, error) {
	edges := make([]grid.Edge, 0, len(pairs))
	for _, p := range pairs {
		e, err := grid.NewEdge(p[0], p[1])
		if err != nil {
			return nil, serrors.JoinNoStack(errs.ErrContradiction, err, "field", field)
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// baseEdges returns the links of the base graph, or of every region when the
// plane is tiled. Regions are built in local coordinates and shifted.
func baseEdges(size int, family topology.Family, regionSize int) ([]grid.Edge, error) {
	if regionSize == 0 || regionSize == size {
		g, err := topology.Build(size, family)
		if err != nil {
			return nil, err
		}
		return g.Edges(), nil
	}
	region, err := topology.Build(regionSize, family)
	if err != nil {
		return nil, err
	}
	perSide := size / regionSize
	edges := make([]grid.Edge, 0, perSide*perSide*len(region.Edges()))
	for br := 0; br < perSide; br++ {
		for bc := 0; bc < perSide; bc++ {
			dr, dc := br*regionSize, bc*regionSize
			for _, e := range region.Edges() {
				edges = append(edges, grid.Edge{
					A: grid.C(e.A.Row+dr, e.A.Col+dc),
					B: grid.C(e.B.Row+dr, e.B.Col+dc),
				})
			}
		}
	}
	return edges, nil
}

func rangeErr(field string, value any) error {
	return serrors.JoinNoStack(errs.ErrRange, nil, "field", field, "value", value)
}
