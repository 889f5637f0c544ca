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

package partition

import (
	"slices"

	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/topology"
)

// Areas is an OSPF area assignment together with the area border routers and
// inter-area links it implies.
type Areas struct {
	Assignment[addr.DottedQuad]

	borders   map[grid.Coord]struct{}
	interArea map[grid.Edge]struct{}
}

// OSPFAreas partitions g into OSPF areas. Without multiArea every node is in
// the backbone. With multiArea the plane is tiled into blocks of areaSize
// nodes per side; the last block of a row or column may be smaller. Block
// (br, bc) is area br*blocksPerSide+bc, and block (0,0) is the backbone.
func OSPFAreas(
	g *topology.Graph,
	multiArea bool,
	areaSize int,
	backbone addr.DottedQuad,
) (*Areas, error) {

	nodes := g.Nodes()
	a := &Areas{
		Assignment: newAssignment[addr.DottedQuad](len(nodes)),
		borders:    make(map[grid.Coord]struct{}),
		interArea:  make(map[grid.Edge]struct{}),
	}
	if !multiArea {
		for _, n := range nodes {
			if err := a.assign(n, backbone); err != nil {
				return nil, err
			}
		}
		a.seal()
		return a, nil
	}

	size := g.Size()
	if areaSize < 2 || areaSize > size {
		return nil, errs.Range("topology.area_size", areaSize, 2, size)
	}
	perSide := (size + areaSize - 1) / areaSize
	areaOf := func(c grid.Coord) addr.DottedQuad {
		n := (c.Row/areaSize)*perSide + c.Col/areaSize
		if n == 0 {
			return backbone
		}
		return addr.DottedQuad(n)
	}
	if backbone != addr.Backbone && int(backbone) < perSide*perSide {
		return nil, serrors.JoinNoStack(errs.ErrContradiction, nil,
			"reason", "backbone area collides with a block area",
			"field", "ospf.area_id", "value", backbone)
	}
	for _, n := range nodes {
		if err := a.assign(n, areaOf(n)); err != nil {
			return nil, err
		}
	}
	for _, e := range g.Edges() {
		if a.of[e.A] == a.of[e.B] {
			continue
		}
		a.interArea[e] = struct{}{}
		a.borders[e.A] = struct{}{}
		a.borders[e.B] = struct{}{}
	}
	a.seal()
	return a, nil
}

// IsBorder reports whether c is an area border router.
func (a *Areas) IsBorder(c grid.Coord) bool {
	_, ok := a.borders[c]
	return ok
}

// Borders returns the area border routers in row-major order.
func (a *Areas) Borders() []grid.Coord {
	b := make([]grid.Coord, 0, len(a.borders))
	for c := range a.borders {
		b = append(b, c)
	}
	slices.SortFunc(b, grid.Compare)
	return b
}

// InterArea reports whether e joins two areas.
func (a *Areas) InterArea(e grid.Edge) bool {
	_, ok := a.interArea[e]
	return ok
}
