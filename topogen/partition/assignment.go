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

// Package partition assigns every node of a graph to exactly one OSPF area or
// BGP autonomous system.
package partition

import (
	"cmp"
	"slices"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen/errs"
)

// Assignment maps nodes to partition identifiers. It is built once and read
// only afterwards.
type Assignment[ID cmp.Ordered] struct {
	of      map[grid.Coord]ID
	members map[ID][]grid.Coord
	ids     []ID
}

func newAssignment[ID cmp.Ordered](n int) Assignment[ID] {
	return Assignment[ID]{
		of:      make(map[grid.Coord]ID, n),
		members: make(map[ID][]grid.Coord),
	}
}

func (a *Assignment[ID]) assign(c grid.Coord, id ID) error {
	if prev, ok := a.of[c]; ok {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"reason", "node assigned twice", "coord", c, "first", prev, "second", id)
	}
	a.of[c] = id
	if _, ok := a.members[id]; !ok {
		a.ids = append(a.ids, id)
	}
	a.members[id] = append(a.members[id], c)
	return nil
}

func (a *Assignment[ID]) seal() {
	slices.Sort(a.ids)
	for _, m := range a.members {
		slices.SortFunc(m, grid.Compare)
	}
}

// Of returns the identifier c is assigned to.
func (a *Assignment[ID]) Of(c grid.Coord) (ID, bool) {
	id, ok := a.of[c]
	return id, ok
}

// Members returns the sorted nodes assigned to id. The slice must not be
// modified.
func (a *Assignment[ID]) Members(id ID) []grid.Coord {
	return a.members[id]
}

// IDs returns the sorted identifiers in use. The slice must not be modified.
func (a *Assignment[ID]) IDs() []ID {
	return a.ids
}

// Len returns the number of partitions.
func (a *Assignment[ID]) Len() int {
	return len(a.ids)
}

// Check verifies that a is a total and disjoint partition of nodes.
func Check[ID cmp.Ordered](nodes []grid.Coord, a *Assignment[ID]) error {
	known := make(map[grid.Coord]struct{}, len(nodes))
	for _, n := range nodes {
		known[n] = struct{}{}
		if _, ok := a.of[n]; !ok {
			return serrors.JoinNoStack(errs.ErrContradiction, nil,
				"reason", "node not assigned", "coord", n)
		}
	}
	seen := make(map[grid.Coord]struct{}, len(nodes))
	for _, id := range a.ids {
		for _, m := range a.members[id] {
			if _, ok := known[m]; !ok {
				return serrors.JoinNoStack(errs.ErrReference, nil,
					"reason", "assigned node not in graph", "coord", m, "id", id)
			}
			if _, ok := seen[m]; ok {
				return serrors.JoinNoStack(errs.ErrContradiction, nil,
					"reason", "node in more than one partition", "coord", m)
			}
			seen[m] = struct{}{}
		}
	}
	if len(seen) != len(nodes) {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"reason", "partition size mismatch", "nodes", len(nodes), "assigned", len(seen))
	}
	return nil
}
