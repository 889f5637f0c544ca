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

package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/topogen/topology"
)

type endpoint struct {
	edge grid.Edge
	node grid.Coord
}

// interfaceMap holds the interface index of every link endpoint.
type interfaceMap map[endpoint]int

func (m interfaceMap) name(e grid.Edge, c grid.Coord) string {
	return fmt.Sprintf("eth%d", m[endpoint{edge: e, node: c}])
}

// assignInterfaces binds every link endpoint to an interface. A link with a
// compass direction uses the interface of that direction (eth1 north, eth2
// south, eth3 west, eth4 east). Links without a direction, or whose
// direction is already taken on that node, get the next free interface from
// eth5 on. Base links are bound before bridges so that bridges never displace
// them; within each group links are taken in canonical order.
func assignInterfaces(g *topology.Graph, kind func(grid.Edge) topology.LinkKind) interfaceMap {
	m := make(interfaceMap, 2*len(g.Edges()))
	taken := make(map[grid.Coord]map[int]struct{}, len(g.Nodes()))
	next := make(map[grid.Coord]int, len(g.Nodes()))
	bind := func(e grid.Edge, c grid.Coord) {
		other, _ := e.Other(c)
		if taken[c] == nil {
			taken[c] = make(map[int]struct{})
		}
		idx := int(g.Direction(c, other))
		if _, used := taken[c][idx]; idx == 0 || used {
			if next[c] == 0 {
				next[c] = FirstExtraInterface
			}
			idx = next[c]
			next[c]++
		}
		taken[c][idx] = struct{}{}
		m[endpoint{edge: e, node: c}] = idx
	}
	for _, bridges := range []bool{false, true} {
		for _, e := range g.Edges() {
			if (kind(e) != topology.BaseLink) != bridges {
				continue
			}
			bind(e, e.A)
			bind(e, e.B)
		}
	}
	return m
}

// interfaceIndex parses the index of an "ethN" name.
func interfaceIndex(name string) int {
	i, err := strconv.Atoi(strings.TrimPrefix(name, "eth"))
	if err != nil {
		return 0
	}
	return i
}
