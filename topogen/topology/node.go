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
	"fmt"

	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/grid"
)

// NodeType classifies a node by its position or role.
type NodeType string

const (
	Corner      NodeType = "corner"
	Edge        NodeType = "edge"
	Internal    NodeType = "internal"
	Gateway     NodeType = "gateway"
	Source      NodeType = "source"
	Destination NodeType = "destination"
)

// NodeType classifies c by its position in g's family. Torus nodes are all
// internal. In a strip only the bounded columns form an edge. Special graphs
// classify every node as internal; roles are assigned by the merger.
func (g *Graph) NodeType(c grid.Coord) NodeType {
	last := g.size - 1
	switch g.family {
	case Grid:
		rowBorder := c.Row == 0 || c.Row == last
		colBorder := c.Col == 0 || c.Col == last
		switch {
		case rowBorder && colBorder:
			return Corner
		case rowBorder || colBorder:
			return Edge
		}
	case Strip:
		if c.Col == 0 || c.Col == last {
			return Edge
		}
	}
	return Internal
}

// RouterName returns the conventional name of the router at c.
func RouterName(c grid.Coord) string {
	return fmt.Sprintf("router_%02d_%02d", c.Row, c.Col)
}

// RouterID returns the IPv4-style router ID 10.row.col.1 of the router at c.
func RouterID(c grid.Coord) addr.DottedQuad {
	return addr.DottedQuadFrom(10, byte(c.Row), byte(c.Col), 1)
}

// Stats summarizes a graph.
type Stats struct {
	Nodes     int              `json:"nodes" yaml:"nodes"`
	Links     int              `json:"links" yaml:"links"`
	ByType    map[NodeType]int `json:"by_type" yaml:"by_type"`
	MinDegree int              `json:"min_degree" yaml:"min_degree"`
	MaxDegree int              `json:"max_degree" yaml:"max_degree"`
	AvgDegree float64          `json:"avg_degree" yaml:"avg_degree"`
}

// Stats computes node and degree statistics of g.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes:  len(g.nodes),
		Links:  len(g.edges),
		ByType: make(map[NodeType]int),
	}
	for i, n := range g.nodes {
		s.ByType[g.NodeType(n)]++
		d := g.Degree(n)
		if i == 0 || d < s.MinDegree {
			s.MinDegree = d
		}
		if d > s.MaxDegree {
			s.MaxDegree = d
		}
	}
	if s.Nodes > 0 {
		s.AvgDegree = float64(2*s.Links) / float64(s.Nodes)
	}
	return s
}
