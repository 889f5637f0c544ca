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

package addrplan

import (
	"slices"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/topogen/topology"
)

// RowMajor orders the nodes of g row by row.
func RowMajor(g *topology.Graph) []grid.Coord {
	return slices.Clone(g.Nodes())
}

// ByGroup concatenates the groups in the given order. Within a group nodes
// are ordered row-major.
func ByGroup(groups ...[]grid.Coord) []grid.Coord {
	var order []grid.Coord
	for _, group := range groups {
		sorted := slices.Clone(group)
		slices.SortFunc(sorted, grid.Compare)
		order = append(order, sorted...)
	}
	return order
}
