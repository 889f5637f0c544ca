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
	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/topology"
)

// ASMap is an autonomous system assignment.
type ASMap struct {
	Assignment[addr.AS]
}

// ASes numbers the given components base, base+1, ... in order and checks
// that they partition g.
func ASes(g *topology.Graph, components [][]grid.Coord, base addr.AS) (*ASMap, error) {
	a := &ASMap{Assignment: newAssignment[addr.AS](len(g.Nodes()))}
	for i, members := range components {
		as, err := base.Add(i)
		if err != nil {
			return nil, serrors.JoinNoStack(errs.ErrRange, err,
				"field", "bgp.as_number", "value", base, "components", len(components))
		}
		for _, c := range members {
			if err := a.assign(c, as); err != nil {
				return nil, err
			}
		}
	}
	a.seal()
	if err := Check(g.Nodes(), &a.Assignment); err != nil {
		return nil, err
	}
	return a, nil
}

// InterAS reports whether e joins two autonomous systems.
func (a *ASMap) InterAS(e grid.Edge) bool {
	return a.of[e.A] != a.of[e.B]
}
