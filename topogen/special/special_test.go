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

package special_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/private/config"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/special"
	"github.com/ipv6lab/topogen/topogen/topology"
)

func TestMergeSample(t *testing.T) {
	res, err := special.Merge(special.SampleSize, special.SampleConfig())
	require.NoError(t, err)

	comps := res.Components()
	require.Len(t, comps, 4)
	for i, members := range comps {
		assert.Len(t, members, 9, "AS index %d", i)
	}
	assert.Equal(t, 0, res.Component(grid.C(0, 0)))
	assert.Equal(t, 1, res.Component(grid.C(0, 3)))
	assert.Equal(t, 2, res.Component(grid.C(3, 0)))
	assert.Equal(t, 3, res.Component(grid.C(5, 5)))

	// 4 regions of 12 grid links plus 8 bridges.
	assert.Len(t, res.Graph.Edges(), 4*12+8)
	assert.Len(t, res.TorusBridges(), 8)
	for _, e := range res.TorusBridges() {
		assert.NotEqual(t, res.Component(e.A), res.Component(e.B))
		assert.Equal(t, topology.TorusBridge, res.EdgeKind(e))
	}
	assert.Len(t, res.Gateways(), 16)

	assert.Equal(t, topology.Source, res.Role(grid.C(1, 4)))
	assert.Equal(t, topology.Destination, res.Role(grid.C(4, 1)))
	assert.Equal(t, topology.Gateway, res.Role(grid.C(0, 1)))
	assert.Equal(t, topology.Internal, res.Role(grid.C(1, 1)))
	assert.Equal(t, topology.BaseLink, res.EdgeKind(grid.MustEdge(grid.C(0, 0), grid.C(0, 1))))
	assert.False(t, res.Graph.HasEdge(grid.MustEdge(grid.C(0, 2), grid.C(0, 3))),
		"regions must not be joined by base links")
}

func TestMergeInternalBridges(t *testing.T) {
	include := false
	cfg := special.Config{
		Source:   grid.C(0, 0),
		Dest:     grid.C(1, 1),
		Gateways: []grid.Coord{grid.C(0, 1), grid.C(1, 1)},
		InternalBridges: [][2]grid.Coord{
			{grid.C(0, 0), grid.C(0, 1)},
			{grid.C(1, 0), grid.C(1, 1)},
		},
		TorusBridges:           [][2]grid.Coord{{grid.C(1, 1), grid.C(0, 1)}},
		IncludeBaseConnections: &include,
	}
	res, err := special.Merge(2, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Graph.Edges(), 3)
	require.Len(t, res.Components(), 2)
	assert.Equal(t, []grid.Coord{grid.C(0, 0), grid.C(0, 1)}, res.Components()[0])
	assert.Equal(t, []grid.Coord{grid.C(1, 0), grid.C(1, 1)}, res.Components()[1])
	assert.Equal(t, topology.InternalBridge,
		res.EdgeKind(grid.MustEdge(grid.C(0, 0), grid.C(0, 1))))
}

func TestMergeWithoutBaseKeepsReferencedNodes(t *testing.T) {
	cfg := special.SampleConfig()
	include := false
	cfg.IncludeBaseConnections = &include
	res, err := special.Merge(special.SampleSize, cfg)
	require.NoError(t, err)

	// Source, destination and the 16 gateways, which are also the bridge
	// endpoints.
	nodes := res.Graph.Nodes()
	assert.Len(t, nodes, 18)
	assert.Len(t, res.Graph.Edges(), 8)
	assert.False(t, res.Graph.HasNode(grid.C(0, 0)))
	assert.False(t, res.Graph.HasNode(grid.C(2, 2)))
	assert.True(t, res.Graph.HasNode(grid.C(1, 4)))
	assert.True(t, res.Graph.HasNode(grid.C(4, 1)))
	for _, n := range nodes {
		if n == res.Source || n == res.Dest {
			continue
		}
		assert.Equal(t, 1, res.Graph.Degree(n), "node %s", n)
	}
	members := 0
	for _, c := range res.Components() {
		members += len(c)
	}
	assert.Equal(t, len(nodes), members)
}

func TestMergeErrors(t *testing.T) {
	sample := special.SampleConfig
	testCases := map[string]struct {
		size    int
		cfg     func() special.Config
		errKind error
	}{
		"gateway outside plane": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.Gateways = append(c.Gateways, grid.C(6, 0))
				return c
			},
			errKind: errs.ErrReference,
		},
		"source outside plane": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.Source = grid.C(0, 9)
				return c
			},
			errKind: errs.ErrReference,
		},
		"bridge endpoint outside plane": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.TorusBridges = append(c.TorusBridges, [2]grid.Coord{grid.C(0, 1), grid.C(-1, 1)})
				return c
			},
			errKind: errs.ErrReference,
		},
		"bridge inside one AS": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.TorusBridges = append(c.TorusBridges, [2]grid.Coord{grid.C(0, 1), grid.C(1, 2)})
				return c
			},
			errKind: errs.ErrContradiction,
		},
		"single base graph leaves one AS": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.RegionSize = 0
				return c
			},
			errKind: errs.ErrContradiction,
		},
		"bridge endpoint not a gateway": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.Gateways = c.Gateways[1:]
				return c
			},
			errKind: errs.ErrContradiction,
		},
		"self-loop bridge": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.InternalBridges = [][2]grid.Coord{{grid.C(2, 2), grid.C(2, 2)}}
				return c
			},
			errKind: errs.ErrContradiction,
		},
		"region size does not divide": {
			size: 7,
			cfg: func() special.Config {
				c := sample()
				return c
			},
			errKind: errs.ErrRange,
		},
		"region size too small": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.RegionSize = 1
				return c
			},
			errKind: errs.ErrRange,
		},
		"special base family": {
			size: 6,
			cfg: func() special.Config {
				c := sample()
				c.BaseTopology = topology.Special
				return c
			},
			errKind: errs.ErrRange,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := special.Merge(tc.size, tc.cfg())
			assert.ErrorIs(t, err, tc.errKind)
		})
	}
}

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg special.Config
	cfg.Sample(&sample, nil, nil)

	var decoded special.Config
	require.NoError(t, config.Decode(sample.Bytes(), &decoded))
	decoded.InitDefaults()
	require.NoError(t, decoded.Validate())
	assert.Empty(t, decoded.InternalBridges)
	decoded.InternalBridges = nil
	assert.Equal(t, special.SampleConfig(), decoded)
}

func TestConfigDefaults(t *testing.T) {
	var cfg special.Config
	cfg.InitDefaults()
	assert.Equal(t, topology.Grid, cfg.BaseTopology)
	assert.True(t, cfg.IncludesBase())
}
