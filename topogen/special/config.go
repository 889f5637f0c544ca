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

package special

import (
	"fmt"
	"io"
	"strings"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/private/config"
	"github.com/ipv6lab/topogen/topogen/topology"
)

var _ config.Config = (*Config)(nil)

// Config describes a multi-AS topology layered over one or more regular base
// graphs.
type Config struct {
	// Source is the traffic source node.
	Source grid.Coord `toml:"source_node" json:"source_node"`
	// Dest is the traffic destination node.
	Dest grid.Coord `toml:"dest_node" json:"dest_node"`
	// Gateways terminate inter-AS sessions.
	Gateways []grid.Coord `toml:"gateway_nodes" json:"gateway_nodes"`
	// InternalBridges are extra links inside one AS.
	InternalBridges [][2]grid.Coord `toml:"internal_bridge_edges" json:"internal_bridge_edges"`
	// TorusBridges are extra links that must cross an AS boundary.
	TorusBridges [][2]grid.Coord `toml:"torus_bridge_edges" json:"torus_bridge_edges"`
	// BaseTopology is the family of the base graph(s).
	BaseTopology topology.Family `toml:"base_topology" json:"base_topology"`
	// IncludeBaseConnections keeps the base graph's links. Defaults to true.
	IncludeBaseConnections *bool `toml:"include_base_connections,omitempty" json:"include_base_connections"`
	// RegionSize tiles the plane into independent base graphs of this side
	// length. Zero means a single base graph spanning the plane.
	RegionSize int `toml:"region_size,omitempty" json:"region_size,omitempty"`
}

// InitDefaults sets the base family and base connection defaults.
func (c *Config) InitDefaults() {
	if c.BaseTopology == "" {
		c.BaseTopology = topology.Grid
	}
	if c.IncludeBaseConnections == nil {
		include := true
		c.IncludeBaseConnections = &include
	}
}

// Validate checks the size-independent parts of the configuration.
// Coordinates are checked against the plane by Merge.
func (c *Config) Validate() error {
	if _, err := c.BaseTopology.Wrap(); err != nil {
		return err
	}
	if c.RegionSize != 0 && c.RegionSize < topology.MinSize {
		return rangeErr("special.region_size", c.RegionSize)
	}
	return nil
}

// IncludesBase reports whether base links are kept.
func (c *Config) IncludesBase() bool {
	return c.IncludeBaseConnections == nil || *c.IncludeBaseConnections
}

// Sample writes a commented sample of the special block.
func (c *Config) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	s := SampleConfig()
	config.WriteString(dst, fmt.Sprintf(specialSample,
		s.Source, s.Dest,
		quoteCoords(s.Gateways),
		quoteEdges(s.InternalBridges),
		quoteEdges(s.TorusBridges),
		s.RegionSize,
	))
}

// ConfigName returns the name of the block.
func (c *Config) ConfigName() string {
	return "special"
}

// SampleConfig returns the four-AS 6×6 layout: a grid split into 3×3
// regions, joined by eight cross-region bridges whose endpoints are the
// gateways.
func SampleConfig() Config {
	include := true
	return Config{
		Source: grid.C(1, 4),
		Dest:   grid.C(4, 1),
		Gateways: []grid.Coord{
			grid.C(0, 1), grid.C(0, 4),
			grid.C(1, 0), grid.C(1, 2), grid.C(1, 3), grid.C(1, 5),
			grid.C(2, 1), grid.C(2, 4),
			grid.C(3, 1), grid.C(3, 4),
			grid.C(4, 0), grid.C(4, 2), grid.C(4, 3), grid.C(4, 5),
			grid.C(5, 1), grid.C(5, 4),
		},
		TorusBridges: [][2]grid.Coord{
			{grid.C(1, 2), grid.C(1, 3)},
			{grid.C(4, 2), grid.C(4, 3)},
			{grid.C(2, 1), grid.C(3, 1)},
			{grid.C(2, 4), grid.C(3, 4)},
			{grid.C(0, 1), grid.C(5, 1)},
			{grid.C(0, 4), grid.C(5, 4)},
			{grid.C(1, 0), grid.C(1, 5)},
			{grid.C(4, 0), grid.C(4, 5)},
		},
		BaseTopology:           topology.Grid,
		IncludeBaseConnections: &include,
		RegionSize:             3,
	}
}

// SampleSize is the plane size SampleConfig is laid out for.
const SampleSize = 6

func quoteCoords(cs []grid.Coord) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, fmt.Sprintf("%q", c.String()))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func quoteEdges(es [][2]grid.Coord) string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, fmt.Sprintf("[%q, %q]", e[0].String(), e[1].String()))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

const specialSample = `
# Traffic source node, "row,col". (required)
source_node = "%s"

# Traffic destination node, "row,col". (required)
dest_node = "%s"

# Gateway nodes terminate inter-AS (eBGP) sessions. Every endpoint of a torus
# bridge edge must be a gateway.
gateway_nodes = %s

# Extra links inside one AS.
internal_bridge_edges = %s

# Extra links between ASes. Each must join two different connected components
# of the graph without torus bridges.
torus_bridge_edges = %s

# Family of the base graph(s). (grid|torus|strip) (default grid)
base_topology = "grid"

# Keep the base graph's links. (default true)
include_base_connections = true

# Tile the plane into independent base graphs of this side length. 0 builds a
# single base graph. Must divide the topology size. (default 0)
region_size = %d
`
