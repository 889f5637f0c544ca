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

package config

import (
	"fmt"
	"io"

	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/private/config"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/special"
	"github.com/ipv6lab/topogen/topogen/topology"
)

const (
	DefaultSize       = 6
	DefaultSubnetMask = 127
)

var (
	DefaultIPv6Prefix     = addr.MustParsePrefix("2001:db8::/32")
	DefaultLoopbackPrefix = addr.MustParsePrefix("2001:db8:1000::/64")
	DefaultLinkPrefix     = addr.MustParsePrefix("2001:db8:2000::/64")
)

// Topology selects the plane and its family.
type Topology struct {
	// Size is the side length of the plane.
	Size int `toml:"size" json:"size" validate:"min=2,max=100"`
	// Type is the topology family.
	Type topology.Family `toml:"type" json:"type" validate:"oneof=grid torus strip special"`
	// MultiArea tiles the plane into OSPF areas of AreaSize nodes per side.
	MultiArea bool `toml:"multi_area" json:"multi_area"`
	AreaSize  int  `toml:"area_size,omitempty" json:"area_size,omitempty"`
}

func DefaultTopology() Topology {
	return Topology{Size: DefaultSize, Type: topology.Grid}
}

func (t *Topology) InitDefaults() {
	if t.Size == 0 {
		t.Size = DefaultSize
	}
	if t.Type == "" {
		t.Type = topology.Grid
	}
}

func (t *Topology) Sample(dst io.Writer, _ config.Path, ctx config.CtxMap) {
	size, typ := DefaultSize, topology.Grid
	if ctx.Has(SpecialKey) {
		size, typ = special.SampleSize, topology.Special
	}
	config.WriteString(dst, fmt.Sprintf(topologySample, size, typ))
}

func (t *Topology) ConfigName() string {
	return "topology"
}

// Network holds the address pools. Prefixes may be written without a length,
// in which case /64 is assumed.
type Network struct {
	IPv6Prefix     addr.Prefix `toml:"ipv6_prefix" json:"ipv6_prefix"`
	LoopbackPrefix addr.Prefix `toml:"loopback_prefix" json:"loopback_prefix"`
	LinkPrefix     addr.Prefix `toml:"link_prefix" json:"link_prefix"`
	// SubnetMask is the prefix length of every point-to-point link subnet.
	SubnetMask int `toml:"subnet_mask" json:"subnet_mask" validate:"min=64,max=128"`
}

func DefaultNetwork() Network {
	return Network{
		IPv6Prefix:     DefaultIPv6Prefix,
		LoopbackPrefix: DefaultLoopbackPrefix,
		LinkPrefix:     DefaultLinkPrefix,
		SubnetMask:     DefaultSubnetMask,
	}
}

func (n *Network) InitDefaults() {
	if !n.IPv6Prefix.IsValid() {
		n.IPv6Prefix = DefaultIPv6Prefix
	}
	if !n.LoopbackPrefix.IsValid() {
		n.LoopbackPrefix = DefaultLoopbackPrefix
	}
	if !n.LinkPrefix.IsValid() {
		n.LinkPrefix = DefaultLinkPrefix
	}
	if n.SubnetMask == 0 {
		n.SubnetMask = DefaultSubnetMask
	}
}

// Validate checks the shape of the pools. Containment and overlap are
// checked by the address planner.
func (n *Network) Validate() error {
	pools := []struct {
		field string
		p     addr.Prefix
	}{
		{"network.ipv6_prefix", n.IPv6Prefix},
		{"network.loopback_prefix", n.LoopbackPrefix},
		{"network.link_prefix", n.LinkPrefix},
	}
	for _, pool := range pools {
		if !pool.p.IsValid() {
			return serrors.JoinNoStack(errs.ErrRange, nil, "field", pool.field)
		}
	}
	if n.SubnetMask < n.LinkPrefix.Bits() {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "network.subnet_mask", "value", n.SubnetMask,
			"reason", fmt.Sprintf("shorter than link_prefix /%d", n.LinkPrefix.Bits()))
	}
	return nil
}

func (n *Network) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(networkSample,
		DefaultIPv6Prefix, DefaultLoopbackPrefix, DefaultLinkPrefix, DefaultSubnetMask))
}

func (n *Network) ConfigName() string {
	return "network"
}

const topologySample = `
# Side length of the plane. (2-100) (default 6)
size = %d

# Topology family. (grid|torus|strip|special) (default grid)
type = "%s"

# Tile the plane into OSPF areas of area_size nodes per side. Block (0,0) is
# the backbone. (default false)
multi_area = false

# Side length of an OSPF area block. Required with multi_area.
# (2-size)
# area_size = 3
`

const networkSample = `
# Enclosing prefix of all allocations. (default %s)
ipv6_prefix = "%[1]s"

# Pool of router loopback addresses. A prefix without a length is a /64.
# (default %s)
loopback_prefix = "%[2]s"

# Pool of point-to-point link subnets. (default %s)
link_prefix = "%[3]s"

# Prefix length of every link subnet. /127 uses both addresses, shorter
# subnets skip the subnet-router anycast address. (64-128) (default %d)
subnet_mask = %[4]d
`
