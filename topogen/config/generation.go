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
	"io"
	"slices"

	"github.com/ipv6lab/topogen/private/config"
)

// Protocol names a routing daemon.
type Protocol string

const (
	OSPF6d Protocol = "ospf6d"
	ISISd  Protocol = "isisd"
	BGPd   Protocol = "bgpd"
	BFDd   Protocol = "bfdd"
)

// Protocols lists all daemons in output order.
var Protocols = []Protocol{OSPF6d, ISISd, BGPd, BFDd}

// Generation controls what emitters produce per protocol.
type Generation struct {
	// DaemonsOff turns every daemon off while keeping its configuration.
	DaemonsOff bool `toml:"daemons_off" json:"daemons_off"`
	OSPF6dOff  bool `toml:"ospf6d_off" json:"ospf6d_off"`
	ISISdOff   bool `toml:"isisd_off" json:"isisd_off"`
	BGPdOff    bool `toml:"bgpd_off" json:"bgpd_off"`
	BFDdOff    bool `toml:"bfdd_off" json:"bfdd_off"`
	// DummyGenProtocols get a placeholder configuration.
	DummyGenProtocols []Protocol `toml:"dummy_gen_protocols" json:"dummy_gen_protocols" validate:"unique,dive,oneof=ospf6d isisd bgpd bfdd"`
	// NoConfigProtocols get no configuration at all. This wins over
	// DummyGenProtocols.
	NoConfigProtocols []Protocol `toml:"no_config_protocols" json:"no_config_protocols" validate:"unique,dive,oneof=ospf6d isisd bgpd bfdd"`
	NoLinks           bool       `toml:"no_links" json:"no_links"`
	Podman            bool       `toml:"podman" json:"podman"`
	DisableLogging    bool       `toml:"disable_logging" json:"disable_logging"`
}

// Dummy reports whether p is in the dummy set.
func (g *Generation) Dummy(p Protocol) bool {
	return slices.Contains(g.DummyGenProtocols, p)
}

// NoConfig reports whether p is in the no-config set.
func (g *Generation) NoConfig(p Protocol) bool {
	return slices.Contains(g.NoConfigProtocols, p)
}

// DaemonOff reports whether the daemon of p is switched off.
func (g *Generation) DaemonOff(p Protocol) bool {
	if g.DaemonsOff {
		return true
	}
	switch p {
	case OSPF6d:
		return g.OSPF6dOff
	case ISISd:
		return g.ISISdOff
	case BGPd:
		return g.BGPdOff
	case BFDd:
		return g.BFDdOff
	}
	return false
}

func (g *Generation) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, generationSample)
}

func (g *Generation) ConfigName() string {
	return "generation"
}

const generationSample = `
# Turn every daemon off. Configuration is still generated. (default false)
daemons_off = false

# Turn single daemons off. (default false)
ospf6d_off = false
isisd_off = false
bgpd_off = false
bfdd_off = false

# Protocols that get a placeholder configuration.
# (subset of ospf6d, isisd, bgpd, bfdd) (default [])
dummy_gen_protocols = []

# Protocols that get no configuration. Wins over dummy_gen_protocols.
# (default [])
no_config_protocols = []

# Omit links from the lab description. (default false)
no_links = false

# Target podman instead of docker. (default false)
podman = false

# Disable daemon logging. (default false)
disable_logging = false
`
