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

// Package config contains the planner configuration. A configuration is a
// TOML file with one table per concern:
//
//	[topology]   plane size, family and OSPF area tiling
//	[network]    IPv6 prefixes and the link subnet width
//	[ospf]       OSPFv3 settings
//	[isis]       IS-IS settings (optional, absent means disabled)
//	[bgp]        BGP settings (optional, required for special topologies)
//	[bfd]        BFD settings
//	[generation] per-protocol generation modes and daemon switches
//	[special]    multi-AS layout (required iff topology.type is "special")
//	[log]        logging of the planner itself
//
// Load decodes a file on top of the defaults, rejects unknown keys and
// validates the result. Range failures of all fields are reported together.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ipv6lab/topogen/pkg/log"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/private/config"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/special"
	"github.com/ipv6lab/topogen/topogen/topology"
)

var _ config.Config = (*Config)(nil)

// Config is the complete planner configuration.
type Config struct {
	Topology   Topology        `toml:"topology" json:"topology"`
	Network    Network         `toml:"network" json:"network"`
	OSPF       OSPF            `toml:"ospf" json:"ospf"`
	ISIS       *ISIS           `toml:"isis,omitempty" json:"isis,omitempty"`
	BGP        *BGP            `toml:"bgp,omitempty" json:"bgp,omitempty"`
	BFD        BFD             `toml:"bfd" json:"bfd"`
	Generation Generation      `toml:"generation" json:"generation"`
	Special    *special.Config `toml:"special,omitempty" json:"special,omitempty"`
	Logging    log.Config      `toml:"log,omitempty" json:"-"`
}

// Default returns a configuration with every mandatory block set to its
// defaults and no optional block.
func Default() Config {
	c := Config{
		Topology:   DefaultTopology(),
		Network:    DefaultNetwork(),
		OSPF:       DefaultOSPF(),
		BFD:        DefaultBFD(),
		Generation: Generation{},
	}
	c.Logging.InitDefaults()
	return c
}

// Load decodes raw on top of the defaults and validates the result. Optional
// blocks that are present start from their defaults as well. Values written
// in raw are never replaced, so an explicit zero fails validation instead of
// falling back to the default.
func Load(raw []byte) (*Config, error) {
	cfg := Default()
	isis, bgp, sp := DefaultISIS(), DefaultBGP(), special.Config{}
	sp.InitDefaults()
	cfg.ISIS, cfg.BGP, cfg.Special = &isis, &bgp, &sp
	if err := config.Decode(raw, &cfg); err != nil {
		return nil, serrors.JoinNoStack(errs.ErrRange, err, "reason", "decoding TOML")
	}
	present, err := tables(raw)
	if err != nil {
		return nil, err
	}
	if !present["isis"] {
		cfg.ISIS = nil
	}
	if !present["bgp"] {
		cfg.BGP = nil
	}
	if !present["special"] {
		cfg.Special = nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads and validates the configuration stored in file.
func LoadFile(file string) (*Config, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, serrors.Wrap("reading config", err, "file", file)
	}
	cfg, err := Load(raw)
	if err != nil {
		return nil, serrors.Wrap("loading config", err, "file", file)
	}
	return cfg, nil
}

// tables reports which top-level tables raw defines.
func tables(raw []byte) (map[string]bool, error) {
	var top map[string]any
	if err := toml.NewDecoder(bytes.NewReader(raw)).Decode(&top); err != nil {
		return nil, serrors.JoinNoStack(errs.ErrRange, err, "reason", "decoding TOML")
	}
	present := make(map[string]bool, len(top))
	for k := range top {
		present[k] = true
	}
	return present, nil
}

// InitDefaults fills fields whose zero value is not a legal setting. It serves
// configurations built in code; Load starts from Default instead.
func (c *Config) InitDefaults() {
	c.Topology.InitDefaults()
	c.Network.InitDefaults()
	c.OSPF.InitDefaults()
	if c.ISIS != nil {
		c.ISIS.InitDefaults()
	}
	if c.BGP != nil {
		c.BGP.InitDefaults()
	}
	c.BFD.InitDefaults()
	if c.Special != nil {
		c.Special.InitDefaults()
	}
	c.Logging.InitDefaults()
}

// Validate checks all fields. Range failures of individual fields are
// collected and returned together as ErrRange. Only when every field is in
// range are the cross-field constraints checked.
func (c *Config) Validate() error {
	if err := config.CheckTags(c, errs.ErrRange); err != nil {
		return err
	}
	if err := c.Network.Validate(); err != nil {
		return err
	}
	if c.ISIS != nil {
		if err := c.ISIS.Validate(); err != nil {
			return err
		}
	}
	if c.Special != nil {
		if err := c.Special.Validate(); err != nil {
			return err
		}
	}
	if err := c.Logging.Validate(); err != nil {
		return serrors.JoinNoStack(errs.ErrRange, err, "field", "log")
	}
	return c.crossCheck()
}

func (c *Config) crossCheck() error {
	t := c.Topology
	if t.MultiArea && (t.AreaSize < topology.MinSize || t.AreaSize > t.Size) {
		return errs.Range("topology.area_size", t.AreaSize, topology.MinSize, t.Size)
	}
	isSpecial := t.Type == topology.Special
	switch {
	case isSpecial && c.Special == nil:
		return contradiction("special", "special topology needs a [special] table")
	case !isSpecial && c.Special != nil:
		return contradiction("special", "[special] table given for a regular topology")
	case isSpecial && c.BGP == nil:
		return contradiction("bgp", "special topology needs a [bgp] table")
	case isSpecial && t.MultiArea:
		return contradiction("topology.multi_area", "special topologies use one area per AS")
	}
	if err := c.OSPF.crossCheck(); err != nil {
		return err
	}
	if c.ISIS != nil {
		if err := c.ISIS.crossCheck(); err != nil {
			return err
		}
	}
	if c.BGP != nil {
		if err := c.BGP.crossCheck(); err != nil {
			return err
		}
	}
	return c.BFD.crossCheck()
}

// Sample writes a commented configuration with every mandatory block. The
// optional [isis] and [bgp] blocks are included. The [special] block is
// included if ctx has SpecialKey set.
func (c *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	samplers := []config.Sampler{
		&c.Topology,
		&c.Network,
		&c.OSPF,
		&ISIS{},
		&BGP{},
		&c.BFD,
		&c.Generation,
	}
	if ctx.Has(SpecialKey) {
		samplers = append(samplers, &special.Config{})
	}
	samplers = append(samplers, &c.Logging)
	config.WriteSample(dst, path, ctx, samplers...)
}

// ConfigName returns the name of the configuration.
func (c *Config) ConfigName() string {
	return "topogen"
}

// SpecialKey in the sample context selects the special topology sample.
const SpecialKey = "special"

func contradiction(field, reason string) error {
	return serrors.JoinNoStack(errs.ErrContradiction, nil, "field", field, "reason", reason)
}
