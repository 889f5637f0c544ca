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
	"strings"

	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/private/config"
	"github.com/ipv6lab/topogen/topogen/errs"
)

// OSPF holds the OSPFv3 settings. Intervals are in seconds unless noted.
type OSPF struct {
	Enabled       bool            `toml:"enabled" json:"enabled"`
	HelloInterval int             `toml:"hello_interval" json:"hello_interval" validate:"min=1,max=65535"`
	DeadInterval  int             `toml:"dead_interval" json:"dead_interval" validate:"min=1,max=65535"`
	SPFDelay      int             `toml:"spf_delay" json:"spf_delay" validate:"min=1,max=65535"`
	AreaID        addr.DottedQuad `toml:"area_id" json:"area_id"`
	// Cost overrides the per-axis costs on every interface. 0 keeps them.
	Cost               int `toml:"cost" json:"cost" validate:"min=0,max=65535"`
	Priority           int `toml:"priority" json:"priority" validate:"min=0,max=255"`
	RetransmitInterval int `toml:"retransmit_interval" json:"retransmit_interval" validate:"min=1,max=3600"`
	TransmitDelay      int `toml:"transmit_delay" json:"transmit_delay" validate:"min=1,max=3600"`
	// LSAMinArrival is in milliseconds.
	LSAMinArrival  int  `toml:"lsa_min_arrival" json:"lsa_min_arrival" validate:"min=10,max=60000"`
	MaximumPaths   int  `toml:"maximum_paths" json:"maximum_paths" validate:"min=1,max=128"`
	LSAOnlyMode    bool `toml:"lsa_only_mode" json:"lsa_only_mode"`
	HorizontalCost int  `toml:"horizontal_cost" json:"horizontal_cost" validate:"min=1,max=65535"`
	VerticalCost   int  `toml:"vertical_cost" json:"vertical_cost" validate:"min=1,max=65535"`
}

func DefaultOSPF() OSPF {
	return OSPF{
		Enabled:            true,
		HelloInterval:      2,
		DeadInterval:       10,
		SPFDelay:           20,
		AreaID:             addr.Backbone,
		Priority:           1,
		RetransmitInterval: 5,
		TransmitDelay:      1,
		LSAMinArrival:      1000,
		MaximumPaths:       1,
		HorizontalCost:     40,
		VerticalCost:       20,
	}
}

func (o *OSPF) InitDefaults() {
	d := DefaultOSPF()
	setDefault(&o.HelloInterval, d.HelloInterval)
	setDefault(&o.DeadInterval, d.DeadInterval)
	setDefault(&o.SPFDelay, d.SPFDelay)
	setDefault(&o.RetransmitInterval, d.RetransmitInterval)
	setDefault(&o.TransmitDelay, d.TransmitDelay)
	setDefault(&o.LSAMinArrival, d.LSAMinArrival)
	setDefault(&o.MaximumPaths, d.MaximumPaths)
	setDefault(&o.HorizontalCost, d.HorizontalCost)
	setDefault(&o.VerticalCost, d.VerticalCost)
}

func (o *OSPF) crossCheck() error {
	if o.DeadInterval <= o.HelloInterval {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "ospf.dead_interval", "value", o.DeadInterval,
			"hello_interval", o.HelloInterval,
			"reason", "dead interval must exceed hello interval")
	}
	return nil
}

func (o *OSPF) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, ospfSample)
}

func (o *OSPF) ConfigName() string {
	return "ospf"
}

// Level types and metric styles of IS-IS.
const (
	Level1  = "level-1"
	Level2  = "level-2"
	Level12 = "level-1-2"

	MetricNarrow     = "narrow"
	MetricWide       = "wide"
	MetricTransition = "transition"
)

// ISIS holds the IS-IS settings. Intervals are in seconds.
type ISIS struct {
	// NetAddress is the network entity title template. Its area part is
	// combined with a per-router system ID.
	NetAddress         string `toml:"net_address" json:"net_address" validate:"required"`
	LevelType          string `toml:"level_type" json:"level_type" validate:"oneof=level-1 level-2 level-1-2"`
	MetricStyle        string `toml:"metric_style" json:"metric_style" validate:"oneof=narrow wide transition"`
	HelloInterval      int    `toml:"hello_interval" json:"hello_interval" validate:"min=1,max=600"`
	HelloMultiplier    int    `toml:"hello_multiplier" json:"hello_multiplier" validate:"min=2,max=100"`
	LSPGenInterval     int    `toml:"lsp_gen_interval" json:"lsp_gen_interval" validate:"min=1,max=120"`
	LSPRefreshInterval int    `toml:"lsp_refresh_interval" json:"lsp_refresh_interval" validate:"min=1,max=65534"`
	MaxLSPLifetime     int    `toml:"max_lsp_lifetime" json:"max_lsp_lifetime" validate:"min=350,max=65535"`
	SPFInterval        int    `toml:"spf_interval" json:"spf_interval" validate:"min=1,max=120"`
	CSNPInterval       int    `toml:"csnp_interval" json:"csnp_interval" validate:"min=1,max=600"`
	PSNPInterval       int    `toml:"psnp_interval" json:"psnp_interval" validate:"min=1,max=120"`
	Priority           int    `toml:"priority" json:"priority" validate:"min=0,max=127"`
	// ISISMetric overrides the per-axis metrics on every interface. 0 keeps
	// them.
	ISISMetric        int  `toml:"isis_metric" json:"isis_metric" validate:"min=0,max=16777215"`
	HorizontalMetric  int  `toml:"horizontal_metric" json:"horizontal_metric" validate:"min=1,max=16777215"`
	VerticalMetric    int  `toml:"vertical_metric" json:"vertical_metric" validate:"min=1,max=16777215"`
	ThreeWayHandshake bool `toml:"three_way_handshake" json:"three_way_handshake"`
}

func DefaultISIS() ISIS {
	return ISIS{
		LevelType:          Level2,
		MetricStyle:        MetricWide,
		HelloInterval:      1,
		HelloMultiplier:    5,
		LSPGenInterval:     2,
		LSPRefreshInterval: 900,
		MaxLSPLifetime:     1200,
		SPFInterval:        2,
		CSNPInterval:       10,
		PSNPInterval:       2,
		Priority:           64,
		HorizontalMetric:   20,
		VerticalMetric:     10,
		ThreeWayHandshake:  true,
	}
}

func (i *ISIS) InitDefaults() {
	d := DefaultISIS()
	if i.LevelType == "" {
		i.LevelType = d.LevelType
	}
	if i.MetricStyle == "" {
		i.MetricStyle = d.MetricStyle
	}
	setDefault(&i.HelloInterval, d.HelloInterval)
	setDefault(&i.HelloMultiplier, d.HelloMultiplier)
	setDefault(&i.LSPGenInterval, d.LSPGenInterval)
	setDefault(&i.LSPRefreshInterval, d.LSPRefreshInterval)
	setDefault(&i.MaxLSPLifetime, d.MaxLSPLifetime)
	setDefault(&i.SPFInterval, d.SPFInterval)
	setDefault(&i.CSNPInterval, d.CSNPInterval)
	setDefault(&i.PSNPInterval, d.PSNPInterval)
	setDefault(&i.HorizontalMetric, d.HorizontalMetric)
	setDefault(&i.VerticalMetric, d.VerticalMetric)
}

// Validate checks the shape of the NET template.
func (i *ISIS) Validate() error {
	parts := strings.Split(i.NetAddress, ".")
	if len(parts) < 3 {
		return serrors.JoinNoStack(errs.ErrRange, nil,
			"field", "isis.net_address", "value", i.NetAddress,
			"reason", "want at least area.system_id.selector")
	}
	for _, p := range parts {
		if p == "" {
			return serrors.JoinNoStack(errs.ErrRange, nil,
				"field", "isis.net_address", "value", i.NetAddress,
				"reason", "empty component")
		}
	}
	return nil
}

func (i *ISIS) crossCheck() error {
	if i.LSPRefreshInterval >= i.MaxLSPLifetime {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "isis.lsp_refresh_interval", "value", i.LSPRefreshInterval,
			"max_lsp_lifetime", i.MaxLSPLifetime,
			"reason", "LSPs must be refreshed before they expire")
	}
	return nil
}

// AreaPart returns the area portion of the NET template. A full-length NET
// (area, three system ID groups, selector) drops its last four components;
// shorter forms drop only the selector.
func (i *ISIS) AreaPart() string {
	parts := strings.Split(i.NetAddress, ".")
	if len(parts) >= 6 {
		return strings.Join(parts[:len(parts)-4], ".")
	}
	return strings.Join(parts[:len(parts)-1], ".")
}

// DeadInterval is the adjacency hold time implied by hello interval and
// multiplier.
func (i *ISIS) DeadInterval() int {
	return i.HelloInterval * i.HelloMultiplier
}

func (i *ISIS) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, isisSample)
}

func (i *ISIS) ConfigName() string {
	return "isis"
}

// BGP holds the BGP settings. Times are in seconds.
type BGP struct {
	// ASNumber is the AS of a regular topology, and the AS of the first
	// autonomous system of a special topology.
	ASNumber addr.AS `toml:"as_number" json:"as_number" validate:"min=1"`
	// RouterID, if set, provides the first two octets of every BGP router
	// ID. The last two are the router's row and column.
	RouterID         *addr.DottedQuad `toml:"router_id,omitempty" json:"router_id,omitempty"`
	EnableIPv6       bool             `toml:"enable_ipv6" json:"enable_ipv6"`
	LocalPreference  int64            `toml:"local_preference" json:"local_preference" validate:"min=0,max=4294967295"`
	HoldTime         int              `toml:"hold_time" json:"hold_time" validate:"min=3,max=65535"`
	KeepaliveTime    int              `toml:"keepalive_time" json:"keepalive_time" validate:"min=1,max=21845"`
	ConnectRetryTime int              `toml:"connect_retry_time" json:"connect_retry_time" validate:"min=1,max=65535"`
}

// DefaultASNumber is the default (first) AS number.
const DefaultASNumber addr.AS = 65000

func DefaultBGP() BGP {
	return BGP{
		ASNumber:         DefaultASNumber,
		EnableIPv6:       true,
		LocalPreference:  100,
		HoldTime:         180,
		KeepaliveTime:    60,
		ConnectRetryTime: 120,
	}
}

func (b *BGP) InitDefaults() {
	d := DefaultBGP()
	if b.ASNumber == 0 {
		b.ASNumber = d.ASNumber
	}
	setDefault(&b.HoldTime, d.HoldTime)
	setDefault(&b.KeepaliveTime, d.KeepaliveTime)
	setDefault(&b.ConnectRetryTime, d.ConnectRetryTime)
}

func (b *BGP) crossCheck() error {
	if b.KeepaliveTime*3 > b.HoldTime {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "bgp.keepalive_time", "value", b.KeepaliveTime,
			"hold_time", b.HoldTime,
			"reason", "keepalive must not exceed a third of the hold time")
	}
	return nil
}

func (b *BGP) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(bgpSample, DefaultASNumber))
}

func (b *BGP) ConfigName() string {
	return "bgp"
}

// BFD holds the BFD settings. Intervals are in milliseconds.
type BFD struct {
	Enabled          bool   `toml:"enabled" json:"enabled"`
	DetectMultiplier int    `toml:"detect_multiplier" json:"detect_multiplier" validate:"min=1,max=255"`
	ReceiveInterval  int    `toml:"receive_interval" json:"receive_interval" validate:"min=10,max=60000"`
	TransmitInterval int    `toml:"transmit_interval" json:"transmit_interval" validate:"min=10,max=60000"`
	EchoMode         bool   `toml:"echo_mode" json:"echo_mode"`
	EchoInterval     int    `toml:"echo_interval" json:"echo_interval" validate:"min=10,max=60000"`
	MinTTL           int    `toml:"min_ttl" json:"min_ttl" validate:"min=1,max=255"`
	ProfileName      string `toml:"profile_name" json:"profile_name"`
	PassiveMode      bool   `toml:"passive_mode" json:"passive_mode"`
}

func DefaultBFD() BFD {
	return BFD{
		DetectMultiplier: 3,
		ReceiveInterval:  300,
		TransmitInterval: 300,
		EchoInterval:     50,
		MinTTL:           254,
	}
}

func (b *BFD) InitDefaults() {
	d := DefaultBFD()
	setDefault(&b.DetectMultiplier, d.DetectMultiplier)
	setDefault(&b.ReceiveInterval, d.ReceiveInterval)
	setDefault(&b.TransmitInterval, d.TransmitInterval)
	setDefault(&b.EchoInterval, d.EchoInterval)
	setDefault(&b.MinTTL, d.MinTTL)
}

func (b *BFD) crossCheck() error {
	if b.EchoInterval > b.ReceiveInterval {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "bfd.echo_interval", "value", b.EchoInterval,
			"receive_interval", b.ReceiveInterval,
			"reason", "echo interval must not exceed receive interval")
	}
	return nil
}

// DetectionTime is the time in milliseconds after which a silent peer is
// declared down.
func (b *BFD) DetectionTime() int {
	return b.ReceiveInterval * b.DetectMultiplier
}

func (b *BFD) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, bfdSample)
}

func (b *BFD) ConfigName() string {
	return "bfd"
}

func setDefault(v *int, d int) {
	if *v == 0 {
		*v = d
	}
}

const ospfSample = `
# Generate OSPFv3. (default true)
enabled = true

# Hello interval in seconds. (1-65535) (default 2)
hello_interval = 2

# Dead interval in seconds. Must exceed hello_interval. (1-65535) (default 10)
dead_interval = 10

# SPF delay in milliseconds. (1-65535) (default 20)
spf_delay = 20

# Area of all routers without multi_area. (default "0.0.0.0")
area_id = "0.0.0.0"

# Cost of every interface. 0 uses horizontal_cost and vertical_cost.
# (0-65535) (default 0)
cost = 0

# Router priority. (0-255) (default 1)
priority = 1

# Retransmit interval in seconds. (1-3600) (default 5)
retransmit_interval = 5

# Transmit delay in seconds. (1-3600) (default 1)
transmit_delay = 1

# Minimum LSA arrival interval in milliseconds. (10-60000) (default 1000)
lsa_min_arrival = 1000

# ECMP path limit. (1-128) (default 1)
maximum_paths = 1

# Throttle SPF on every router except 0,0 so that only LSAs are exchanged.
# (default false)
lsa_only_mode = false

# Cost of east-west interfaces. (1-65535) (default 40)
horizontal_cost = 40

# Cost of north-south interfaces. (1-65535) (default 20)
vertical_cost = 20
`

const isisSample = `
# NET template. The area part is kept, the system ID is derived per router.
# (required)
net_address = "49.0001.0000.0000.0001.00"

# Circuit level. (level-1|level-2|level-1-2) (default level-2)
level_type = "level-2"

# Metric style. (narrow|wide|transition) (default wide)
metric_style = "wide"

# Hello interval in seconds. (1-600) (default 1)
hello_interval = 1

# Hello multiplier. (2-100) (default 5)
hello_multiplier = 5

# LSP generation interval in seconds. (1-120) (default 2)
lsp_gen_interval = 2

# LSP refresh interval in seconds. Must be below max_lsp_lifetime.
# (1-65534) (default 900)
lsp_refresh_interval = 900

# Maximum LSP lifetime in seconds. (350-65535) (default 1200)
max_lsp_lifetime = 1200

# SPF interval in seconds. (1-120) (default 2)
spf_interval = 2

# CSNP interval in seconds. (1-600) (default 10)
csnp_interval = 10

# PSNP interval in seconds. (1-120) (default 2)
psnp_interval = 2

# DIS priority. (0-127) (default 64)
priority = 64

# Metric of every interface. 0 uses horizontal_metric and vertical_metric.
# (0-16777215) (default 0)
isis_metric = 0

# Metric of east-west interfaces. (default 20)
horizontal_metric = 20

# Metric of north-south interfaces. (default 10)
vertical_metric = 10

# Use the three-way handshake on point-to-point circuits. (default true)
three_way_handshake = true
`

const bgpSample = `
# AS number, asplain or asdot. Special topologies number their ASes from
# here. (1-4294967295) (default %d)
as_number = %[1]d

# First two octets of the BGP router IDs. (default 10.R.C.1 per router)
# router_id = "172.16.0.0"

# Exchange IPv6 unicast routes. (default true)
enable_ipv6 = true

# Local preference. (default 100)
local_preference = 100

# Hold time in seconds. (3-65535) (default 180)
hold_time = 180

# Keepalive time in seconds. At most a third of hold_time. (1-21845)
# (default 60)
keepalive_time = 60

# Connect retry time in seconds. (1-65535) (default 120)
connect_retry_time = 120
`

const bfdSample = `
# Generate BFD. (default false)
enabled = false

# Detection multiplier. (1-255) (default 3)
detect_multiplier = 3

# Receive interval in milliseconds. (10-60000) (default 300)
receive_interval = 300

# Transmit interval in milliseconds. (10-60000) (default 300)
transmit_interval = 300

# Use echo mode. (default false)
echo_mode = false

# Echo interval in milliseconds. At most receive_interval. (10-60000)
# (default 50)
echo_interval = 50

# Minimum TTL of received packets. (1-255) (default 254)
min_ttl = 254

# Name of the BFD profile. (default "")
profile_name = ""

# Wait for the peer to start the session. (default false)
passive_mode = false
`
