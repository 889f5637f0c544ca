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

// Package model defines the planned network and assembles it from the
// outputs of the earlier planning stages. A Model is immutable once
// Assemble returns it and may be shared between goroutines.
package model

import (
	"net/netip"
	"slices"

	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/topogen/config"
	"github.com/ipv6lab/topogen/topogen/topology"
)

// Mode tells an emitter how to treat a protocol on a node.
type Mode string

const (
	// Normal generates the full configuration.
	Normal Mode = "normal"
	// Dummy generates a placeholder configuration.
	Dummy Mode = "dummy"
	// None generates nothing.
	None Mode = "none"
)

// Model is a fully planned network.
type Model struct {
	Meta       Meta       `json:"meta"`
	Nodes      []Node     `json:"nodes"`
	Links      []Link     `json:"links"`
	Areas      []Area     `json:"areas"`
	ASes       []AS       `json:"ases,omitempty"`
	Settings   Settings   `json:"settings"`
	Generation Generation `json:"generation"`
	Stats      Stats      `json:"stats"`
}

// Meta describes how the model was produced.
type Meta struct {
	Family    topology.Family `json:"family"`
	Size      int             `json:"size"`
	MultiArea bool            `json:"multi_area"`
	AreaSize  int             `json:"area_size,omitempty"`
	// ConfigDigest is the hex SHA-256 of the JSON encoded configuration.
	ConfigDigest string      `json:"config_digest"`
	SourceNode   *grid.Coord `json:"source_node,omitempty"`
	DestNode     *grid.Coord `json:"dest_node,omitempty"`
}

// Node is a planned router.
type Node struct {
	Coord    grid.Coord        `json:"coord"`
	Name     string            `json:"name"`
	Type     topology.NodeType `json:"type"`
	Gateway  bool              `json:"gateway,omitempty"`
	RouterID addr.DottedQuad   `json:"router_id"`
	Loopback netip.Addr        `json:"loopback"`
	Area     addr.DottedQuad   `json:"area"`
	// AS is zero when BGP is disabled.
	AS         addr.AS     `json:"as,omitempty"`
	Interfaces []Interface `json:"interfaces"`
	Daemons    []Daemon    `json:"daemons"`
	Protocols  Protocols   `json:"protocols"`
}

// Daemon is the resolved generation state of one protocol on one node.
type Daemon struct {
	Protocol config.Protocol `json:"protocol"`
	Mode     Mode            `json:"mode"`
	// Enabled is the daemon switch. A disabled daemon still gets its
	// configuration if Mode asks for one.
	Enabled bool `json:"enabled"`
}

// Interface is one end of a link as seen from its node.
type Interface struct {
	Name        string         `json:"name"`
	Direction   grid.Direction `json:"direction"`
	Peer        grid.Coord     `json:"peer"`
	PeerName    string         `json:"peer_name"`
	Address     netip.Addr     `json:"address"`
	PeerAddress netip.Addr     `json:"peer_address"`
	Subnet      netip.Prefix   `json:"subnet"`
	OSPFCost    int            `json:"ospf_cost"`
	ISISMetric  int            `json:"isis_metric,omitempty"`
	// InterAS interfaces carry eBGP and are excluded from the IGP.
	InterAS bool `json:"inter_as,omitempty"`

	index int
}

// Protocols holds the node specific settings of every protocol in Normal
// mode. The settings of other modes are nil.
type Protocols struct {
	OSPF *OSPFNode `json:"ospf,omitempty"`
	ISIS *ISISNode `json:"isis,omitempty"`
	BGP  *BGPNode  `json:"bgp,omitempty"`
	BFD  *BFDNode  `json:"bfd,omitempty"`
}

type OSPFNode struct {
	RouterID   addr.DottedQuad `json:"router_id"`
	Area       addr.DottedQuad `json:"area"`
	AreaBorder bool            `json:"area_border,omitempty"`
	// SPFThrottle is the "delay initial-hold max-hold" timer triple, set in
	// LSA-only mode.
	SPFThrottle string `json:"spf_throttle,omitempty"`
}

type ISISNode struct {
	NET      string `json:"net"`
	SystemID string `json:"system_id"`
}

type BGPNode struct {
	AS       addr.AS         `json:"as"`
	RouterID addr.DottedQuad `json:"router_id"`
	// Network is the loopback host route announced by the node.
	Network netip.Prefix `json:"network"`
	EBGP    []BGPPeer    `json:"ebgp,omitempty"`
	IBGP    []BGPPeer    `json:"ibgp,omitempty"`
}

type BGPPeer struct {
	Node     grid.Coord `json:"node"`
	Address  netip.Addr `json:"address"`
	RemoteAS addr.AS    `json:"remote_as"`
	// Interface is the local interface of an eBGP session.
	Interface string `json:"interface,omitempty"`
}

type BFDNode struct {
	Peers []netip.Addr `json:"peers"`
}

// Link is a planned point-to-point link.
type Link struct {
	Edge       grid.Edge         `json:"edge"`
	Kind       topology.LinkKind `json:"kind"`
	Axis       grid.Axis         `json:"axis"`
	Subnet     netip.Prefix      `json:"subnet"`
	AddrA      netip.Addr        `json:"addr_a"`
	AddrB      netip.Addr        `json:"addr_b"`
	IfaceA     string            `json:"iface_a"`
	IfaceB     string            `json:"iface_b"`
	OSPFCost   int               `json:"ospf_cost"`
	ISISMetric int               `json:"isis_metric,omitempty"`
	InterArea  bool              `json:"inter_area,omitempty"`
	InterAS    bool              `json:"inter_as,omitempty"`
}

// Area is an OSPF area.
type Area struct {
	ID      addr.DottedQuad `json:"id"`
	Members []grid.Coord    `json:"members"`
	Borders []grid.Coord    `json:"borders,omitempty"`
}

// AS is an autonomous system.
type AS struct {
	Number   addr.AS      `json:"number"`
	Class    string       `json:"class"`
	Members  []grid.Coord `json:"members"`
	Gateways []grid.Coord `json:"gateways,omitempty"`
}

// Settings are the protocol settings shared by every node.
type Settings struct {
	OSPF *config.OSPF `json:"ospf,omitempty"`
	ISIS *ISIS        `json:"isis,omitempty"`
	BGP  *config.BGP  `json:"bgp,omitempty"`
	BFD  *BFD         `json:"bfd,omitempty"`
}

// ISIS adds derived timers to the IS-IS settings.
type ISIS struct {
	config.ISIS
	DeadInterval int `json:"dead_interval"`
}

// BFD adds derived timers to the BFD settings.
type BFD struct {
	config.BFD
	DetectionTime int `json:"detection_time_ms"`
}

// Generation carries the emitter switches.
type Generation struct {
	NoLinks        bool `json:"no_links"`
	Podman         bool `json:"podman"`
	DisableLogging bool `json:"disable_logging"`
}

// Stats summarizes the model.
type Stats struct {
	topology.Stats
	LinksByKind map[topology.LinkKind]int `json:"links_by_kind"`
	Areas       int                       `json:"areas"`
	ASes        int                       `json:"ases"`
	BorderNodes int                       `json:"border_nodes"`
}

// Node returns the node at c. Nodes are in row-major order, but a special
// topology need not contain every coordinate of the plane.
func (m *Model) Node(c grid.Coord) (*Node, bool) {
	i, ok := slices.BinarySearchFunc(m.Nodes, c, func(n Node, c grid.Coord) int {
		return grid.Compare(n.Coord, c)
	})
	if !ok {
		return nil, false
	}
	return &m.Nodes[i], true
}

// Daemon returns the state of protocol p.
func (n *Node) Daemon(p config.Protocol) Daemon {
	for _, d := range n.Daemons {
		if d.Protocol == p {
			return d
		}
	}
	return Daemon{Protocol: p, Mode: None}
}
