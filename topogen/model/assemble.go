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

package model

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"slices"

	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	pconfig "github.com/ipv6lab/topogen/private/config"
	"github.com/ipv6lab/topogen/topogen/addrplan"
	"github.com/ipv6lab/topogen/topogen/config"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/partition"
	"github.com/ipv6lab/topogen/topogen/special"
	"github.com/ipv6lab/topogen/topogen/topology"
)

const (
	// FirstExtraInterface is the first interface index beyond the four
	// compass interfaces.
	FirstExtraInterface = 5
	// LSAOnlySPFThrottle keeps SPF from running in LSA-only mode.
	LSAOnlySPFThrottle = "600000 600000 600000"
)

// Input bundles the outputs of the planning stages.
type Input struct {
	Config *config.Config
	Graph  *topology.Graph
	// Special is set for special topologies.
	Special *special.Result
	Areas   *partition.Areas
	// ASes is set when BGP is enabled.
	ASes      *partition.ASMap
	Addresses *addrplan.Assignment
}

// Assemble builds the model. It revalidates the configuration and the
// partitions, so that nothing is returned for contradicting input.
func Assemble(in Input) (*Model, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	cfg, g := in.Config, in.Graph

	digest, err := pconfig.Digest(cfg)
	if err != nil {
		return nil, serrors.Wrap("computing config digest", err)
	}
	m := &Model{
		Meta: Meta{
			Family:       g.Family(),
			Size:         g.Size(),
			MultiArea:    cfg.Topology.MultiArea,
			AreaSize:     cfg.Topology.AreaSize,
			ConfigDigest: hex.EncodeToString(digest),
		},
		Settings: in.settings(),
		Generation: Generation{
			NoLinks:        cfg.Generation.NoLinks,
			Podman:         cfg.Generation.Podman,
			DisableLogging: cfg.Generation.DisableLogging,
		},
	}
	if in.Special != nil {
		src, dst := in.Special.Source, in.Special.Dest
		m.Meta.SourceNode, m.Meta.DestNode = &src, &dst
	}

	ifaces := assignInterfaces(g, in.edgeKind)
	if m.Links, err = in.links(ifaces); err != nil {
		return nil, err
	}
	if m.Nodes, err = in.nodes(m.Links); err != nil {
		return nil, err
	}
	m.Areas = in.areas()
	m.ASes = in.ases()
	m.Stats = in.stats(m)
	return m, nil
}

func (in *Input) check() error {
	switch {
	case in.Config == nil:
		return serrors.New("missing configuration")
	case in.Graph == nil:
		return serrors.New("missing graph")
	case in.Areas == nil:
		return serrors.New("missing area assignment")
	case in.Addresses == nil:
		return serrors.New("missing address assignment")
	}
	if err := in.Config.Validate(); err != nil {
		return err
	}
	if in.Config.BGP != nil && in.ASes == nil {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "bgp", "reason", "BGP enabled without AS assignment")
	}
	if in.Graph.Family() == topology.Special && in.Special == nil {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "special", "reason", "special graph without merge result")
	}
	nodes := in.Graph.Nodes()
	if err := partition.Check(nodes, &in.Areas.Assignment); err != nil {
		return serrors.Wrap("checking areas", err)
	}
	if in.ASes != nil {
		if err := partition.Check(nodes, &in.ASes.Assignment); err != nil {
			return serrors.Wrap("checking ASes", err)
		}
	}
	return nil
}

func (in *Input) edgeKind(e grid.Edge) topology.LinkKind {
	if in.Special == nil {
		return topology.BaseLink
	}
	return in.Special.EdgeKind(e)
}

func (in *Input) interAS(e grid.Edge) bool {
	return in.ASes != nil && in.ASes.InterAS(e)
}

func (in *Input) links(ifaces interfaceMap) ([]Link, error) {
	g := in.Graph
	links := make([]Link, 0, len(g.Edges()))
	for _, e := range g.Edges() {
		la, ok := in.Addresses.Link(e)
		if !ok {
			return nil, serrors.JoinNoStack(errs.ErrReference, nil,
				"reason", "link without addresses", "edge", e)
		}
		axis := g.Direction(e.A, e.B).Axis()
		links = append(links, Link{
			Edge:       e,
			Kind:       in.edgeKind(e),
			Axis:       axis,
			Subnet:     la.Subnet,
			AddrA:      la.A,
			AddrB:      la.B,
			IfaceA:     ifaces.name(e, e.A),
			IfaceB:     ifaces.name(e, e.B),
			OSPFCost:   ospfCost(&in.Config.OSPF, axis),
			ISISMetric: isisMetric(in.Config.ISIS, axis),
			InterArea:  in.Areas.InterArea(e),
			InterAS:    in.interAS(e),
		})
	}
	return links, nil
}

func (in *Input) nodes(links []Link) ([]Node, error) {
	g, cfg := in.Graph, in.Config
	byNode := make(map[grid.Coord][]Interface, len(g.Nodes()))
	for _, l := range links {
		for _, side := range []struct {
			self, peer     grid.Coord
			addr, peerAddr netip.Addr
			iface          string
		}{
			{l.Edge.A, l.Edge.B, l.AddrA, l.AddrB, l.IfaceA},
			{l.Edge.B, l.Edge.A, l.AddrB, l.AddrA, l.IfaceB},
		} {
			byNode[side.self] = append(byNode[side.self], Interface{
				Name:        side.iface,
				Direction:   g.Direction(side.self, side.peer),
				Peer:        side.peer,
				PeerName:    topology.RouterName(side.peer),
				Address:     side.addr,
				PeerAddress: side.peerAddr,
				Subnet:      l.Subnet,
				OSPFCost:    l.OSPFCost,
				ISISMetric:  l.ISISMetric,
				InterAS:     l.InterAS,
				index:       interfaceIndex(side.iface),
			})
		}
	}

	nodes := make([]Node, 0, len(g.Nodes()))
	for _, c := range g.Nodes() {
		lo, ok := in.Addresses.Loopback(c)
		if !ok {
			return nil, serrors.JoinNoStack(errs.ErrReference, nil,
				"reason", "node without loopback", "coord", c)
		}
		area, _ := in.Areas.Of(c)
		n := Node{
			Coord:      c,
			Name:       topology.RouterName(c),
			Type:       in.nodeType(c),
			Gateway:    in.Special != nil && in.Special.IsGateway(c),
			RouterID:   topology.RouterID(c),
			Loopback:   lo,
			Area:       area,
			Interfaces: byNode[c],
		}
		if in.ASes != nil {
			n.AS, _ = in.ASes.Of(c)
		}
		slices.SortFunc(n.Interfaces, func(a, b Interface) int {
			return a.index - b.index
		})
		if n.Interfaces == nil {
			n.Interfaces = []Interface{}
		}
		for _, p := range config.Protocols {
			mode := ResolveMode(p, in.protocolEnabled(p, &n), &cfg.Generation)
			n.Daemons = append(n.Daemons, Daemon{
				Protocol: p,
				Mode:     mode,
				Enabled:  in.protocolEnabled(p, &n) && !cfg.Generation.DaemonOff(p),
			})
		}
		in.protocols(&n)
		nodes = append(nodes, n)
	}
	// iBGP peers need every loopback, so they are filled in afterwards.
	in.bgpPeers(nodes)
	return nodes, nil
}

func (in *Input) nodeType(c grid.Coord) topology.NodeType {
	if in.Special != nil {
		return in.Special.Role(c)
	}
	return in.Graph.NodeType(c)
}

// protocolEnabled reports whether p runs on n at all. In special topologies
// only gateways speak BGP.
func (in *Input) protocolEnabled(p config.Protocol, n *Node) bool {
	cfg := in.Config
	switch p {
	case config.OSPF6d:
		return cfg.OSPF.Enabled
	case config.ISISd:
		return cfg.ISIS != nil
	case config.BGPd:
		return cfg.BGP != nil && (in.Special == nil || n.Gateway)
	case config.BFDd:
		return cfg.BFD.Enabled
	}
	return false
}

// ResolveMode resolves the generation mode of a protocol. A protocol that is
// disabled or listed as no-config gets nothing, one listed as dummy gets a
// placeholder, and every other protocol is generated normally.
func ResolveMode(p config.Protocol, enabled bool, gen *config.Generation) Mode {
	switch {
	case !enabled, gen.NoConfig(p):
		return None
	case gen.Dummy(p):
		return Dummy
	}
	return Normal
}

func (in *Input) protocols(n *Node) {
	cfg := in.Config
	if n.Daemon(config.OSPF6d).Mode == Normal {
		o := &OSPFNode{
			RouterID:   n.RouterID,
			Area:       n.Area,
			AreaBorder: in.Areas.IsBorder(n.Coord),
		}
		if cfg.OSPF.LSAOnlyMode && n.Coord != grid.C(0, 0) {
			o.SPFThrottle = LSAOnlySPFThrottle
		}
		n.Protocols.OSPF = o
	}
	if n.Daemon(config.ISISd).Mode == Normal {
		sysID := SystemID(n.Coord)
		n.Protocols.ISIS = &ISISNode{
			NET:      cfg.ISIS.AreaPart() + "." + sysID + ".00",
			SystemID: sysID,
		}
	}
	if n.Daemon(config.BGPd).Mode == Normal {
		n.Protocols.BGP = &BGPNode{
			AS:       n.AS,
			RouterID: bgpRouterID(cfg.BGP, n.Coord),
			Network:  netip.PrefixFrom(n.Loopback, n.Loopback.BitLen()),
		}
	}
	if n.Daemon(config.BFDd).Mode == Normal {
		peers := make([]netip.Addr, 0, len(n.Interfaces))
		for _, ifc := range n.Interfaces {
			peers = append(peers, ifc.PeerAddress)
		}
		n.Protocols.BFD = &BFDNode{Peers: peers}
	}
}

// bgpPeers fills in the sessions of every BGP speaker. eBGP sessions run
// over inter-AS links to the peer's link address. iBGP sessions run between
// loopbacks: between all routers of a regular topology, and between the
// gateways of one AS in a special topology.
func (in *Input) bgpPeers(nodes []Node) {
	if in.ASes == nil {
		return
	}
	index := make(map[grid.Coord]int, len(nodes))
	for i, n := range nodes {
		index[n.Coord] = i
	}
	for i := range nodes {
		n := &nodes[i]
		b := n.Protocols.BGP
		if b == nil {
			continue
		}
		for _, ifc := range n.Interfaces {
			if !ifc.InterAS {
				continue
			}
			peer := &nodes[index[ifc.Peer]]
			b.EBGP = append(b.EBGP, BGPPeer{
				Node:      peer.Coord,
				Address:   ifc.PeerAddress,
				RemoteAS:  peer.AS,
				Interface: ifc.Name,
			})
		}
		for _, member := range in.ASes.Members(n.AS) {
			if member == n.Coord {
				continue
			}
			peer := &nodes[index[member]]
			if in.Special != nil && !peer.Gateway {
				continue
			}
			b.IBGP = append(b.IBGP, BGPPeer{
				Node:     peer.Coord,
				Address:  peer.Loopback,
				RemoteAS: peer.AS,
			})
		}
	}
}

// SystemID returns the IS-IS system ID of the router at c: row*100+col+1,
// zero-padded to twelve digits and split into three groups, so the last
// router of a 100×100 plane gets 0000.0001.0000.
func SystemID(c grid.Coord) string {
	id := fmt.Sprintf("%012d", c.Row*100+c.Col+1)
	return id[:4] + "." + id[4:8] + "." + id[8:]
}

func bgpRouterID(b *config.BGP, c grid.Coord) addr.DottedQuad {
	if b == nil || b.RouterID == nil {
		return topology.RouterID(c)
	}
	o := b.RouterID.Octets()
	return addr.DottedQuadFrom(o[0], o[1], byte(c.Row), byte(c.Col))
}

func ospfCost(o *config.OSPF, axis grid.Axis) int {
	switch {
	case o.Cost > 0:
		return o.Cost
	case axis == grid.Vertical:
		return o.VerticalCost
	}
	return o.HorizontalCost
}

func isisMetric(i *config.ISIS, axis grid.Axis) int {
	switch {
	case i == nil:
		return 0
	case i.ISISMetric > 0:
		return i.ISISMetric
	case axis == grid.Vertical:
		return i.VerticalMetric
	}
	return i.HorizontalMetric
}

func (in *Input) settings() Settings {
	cfg := in.Config
	var s Settings
	if cfg.OSPF.Enabled {
		o := cfg.OSPF
		s.OSPF = &o
	}
	if cfg.ISIS != nil {
		s.ISIS = &ISIS{ISIS: *cfg.ISIS, DeadInterval: cfg.ISIS.DeadInterval()}
	}
	if cfg.BGP != nil {
		b := *cfg.BGP
		s.BGP = &b
	}
	if cfg.BFD.Enabled {
		s.BFD = &BFD{BFD: cfg.BFD, DetectionTime: cfg.BFD.DetectionTime()}
	}
	return s
}

func (in *Input) areas() []Area {
	ids := in.Areas.IDs()
	areas := make([]Area, 0, len(ids))
	for _, id := range ids {
		a := Area{ID: id, Members: in.Areas.Members(id)}
		for _, c := range a.Members {
			if in.Areas.IsBorder(c) {
				a.Borders = append(a.Borders, c)
			}
		}
		areas = append(areas, a)
	}
	return areas
}

func (in *Input) ases() []AS {
	if in.ASes == nil {
		return nil
	}
	ids := in.ASes.IDs()
	ases := make([]AS, 0, len(ids))
	for _, id := range ids {
		as := AS{Number: id, Class: id.Class(), Members: in.ASes.Members(id)}
		if in.Special != nil {
			for _, c := range as.Members {
				if in.Special.IsGateway(c) {
					as.Gateways = append(as.Gateways, c)
				}
			}
		}
		ases = append(ases, as)
	}
	return ases
}

func (in *Input) stats(m *Model) Stats {
	s := Stats{
		Stats:       in.Graph.Stats(),
		LinksByKind: make(map[topology.LinkKind]int),
		Areas:       len(m.Areas),
		ASes:        len(m.ASes),
		BorderNodes: len(in.Areas.Borders()),
	}
	for _, l := range m.Links {
		s.LinksByKind[l.Kind]++
	}
	if in.Special != nil {
		s.ByType = make(map[topology.NodeType]int)
		for _, n := range m.Nodes {
			s.ByType[n.Type]++
		}
	}
	return s
}
