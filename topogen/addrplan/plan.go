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

// Package addrplan allocates IPv6 loopback addresses and point-to-point link
// subnets deterministically.
//
// Loopback i, counted in node order, is host i+1 of the loopback prefix; host
// 0 is the subnet-router anycast address and is never handed out. Link j,
// counted in canonical edge order, is subnet j of the configured width carved
// from the link prefix. A /127 assigns both of its addresses (RFC 6164), wider
// subnets assign their first and second usable address.
//
// A Plan checks all capacities before it allocates anything, so a failed
// Assign leaves no partial result behind.
package addrplan

import (
	"fmt"
	"math/big"
	"net"
	"net/netip"

	"github.com/apparentlymart/go-cidr/cidr"
	"go4.org/netipx"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen/config"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/topology"
)

const (
	MinSubnetMask = 64
	MaxSubnetMask = 128
	// RFC6164Mask is the point-to-point subnet width that uses both of its
	// addresses.
	RFC6164Mask = 127
)

// Plan holds the allocation state of one planning run. The indices only grow,
// so an address is never handed out twice.
type Plan struct {
	loopback   netip.Prefix
	link       netip.Prefix
	subnetMask int

	nextLoopback int
	nextLink     int
	used         map[netip.Addr]struct{}
}

// LinkAddrs are the addresses of one link. A belongs to the canonical first
// endpoint of the edge, B to the second.
type LinkAddrs struct {
	Subnet netip.Prefix
	A      netip.Addr
	B      netip.Addr
}

// Assignment is the result of Assign.
type Assignment struct {
	loopbacks map[grid.Coord]netip.Addr
	links     map[grid.Edge]LinkAddrs
}

// Loopback returns the loopback address of c.
func (a *Assignment) Loopback(c grid.Coord) (netip.Addr, bool) {
	l, ok := a.loopbacks[c]
	return l, ok
}

// Link returns the addresses of e.
func (a *Assignment) Link(e grid.Edge) (LinkAddrs, bool) {
	l, ok := a.links[e]
	return l, ok
}

// Addr returns the address of endpoint c on e.
func (l LinkAddrs) Addr(e grid.Edge, c grid.Coord) netip.Addr {
	if c == e.A {
		return l.A
	}
	return l.B
}

// New validates the address pools and returns an empty plan. Both pools must
// lie inside the enclosing prefix and must not overlap.
func New(network config.Network) (*Plan, error) {
	if network.SubnetMask < MinSubnetMask || network.SubnetMask > MaxSubnetMask {
		return nil, errs.Range("network.subnet_mask", network.SubnetMask,
			MinSubnetMask, MaxSubnetMask)
	}
	outer := network.IPv6Prefix.Prefix
	loopback := network.LoopbackPrefix.Prefix
	link := network.LinkPrefix.Prefix
	for _, p := range []struct {
		field string
		p     netip.Prefix
	}{
		{"network.ipv6_prefix", outer},
		{"network.loopback_prefix", loopback},
		{"network.link_prefix", link},
	} {
		if !p.p.IsValid() || !p.p.Addr().Is6() {
			return nil, serrors.JoinNoStack(errs.ErrRange, nil,
				"field", p.field, "value", p.p)
		}
	}
	if network.SubnetMask < link.Bits() {
		return nil, serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "network.subnet_mask", "value", network.SubnetMask,
			"link_prefix", link)
	}

	var b netipx.IPSetBuilder
	b.AddPrefix(outer)
	outerSet, err := b.IPSet()
	if err != nil {
		return nil, serrors.Wrap("building prefix set", err)
	}
	for _, p := range []struct {
		field string
		p     netip.Prefix
	}{
		{"network.loopback_prefix", loopback},
		{"network.link_prefix", link},
	} {
		if !outerSet.ContainsPrefix(p.p) {
			return nil, serrors.JoinNoStack(errs.ErrContradiction, nil,
				"field", p.field, "value", p.p, "ipv6_prefix", outer,
				"reason", "pool outside the enclosing prefix")
		}
	}
	if loopback.Overlaps(link) {
		return nil, serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "network.link_prefix", "value", link, "loopback_prefix", loopback,
			"reason", "pools overlap")
	}
	return &Plan{
		loopback:   loopback,
		link:       link,
		subnetMask: network.SubnetMask,
		used:       make(map[netip.Addr]struct{}),
	}, nil
}

// LoopbackCapacity returns the number of loopbacks the plan can still hand
// out.
func (p *Plan) LoopbackCapacity() *big.Int {
	c := hostCount(p.loopback.Bits())
	c.Sub(c, big.NewInt(1))
	return c.Sub(c, big.NewInt(int64(p.nextLoopback)))
}

// LinkCapacity returns the number of link subnets the plan can still hand
// out.
func (p *Plan) LinkCapacity() *big.Int {
	c := new(big.Int).Lsh(big.NewInt(1), uint(p.subnetMask-p.link.Bits()))
	return c.Sub(c, big.NewInt(int64(p.nextLink)))
}

// Assign allocates a loopback to every node of g in the given order and a
// subnet to every edge of g in canonical order. order must list every node of
// g exactly once.
func (p *Plan) Assign(g *topology.Graph, order []grid.Coord) (*Assignment, error) {
	if err := checkOrder(g, order); err != nil {
		return nil, err
	}
	edges := g.Edges()
	if len(edges) > 0 && p.subnetMask == MaxSubnetMask {
		return nil, serrors.JoinNoStack(errs.ErrContradiction, nil,
			"field", "network.subnet_mask", "value", p.subnetMask,
			"links", len(edges),
			"reason", "a /128 cannot address both link endpoints")
	}
	if c := p.LoopbackCapacity(); c.Cmp(big.NewInt(int64(len(order)))) < 0 {
		return nil, serrors.JoinNoStack(errs.ErrExhausted, nil,
			"field", "network.loopback_prefix", "prefix", p.loopback,
			"needed", len(order), "available", c)
	}
	if c := p.LinkCapacity(); c.Cmp(big.NewInt(int64(len(edges)))) < 0 {
		return nil, serrors.JoinNoStack(errs.ErrExhausted, nil,
			"field", "network.link_prefix", "prefix", p.link,
			"subnet_mask", p.subnetMask, "needed", len(edges), "available", c)
	}

	a := &Assignment{
		loopbacks: make(map[grid.Coord]netip.Addr, len(order)),
		links:     make(map[grid.Edge]LinkAddrs, len(edges)),
	}
	loopbackNet := netipx.PrefixIPNet(p.loopback)
	for _, c := range order {
		ip, err := cidr.HostBig(loopbackNet, big.NewInt(int64(p.nextLoopback+1)))
		if err != nil {
			return nil, serrors.Wrap("computing loopback", err, "coord", c)
		}
		addr, err := p.claim(ip)
		if err != nil {
			return nil, serrors.Wrap("allocating loopback", err, "coord", c)
		}
		p.nextLoopback++
		a.loopbacks[c] = addr
	}

	linkNet := netipx.PrefixIPNet(p.link)
	newBits := p.subnetMask - p.link.Bits()
	first, second := int64(1), int64(2)
	if p.subnetMask == RFC6164Mask {
		first, second = 0, 1
	}
	for _, e := range edges {
		subnet, err := cidr.SubnetBig(linkNet, newBits, big.NewInt(int64(p.nextLink)))
		if err != nil {
			return nil, serrors.Wrap("computing link subnet", err, "edge", e)
		}
		la := LinkAddrs{}
		var ok bool
		if la.Subnet, ok = netipx.FromStdIPNet(subnet); !ok {
			return nil, serrors.New("invalid link subnet", "edge", e, "subnet", subnet)
		}
		for i, host := range []int64{first, second} {
			ip, err := cidr.HostBig(subnet, big.NewInt(host))
			if err != nil {
				return nil, serrors.Wrap("computing link address", err, "edge", e)
			}
			addr, err := p.claim(ip)
			if err != nil {
				return nil, serrors.Wrap("allocating link address", err, "edge", e)
			}
			if i == 0 {
				la.A = addr
			} else {
				la.B = addr
			}
		}
		p.nextLink++
		a.links[e] = la
	}
	return a, nil
}

// claim records ip as used. A second claim of the same address fails.
func (p *Plan) claim(ip net.IP) (netip.Addr, error) {
	addr, ok := netipx.FromStdIP(ip)
	if !ok {
		return netip.Addr{}, serrors.New("invalid address", "ip", ip)
	}
	if _, ok := p.used[addr]; ok {
		return netip.Addr{}, serrors.JoinNoStack(errs.ErrContradiction, nil,
			"reason", "address allocated twice", "addr", addr)
	}
	p.used[addr] = struct{}{}
	return addr, nil
}

func checkOrder(g *topology.Graph, order []grid.Coord) error {
	if len(order) != len(g.Nodes()) {
		return serrors.JoinNoStack(errs.ErrContradiction, nil,
			"reason", "node order does not cover the graph",
			"nodes", len(g.Nodes()), "ordered", len(order))
	}
	seen := make(map[grid.Coord]struct{}, len(order))
	for _, c := range order {
		if !g.HasNode(c) {
			return serrors.JoinNoStack(errs.ErrReference, nil,
				"reason", "ordered node not in graph", "coord", c)
		}
		if _, ok := seen[c]; ok {
			return serrors.JoinNoStack(errs.ErrContradiction, nil,
				"reason", "node ordered twice", "coord", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func hostCount(bits int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(128-bits))
}

// String describes the remaining capacity of the plan.
func (p *Plan) String() string {
	return fmt.Sprintf("loopbacks %s free in %s, links %s free in %s/%d",
		p.LoopbackCapacity(), p.loopback, p.LinkCapacity(), p.link, p.subnetMask)
}
