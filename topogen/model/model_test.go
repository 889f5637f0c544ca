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

package model_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/log"
	"github.com/ipv6lab/topogen/pkg/log/testlog"
	"github.com/ipv6lab/topogen/topogen"
	"github.com/ipv6lab/topogen/topogen/addrplan"
	"github.com/ipv6lab/topogen/topogen/config"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/model"
	"github.com/ipv6lab/topogen/topogen/partition"
	"github.com/ipv6lab/topogen/topogen/special"
	"github.com/ipv6lab/topogen/topogen/topology"
)

const isisTable = `
[isis]
net_address = "49.0001.0000.0000.0001.00"
`

func plan(t *testing.T, raw string) *model.Model {
	t.Helper()
	cfg, err := config.Load([]byte(raw))
	require.NoError(t, err)
	ctx := log.CtxWith(context.Background(), testlog.NewLogger(t))
	m, err := topogen.Plan(ctx, cfg)
	require.NoError(t, err)
	return m
}

func node(t *testing.T, m *model.Model, c grid.Coord) *model.Node {
	t.Helper()
	n, ok := m.Node(c)
	require.True(t, ok, "node %s", c)
	return n
}

func ifaceNames(n *model.Node) []string {
	var names []string
	for _, ifc := range n.Interfaces {
		names = append(names, ifc.Name)
	}
	return names
}

func TestResolveMode(t *testing.T) {
	gen := &config.Generation{
		DummyGenProtocols: []config.Protocol{config.ISISd, config.BGPd},
		NoConfigProtocols: []config.Protocol{config.BGPd},
	}
	testCases := map[string]struct {
		protocol config.Protocol
		enabled  bool
		expected model.Mode
	}{
		"plain":             {protocol: config.OSPF6d, enabled: true, expected: model.Normal},
		"dummy":             {protocol: config.ISISd, enabled: true, expected: model.Dummy},
		"no config wins":    {protocol: config.BGPd, enabled: true, expected: model.None},
		"disabled":          {protocol: config.OSPF6d, enabled: false, expected: model.None},
		"disabled is none":  {protocol: config.ISISd, enabled: false, expected: model.None},
		"bfd not in a list": {protocol: config.BFDd, enabled: true, expected: model.Normal},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, model.ResolveMode(tc.protocol, tc.enabled, gen))
		})
	}
}

func TestDaemons(t *testing.T) {
	m := plan(t, `
[topology]
size = 2
`+isisTable+`
[bgp]

[bfd]
enabled = true

[generation]
dummy_gen_protocols = ["isisd", "bgpd"]
no_config_protocols = ["bgpd"]
bfdd_off = true
`)
	for _, n := range m.Nodes {
		assert.Equal(t, []model.Daemon{
			{Protocol: config.OSPF6d, Mode: model.Normal, Enabled: true},
			{Protocol: config.ISISd, Mode: model.Dummy, Enabled: true},
			{Protocol: config.BGPd, Mode: model.None, Enabled: true},
			{Protocol: config.BFDd, Mode: model.Normal, Enabled: false},
		}, n.Daemons, "node %s", n.Coord)
		assert.NotNil(t, n.Protocols.OSPF)
		assert.Nil(t, n.Protocols.ISIS)
		assert.Nil(t, n.Protocols.BGP)
		require.NotNil(t, n.Protocols.BFD)
		assert.Len(t, n.Protocols.BFD.Peers, len(n.Interfaces))
	}
	require.NotNil(t, m.Settings.BFD)
	assert.Equal(t, 900, m.Settings.BFD.DetectionTime)
	require.NotNil(t, m.Settings.ISIS)
	assert.Equal(t, 5, m.Settings.ISIS.DeadInterval)
}

func TestDaemonsOff(t *testing.T) {
	m := plan(t, "[generation]\ndaemons_off = true\n")
	for _, n := range m.Nodes {
		d := n.Daemon(config.OSPF6d)
		assert.False(t, d.Enabled)
		assert.Equal(t, model.Normal, d.Mode)
		assert.Equal(t, model.None, n.Daemon(config.ISISd).Mode)
		assert.Equal(t, model.None, n.Daemon(config.BFDd).Mode)
		assert.NotNil(t, n.Protocols.OSPF)
	}
	assert.Nil(t, m.Settings.ISIS)
	assert.Nil(t, m.Settings.BGP)
	assert.Nil(t, m.Settings.BFD)
}

func TestInterfaces(t *testing.T) {
	m := plan(t, "[topology]\nsize = 3\n")
	center := node(t, m, grid.C(1, 1))
	assert.Equal(t, []string{"eth1", "eth2", "eth3", "eth4"}, ifaceNames(center))
	for _, ifc := range center.Interfaces {
		assert.Equal(t, ifc.Name, ifc.Direction.Interface())
		assert.Equal(t, topology.RouterName(ifc.Peer), ifc.PeerName)
		assert.True(t, ifc.Subnet.Contains(ifc.Address))
		assert.True(t, ifc.Subnet.Contains(ifc.PeerAddress))
	}
	corner := node(t, m, grid.C(0, 0))
	assert.Equal(t, []string{"eth2", "eth4"}, ifaceNames(corner))
	assert.Equal(t, "router_00_00", corner.Name)
	assert.Equal(t, "10.0.0.1", corner.RouterID.String())

	// Both ends of a link agree on subnet and addresses.
	for _, l := range m.Links {
		a, b := node(t, m, l.Edge.A), node(t, m, l.Edge.B)
		var found int
		for _, ifc := range a.Interfaces {
			if ifc.Name == l.IfaceA {
				assert.Equal(t, l.AddrA, ifc.Address)
				assert.Equal(t, l.AddrB, ifc.PeerAddress)
				found++
			}
		}
		for _, ifc := range b.Interfaces {
			if ifc.Name == l.IfaceB {
				assert.Equal(t, l.AddrB, ifc.Address)
				found++
			}
		}
		assert.Equal(t, 2, found, "link %s", l.Edge)
	}
}

func TestInterfacesExtra(t *testing.T) {
	m := plan(t, `
[topology]
size = 3
type = "special"

[bgp]

[special]
source_node = "0,0"
dest_node = "2,2"
internal_bridge_edges = [["0,0", "1,1"], ["1,1", "2,2"], ["0,0", "2,0"]]
`)
	assert.Equal(t, []string{"eth1", "eth2", "eth4", "eth5"},
		ifaceNames(node(t, m, grid.C(0, 0))))
	assert.Equal(t, []string{"eth1", "eth2", "eth3", "eth4", "eth5", "eth6"},
		ifaceNames(node(t, m, grid.C(1, 1))))
	assert.Equal(t, []string{"eth1", "eth2", "eth4"},
		ifaceNames(node(t, m, grid.C(2, 0))))
	assert.Equal(t, []string{"eth1", "eth3", "eth5"},
		ifaceNames(node(t, m, grid.C(2, 2))))
	assert.Equal(t, 3, m.Stats.LinksByKind[topology.InternalBridge])
	assert.Equal(t, topology.Source, node(t, m, grid.C(0, 0)).Type)
	assert.Equal(t, topology.Destination, node(t, m, grid.C(2, 2)).Type)
	require.Len(t, m.ASes, 1)
	assert.Empty(t, m.ASes[0].Gateways)
}

func TestLinkCosts(t *testing.T) {
	vertical := grid.MustEdge(grid.C(0, 0), grid.C(1, 0))
	horizontal := grid.MustEdge(grid.C(0, 0), grid.C(0, 1))
	costs := func(m *model.Model) map[grid.Edge][2]int {
		out := make(map[grid.Edge][2]int)
		for _, l := range m.Links {
			out[l.Edge] = [2]int{l.OSPFCost, l.ISISMetric}
		}
		return out
	}
	testCases := map[string]struct {
		raw        string
		vertical   [2]int
		horizontal [2]int
	}{
		"directional": {
			raw:        "[topology]\nsize = 2\n" + isisTable,
			vertical:   [2]int{20, 10},
			horizontal: [2]int{40, 20},
		},
		"overrides": {
			raw: "[topology]\nsize = 2\n[ospf]\ncost = 7\n" + isisTable +
				"isis_metric = 5\n",
			vertical:   [2]int{7, 5},
			horizontal: [2]int{7, 5},
		},
		"custom axes": {
			raw:        "[topology]\nsize = 2\n[ospf]\nhorizontal_cost = 3\nvertical_cost = 4\n",
			vertical:   [2]int{4, 0},
			horizontal: [2]int{3, 0},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c := costs(plan(t, tc.raw))
			assert.Equal(t, tc.vertical, c[vertical])
			assert.Equal(t, tc.horizontal, c[horizontal])
		})
	}
}

func TestISIS(t *testing.T) {
	m := plan(t, "[topology]\nsize = 3\n"+isisTable)
	testCases := map[grid.Coord]string{
		grid.C(0, 0): "49.0001.0000.0000.0001.00",
		grid.C(1, 2): "49.0001.0000.0000.0103.00",
		grid.C(2, 2): "49.0001.0000.0000.0203.00",
	}
	for c, net := range testCases {
		n := node(t, m, c)
		require.NotNil(t, n.Protocols.ISIS)
		assert.Equal(t, net, n.Protocols.ISIS.NET)
		assert.Equal(t, model.SystemID(c), n.Protocols.ISIS.SystemID)
	}
}

func TestSystemID(t *testing.T) {
	testCases := map[grid.Coord]string{
		grid.C(0, 0):   "0000.0000.0001",
		grid.C(1, 2):   "0000.0000.0103",
		grid.C(99, 98): "0000.0000.9999",
		grid.C(99, 99): "0000.0001.0000",
	}
	for c, want := range testCases {
		t.Run(c.String(), func(t *testing.T) {
			assert.Equal(t, want, model.SystemID(c))
		})
	}
}

func TestLSAOnlyMode(t *testing.T) {
	m := plan(t, "[topology]\nsize = 2\n[ospf]\nlsa_only_mode = true\n")
	for _, n := range m.Nodes {
		require.NotNil(t, n.Protocols.OSPF)
		expected := model.LSAOnlySPFThrottle
		if n.Coord == grid.C(0, 0) {
			expected = ""
		}
		assert.Equal(t, expected, n.Protocols.OSPF.SPFThrottle, "node %s", n.Coord)
		assert.Equal(t, addr.Backbone, n.Protocols.OSPF.Area)
		assert.False(t, n.Protocols.OSPF.AreaBorder)
	}
}

func TestAreaBorders(t *testing.T) {
	m := plan(t, "[topology]\nsize = 4\nmulti_area = true\narea_size = 2\n")
	require.Len(t, m.Areas, 4)
	inner := node(t, m, grid.C(1, 1))
	require.NotNil(t, inner.Protocols.OSPF)
	assert.True(t, inner.Protocols.OSPF.AreaBorder)
	outer := node(t, m, grid.C(0, 0))
	assert.False(t, outer.Protocols.OSPF.AreaBorder)
	assert.Equal(t, 12, m.Stats.BorderNodes)
}

func TestBGPRegular(t *testing.T) {
	m := plan(t, `
[topology]
size = 2

[bgp]
as_number = 65010
router_id = "192.168.0.0"
`)
	require.Len(t, m.ASes, 1)
	assert.Equal(t, addr.AS(65010), m.ASes[0].Number)
	for _, n := range m.Nodes {
		b := n.Protocols.BGP
		require.NotNil(t, b, "node %s", n.Coord)
		assert.Equal(t, addr.AS(65010), b.AS)
		assert.Empty(t, b.EBGP)
		assert.Len(t, b.IBGP, 3)
		assert.Equal(t, 128, b.Network.Bits())
		assert.Equal(t, n.Loopback, b.Network.Addr())
	}
	b := node(t, m, grid.C(1, 1)).Protocols.BGP
	assert.Equal(t, "192.168.1.1", b.RouterID.String())
	assert.Equal(t, node(t, m, grid.C(0, 0)).Loopback, b.IBGP[0].Address)
}

func TestBGPSpecial(t *testing.T) {
	cfg := config.Default()
	bgp, sp := config.DefaultBGP(), special.SampleConfig()
	cfg.Topology = config.Topology{Size: special.SampleSize, Type: topology.Special}
	cfg.BGP, cfg.Special = &bgp, &sp
	m, err := topogen.Plan(context.Background(), &cfg)
	require.NoError(t, err)

	gw := node(t, m, grid.C(1, 2))
	assert.True(t, gw.Gateway)
	b := gw.Protocols.BGP
	require.NotNil(t, b)
	assert.Equal(t, addr.AS(65000), b.AS)
	require.Len(t, b.EBGP, 1)
	peer := node(t, m, grid.C(1, 3))
	assert.Equal(t, model.BGPPeer{
		Node:      peer.Coord,
		Address:   b.EBGP[0].Address,
		RemoteAS:  addr.AS(65001),
		Interface: "eth4",
	}, b.EBGP[0])
	for _, ifc := range peer.Interfaces {
		if ifc.Peer == gw.Coord {
			assert.True(t, ifc.InterAS)
			assert.Equal(t, ifc.Address, b.EBGP[0].Address)
		}
	}
	var ibgp []grid.Coord
	for _, p := range b.IBGP {
		ibgp = append(ibgp, p.Node)
		assert.Equal(t, addr.AS(65000), p.RemoteAS)
	}
	assert.Equal(t, []grid.Coord{grid.C(0, 1), grid.C(1, 0), grid.C(2, 1)}, ibgp)

	internal := node(t, m, grid.C(1, 1))
	assert.Nil(t, internal.Protocols.BGP)
	assert.Equal(t, model.None, internal.Daemon(config.BGPd).Mode)
	assert.Equal(t, 16, m.Stats.ByType[topology.Gateway])
	assert.Equal(t, 1, m.Stats.ByType[topology.Source])
}

func TestAssembleChecks(t *testing.T) {
	cfg := config.Default()
	g, err := topology.Build(2, topology.Grid)
	require.NoError(t, err)
	areas, err := partition.OSPFAreas(g, false, 0, addr.Backbone)
	require.NoError(t, err)
	p, err := addrplan.New(cfg.Network)
	require.NoError(t, err)
	addrs, err := p.Assign(g, addrplan.RowMajor(g))
	require.NoError(t, err)
	input := func(c config.Config) model.Input {
		return model.Input{Config: &c, Graph: g, Areas: areas, Addresses: addrs}
	}

	m, err := model.Assemble(input(cfg))
	require.NoError(t, err)
	assert.Len(t, m.Nodes, 4)

	_, err = model.Assemble(model.Input{Config: &cfg, Graph: g, Areas: areas})
	assert.Error(t, err)

	bgp := config.DefaultBGP()
	withBGP := cfg
	withBGP.BGP = &bgp
	_, err = model.Assemble(input(withBGP))
	assert.ErrorIs(t, err, errs.ErrContradiction)

	bad := cfg
	bad.OSPF.DeadInterval = 1
	_, err = model.Assemble(input(bad))
	assert.ErrorIs(t, err, errs.ErrContradiction)

	other, err := topology.Build(3, topology.Grid)
	require.NoError(t, err)
	in := input(cfg)
	in.Graph = other
	_, err = model.Assemble(in)
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	m := plan(t, "[topology]\nsize = 2\n"+isisTable)

	var js bytes.Buffer
	require.NoError(t, m.Encode(&js, model.JSON))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &doc))
	for _, key := range []string{"meta", "nodes", "links", "areas", "settings",
		"generation", "stats"} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, doc, "ases")
	nodes := doc["nodes"].([]any)
	first := nodes[0].(map[string]any)
	assert.Equal(t, "router_00_00", first["name"])
	ifc := first["interfaces"].([]any)[0].(map[string]any)
	assert.Equal(t, "eth2", ifc["name"])
	assert.Equal(t, "south", ifc["direction"])
	assert.NotContains(t, ifc, "index")

	var ym bytes.Buffer
	require.NoError(t, m.Encode(&ym, model.YAML))
	var ydoc yaml.MapSlice
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &ydoc))
	var keys []any
	for _, item := range ydoc {
		keys = append(keys, item.Key)
	}
	assert.Equal(t, []any{"meta", "nodes", "links", "areas", "settings",
		"generation", "stats"}, keys)

	assert.Error(t, m.Encode(&js, model.Format("xml")))
}
