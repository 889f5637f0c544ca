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

package addrplan_test

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipv6lab/topogen/pkg/addr"
	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/topogen/addrplan"
	"github.com/ipv6lab/topogen/topogen/config"
	"github.com/ipv6lab/topogen/topogen/errs"
	"github.com/ipv6lab/topogen/topogen/topology"
)

func network(mods ...func(*config.Network)) config.Network {
	n := config.DefaultNetwork()
	for _, m := range mods {
		m(&n)
	}
	return n
}

func assign(t *testing.T, n config.Network, g *topology.Graph) *addrplan.Assignment {
	t.Helper()
	p, err := addrplan.New(n)
	require.NoError(t, err)
	a, err := p.Assign(g, addrplan.RowMajor(g))
	require.NoError(t, err)
	return a
}

func TestAssignRFC6164(t *testing.T) {
	g, err := topology.Build(4, topology.Torus)
	require.NoError(t, err)
	n := network(func(n *config.Network) {
		n.LinkPrefix = addr.MustParsePrefix("2001:db8:2000::")
		n.SubnetMask = 127
	})
	a := assign(t, n, g)

	first, ok := a.Link(g.Edges()[0])
	require.True(t, ok)
	assert.Equal(t, netip.MustParsePrefix("2001:db8:2000::/127"), first.Subnet)
	assert.Equal(t, netip.MustParseAddr("2001:db8:2000::"), first.A)
	assert.Equal(t, netip.MustParseAddr("2001:db8:2000::1"), first.B)

	second, ok := a.Link(g.Edges()[1])
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("2001:db8:2000::2"), second.A)
	assert.Equal(t, netip.MustParseAddr("2001:db8:2000::3"), second.B)

	seen := make(map[netip.Addr]grid.Edge)
	for _, e := range g.Edges() {
		l, ok := a.Link(e)
		require.True(t, ok)
		assert.Equal(t, 127, l.Subnet.Bits())
		for _, ip := range []netip.Addr{l.A, l.B} {
			assert.True(t, l.Subnet.Contains(ip))
			prev, dup := seen[ip]
			assert.False(t, dup, "%s on %s and %s", ip, prev, e)
			seen[ip] = e
		}
	}
	assert.Len(t, seen, 2*len(g.Edges()))
}

func TestAssignWideSubnets(t *testing.T) {
	g, err := topology.Build(2, topology.Grid)
	require.NoError(t, err)
	a := assign(t, network(func(n *config.Network) { n.SubnetMask = 126 }), g)
	l, ok := a.Link(g.Edges()[1])
	require.True(t, ok)
	assert.Equal(t, netip.MustParsePrefix("2001:db8:2000::4/126"), l.Subnet)
	assert.Equal(t, netip.MustParseAddr("2001:db8:2000::5"), l.A)
	assert.Equal(t, netip.MustParseAddr("2001:db8:2000::6"), l.B)

	a = assign(t, network(func(n *config.Network) {
		n.LinkPrefix = addr.MustParsePrefix("2001:db8:2000::/62")
		n.SubnetMask = 64
	}), g)
	l, ok = a.Link(g.Edges()[0])
	require.True(t, ok)
	assert.Equal(t, netip.MustParsePrefix("2001:db8:2000::/64"), l.Subnet)
	assert.Equal(t, netip.MustParseAddr("2001:db8:2000::1"), l.A)
	assert.Equal(t, netip.MustParseAddr("2001:db8:2000::2"), l.B)
}

func TestAssignLoopbacks(t *testing.T) {
	g, err := topology.Build(3, topology.Grid)
	require.NoError(t, err)
	a := assign(t, network(), g)
	lo, ok := a.Loopback(grid.C(0, 0))
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("2001:db8:1000::1"), lo)
	lo, ok = a.Loopback(grid.C(2, 2))
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("2001:db8:1000::9"), lo)
}

func TestAssignOrder(t *testing.T) {
	g, err := topology.Build(2, topology.Grid)
	require.NoError(t, err)
	order := addrplan.ByGroup(
		[]grid.Coord{grid.C(1, 1), grid.C(0, 1)},
		[]grid.Coord{grid.C(1, 0), grid.C(0, 0)},
	)
	assert.Equal(t, []grid.Coord{grid.C(0, 1), grid.C(1, 1), grid.C(0, 0), grid.C(1, 0)}, order)

	p, err := addrplan.New(network())
	require.NoError(t, err)
	a, err := p.Assign(g, order)
	require.NoError(t, err)
	lo, _ := a.Loopback(grid.C(0, 0))
	assert.Equal(t, netip.MustParseAddr("2001:db8:1000::3"), lo)

	t.Run("incomplete", func(t *testing.T) {
		p, err := addrplan.New(network())
		require.NoError(t, err)
		_, err = p.Assign(g, order[:3])
		assert.ErrorIs(t, err, errs.ErrContradiction)
	})
	t.Run("foreign node", func(t *testing.T) {
		p, err := addrplan.New(network())
		require.NoError(t, err)
		_, err = p.Assign(g, append(order[:3:3], grid.C(5, 5)))
		assert.ErrorIs(t, err, errs.ErrReference)
	})
}

func TestAssignDeterministic(t *testing.T) {
	g, err := topology.Build(5, topology.Strip)
	require.NoError(t, err)
	dump := func(a *addrplan.Assignment) []string {
		var out []string
		for _, c := range g.Nodes() {
			lo, _ := a.Loopback(c)
			out = append(out, c.String()+"="+lo.String())
		}
		for _, e := range g.Edges() {
			l, _ := a.Link(e)
			out = append(out, e.String()+"="+l.A.String()+","+l.B.String())
		}
		return out
	}
	first := dump(assign(t, network(), g))
	second := dump(assign(t, network(), g))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("assignment changed between runs (-first +second):\n%s", diff)
	}
}

func TestPlanAcrossRuns(t *testing.T) {
	g, err := topology.Build(2, topology.Grid)
	require.NoError(t, err)
	p, err := addrplan.New(network())
	require.NoError(t, err)
	a1, err := p.Assign(g, addrplan.RowMajor(g))
	require.NoError(t, err)
	a2, err := p.Assign(g, addrplan.RowMajor(g))
	require.NoError(t, err)
	l1, _ := a1.Loopback(grid.C(0, 0))
	l2, _ := a2.Loopback(grid.C(0, 0))
	assert.NotEqual(t, l1, l2, "indices must never be reused")
}

func TestNewErrors(t *testing.T) {
	testCases := map[string]struct {
		network config.Network
		errKind error
	}{
		"mask too short": {
			network: network(func(n *config.Network) { n.SubnetMask = 63 }),
			errKind: errs.ErrRange,
		},
		"mask too long": {
			network: network(func(n *config.Network) { n.SubnetMask = 129 }),
			errKind: errs.ErrRange,
		},
		"mask shorter than link prefix": {
			network: network(func(n *config.Network) {
				n.LinkPrefix = addr.MustParsePrefix("2001:db8:2000::/96")
				n.SubnetMask = 80
			}),
			errKind: errs.ErrContradiction,
		},
		"loopback outside": {
			network: network(func(n *config.Network) {
				n.LoopbackPrefix = addr.MustParsePrefix("2001:db9::/64")
			}),
			errKind: errs.ErrContradiction,
		},
		"link outside": {
			network: network(func(n *config.Network) {
				n.LinkPrefix = addr.MustParsePrefix("fd00::/64")
			}),
			errKind: errs.ErrContradiction,
		},
		"pools overlap": {
			network: network(func(n *config.Network) {
				n.LinkPrefix = addr.MustParsePrefix("2001:db8:1000::/80")
			}),
			errKind: errs.ErrContradiction,
		},
		"missing prefix": {
			network: network(func(n *config.Network) { n.IPv6Prefix = addr.Prefix{} }),
			errKind: errs.ErrRange,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := addrplan.New(tc.network)
			assert.ErrorIs(t, err, tc.errKind)
		})
	}
}

func TestAssignErrors(t *testing.T) {
	g, err := topology.Build(4, topology.Grid)
	require.NoError(t, err)
	testCases := map[string]struct {
		network config.Network
		errKind error
	}{
		"host routes on links": {
			network: network(func(n *config.Network) { n.SubnetMask = 128 }),
			errKind: errs.ErrContradiction,
		},
		"loopbacks exhausted": {
			network: network(func(n *config.Network) {
				n.LoopbackPrefix = addr.MustParsePrefix("2001:db8:1000::/125")
			}),
			errKind: errs.ErrExhausted,
		},
		"links exhausted": {
			network: network(func(n *config.Network) {
				n.LinkPrefix = addr.MustParsePrefix("2001:db8:2000::/124")
			}),
			errKind: errs.ErrExhausted,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			p, err := addrplan.New(tc.network)
			require.NoError(t, err)
			_, err = p.Assign(g, addrplan.RowMajor(g))
			assert.ErrorIs(t, err, tc.errKind)
		})
	}

	t.Run("exact fit", func(t *testing.T) {
		g, err := topology.Build(2, topology.Grid)
		require.NoError(t, err)
		p, err := addrplan.New(network(func(n *config.Network) {
			// 7 usable hosts for 4 loopbacks, 4 subnets for 4 links.
			n.LoopbackPrefix = addr.MustParsePrefix("2001:db8:1000::/125")
			n.LinkPrefix = addr.MustParsePrefix("2001:db8:2000::/125")
		}))
		require.NoError(t, err)
		_, err = p.Assign(g, addrplan.RowMajor(g))
		require.NoError(t, err)
		assert.Equal(t, "3", p.LoopbackCapacity().String())
		assert.Equal(t, "0", p.LinkCapacity().String())
	})
}
