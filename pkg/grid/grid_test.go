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

package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipv6lab/topogen/pkg/grid"
)

func TestParseCoord(t *testing.T) {
	var testCases = []struct {
		src       string
		coord     grid.Coord
		assertErr assert.ErrorAssertionFunc
	}{
		{"1,4", grid.C(1, 4), assert.NoError},
		{" (0, 5) ", grid.C(0, 5), assert.NoError},
		{"10,99", grid.C(10, 99), assert.NoError},
		{"1", grid.Coord{}, assert.Error},
		{"a,1", grid.Coord{}, assert.Error},
		{"1,b", grid.Coord{}, assert.Error},
		{"", grid.Coord{}, assert.Error},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			c, err := grid.ParseCoord(tc.src)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.coord, c)
		})
	}
}

func TestCoordOrder(t *testing.T) {
	assert.True(t, grid.C(0, 5).Less(grid.C(1, 0)))
	assert.True(t, grid.C(1, 0).Less(grid.C(1, 1)))
	assert.False(t, grid.C(1, 1).Less(grid.C(1, 1)))
	assert.Equal(t, 9, grid.C(1, 3).Index(6))
	assert.True(t, grid.C(5, 5).InBounds(6))
	assert.False(t, grid.C(6, 0).InBounds(6))
	assert.False(t, grid.C(0, -1).InBounds(6))
}

func TestNewEdge(t *testing.T) {
	e1, err := grid.NewEdge(grid.C(1, 3), grid.C(1, 2))
	require.NoError(t, err)
	e2, err := grid.NewEdge(grid.C(1, 2), grid.C(1, 3))
	require.NoError(t, err)
	assert.Equal(t, e1, e2, "edges must be canonical")
	assert.Equal(t, grid.C(1, 2), e1.A)

	_, err = grid.NewEdge(grid.C(2, 2), grid.C(2, 2))
	assert.Error(t, err)
	assert.Panics(t, func() { grid.MustEdge(grid.C(0, 0), grid.C(0, 0)) })

	other, ok := e1.Other(grid.C(1, 2))
	assert.True(t, ok)
	assert.Equal(t, grid.C(1, 3), other)
	_, ok = e1.Other(grid.C(0, 0))
	assert.False(t, ok)
}

func TestEdgeText(t *testing.T) {
	var e grid.Edge
	require.NoError(t, e.UnmarshalText([]byte("5,1-0,1")))
	assert.Equal(t, grid.MustEdge(grid.C(0, 1), grid.C(5, 1)), e)
	b, err := e.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0,1-5,1", string(b))
	assert.Error(t, e.UnmarshalText([]byte("0,1")))
	assert.Error(t, e.UnmarshalText([]byte("0,1-0,1")))
}

func TestCompareEdges(t *testing.T) {
	a := grid.MustEdge(grid.C(0, 0), grid.C(0, 1))
	b := grid.MustEdge(grid.C(0, 0), grid.C(1, 0))
	c := grid.MustEdge(grid.C(0, 1), grid.C(0, 2))
	assert.Negative(t, grid.CompareEdges(a, b))
	assert.Negative(t, grid.CompareEdges(b, c))
	assert.Zero(t, grid.CompareEdges(c, c))
}

func TestDirectionOf(t *testing.T) {
	var testCases = map[string]struct {
		from, to grid.Coord
		size     int
		dir      grid.Direction
	}{
		"north":          {grid.C(2, 2), grid.C(1, 2), 6, grid.North},
		"south":          {grid.C(2, 2), grid.C(3, 2), 6, grid.South},
		"west":           {grid.C(2, 2), grid.C(2, 1), 6, grid.West},
		"east":           {grid.C(2, 2), grid.C(2, 3), 6, grid.East},
		"wrap north":     {grid.C(0, 1), grid.C(5, 1), 6, grid.North},
		"wrap south":     {grid.C(5, 1), grid.C(0, 1), 6, grid.South},
		"wrap west":      {grid.C(1, 0), grid.C(1, 5), 6, grid.West},
		"wrap east":      {grid.C(1, 5), grid.C(1, 0), 6, grid.East},
		"size 2 direct":  {grid.C(0, 0), grid.C(1, 0), 2, grid.South},
		"not a neighbor": {grid.C(0, 0), grid.C(2, 2), 6, grid.NoDirection},
		"two rows apart": {grid.C(0, 0), grid.C(2, 0), 6, grid.NoDirection},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			d := grid.DirectionOf(tc.from, tc.to, tc.size)
			assert.Equal(t, tc.dir, d)
			if d != grid.NoDirection {
				assert.Equal(t, d.Opposite(), grid.DirectionOf(tc.to, tc.from, tc.size))
			}
		})
	}
}

func TestDirectionInterface(t *testing.T) {
	assert.Equal(t, "eth1", grid.North.Interface())
	assert.Equal(t, "eth2", grid.South.Interface())
	assert.Equal(t, "eth3", grid.West.Interface())
	assert.Equal(t, "eth4", grid.East.Interface())
	assert.Empty(t, grid.NoDirection.Interface())
	assert.Equal(t, grid.Vertical, grid.North.Axis())
	assert.Equal(t, grid.Horizontal, grid.East.Axis())
	assert.Equal(t, grid.NoAxis, grid.NoDirection.Axis())
}
