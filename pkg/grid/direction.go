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

package grid

import "fmt"

// Direction is the compass direction of a neighbor.
type Direction int

const (
	NoDirection Direction = iota
	North
	South
	West
	East
)

// Axis is the orientation of a link.
type Axis int

const (
	NoAxis Axis = iota
	Horizontal
	Vertical
)

// DirectionOf returns the direction from c to o in a size×size plane, taking
// wraparound into account. Pairs that are not 4-neighbors, directly or across
// a border, have no direction. Direct adjacency wins over wraparound, which
// only matters for size 2.
func DirectionOf(c, o Coord, size int) Direction {
	switch {
	case c.Col == o.Col && o.Row == c.Row-1:
		return North
	case c.Col == o.Col && o.Row == c.Row+1:
		return South
	case c.Row == o.Row && o.Col == c.Col-1:
		return West
	case c.Row == o.Row && o.Col == c.Col+1:
		return East
	case c.Col == o.Col && c.Row == 0 && o.Row == size-1:
		return North
	case c.Col == o.Col && c.Row == size-1 && o.Row == 0:
		return South
	case c.Row == o.Row && c.Col == 0 && o.Col == size-1:
		return West
	case c.Row == o.Row && c.Col == size-1 && o.Col == 0:
		return East
	}
	return NoDirection
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	}
	return NoDirection
}

// Axis returns the orientation of d.
func (d Direction) Axis() Axis {
	switch d {
	case North, South:
		return Vertical
	case West, East:
		return Horizontal
	}
	return NoAxis
}

// Interface returns the interface name conventionally bound to d: eth1 to
// eth4 for north, south, west and east. NoDirection has no interface.
func (d Direction) Interface() string {
	if d == NoDirection {
		return ""
	}
	return fmt.Sprintf("eth%d", int(d))
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	}
	return "none"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "none"
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
