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

// Package grid contains the identity primitives of a router plane: row/column
// coordinates, canonical undirected edges and compass directions.
//
// Coordinates are ordered row-major. An Edge always stores its smaller
// endpoint first, so two edges between the same pair of coordinates compare
// equal regardless of construction order and can be used as map keys.
package grid

import (
	"cmp"
	"encoding"
	"fmt"
	"strconv"
	"strings"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

var (
	_ encoding.TextMarshaler   = Coord{}
	_ encoding.TextUnmarshaler = (*Coord)(nil)
	_ encoding.TextMarshaler   = Edge{}
	_ encoding.TextUnmarshaler = (*Edge)(nil)
)

// Coord is a 0-indexed (row, col) position.
type Coord struct {
	Row int
	Col int
}

// C is shorthand for Coord{Row: row, Col: col}.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// ParseCoord parses "r,c". Surrounding parentheses and blanks are accepted.
func ParseCoord(s string) (Coord, error) {
	raw := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "("), ")")
	r, c, ok := strings.Cut(raw, ",")
	if !ok {
		return Coord{}, serrors.New("coordinate must be \"row,col\"", "value", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return Coord{}, serrors.Wrap("parsing row", err, "value", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return Coord{}, serrors.Wrap("parsing column", err, "value", s)
	}
	return Coord{Row: row, Col: col}, nil
}

// Compare orders coordinates row-major.
func Compare(a, b Coord) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// Less reports whether c precedes o in row-major order.
func (c Coord) Less(o Coord) bool {
	return Compare(c, o) < 0
}

// InBounds reports whether c lies in [0,size)².
func (c Coord) InBounds(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Index returns the row-major index of c in a size×size plane.
func (c Coord) Index(size int) int {
	return c.Row*size + c.Col
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

func (c Coord) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Coord) UnmarshalText(b []byte) error {
	v, err := ParseCoord(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Edge is an undirected pair of distinct coordinates with A < B.
type Edge struct {
	A Coord
	B Coord
}

// NewEdge canonicalizes the pair (a, b). Self-loops are rejected.
func NewEdge(a, b Coord) (Edge, error) {
	switch Compare(a, b) {
	case 0:
		return Edge{}, serrors.New("self-loop", "coord", a)
	case 1:
		a, b = b, a
	}
	return Edge{A: a, B: b}, nil
}

// MustEdge is like NewEdge but panics on self-loops.
func MustEdge(a, b Coord) Edge {
	e, err := NewEdge(a, b)
	if err != nil {
		panic(err)
	}
	return e
}

// CompareEdges orders edges by their canonical endpoint pair.
func CompareEdges(x, y Edge) int {
	if c := Compare(x.A, y.A); c != 0 {
		return c
	}
	return Compare(x.B, y.B)
}

// Has reports whether c is an endpoint of e.
func (e Edge) Has(c Coord) bool {
	return e.A == c || e.B == c
}

// Other returns the endpoint opposite to c.
func (e Edge) Other(c Coord) (Coord, bool) {
	switch c {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	}
	return Coord{}, false
}

func (e Edge) String() string {
	return e.A.String() + "-" + e.B.String()
}

func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText parses "r,c-r,c" and canonicalizes the result.
func (e *Edge) UnmarshalText(b []byte) error {
	a, z, ok := strings.Cut(string(b), "-")
	if !ok {
		return serrors.New("edge must be \"row,col-row,col\"", "value", string(b))
	}
	ca, err := ParseCoord(a)
	if err != nil {
		return err
	}
	cz, err := ParseCoord(z)
	if err != nil {
		return err
	}
	v, err := NewEdge(ca, cz)
	if err != nil {
		return err
	}
	*e = v
	return nil
}
