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

package topology

import (
	"encoding"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen/errs"
)

// Family is a topology family.
type Family string

const (
	Grid    Family = "grid"
	Torus   Family = "torus"
	Strip   Family = "strip"
	Special Family = "special"
)

var (
	_ encoding.TextMarshaler   = Family("")
	_ encoding.TextUnmarshaler = (*Family)(nil)
)

// ParseFamily parses a family name.
func ParseFamily(s string) (Family, error) {
	switch f := Family(s); f {
	case Grid, Torus, Strip, Special:
		return f, nil
	}
	return "", serrors.JoinNoStack(errs.ErrRange, nil, "field", "type", "value", s)
}

// Wrap describes per-axis wraparound.
type Wrap struct {
	// Rows wraps the vertical axis, connecting row size-1 to row 0.
	Rows bool
	// Cols wraps the horizontal axis, connecting column size-1 to column 0.
	Cols bool
}

// Wrap returns the wraparound of a regular family. Special topologies are
// assembled from regular ones and have no wrap of their own.
func (f Family) Wrap() (Wrap, error) {
	switch f {
	case Grid:
		return Wrap{}, nil
	case Torus:
		return Wrap{Rows: true, Cols: true}, nil
	case Strip:
		return Wrap{Rows: true}, nil
	}
	return Wrap{}, serrors.JoinNoStack(errs.ErrRange, nil,
		"field", "base_topology", "value", string(f), "expected", "grid|torus|strip")
}

// Regular reports whether f is built by a plain adjacency rule.
func (f Family) Regular() bool {
	_, err := f.Wrap()
	return err == nil
}

func (f Family) MarshalText() ([]byte, error) {
	return []byte(f), nil
}

func (f *Family) UnmarshalText(b []byte) error {
	v, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ExpectedLinks returns the number of links a regular family has at the given
// size.
func ExpectedLinks(f Family, size int) int {
	switch f {
	case Grid:
		return 2 * size * (size - 1)
	case Torus:
		if size == 2 {
			// Wrapped and direct neighbors coincide.
			return 4
		}
		return 2 * size * size
	case Strip:
		if size == 2 {
			return 4
		}
		return size*size + size*(size-1)
	}
	return 0
}

// LinkKind tells how a link entered the graph.
type LinkKind string

const (
	// BaseLink is produced by a family's adjacency rule.
	BaseLink LinkKind = "base"
	// InternalBridge is an explicit link inside one autonomous system.
	InternalBridge LinkKind = "internal_bridge"
	// TorusBridge is an explicit link between two autonomous systems.
	TorusBridge LinkKind = "torus_bridge"
)
