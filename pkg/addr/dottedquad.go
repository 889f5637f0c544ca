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

package addr

import (
	"encoding"
	"encoding/binary"
	"net/netip"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

var (
	_ encoding.TextMarshaler   = DottedQuad(0)
	_ encoding.TextUnmarshaler = (*DottedQuad)(nil)
)

// DottedQuad is a 32-bit identifier in IPv4 notation.
type DottedQuad uint32

// Backbone is the OSPF backbone area.
const Backbone DottedQuad = 0

// ParseDottedQuad parses "a.b.c.d".
func ParseDottedQuad(s string) (DottedQuad, error) {
	a, err := netip.ParseAddr(s)
	if err != nil || !a.Is4() {
		return 0, serrors.New("invalid dotted quad", "value", s)
	}
	b := a.As4()
	return DottedQuad(binary.BigEndian.Uint32(b[:])), nil
}

// MustParseDottedQuad is like ParseDottedQuad but panics on error.
func MustParseDottedQuad(s string) DottedQuad {
	q, err := ParseDottedQuad(s)
	if err != nil {
		panic(err)
	}
	return q
}

// DottedQuadFrom assembles an identifier from its four octets.
func DottedQuadFrom(a, b, c, d byte) DottedQuad {
	return DottedQuad(binary.BigEndian.Uint32([]byte{a, b, c, d}))
}

// Octets returns the four octets of q, most significant first.
func (q DottedQuad) Octets() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(q))
	return b
}

func (q DottedQuad) String() string {
	return netip.AddrFrom4(q.Octets()).String()
}

func (q DottedQuad) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *DottedQuad) UnmarshalText(b []byte) error {
	v, err := ParseDottedQuad(string(b))
	if err != nil {
		return err
	}
	*q = v
	return nil
}
