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
	"net/netip"
	"strings"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

var (
	_ encoding.TextMarshaler   = Prefix{}
	_ encoding.TextUnmarshaler = (*Prefix)(nil)
)

// DefaultPrefixLen is assumed for prefixes written without a length.
const DefaultPrefixLen = 64

// Prefix is an IPv6 prefix. In text form the length may be omitted, in which
// case it is DefaultPrefixLen.
type Prefix struct {
	netip.Prefix
}

// ParsePrefix parses an IPv6 prefix, with or without a length. Host bits are
// cleared.
func ParsePrefix(s string) (Prefix, error) {
	s = strings.TrimSpace(s)
	var p netip.Prefix
	if strings.Contains(s, "/") {
		var err error
		if p, err = netip.ParsePrefix(s); err != nil {
			return Prefix{}, serrors.Wrap("parsing prefix", err, "value", s)
		}
	} else {
		a, err := netip.ParseAddr(s)
		if err != nil {
			return Prefix{}, serrors.Wrap("parsing prefix", err, "value", s)
		}
		p = netip.PrefixFrom(a, DefaultPrefixLen)
	}
	if !p.Addr().Is6() || p.Addr().Is4In6() {
		return Prefix{}, serrors.New("not an IPv6 prefix", "value", s)
	}
	return Prefix{Prefix: p.Masked()}, nil
}

// MustParsePrefix is like ParsePrefix but panics on error.
func MustParsePrefix(s string) Prefix {
	p, err := ParsePrefix(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Prefix) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return []byte{}, nil
	}
	return []byte(p.String()), nil
}

func (p *Prefix) UnmarshalText(b []byte) error {
	v, err := ParsePrefix(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
