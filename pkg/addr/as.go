// Copyright 2016 ETH Zurich
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
	"strconv"
	"strings"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

const (
	BGPASBits = 32
	// MaxBGPAS is the largest 4-byte BGP AS number.
	MaxBGPAS = (1 << BGPASBits) - 1

	asdotPartBits = 16
	asdotPartMask = (1 << asdotPartBits) - 1
)

var (
	_ encoding.TextMarshaler   = AS(0)
	_ encoding.TextUnmarshaler = (*AS)(nil)
)

// AS is a BGP autonomous system number. The zero value means "no AS".
type AS uint32

// ParseAS parses an AS number in asplain ("65000") or asdot ("1.10")
// notation. Zero is rejected since it is reserved.
func ParseAS(s string) (AS, error) {
	var as uint64
	if hi, lo, ok := strings.Cut(s, "."); ok {
		h, err := strconv.ParseUint(hi, 10, asdotPartBits)
		if err != nil {
			return 0, serrors.Wrap("parsing asdot high part", err, "value", s)
		}
		l, err := strconv.ParseUint(lo, 10, asdotPartBits)
		if err != nil {
			return 0, serrors.Wrap("parsing asdot low part", err, "value", s)
		}
		as = h<<asdotPartBits | l
	} else {
		v, err := strconv.ParseUint(s, 10, BGPASBits)
		if err != nil {
			// err.Error() will contain the original value
			return 0, serrors.Wrap("parsing AS", err)
		}
		as = v
	}
	if as == 0 {
		return 0, serrors.New("AS 0 is reserved", "value", s)
	}
	return AS(as), nil
}

// Add returns as+n, failing if the result leaves the 32-bit AS space.
func (as AS) Add(n int) (AS, error) {
	if n < 0 || uint64(as)+uint64(n) > MaxBGPAS {
		return 0, serrors.New("AS number out of range", "base", as, "offset", n)
	}
	return as + AS(n), nil
}

// Class returns "private" for the RFC 6996 private-use ranges, and
// "public_16bit" or "public_32bit" otherwise.
func (as AS) Class() string {
	switch {
	case as >= 64512 && as <= 65534, as >= 4200000000 && as <= 4294967294:
		return "private"
	case as <= asdotPartMask:
		return "public_16bit"
	}
	return "public_32bit"
}

// String formats the AS in asplain notation.
func (as AS) String() string {
	return strconv.FormatUint(uint64(as), 10)
}

// ASDot formats the AS in asdot notation. Numbers that fit 16 bits are
// formatted as plain decimals.
func (as AS) ASDot() string {
	if as <= asdotPartMask {
		return as.String()
	}
	return strconv.FormatUint(uint64(as>>asdotPartBits), 10) + "." +
		strconv.FormatUint(uint64(as&asdotPartMask), 10)
}

func (as AS) MarshalText() ([]byte, error) {
	return []byte(as.String()), nil
}

func (as *AS) UnmarshalText(b []byte) error {
	v, err := ParseAS(string(b))
	if err != nil {
		return err
	}
	*as = v
	return nil
}
