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

// Package errs defines the error kinds reported by the planner. Every planning
// failure wraps exactly one of them, so callers can tell the kinds apart with
// errors.Is. The offending field and value are attached as serrors context.
package errs

import (
	"errors"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

var (
	// ErrRange indicates a value outside its permitted range or shape.
	ErrRange = serrors.New("value out of range")
	// ErrReference indicates a coordinate that does not exist in the graph.
	ErrReference = serrors.New("unknown reference")
	// ErrContradiction indicates individually valid values that contradict
	// each other.
	ErrContradiction = serrors.New("contradicting configuration")
	// ErrExhausted indicates that an address space is too small.
	ErrExhausted = serrors.New("address space exhausted")
)

// Range reports field holding value outside [lo, hi].
func Range(field string, value, lo, hi any) error {
	return serrors.JoinNoStack(ErrRange, nil, "field", field, "value", value, "min", lo, "max", hi)
}

// Kind returns the short name of the kind err belongs to, or "internal" if
// it has none.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrRange):
		return "range"
	case errors.Is(err, ErrReference):
		return "reference"
	case errors.Is(err, ErrContradiction):
		return "contradiction"
	case errors.Is(err, ErrExhausted):
		return "exhausted"
	}
	return "internal"
}
