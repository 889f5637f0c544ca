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

package model

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

// Format is an output encoding of the model.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the supported encodings.
var Formats = []Format{JSON, YAML}

// Encode writes m to w in the given format. Both formats carry the same keys.
func (m *Model) Encode(w io.Writer, f Format) error {
	var raw []byte
	var err error
	switch f {
	case JSON:
		raw, err = json.MarshalIndent(m, "", "  ")
		raw = append(raw, '\n')
	case YAML:
		raw, err = m.yaml()
	default:
		return serrors.New("unsupported format", "format", f)
	}
	if err != nil {
		return serrors.Wrap("encoding model", err, "format", f)
	}
	_, err = w.Write(raw)
	return err
}

// yaml encodes m through its JSON form, so that field names and text
// encodings of addresses and coordinates are shared with JSON. Mappings are
// decoded into MapSlice values, so the JSON key order is kept at every level.
func (m *Model) yaml() ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
