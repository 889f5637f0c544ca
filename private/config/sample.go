// Copyright 2019 Anapaya Systems
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

package config

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

// indent prefixes every non-empty line of a table body.
const indent = "    "

// CtxMap selects sample variants, e.g. the special topology layout.
type CtxMap map[string]string

// Has reports whether key is set, whatever its value.
func (m CtxMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// WriteSample writes the samples in order. Table samplers get a [path.name]
// header and an indented body. Samples are generated from constants, so a
// failing writer is a programming error and WriteSample panics.
func WriteSample(dst io.Writer, path Path, ctx CtxMap, samplers ...Sampler) {
	w := &sampleWriter{dst: dst}
	var body bytes.Buffer
	for _, sampler := range samplers {
		body.Reset()
		ts, ok := sampler.(TableSampler)
		if !ok {
			sampler.Sample(&body, path, ctx)
			w.write(body.String())
			continue
		}
		p := path.Extend(ts.ConfigName())
		w.write("\n[" + strings.Join(p, ".") + "]")
		ts.Sample(&body, p, ctx)
		w.writeIndented(&body)
	}
	w.mustSucceed()
}

// WriteString writes s to dst. It panics if the write fails.
func WriteString(dst io.Writer, s string) {
	w := &sampleWriter{dst: dst}
	w.write(s)
	w.mustSucceed()
}

// sampleWriter keeps the first write error and skips all later writes.
type sampleWriter struct {
	dst io.Writer
	err error
}

func (w *sampleWriter) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.dst, s)
}

func (w *sampleWriter) writeIndented(src io.Reader) {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			w.write(indent + line + "\n")
		} else {
			w.write("\n")
		}
	}
}

func (w *sampleWriter) mustSucceed() {
	if w.err != nil {
		panic(serrors.Wrap("writing sample", w.err))
	}
}
