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

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipv6lab/topogen/pkg/metrics"
)

func TestFactoryRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	auto := metrics.ApplyOptions(metrics.WithRegistry(reg)).Auto()

	c := auto.NewCounterVec(prometheus.CounterOpts{Name: "test_total"}, []string{"kind"})
	c.WithLabelValues("a").Add(2)
	g := auto.NewGauge(prometheus.GaugeOpts{Name: "test_gauge"})
	g.Set(3)
	h := auto.NewHistogramVec(prometheus.HistogramOpts{Name: "test_seconds"}, []string{"stage"})
	h.WithLabelValues("x").Observe(1)
	auto.NewCounter(prometheus.CounterOpts{Name: "test_plain_total"}).Inc()

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues("a")))

	assert.Panics(t, func() {
		auto.NewGauge(prometheus.GaugeOpts{Name: "test_gauge"})
	}, "duplicate registration")
}
