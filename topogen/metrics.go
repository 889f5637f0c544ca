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

package topogen

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ipv6lab/topogen/pkg/metrics"
	"github.com/ipv6lab/topogen/topogen/errs"
)

const namespace = "topogen"

// Metrics are the planning metrics. A nil *Metrics records nothing.
type Metrics struct {
	// Plans counts planning runs by result: "ok" or the error kind.
	Plans *prometheus.CounterVec
	// Duration observes run and stage durations in seconds, labelled by
	// stage. The whole run is stage "plan".
	Duration *prometheus.HistogramVec
	// Addresses counts allocated loopbacks and link subnets by pool.
	Addresses *prometheus.CounterVec
}

// NewMetrics creates and registers the planning metrics.
func NewMetrics(opts ...metrics.Option) *Metrics {
	auto := metrics.ApplyOptions(opts...).Auto()
	return &Metrics{
		Plans: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_total",
			Help:      "Total number of planning runs.",
		}, []string{"result"}),
		Duration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of planning stages.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"stage"}),
		Addresses: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "addresses_allocated_total",
			Help:      "Total number of allocated addresses.",
		}, []string{"pool"}),
	}
}

func (m *Metrics) observePlan(err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = errs.Kind(err)
	}
	m.Plans.WithLabelValues(result).Inc()
	m.Duration.WithLabelValues("plan").Observe(d.Seconds())
}

func (m *Metrics) observeStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.Duration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) observeAddresses(loopbacks, links int) {
	if m == nil {
		return
	}
	m.Addresses.WithLabelValues("loopback").Add(float64(loopbacks))
	m.Addresses.WithLabelValues("link").Add(float64(links))
}
