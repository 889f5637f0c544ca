// Copyright 2026 Anapaya Systems
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

// Package metrics creates prometheus collectors registered with a
// configurable registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Option func(*Options)

// Options configures the metrics Factory, construct it using the ApplyOptions
// function.
type Options struct {
	registry prometheus.Registerer
}

func (o Options) registerer() prometheus.Registerer {
	if o.registry != nil {
		return o.registry
	}
	return prometheus.DefaultRegisterer
}

// WithRegistry registers all collectors with registry instead of the default
// registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(o *Options) {
		o.registry = registry
	}
}

func ApplyOptions(options ...Option) Options {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// Auto creates a Factory that uses the provided Options as registry. If no
// explicit registry is set the default registry is used.
func (o Options) Auto() Factory {
	return Factory{opts: o}
}

// Factory is a metrics Factory that registers metrics using the provided
// Options. Construct it using the Options.Auto function.
type Factory struct {
	opts Options
}

func (f Factory) register(c prometheus.Collector) {
	f.opts.registerer().MustRegister(c)
}

func (f Factory) NewCounterVec(
	opts prometheus.CounterOpts,
	labelNames []string,
) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labelNames)
	f.register(c)
	return c
}

func (f Factory) NewCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	f.register(c)
	return c
}

func (f Factory) NewGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	f.register(g)
	return g
}

func (f Factory) NewHistogramVec(
	opts prometheus.HistogramOpts,
	labelNames []string,
) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labelNames)
	f.register(h)
	return h
}
