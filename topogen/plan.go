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

// Package topogen plans a router topology from a configuration. Plan runs
// the pipeline: topology construction or special merging, area and AS
// partitioning, address assignment and model assembly. Every stage is
// deterministic, so identical configurations yield identical models.
package topogen

import (
	"context"
	"time"

	"github.com/ipv6lab/topogen/pkg/grid"
	"github.com/ipv6lab/topogen/pkg/log"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen/addrplan"
	"github.com/ipv6lab/topogen/topogen/config"
	"github.com/ipv6lab/topogen/topogen/model"
	"github.com/ipv6lab/topogen/topogen/partition"
	"github.com/ipv6lab/topogen/topogen/special"
	"github.com/ipv6lab/topogen/topogen/topology"
)

// Planner runs planning pipelines. The zero value is ready to use.
type Planner struct {
	// Metrics is optional. If nil, no metrics are recorded.
	Metrics *Metrics
}

// Plan plans cfg without recording metrics.
func Plan(ctx context.Context, cfg *config.Config) (*model.Model, error) {
	return Planner{}.Plan(ctx, cfg)
}

// Plan validates cfg and plans the network it describes. Nothing is returned
// unless every stage succeeds.
func (p Planner) Plan(ctx context.Context, cfg *config.Config) (*model.Model, error) {
	start := time.Now()
	m, err := p.plan(ctx, cfg)
	p.Metrics.observePlan(err, time.Since(start))
	if err != nil {
		return nil, err
	}
	log.FromCtx(ctx).Info("Planned topology",
		"type", m.Meta.Family, "size", m.Meta.Size,
		"nodes", m.Stats.Nodes, "links", m.Stats.Links,
		"areas", m.Stats.Areas, "ases", m.Stats.ASes,
		"digest", m.Meta.ConfigDigest)
	return m, nil
}

func (p Planner) plan(ctx context.Context, cfg *config.Config) (*model.Model, error) {
	if cfg == nil {
		return nil, serrors.New("missing configuration")
	}
	logger := log.FromCtx(ctx)
	if err := p.stage(ctx, "validate", cfg.Validate); err != nil {
		return nil, err
	}

	in := model.Input{Config: cfg}
	err := p.stage(ctx, "topology", func() error {
		if cfg.Topology.Type != topology.Special {
			g, err := topology.Build(cfg.Topology.Size, cfg.Topology.Type)
			in.Graph = g
			return err
		}
		res, err := special.Merge(cfg.Topology.Size, *cfg.Special)
		if err != nil {
			return err
		}
		in.Special, in.Graph = res, res.Graph
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Built graph", "type", in.Graph.Family(),
		"nodes", len(in.Graph.Nodes()), "links", len(in.Graph.Edges()))

	err = p.stage(ctx, "partition", func() error {
		var err error
		in.Areas, err = partition.OSPFAreas(in.Graph, cfg.Topology.MultiArea,
			cfg.Topology.AreaSize, cfg.OSPF.AreaID)
		if err != nil {
			return err
		}
		if cfg.BGP == nil {
			return nil
		}
		in.ASes, err = partition.ASes(in.Graph, components(&in), cfg.BGP.ASNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Partitioned graph", "areas", in.Areas.Len(), "ases", asCount(in.ASes))

	err = p.stage(ctx, "addresses", func() error {
		plan, err := addrplan.New(cfg.Network)
		if err != nil {
			return err
		}
		in.Addresses, err = plan.Assign(in.Graph, addressOrder(&in))
		if err != nil {
			return err
		}
		logger.Debug("Assigned addresses", "remaining", plan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.Metrics.observeAddresses(len(in.Graph.Nodes()), len(in.Graph.Edges()))

	var m *model.Model
	err = p.stage(ctx, "assemble", func() error {
		var err error
		m, err = model.Assemble(in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// stage runs one pipeline stage and records its duration.
func (p Planner) stage(ctx context.Context, name string, f func() error) error {
	if err := ctx.Err(); err != nil {
		return serrors.Wrap("planning canceled", err, "stage", name)
	}
	start := time.Now()
	err := f()
	p.Metrics.observeStage(name, time.Since(start))
	if err != nil {
		log.FromCtx(ctx).Debug("Stage failed", "stage", name, "err", err)
	}
	return err
}

// components returns the node groups that become ASes. A special topology
// has one AS per connected component of its intra-AS links. A regular
// topology is a single AS.
func components(in *model.Input) [][]grid.Coord {
	if in.Special != nil {
		return in.Special.Components()
	}
	return [][]grid.Coord{in.Graph.Nodes()}
}

// addressOrder numbers nodes AS by AS when ASes exist, so that the loopbacks
// of an AS are contiguous.
func addressOrder(in *model.Input) []grid.Coord {
	if in.ASes == nil {
		return addrplan.RowMajor(in.Graph)
	}
	ids := in.ASes.IDs()
	groups := make([][]grid.Coord, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, in.ASes.Members(id))
	}
	return addrplan.ByGroup(groups...)
}

func asCount(a *partition.ASMap) int {
	if a == nil {
		return 0
	}
	return a.Len()
}
