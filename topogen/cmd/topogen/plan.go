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

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ipv6lab/topogen/pkg/log"
	"github.com/ipv6lab/topogen/pkg/metrics"
	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen"
	"github.com/ipv6lab/topogen/topogen/config"
	"github.com/ipv6lab/topogen/topogen/model"
)

const defaultParallel = 4

func newPlan(pather CommandPather) *cobra.Command {
	var flags struct {
		format      string
		metricsFile string
		parallel    int
		logLevel    string
	}
	var cmd = &cobra.Command{
		Use:   "plan [flags] <config.toml>...",
		Short: "Plan the networks described by configuration files",
		Example: fmt.Sprintf(`  %[1]s plan topo.toml
  %[1]s plan --format yaml a.toml b.toml
  %[1]s plan --metrics-file plan.prom topo.toml`, pather.CommandPath()),
		Long: `'plan' validates every configuration and plans its network.

The configurations are planned concurrently. The models are written to stdout
in argument order, once all of them are planned. If any configuration fails,
nothing is written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := model.Format(flags.format)
			if !slices.Contains(model.Formats, format) {
				return serrors.New("unsupported format", "format", flags.format)
			}
			if flags.parallel < 1 {
				return serrors.New("parallel must be positive", "parallel", flags.parallel)
			}
			cmd.SilenceUsage = true

			cfgs, err := loadConfigs(args)
			if err != nil {
				return err
			}
			if err := setupLog(flags.logLevel, cfgs[0].Logging); err != nil {
				return serrors.Wrap("setting up logging", err)
			}

			reg := prometheus.NewRegistry()
			planner := topogen.Planner{
				Metrics: topogen.NewMetrics(metrics.WithRegistry(reg)),
			}
			models, err := planAll(cmd.Context(), planner, args, cfgs, flags.parallel)
			if flags.metricsFile != "" {
				if err := prometheus.WriteToTextfile(flags.metricsFile, reg); err != nil {
					log.Error("Writing metrics", "file", flags.metricsFile, "err", err)
				}
			}
			if err != nil {
				return err
			}
			return writeModels(cmd.OutOrStdout(), models, format)
		},
	}
	cmd.Flags().StringVar(&flags.format, "format", string(model.JSON),
		"Output format ("+formatList()+")")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "",
		"Write planning metrics in the prometheus text format to this file")
	cmd.Flags().IntVar(&flags.parallel, "parallel", defaultParallel,
		"Maximum number of configurations planned at the same time")
	cmd.Flags().StringVar(&flags.logLevel, "log.level", "",
		"Console logging level (debug|info|error), overrides the [log] block")
	return cmd
}

func loadConfigs(files []string) ([]*config.Config, error) {
	cfgs := make([]*config.Config, 0, len(files))
	for _, file := range files {
		cfg, err := config.LoadFile(file)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// planAll plans cfgs with at most parallel runs at a time. The result has the
// order of cfgs.
func planAll(
	ctx context.Context,
	planner topogen.Planner,
	files []string,
	cfgs []*config.Config,
	parallel int,
) ([]*model.Model, error) {

	models := make([]*model.Model, len(cfgs))
	g, errCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, cfg := range cfgs {
		g.Go(func() error {
			runCtx, _ := log.WithLabels(errCtx, "config", files[i])
			m, err := planner.Plan(runCtx, cfg)
			if err != nil {
				return serrors.Wrap("planning", err, "file", files[i])
			}
			models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

// writeModels writes the models as a JSON stream, or as a multi-document YAML
// stream.
func writeModels(w io.Writer, models []*model.Model, format model.Format) error {
	var buf bytes.Buffer
	for i, m := range models {
		if format == model.YAML && i > 0 {
			buf.WriteString("---\n")
		}
		if err := m.Encode(&buf, format); err != nil {
			return err
		}
	}
	_, err := io.Copy(w, &buf)
	return err
}

func formatList() string {
	names := make([]string, 0, len(model.Formats))
	for _, f := range model.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}
