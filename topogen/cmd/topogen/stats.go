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
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
	"github.com/ipv6lab/topogen/topogen"
	"github.com/ipv6lab/topogen/topogen/config"
	"github.com/ipv6lab/topogen/topogen/model"
)

func newStats(pather CommandPather) *cobra.Command {
	var flags struct {
		logLevel string
	}
	var cmd = &cobra.Command{
		Use:     "stats [flags] <config.toml>",
		Short:   "Show statistics of a planned network",
		Example: fmt.Sprintf(`  %[1]s stats topo.toml`, pather.CommandPath()),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := setupLog(flags.logLevel, cfg.Logging); err != nil {
				return serrors.Wrap("setting up logging", err)
			}
			m, err := topogen.Plan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			renderStats(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.logLevel, "log.level", "",
		"Console logging level (debug|info|error), overrides the [log] block")
	return cmd
}

func renderStats(w io.Writer, m *model.Model) {
	s := m.Stats
	rows := [][]string{
		{"type", string(m.Meta.Family)},
		{"size", strconv.Itoa(m.Meta.Size)},
		{"nodes", strconv.Itoa(s.Nodes)},
		{"links", strconv.Itoa(s.Links)},
	}
	for _, t := range sortedKeys(s.ByType) {
		rows = append(rows, []string{"nodes." + string(t), strconv.Itoa(s.ByType[t])})
	}
	for _, k := range sortedKeys(s.LinksByKind) {
		rows = append(rows, []string{"links." + string(k), strconv.Itoa(s.LinksByKind[k])})
	}
	rows = append(rows,
		[]string{"degree.min", strconv.Itoa(s.MinDegree)},
		[]string{"degree.max", strconv.Itoa(s.MaxDegree)},
		[]string{"degree.avg", strconv.FormatFloat(s.AvgDegree, 'f', 2, 64)},
		[]string{"areas", strconv.Itoa(s.Areas)},
		[]string{"area_borders", strconv.Itoa(s.BorderNodes)},
		[]string{"ases", strconv.Itoa(s.ASes)},
	)

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"METRIC", "VALUE"})
	table.AppendBulk(rows)
	table.Render()
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
