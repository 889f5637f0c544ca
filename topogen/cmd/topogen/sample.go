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

	"github.com/spf13/cobra"

	pconfig "github.com/ipv6lab/topogen/private/config"
	"github.com/ipv6lab/topogen/topogen/config"
)

func newSample(pather CommandPather) *cobra.Command {
	var flags struct {
		special bool
	}
	var cmd = &cobra.Command{
		Use:   "sample [flags]",
		Short: "Write a sample configuration",
		Example: fmt.Sprintf(`  %[1]s sample > topo.toml
  %[1]s sample --special > special.toml`, pather.CommandPath()),
		Long: `'sample' writes a commented configuration with every setting at its
default value. The optional [isis] and [bgp] blocks are included. With
--special the four AS layout on a 6x6 plane is written instead of a grid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := pconfig.CtxMap{}
			if flags.special {
				ctx[config.SpecialKey] = "true"
			}
			var cfg config.Config
			cfg.Sample(cmd.OutOrStdout(), nil, ctx)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.special, "special", false,
		"Write a special multi-AS topology")
	return cmd
}
