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

// Command topogen plans router topologies and their IPv6 addressing.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ipv6lab/topogen/pkg/log"
	"github.com/ipv6lab/topogen/private/app/command"
)

// CommandPather returns the path to a command.
type CommandPather interface {
	CommandPath() string
}

func main() {
	cmd := newRoot(filepath.Base(os.Args[0]))
	err := cmd.Execute()
	log.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRoot(executable string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   executable,
		Short: "Topology and IPv6 address planner",
		Long: `topogen plans grid, torus, strip and special multi-AS router topologies.

It partitions the routers into OSPF areas and BGP autonomous systems, assigns
loopback and link addresses from the configured pools and writes the planned
network as JSON or YAML.`,
		Args: cobra.NoArgs,
		// Errors are printed in main. Commands turn off the usage message once
		// their arguments are well-formed.
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newPlan(cmd),
		newStats(cmd),
		newSample(cmd),
		command.NewCompletion(cmd),
		command.NewVersion(cmd),
		command.NewGendocs(cmd),
	)
	return cmd
}

// setupLog configures logging from the level flag, or from the [log] block of
// cfg when the flag is empty.
func setupLog(level string, cfg log.Config) error {
	if level != "" {
		cfg.Console.Level = level
	}
	return log.Setup(cfg)
}
