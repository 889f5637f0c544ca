// Copyright 2023 Anapaya Systems
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

package command

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/ipv6lab/topogen/pkg/private/serrors"
)

// Demote every heading one level, so that the command name is the only
// top-level heading of a page.
var headingRe = regexp.MustCompile(`(?m)^(#{2,5}) `)

// NewGendocs creates a hidden command that writes one markdown page per
// command into a directory.
func NewGendocs(pather Pather) *cobra.Command {
	var cmd = &cobra.Command{
		Use:    "gendocs <directory>",
		Short:  "Generate documentation",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.Root().DisableAutoGenTag = true

			directory := args[0]
			if err := os.MkdirAll(directory, 0755); err != nil {
				return serrors.Wrap("creating directory", err, "dir", directory)
			}
			if err := genMarkdownTree(cmd.Root(), directory); err != nil {
				return serrors.Wrap("generating documentation", err, "dir", directory)
			}
			return nil
		},
	}
	return cmd
}

func genMarkdownTree(cmd *cobra.Command, dir string) error {
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		if err := genMarkdownTree(c, dir); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := doc.GenMarkdown(cmd, &buf); err != nil {
		return err
	}
	raw := headingRe.ReplaceAllFunc(buf.Bytes(), func(h []byte) []byte {
		return h[1:]
	})
	basename := strings.ReplaceAll(cmd.CommandPath(), " ", "_") + ".md"
	return os.WriteFile(filepath.Join(dir, basename), raw, 0666)
}
