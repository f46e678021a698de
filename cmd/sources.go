// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/fundview/data"
	"github.com/penny-vault/fundview/dataset"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources [table]",
	Short: "List the source tables or describe a specific one",
	Long: `Without arguments sources lists every CVM extract fundview reads together
with the file it is currently configured to read. Given a table key (registry,
offerings, sector, maturity, risk) it prints the resolved path, whether the
file exists and the columns its header must contain.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sources := dataset.SourcesFromConfig()

		if len(args) > 0 {
			table, ok := data.Tables[args[0]]
			if !ok {
				log.Fatal().Str("Table", args[0]).Strs("Known", data.TableKeys).Msg("unknown table")
			}
			fmt.Fprintln(cmd.OutOrStdout(), describeSource(table, sources.Path(table.Key)))
			return
		}

		r, _ := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(viper.GetInt("display.width")),
		)

		builder := strings.Builder{}
		builder.WriteString("# Source Tables\n")
		builder.WriteString(fmt.Sprintf("\nEncoding `%s`, delimiter `%s`\n", sources.Encoding, sources.Delimiter))
		for _, key := range data.TableKeys {
			table := data.Tables[key]
			builder.WriteString(fmt.Sprintf("\n## %s (%s)\n", table.Name, table.Key))
			builder.WriteString(table.Description)
			builder.WriteString(fmt.Sprintf("\n\n`%s`\n", sources.Path(key)))
		}

		out, err := r.Render(builder.String())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render sources document")
		}

		fmt.Fprint(cmd.OutOrStdout(), out)
	},
}

func describeSource(table *data.Table, path string) string {
	var sb strings.Builder
	keyword := func(s string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render(s)
	}

	status := "missing"
	if info, err := os.Stat(path); err == nil {
		status = fmt.Sprintf("%d bytes, modified %s ago", info.Size(),
			durafmt.ParseShort(time.Since(info.ModTime())).String())
	}

	fmt.Fprintf(&sb, "%s\n\n%s\n\nKey: %s\nFile: %s\nStatus: %s\n\n",
		lipgloss.NewStyle().Bold(true).Render(strings.ToUpper(table.Name)),
		table.Description,
		keyword(table.Key),
		keyword(path),
		keyword(status),
	)

	fmt.Fprint(&sb, lipgloss.NewStyle().Bold(true).Render("Required Columns"))
	for _, column := range table.Columns {
		fmt.Fprintf(&sb, "\n%s", keyword(column))
	}

	return lipgloss.NewStyle().
		Width(72).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		Render(sb.String())
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
