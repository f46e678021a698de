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
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/fundview/analysis"
	"github.com/penny-vault/fundview/normalize"
)

var managersRole string

// managersCmd represents the managers command
var managersCmd = &cobra.Command{
	Use:   "managers [filter]",
	Short: "List the names that can be passed to show",
	Long: `List every selectable manager, or administrator with --role administrator,
one per line in sorted order. The optional filter is normalized like the names
themselves and keeps only names that contain it.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		role, err := analysis.ParseRole(managersRole)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid role")
		}

		myDataset := loadDataset(commandContext())

		filter := ""
		if len(args) == 1 {
			filter = normalize.Name(args[0])
		}

		count := 0
		for _, name := range analysis.Selectable(myDataset, role) {
			if filter != "" && !strings.Contains(name, filter) {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			count++
		}

		log.Debug().Int("NumNames", count).Str("Role", string(role)).Msg("listed selectable names")
	},
}

func init() {
	rootCmd.AddCommand(managersCmd)
	managersCmd.Flags().StringVarP(&managersRole, "role", "r", string(analysis.RoleManager), "list managers or administrators")
}
