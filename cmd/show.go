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
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/fundview/analysis"
	"github.com/penny-vault/fundview/report"
)

var (
	showRole   string
	showFormat string
	showOutput string
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Render the fund summary of a manager or administrator",
	Long: `The show sub-command filters every table for a single manager (or, with
--role administrator, a single administrator) and renders its funds, offerings
and receivable-fund figures. Names are normalized before matching, so
"Gestora Alfa Ltda." and "GESTORA ALFA LTDA" select the same entity.

If no name is provided an interactive list is shown and another selection can
be made after each summary. The dataset is only read again when one of the
source files changed.

When none of the funds of the selection file monthly FIDC reports the
receivable-fund section covers the whole market instead.

Also see: managers`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := commandContext()

		role, err := analysis.ParseRole(showRole)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid role")
		}

		format, err := report.ParseFormat(showFormat)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid format")
		}

		renderer := report.NewRenderer(viper.GetString("display.currency"), viper.GetInt("display.width"))
		renderer.Banner = report.LoadBanner(viper.GetString("branding.banner"), log.Logger)

		out := cmd.OutOrStdout()
		if showOutput != "" {
			fh, err := os.Create(showOutput)
			if err != nil {
				log.Fatal().Err(err).Str("FileName", showOutput).Msg("could not create output file")
			}
			defer fh.Close()
			out = fh
		}

		if len(args) == 1 {
			myDataset := loadDataset(ctx)
			myReport, err := analysis.Build(ctx, myDataset, role, args[0])
			if err != nil {
				if errors.Is(err, analysis.ErrUnknownEntity) {
					log.Fatal().Str("Name", args[0]).Str("Role", string(role)).
						Msg("name not found, run `fundview managers` for the selectable names")
				}
				log.Fatal().Err(err).Msg("could not build report")
			}

			writeReport(out, renderer, myReport, format)
			return
		}

		for {
			// the cache hands back the same dataset unless a file changed
			myDataset := loadDataset(ctx)
			names := analysis.Selectable(myDataset, role)
			if len(names) == 0 {
				log.Fatal().Str("Role", string(role)).Msg("dataset has no selectable names")
			}

			var (
				selected string
				again    bool
			)

			err := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title(selectTitle(role)).
						Options(huh.NewOptions(names...)...).
						Height(15).
						Value(&selected),
				),
			).Run()
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return
				}
				log.Fatal().Err(err).Msg("selection failed")
			}

			myReport, err := analysis.Build(ctx, myDataset, role, selected)
			if err != nil {
				log.Fatal().Err(err).Str("Name", selected).Msg("could not build report")
			}

			writeReport(out, renderer, myReport, format)

			err = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Show another summary?").
						Affirmative("Yes").
						Negative("No").
						Value(&again),
				),
			).Run()
			if err != nil || !again {
				return
			}
		}
	},
}

func writeReport(out io.Writer, renderer *report.Renderer, myReport *analysis.Report, format report.Format) {
	startTime := time.Now()

	if err := renderer.Render(out, myReport, format); err != nil {
		log.Fatal().Err(err).Str("ReportID", myReport.ID.String()).Msg("could not render report")
	}

	log.Debug().Str("ReportID", myReport.ID.String()).Str("Format", string(format)).
		Str("RunTime", durafmt.Parse(time.Since(startTime)).LimitFirstN(2).String()).Msg("report rendered")
}

func selectTitle(role analysis.Role) string {
	if role == analysis.RoleAdministrator {
		return "Choose an administrator:"
	}
	return "Choose a manager:"
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showRole, "role", "r", string(analysis.RoleManager), "match names against the manager or administrator column")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", string(report.FormatTerminal),
		fmt.Sprintf("output format (%s, %s, %s, %s)", report.FormatTerminal, report.FormatMarkdown, report.FormatJSON, report.FormatHTML))
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "", "write the report to a file instead of stdout")
}
