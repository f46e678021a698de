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
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/fundview/currency"
	"github.com/penny-vault/fundview/dataset"
)

type displayConfig struct {
	Currency string `toml:"currency"`
	Width    int    `toml:"width"`
}

type brandingConfig struct {
	Banner string `toml:"banner"`
}

// fileConfig mirrors the keys read through viper.
type fileConfig struct {
	Data     dataset.Sources `toml:"data"`
	Display  displayConfig   `toml:"display"`
	Branding brandingConfig  `toml:"branding"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather data locations and write the config file",
	Run: func(cmd *cobra.Command, args []string) {
		myConfig := fileConfig{
			Data: dataset.SourcesFromConfig(),
			Display: displayConfig{
				Currency: viper.GetString("display.currency"),
				Width:    viper.GetInt("display.width"),
			},
			Branding: brandingConfig{
				Banner: viper.GetString("branding.banner"),
			},
		}

		width := strconv.Itoa(myConfig.Display.Width)

		form := huh.NewForm(
			// Where the extracts live and how they are encoded
			huh.NewGroup(
				huh.NewInput().
					Title("Which directory holds the CVM extracts?").
					Value(&myConfig.Data.Dir).
					Validate(func(dir string) error {
						info, err := os.Stat(dir)
						if err != nil {
							return err
						}
						if !info.IsDir() {
							return fmt.Errorf("%s is not a directory", dir)
						}
						return nil
					}),

				huh.NewSelect[string]().
					Title("Which text encoding do the files use?").
					Options(
						huh.NewOption("Latin-1 (CVM default)", "latin1"),
						huh.NewOption("Windows-1252", "windows-1252"),
						huh.NewOption("UTF-8", "utf-8"),
					).
					Value(&myConfig.Data.Encoding),

				huh.NewInput().
					Title("Which character separates the columns?").
					Value(&myConfig.Data.Delimiter).
					Validate(func(delimiter string) error {
						if utf8.RuneCountInString(delimiter) != 1 {
							return errors.New("delimiter must be a single character")
						}
						return nil
					}),
			),

			// Display settings
			huh.NewGroup(
				huh.NewInput().
					Title("Which currency should amounts be shown in (ISO 4217 code)?").
					Value(&myConfig.Display.Currency),

				huh.NewInput().
					Title("How wide is your terminal?").
					Value(&width).
					Validate(func(s string) error {
						n, err := strconv.Atoi(s)
						if err != nil || n < 20 {
							return errors.New("width must be a number of at least 20")
						}
						return nil
					}),

				huh.NewInput().
					Title("Banner file shown above every report (optional):").
					Value(&myConfig.Branding.Banner),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering settings")
		}

		myConfig.Display.Width, _ = strconv.Atoi(width)
		myConfig.Display.Currency = currency.New(myConfig.Display.Currency).Code

		// save settings to config file
		configFN := cfgFile
		if configFN == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatal().Err(err).Msg("could not determine user home directory")
			}
			configFN = filepath.Join(home, ".fundview.toml")
		}

		log.Info().Str("ConfigFile", configFN).Msg("Saving settings to config file")
		configData, err := toml.Marshal(myConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("fundview has been configured, run `fundview info` to check the dataset")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
