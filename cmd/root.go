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
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/fundview/dataset"
	"github.com/penny-vault/fundview/report"
)

var (
	cfgFile  string
	logLevel string

	// datasets is shared by every command so that repeated selections in the
	// interactive loop reuse the parsed files
	datasets = dataset.NewCache()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundview",
	Short: "fundview summarizes CVM fund data by manager",
	Long: `fundview is a command line utility for exploring the open data published by
the Brazilian securities commission (CVM). It reads the fund registry, the
Resolution 160 public offerings and the monthly reports of receivable funds
(FIDC tables II, VI and VII), joins them by manager or administrator and
renders a summary of:

	* the funds of the selection next to the market average of their type
	* the public offerings led by the selection
	* risk, sector, maturity and delinquency figures of its FIDCs

Download the extracts from https://dados.cvm.gov.br and point data.dir at
the directory that holds them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
		if err != nil {
			log.Warn().Str("LogLevel", logLevel).Msg("unknown log level, using info")
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fundview.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the CVM extracts")
	if err := viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for data-dir failed")
	}

	rootCmd.PersistentFlags().String("currency", "", "ISO 4217 code of the currency symbol shown in reports")
	if err := viper.BindPFlag("display.currency", rootCmd.PersistentFlags().Lookup("currency")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for currency failed")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	dataset.SetConfigDefaults()
	viper.SetDefault("display.currency", "BRL")
	viper.SetDefault("display.width", report.DefaultWidth)
	viper.SetDefault("branding.banner", "")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".fundview" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".fundview")
	}

	// FUNDVIEW_DATA_DIR overrides data.dir
	viper.SetEnvPrefix("fundview")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}

// loadDataset returns the dataset described by the configuration, exiting
// when it cannot be read.
func loadDataset(ctx context.Context) *dataset.Dataset {
	sources := dataset.SourcesFromConfig()

	myDataset, err := datasets.Get(ctx, sources)
	if err != nil {
		log.Fatal().Err(err).Str("Dir", sources.Dir).Msg("could not load dataset")
	}

	return myDataset
}

// commandContext carries the global logger so that library code can log
// through zerolog.Ctx.
func commandContext() context.Context {
	return log.Logger.WithContext(context.Background())
}
