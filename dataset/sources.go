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
package dataset

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/penny-vault/fundview/data"
)

// Sources locates the five extracts on disk and says how to decode them.
type Sources struct {
	Dir       string `toml:"dir"`
	Registry  string `toml:"registry"`
	Offerings string `toml:"offerings"`
	Sector    string `toml:"sector"`
	Maturity  string `toml:"maturity"`
	Risk      string `toml:"risk"`
	Encoding  string `toml:"encoding"`
	Delimiter string `toml:"delimiter"`
}

const (
	DefaultEncoding  = "latin1"
	DefaultDelimiter = ";"
)

// DefaultSources are the file names used by the CVM open data portal,
// relative to the working directory.
func DefaultSources() Sources {
	return Sources{
		Dir:       ".",
		Registry:  data.Tables[data.RegistryKey].FileName,
		Offerings: data.Tables[data.OfferingsKey].FileName,
		Sector:    data.Tables[data.SectorKey].FileName,
		Maturity:  data.Tables[data.MaturityKey].FileName,
		Risk:      data.Tables[data.RiskKey].FileName,
		Encoding:  DefaultEncoding,
		Delimiter: DefaultDelimiter,
	}
}

// SetConfigDefaults registers the default source locations with viper.
func SetConfigDefaults() {
	defaults := DefaultSources()
	viper.SetDefault("data.dir", defaults.Dir)
	viper.SetDefault("data.registry", defaults.Registry)
	viper.SetDefault("data.offerings", defaults.Offerings)
	viper.SetDefault("data.sector", defaults.Sector)
	viper.SetDefault("data.maturity", defaults.Maturity)
	viper.SetDefault("data.risk", defaults.Risk)
	viper.SetDefault("data.encoding", defaults.Encoding)
	viper.SetDefault("data.delimiter", defaults.Delimiter)
}

// SourcesFromConfig reads the data.* keys from viper.
func SourcesFromConfig() Sources {
	return Sources{
		Dir:       viper.GetString("data.dir"),
		Registry:  viper.GetString("data.registry"),
		Offerings: viper.GetString("data.offerings"),
		Sector:    viper.GetString("data.sector"),
		Maturity:  viper.GetString("data.maturity"),
		Risk:      viper.GetString("data.risk"),
		Encoding:  viper.GetString("data.encoding"),
		Delimiter: viper.GetString("data.delimiter"),
	}
}

// Path returns the location of the table identified by key. Relative file
// names are resolved against Dir.
func (sources Sources) Path(key string) string {
	var fn string
	switch key {
	case data.RegistryKey:
		fn = sources.Registry
	case data.OfferingsKey:
		fn = sources.Offerings
	case data.SectorKey:
		fn = sources.Sector
	case data.MaturityKey:
		fn = sources.Maturity
	case data.RiskKey:
		fn = sources.Risk
	default:
		return ""
	}

	if fn == "" || filepath.IsAbs(fn) || sources.Dir == "" {
		return fn
	}

	return filepath.Join(sources.Dir, fn)
}

// Key identifies the source file set; datasets are cached under it.
func (sources Sources) Key() string {
	parts := make([]string, 0, len(data.TableKeys)+2)
	for _, key := range data.TableKeys {
		path := sources.Path(key)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		parts = append(parts, path)
	}
	parts = append(parts, strings.ToLower(sources.Encoding), sources.Delimiter)
	return strings.Join(parts, "|")
}

func (sources Sources) delimiter() rune {
	for _, r := range sources.Delimiter {
		return r
	}
	return ';'
}
