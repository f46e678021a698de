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
	"fmt"
	"strings"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/penny-vault/fundview/data"
)

// Summary returns a description of the dataset in markdown
func (myDataset *Dataset) Summary() (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString("# Dataset\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("Source directory: %s\n\n", myDataset.sources.Dir)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("Loaded: %s\n\n", timeago.English.Format(myDataset.loadedAt))); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Managers: %d\n  * Administrators: %d\n\n",
		len(myDataset.managers), len(myDataset.administrators))); err != nil {
		return "", err
	}

	if _, err := builder.WriteString("## Tables\n\n| Table | File | Rows | Skipped | Updated |\n|---|---|---:|---:|---|\n"); err != nil {
		return "", err
	}

	for _, key := range data.TableKeys {
		table := data.Tables[key]
		stats, ok := myDataset.stats[key]
		if !ok {
			stats = TableStats{Table: key, Rows: myDataset.rowCount(key)}
		}

		updated := "unknown"
		if !stats.ModTime.IsZero() {
			updated = fmt.Sprintf("%s (%s)", timeago.English.Format(stats.ModTime), stats.ModTime.Local().Format("02/01/2006"))
		}

		if _, err := builder.WriteString(p.Sprintf("| %s | %s | %d | %d | %s |\n",
			table.Name, stats.Path, stats.Rows, stats.Skipped, updated)); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}

func (myDataset *Dataset) rowCount(key string) int {
	switch key {
	case data.RegistryKey:
		return len(myDataset.funds)
	case data.OfferingsKey:
		return len(myDataset.offerings)
	case data.SectorKey:
		return len(myDataset.sectors)
	case data.MaturityKey:
		return len(myDataset.maturities)
	case data.RiskKey:
		return len(myDataset.risks)
	default:
		return 0
	}
}
