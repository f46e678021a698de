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

// Package dataset loads the CVM extracts into an immutable, normalized,
// in-memory Dataset and caches it per source file set.
package dataset

import (
	"context"
	"sort"
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/penny-vault/fundview/data"
)

// Dataset holds the normalized tables of one load. It is never modified after
// construction; slices returned by its accessors are shared and must be
// treated as read-only.
type Dataset struct {
	sources  Sources
	loadedAt time.Time
	stats    map[string]TableStats

	funds      []data.FundRecord
	offerings  []data.OfferingRecord
	sectors    []data.SectorRecord
	maturities []data.MaturityRecord
	risks      []data.RiskRecord

	managers       []string
	administrators []string
	marketAverages map[string]decimal.Decimal
}

// Tables groups already-normalized records, for building a Dataset from
// fixtures or another source.
type Tables struct {
	Funds      []data.FundRecord
	Offerings  []data.OfferingRecord
	Sectors    []data.SectorRecord
	Maturities []data.MaturityRecord
	Risks      []data.RiskRecord
}

// New builds a Dataset from normalized tables. The slices are copied.
func New(sources Sources, tables Tables) *Dataset {
	myDataset := &Dataset{
		sources:    sources,
		loadedAt:   time.Now(),
		stats:      make(map[string]TableStats, len(data.TableKeys)),
		funds:      append([]data.FundRecord(nil), tables.Funds...),
		offerings:  append([]data.OfferingRecord(nil), tables.Offerings...),
		sectors:    append([]data.SectorRecord(nil), tables.Sectors...),
		maturities: append([]data.MaturityRecord(nil), tables.Maturities...),
		risks:      append([]data.RiskRecord(nil), tables.Risks...),
	}

	myDataset.managers = distinctNames(func(add func(string)) {
		for _, fund := range myDataset.funds {
			add(fund.Manager)
		}
		for _, offering := range myDataset.offerings {
			add(offering.Manager)
		}
	})

	myDataset.administrators = distinctNames(func(add func(string)) {
		for _, fund := range myDataset.funds {
			add(fund.Administrator)
		}
	})

	myDataset.marketAverages = computeMarketAverages(myDataset.funds)

	return myDataset
}

// Load reads every source table, normalizes identifiers and names and returns
// the resulting Dataset.
func Load(ctx context.Context, sources Sources) (*Dataset, error) {
	logger := zerolog.Ctx(ctx).With().Str("SourceDir", sources.Dir).Logger()
	startTime := time.Now()

	var (
		tables Tables
		stats  = make(map[string]TableStats, len(data.TableKeys))
		err    error
	)

	for _, key := range data.TableKeys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var tableStats TableStats
		switch key {
		case data.RegistryKey:
			tables.Funds, tableStats, err = readTable[data.FundRecord](sources, key, logger)
		case data.OfferingsKey:
			tables.Offerings, tableStats, err = readTable[data.OfferingRecord](sources, key, logger)
		case data.SectorKey:
			tables.Sectors, tableStats, err = readTable[data.SectorRecord](sources, key, logger)
		case data.MaturityKey:
			tables.Maturities, tableStats, err = readTable[data.MaturityRecord](sources, key, logger)
		case data.RiskKey:
			tables.Risks, tableStats, err = readTable[data.RiskRecord](sources, key, logger)
		}

		if err != nil {
			logger.Error().Err(err).Str("Table", key).Msg("could not load table")
			return nil, err
		}

		if tableStats.Skipped > 0 {
			logger.Warn().Object("Stats", tableStats).Msg("skipped malformed rows")
		}
		logger.Debug().Object("Stats", tableStats).Msg("loaded table")

		stats[key] = tableStats
	}

	myDataset := New(sources, tables)
	myDataset.stats = stats

	logger.Info().Str("LoadTime", durafmt.Parse(time.Since(startTime)).LimitFirstN(2).String()).
		Int("NumFunds", len(myDataset.funds)).Int("NumManagers", len(myDataset.managers)).Msg("dataset loaded")

	return myDataset, nil
}

func distinctNames(each func(add func(string))) []string {
	seen := make(map[string]struct{})
	each(func(name string) {
		if name != "" {
			seen[name] = struct{}{}
		}
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func computeMarketAverages(funds []data.FundRecord) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)

	for _, fund := range funds {
		if !fund.NetAssets.Valid {
			continue
		}
		totals[fund.FundType] = totals[fund.FundType].Add(fund.NetAssets.Value)
		counts[fund.FundType]++
	}

	averages := make(map[string]decimal.Decimal, len(totals))
	for fundType, total := range totals {
		averages[fundType] = total.Div(decimal.NewFromInt(counts[fundType]))
	}

	return averages
}

// Sources returns the file set the dataset was loaded from.
func (myDataset *Dataset) Sources() Sources {
	return myDataset.sources
}

// LoadedAt is when the dataset was built.
func (myDataset *Dataset) LoadedAt() time.Time {
	return myDataset.loadedAt
}

// Stats returns per-table read statistics keyed by table key. Datasets built
// with New have none.
func (myDataset *Dataset) Stats(key string) (TableStats, bool) {
	stats, ok := myDataset.stats[key]
	return stats, ok
}

// Funds returns the fund registry rows.
func (myDataset *Dataset) Funds() []data.FundRecord {
	return myDataset.funds
}

// Offerings returns the public offering rows.
func (myDataset *Dataset) Offerings() []data.OfferingRecord {
	return myDataset.offerings
}

// Sectors returns the FIDC table II rows.
func (myDataset *Dataset) Sectors() []data.SectorRecord {
	return myDataset.sectors
}

// Maturities returns the FIDC table VI rows.
func (myDataset *Dataset) Maturities() []data.MaturityRecord {
	return myDataset.maturities
}

// Risks returns the FIDC table VII rows.
func (myDataset *Dataset) Risks() []data.RiskRecord {
	return myDataset.risks
}

// Managers returns the sorted, de-duplicated, non-empty manager names found in
// the registry and offering tables.
func (myDataset *Dataset) Managers() []string {
	return myDataset.managers
}

// Administrators returns the sorted, non-empty administrator names of the
// registry.
func (myDataset *Dataset) Administrators() []string {
	return myDataset.administrators
}

// MarketAverage is the mean net assets of registered funds of fundType. Funds
// without a net asset value are left out of the mean; ok is false when no
// fund of that type has one.
func (myDataset *Dataset) MarketAverage(fundType string) (avg decimal.Decimal, ok bool) {
	avg, ok = myDataset.marketAverages[fundType]
	return
}
