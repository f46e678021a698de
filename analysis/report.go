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
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/penny-vault/fundview/data"
	"github.com/penny-vault/fundview/dataset"
	"github.com/penny-vault/fundview/normalize"
)

// Scope says whether the receivable-fund section of a report covers the
// selected name or, because none of its funds file FIDC reports, the whole
// market.
type Scope string

const (
	ScopeManager Scope = "manager"
	ScopeGeneral Scope = "general"
)

// FundComparison puts a registered fund next to the mean net assets of all
// registered funds of the same type.
type FundComparison struct {
	data.FundRecord
	MarketAverage    decimal.Decimal `json:"market_average"`
	HasMarketAverage bool            `json:"has_market_average"`
}

// Report is the complete, display-ready result for one selection.
type Report struct {
	ID          uuid.UUID             `json:"id"`
	Role        Role                  `json:"role"`
	Name        string                `json:"name"`
	Scope       Scope                 `json:"scope"`
	GeneratedAt time.Time             `json:"generated_at"`
	Funds       []FundComparison      `json:"funds"`
	Offerings   []data.OfferingRecord `json:"offerings"`
	Receivables Receivables           `json:"receivables"`
}

// Build filters the dataset for name and aggregates the result. name is
// normalized first and must be one of Selectable(role). When none of the
// receivable-fund tables has a row for the selection, the entire tables are
// aggregated instead and the report Scope is ScopeGeneral.
func Build(ctx context.Context, myDataset *dataset.Dataset, role Role, name string) (*Report, error) {
	normalized := normalize.Name(name)
	if !isSelectable(myDataset, role, normalized) {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownEntity, role, name)
	}

	report := &Report{
		ID:          uuid.New(),
		Role:        role,
		Name:        normalized,
		Scope:       ScopeManager,
		GeneratedAt: time.Now(),
	}

	logger := zerolog.Ctx(ctx).With().Str("ReportID", report.ID.String()).Str("Name", normalized).Logger()

	view := Filter(myDataset, role, normalized)
	for i := range view.Funds {
		logger.Debug().Object("Fund", &view.Funds[i]).Msg("matched fund")
	}
	for i := range view.Offerings {
		logger.Debug().Object("Offering", &view.Offerings[i]).Msg("matched offering")
	}

	report.Funds = compareToMarket(myDataset, view.Funds)
	report.Offerings = view.Offerings

	sectors, maturities, risks := view.Sectors, view.Maturities, view.Risks
	if !view.HasReceivables() {
		logger.Info().Msg("no receivable funds matched, using general scope")
		report.Scope = ScopeGeneral
		sectors, maturities, risks = myDataset.Sectors(), myDataset.Maturities(), myDataset.Risks()
	}

	report.Receivables = Aggregate(sectors, maturities, risks)

	logger.Debug().Int("NumFunds", len(report.Funds)).Int("NumOfferings", len(report.Offerings)).
		Int("NumReceivableFunds", report.Receivables.NumFunds).Str("Scope", string(report.Scope)).Msg("report built")

	return report, nil
}

func compareToMarket(myDataset *dataset.Dataset, funds []data.FundRecord) []FundComparison {
	comparisons := make([]FundComparison, len(funds))
	for i, fund := range funds {
		avg, ok := myDataset.MarketAverage(fund.FundType)
		comparisons[i] = FundComparison{FundRecord: fund, MarketAverage: avg, HasMarketAverage: ok}
	}
	return comparisons
}
