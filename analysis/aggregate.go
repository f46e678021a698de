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
	"sort"

	"github.com/shopspring/decimal"

	"github.com/penny-vault/fundview/data"
)

// Category is one slice of a breakdown chart.
type Category struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// RiskTotals sums table VII.
type RiskTotals struct {
	AtRisk     decimal.Decimal `json:"at_risk"`
	NotAtRisk  decimal.Decimal `json:"not_at_risk"`
	Delinquent decimal.Decimal `json:"delinquent"`
}

// FundValue ranks a receivable fund by portfolio size.
type FundValue struct {
	TaxID string          `json:"tax_id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// FundRatio ranks a receivable fund by delinquency.
type FundRatio struct {
	TaxID string          `json:"tax_id"`
	Name  string          `json:"name"`
	Ratio decimal.Decimal `json:"ratio"`
}

// Receivables is everything the FIDC section of a report shows.
type Receivables struct {
	NumFunds    int         `json:"num_funds"`
	Risk        RiskTotals  `json:"risk"`
	Sectors     []Category  `json:"sectors"`
	Financial   []Category  `json:"financial"`
	Maturity    []Category  `json:"maturity"`
	Portfolios  []FundValue `json:"portfolios"`
	Delinquency []FundRatio `json:"delinquency"`
}

type sectorColumn struct {
	name  string
	value func(*data.SectorRecord) data.Amount
}

var sectorColumns = []sectorColumn{
	{"Industrial", func(r *data.SectorRecord) data.Amount { return r.Industrial }},
	{"Imobiliário", func(r *data.SectorRecord) data.Amount { return r.RealEstate }},
	{"Comercial", func(r *data.SectorRecord) data.Amount { return r.Commercial }},
	{"Serviços", func(r *data.SectorRecord) data.Amount { return r.Services }},
	{"Agronegócio", func(r *data.SectorRecord) data.Amount { return r.Agribusiness }},
	{"Financeiro", func(r *data.SectorRecord) data.Amount { return r.Financial }},
	{"Crédito", func(r *data.SectorRecord) data.Amount { return r.Credit }},
	{"Factoring", func(r *data.SectorRecord) data.Amount { return r.Factoring }},
	{"Setor Público", func(r *data.SectorRecord) data.Amount { return r.PublicSector }},
	{"Judicial", func(r *data.SectorRecord) data.Amount { return r.Judicial }},
	{"Marca", func(r *data.SectorRecord) data.Amount { return r.Brand }},
}

var financialColumns = []sectorColumn{
	{"Crédito Pessoal", func(r *data.SectorRecord) data.Amount { return r.PersonalCredit }},
	{"Crédito Consignado", func(r *data.SectorRecord) data.Amount { return r.PayrollCredit }},
	{"Crédito Corporativo", func(r *data.SectorRecord) data.Amount { return r.CorporateCredit }},
	{"Middle Market", func(r *data.SectorRecord) data.Amount { return r.MiddleMarket }},
	{"Financ. Veículos", func(r *data.SectorRecord) data.Amount { return r.VehicleFinancing }},
	{"Financ. Imob. Empresarial", func(r *data.SectorRecord) data.Amount { return r.CommercialMortgage }},
	{"Financ. Imob. Residencial", func(r *data.SectorRecord) data.Amount { return r.ResidentialMortgage }},
	{"Outros", func(r *data.SectorRecord) data.Amount { return r.OtherFinancial }},
}

type maturityBucket struct {
	name  string
	value func(*data.MaturityRecord) decimal.Decimal
}

var maturityBuckets = []maturityBucket{
	{"30 dias", func(r *data.MaturityRecord) decimal.Decimal { return r.Days30.Value }},
	{"60 dias", func(r *data.MaturityRecord) decimal.Decimal { return r.Days60.Value }},
	{"90 dias", func(r *data.MaturityRecord) decimal.Decimal { return r.Days90.Value }},
	{"180 dias", func(r *data.MaturityRecord) decimal.Decimal { return r.Days180.Value }},
	{"360 dias", func(r *data.MaturityRecord) decimal.Decimal { return r.Days360.Value }},
	{"Acima de 360 dias", func(r *data.MaturityRecord) decimal.Decimal {
		return data.Sum(r.Days720, r.Days1080, r.Beyond1080)
	}},
}

// Aggregate computes the receivable-fund section from the three monthly
// tables.
func Aggregate(sectors []data.SectorRecord, maturities []data.MaturityRecord, risks []data.RiskRecord) Receivables {
	return Receivables{
		NumFunds:    len(sectors),
		Risk:        SumRisk(risks),
		Sectors:     SectorBreakdown(sectors),
		Financial:   FinancialBreakdown(sectors),
		Maturity:    MaturityLadder(maturities),
		Portfolios:  RankPortfolios(sectors),
		Delinquency: RankDelinquency(risks),
	}
}

// SumRisk totals receivables with and without risk and the delinquent amount.
func SumRisk(risks []data.RiskRecord) RiskTotals {
	var totals RiskTotals
	for i := range risks {
		totals.AtRisk = totals.AtRisk.Add(risks[i].AtRisk.Value)
		totals.NotAtRisk = totals.NotAtRisk.Add(risks[i].NotAtRisk.Value)
		totals.Delinquent = totals.Delinquent.Add(risks[i].Delinquent.Value)
	}
	return totals
}

// SectorBreakdown sums the eleven economic sectors, in fixed order, keeping
// only sectors with a positive total.
func SectorBreakdown(sectors []data.SectorRecord) []Category {
	return breakdown(sectors, sectorColumns)
}

// FinancialBreakdown sums the eight sub-categories of the financial sector,
// keeping only positive totals.
func FinancialBreakdown(sectors []data.SectorRecord) []Category {
	return breakdown(sectors, financialColumns)
}

func breakdown(sectors []data.SectorRecord, columns []sectorColumn) []Category {
	totals := make([]Category, len(columns))
	for i, col := range columns {
		totals[i].Name = col.name
		for j := range sectors {
			totals[i].Value = totals[i].Value.Add(col.value(&sectors[j]).Value)
		}
	}
	return positive(totals)
}

// MaturityLadder sums receivables into six buckets; the last one collects
// everything beyond 360 days.
func MaturityLadder(maturities []data.MaturityRecord) []Category {
	totals := make([]Category, len(maturityBuckets))
	for i, bucket := range maturityBuckets {
		totals[i].Name = bucket.name
		for j := range maturities {
			totals[i].Value = totals[i].Value.Add(bucket.value(&maturities[j]))
		}
	}
	return positive(totals)
}

func positive(categories []Category) []Category {
	kept := make([]Category, 0, len(categories))
	for _, category := range categories {
		if category.Value.IsPositive() {
			kept = append(kept, category)
		}
	}
	return kept
}

// DelinquencyRatio is delinquent / (at risk + not at risk), or zero when the
// denominator is zero.
func DelinquencyRatio(record data.RiskRecord) decimal.Decimal {
	total := record.AtRisk.Value.Add(record.NotAtRisk.Value)
	if total.IsZero() {
		return decimal.Zero
	}
	return record.Delinquent.Value.Div(total)
}

// RankDelinquency orders receivable funds by delinquency ratio, highest first.
// Ties keep table order.
func RankDelinquency(risks []data.RiskRecord) []FundRatio {
	ranked := make([]FundRatio, len(risks))
	for i, record := range risks {
		ranked[i] = FundRatio{TaxID: record.FundTaxID, Name: record.FundName, Ratio: DelinquencyRatio(record)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Ratio.GreaterThan(ranked[j].Ratio)
	})
	return ranked
}

// RankPortfolios orders receivable funds by total portfolio value, highest
// first. Ties keep table order.
func RankPortfolios(sectors []data.SectorRecord) []FundValue {
	ranked := make([]FundValue, len(sectors))
	for i, record := range sectors {
		ranked[i] = FundValue{TaxID: record.FundTaxID, Name: record.FundName, Value: record.Portfolio.Value}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value.GreaterThan(ranked[j].Value)
	})
	return ranked
}
