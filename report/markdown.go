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
package report

import (
	"fmt"
	"strings"

	"github.com/penny-vault/fundview/analysis"
	"github.com/penny-vault/fundview/currency"
	"github.com/penny-vault/fundview/data"
)

// Title is the text-only header used when no banner is configured.
const Title = "Dashboard de Fundos de Investimentos"

const (
	generalTitle = "Geral (Todos os FIDCs)"
	missing      = "n/d"
	dateLayout   = "02/01/2006"
)

type options struct {
	headingIDs   bool
	inlineNotice bool
}

// Markdown renders the report as a markdown document: funds with their
// market comparison, offerings and the receivable-fund analysis.
func Markdown(myReport *analysis.Report, formatter *currency.Formatter) (string, error) {
	return markdown(myReport, formatter, options{inlineNotice: true})
}

func markdown(myReport *analysis.Report, formatter *currency.Formatter, opts options) (string, error) {
	if formatter == nil {
		formatter = currency.New(currency.DefaultCode)
	}

	builder := strings.Builder{}

	if _, err := builder.WriteString(fmt.Sprintf("# Dashboard - %s\n\n", myReport.Name)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("Relatório %s, %s\n\n",
		myReport.ID.String()[:8], roleLabel(myReport.Role))); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fundsSection(myReport, formatter, opts)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(offeringsSection(myReport, formatter)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(receivablesSection(myReport, formatter, opts)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("---\n\nAtualizado em: %s\n",
		myReport.GeneratedAt.Local().Format(dateLayout))); err != nil {
		return "", err
	}

	return builder.String(), nil
}

// Notice describes the scope of the receivable-fund section: either how many
// funds of the selection report to the monthly tables or that the whole
// market is shown instead.
func Notice(myReport *analysis.Report) string {
	if myReport.Scope == analysis.ScopeGeneral {
		return fmt.Sprintf("Não foram encontrados FIDCs específicos para a %s %s. Mostrando dados gerais.",
			entityLabel(myReport.Role), myReport.Name)
	}
	return fmt.Sprintf("Mostrando %d FIDCs %s por %s", myReport.Receivables.NumFunds,
		participle(myReport.Role), myReport.Name)
}

// Charts returns every chart of the report in document order. Chart IDs are
// unique within the report.
func Charts(myReport *analysis.Report, formatter *currency.Formatter) []*BarChart {
	if formatter == nil {
		formatter = currency.New(currency.DefaultCode)
	}

	charts := make([]*BarChart, 0, len(myReport.Funds)+5)
	for i := range myReport.Funds {
		if chart := fundChart(&myReport.Funds[i], formatter); chart != nil {
			charts = append(charts, chart)
		}
	}

	receivables := &myReport.Receivables
	subject := chartSubject(myReport)
	for _, chart := range []*BarChart{
		categoryChart("Distribuição da Carteira por Setor - "+subject, receivables.Sectors, formatter),
		portfolioChart(subject, receivables.Portfolios, formatter),
		categoryChart("Composição do Setor Financeiro - "+subject, receivables.Financial, formatter),
		categoryChart("Distribuição dos Direitos Creditórios por Prazo de Vencimento - "+subject, receivables.Maturity, formatter),
		delinquencyChart(subject, receivables.Delinquency, formatter),
	} {
		if chart.Len() > 0 {
			charts = append(charts, chart)
		}
	}

	uniqueIDs(charts)
	return charts
}

func fundsSection(myReport *analysis.Report, formatter *currency.Formatter, opts options) string {
	builder := strings.Builder{}
	builder.WriteString("## Fundos\n\n")

	if len(myReport.Funds) == 0 {
		builder.WriteString(fmt.Sprintf("Nenhum fundo encontrado para esta %s.\n\n", entityLabel(myReport.Role)))
		return builder.String()
	}

	charts := chartsByFund(myReport, formatter)
	for i := range myReport.Funds {
		fund := &myReport.Funds[i]
		builder.WriteString(fmt.Sprintf("### Fundo: %s\n\n", fund.Name))
		builder.WriteString(fmt.Sprintf("- **No que investe:** %s\n", orMissing(fund.FundType)))
		builder.WriteString(fmt.Sprintf("- **Caixa disponível:** %s\n", amount(fund.NetAssets, formatter)))
		builder.WriteString(fmt.Sprintf("- **Administrador:** %s\n", orMissing(fund.Administrator)))
		builder.WriteString(fmt.Sprintf("- **Gestor:** %s\n", orMissing(fund.Manager)))

		average := missing
		if fund.HasMarketAverage {
			average = formatter.Large(fund.MarketAverage)
		}
		builder.WriteString(fmt.Sprintf("- **Média do mercado (%s):** %s\n\n", orMissing(fund.FundType), average))

		if chart := charts[i]; chart != nil {
			builder.WriteString(chart.Markdown(opts.headingIDs))
		}
		builder.WriteString("---\n\n")
	}

	return builder.String()
}

func offeringsSection(myReport *analysis.Report, formatter *currency.Formatter) string {
	builder := strings.Builder{}
	builder.WriteString("## Ofertas\n\n")

	if len(myReport.Offerings) == 0 {
		builder.WriteString(fmt.Sprintf("Nenhuma oferta encontrada para esta %s.\n\n", entityLabel(myReport.Role)))
		return builder.String()
	}

	for i := range myReport.Offerings {
		offering := &myReport.Offerings[i]
		builder.WriteString(fmt.Sprintf("### Oferta: %s\n\n", orMissing(offering.RequestNumber)))
		builder.WriteString(fmt.Sprintf("- **Emissor:** %s\n", orMissing(offering.IssuerName)))
		builder.WriteString(fmt.Sprintf("- **CNPJ do Emissor:** %s\n", offering.IssuerTaxID))
		builder.WriteString(fmt.Sprintf("- **Líder:** %s\n", orMissing(offering.LeadName)))
		builder.WriteString(fmt.Sprintf("- **Tipo de Oferta:** %s\n", orMissing(offering.OfferingType)))
		builder.WriteString(fmt.Sprintf("- **Valor Total Registrado:** %s\n", amount(offering.TotalRegisteredValue, formatter)))
		builder.WriteString(fmt.Sprintf("- **Status:** %s\n\n---\n\n", orMissing(offering.Status)))
	}

	return builder.String()
}

func receivablesSection(myReport *analysis.Report, formatter *currency.Formatter, opts options) string {
	receivables := &myReport.Receivables
	subject := chartSubject(myReport)
	entity := entityLabel(myReport.Role)

	builder := strings.Builder{}
	builder.WriteString("## Análise de FIDCs\n\n")

	if opts.inlineNotice {
		builder.WriteString(fmt.Sprintf("> %s\n\n", Notice(myReport)))
	}

	builder.WriteString(fmt.Sprintf("- **Dir. Creditórios com Risco:** %s\n", formatter.Large(receivables.Risk.AtRisk)))
	builder.WriteString(fmt.Sprintf("- **Dir. Creditórios sem Risco:** %s\n", formatter.Large(receivables.Risk.NotAtRisk)))
	builder.WriteString(fmt.Sprintf("- **Valor Inadimplente:** %s\n\n", formatter.Large(receivables.Risk.Delinquent)))

	builder.WriteString("### Análise Setorial\n\n")
	builder.WriteString(chartOrInfo(
		categoryChart("Distribuição da Carteira por Setor - "+subject, receivables.Sectors, formatter),
		"Não há dados setoriais disponíveis para esta "+entity+".", opts))

	if receivables.NumFunds > 0 {
		builder.WriteString("### FIDCs por Valor Total da Carteira\n\n")
		builder.WriteString(chartOrInfo(portfolioChart(subject, receivables.Portfolios, formatter),
			"Não há dados de carteira disponíveis para esta "+entity+".", opts))

		builder.WriteString("### Detalhamento do Setor Financeiro\n\n")
		builder.WriteString(chartOrInfo(
			categoryChart("Composição do Setor Financeiro - "+subject, receivables.Financial, formatter),
			"Não há dados do setor financeiro disponíveis para esta "+entity+".", opts))
	}

	builder.WriteString("### Análise de Prazos e Vencimentos\n\n")
	builder.WriteString(chartOrInfo(
		categoryChart("Distribuição dos Direitos Creditórios por Prazo de Vencimento - "+subject, receivables.Maturity, formatter),
		"Não há dados de prazos disponíveis para esta "+entity+".", opts))

	builder.WriteString("### Análise de Inadimplência\n\n")
	builder.WriteString(chartOrInfo(delinquencyChart(subject, receivables.Delinquency, formatter),
		"Não há dados de inadimplência disponíveis para esta "+entity+".", opts))

	return builder.String()
}

func chartOrInfo(chart *BarChart, info string, opts options) string {
	if chart.Len() == 0 {
		return fmt.Sprintf("_%s_\n\n", info)
	}
	return chart.Markdown(opts.headingIDs)
}

// chartsByFund returns the comparison chart of each fund, nil where the fund
// type has no market average, with IDs matching those of Charts.
func chartsByFund(myReport *analysis.Report, formatter *currency.Formatter) []*BarChart {
	byFund := make([]*BarChart, len(myReport.Funds))
	charts := Charts(myReport, formatter)

	next := 0
	for i := range myReport.Funds {
		if !myReport.Funds[i].HasMarketAverage {
			continue
		}
		byFund[i] = charts[next]
		next++
	}
	return byFund
}

func fundChart(fund *analysis.FundComparison, formatter *currency.Formatter) *BarChart {
	if !fund.HasMarketAverage {
		return nil
	}

	chart := NewBarChart("Comparação com o Mercado - " + fund.Name)
	chart.Add("Este Fundo", fund.NetAssets.Value, amount(fund.NetAssets, formatter))
	chart.Add("Média do Mercado", fund.MarketAverage, formatter.Large(fund.MarketAverage))
	return chart
}

func categoryChart(title string, categories []analysis.Category, formatter *currency.Formatter) *BarChart {
	chart := NewBarChart(title)
	for _, category := range categories {
		chart.Add(category.Name, category.Value, formatter.Large(category.Value))
	}
	return chart
}

func portfolioChart(subject string, portfolios []analysis.FundValue, formatter *currency.Formatter) *BarChart {
	chart := NewBarChart("FIDCs por Valor Total da Carteira - " + subject)
	for _, fund := range portfolios {
		chart.Add(fund.Name, fund.Value, formatter.Large(fund.Value))
	}
	return chart
}

func delinquencyChart(subject string, ratios []analysis.FundRatio, formatter *currency.Formatter) *BarChart {
	chart := NewBarChart("Taxa de Inadimplência (%) por FIDC - " + subject)
	for _, fund := range ratios {
		chart.Add(fund.Name, fund.Ratio, formatter.Percent(fund.Ratio))
	}
	return chart
}

func uniqueIDs(charts []*BarChart) {
	seen := make(map[string]bool, len(charts))
	for _, chart := range charts {
		id := chart.ID
		for n := 2; seen[id]; n++ {
			id = fmt.Sprintf("%s-%d", chart.ID, n)
		}
		chart.ID = id
		seen[id] = true
	}
}

func chartSubject(myReport *analysis.Report) string {
	if myReport.Scope == analysis.ScopeGeneral {
		return generalTitle
	}
	return myReport.Name
}

func amount(value data.Amount, formatter *currency.Formatter) string {
	if !value.Valid {
		return missing
	}
	return formatter.Large(value.Value)
}

func orMissing(text string) string {
	if strings.TrimSpace(text) == "" {
		return missing
	}
	return text
}

func roleLabel(role analysis.Role) string {
	if role == analysis.RoleAdministrator {
		return "visão por administrador"
	}
	return "visão por gestor"
}

func entityLabel(role analysis.Role) string {
	if role == analysis.RoleAdministrator {
		return "administradora"
	}
	return "gestora"
}

func participle(role analysis.Role) string {
	if role == analysis.RoleAdministrator {
		return "administrados"
	}
	return "geridos"
}
