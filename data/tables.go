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
package data

import (
	"reflect"
	"strings"
)

// Table describes one source extract and the columns it must provide.
type Table struct {
	Key         string
	Name        string
	Description string
	FileName    string
	Columns     []string
}

const (
	RegistryKey  = "registry"
	OfferingsKey = "offerings"
	SectorKey    = "sector"
	MaturityKey  = "maturity"
	RiskKey      = "risk"
)

// TableKeys lists the tables in load order.
var TableKeys = []string{RegistryKey, OfferingsKey, SectorKey, MaturityKey, RiskKey}

var Tables = map[string]*Table{
	RegistryKey: {
		Key:         RegistryKey,
		Name:        "Fund registry",
		Description: "Registered investment funds with their administrator, manager, type and net assets.",
		FileName:    "registro_fundo.csv",
		Columns:     csvColumns(FundRecord{}),
	},
	OfferingsKey: {
		Key:         OfferingsKey,
		Name:        "Public offerings (Resolution 160)",
		Description: "Offering filings with issuer, lead underwriter, manager, registered value and status.",
		FileName:    "oferta_resolucao_160.csv",
		Columns:     csvColumns(OfferingRecord{}),
	},
	SectorKey: {
		Key:         SectorKey,
		Name:        "FIDC monthly table II",
		Description: "Receivable-fund portfolio composition by economic sector.",
		FileName:    "inf_mensal_fidc_202502/inf_mensal_fidc_tab_II_202502.csv",
		Columns:     csvColumns(SectorRecord{}),
	},
	MaturityKey: {
		Key:         MaturityKey,
		Name:        "FIDC monthly table VI",
		Description: "Receivable-fund credit rights by time to maturity.",
		FileName:    "inf_mensal_fidc_202502/inf_mensal_fidc_tab_VI_202502.csv",
		Columns:     csvColumns(MaturityRecord{}),
	},
	RiskKey: {
		Key:         RiskKey,
		Name:        "FIDC monthly table VII",
		Description: "Receivable-fund credit rights with and without risk, and delinquent amounts.",
		FileName:    "inf_mensal_fidc_202502/inf_mensal_fidc_tab_VII_202502.csv",
		Columns:     csvColumns(RiskRecord{}),
	},
}

// csvColumns returns the csv tag of every field of record, in field order.
func csvColumns(record any) []string {
	t := reflect.TypeOf(record)
	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("csv")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		columns = append(columns, name)
	}
	return columns
}
