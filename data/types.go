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
	"github.com/rs/zerolog"

	"github.com/penny-vault/fundview/normalize"
)

// FundRecord is one row of the fund registry (registro_fundo.csv).
type FundRecord struct {
	Administrator string `csv:"Administrador" json:"administrator"`
	Manager       string `csv:"Gestor" json:"manager"`
	Name          string `csv:"Denominacao_Social" json:"name"`
	FundType      string `csv:"Tipo_Fundo" json:"fund_type"`
	NetAssets     Amount `csv:"Patrimonio_Liquido" json:"net_assets"`
	TaxID         string `csv:"CNPJ_Fundo" json:"tax_id"`
}

// Normalize canonicalizes the identifier and name columns in place. It is
// only called by the loader, before the record is published.
func (fund *FundRecord) Normalize() {
	fund.TaxID = normalize.TaxID(fund.TaxID)
	fund.Manager = normalize.Name(fund.Manager)
	fund.Administrator = normalize.Name(fund.Administrator)
}

func (fund *FundRecord) MarshalZerologObject(e *zerolog.Event) {
	e.Str("TaxID", fund.TaxID)
	e.Str("Name", fund.Name)
	e.Str("Manager", fund.Manager)
	e.Str("Administrator", fund.Administrator)
	e.Str("FundType", fund.FundType)
}

// OfferingRecord is one row of the Resolution 160 offerings table
// (oferta_resolucao_160.csv).
type OfferingRecord struct {
	RequestNumber        string `csv:"Numero_Requerimento" json:"request_number"`
	IssuerName           string `csv:"Nome_Emissor" json:"issuer_name"`
	IssuerTaxID          string `csv:"CNPJ_Emissor" json:"issuer_tax_id"`
	LeadName             string `csv:"Nome_Lider" json:"lead_name"`
	Manager              string `csv:"Gestor" json:"manager"`
	OfferingType         string `csv:"Tipo_Oferta" json:"offering_type"`
	TotalRegisteredValue Amount `csv:"Valor_Total_Registrado" json:"total_registered_value"`
	Status               string `csv:"Status_Requerimento" json:"status"`
}

func (offering *OfferingRecord) Normalize() {
	offering.IssuerTaxID = normalize.TaxID(offering.IssuerTaxID)
	offering.IssuerName = normalize.Name(offering.IssuerName)
	offering.LeadName = normalize.Name(offering.LeadName)
	offering.Manager = normalize.Name(offering.Manager)
}

func (offering *OfferingRecord) MarshalZerologObject(e *zerolog.Event) {
	e.Str("RequestNumber", offering.RequestNumber)
	e.Str("IssuerTaxID", offering.IssuerTaxID)
	e.Str("IssuerName", offering.IssuerName)
	e.Str("Manager", offering.Manager)
	e.Str("Status", offering.Status)
}

// SectorRecord is one row of FIDC monthly table II: the portfolio broken down
// by economic sector, with the financial sector further split into
// sub-categories.
type SectorRecord struct {
	FundTaxID string `csv:"CNPJ_FUNDO_CLASSE"`
	FundName  string `csv:"DENOM_SOCIAL"`
	Portfolio Amount `csv:"TAB_II_VL_CARTEIRA"`

	Industrial   Amount `csv:"TAB_II_A_VL_INDUST"`
	RealEstate   Amount `csv:"TAB_II_B_VL_IMOBIL"`
	Commercial   Amount `csv:"TAB_II_C_VL_COMERC"`
	Services     Amount `csv:"TAB_II_D_VL_SERV"`
	Agribusiness Amount `csv:"TAB_II_E_VL_AGRONEG"`
	Financial    Amount `csv:"TAB_II_F_VL_FINANC"`
	Credit       Amount `csv:"TAB_II_G_VL_CREDITO"`
	Factoring    Amount `csv:"TAB_II_H_VL_FACTOR"`
	PublicSector Amount `csv:"TAB_II_I_VL_SETOR_PUBLICO"`
	Judicial     Amount `csv:"TAB_II_J_VL_JUDICIAL"`
	Brand        Amount `csv:"TAB_II_K_VL_MARCA"`

	PersonalCredit      Amount `csv:"TAB_II_F1_VL_CRED_PESSOA"`
	PayrollCredit       Amount `csv:"TAB_II_F2_VL_CRED_PESSOA_CONSIG"`
	CorporateCredit     Amount `csv:"TAB_II_F3_VL_CRED_CORP"`
	MiddleMarket        Amount `csv:"TAB_II_F4_VL_MIDMARKET"`
	VehicleFinancing    Amount `csv:"TAB_II_F5_VL_VEICULO"`
	CommercialMortgage  Amount `csv:"TAB_II_F6_VL_IMOBIL_EMPRESA"`
	ResidentialMortgage Amount `csv:"TAB_II_F7_VL_IMOBIL_RESID"`
	OtherFinancial      Amount `csv:"TAB_II_F8_VL_OUTRO"`
}

func (record *SectorRecord) Normalize() {
	record.FundTaxID = normalize.TaxID(record.FundTaxID)
}

// MaturityRecord is one row of FIDC monthly table VI: receivables by time to
// maturity.
type MaturityRecord struct {
	FundTaxID string `csv:"CNPJ_FUNDO_CLASSE"`
	FundName  string `csv:"DENOM_SOCIAL"`

	Days30     Amount `csv:"TAB_VI_A1_VL_PRAZO_VENC_30"`
	Days60     Amount `csv:"TAB_VI_A2_VL_PRAZO_VENC_60"`
	Days90     Amount `csv:"TAB_VI_A3_VL_PRAZO_VENC_90"`
	Days180    Amount `csv:"TAB_VI_A6_VL_PRAZO_VENC_180"`
	Days360    Amount `csv:"TAB_VI_A7_VL_PRAZO_VENC_360"`
	Days720    Amount `csv:"TAB_VI_A8_VL_PRAZO_VENC_720"`
	Days1080   Amount `csv:"TAB_VI_A9_VL_PRAZO_VENC_1080"`
	Beyond1080 Amount `csv:"TAB_VI_A10_VL_PRAZO_VENC_MAIOR_1080"`
}

func (record *MaturityRecord) Normalize() {
	record.FundTaxID = normalize.TaxID(record.FundTaxID)
}

// RiskRecord is one row of FIDC monthly table VII: receivables with and
// without acquisition risk, and the delinquent amount.
type RiskRecord struct {
	FundTaxID string `csv:"CNPJ_FUNDO_CLASSE"`
	FundName  string `csv:"DENOM_SOCIAL"`

	AtRisk     Amount `csv:"TAB_VII_A1_2_VL_DIRCRED_RISCO"`
	NotAtRisk  Amount `csv:"TAB_VII_A2_2_VL_DIRCRED_SEM_RISCO"`
	Delinquent Amount `csv:"TAB_VII_A5_2_VL_DIRCRED_INAD"`
}

func (record *RiskRecord) Normalize() {
	record.FundTaxID = normalize.TaxID(record.FundTaxID)
}
