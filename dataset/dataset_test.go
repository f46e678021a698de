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
package dataset_test

import (
	"context"
	"errors"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/penny-vault/fundview/data"
	"github.com/penny-vault/fundview/dataset"
)

var _ = Describe("Load", func() {
	var (
		ctx     context.Context
		sources dataset.Sources
	)

	BeforeEach(func() {
		ctx = context.Background()
		sources = writeFixtures(tempDir())
	})

	It("normalizes identifiers and names of every table", func() {
		myDataset, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		funds := myDataset.Funds()
		Expect(funds).To(HaveLen(4))
		Expect(funds[0].TaxID).To(Equal("12345678000199"))
		Expect(funds[0].Manager).To(Equal("GESTÃO ALFA LTDA"))
		Expect(funds[0].Administrator).To(Equal("BANCO ADM SA"))
		Expect(funds[0].Name).To(Equal("FIDC Alfa"))
		Expect(funds[0].NetAssets.Value.Equal(decimal.RequireFromString("1000000.50"))).To(BeTrue())
		Expect(funds[2].NetAssets.Valid).To(BeFalse())

		offerings := myDataset.Offerings()
		Expect(offerings).To(HaveLen(2))
		Expect(offerings[0].IssuerTaxID).To(Equal("33333333000133"))
		Expect(offerings[0].IssuerName).To(Equal("EMISSOR UM SA"))
		Expect(offerings[0].LeadName).To(Equal("LÍDER DTVM"))
		Expect(offerings[0].Status).To(Equal("Concedido"))
		Expect(offerings[0].TotalRegisteredValue.Value.Equal(decimal.NewFromInt(1_500_000))).To(BeTrue())

		Expect(myDataset.Sectors()[0].FundTaxID).To(Equal("12345678000199"))
		Expect(myDataset.Maturities()[0].FundTaxID).To(Equal("12345678000199"))
		Expect(myDataset.Risks()[0].FundTaxID).To(Equal("12345678000199"))
		Expect(myDataset.Risks()[0].NotAtRisk.Valid).To(BeFalse())
	})

	It("skips rows with the wrong column count and counts them", func() {
		myDataset, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		stats, ok := myDataset.Stats(data.RegistryKey)
		Expect(ok).To(BeTrue())
		Expect(stats.Rows).To(Equal(4))
		Expect(stats.Skipped).To(Equal(1))
		Expect(stats.Size).To(BeNumerically(">", 0))
	})

	It("keeps a stray quote inside its own row", func() {
		writeLatin1(sources.Path(data.RegistryKey), `CNPJ_Fundo;Denominacao_Social;Tipo_Fundo;Patrimonio_Liquido;Administrador;Gestor
11.111.111/0001-11;"Fundo Gama;FIA;100;Outro Adm;Beta Capital
12.345.678/0001-99;FIDC Alfa;FIDC;1000;Banco Adm S.A.;Gestão Alfa Ltda.
98.765.432/0001-10;FIDC Beta;FIDC;3000;Banco Adm S.A.;Gestão Alfa Ltda.
`)

		myDataset, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())
		Expect(myDataset.Funds()).To(HaveLen(2))
		Expect(myDataset.Funds()[1].Name).To(Equal("FIDC Beta"))

		stats, ok := myDataset.Stats(data.RegistryKey)
		Expect(ok).To(BeTrue())
		Expect(stats.Skipped).To(Equal(1))
	})

	It("skips utf-8 rows that do not decode", func() {
		sources.Encoding = "utf-8"
		registry := "CNPJ_Fundo;Denominacao_Social;Tipo_Fundo;Patrimonio_Liquido;Administrador;Gestor\n" +
			"12.345.678/0001-99;FIDC Alfa;FIDC;1000;Banco Adm S.A.;Gestão Alfa Ltda.\n" +
			"98.765.432/0001-10;FIDC Beta;FIDC;3000;Banco Adm S.A.;Gest\xe3o Alfa Ltda.\n"
		Expect(os.WriteFile(sources.Path(data.RegistryKey), []byte(registry), 0o644)).To(Succeed())
		Expect(os.WriteFile(sources.Path(data.OfferingsKey), []byte(offeringsFixture), 0o644)).To(Succeed())

		myDataset, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())
		Expect(myDataset.Funds()).To(HaveLen(1))
		Expect(myDataset.Funds()[0].Manager).To(Equal("GESTÃO ALFA LTDA"))

		stats, ok := myDataset.Stats(data.RegistryKey)
		Expect(ok).To(BeTrue())
		Expect(stats.Skipped).To(Equal(1))
	})

	It("builds the selectable manager list from registry and offerings", func() {
		myDataset, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())
		Expect(myDataset.Managers()).To(Equal([]string{"BETA CAPITAL", "GESTÃO ALFA LTDA", "ZETA INVESTIMENTOS"}))
		Expect(myDataset.Administrators()).To(Equal([]string{"BANCO ADM SA", "OUTRO ADM"}))
	})

	It("averages net assets per fund type ignoring missing values", func() {
		myDataset, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		avg, ok := myDataset.MarketAverage("FIDC")
		Expect(ok).To(BeTrue())
		Expect(avg.Equal(decimal.RequireFromString("2000000.25"))).To(BeTrue())

		avg, ok = myDataset.MarketAverage("FIA")
		Expect(ok).To(BeTrue())
		Expect(avg.Equal(decimal.NewFromInt(500))).To(BeTrue())

		_, ok = myDataset.MarketAverage("FII")
		Expect(ok).To(BeFalse())
	})

	It("fails with the missing columns named", func() {
		writeLatin1(sources.Path(data.RiskKey), "CNPJ_FUNDO_CLASSE;DENOM_SOCIAL\n1;x\n")

		_, err := dataset.Load(ctx, sources)
		var missing *dataset.MissingColumnsError
		Expect(errors.As(err, &missing)).To(BeTrue())
		Expect(missing.Table).To(Equal(data.Tables[data.RiskKey].Name))
		Expect(missing.Columns).To(ConsistOf(
			"TAB_VII_A1_2_VL_DIRCRED_RISCO", "TAB_VII_A2_2_VL_DIRCRED_SEM_RISCO", "TAB_VII_A5_2_VL_DIRCRED_INAD",
		))
	})

	It("treats an empty file as missing every column", func() {
		writeLatin1(sources.Path(data.MaturityKey), "")

		_, err := dataset.Load(ctx, sources)
		var missing *dataset.MissingColumnsError
		Expect(errors.As(err, &missing)).To(BeTrue())
		Expect(missing.Columns).To(Equal(data.Tables[data.MaturityKey].Columns))
	})

	It("rejects unknown encodings", func() {
		sources.Encoding = "ebcdic"
		_, err := dataset.Load(ctx, sources)
		Expect(errors.Is(err, dataset.ErrUnknownEncoding)).To(BeTrue())
	})

	It("reports missing files", func() {
		Expect(os.Remove(sources.Path(data.OfferingsKey))).To(Succeed())
		_, err := dataset.Load(ctx, sources)
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	It("accepts a header-only table", func() {
		writeLatin1(sources.Path(data.MaturityKey), tableFixture(data.MaturityKey))
		myDataset, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())
		Expect(myDataset.Maturities()).To(BeEmpty())
	})

	It("stops when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := dataset.Load(cancelled, sources)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("yields identical tables when loaded twice", func() {
		first, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())
		second, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		Expect(second.Funds()).To(Equal(first.Funds()))
		Expect(second.Offerings()).To(Equal(first.Offerings()))
		Expect(second.Sectors()).To(Equal(first.Sectors()))
		Expect(second.Maturities()).To(Equal(first.Maturities()))
		Expect(second.Risks()).To(Equal(first.Risks()))
		Expect(second.Managers()).To(Equal(first.Managers()))
	})

	It("describes itself in markdown", func() {
		myDataset, err := dataset.Load(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		summary, err := myDataset.Summary()
		Expect(err).NotTo(HaveOccurred())
		Expect(summary).To(ContainSubstring("# Dataset"))
		Expect(summary).To(ContainSubstring("Managers: 3"))
		for _, key := range data.TableKeys {
			Expect(summary).To(ContainSubstring(data.Tables[key].Name))
		}
	})
})

var _ = Describe("New", func() {
	It("copies the tables it is given", func() {
		funds := []data.FundRecord{{Manager: "A", TaxID: "00000000000001"}}
		myDataset := dataset.New(dataset.DefaultSources(), dataset.Tables{Funds: funds})
		funds[0].Manager = "B"

		Expect(myDataset.Funds()[0].Manager).To(Equal("A"))
		Expect(myDataset.Managers()).To(Equal([]string{"A"}))
	})
})

var _ = Describe("Cache", func() {
	var (
		ctx     context.Context
		sources dataset.Sources
		loads   int
		cache   *dataset.Cache
	)

	BeforeEach(func() {
		ctx = context.Background()
		sources = writeFixtures(tempDir())
		loads = 0
		cache = dataset.NewCacheWithLoader(func(ctx context.Context, sources dataset.Sources) (*dataset.Dataset, error) {
			loads++
			return dataset.Load(ctx, sources)
		})
	})

	It("serves warm reads without re-reading files", func() {
		cold, err := cache.Get(ctx, sources)
		Expect(err).NotTo(HaveOccurred())
		warm, err := cache.Get(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		Expect(loads).To(Equal(1))
		Expect(warm).To(BeIdenticalTo(cold))
		Expect(cache.Len()).To(Equal(1))
	})

	It("reloads when a source file changes", func() {
		cold, err := cache.Get(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		later := time.Now().Add(time.Hour)
		Expect(os.Chtimes(sources.Path(data.RiskKey), later, later)).To(Succeed())

		fresh, err := cache.Get(ctx, sources)
		Expect(err).NotTo(HaveOccurred())
		Expect(loads).To(Equal(2))
		Expect(fresh).NotTo(BeIdenticalTo(cold))
		Expect(fresh.Funds()).To(Equal(cold.Funds()))
	})

	It("keys entries by the source file set", func() {
		_, err := cache.Get(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		other := writeFixtures(tempDir())
		_, err = cache.Get(ctx, other)
		Expect(err).NotTo(HaveOccurred())

		Expect(loads).To(Equal(2))
		Expect(cache.Len()).To(Equal(2))
	})

	It("forgets invalidated and purged entries", func() {
		_, err := cache.Get(ctx, sources)
		Expect(err).NotTo(HaveOccurred())

		cache.Invalidate(sources)
		Expect(cache.Len()).To(Equal(0))

		_, err = cache.Get(ctx, sources)
		Expect(err).NotTo(HaveOccurred())
		Expect(loads).To(Equal(2))

		cache.Purge()
		Expect(cache.Len()).To(Equal(0))
	})

	It("does not cache failed loads", func() {
		Expect(os.Remove(sources.Path(data.RegistryKey))).To(Succeed())
		_, err := cache.Get(ctx, sources)
		Expect(err).To(HaveOccurred())
		Expect(cache.Len()).To(Equal(0))
	})
})
