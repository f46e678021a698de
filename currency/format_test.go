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
package currency_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/penny-vault/fundview/currency"
)

var _ = Describe("Formatter", func() {
	var formatter *currency.Formatter

	BeforeEach(func() {
		formatter = currency.New("BRL")
	})

	It("uses the real symbol", func() {
		Expect(formatter.Symbol).To(Equal("R$"))
	})

	It("falls back to the code for unknown currencies", func() {
		Expect(currency.New("XYZ").Symbol).To(Equal("XYZ"))
	})

	It("defaults to BRL", func() {
		Expect(currency.New("").Symbol).To(Equal("R$"))
		Expect(currency.New("").Code).To(Equal(currency.DefaultCode))
	})

	It("canonicalizes the code", func() {
		formatter := currency.New(" usd ")
		Expect(formatter.Code).To(Equal("USD"))
		Expect(formatter.Symbol).To(Equal("$"))
	})

	DescribeTable("Large",
		func(value int64, expected string) {
			Expect(formatter.Large(decimal.NewFromInt(value))).To(Equal(expected))
		},
		Entry("billions", int64(1_500_000_000), "R$ 1.5B"),
		Entry("exactly one billion", int64(1_000_000_000), "R$ 1.0B"),
		Entry("millions", int64(2_300_000), "R$ 2.3M"),
		Entry("exactly one million", int64(1_000_000), "R$ 1.0M"),
		Entry("just under a million", int64(999_999), "R$ 999,999"),
		Entry("hundreds", int64(950), "R$ 950"),
		Entry("thousands are grouped", int64(12_345), "R$ 12,345"),
		Entry("zero", int64(0), "R$ 0"),
		Entry("negative millions use the magnitude", int64(-2_300_000), "R$ -2.3M"),
		Entry("negative small values", int64(-5_000), "R$ -5,000"),
	)

	It("rounds sub-million fractions to an integer", func() {
		Expect(formatter.Large(decimal.RequireFromString("1234.56"))).To(Equal("R$ 1,235"))
	})

	It("renders ratios as percentages", func() {
		Expect(formatter.Percent(decimal.RequireFromString("0.125"))).To(Equal("12.5%"))
		Expect(formatter.Percent(decimal.Zero)).To(Equal("0.0%"))
	})
})
