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
package report_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/fundview/report"
)

var _ = Describe("BarChart", func() {
	It("derives its ID from the title", func() {
		chart := report.NewBarChart("Análise Setorial - João Silva")
		Expect(chart.ID).To(Equal("analise-setorial-joao-silva"))
		Expect(chart.Width).To(Equal(report.DefaultBarWidth))
	})

	It("scales bars against the largest value", func() {
		chart := report.NewBarChart("scale")
		chart.Add("a", dec("100"), "100")
		chart.Add("b", dec("50"), "50")

		Expect(chart.BarLength(dec("100"))).To(Equal(report.DefaultBarWidth))
		Expect(chart.BarLength(dec("50"))).To(Equal(15))
	})

	It("keeps tiny positive values visible", func() {
		chart := report.NewBarChart("tiny")
		chart.Add("big", dec("1000000"), "")
		Expect(chart.BarLength(dec("1"))).To(Equal(1))
	})

	It("draws nothing for zero and negative values", func() {
		chart := report.NewBarChart("empty")
		chart.Add("zero", dec("0"), "")
		chart.Add("negative", dec("-5"), "")
		Expect(chart.BarLength(dec("0"))).To(Equal(0))
		Expect(chart.BarLength(dec("-5"))).To(Equal(0))
	})

	It("renders one table row per bar and escapes pipes", func() {
		chart := report.NewBarChart("Carteira")
		chart.Width = 4
		chart.Add("A | B", dec("10"), "R$ 10")
		chart.Add("C", dec("5"), "R$ 5")

		md := chart.Markdown(false)
		Expect(md).To(HavePrefix("#### Carteira\n\n"))
		Expect(md).To(ContainSubstring(`| A \| B | ████ | R$ 10 |`))
		Expect(md).To(ContainSubstring("| C | ██ | R$ 5 |"))
		Expect(strings.Count(md, "\n| ")).To(Equal(3))
	})

	It("adds a heading attribute on request", func() {
		chart := report.NewBarChart("Carteira Total")
		Expect(chart.Markdown(true)).To(HavePrefix("#### Carteira Total {#carteira-total}\n"))
	})
})
