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
package cmd

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/fundview/analysis"
	"github.com/penny-vault/fundview/data"
	"github.com/penny-vault/fundview/report"
)

var _ = Describe("Commands", func() {
	var dir string

	BeforeEach(func() {
		dir = fixtureDir()
		managersRole = string(analysis.RoleManager)
		showRole = string(analysis.RoleManager)
		showFormat = string(report.FormatTerminal)
		showOutput = ""
	})

	Describe("managers", func() {
		It("lists the normalized manager names in order", func() {
			out, err := execute("managers", "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("BETA CAPITAL\nGESTÃO ALFA LTDA\n"))
		})

		It("filters by a normalized substring", func() {
			out, err := execute("managers", "alfa", "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("GESTÃO ALFA LTDA\n"))
		})

		It("lists administrators on request", func() {
			out, err := execute("managers", "--role", "administrator", "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("BANCO ADM SA\n"))
		})
	})

	Describe("show", func() {
		It("renders markdown for a manager", func() {
			out, err := execute("show", "Gestão Alfa Ltda.", "--format", "markdown", "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HavePrefix("# Dashboard - GESTÃO ALFA LTDA\n"))
			Expect(out).To(ContainSubstring("### Fundo: FIDC Alfa\n"))
			Expect(out).To(ContainSubstring("### Oferta: REQ-1\n"))
			Expect(out).To(ContainSubstring("> Mostrando 1 FIDCs geridos por GESTÃO ALFA LTDA\n"))
			Expect(out).To(ContainSubstring("- **Valor Inadimplente:** R$ 5\n"))
		})

		It("falls back to the whole market in JSON output", func() {
			out, err := execute("show", "beta capital", "--format", "json", "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())

			var doc report.Document
			Expect(json.Unmarshal([]byte(out), &doc)).To(Succeed())
			Expect(doc.Report.Name).To(Equal("BETA CAPITAL"))
			Expect(doc.Report.Scope).To(Equal(analysis.ScopeGeneral))
			Expect(doc.Report.Receivables.NumFunds).To(Equal(1))
		})

		It("writes the report to a file", func() {
			path := filepath.Join(dir, "alfa.html")
			out, err := execute("show", "GESTÃO ALFA LTDA", "--format", "html", "--output", path, "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(BeEmpty())

			page, err := os.ReadFile(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(page)).To(ContainSubstring("<title>Dashboard - GESTÃO ALFA LTDA</title>"))
		})
	})

	Describe("info", func() {
		It("summarizes the loaded dataset", func() {
			out, err := execute("info", "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("Dataset"))
			Expect(out).To(ContainSubstring("Managers: 2"))
			Expect(out).To(ContainSubstring("Administrators: 1"))
		})
	})

	Describe("sources", func() {
		It("lists every source table", func() {
			out, err := execute("sources", "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("Source Tables"))
			for _, key := range data.TableKeys {
				Expect(out).To(ContainSubstring("(" + key + ")"))
			}
		})

		It("describes a single table in a box", func() {
			out, err := execute("sources", data.RegistryKey, "--data-dir", dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("FUND REGISTRY"))
			Expect(out).To(ContainSubstring("bytes, modified"))
			Expect(out).To(ContainSubstring("Required Columns"))
			Expect(out).To(ContainSubstring("CNPJ_Fundo"))
			Expect(out).To(ContainSubstring("╭"))
		})
	})

	Describe("version", func() {
		It("prints the short version", func() {
			out, err := execute("version", "--short")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("dev\n"))
		})
	})
})
