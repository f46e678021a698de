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

// Package report turns an analysis.Report into documents: markdown for the
// terminal and for HTML, and JSON for other tools.
package report

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// DefaultBarWidth is the number of cells the longest bar of a chart fills.
const DefaultBarWidth = 30

const barCell = "█"

// Bar is one labelled value of a BarChart. Display is the already formatted
// value shown next to the bar.
type Bar struct {
	Label   string          `json:"label"`
	Value   decimal.Decimal `json:"value"`
	Display string          `json:"display"`
}

// BarChart is a horizontal bar chart drawn with text, so that it survives
// terminal, markdown and HTML output alike.
type BarChart struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Bars  []Bar  `json:"bars"`
	Width int    `json:"-"`
}

// NewBarChart creates an empty chart. The chart ID is the slug of its title.
func NewBarChart(title string) *BarChart {
	return &BarChart{
		ID:    slug.Make(title),
		Title: title,
		Width: DefaultBarWidth,
	}
}

// Add appends a bar.
func (chart *BarChart) Add(label string, value decimal.Decimal, display string) {
	chart.Bars = append(chart.Bars, Bar{Label: label, Value: value, Display: display})
}

// Len returns the number of bars.
func (chart *BarChart) Len() int {
	return len(chart.Bars)
}

// BarLength returns the number of cells drawn for value. Bars scale against
// the largest value of the chart; zero and negative values draw nothing.
func (chart *BarChart) BarLength(value decimal.Decimal) int {
	peak := chart.peak()
	if !peak.IsPositive() || !value.IsPositive() {
		return 0
	}

	width := chart.Width
	if width <= 0 {
		width = DefaultBarWidth
	}

	cells := value.Mul(decimal.NewFromInt(int64(width))).Div(peak).Round(0).IntPart()
	if cells == 0 {
		// keep tiny positive values visible
		cells = 1
	}

	return int(cells)
}

func (chart *BarChart) peak() decimal.Decimal {
	peak := decimal.Zero
	for _, bar := range chart.Bars {
		if bar.Value.GreaterThan(peak) {
			peak = bar.Value
		}
	}
	return peak
}

// Markdown renders the chart as a markdown table with one row per bar.
// When headingID is set the title carries an explicit {#id} attribute.
func (chart *BarChart) Markdown(headingID bool) string {
	builder := strings.Builder{}

	if headingID {
		builder.WriteString(fmt.Sprintf("#### %s {#%s}\n\n", chart.Title, chart.ID))
	} else {
		builder.WriteString(fmt.Sprintf("#### %s\n\n", chart.Title))
	}

	builder.WriteString("| Categoria | | Valor |\n|---|---|---:|\n")
	for _, bar := range chart.Bars {
		builder.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			escapeCell(bar.Label), strings.Repeat(barCell, chart.BarLength(bar.Value)), escapeCell(bar.Display)))
	}
	builder.WriteString("\n")

	return builder.String()
}

func escapeCell(text string) string {
	return strings.ReplaceAll(text, "|", `\|`)
}
