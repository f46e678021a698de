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

// Package currency renders monetary amounts for display.
package currency

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCode is the currency of the CVM extracts.
const DefaultCode = "BRL"

var (
	billion = decimal.NewFromInt(1_000_000_000)
	million = decimal.NewFromInt(1_000_000)
	hundred = decimal.NewFromInt(100)
)

// Formatter abbreviates amounts and prefixes them with a currency symbol.
type Formatter struct {
	Code    string
	Symbol  string
	printer *message.Printer
}

// New returns a Formatter for the ISO 4217 currency code. Unknown codes are
// used verbatim as the symbol.
func New(code string) *Formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCode
	}

	symbol := code
	if cur := money.GetCurrency(code); cur != nil && cur.Grapheme != "" {
		symbol = cur.Grapheme
	}

	return &Formatter{
		Code:    code,
		Symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Large formats value as billions ("R$ 1.5B") or millions ("R$ 2.3M") when
// its magnitude reaches those scales and as a thousands-grouped integer
// ("R$ 12,345") otherwise.
func (f *Formatter) Large(value decimal.Decimal) string {
	magnitude := value.Abs()

	switch {
	case magnitude.GreaterThanOrEqual(billion):
		return fmt.Sprintf("%s %sB", f.Symbol, value.Div(billion).StringFixed(1))
	case magnitude.GreaterThanOrEqual(million):
		return fmt.Sprintf("%s %sM", f.Symbol, value.Div(million).StringFixed(1))
	default:
		return f.printer.Sprintf("%s %d", f.Symbol, value.Round(0).IntPart())
	}
}

// Percent renders a ratio (0.125) as a percentage with one decimal ("12.5%").
func (f *Formatter) Percent(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(1) + "%"
}
