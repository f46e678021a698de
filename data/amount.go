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
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a numeric cell of a CVM extract. Cells that are empty or cannot
// be parsed decode to an invalid zero amount instead of failing the row.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount returns a valid amount holding v.
func NewAmount(v decimal.Decimal) Amount {
	return Amount{Value: v, Valid: true}
}

// AmountFromInt is a convenience for fixtures and tests.
func AmountFromInt(v int64) Amount {
	return NewAmount(decimal.NewFromInt(v))
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller. `1234.56`, `1,234.56` and
// the Brazilian `1.234,56` notations are accepted.
func (amount *Amount) UnmarshalCSV(field string) error {
	*amount = ParseAmount(field)
	return nil
}

// MarshalJSON writes the amount as a bare number, or null when the cell was
// empty or malformed.
func (amount Amount) MarshalJSON() ([]byte, error) {
	if !amount.Valid {
		return []byte("null"), nil
	}
	return []byte(amount.Value.String()), nil
}

// UnmarshalJSON accepts a number, a numeric string or null.
func (amount *Amount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*amount = Amount{}
		return nil
	}

	var value decimal.Decimal
	if err := value.UnmarshalJSON(b); err != nil {
		return err
	}

	*amount = NewAmount(value)
	return nil
}

// ParseAmount converts a raw cell into an Amount.
func ParseAmount(field string) Amount {
	field = strings.TrimSpace(field)
	if field == "" {
		return Amount{}
	}

	// The separator that comes last is the decimal one: 1.234,56 and 1,234.56.
	comma, dot := strings.LastIndex(field, ","), strings.LastIndex(field, ".")
	switch {
	case comma >= 0 && dot > comma:
		field = strings.ReplaceAll(field, ",", "")
	case comma >= 0:
		field = strings.ReplaceAll(field, ".", "")
		field = strings.Replace(field, ",", ".", 1)
	}

	value, err := decimal.NewFromString(field)
	if err != nil {
		return Amount{}
	}

	return NewAmount(value)
}

// Sum adds the values of amounts; invalid amounts count as zero.
func Sum(amounts ...Amount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Value)
	}
	return total
}
