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

// Package normalize canonicalizes the identifier and name columns of the CVM
// extracts so that rows from different tables can be joined by plain string
// equality.
package normalize

import "strings"

// TaxIDLength is the number of digits in a CNPJ.
const TaxIDLength = 14

// EmptyTaxID is what a missing or digit-free identifier normalizes to. It never
// matches a registered fund.
var EmptyTaxID = strings.Repeat("0", TaxIDLength)

// TaxID strips every character that is not an ASCII digit from raw and left
// pads the result with zeros to TaxIDLength. Values with more than
// TaxIDLength digits are returned as-is, they are not truncated.
func TaxID(raw string) string {
	var builder strings.Builder
	builder.Grow(TaxIDLength)

	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			builder.WriteByte(c)
		}
	}

	digits := builder.String()
	if len(digits) >= TaxIDLength {
		return digits
	}

	return strings.Repeat("0", TaxIDLength-len(digits)) + digits
}
