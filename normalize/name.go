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
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name upper-cases raw, drops everything that is not a Latin letter or
// whitespace and collapses whitespace runs into a single space. Accented
// letters in the Latin-1 range (À through ÿ) survive.
func Name(raw string) string {
	if raw == "" {
		return ""
	}

	// cases.Caser is stateful and cannot be shared between goroutines
	upper := cases.Upper(language.Und).String(raw)

	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z':
			return r
		case r >= 'À' && r <= 'ÿ':
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, upper)

	return strings.Join(strings.Fields(kept), " ")
}
