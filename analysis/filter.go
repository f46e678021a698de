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

// Package analysis joins the normalized tables for one manager (or
// administrator) and aggregates the receivable-fund reports for display.
package analysis

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/penny-vault/fundview/data"
	"github.com/penny-vault/fundview/dataset"
	"github.com/penny-vault/fundview/normalize"
)

// Role selects which registry column a name is matched against.
type Role string

const (
	RoleManager       Role = "manager"
	RoleAdministrator Role = "administrator"
)

var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownEntity = errors.New("name is not selectable")
)

// ParseRole accepts "manager" (gestor) and "administrator" (administrador).
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manager", "gestor":
		return RoleManager, nil
	case "administrator", "administrador", "admin":
		return RoleAdministrator, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Selectable returns the sorted names that can be passed to Filter and Build
// for role.
func Selectable(myDataset *dataset.Dataset, role Role) []string {
	if role == RoleAdministrator {
		return myDataset.Administrators()
	}
	return myDataset.Managers()
}

func isSelectable(myDataset *dataset.Dataset, role Role, name string) bool {
	names := Selectable(myDataset, role)
	idx := sort.SearchStrings(names, name)
	return idx < len(names) && names[idx] == name
}

// View holds the rows of every table that belong to one name.
type View struct {
	Role Role
	Name string

	Funds      []data.FundRecord
	Offerings  []data.OfferingRecord
	Sectors    []data.SectorRecord
	Maturities []data.MaturityRecord
	Risks      []data.RiskRecord
}

// HasReceivables reports whether any receivable-fund table matched.
func (view *View) HasReceivables() bool {
	return len(view.Sectors) > 0 || len(view.Maturities) > 0 || len(view.Risks) > 0
}

// Filter selects the registry and offering rows whose normalized name column
// equals name exactly, then keeps the receivable-fund rows whose fund tax id
// belongs to one of the selected registry funds. name must already be
// normalized. The all-zero identifier never joins.
func Filter(myDataset *dataset.Dataset, role Role, name string) *View {
	view := &View{Role: role, Name: name}
	fundIDs := make(map[string]struct{})

	for _, fund := range myDataset.Funds() {
		column := fund.Manager
		if role == RoleAdministrator {
			column = fund.Administrator
		}
		if column != name {
			continue
		}

		view.Funds = append(view.Funds, fund)
		// a fund without an identifier must not pick up unidentified report rows
		if fund.TaxID != normalize.EmptyTaxID {
			fundIDs[fund.TaxID] = struct{}{}
		}
	}

	// offerings carry no administrator column
	if role == RoleManager {
		for _, offering := range myDataset.Offerings() {
			if offering.Manager == name {
				view.Offerings = append(view.Offerings, offering)
			}
		}
	}

	for _, record := range myDataset.Sectors() {
		if _, ok := fundIDs[record.FundTaxID]; ok {
			view.Sectors = append(view.Sectors, record)
		}
	}

	for _, record := range myDataset.Maturities() {
		if _, ok := fundIDs[record.FundTaxID]; ok {
			view.Maturities = append(view.Maturities, record)
		}
	}

	for _, record := range myDataset.Risks() {
		if _, ok := fundIDs[record.FundTaxID]; ok {
			view.Risks = append(view.Risks, record)
		}
	}

	return view
}
