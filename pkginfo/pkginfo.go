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

// Package pkginfo carries the build metadata injected at link time.
package pkginfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"

	"github.com/rs/zerolog/log"
)

// Set with -ldflags "-X github.com/penny-vault/fundview/pkginfo.Version=..."
var (
	BuildDate  string
	CommitHash string
	Version    = "dev"
)

// BuildVersionString returns a version info string suitable for printing on the command line
func BuildVersionString() string {
	osArch := runtime.GOOS + "/" + runtime.GOARCH

	return fmt.Sprintf(`fundview %s %s

Build Date: %s
Commit: %s
Built with: %s`, Version, osArch, orUnknown(BuildDate), orUnknown(CommitHash), runtime.Version())
}

// GetDependencyList returns every module linked into the binary, sorted,
// each of the form `path="version"`
func GetDependencyList() []string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		log.Error().Msg("could not get package build info")
		return nil
	}

	deps := make([]string, 0, len(buildInfo.Deps))
	for _, dep := range buildInfo.Deps {
		version := dep.Version
		if dep.Replace != nil {
			version = fmt.Sprintf("%s => %s %s", dep.Version, dep.Replace.Path, dep.Replace.Version)
		}
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, version))
	}

	sort.Strings(deps)

	return deps
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
