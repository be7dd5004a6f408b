// seehuhn.de/go/pcell - parametric mask cells for superconducting circuits
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package testcases holds named parameter sets for the generators of
// this module.  The cases are used by tests and benchmarks, and by the
// export and genpdf commands.
package testcases

// TestCase defines a single generated cell.
type TestCase struct {
	Name   string         // lowercase a-z, 0-9 and _ only
	Family string         // generator family, empty to use the family of Type
	Type   string         // generator name
	Params map[string]any // parameter values, missing ones take defaults
}

// All contains all test cases, grouped by category.
// The category name is used as a prefix in output filenames.
var All = map[string][]TestCase{
	"capacitor": capacitorCases,
	"waveguide": waveguideCases,
	"airbridge": airbridgeCases,
	"spiral":    spiralCases,
	"junction":  junctionCases,
}

// FullName returns the name of a test case prefixed by its category.
func FullName(category string, tc TestCase) string {
	return category + "_" + tc.Name
}
