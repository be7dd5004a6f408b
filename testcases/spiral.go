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

package testcases

var spiralCases = []TestCase{
	{
		Name: "default",
		Type: "Spiral Resonator",
	},
	{
		Name: "short_fixed",
		Type: "Spiral Resonator",
		Params: map[string]any{
			"length":       1000.0,
			"auto_spacing": false,
		},
	},
	{
		Name: "long_fixed",
		Type: "Spiral Resonator",
		Params: map[string]any{
			"length":       8000.0,
			"auto_spacing": false,
		},
	},
	{
		Name: "flipped",
		Type: "Spiral Resonator",
		Params: map[string]any{
			"length":      5000.0,
			"above_space": 200.0,
			"below_space": 600.0,
			"right_space": 1100.0,
		},
	},
	{
		Name: "bridges",
		Type: "Spiral Resonator",
		Params: map[string]any{
			"length":       7000.0,
			"auto_spacing": false,
			"bridges_top":  true,
		},
	},
	{
		Name: "narrow",
		Type: "Spiral Resonator",
		Params: map[string]any{
			"length":       2500.0,
			"above_space":  150.0,
			"below_space":  150.0,
			"auto_spacing": false,
		},
	},
}
