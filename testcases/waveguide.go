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

var waveguideCases = []TestCase{
	{
		Name:   "straight",
		Type:   "Waveguide Coplanar",
		Params: map[string]any{"path": []any{0.0, 0.0, 500.0, 0.0}},
	},
	{
		Name:   "bend",
		Type:   "Waveguide Coplanar",
		Params: map[string]any{"path": []any{0.0, 0.0, 200.0, 0.0, 200.0, 200.0}},
	},
	{
		Name: "meander",
		Type: "Waveguide Coplanar",
		Params: map[string]any{
			"path": []any{
				0.0, 0.0, 300.0, 0.0, 300.0, 150.0,
				0.0, 150.0, 0.0, 300.0, 300.0, 300.0,
			},
		},
	},
	{
		Name: "terminated",
		Type: "Waveguide Coplanar",
		Params: map[string]any{
			"path":  []any{0.0, 0.0, 200.0, 0.0},
			"term1": 10.0,
			"term2": 10.0,
		},
	},
	{
		Name: "splitter_tee",
		Type: "Waveguide Coplanar Splitter",
	},
	{
		Name: "splitter_four",
		Type: "Waveguide Coplanar Splitter",
		Params: map[string]any{
			"lengths": []any{20.0, 20.0, 20.0, 20.0},
			"angles":  []any{0.0, 90.0, 180.0, 270.0},
		},
	},
	{
		Name: "splitter_bridges",
		Type: "Waveguide Coplanar Splitter",
		Params: map[string]any{
			"lengths":        []any{120.0, 120.0, 120.0},
			"use_airbridges": true,
		},
	},
}

var airbridgeCases = []TestCase{
	{
		Name: "rectangular",
		Type: "Airbridge Rectangular",
	},
	{
		Name:   "multi_pad",
		Type:   "Airbridge Multi Pad",
		Params: map[string]any{"pad_count": 4},
	},
	{
		Name:   "fallback",
		Family: "Airbridge",
		Type:   "Airbridge Unknown",
	},
}
