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

var junctionCases = []TestCase{
	{
		Name: "two_port",
		Type: "Junction Test Pads Simple",
	},
	{
		Name:   "two_port_vertical",
		Type:   "Junction Test Pads Simple",
		Params: map[string]any{"junctions_horizontal": false},
	},
	{
		Name:   "only_pads",
		Type:   "Junction Test Pads Simple",
		Params: map[string]any{"only_pads": true},
	},
	{
		Name:   "four_port",
		Type:   "Junction Test Pads Simple",
		Params: map[string]any{"pad_configuration": "4-port"},
	},
	{
		Name: "single_junction",
		Type: "Junction Test Pads Simple",
		Params: map[string]any{
			"squid_type":     "Manhattan Single Junction",
			"junction_width": 0.15,
		},
	},
	{
		Name:   "fallback",
		Family: "Junction Test Pads",
		Type:   "Junction Test Pads Fancy",
	},
	{
		Name: "squid_manhattan",
		Type: "Manhattan",
	},
}
