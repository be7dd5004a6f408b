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

var capacitorCases = []TestCase{
	{
		Name: "default",
		Type: "Finger Capacitor Taper",
	},
	{
		Name:   "single_finger",
		Type:   "Finger Capacitor Taper",
		Params: map[string]any{"finger_number": 1},
	},
	{
		Name: "long_fingers",
		Type: "Finger Capacitor Taper",
		Params: map[string]any{
			"finger_number": 12,
			"finger_length": 40.0,
			"corner_r":      0.0,
		},
	},
	{
		Name:   "no_taper",
		Type:   "Finger Capacitor Taper",
		Params: map[string]any{"taper_length": 0.0},
	},
	{
		Name: "wide_trace",
		Type: "Finger Capacitor Taper",
		Params: map[string]any{
			"a":            20.0,
			"b":            10.0,
			"finger_width": 8.0,
			"finger_gap":   4.0,
		},
	},
}
