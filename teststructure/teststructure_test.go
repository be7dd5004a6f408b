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

package teststructure

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/element"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/region"
)

func TestArange(t *testing.T) {
	type testCase struct {
		start, stop, step float64
		want              []float64
	}
	cases := []testCase{
		{0, 1, 0.25, []float64{0, 0.25, 0.5, 0.75}},
		{0, 1, 0.3, []float64{0, 0.3, 0.6, 0.8999999999999999}},
		{650, 700, 1200, []float64{650}},
		{350, 1650, 600, []float64{350, 950, 1550}},
		{5, 5, 1, nil},
		{650, -100, 1200, nil},
		{0, 1, 0, nil},
	}
	for _, tc := range cases {
		got := Arange(tc.start, tc.stop, tc.step)
		if d := cmp.Diff(tc.want, got, cmpopts.EquateApprox(0, 1e-12), cmpopts.EquateEmpty()); d != "" {
			t.Errorf("Arange(%g, %g, %g) (-want +got):\n%s", tc.start, tc.stop, tc.step, d)
		}
	}
}

func countProbes(c *layout.Cell) int {
	n := 0
	for _, name := range c.RefpointNames() {
		if strings.HasPrefix(name, "probe_") {
			n++
		}
	}
	return n
}

func TestJunctionTestPadsRefpoints(t *testing.T) {
	type testCase struct {
		name      string
		values    map[string]any
		positions int
		perPos    int
	}
	cases := []testCase{
		{"2-port", nil, 3, 2},
		{"2-port vertical", map[string]any{"junctions_horizontal": false}, 2, 2},
		{"2-port only pads", map[string]any{"only_pads": true}, 3, 2},
		{"4-port", map[string]any{"pad_configuration": FourPort}, 1, 4},
		{"4-port large", map[string]any{
			"pad_configuration": FourPort,
			"area_width":        2500.0,
			"area_height":       2500.0,
		}, 4, 4},
		{"4-port vertical", map[string]any{
			"pad_configuration":    FourPort,
			"junctions_horizontal": false,
		}, 1, 4},
		{"too small", map[string]any{"area_width": 500.0}, 0, 2},
		{"too small 4-port", map[string]any{
			"pad_configuration": FourPort,
			"area_height":       800.0,
		}, 0, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := layout.New(layout.DefaultDBU)
			c, err := element.Create(l, JunctionTestPads{}, tc.values)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := countProbes(c), tc.positions*tc.perPos; got != want {
				t.Errorf("got %d probe refpoints, want %d", got, want)
			}
			if c.Shapes(layout.BaseMetalGapWoGrid).IsEmpty() {
				t.Error("nothing etched")
			}
			squids := len(c.Instances())
			if onlyPads, _ := tc.values["only_pads"].(bool); onlyPads {
				if squids != 0 {
					t.Errorf("got %d squids, want none", squids)
				}
			} else if squids != tc.positions {
				t.Errorf("got %d squids, want %d", squids, tc.positions)
			}
		})
	}
}

func TestJunctionTestPadsProbePositions(t *testing.T) {
	l := layout.New(layout.DefaultDBU)
	c, err := element.Create(l, JunctionTestPads{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]vec.Vec2{
		"probe_0_l": {X: 350, Y: 350},
		"probe_0_r": {X: 950, Y: 350},
		"probe_1_l": {X: 350, Y: 950},
		"probe_1_r": {X: 950, Y: 950},
		"probe_2_l": {X: 350, Y: 1550},
		"probe_2_r": {X: 950, Y: 1550},
	}
	for name, pos := range want {
		got, ok := c.Refpoint(name)
		if !ok {
			t.Errorf("missing refpoint %s", name)
			continue
		}
		if got != pos {
			t.Errorf("%s at %v, want %v", name, got, pos)
		}
	}
}

func TestJunctionTestPadsEtching(t *testing.T) {
	l := layout.New(layout.DefaultDBU)
	c, err := element.Create(l, JunctionTestPads{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	gap := c.Shapes(layout.BaseMetalGapWoGrid)
	unetch := c.FlatShapes(layout.BaseMetalAddition)
	if unetch.IsEmpty() {
		t.Fatal("no squid metal")
	}
	if !gap.And(unetch).IsEmpty() {
		t.Error("squid metal is etched")
	}

	// the etched area and the pads fill the whole area
	area := l.Box(vec.Vec2{}, vec.Vec2{X: 1300, Y: 1900})
	if !gap.Sub(area).IsEmpty() {
		t.Error("etching outside the area")
	}
	avoid := c.Shapes(layout.GroundGridAvoidance)
	if want := area.Grow(l.ToDBU(5)); !avoid.Equal(want) {
		t.Error("wrong ground grid avoidance")
	}
}

func TestJunctionTestPadsSmallArea(t *testing.T) {
	l := layout.New(layout.DefaultDBU)
	c, err := element.Create(l, JunctionTestPads{}, map[string]any{"area_width": 500.0})
	if err != nil {
		t.Fatal(err)
	}
	gap := c.Shapes(layout.BaseMetalGapWoGrid)
	if want := 500.0 * 1900 * 1e6; gap.Area() != want {
		t.Errorf("etched area %g, want %g", gap.Area(), want)
	}
}

func TestFourPointPads(t *testing.T) {
	l := layout.New(layout.DefaultDBU)
	c := l.CreateCell("four point")
	fp := FourPointPads{Width: 100, Height: 100, SpacingX: 20, SpacingY: 20, ConnectJunction: true}
	var pads region.Region
	if err := fp.Produce(c, &pads, layout.Trans{Angle: 90, Disp: vec.Vec2{X: 1000}}, "p"); err != nil {
		t.Fatal(err)
	}
	want := map[string]vec.Vec2{
		"p_top_left":     {X: 940, Y: -60},
		"p_top_right":    {X: 940, Y: 60},
		"p_bottom_left":  {X: 1060, Y: -60},
		"p_bottom_right": {X: 1060, Y: 60},
	}
	if d := cmp.Diff(want, c.Refpoints(), cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("refpoints (-want +got):\n%s", d)
	}

	// the leads join the pads in pairs
	merged := pads.Merged()
	if merged.Len() != 2 {
		t.Errorf("got %d pad groups, want 2", merged.Len())
	}
	if want := (4*100*100 + 2*10*20) * 1e6; merged.Area() != want {
		t.Errorf("pad area %g, want %g", merged.Area(), want)
	}
}
