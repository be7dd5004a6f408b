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

package squid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/layout"
)

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"Manhattan":                 Manhattan,
		"Manhattan Single Junction": ManhattanSingle,
		"ManhattanSingleJunction":   ManhattanSingle,
		"NoSquid":                   NoSquid,
		"QCD17":                     Default,
		"":                          Default,
	}
	for name, want := range cases {
		if got := ParseType(name); got != want {
			t.Errorf("ParseType(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestJunctionGeometry(t *testing.T) {
	type testCase struct {
		typ       Type
		junctions int
	}
	for _, tc := range []testCase{{Manhattan, 2}, {ManhattanSingle, 1}, {NoSquid, 0}} {
		t.Run(string(tc.typ), func(t *testing.T) {
			l := layout.New(layout.DefaultDBU)
			c, err := Create(l, string(tc.typ), 0.02)
			if err != nil {
				t.Fatal(err)
			}

			junction := c.Shapes(layout.SISJunction)
			if junction.Len() != tc.junctions {
				t.Errorf("got %d junction contours, want %d", junction.Len(), tc.junctions)
			}
			if want := 2299600 * float64(tc.junctions); junction.Area() != want {
				t.Errorf("junction area %g, want %g", junction.Area(), want)
			}
			if len(Junctions(tc.typ)) != tc.junctions {
				t.Error("wrong number of junction positions")
			}

			shadow := c.Shapes(layout.SISShadow)
			if !junction.Sub(shadow).IsEmpty() {
				t.Error("shadow does not cover the junctions")
			}

			pc, ok := c.Refpoint("port_common")
			if !ok {
				t.Fatal("missing port_common")
			}
			if d := cmp.Diff(vec.Vec2{Y: 20}, pc); d != "" {
				t.Errorf("port_common (-want +got):\n%s", d)
			}
		})
	}
}

func TestPlace(t *testing.T) {
	l := layout.New(layout.DefaultDBU)
	sq, err := Create(l, "", 0.02)
	if err != nil {
		t.Fatal(err)
	}
	parent := l.CreateCell("parent")
	pl := Place(parent, sq, layout.Translate(100, 50))

	want := sq.Shapes(layout.BaseMetalAddition).Moved(100000, 50000)
	if !pl.Unetch.Equal(want) {
		t.Error("unetch region not moved with the squid")
	}
	if d := cmp.Diff(vec.Vec2{X: 100, Y: 70}, pl.Refpoints["port_common"], cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Errorf("port_common (-want +got):\n%s", d)
	}
	if len(parent.Instances()) != 1 {
		t.Error("squid not inserted")
	}
}
