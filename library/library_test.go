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

package library

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pcell/element"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/teststructure"
)

func TestNew(t *testing.T) {
	lib := New()
	want := []string{Elements, Airbridges, Squids, JunctionTestPads}
	if d := cmp.Diff(want, lib.Families()); d != "" {
		t.Errorf("families (-want +got):\n%s", d)
	}
	for _, fam := range lib.Families() {
		def := lib.Default(fam)
		if def == "" {
			t.Errorf("family %q has no default", fam)
		}
		if got, ok := lib.Family(def); !ok || got != fam {
			t.Errorf("default %q of %q belongs to %q", def, fam, got)
		}
	}
}

func TestLookupByLibraryName(t *testing.T) {
	lib := New()
	for _, name := range []string{"Spiral Resonator", "SpiralResonator"} {
		g, err := lib.Generator(name)
		if err != nil {
			t.Fatal(err)
		}
		if g.Name() != "Spiral Resonator" {
			t.Errorf("%q gives %q", name, g.Name())
		}
	}
	if _, err := lib.Generator("Spiral"); !errors.Is(err, ErrUnknownGenerator) {
		t.Errorf("got error %v, want %v", err, ErrUnknownGenerator)
	}
}

func TestCreateFallback(t *testing.T) {
	lib := New()
	type testCase struct {
		family, name string
		want         string
	}
	cases := []testCase{
		{JunctionTestPads, "Junction Test Pads Simple", teststructure.JunctionTestPadsSimple},
		{JunctionTestPads, "Junction Test Pads Fancy", teststructure.JunctionTestPadsSimple},
		{JunctionTestPads, "", teststructure.JunctionTestPadsSimple},
		{Squids, "NoSquid", "No Squid"},
		{Squids, "QCD42", "Manhattan"},
		{Airbridges, "Airbridge Multi Pad", "Airbridge Multi Pad"},
		{Airbridges, "Airbridge Zigzag", "Airbridge Rectangular"},
		// a generator from another family is not a member
		{Airbridges, "Spiral Resonator", "Airbridge Rectangular"},
	}
	for _, tc := range cases {
		t.Run(tc.family+"/"+tc.name, func(t *testing.T) {
			l := layout.New(layout.DefaultDBU)
			c, err := lib.Create(l, tc.family, tc.name, nil)
			if err != nil {
				t.Fatal(err)
			}
			if c.Name() != tc.want {
				t.Errorf("got cell %q, want %q", c.Name(), tc.want)
			}
		})
	}
}

func TestCreateUnknownFamily(t *testing.T) {
	lib := New()
	l := layout.New(layout.DefaultDBU)
	_, err := lib.Create(l, "Qubit", "Swissmon", nil)
	if !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("got error %v, want %v", err, ErrUnknownFamily)
	}
}

func TestRegister(t *testing.T) {
	lib := Empty()
	if err := lib.Register("Test", element.SpiralResonator{}); err != nil {
		t.Fatal(err)
	}
	if err := lib.Register("Other", element.SpiralResonator{}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("got error %v, want %v", err, ErrDuplicate)
	}
	if lib.Default("Test") != "Spiral Resonator" {
		t.Error("first generator is not the default")
	}
	if err := lib.SetDefault("Test", "Waveguide Coplanar"); !errors.Is(err, ErrUnknownGenerator) {
		t.Errorf("got error %v, want %v", err, ErrUnknownGenerator)
	}
	if err := lib.SetDefault("Missing", "Spiral Resonator"); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("got error %v, want %v", err, ErrUnknownFamily)
	}
}

func TestGenerate(t *testing.T) {
	lib := New()
	l := layout.New(0)

	c, err := lib.Generate(l, "", "FingerCapacitorTaper", nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name() != "Finger Capacitor Taper" {
		t.Errorf("cell name %q", c.Name())
	}

	if _, err := lib.Generate(l, "", "Finger Capacitor", nil); !errors.Is(err, ErrUnknownGenerator) {
		t.Errorf("got error %v, want %v", err, ErrUnknownGenerator)
	}

	c, err = lib.Generate(l, Airbridges, "Finger Capacitor", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Refpoint("port_a"); !ok {
		t.Error("fallback airbridge has no port_a")
	}
}
