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

// Package library collects the cell generators of this module in a
// registry, so that cells can be created by name.
//
// Generators are grouped into families.  Each family has a default
// generator, which is used when a requested name is not known.
package library

import (
	"errors"
	"fmt"
	"slices"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/element"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/squid"
	"seehuhn.de/go/pcell/teststructure"
)

// Family names used by [New].
const (
	Elements         = "Element"
	Airbridges       = "Airbridge"
	Squids           = "Squid"
	JunctionTestPads = "Junction Test Pads"
)

var (
	// ErrUnknownFamily is returned when a family has not been registered.
	ErrUnknownFamily = errors.New("unknown generator family")

	// ErrDuplicate is returned when a generator name is registered twice.
	ErrDuplicate = errors.New("duplicate generator name")

	// ErrUnknownGenerator is returned by [Library.Generator] for names
	// which are not registered.
	ErrUnknownGenerator = errors.New("unknown generator")
)

type family struct {
	name       string
	defaultGen string
	members    []string
}

// Library is a registry of generators.
//
// A Library is filled once and then only read; lookups are safe for
// concurrent use after the last call to Register.
type Library struct {
	generators map[string]element.Generator // by display and library name
	family     map[string]string            // display name -> family
	families   map[string]*family
	order      []string
}

// Empty returns a library without any generators.
func Empty() *Library {
	return &Library{
		generators: make(map[string]element.Generator),
		family:     make(map[string]string),
		families:   make(map[string]*family),
	}
}

// New returns a library holding all generators of this module.
func New() *Library {
	lib := Empty()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(lib.Register(Elements, element.WaveguideCoplanar{}))
	must(lib.Register(Elements, element.FingerCapacitorTaper{}))
	must(lib.Register(Elements, element.WaveguideCoplanarSplitter{}))
	must(lib.Register(Elements, element.SpiralResonator{}))

	for _, t := range element.AirbridgeTypes {
		must(lib.Register(Airbridges, element.Airbridge{Type: t}))
	}
	must(lib.SetDefault(Airbridges, string(element.DefaultAirbridgeType)))

	for _, t := range squid.Types {
		must(lib.Register(Squids, squid.Squid{Type: t}))
	}
	must(lib.SetDefault(Squids, string(squid.Default)))

	must(lib.Register(JunctionTestPads, teststructure.JunctionTestPads{}))
	must(lib.SetDefault(JunctionTestPads, teststructure.JunctionTestPadsSimple))
	return lib
}

// Register adds a generator to a family.  The family is created if
// needed; the first generator of a family becomes its default.
func (lib *Library) Register(familyName string, g element.Generator) error {
	name := g.Name()
	for _, key := range []string{name, element.LibraryName(name)} {
		if _, dup := lib.generators[key]; dup {
			return fmt.Errorf("%w %q", ErrDuplicate, key)
		}
	}
	f := lib.families[familyName]
	if f == nil {
		f = &family{name: familyName, defaultGen: name}
		lib.families[familyName] = f
		lib.order = append(lib.order, familyName)
	}
	f.members = append(f.members, name)
	lib.generators[name] = g
	lib.generators[element.LibraryName(name)] = g
	lib.family[name] = familyName
	return nil
}

// SetDefault selects the default generator of a family.
func (lib *Library) SetDefault(familyName, name string) error {
	f := lib.families[familyName]
	if f == nil {
		return fmt.Errorf("%w %q", ErrUnknownFamily, familyName)
	}
	g, ok := lib.generators[name]
	if !ok || lib.family[g.Name()] != familyName {
		return fmt.Errorf("%w %q in family %q", ErrUnknownGenerator, name, familyName)
	}
	f.defaultGen = g.Name()
	return nil
}

// Generator returns the generator registered under name.  Both the
// display name and the library name (without spaces) are accepted.
func (lib *Library) Generator(name string) (element.Generator, error) {
	g, ok := lib.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGenerator, name)
	}
	return g, nil
}

// Resolve returns the generator of a family with the given name.  If the
// name is empty or not a member of the family, the family default is
// returned.
func (lib *Library) Resolve(familyName, name string) (element.Generator, error) {
	f := lib.families[familyName]
	if f == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownFamily, familyName)
	}
	if g, ok := lib.generators[name]; ok && lib.family[g.Name()] == familyName {
		return g, nil
	}
	if name != "" {
		pcell.Logger().Info("unknown generator, using family default",
			"family", familyName,
			"name", name,
			"default", f.defaultGen)
	}
	return lib.generators[f.defaultGen], nil
}

// Create creates a cell with the named generator of a family in l.
// Unknown names fall back to the default of the family.
func (lib *Library) Create(l *layout.Layout, familyName, name string, values map[string]any) (*layout.Cell, error) {
	g, err := lib.Resolve(familyName, name)
	if err != nil {
		return nil, err
	}
	return element.Create(l, g, values)
}

// Generate is like [Library.Create], but an empty family name selects
// the family of the named generator.  In this case the name must be
// registered.
func (lib *Library) Generate(l *layout.Layout, familyName, name string, values map[string]any) (*layout.Cell, error) {
	if familyName == "" {
		fam, ok := lib.Family(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownGenerator, name)
		}
		familyName = fam
	}
	return lib.Create(l, familyName, name, values)
}

// Families returns the family names in registration order.
func (lib *Library) Families() []string {
	return slices.Clone(lib.order)
}

// Members returns the display names of the generators in a family, in
// registration order.
func (lib *Library) Members(familyName string) []string {
	f := lib.families[familyName]
	if f == nil {
		return nil
	}
	return slices.Clone(f.members)
}

// Default returns the name of the default generator of a family.
func (lib *Library) Default(familyName string) string {
	f := lib.families[familyName]
	if f == nil {
		return ""
	}
	return f.defaultGen
}

// Family returns the family of a registered generator.
func (lib *Library) Family(name string) (string, bool) {
	g, ok := lib.generators[name]
	if !ok {
		return "", false
	}
	return lib.family[g.Name()], true
}
