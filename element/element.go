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

// Package element implements the generators for circuit elements:
// waveguides, a coplanar splitter, a tapered finger capacitor, a
// length-constrained spiral resonator and airbridges.
//
// Every generator implements [Generator]. The parameters a, b, n, r and
// margin of [Common] are shared by all elements.
package element

import (
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/param"
)

// Generator produces the geometry of one kind of cell.
type Generator interface {
	// Name returns the display name, which is also used as cell name.
	Name() string

	// Schema returns the parameter declarations.
	Schema() param.Schema

	// Produce writes the geometry into an empty cell.
	Produce(c *layout.Cell, p param.Set) error
}

// Common holds the parameters shared by all elements.
var Common = param.NewSchema(
	param.Decl{Name: "a", Kind: param.Double, Description: "Width of center conductor", Default: 10.0, Unit: "μm"},
	param.Decl{Name: "b", Kind: param.Double, Description: "Width of gap", Default: 6.0, Unit: "μm"},
	param.Decl{Name: "n", Kind: param.Int, Description: "Number of points on turns", Default: 64},
	param.Decl{Name: "r", Kind: param.Double, Description: "Turn radius", Default: 50.0, Unit: "μm"},
	param.Decl{Name: "margin", Kind: param.Double, Description: "Margin of the protection layer", Default: 5.0, Unit: "μm"},
)

// Create binds the given values against the schema of g and produces a
// new cell in l. Every cell gets the refpoint "base" at the origin.
func Create(l *layout.Layout, g Generator, values map[string]any) (*layout.Cell, error) {
	p, err := g.Schema().Bind(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", g.Name(), err)
	}
	return Produce(l, g, p)
}

// Produce is like [Create] for an already bound parameter set.
func Produce(l *layout.Layout, g Generator, p param.Set) (*layout.Cell, error) {
	c := l.CreateCell(g.Name())
	if err := c.AddRefpoint("base", vec.Vec2{}); err != nil {
		return nil, err
	}
	if err := g.Produce(c, p); err != nil {
		return nil, fmt.Errorf("%s: %w", g.Name(), err)
	}
	pcell.Logger().Debug("cell produced",
		"cell", c.Name(),
		"refpoints", len(c.RefpointNames()),
		"instances", len(c.Instances()))
	return c, nil
}
