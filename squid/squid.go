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

// Package squid generates the Josephson junction devices placed on qubits
// and junction test structures.
//
// All squids share the same frame of reference: the origin is at the
// bottom centre, where the squid connects to the ground side, and the
// refpoint "port_common" marks the connection of the top electrode.
package squid

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/element"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/param"
	"seehuhn.de/go/pcell/region"
)

// Type names a squid design.
type Type string

// These are the known squid designs.
const (
	Manhattan       Type = "Manhattan"
	ManhattanSingle Type = "Manhattan Single Junction"
	NoSquid         Type = "No Squid"
)

// Default is used for unknown type names.
const Default = Manhattan

// Types lists the known squid designs.
var Types = []Type{Manhattan, ManhattanSingle, NoSquid}

// Choices returns the type names in the form used for parameter choices.
func Choices() []any {
	res := make([]any, len(Types))
	for i, t := range Types {
		res[i] = string(t)
	}
	return res
}

// ParseType returns the squid type of the given name. Both the display
// name and the library name are accepted. Unknown names give [Default].
func ParseType(name string) Type {
	for _, t := range Types {
		if name == string(t) || name == element.LibraryName(string(t)) {
			return t
		}
	}
	pcell.Logger().Debug("unknown squid type, using default",
		"type", name,
		"default", Default)
	return Default
}

// Squid is the generator for one squid design.
type Squid struct {
	Type Type
}

// New returns the generator for the named squid type.
func New(typeName string) Squid {
	return Squid{Type: ParseType(typeName)}
}

// Name implements [element.Generator].
func (s Squid) Name() string {
	if s.Type == "" {
		return string(Default)
	}
	return string(s.Type)
}

// Schema implements [element.Generator].
func (s Squid) Schema() param.Schema {
	return param.NewSchema(
		param.Decl{Name: "junction_width", Kind: param.Double, Description: "Junction width", Default: 0.02, Unit: "μm"},
	)
}

// Electrode geometry in µm, relative to the squid origin.
const (
	bottomPadHalfWidth = 11.0
	bottomPadHeight    = 4.0
	topPadHalfWidth    = 4.0
	topPadBottom       = 14.0
	height             = 20.0

	fingerX      = 3.0 // horizontal distance of a junction from the centre
	fingerTop    = 5.0 // lower end of the vertical fingers
	postX        = 8.0 // horizontal distance of the posts from the centre
	postHalf     = 0.5 // half width of a post
	crossY       = 6.0 // height of the junctions
	fingerInside = 2.0 // inner end of the horizontal fingers
	shadowGrow   = 0.1 // evaporation shadow beyond the junction layer
)

// Produce implements [element.Generator].
func (s Squid) Produce(c *layout.Cell, p param.Set) error {
	if err := c.AddRefpoint("origin_squid", vec.Vec2{}); err != nil {
		return err
	}
	if err := c.AddRefpoint("port_common", vec.Vec2{Y: height}); err != nil {
		return err
	}

	var sides []float64
	switch s.Type {
	case NoSquid:
		return nil
	case ManhattanSingle:
		sides = []float64{-1}
	default:
		sides = []float64{-1, 1}
	}

	l := c.Layout()
	var unetch region.Region
	unetch.InsertRegion(l.Box(
		vec.Vec2{X: -bottomPadHalfWidth},
		vec.Vec2{X: bottomPadHalfWidth, Y: bottomPadHeight}))
	unetch.InsertRegion(l.Box(
		vec.Vec2{X: -topPadHalfWidth, Y: topPadBottom},
		vec.Vec2{X: topPadHalfWidth, Y: height}))
	if err := c.Insert(layout.BaseMetalAddition, unetch); err != nil {
		return err
	}

	jw := p.Float("junction_width")
	var junction region.Region
	for _, side := range sides {
		// vertical finger from the top pad
		junction.InsertRegion(l.Box(
			vec.Vec2{X: side*fingerX - jw/2, Y: fingerTop},
			vec.Vec2{X: side*fingerX + jw/2, Y: topPadBottom}))
		// post from the bottom pad
		junction.InsertRegion(l.Box(
			vec.Vec2{X: side*postX - postHalf, Y: bottomPadHeight},
			vec.Vec2{X: side*postX + postHalf, Y: crossY + jw/2}))
		// horizontal finger crossing the vertical one
		junction.InsertRegion(l.Box(
			vec.Vec2{X: side * postX, Y: crossY - jw/2},
			vec.Vec2{X: side * fingerInside, Y: crossY + jw/2}))
	}
	junction = junction.Merged()
	if err := c.Insert(layout.SISJunction, junction); err != nil {
		return err
	}
	return c.Insert(layout.SISShadow, junction.Grow(l.ToDBU(shadowGrow)))
}

// Junctions returns the positions of the junctions of a squid type,
// relative to the squid origin.
func Junctions(t Type) []vec.Vec2 {
	switch t {
	case NoSquid:
		return nil
	case ManhattanSingle:
		return []vec.Vec2{{X: -fingerX, Y: crossY}}
	default:
		return []vec.Vec2{{X: -fingerX, Y: crossY}, {X: fingerX, Y: crossY}}
	}
}

// Create produces a squid cell of the named type in l. Unknown names give
// the default type.
func Create(l *layout.Layout, typeName string, junctionWidth float64) (*layout.Cell, error) {
	return element.Create(l, New(typeName), map[string]any{"junction_width": junctionWidth})
}

// Placement is a squid inserted into a parent cell.
type Placement struct {
	// Unetch is the metal of the squid, in the coordinates of the parent
	// cell, which must not be etched away.
	Unetch region.Region

	// Refpoints are the squid refpoints in the coordinates of the parent.
	Refpoints map[string]vec.Vec2
}

// Place inserts the squid cell sq into c with transformation t.
func Place(c *layout.Cell, sq *layout.Cell, t layout.Trans) Placement {
	refs := c.InsertCell(sq, t)
	dbu := c.Layout().DBU
	unetch := sq.Shapes(layout.BaseMetalAddition).Transformed(t.DBUMatrix(dbu))
	return Placement{Unetch: unetch, Refpoints: refs}
}
