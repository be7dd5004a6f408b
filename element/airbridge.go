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

package element

import (
	"strings"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/param"
	"seehuhn.de/go/pcell/region"
)

// AirbridgeType selects the shape of an airbridge.
type AirbridgeType string

// These are the available airbridge types.
const (
	AirbridgeRectangular AirbridgeType = "Airbridge Rectangular"
	AirbridgeMultiPad    AirbridgeType = "Airbridge Multi Pad"
)

// DefaultAirbridgeType is used for unknown type names.
const DefaultAirbridgeType = AirbridgeRectangular

// AirbridgeTypes lists all airbridge types.
var AirbridgeTypes = []AirbridgeType{AirbridgeRectangular, AirbridgeMultiPad}

// ParseAirbridgeType returns the airbridge type with the given display
// name or library name. Unknown names give [DefaultAirbridgeType].
func ParseAirbridgeType(name string) AirbridgeType {
	for _, t := range AirbridgeTypes {
		if name == string(t) || name == LibraryName(string(t)) {
			return t
		}
	}
	pcell.Logger().Debug("unknown airbridge type, using default",
		"type", name, "default", DefaultAirbridgeType)
	return DefaultAirbridgeType
}

// LibraryName converts a display name to a library name by removing all
// spaces.
func LibraryName(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

func airbridgeTypeChoices() []any {
	res := make([]any, len(AirbridgeTypes))
	for i, t := range AirbridgeTypes {
		res[i] = string(t)
	}
	return res
}

// Airbridge is a metal bridge crossing a waveguide, landing on two pads.
// The bridge runs along the y-axis and is centred at the origin.
type Airbridge struct {
	Type AirbridgeType
}

// NewAirbridge returns the airbridge generator for the given type name.
func NewAirbridge(typeName string) Airbridge {
	return Airbridge{Type: ParseAirbridgeType(typeName)}
}

// Name implements [Generator].
func (ab Airbridge) Name() string {
	if ab.Type == "" {
		return string(DefaultAirbridgeType)
	}
	return string(ab.Type)
}

// Schema implements [Generator].
func (ab Airbridge) Schema() param.Schema {
	return Common.Extend(
		param.Decl{Name: "bridge_width", Kind: param.Double, Description: "Bridge width", Default: 20.0, Unit: "μm"},
		param.Decl{Name: "bridge_length", Kind: param.Double, Description: "Bridge length (from pad to pad)", Default: 44.0, Unit: "μm"},
		param.Decl{Name: "pad_length", Kind: param.Double, Description: "Pad length", Default: 18.0, Unit: "μm"},
		param.Decl{Name: "pad_extra", Kind: param.Double, Description: "Bottom pad extra", Default: 2.0, Unit: "μm"},
		param.Decl{Name: "pad_count", Kind: param.Int, Description: "Number of pads per side (multi pad only)", Default: 3},
	)
}

// Produce implements [Generator].
func (ab Airbridge) Produce(c *layout.Cell, p param.Set) error {
	l := c.Layout()
	w := p.Float("bridge_width")
	bl := p.Float("bridge_length")
	pl := p.Float("pad_length")
	pe := p.Float("pad_extra")

	count := 1
	if ab.Type == AirbridgeMultiPad {
		count = max(1, p.Int("pad_count"))
	}

	var pads region.Region
	total := w + 2*pe
	step := total / float64(count)
	for i := range count {
		x0 := -total/2 + float64(i)*step
		x1 := x0 + step
		if count > 1 {
			x0 += pe / 2
			x1 -= pe / 2
		}
		pads.InsertRegion(l.Box(vec.Vec2{X: x0, Y: bl / 2}, vec.Vec2{X: x1, Y: bl/2 + pl}))
		pads.InsertRegion(l.Box(vec.Vec2{X: x0, Y: -bl / 2}, vec.Vec2{X: x1, Y: -bl/2 - pl}))
	}
	if err := c.Insert(layout.AirbridgePads, pads); err != nil {
		return err
	}

	flyover := l.Box(vec.Vec2{X: -w / 2, Y: -bl/2 - pl + pe}, vec.Vec2{X: w / 2, Y: bl/2 + pl - pe})
	if err := c.Insert(layout.AirbridgeFlyover, flyover); err != nil {
		return err
	}

	r := p.Float("r")
	if err := c.AddPort("a", vec.Vec2{Y: bl/2 + pl}, vec.Vec2{Y: 1}, r); err != nil {
		return err
	}
	return c.AddPort("b", vec.Vec2{Y: -bl/2 - pl}, vec.Vec2{Y: -1}, r)
}
