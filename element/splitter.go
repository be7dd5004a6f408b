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
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/param"
	"seehuhn.de/go/pcell/region"
)

// WaveguideCoplanarSplitter joins several waveguides at the origin. The
// number of ports is given by the length of the parameter lists; ports
// are named "a", "b", ... in order.
type WaveguideCoplanarSplitter struct{}

// Name implements [Generator].
func (WaveguideCoplanarSplitter) Name() string { return "Waveguide Coplanar Splitter" }

// Schema implements [Generator].
func (WaveguideCoplanarSplitter) Schema() param.Schema {
	return Common.Extend(
		param.Decl{Name: "lengths", Kind: param.List, Description: "Waveguide length per port, measured from origin",
			Default: []any{11.0, 11.0, 11.0}, Unit: "μm"},
		param.Decl{Name: "angles", Kind: param.List, Description: "Angle of each port (degrees)",
			Default: []any{0.0, 120.0, 240.0}},
		param.Decl{Name: "use_airbridges", Kind: param.Bool, Description: "Use airbridges at a distance from the centre", Default: false},
		param.Decl{Name: "bridge_distance", Kind: param.Double, Description: "Bridges distance from centre", Default: 80.0, Unit: "μm"},
		param.Decl{Name: "bridge_type", Kind: param.String, Description: "Airbridge type",
			Default: string(DefaultAirbridgeType), Choices: airbridgeTypeChoices()},
	)
}

const portNames = "abcdefghij"

// Produce implements [Generator].
func (WaveguideCoplanarSplitter) Produce(c *layout.Cell, p param.Set) error {
	l := c.Layout()
	lengths := p.Floats("lengths")
	angles := p.Floats("angles")
	a, b := p.Float("a"), p.Float("b")
	margin := p.Float("margin")
	r := p.Float("r")
	n := p.Int("n")

	count := min(len(lengths), len(angles))
	if count > len(portNames) {
		return fmt.Errorf("too many ports (%d)", count)
	}

	var gap, trace, avoidance region.Region
	var bridge *layout.Cell
	for i := range count {
		name := portNames[i : i+1]
		angleDeg := angles[i]
		angle := angleDeg * math.Pi / 180
		length := lengths[i]
		dir := vec.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}

		gap.InsertRegion(l.Polygon(portShape(angle, length, a+2*b, n)...))
		trace.InsertRegion(l.Polygon(portShape(angle, length, a, n)...))
		avoidance.InsertRegion(l.Polygon(portShape(angle, length+margin, a+2*b+2*margin, n)...))

		pos := dir.Mul(length)
		if err := c.AddPort(name, pos, dir, r); err != nil {
			return err
		}
		err := c.InsertPath(layout.WaveguideLength, layout.PathShape{
			Points: []vec.Vec2{pos, {}},
			Width:  a + 2*b,
		})
		if err != nil {
			return err
		}

		if p.Bool("use_airbridges") {
			if bridge == nil {
				bridge, err = Create(l, NewAirbridge(p.String("bridge_type")), map[string]any{
					"pad_length": 14.0,
					"pad_extra":  2.0,
				})
				if err != nil {
					return err
				}
			}
			c.InsertCell(bridge, layout.Trans{
				Angle: angleDeg,
				Disp:  dir.Mul(p.Float("bridge_distance")),
			})
		}
	}

	if err := c.Insert(layout.BaseMetalGapWoGrid, gap.Sub(trace)); err != nil {
		return err
	}
	return c.Insert(layout.GroundGridAvoidance, avoidance.Merged())
}

// portShape returns a rectangle of the given length and width, starting
// at the origin in direction angle, with a round cap at the origin.
func portShape(angle, length, width float64, n int) []vec.Vec2 {
	r := width / 2
	pts := ArcPoints(r, angle+math.Pi/2, angle+3*math.Pi/2, n)
	pts = append(pts,
		vec.Vec2{X: length*math.Cos(angle) + r*math.Cos(angle-math.Pi/2), Y: length*math.Sin(angle) + r*math.Sin(angle-math.Pi/2)},
		vec.Vec2{X: length*math.Cos(angle) + r*math.Cos(angle+math.Pi/2), Y: length*math.Sin(angle) + r*math.Sin(angle+math.Pi/2)},
	)
	return pts
}
