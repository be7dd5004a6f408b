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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/param"
	"seehuhn.de/go/pcell/region"
)

// FingerCapacitorTaper is an interdigital capacitor between two tapers.
// The ground gap of the tapers keeps the ratio a:b of the connected
// waveguides.
type FingerCapacitorTaper struct{}

// Name implements [Generator].
func (FingerCapacitorTaper) Name() string { return "Finger Capacitor Taper" }

// Schema implements [Generator].
func (FingerCapacitorTaper) Schema() param.Schema {
	return Common.Extend(
		param.Decl{Name: "finger_number", Kind: param.Int, Description: "Number of fingers", Default: 5},
		param.Decl{Name: "finger_width", Kind: param.Double, Description: "Width of a finger", Default: 5.0, Unit: "μm"},
		param.Decl{Name: "finger_gap", Kind: param.Double, Description: "Gap between the fingers", Default: 3.0, Unit: "μm"},
		param.Decl{Name: "finger_length", Kind: param.Double, Description: "Length of the fingers", Default: 20.0, Unit: "μm"},
		param.Decl{Name: "taper_length", Kind: param.Double, Description: "Length of the taper", Default: 60.0, Unit: "μm"},
		param.Decl{Name: "corner_r", Kind: param.Double, Description: "Corner radius", Default: 2.0, Unit: "μm"},
	)
}

// Produce implements [Generator].
func (FingerCapacitorTaper) Produce(c *layout.Cell, p param.Set) error {
	l := c.Layout()
	n := p.Int("finger_number")
	w := p.Float("finger_width")
	g := p.Float("finger_gap")
	fl := p.Float("finger_length")
	t := p.Float("taper_length")
	cr := p.Float("corner_r")
	a := p.Float("a")
	b := p.Float("b")
	W := float64(n)*(w+g) - g // total width of the fingers

	x0 := (fl + g) / 2
	ground := l.Polygon(
		vec.Vec2{X: x0, Y: W*(b/a) + W/2},
		vec.Vec2{X: x0 + t, Y: b + a/2},
		vec.Vec2{X: x0 + t, Y: -b - a/2},
		vec.Vec2{X: x0, Y: -W*(b/a) - W/2},
		vec.Vec2{X: -x0, Y: -W*(b/a) - W/2},
		vec.Vec2{X: -x0 - t, Y: -b - a/2},
		vec.Vec2{X: -x0 - t, Y: b + a/2},
		vec.Vec2{X: -x0, Y: W*(b/a) + W/2},
	)

	taperRight := l.Polygon(
		vec.Vec2{X: x0, Y: W / 2},
		vec.Vec2{X: x0 + t, Y: a / 2},
		vec.Vec2{X: x0 + t, Y: -a / 2},
		vec.Vec2{X: x0, Y: -W / 2},
	)
	taperLeft := taperRight.Transformed(layout.MirrorY.Matrix())

	var etch region.Region
	etch.InsertRegion(taperLeft)
	etch.InsertRegion(taperRight)
	for i := range n {
		dx := -g / 2
		if i%2 == 1 {
			dx = g / 2
		}
		y := float64(i)*(g+w) - W/2
		etch.InsertRegion(l.Box(vec.Vec2{X: dx - fl/2, Y: y}, vec.Vec2{X: dx + fl/2, Y: y + w}))
	}
	crDBU := cr / l.DBU
	etch = etch.RoundCorners(crDBU, crDBU, p.Int("n"))

	gap := ground.Sub(etch)
	if t > 0 {
		// keep the rounding away from the waveguide opening at the tips
		h := (W/2-a/2)*(t-2*cr)/t + a/2
		wedgeRight := l.Polygon(
			vec.Vec2{X: x0 + cr, Y: h},
			vec.Vec2{X: x0 + t, Y: a / 2},
			vec.Vec2{X: x0 + t, Y: -a / 2},
			vec.Vec2{X: x0 + cr, Y: -h},
		)
		wedgeLeft := wedgeRight.Transformed(layout.MirrorY.Matrix())
		gap = gap.Sub(wedgeRight).Sub(wedgeLeft)
	}

	if err := c.Insert(layout.BaseMetalGapWoGrid, gap); err != nil {
		return err
	}
	protection := ground.Size(0, l.ToDBU(p.Float("margin")))
	if err := c.Insert(layout.GroundGridAvoidance, protection); err != nil {
		return err
	}

	r := p.Float("r")
	if err := c.AddPort("a", vec.Vec2{X: -x0 - t}, vec.Vec2{X: -1}, r); err != nil {
		return err
	}
	return c.AddPort("b", vec.Vec2{X: x0 + t}, vec.Vec2{X: 1}, r)
}
