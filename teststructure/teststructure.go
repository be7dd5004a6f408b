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

// Package teststructure generates structures used to characterise a
// fabrication run, such as probe pads for measuring junction resistance.
package teststructure

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/region"
)

// leadWidth is the width of the strips joining neighbouring four-point
// pads to the junction.
const leadWidth = 10.0

// Arange returns start, start+step, ... up to but excluding stop. The
// result is empty if step is not positive or start >= stop.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || start >= stop {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	res := make([]float64, n)
	for i := range res {
		res[i] = start + float64(i)*step
	}
	return res
}

// ProducePad adds a pad of size w x h, centred at (x, y), to pads.
func ProducePad(l *layout.Layout, pads *region.Region, x, y, w, h float64) {
	pads.InsertRegion(l.Box(
		vec.Vec2{X: x - w/2, Y: y - h/2},
		vec.Vec2{X: x + w/2, Y: y + h/2}))
}

// ProduceEtchedRegion etches the area of the given size around center,
// except for the pads.  The ground grid is kept away from the area by
// margin.
func ProduceEtchedRegion(c *layout.Cell, pads region.Region, center vec.Vec2, width, height, margin float64) error {
	l := c.Layout()
	half := vec.Vec2{X: width / 2, Y: height / 2}
	area := l.Box(center.Sub(half), center.Add(half))
	if err := c.Insert(layout.BaseMetalGapWoGrid, area.Sub(pads)); err != nil {
		return err
	}
	grown := area.Grow(l.ToDBU(margin))
	return c.Insert(layout.GroundGridAvoidance, grown)
}

// FourPointPads describes a group of four pads for four-point resistance
// measurements.
type FourPointPads struct {
	Width, Height      float64 // pad size
	SpacingX, SpacingY float64 // distance between the pads

	// ConnectJunction adds leads from the pads towards the centre, where
	// a junction can be connected.
	ConnectJunction bool
}

// Produce adds the pads, transformed by t, to pads and records the
// refpoints "<prefix>_top_left", "<prefix>_top_right",
// "<prefix>_bottom_left" and "<prefix>_bottom_right" in c.
func (fp FourPointPads) Produce(c *layout.Cell, pads *region.Region, t layout.Trans, prefix string) error {
	l := c.Layout()
	dx := (fp.Width + fp.SpacingX) / 2
	dy := (fp.Height + fp.SpacingY) / 2

	corners := []struct {
		name string
		pos  vec.Vec2
	}{
		{"top_left", vec.Vec2{X: -dx, Y: dy}},
		{"top_right", vec.Vec2{X: dx, Y: dy}},
		{"bottom_left", vec.Vec2{X: -dx, Y: -dy}},
		{"bottom_right", vec.Vec2{X: dx, Y: -dy}},
	}
	for _, corner := range corners {
		pads.InsertRegion(transformedBox(l, t,
			corner.pos.Sub(vec.Vec2{X: fp.Width / 2, Y: fp.Height / 2}),
			corner.pos.Add(vec.Vec2{X: fp.Width / 2, Y: fp.Height / 2})))
		if err := c.AddRefpoint(prefix+"_"+corner.name, t.Apply(corner.pos)); err != nil {
			return err
		}
	}

	if fp.ConnectJunction {
		x := fp.SpacingX / 2
		y := fp.SpacingY / 2
		pads.InsertRegion(transformedBox(l, t,
			vec.Vec2{X: -x - leadWidth, Y: -y}, vec.Vec2{X: -x, Y: y}))
		pads.InsertRegion(transformedBox(l, t,
			vec.Vec2{X: x, Y: -y}, vec.Vec2{X: x + leadWidth, Y: y}))
	}
	return nil
}

func transformedBox(l *layout.Layout, t layout.Trans, p1, p2 vec.Vec2) region.Region {
	return l.Polygon(
		t.Apply(p1),
		t.Apply(vec.Vec2{X: p2.X, Y: p1.Y}),
		t.Apply(p2),
		t.Apply(vec.Vec2{X: p1.X, Y: p2.Y}),
	)
}
