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
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/element"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/param"
	"seehuhn.de/go/pcell/region"
	"seehuhn.de/go/pcell/squid"
)

// Pad configurations of [JunctionTestPads].
const (
	TwoPort  = "2-port"
	FourPort = "4-port"
)

// JunctionTestPadsSimple is the name of the junction test pad generator.
const JunctionTestPadsSimple = "Junction Test Pads Simple"

// JunctionTestPads fills a rectangular area with probe pads, each group
// of pads connected by a squid.
//
// In the "2-port" configuration pads come in pairs, with refpoints
// "probe_<i>_l" and "probe_<i>_r".  In the "4-port" configuration pads
// come in groups of four, for four-point measurements.
type JunctionTestPads struct{}

// Name implements [element.Generator].
func (JunctionTestPads) Name() string { return JunctionTestPadsSimple }

// Schema implements [element.Generator].
func (JunctionTestPads) Schema() param.Schema {
	return element.Common.Extend(
		param.Decl{Name: "pad_width", Kind: param.Double, Description: "Pad width", Default: 500.0, Unit: "μm"},
		param.Decl{Name: "area_height", Kind: param.Double, Description: "Area height", Default: 1900.0, Unit: "μm"},
		param.Decl{Name: "area_width", Kind: param.Double, Description: "Area width", Default: 1300.0, Unit: "μm"},
		param.Decl{Name: "squid_type", Kind: param.String, Description: "SQUID Type",
			Default: string(squid.Default), Choices: squid.Choices()},
		param.Decl{Name: "junctions_horizontal", Kind: param.Bool,
			Description: "Horizontal (true) or vertical (false) junctions", Default: true},
		param.Decl{Name: "pad_spacing", Kind: param.Double, Description: "Spacing between different pad pairs", Default: 100.0, Unit: "μm"},
		param.Decl{Name: "only_pads", Kind: param.Bool, Description: "Only produce pads, no junctions", Default: false},
		param.Decl{Name: "pad_configuration", Kind: param.String, Description: "Pad configuration",
			Default: TwoPort, Choices: []any{TwoPort, FourPort}},
		param.Decl{Name: "junction_width", Kind: param.Double, Description: "Junction width for code generated squids", Default: 0.02, Unit: "μm"},
		param.Decl{Name: "junction_spacing", Kind: param.Double, Description: "Junction offset from the pad centre line", Default: 0.0, Unit: "μm"},
		param.Decl{Name: "extra_arm_length", Kind: param.Double, Description: "Extra length of the lower arm", Default: 0.0, Unit: "μm"},
	)
}

// Produce implements [element.Generator].
func (JunctionTestPads) Produce(c *layout.Cell, p param.Set) error {
	jt := &junctionTest{c: c, p: p}
	var err error
	switch p.String("pad_configuration") {
	case TwoPort:
		err = jt.twoPort()
	case FourPort:
		err = jt.fourPort()
	default:
		err = fmt.Errorf("unknown pad configuration %q", p.String("pad_configuration"))
	}
	if err != nil {
		return err
	}

	aw, ah := p.Float("area_width"), p.Float("area_height")
	return ProduceEtchedRegion(c, jt.pads, vec.Vec2{X: aw / 2, Y: ah / 2}, aw, ah, p.Float("margin"))
}

type junctionTest struct {
	c     *layout.Cell
	p     param.Set
	pads  region.Region
	squid *layout.Cell
}

func (jt *junctionTest) twoPort() error {
	l := jt.c.Layout()
	w := jt.p.Float("pad_width")
	s := jt.p.Float("pad_spacing")
	aw, ah := jt.p.Float("area_width"), jt.p.Float("area_height")
	step := s + w
	const armWidth = 8

	idx := 0
	horizontal := jt.p.Bool("junctions_horizontal")
	outer, inner := Arange(1.5*s+w, aw-step, 2*step), Arange(s+w/2, ah-w/2, step)
	if !horizontal {
		outer, inner = Arange(1.5*s+w, ah-step, 2*step), Arange(s+w/2, aw-w/2, step)
	}
	for _, u := range outer {
		for _, v := range inner {
			x, y := u, v
			left, right := vec.Vec2{X: x - step/2, Y: y}, vec.Vec2{X: x + step/2, Y: y}
			if !horizontal {
				x, y = v, u
				left, right = vec.Vec2{X: x, Y: y - step/2}, vec.Vec2{X: x, Y: y + step/2}
			}
			ProducePad(l, &jt.pads, left.X, left.Y, w, w)
			ProducePad(l, &jt.pads, right.X, right.Y, w, w)
			if err := jt.junction(x, y, armWidth); err != nil {
				return err
			}
			if err := jt.c.AddRefpoint(fmt.Sprintf("probe_%d_l", idx), left); err != nil {
				return err
			}
			if err := jt.c.AddRefpoint(fmt.Sprintf("probe_%d_r", idx), right); err != nil {
				return err
			}
			idx++
		}
	}
	return nil
}

func (jt *junctionTest) fourPort() error {
	w := jt.p.Float("pad_width")
	s := jt.p.Float("pad_spacing")
	aw, ah := jt.p.Float("area_width"), jt.p.Float("area_height")
	step := 2 * (w + s)
	onlyPads := jt.p.Bool("only_pads")

	fp := FourPointPads{
		Width: w, Height: w,
		SpacingX: s, SpacingY: s,
		ConnectJunction: !onlyPads,
	}
	angle := 0.0
	if !onlyPads && !jt.p.Bool("junctions_horizontal") {
		angle = 90
	}

	idx := 0
	for _, x := range Arange(1.5*s+w, aw-step/2, step) {
		for _, y := range Arange(1.5*s+w, ah-step/2, step) {
			t := layout.Trans{Angle: angle, Disp: vec.Vec2{X: x, Y: y}}
			if err := fp.Produce(jt.c, &jt.pads, t, fmt.Sprintf("probe_%d", idx)); err != nil {
				return err
			}
			if err := jt.junction(x, y, 5); err != nil {
				return err
			}
			idx++
		}
	}
	return nil
}

func (jt *junctionTest) junction(x, y, armWidth float64) error {
	if jt.p.Bool("only_pads") {
		return nil
	}
	if jt.squid == nil {
		sq, err := squid.Create(jt.c.Layout(), jt.p.String("squid_type"), jt.p.Float("junction_width"))
		if err != nil {
			return err
		}
		jt.squid = sq
	}
	jt.squidAndArms(x, y, armWidth)
	return nil
}

// squidAndArms places a squid at (x, y) and connects it to the pads on
// either side with arms of the given width.
func (jt *junctionTest) squidAndArms(x, y, armWidth float64) {
	l := jt.c.Layout()
	s := jt.p.Float("pad_spacing")
	extra := jt.p.Float("extra_arm_length")
	js := jt.p.Float("junction_spacing")

	if jt.p.Bool("junctions_horizontal") {
		t := layout.Translate(x, y-js)
		pl := squid.Place(jt.c, jt.squid, t)
		top := pl.Refpoints["port_common"]
		jt.pads.InsertRegion(pl.Unetch)
		// arm below
		jt.pads.InsertRegion(l.Box(
			vec.Vec2{X: x + 11 + extra, Y: y - js},
			vec.Vec2{X: x - s/2, Y: y - armWidth - js}))
		// arm above
		jt.pads.InsertRegion(l.Box(
			top.Add(vec.Vec2{X: -4}),
			top.Add(vec.Vec2{X: s / 2, Y: armWidth})))
		return
	}

	t := layout.Translate(x-js, y)
	pl := squid.Place(jt.c, jt.squid, t)
	top := pl.Refpoints["port_common"]
	jt.pads.InsertRegion(pl.Unetch)
	// arms below
	jt.pads.InsertRegion(l.Box(
		vec.Vec2{X: x + 11 + extra - js, Y: y},
		vec.Vec2{X: x - 11 - extra - js, Y: y - armWidth}))
	jt.pads.InsertRegion(l.Box(
		vec.Vec2{X: x + armWidth/2 - js, Y: y},
		vec.Vec2{X: x - armWidth/2 - js, Y: y - s/2}))
	// arm above
	jt.pads.InsertRegion(l.Box(
		top.Add(vec.Vec2{X: -armWidth / 2}),
		top.Add(vec.Vec2{X: armWidth / 2, Y: s / 2})))
}
