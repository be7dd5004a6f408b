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
	"errors"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/param"
)

// ErrSpacing is returned when a spiral is requested with a non-positive
// spacing between its turns.
var ErrSpacing = errors.New("spiral spacing must be positive")

// minGroundWidth is the narrowest ground strip left between neighbouring
// turns of a spiral with automatic spacing, in μm.
const minGroundWidth = 5.0

// maxSpiralCorners bounds the number of corners of a single spiral.
const maxSpiralCorners = 100000

// SpiralResonator is a coplanar waveguide of given length, wound up as a
// rectangular spiral. The input is at the origin, pointing in negative x
// direction; the spiral fills the box to the right of the input, spanning
// above_space upwards and below_space downwards.  Apart from the input
// itself, the gaps of the waveguide stay inside the box.
type SpiralResonator struct{}

// Name implements [Generator].
func (SpiralResonator) Name() string { return "Spiral Resonator" }

// Schema implements [Generator].
func (SpiralResonator) Schema() param.Schema {
	return Common.Extend(
		param.Decl{Name: "length", Kind: param.Double, Description: "Resonator length", Default: 5000.0, Unit: "μm"},
		param.Decl{Name: "above_space", Kind: param.Double, Description: "Space above the input", Default: 500.0, Unit: "μm"},
		param.Decl{Name: "below_space", Kind: param.Double, Description: "Space below the input", Default: 400.0, Unit: "μm"},
		param.Decl{Name: "right_space", Kind: param.Double, Description: "Space right of the input", Default: 1000.0, Unit: "μm"},
		param.Decl{Name: "x_spacing", Kind: param.Double, Description: "Spacing between vertical segments", Default: 30.0, Unit: "μm"},
		param.Decl{Name: "y_spacing", Kind: param.Double, Description: "Spacing between horizontal segments", Default: 30.0, Unit: "μm"},
		param.Decl{Name: "auto_spacing", Kind: param.Bool, Description: "Use automatic spacing", Default: true},
		param.Decl{Name: "bridges_top", Kind: param.Bool, Description: "Airbridges on top segments", Default: false},
		param.Decl{Name: "bridge_length", Kind: param.Double, Description: "Airbridge length", Default: 44.0, Unit: "μm"},
		param.Decl{Name: "bridge_type", Kind: param.String, Description: "Airbridge type",
			Default: string(DefaultAirbridgeType), Choices: airbridgeTypeChoices()},
	)
}

// Produce implements [Generator].
func (SpiralResonator) Produce(c *layout.Cell, p param.Set) error {
	a, b := p.Float("a"), p.Float("b")
	r := p.Float("r")
	n := p.Int("n")
	length := p.Float("length")

	// The first turn goes towards the larger space.  For more space
	// below, the spiral is built upside down and mirrored at the end.
	above, below := p.Float("above_space"), p.Float("below_space")
	flip := below > above
	if flip {
		above, below = below, above
	}
	// legs run half a waveguide width inside the box
	hw := a/2 + b
	box := spiralBox{r: r, top: above - hw, bottom: -below + hw, right: p.Float("right_space") - hw}

	xs, ys := p.Float("x_spacing"), p.Float("y_spacing")
	if p.Bool("auto_spacing") {
		xs = box.autoSpacing(a+2*b+minGroundWidth, length, n)
		ys = xs
	}
	if xs <= 0 || ys <= 0 {
		return ErrSpacing
	}

	pieces := RoundPath(box.corners(xs, ys), r, n)
	if capacity := piecesLength(pieces); capacity < length {
		pcell.Logger().Warn("spiral resonator does not fit",
			"length", length,
			"capacity", capacity)
	}
	pieces = cutPieces(pieces, length)

	// neighbouring bridges are staggered along the legs
	var tops []vec.Vec2
	for _, piece := range pieces {
		if isTopLeg(piece) {
			f := float64(len(tops)%3+1) / 4
			tops = append(tops, piece[0].Add(piece[1].Sub(piece[0]).Mul(f)))
		}
	}
	if flip {
		for _, piece := range pieces {
			for i := range piece {
				piece[i].Y = -piece[i].Y
			}
		}
		for i := range tops {
			tops[i].Y = -tops[i].Y
		}
	}

	if err := produceWaveguide(c, p, pieces, 0, 0); err != nil {
		return err
	}

	if !p.Bool("bridges_top") || len(tops) == 0 {
		return nil
	}
	bridgeGen := NewAirbridge(p.String("bridge_type"))
	bridge, err := Create(c.Layout(), bridgeGen, map[string]any{
		"bridge_length": p.Float("bridge_length"),
	})
	if err != nil {
		return err
	}
	for _, mid := range tops {
		c.InsertCell(bridge, layout.Translate(mid.X, mid.Y))
	}
	return nil
}

// spiralBox describes the space available for a spiral, with the input
// at the origin.  The first turn always goes up, so top >= -bottom.
type spiralBox struct {
	r           float64
	top, bottom float64
	right       float64
}

// corners returns the corner points of the longest spiral which fits
// into the box.  Each leg between two corners is at least 2r long, so
// that the rounded path has no kinks; the last leg needs only length r.
func (s spiralBox) corners(xs, ys float64) []vec.Vec2 {
	pts := []vec.Vec2{{}, {X: s.r}}
	if xs <= 0 || ys <= 0 {
		return pts
	}
	for i := 2; i < maxSpiralCorners; i++ {
		next, dir := s.corner(i, xs, ys)
		leg := next.Sub(pts[len(pts)-1]).Dot(dir)
		if leg >= 2*s.r {
			pts = append(pts, next)
			continue
		}
		if leg >= s.r {
			pts = append(pts, next)
		}
		break
	}
	return pts
}

// corner returns corner i of the infinite spiral, together with the
// direction of the leg leading to it.
func (s spiralBox) corner(i int, xs, ys float64) (vec.Vec2, vec.Vec2) {
	k := float64((i - 1) / 4)
	left := s.r + k*xs
	right := s.right - k*xs
	top := s.top - k*ys
	bottom := s.bottom + k*ys
	switch (i - 1) % 4 {
	case 0:
		return vec.Vec2{X: left, Y: s.bottom + (k-1)*ys}, vec.Vec2{X: -1}
	case 1:
		return vec.Vec2{X: left, Y: top}, vec.Vec2{Y: 1}
	case 2:
		return vec.Vec2{X: right, Y: top}, vec.Vec2{X: 1}
	default:
		return vec.Vec2{X: right, Y: bottom}, vec.Vec2{Y: -1}
	}
}

// capacity returns the length of the longest spiral with the given
// spacing.
func (s spiralBox) capacity(spacing float64, n int) float64 {
	return piecesLength(RoundPath(s.corners(spacing, spacing), s.r, n))
}

// autoSpacing returns the largest spacing for which a spiral of the given
// length fits into the box.  If no spacing down to minSpacing works,
// minSpacing is returned.
func (s spiralBox) autoSpacing(minSpacing, length float64, n int) float64 {
	lo := minSpacing
	hi := max(s.right, s.top-s.bottom)
	if hi <= lo || s.capacity(lo, n) < length {
		return lo
	}
	for range 60 {
		mid := (lo + hi) / 2
		if s.capacity(mid, n) >= length {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-6 {
			break
		}
	}
	return lo
}

// isTopLeg reports whether a piece is a straight segment running along the
// top of a spiral turn.
func isTopLeg(piece []vec.Vec2) bool {
	if len(piece) != 2 {
		return false
	}
	p0, p1 := piece[0], piece[1]
	return p1.X > p0.X && math.Abs(p1.Y-p0.Y) <= 1e-9 && p0.Y > 0
}
