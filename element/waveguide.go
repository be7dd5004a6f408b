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
	"fmt"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/param"
)

// ErrShortPath is returned for waveguides with less than two points.
var ErrShortPath = errors.New("waveguide path needs at least two points")

// WaveguideCoplanar is a coplanar waveguide along a polyline. The corners
// of the polyline are rounded with radius r.
type WaveguideCoplanar struct{}

// Name implements [Generator].
func (WaveguideCoplanar) Name() string { return "Waveguide Coplanar" }

// Schema implements [Generator].
func (WaveguideCoplanar) Schema() param.Schema {
	return Common.Extend(
		param.Decl{Name: "path", Kind: param.List, Description: "Path points as x0, y0, x1, y1, ...",
			Default: []any{0.0, 0.0, 100.0, 0.0}, Unit: "μm"},
		param.Decl{Name: "term1", Kind: param.Double, Description: "Termination length start", Default: 0.0, Unit: "μm"},
		param.Decl{Name: "term2", Kind: param.Double, Description: "Termination length end", Default: 0.0, Unit: "μm"},
	)
}

// Produce implements [Generator].
func (WaveguideCoplanar) Produce(c *layout.Cell, p param.Set) error {
	coords := p.Floats("path")
	if len(coords)%2 != 0 {
		return fmt.Errorf("odd number of path coordinates (%d)", len(coords))
	}
	pts := make([]vec.Vec2, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pt := vec.Vec2{X: coords[i], Y: coords[i+1]}
		if len(pts) > 0 && pts[len(pts)-1] == pt {
			continue
		}
		pts = append(pts, pt)
	}
	if len(pts) < 2 {
		return ErrShortPath
	}

	pieces := RoundPath(pts, p.Float("r"), p.Int("n"))
	return produceWaveguide(c, p, pieces, p.Float("term1"), p.Float("term2"))
}

// produceWaveguide writes the geometry of a waveguide made of the given
// pieces: the gap and avoidance regions, one path shape per piece and
// the ports "a" at the start and "b" at the end.
func produceWaveguide(c *layout.Cell, p param.Set, pieces [][]vec.Vec2, term1, term2 float64) error {
	l := c.Layout()
	a, b := p.Float("a"), p.Float("b")
	margin := p.Float("margin")

	pts := joinPieces(pieces)
	if len(pts) < 2 {
		return ErrShortPath
	}
	gap, avoidance := waveguideRegions(l, pts, a, b, margin)

	// terminations etch the end of the center conductor
	start, end := pts[0], pts[len(pts)-1]
	dirStart := startTangent(pieces[0]).Mul(-1)
	dirEnd := endTangent(pieces[len(pieces)-1])
	if term1 > 0 {
		ext := []vec.Vec2{start, start.Add(dirStart.Mul(term1))}
		gap = gap.Or(strokeRegion(l, ext, a+2*b))
		avoidance = avoidance.Or(strokeRegion(l, []vec.Vec2{start, start.Add(dirStart.Mul(term1 + margin))}, a+2*b+2*margin))
	}
	if term2 > 0 {
		ext := []vec.Vec2{end, end.Add(dirEnd.Mul(term2))}
		gap = gap.Or(strokeRegion(l, ext, a+2*b))
		avoidance = avoidance.Or(strokeRegion(l, []vec.Vec2{end, end.Add(dirEnd.Mul(term2 + margin))}, a+2*b+2*margin))
	}

	if err := c.Insert(layout.BaseMetalGapWoGrid, gap); err != nil {
		return err
	}
	if err := c.Insert(layout.GroundGridAvoidance, avoidance); err != nil {
		return err
	}
	for _, piece := range pieces {
		err := c.InsertPath(layout.WaveguideLength, layout.PathShape{Points: piece, Width: a + 2*b})
		if err != nil {
			return err
		}
	}

	r := p.Float("r")
	if err := c.AddPort("a", start, dirStart, r); err != nil {
		return err
	}
	return c.AddPort("b", end, dirEnd, r)
}
