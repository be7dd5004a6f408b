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

package region

// Size returns the region grown by dx in x direction and by dy in y
// direction, on each side. Negative values shrink the region. The result
// is the Minkowski sum with the box [-dx,dx]×[-dy,dy] (or the
// corresponding erosion), so a box grows by exactly dx and dy.
func (r Region) Size(dx, dy int64) Region {
	res := r.Merged()
	if dx != 0 {
		res = res.sizeAxis(dx, 0)
	}
	if dy != 0 {
		res = res.sizeAxis(0, dy)
	}
	return res
}

// Grow returns the region grown by d in both directions.
func (r Region) Grow(d int64) Region {
	return r.Size(d, d)
}

// sizeAxis handles one axis at a time; exactly one of dx and dy is
// non-zero.
func (r Region) sizeAxis(dx, dy int64) Region {
	if len(r.polys) == 0 {
		return r
	}
	if dx < 0 || dy < 0 {
		ax, ay := abs64(dx), abs64(dy)
		frame := FromBox(r.BBox().Enlarged(2*ax+1, 2*ay+1))
		outside := frame.Sub(r)
		return frame.Sub(outside.sizeAxis(ax, ay))
	}

	// A point is in the Minkowski sum with a segment exactly if it is in
	// the region or in the area swept by a boundary edge.
	polys := make([]Polygon, 0, len(r.polys)*5)
	polys = append(polys, r.polys...)
	for _, p := range r.polys {
		n := len(p)
		for i := range n {
			a := p[i]
			b := p[(i+1)%n]
			sweep := Polygon{
				{a.X - dx, a.Y - dy},
				{b.X - dx, b.Y - dy},
				{b.X + dx, b.Y + dy},
				{a.X + dx, a.Y + dy},
			}
			area := sweep.Area2()
			if area == 0 {
				continue
			}
			if area < 0 {
				sweep = sweep.Reversed()
			}
			polys = append(polys, sweep)
		}
	}
	return boolean(polys, nil, opOr)
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
