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

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// RoundCorners replaces every corner of the region by a circular arc.
//
// Convex corners get radius rOuter and concave corners radius rInner,
// both in database units. The arcs are approximated with n points per
// full circle. Where two corners are too close for the full radius, the
// radius is reduced so that each corner uses at most half of the adjacent
// edges. The result is snapped to the grid and merged.
func (r Region) RoundCorners(rInner, rOuter float64, n int) Region {
	m := r.Merged()
	if n < 3 {
		n = 3
	}
	res := make([]Polygon, 0, len(m.polys))
	for _, p := range m.polys {
		pts := roundContour(p.Vecs(1), rInner, rOuter, n)
		poly := make(Polygon, 0, len(pts))
		for _, pt := range pts {
			q := Point{int64(math.Round(pt.X)), int64(math.Round(pt.Y))}
			if len(poly) > 0 && poly[len(poly)-1] == q {
				continue
			}
			poly = append(poly, q)
		}
		if len(poly) >= 3 {
			res = append(res, poly)
		}
	}
	// contours keep their orientation, so that holes stay holes
	return boolean(res, nil, opOr)
}

func roundContour(p []vec.Vec2, rInner, rOuter float64, n int) []vec.Vec2 {
	k := len(p)
	res := make([]vec.Vec2, 0, k*4)
	for i := range k {
		prev := p[(i+k-1)%k]
		v := p[i]
		next := p[(i+1)%k]

		d1 := v.Sub(prev)
		d2 := next.Sub(v)
		l1, l2 := d1.Length(), d2.Length()
		if l1 == 0 || l2 == 0 {
			continue
		}
		t1 := d1.Mul(1 / l1)
		t2 := d2.Mul(1 / l2)
		cross := t1.X*t2.Y - t1.Y*t2.X
		theta := math.Atan2(cross, t1.Dot(t2))
		abs := math.Abs(theta)

		radius := rInner
		if cross > 0 {
			radius = rOuter
		}
		if radius <= 0 || abs < 1e-9 {
			res = append(res, v)
			continue
		}

		tanHalf := math.Tan(abs / 2)
		dist := radius * tanHalf
		if limit := math.Min(l1, l2) / 2; dist > limit {
			dist = limit
			radius = dist / tanHalf
		}

		s := v.Sub(t1.Mul(dist))
		normal := vec.Vec2{X: -t1.Y, Y: t1.X} // left of the incoming edge
		if cross < 0 {
			normal = normal.Mul(-1)
		}
		c := s.Add(normal.Mul(radius))

		steps := max(1, int(math.Ceil(float64(n)*abs/(2*math.Pi))))
		start := s.Sub(c)
		a0 := math.Atan2(start.Y, start.X)
		for j := 0; j <= steps; j++ {
			a := a0 + theta*float64(j)/float64(steps)
			res = append(res, vec.Vec2{
				X: c.X + radius*math.Cos(a),
				Y: c.Y + radius*math.Sin(a),
			})
		}
	}
	return res
}
