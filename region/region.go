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

// Package region implements sets of polygons on an integer grid.
//
// All coordinates are in database units (dbu). Design coordinates in µm
// are converted with [Snap], [SnapPolygon] and [SnapBox], which round to
// the nearest grid point. Boolean operations accept regions which are
// already on the grid and return merged regions on the grid, so values
// of different resolution are never mixed.
//
// Merged regions consist of non-overlapping contours. Outer contours are
// oriented counter-clockwise, holes clockwise, and the nonzero winding
// rule decides which points are inside.
package region

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Point is a location on the database grid.
type Point struct {
	X, Y int64
}

// Vec returns the point in design units.
func (p Point) Vec(dbu float64) vec.Vec2 {
	return vec.Vec2{X: float64(p.X) * dbu, Y: float64(p.Y) * dbu}
}

// Polygon is a closed contour. The last point connects back to the first.
type Polygon []Point

// Area2 returns twice the signed area of the contour.
// The result is positive for counter-clockwise contours.
func (p Polygon) Area2() int64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum int64
	for i := range n {
		a := p[i]
		b := p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

// Reversed returns the contour with the opposite orientation.
func (p Polygon) Reversed() Polygon {
	res := slices.Clone(p)
	slices.Reverse(res)
	return res
}

// BBox returns the bounding box of the contour.
func (p Polygon) BBox() Box {
	if len(p) == 0 {
		return Box{}
	}
	b := Box{LLx: p[0].X, LLy: p[0].Y, URx: p[0].X, URy: p[0].Y}
	for _, pt := range p[1:] {
		b.LLx = min(b.LLx, pt.X)
		b.LLy = min(b.LLy, pt.Y)
		b.URx = max(b.URx, pt.X)
		b.URy = max(b.URy, pt.Y)
	}
	return b
}

// Vecs returns the contour points in design units.
func (p Polygon) Vecs(dbu float64) []vec.Vec2 {
	res := make([]vec.Vec2, len(p))
	for i, pt := range p {
		res[i] = pt.Vec(dbu)
	}
	return res
}

// Box is an axis-aligned rectangle on the database grid.
type Box struct {
	LLx, LLy, URx, URy int64
}

// IsEmpty reports whether the box has zero area.
func (b Box) IsEmpty() bool {
	return b.URx <= b.LLx || b.URy <= b.LLy
}

// Polygon returns the box as a counter-clockwise contour.
func (b Box) Polygon() Polygon {
	return Polygon{
		{b.LLx, b.LLy},
		{b.URx, b.LLy},
		{b.URx, b.URy},
		{b.LLx, b.URy},
	}
}

// Enlarged returns the box grown by dx and dy on each side.
func (b Box) Enlarged(dx, dy int64) Box {
	return Box{LLx: b.LLx - dx, LLy: b.LLy - dy, URx: b.URx + dx, URy: b.URy + dy}
}

// Snap converts a design coordinate to the nearest grid coordinate.
func Snap(v, dbu float64) int64 {
	return int64(math.Round(v / dbu))
}

// SnapPolygon converts a polygon given in design units to the grid.
func SnapPolygon(pts []vec.Vec2, dbu float64) Polygon {
	res := make(Polygon, len(pts))
	for i, pt := range pts {
		res[i] = Point{Snap(pt.X, dbu), Snap(pt.Y, dbu)}
	}
	return res
}

// SnapBox converts the box spanned by two corners, given in design units,
// to the grid. The corners may be given in any order.
func SnapBox(p1, p2 vec.Vec2, dbu float64) Polygon {
	x1, x2 := Snap(p1.X, dbu), Snap(p2.X, dbu)
	y1, y2 := Snap(p1.Y, dbu), Snap(p2.Y, dbu)
	return Box{LLx: min(x1, x2), LLy: min(y1, y2), URx: max(x1, x2), URy: max(y1, y2)}.Polygon()
}

// Region is a set of polygons on the integer grid.
//
// The zero value is an empty region. Regions are values: all methods
// except Insert return new regions and leave the receiver unchanged.
type Region struct {
	polys  []Polygon
	merged bool
}

// New returns a region holding the given polygons.
func New(polys ...Polygon) Region {
	var r Region
	r.Insert(polys...)
	return r
}

// FromBox returns a region holding a single box.
func FromBox(b Box) Region {
	if b.IsEmpty() {
		return Region{merged: true}
	}
	return Region{polys: []Polygon{b.Polygon()}, merged: true}
}

// FromContours returns a region holding the given contours, keeping
// their orientation. Clockwise contours are holes.
func FromContours(polys ...Polygon) Region {
	var r Region
	for _, p := range polys {
		if len(p) >= 3 {
			r.polys = append(r.polys, slices.Clone(p))
		}
	}
	return r
}

// Insert adds polygons to the region without merging them.
// Each polygon is oriented counter-clockwise, so that an inserted polygon
// always adds to the region.
func (r *Region) Insert(polys ...Polygon) {
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		if p.Area2() < 0 {
			p = p.Reversed()
		} else {
			p = slices.Clone(p)
		}
		r.polys = append(r.polys, p)
	}
	r.merged = false
}

// InsertRegion adds all contours of another region without merging.
// Holes of o keep their orientation.
func (r *Region) InsertRegion(o Region) {
	if len(o.polys) == 0 {
		return
	}
	for _, p := range o.polys {
		r.polys = append(r.polys, slices.Clone(p))
	}
	r.merged = len(r.polys) == len(o.polys) && o.merged
}

// Polygons returns the contours of the region.
// The returned slice must not be modified.
func (r Region) Polygons() []Polygon {
	return r.polys
}

// Len returns the number of contours.
func (r Region) Len() int {
	return len(r.polys)
}

// IsEmpty reports whether the region covers no area.
func (r Region) IsEmpty() bool {
	return len(r.Merged().polys) == 0
}

// IsMerged reports whether the contours are known not to overlap.
func (r Region) IsMerged() bool {
	return r.merged
}

// Area2 returns twice the area covered by the region.
func (r Region) Area2() int64 {
	var sum int64
	for _, p := range r.Merged().polys {
		sum += p.Area2()
	}
	return sum
}

// Area returns the area covered by the region, in square database units.
func (r Region) Area() float64 {
	return float64(r.Area2()) / 2
}

// BBox returns the bounding box of all contours.
func (r Region) BBox() Box {
	var b Box
	first := true
	for _, p := range r.polys {
		pb := p.BBox()
		if first {
			b = pb
			first = false
			continue
		}
		b.LLx = min(b.LLx, pb.LLx)
		b.LLy = min(b.LLy, pb.LLy)
		b.URx = max(b.URx, pb.URx)
		b.URy = max(b.URy, pb.URy)
	}
	return b
}

// Holes returns the number of clockwise contours.
func (r Region) Holes() int {
	count := 0
	for _, p := range r.polys {
		if p.Area2() < 0 {
			count++
		}
	}
	return count
}

// Moved returns the region translated by (dx, dy).
func (r Region) Moved(dx, dy int64) Region {
	res := Region{polys: make([]Polygon, len(r.polys)), merged: r.merged}
	for i, p := range r.polys {
		q := make(Polygon, len(p))
		for j, pt := range p {
			q[j] = Point{pt.X + dx, pt.Y + dy}
		}
		res.polys[i] = q
	}
	return res
}

// Transformed applies an affine map, given in database units, to the
// region and snaps the result to the grid. Mirroring maps keep the
// orientation conventions intact.
func (r Region) Transformed(m matrix.Matrix) Region {
	det := m[0]*m[3] - m[1]*m[2]
	res := Region{polys: make([]Polygon, 0, len(r.polys))}
	for _, p := range r.polys {
		q := make(Polygon, len(p))
		for j, pt := range p {
			x, y := float64(pt.X), float64(pt.Y)
			q[j] = Point{
				X: int64(math.Round(m[0]*x + m[2]*y + m[4])),
				Y: int64(math.Round(m[1]*x + m[3]*y + m[5])),
			}
		}
		if det < 0 {
			slices.Reverse(q)
		}
		res.polys = append(res.polys, q)
	}
	return res
}

// Canonical returns the merged region with every contour starting at its
// lowest, leftmost point and the contours sorted. Two regions cover the
// same set of grid points exactly when their canonical forms are equal.
func (r Region) Canonical() Region {
	m := r.Merged()
	res := Region{polys: make([]Polygon, len(m.polys)), merged: true}
	for i, p := range m.polys {
		start := 0
		for j, pt := range p {
			if comparePoints(pt, p[start]) < 0 {
				start = j
			}
		}
		q := make(Polygon, 0, len(p))
		q = append(q, p[start:]...)
		q = append(q, p[:start]...)
		res.polys[i] = q
	}
	slices.SortFunc(res.polys, func(a, b Polygon) int {
		if c := comparePoints(a[0], b[0]); c != 0 {
			return c
		}
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		for k := range a {
			if c := comparePoints(a[k], b[k]); c != 0 {
				return c
			}
		}
		return 0
	})
	return res
}

// Equal reports whether both regions cover exactly the same grid area.
func (r Region) Equal(o Region) bool {
	a, b := r.Canonical().polys, o.Canonical().polys
	return slices.EqualFunc(a, b, func(p, q Polygon) bool {
		return slices.Equal(p, q)
	})
}

func comparePoints(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
