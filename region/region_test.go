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
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

func box(llx, lly, urx, ury int64) Region {
	return FromBox(Box{LLx: llx, LLy: lly, URx: urx, URy: ury})
}

func diamond(r int64) Region {
	return New(Polygon{{r, 0}, {0, r}, {-r, 0}, {0, -r}})
}

func TestBooleanArea(t *testing.T) {
	type testCase struct {
		name      string
		a, b      Region
		or, and   int64 // twice the expected area
		sub, xor  int64
		orContour int
	}
	cases := []testCase{
		{
			name: "overlapping boxes",
			a:    box(0, 0, 10, 10), b: box(5, 5, 15, 15),
			or: 350, and: 50, sub: 150, xor: 300,
			orContour: 1,
		},
		{
			name: "disjoint boxes",
			a:    box(0, 0, 10, 10), b: box(20, 0, 30, 10),
			or: 400, and: 0, sub: 200, xor: 400,
			orContour: 2,
		},
		{
			name: "touching corners",
			a:    box(0, 0, 10, 10), b: box(10, 10, 20, 20),
			or: 400, and: 0, sub: 200, xor: 400,
			orContour: 2,
		},
		{
			name: "shared edge",
			a:    box(0, 0, 10, 10), b: box(10, 0, 20, 10),
			or: 400, and: 0, sub: 200, xor: 400,
			orContour: 1,
		},
		{
			name: "box and diamond",
			a:    box(-10, -10, 10, 10), b: diamond(14),
			or: 928, and: 656, sub: 144, xor: 272,
			orContour: 1,
		},
		{
			name: "identical",
			a:    box(0, 0, 7, 3), b: box(0, 0, 7, 3),
			or: 42, and: 42, sub: 0, xor: 0,
			orContour: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			or := tc.a.Or(tc.b)
			if got := or.Area2(); got != tc.or {
				t.Errorf("or: got %d, want %d", got, tc.or)
			}
			if got := or.Len(); got != tc.orContour {
				t.Errorf("or: got %d contours, want %d", got, tc.orContour)
			}
			if got := tc.a.And(tc.b).Area2(); got != tc.and {
				t.Errorf("and: got %d, want %d", got, tc.and)
			}
			if got := tc.a.Sub(tc.b).Area2(); got != tc.sub {
				t.Errorf("sub: got %d, want %d", got, tc.sub)
			}
			if got := tc.a.Xor(tc.b).Area2(); got != tc.xor {
				t.Errorf("xor: got %d, want %d", got, tc.xor)
			}

			// inclusion-exclusion
			if tc.or+tc.and != tc.a.Area2()+tc.b.Area2() {
				t.Errorf("areas do not add up")
			}
			if !or.Equal(tc.b.Or(tc.a)) {
				t.Errorf("union is not symmetric")
			}
		})
	}
}

func TestSubCreatesHole(t *testing.T) {
	r := box(0, 0, 10, 10).Sub(box(3, 3, 7, 7))
	if r.Len() != 2 {
		t.Fatalf("got %d contours, want 2", r.Len())
	}
	if r.Holes() != 1 {
		t.Errorf("got %d holes, want 1", r.Holes())
	}
	if got := r.Area2(); got != 2*84 {
		t.Errorf("got area2 %d, want %d", got, 2*84)
	}

	// filling the hole gives the box back
	filled := r.Or(box(3, 3, 7, 7))
	if !filled.Equal(box(0, 0, 10, 10)) {
		t.Errorf("filled region differs from box: %v", filled.Canonical().Polygons())
	}
}

func TestMergedOverlapping(t *testing.T) {
	var r Region
	r.Insert(box(0, 0, 10, 10).Polygons()...)
	r.Insert(box(0, 0, 10, 10).Polygons()...)
	r.Insert(Polygon{{0, 0}, {0, 10}, {10, 0}}) // clockwise
	if r.IsMerged() {
		t.Fatal("region with inserted polygons reports merged")
	}
	m := r.Merged()
	if m.Len() != 1 || len(m.Polygons()[0]) != 4 {
		t.Errorf("unexpected merged contours %v", m.Polygons())
	}
	if m.Area2() != 200 {
		t.Errorf("got area2 %d, want 200", m.Area2())
	}
}

func TestEmpty(t *testing.T) {
	var r Region
	if !r.IsEmpty() {
		t.Error("zero region is not empty")
	}
	if !box(5, 5, 5, 10).IsEmpty() {
		t.Error("zero width box is not empty")
	}
	if !box(0, 0, 10, 10).And(box(20, 20, 30, 30)).IsEmpty() {
		t.Error("disjoint intersection is not empty")
	}
	if got := r.Or(box(0, 0, 1, 1)); got.Area2() != 2 {
		t.Errorf("union with empty region: got area2 %d", got.Area2())
	}
}

func TestSnap(t *testing.T) {
	const dbu = 0.001
	for _, v := range []float64{0, 1, -2.5, 0.0004, 0.0005, 123.4567, -0.0015} {
		g := Snap(v, dbu)
		again := Snap(float64(g)*dbu, dbu)
		if g != again {
			t.Errorf("snap of %g not idempotent: %d != %d", v, g, again)
		}
		if math.Abs(float64(g)*dbu-v) > dbu/2+1e-12 {
			t.Errorf("snap of %g too far: %d", v, g)
		}
	}

	p := SnapBox(vec.Vec2{X: 2, Y: -1}, vec.Vec2{X: -2, Y: 1}, dbu)
	if p.Area2() != 2*4000*2000 {
		t.Errorf("unexpected snapped box %v", p)
	}
}

func TestSize(t *testing.T) {
	type testCase struct {
		name   string
		in     Region
		dx, dy int64
		want   Region
	}
	cases := []testCase{
		{"grow", box(0, 0, 10, 20), 3, 5, box(-3, -5, 13, 25)},
		{"grow x only", box(0, 0, 10, 20), 4, 0, box(-4, 0, 14, 20)},
		{"shrink", box(0, 0, 10, 20), -2, -3, box(2, 3, 8, 17)},
		{"mixed", box(0, 0, 10, 20), 2, -3, box(-2, 3, 12, 17)},
		{"shrink away", box(0, 0, 10, 20), -6, 0, Region{}},
		{"grow merges", box(0, 0, 10, 10).Or(box(14, 0, 20, 10)), 2, 0, box(-2, 0, 22, 10)},
		{"grow closes hole",
			box(0, 0, 10, 10).Sub(box(4, 4, 6, 6)), 1, 1, box(-1, -1, 11, 11)},
		{"shrink square", box(0, 0, 10, 10), -1, -1, box(1, 1, 9, 9)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Size(tc.dx, tc.dy)
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got.Canonical().Polygons(), tc.want.Canonical().Polygons())
			}
		})
	}
}

func TestSizeDiamond(t *testing.T) {
	// growing a diamond in x by d adds a band of width 2d
	r := diamond(10).Size(5, 0)
	want := New(Polygon{{15, 0}, {5, 10}, {-5, 10}, {-15, 0}, {-5, -10}, {5, -10}})
	if !r.Equal(want) {
		t.Errorf("got %v", r.Canonical().Polygons())
	}
}

func TestRoundCorners(t *testing.T) {
	const side = 1000
	const radius = 100
	r := box(0, 0, side, side).RoundCorners(radius, radius, 64)

	exact := side*side - (4-math.Pi)*radius*radius
	if a := r.Area(); a > side*side || a < exact-3000 || a > exact+10 {
		t.Errorf("unexpected area %g, exact rounded area %g", a, exact)
	}
	if r.Len() != 1 {
		t.Errorf("got %d contours", r.Len())
	}
	if b := r.BBox(); b != (Box{0, 0, side, side}) {
		t.Errorf("bounding box changed to %v", b)
	}

	// concave corners add area
	l := box(0, 0, 200, 100).Or(box(0, 0, 100, 200))
	lr := l.RoundCorners(20, 0, 32)
	if lr.Area2() <= l.Area2() {
		t.Errorf("inner rounding did not add area: %d <= %d", lr.Area2(), l.Area2())
	}

	// a radius larger than the edges is reduced
	small := box(0, 0, 10, 10).RoundCorners(0, 100, 64)
	if small.IsEmpty() || small.Area2() >= 200 {
		t.Errorf("unexpected area2 %d", small.Area2())
	}
}

func TestTransformed(t *testing.T) {
	r := box(0, 0, 10, 20).Sub(box(2, 2, 4, 4))
	mirrored := r.Transformed(matrix.Scale(-1, 1))
	if mirrored.Area2() != r.Area2() {
		t.Errorf("mirroring changed the area: %d != %d", mirrored.Area2(), r.Area2())
	}
	if !mirrored.Equal(box(-10, 0, 0, 20).Sub(box(-4, 2, -2, 4))) {
		t.Errorf("unexpected mirrored region %v", mirrored.Canonical().Polygons())
	}

	rot := box(0, 0, 10, 20).Transformed(matrix.Matrix{0, 1, -1, 0, 0, 0})
	if !rot.Equal(box(-20, 0, 0, 10)) {
		t.Errorf("unexpected rotated region %v", rot.Canonical().Polygons())
	}

	moved := r.Moved(5, -5)
	if !moved.Equal(box(5, -5, 15, 15).Sub(box(7, -3, 9, -1))) {
		t.Errorf("unexpected moved region")
	}
}
