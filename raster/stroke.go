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

package raster

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a line segment of the stroked polyline.
type strokeSegment struct {
	A, B vec.Vec2 // end points
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// Stroker converts polylines with a width into polygons.
//
// The outline is returned as a set of counter-clockwise polygons: one
// rectangle per segment plus the wedges of the joins and the caps. The
// polygons overlap; their union, for example computed with
// [region.Region.Merged], is the stroked area.
//
// [region.Region.Merged]: seehuhn.de/go/pcell/region.Region.Merged
type Stroker struct {
	// Width is the full width of the stroke.
	Width float64

	// Cap sets the style of the end points (butt, round, or square).
	Cap graphics.LineCapStyle

	// Join sets the style of the corners (miter, round, or bevel).
	Join graphics.LineJoinStyle

	// MiterLimit caps the miter length, relative to the width. Must be
	// at least 1.
	MiterLimit float64

	// Tolerance is the maximal distance between a round cap or join and
	// its polygon approximation.
	Tolerance float64

	segs  []strokeSegment
	polys [][]vec.Vec2
}

// NewStroker returns a Stroker with butt caps and miter joins.
func NewStroker(width float64) *Stroker {
	return &Stroker{
		Width:      width,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
		Tolerance:  width / 1000,
	}
}

// Outline returns the polygons covering the stroked polyline.
// The returned slice is only valid until the next call.
func (s *Stroker) Outline(pts []vec.Vec2) [][]vec.Vec2 {
	s.polys = s.polys[:0]
	s.segs = s.segs[:0]
	for i := 0; i+1 < len(pts); i++ {
		s.addSegment(pts[i], pts[i+1])
	}
	if len(s.segs) == 0 {
		if len(pts) > 0 && s.Cap == graphics.LineCapRound {
			s.addPolygon(s.arc(pts[0], s.Width/2, vec.Vec2{X: 1}, 2*math.Pi, nil))
		}
		return s.polys
	}

	d := s.Width / 2
	for i := range s.segs {
		seg := &s.segs[i]
		s.addPolygon([]vec.Vec2{
			seg.A.Sub(seg.N.Mul(d)),
			seg.B.Sub(seg.N.Mul(d)),
			seg.B.Add(seg.N.Mul(d)),
			seg.A.Add(seg.N.Mul(d)),
		})
		if i > 0 {
			s.addJoin(seg.A, s.segs[i-1].T, seg.T, d)
		}
	}

	first := &s.segs[0]
	last := &s.segs[len(s.segs)-1]
	s.addCap(first.A, first.T.Mul(-1), d)
	s.addCap(last.B, last.T, d)
	return s.polys
}

func (s *Stroker) addSegment(a, b vec.Vec2) {
	dir := b.Sub(a)
	length := dir.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := dir.Mul(1 / length)
	s.segs = append(s.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// addPolygon records a polygon with counter-clockwise orientation.
func (s *Stroker) addPolygon(p []vec.Vec2) {
	if len(p) < 3 {
		return
	}
	var a2 float64
	for i := range p {
		q := p[(i+1)%len(p)]
		a2 += p[i].X*q.Y - q.X*p[i].Y
	}
	if math.Abs(a2) < zeroLengthThreshold {
		return
	}
	if a2 < 0 {
		for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
			p[i], p[j] = p[j], p[i]
		}
	}
	s.polys = append(s.polys, p)
}

// addCap adds the cap at end point P. T is the outward tangent.
func (s *Stroker) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch s.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		s.addPolygon([]vec.Vec2{P.Sub(N.Mul(d)), ext.Sub(N.Mul(d)), ext.Add(N.Mul(d)), P.Add(N.Mul(d))})
	case graphics.LineCapRound:
		// half disc through the outward direction
		s.addPolygon(s.arc(P, d, N, -math.Pi, nil))
	}
}

// addJoin fills the outer side of the corner at P where the tangent
// changes from T1 to T2. The inner side is covered by the overlapping
// segment rectangles.
func (s *Stroker) addJoin(P, T1, T2 vec.Vec2, d float64) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.X*T2.Y - T1.Y*T2.X
	if math.Abs(sinTheta) < collinearityThreshold && cosTheta > 0 {
		return
	}
	if cosTheta < cuspCosineThreshold {
		s.addCap(P, T1, d)
		s.addCap(P, T2.Mul(-1), d)
		return
	}

	// the outer side is on the right for left turns
	N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
	N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
	if sinTheta > 0 {
		N1, N2 = N1.Mul(-1), N2.Mul(-1)
	}
	o1 := P.Add(N1.Mul(d))
	o2 := P.Add(N2.Mul(d))

	switch s.Join {
	case graphics.LineJoinMiter:
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= s.MiterLimit+miterEpsilon {
			bisector := N1.Add(N2)
			if l := bisector.Length(); l > zeroLengthThreshold {
				miter := P.Add(bisector.Mul(d / (sinHalf * l)))
				s.addPolygon([]vec.Vec2{P, o1, miter, o2})
				return
			}
		}
		s.addPolygon([]vec.Vec2{P, o1, o2})

	case graphics.LineJoinBevel:
		s.addPolygon([]vec.Vec2{P, o1, o2})

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if sinTheta < 0 {
			angle = -angle
		}
		s.addPolygon(s.arc(P, d, N1, angle, []vec.Vec2{P}))
	}
}

// arc appends the points of a circular arc to pts and returns the result.
// startDir is the unit vector from the center to the arc start, sweep is
// the signed sweep angle in radians.
func (s *Stroker) arc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, pts []vec.Vec2) []vec.Vec2 {
	step := math.Pi / 4
	if s.Tolerance > 0 && s.Tolerance < radius {
		step = 2 * math.Acos(1-s.Tolerance/radius)
	}
	n := max(1, int(math.Ceil(math.Abs(sweep)/step)))
	for i := 0; i <= n; i++ {
		a := sweep * float64(i) / float64(n)
		cos, sin := math.Cos(a), math.Sin(a)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		pts = append(pts, center.Add(dir.Mul(radius)))
	}
	return pts
}

const (
	// defaultMiterLimit matches PDF and PostScript.
	defaultMiterLimit = 10.0

	// zeroLengthThreshold is the minimum length of a stroke segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold detects nearly collinear segments where no
	// join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself.
	// cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
