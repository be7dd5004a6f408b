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
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/raster"
	"seehuhn.de/go/pcell/region"
)

// ArcPoints returns points on a circle of radius r around the origin,
// from angle start to angle stop (in radians), using n points per full
// circle but at least three points.
func ArcPoints(r, start, stop float64, n int) []vec.Vec2 {
	steps := max(int(math.Round(math.Abs(stop-start)*float64(n)/(2*math.Pi))), 2)
	res := make([]vec.Vec2, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := start + (stop-start)*float64(i)/float64(steps)
		res = append(res, vec.Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	return res
}

// RoundPath replaces the inner vertices of a polyline by circular arcs of
// radius r, with n points per full circle. The result is split into
// pieces, alternating between straight sections and arcs; consecutive
// pieces share their end points exactly. Straight sections of zero length
// are left out, and a radius of zero keeps the corners sharp.
func RoundPath(pts []vec.Vec2, r float64, n int) [][]vec.Vec2 {
	if len(pts) < 2 {
		return nil
	}
	var pieces [][]vec.Vec2
	start := pts[0]
	for i := 1; i+1 < len(pts); i++ {
		v := pts[i]
		d1 := v.Sub(pts[i-1])
		d2 := pts[i+1].Sub(v)
		l1, l2 := d1.Length(), d2.Length()
		if l1 == 0 || l2 == 0 {
			continue
		}
		t1 := d1.Mul(1 / l1)
		t2 := d2.Mul(1 / l2)
		cross := t1.X*t2.Y - t1.Y*t2.X
		theta := math.Atan2(cross, t1.Dot(t2))
		if math.Abs(theta) < 1e-12 {
			continue
		}

		if r <= 0 {
			// sharp corner
			pieces = appendStraight(pieces, start, v)
			start = v
			continue
		}
		dist := r * math.Tan(math.Abs(theta)/2)
		s := v.Sub(t1.Mul(dist))
		e := v.Add(t2.Mul(dist))
		pieces = appendStraight(pieces, start, s)
		pieces = append(pieces, arc(s, e, t1, theta, r, n))
		start = e
	}
	pieces = appendStraight(pieces, start, pts[len(pts)-1])
	return pieces
}

func appendStraight(pieces [][]vec.Vec2, a, b vec.Vec2) [][]vec.Vec2 {
	if b.Sub(a).Length() < 1e-12 {
		return pieces
	}
	return append(pieces, []vec.Vec2{a, b})
}

// arc returns the points of a circular arc from s to e. The arc leaves s
// in direction t and turns by theta radians.
func arc(s, e, t vec.Vec2, theta, r float64, n int) []vec.Vec2 {
	normal := vec.Vec2{X: -t.Y, Y: t.X}
	if theta < 0 {
		normal = normal.Mul(-1)
	}
	c := s.Add(normal.Mul(r))
	a0 := math.Atan2(s.Y-c.Y, s.X-c.X)

	steps := max(1, int(math.Ceil(float64(n)*math.Abs(theta)/(2*math.Pi))))
	res := make([]vec.Vec2, 0, steps+1)
	res = append(res, s)
	for j := 1; j < steps; j++ {
		a := a0 + theta*float64(j)/float64(steps)
		res = append(res, vec.Vec2{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return append(res, e)
}

// polylineLength returns the length of a polyline.
func polylineLength(pts []vec.Vec2) float64 {
	var sum float64
	for i := 1; i < len(pts); i++ {
		sum += pts[i].Sub(pts[i-1]).Length()
	}
	return sum
}

// piecesLength returns the total length of a sequence of polylines.
func piecesLength(pieces [][]vec.Vec2) float64 {
	var sum float64
	for _, p := range pieces {
		sum += polylineLength(p)
	}
	return sum
}

// minPieceLength is the shortest partial step kept by cutPieces, in μm.
const minPieceLength = 1e-9

// cutPieces returns the initial part of the given pieces with the given
// total length. If the pieces are shorter, they are returned unchanged.
func cutPieces(pieces [][]vec.Vec2, length float64) [][]vec.Vec2 {
	var res [][]vec.Vec2
	remaining := length
	for _, p := range pieces {
		l := polylineLength(p)
		if l < remaining {
			res = append(res, p)
			remaining -= l
			continue
		}
		if remaining <= 0 {
			break
		}
		// a partial step becomes a straight piece of its own, so that
		// arcs keep all their points on the circle
		for i := 1; i < len(p); i++ {
			seg := p[i].Sub(p[i-1])
			sl := seg.Length()
			if sl >= remaining {
				if i > 1 {
					res = append(res, p[:i])
				}
				if remaining > minPieceLength {
					res = append(res, []vec.Vec2{p[i-1], p[i-1].Add(seg.Mul(remaining / sl))})
				}
				break
			}
			remaining -= sl
		}
		break
	}
	return res
}

// endTangent returns the unit tangent at the last point of a piece, in
// the direction of travel. Pieces with three or more points are taken to
// lie on a circle.
func endTangent(piece []vec.Vec2) vec.Vec2 {
	n := len(piece)
	chord := piece[n-1].Sub(piece[n-2])
	chord = chord.Mul(1 / chord.Length())
	if n < 3 {
		return chord
	}
	p0, p1, p2 := piece[n-3], piece[n-2], piece[n-1]
	center, ok := circumcenter(p0, p1, p2)
	if !ok {
		return chord
	}
	radial := p2.Sub(center)
	t := vec.Vec2{X: -radial.Y, Y: radial.X}.Mul(1 / radial.Length())
	if t.Dot(chord) < 0 {
		t = t.Mul(-1)
	}
	return t
}

// startTangent returns the unit tangent at the first point of a piece, in
// the direction of travel.
func startTangent(piece []vec.Vec2) vec.Vec2 {
	rev := slices.Clone(piece)
	slices.Reverse(rev)
	return endTangent(rev).Mul(-1)
}

// circumcenter returns the center of the circle through three points.
// The result is false if the points are (nearly) collinear.
func circumcenter(a, b, c vec.Vec2) (vec.Vec2, bool) {
	ab, ac := b.Sub(a), c.Sub(a)
	d := 2 * (ab.X*ac.Y - ab.Y*ac.X)
	if math.Abs(d) <= 1e-12*ab.Length()*ac.Length() {
		return vec.Vec2{}, false
	}
	lb, lc := ab.Dot(ab), ac.Dot(ac)
	return vec.Vec2{
		X: a.X + (ac.Y*lb-ab.Y*lc)/d,
		Y: a.Y + (ab.X*lc-ac.X*lb)/d,
	}, true
}

// joinPieces concatenates pieces which share their end points.
func joinPieces(pieces [][]vec.Vec2) []vec.Vec2 {
	var res []vec.Vec2
	for _, p := range pieces {
		if len(res) > 0 && res[len(res)-1] == p[0] {
			p = p[1:]
		}
		res = append(res, p...)
	}
	return res
}

// strokeRegion returns the area covered by a polyline of the given width,
// with butt ends, snapped to the grid of l.
func strokeRegion(l *layout.Layout, pts []vec.Vec2, width float64) region.Region {
	if outline, ok := ribbon(pts, width/2); ok {
		return region.New(region.SnapPolygon(outline, l.DBU)).Merged()
	}

	s := raster.NewStroker(width)
	s.Tolerance = l.DBU / 4
	var r region.Region
	for _, p := range s.Outline(pts) {
		r.Insert(region.SnapPolygon(p, l.DBU))
	}
	return r.Merged()
}

// ribbon returns the outline of a polyline stroked with half width d as a
// single polygon, with mitered corners. Neighbouring segments share the
// corner vertices, so that no slivers appear after snapping. A first or
// last segment which is too short for the adjacent miter is merged into
// its neighbour. The result is false if a corner turns by more than 90
// degrees or if an offset line runs backwards elsewhere.
func ribbon(pts []vec.Vec2, d float64) ([]vec.Vec2, bool) {
	var clean []vec.Vec2
	for _, pt := range pts {
		if len(clean) > 0 && pt.Sub(clean[len(clean)-1]).Length() < 1e-12 {
			continue
		}
		clean = append(clean, pt)
	}
	for len(clean) >= 2 {
		outline, bad := ribbonOutline(clean, d)
		last := len(clean) - 2
		switch {
		case bad < 0:
			return outline, outline != nil
		case len(clean) > 2 && bad == 0:
			clean = slices.Delete(clean, 1, 2)
		case len(clean) > 2 && bad == last:
			clean = slices.Delete(clean, last, last+1)
		default:
			return nil, false
		}
	}
	return nil, false
}

// ribbonOutline computes the mitered outline of a polyline without
// repeated points. If an offset line runs backwards along segment i, the
// outline is nil and i is returned. For corners sharper than 90 degrees
// both results are nil and -1.
func ribbonOutline(pts []vec.Vec2, d float64) ([]vec.Vec2, int) {
	n := len(pts) - 1
	tangents := make([]vec.Vec2, n)
	for i := range tangents {
		dir := pts[i+1].Sub(pts[i])
		tangents[i] = dir.Mul(1 / dir.Length())
	}
	normal := func(t vec.Vec2) vec.Vec2 { return vec.Vec2{X: -t.Y, Y: t.X} }

	left := make([]vec.Vec2, 0, n+1)
	right := make([]vec.Vec2, 0, n+1)
	n0 := normal(tangents[0])
	left = append(left, pts[0].Add(n0.Mul(d)))
	right = append(right, pts[0].Sub(n0.Mul(d)))
	for i := 1; i < n; i++ {
		n1, n2 := normal(tangents[i-1]), normal(tangents[i])
		c := n1.Dot(n2)
		if c < -1e-9 {
			return nil, -1
		}
		m := n1.Add(n2).Mul(d / (1 + c))
		left = append(left, pts[i].Add(m))
		right = append(right, pts[i].Sub(m))
	}
	nn := normal(tangents[n-1])
	left = append(left, pts[n].Add(nn.Mul(d)))
	right = append(right, pts[n].Sub(nn.Mul(d)))

	for i, t := range tangents {
		if left[i+1].Sub(left[i]).Dot(t) <= 0 || right[i+1].Sub(right[i]).Dot(t) <= 0 {
			return nil, i
		}
	}

	outline := right
	for i := len(left) - 1; i >= 0; i-- {
		outline = append(outline, left[i])
	}
	return outline, -1
}

// waveguideRegions returns the gap and avoidance regions of a coplanar
// waveguide along the polyline pts.
func waveguideRegions(l *layout.Layout, pts []vec.Vec2, a, b, margin float64) (gap, avoidance region.Region) {
	outer := strokeRegion(l, pts, a+2*b)
	trace := strokeRegion(l, pts, a)
	gap = outer.Sub(trace)
	avoidance = strokeRegion(l, pts, a+2*b+2*margin)
	return gap, avoidance
}
