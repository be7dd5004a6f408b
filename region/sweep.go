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
	"cmp"
	"math"
	"math/big"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell"
)

// Boolean operations use a scanline sweep over a planar arrangement.
//
// First all edges of both operands are split at their mutual crossings
// and at vertices lying on other edges. Crossing points are rounded to
// the grid, and splitting is repeated until no two edges cross any more.
// Afterwards edges meet only in their end points, which are grid points.
//
// The y coordinates of all end points split the plane into horizontal
// bands. Inside a band no two edges cross, so sorting the edges by their
// x position (using exact integer arithmetic) and accumulating the
// winding numbers of both operands from left to right gives the spans
// where the result is inside.
//
// The left and right sides of each span are boundary pieces of the
// result. Horizontal boundary pieces are found at each band boundary by
// comparing the spans above and below. All pieces are directed so that
// the interior lies on the left; linking them end to end gives outer
// contours in counter-clockwise and holes in clockwise order.
//
// The x coordinate of an edge at a band boundary is computed once per
// edge and height by the same expression, and edges only meet at grid
// points, so the pieces meet at bit-identical end points and can be
// linked by exact comparison.

// Or returns the union of r and o.
func (r Region) Or(o Region) Region {
	return boolean(r.polys, o.polys, opOr)
}

// And returns the intersection of r and o.
func (r Region) And(o Region) Region {
	return boolean(r.polys, o.polys, opAnd)
}

// Sub returns the part of r which is not covered by o.
func (r Region) Sub(o Region) Region {
	return boolean(r.polys, o.polys, opSub)
}

// Xor returns the parts covered by exactly one of r and o.
func (r Region) Xor(o Region) Region {
	return boolean(r.polys, o.polys, opXor)
}

// Merged returns a region with the same coverage and non-overlapping
// contours.
func (r Region) Merged() Region {
	if r.merged {
		return r
	}
	return boolean(r.polys, nil, opOr)
}

type boolOp int

const (
	opOr boolOp = iota
	opAnd
	opSub
	opXor
)

func (op boolOp) inside(a, b bool) bool {
	switch op {
	case opOr:
		return a || b
	case opAnd:
		return a && b
	case opSub:
		return a && !b
	default:
		return a != b
	}
}

func boolean(a, b []Polygon, op boolOp) Region {
	res, open := sweep(a, b, op)
	if open > 0 {
		pcell.Logger().Error("open boundary chains in region operation",
			"chains", open,
			"contours", len(res.polys))
	}
	return res
}

// segment is a directed, non-horizontal polygon edge.
type segment struct {
	a, b    Point
	operand int // 0 for the first operand, 1 for the second
}

func (s segment) lo() Point {
	if s.a.Y < s.b.Y {
		return s.a
	}
	return s.b
}

func (s segment) hi() Point {
	if s.a.Y < s.b.Y {
		return s.b
	}
	return s.a
}

// appendSegments adds the non-horizontal edges of the given contours.
func appendSegments(segs []segment, polys []Polygon, operand int) []segment {
	for _, p := range polys {
		n := len(p)
		if n < 3 {
			continue
		}
		for i := range n {
			segs = appendSegment(segs, p[i], p[(i+1)%n], operand)
		}
	}
	return segs
}

// appendSegment adds the edge from a to b, unless it is horizontal.
// Horizontal edges do not change winding numbers along a scanline.
func appendSegment(segs []segment, a, b Point, operand int) []segment {
	if a.Y == b.Y {
		return segs
	}
	return append(segs, segment{a: a, b: b, operand: operand})
}

// maxSplitRounds bounds the number of passes of splitSegments.  Rounding
// a crossing point to the grid moves an edge by less than one unit, so
// new crossings are rare and each pass leaves fewer of them.
const maxSplitRounds = 16

// splitSegments splits the edges until they meet only at end points.
func splitSegments(segs []segment) []segment {
	for range maxSplitRounds {
		cuts := findCuts(segs)
		if len(cuts) == 0 {
			return segs
		}
		segs = applyCuts(segs, cuts)
	}
	pcell.Logger().Warn("edge splitting did not converge", "segments", len(segs))
	return segs
}

// findCuts returns, for every edge which needs splitting, the grid points
// where it must be cut.
func findCuts(segs []segment) map[int][]Point {
	order := make([]int, len(segs))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(i, j int) int {
		return cmp.Compare(segs[i].lo().Y, segs[j].lo().Y)
	})

	cuts := make(map[int][]Point)
	for ii, i := range order {
		p := segs[i]
		top := p.hi().Y
		xMin, xMax := min(p.a.X, p.b.X), max(p.a.X, p.b.X)
		for _, j := range order[ii+1:] {
			q := segs[j]
			if q.lo().Y >= top {
				break
			}
			if max(q.a.X, q.b.X) < xMin || min(q.a.X, q.b.X) > xMax {
				continue
			}
			cutPair(segs, i, j, cuts)
		}
	}
	return cuts
}

// cutPair records the cuts needed for edges i and j.
func cutPair(segs []segment, i, j int, cuts map[int][]Point) {
	p, q := segs[i], segs[j]
	o1 := orient(p.a, p.b, q.a)
	o2 := orient(p.a, p.b, q.b)
	o3 := orient(q.a, q.b, p.a)
	o4 := orient(q.a, q.b, p.b)
	if o1*o2 < 0 && o3*o4 < 0 {
		c := crossingPoint(p, q)
		addCut(cuts, i, p, c)
		addCut(cuts, j, q, c)
		return
	}

	// touching and collinear overlap
	if o1 == 0 && strictlyInside(p, q.a) {
		addCut(cuts, i, p, q.a)
	}
	if o2 == 0 && strictlyInside(p, q.b) {
		addCut(cuts, i, p, q.b)
	}
	if o3 == 0 && strictlyInside(q, p.a) {
		addCut(cuts, j, q, p.a)
	}
	if o4 == 0 && strictlyInside(q, p.b) {
		addCut(cuts, j, q, p.b)
	}
}

func addCut(cuts map[int][]Point, i int, s segment, c Point) {
	if c == s.a || c == s.b {
		return
	}
	cuts[i] = append(cuts[i], c)
}

// orient returns +1 if c lies left of the line from a to b, -1 if it lies
// right of it and 0 if the three points are collinear.
func orient(a, b, c Point) int {
	return cmp.Compare((b.X-a.X)*(c.Y-a.Y), (b.Y-a.Y)*(c.X-a.X))
}

// strictlyInside reports whether a point collinear with s lies between
// the end points of s.
func strictlyInside(s segment, c Point) bool {
	return s.lo().Y < c.Y && c.Y < s.hi().Y
}

// crossingPoint returns the grid point nearest to the crossing of two
// properly intersecting edges.
func crossingPoint(p, q segment) Point {
	d1x, d1y := float64(p.b.X-p.a.X), float64(p.b.Y-p.a.Y)
	d2x, d2y := float64(q.b.X-q.a.X), float64(q.b.Y-q.a.Y)
	wx, wy := float64(q.a.X-p.a.X), float64(q.a.Y-p.a.Y)
	t := (wx*d2y - wy*d2x) / (d1x*d2y - d1y*d2x)
	return Point{
		X: int64(math.Round(float64(p.a.X) + t*d1x)),
		Y: int64(math.Round(float64(p.a.Y) + t*d1y)),
	}
}

// applyCuts replaces every edge with cuts by the chain of edges through
// its cut points.
func applyCuts(segs []segment, cuts map[int][]Point) []segment {
	res := make([]segment, 0, len(segs)+2*len(cuts))
	for i, s := range segs {
		pts := cuts[i]
		if len(pts) == 0 {
			res = append(res, s)
			continue
		}
		dx, dy := s.b.X-s.a.X, s.b.Y-s.a.Y
		along := func(c Point) int64 {
			return (c.X-s.a.X)*dx + (c.Y-s.a.Y)*dy
		}
		slices.SortFunc(pts, func(u, v Point) int {
			if c := cmp.Compare(along(u), along(v)); c != 0 {
				return c
			}
			return comparePoints(u, v)
		})
		pts = slices.Compact(pts)

		prev := s.a
		for _, c := range pts {
			res = appendSegment(res, prev, c, s.operand)
			prev = c
		}
		res = appendSegment(res, prev, s.b, s.operand)
	}
	return res
}

// sweepEdge is an edge of the arrangement with y0 < y1.
type sweepEdge struct {
	x0, y0  int64 // lower end point
	x1, y1  int64 // upper end point
	wind    int   // +1 if the contour runs upwards along the edge, -1 otherwise
	operand int
}

func newSweepEdge(s segment) sweepEdge {
	lo, hi := s.lo(), s.hi()
	wind := 1
	if s.a.Y > s.b.Y {
		wind = -1
	}
	return sweepEdge{x0: lo.X, y0: lo.Y, x1: hi.X, y1: hi.Y, wind: wind, operand: s.operand}
}

// xAt returns the x coordinate of the edge at height y.
func (e *sweepEdge) xAt(y int64) float64 {
	switch y {
	case e.y0:
		return float64(e.x0)
	case e.y1:
		return float64(e.x1)
	}
	return float64(e.x0) + float64(y-e.y0)*float64(e.x1-e.x0)/float64(e.y1-e.y0)
}

// compareAt compares the x coordinates of two edges at height y2/2.
// Both edges must span this height.
func compareAt(p, q *sweepEdge, y2 int64) int {
	if p.x0 == q.x0 && p.y0 == q.y0 && p.x1 == q.x1 && p.y1 == q.y1 {
		return 0
	}
	pa, pb := Point{p.x0, p.y0}, Point{p.x1, p.y1}
	if orient(pa, pb, Point{q.x0, q.y0}) == 0 && orient(pa, pb, Point{q.x1, q.y1}) == 0 {
		return 0
	}

	// x = num / (2 dy)
	dyp, dyq := p.y1-p.y0, q.y1-q.y0
	np := 2*p.x0*dyp + (y2-2*p.y0)*(p.x1-p.x0)
	nq := 2*q.x0*dyq + (y2-2*q.y0)*(q.x1-q.x0)
	fp := float64(np) / float64(dyp)
	fq := float64(nq) / float64(dyq)
	if d := fp - fq; math.Abs(d) > 1e-3 {
		if d < 0 {
			return -1
		}
		return 1
	}
	lhs := new(big.Int).Mul(big.NewInt(np), big.NewInt(dyq))
	rhs := new(big.Int).Mul(big.NewInt(nq), big.NewInt(dyp))
	return lhs.Cmp(rhs)
}

// bandEdge is an edge clipped to the current band.
type bandEdge struct {
	e      *sweepEdge
	xb, xt float64 // x at the bottom and top of the band
	same   bool    // coincides with the previous edge inside the band
}

// span is a maximal x-interval inside the result, within one band.
type span struct {
	lb, lt float64 // left side at bottom and top
	rb, rt float64 // right side at bottom and top
}

// piece is a directed boundary segment of the result.
type piece struct {
	a, b vec.Vec2
}

// sweep computes a boolean operation and returns the result together
// with the number of boundary chains which could not be closed.
func sweep(a, b []Polygon, op boolOp) (Region, int) {
	var segs []segment
	segs = appendSegments(segs, a, 0)
	segs = appendSegments(segs, b, 1)
	if len(segs) == 0 {
		return Region{merged: true}, 0
	}
	segs = splitSegments(segs)

	edges := make([]sweepEdge, len(segs))
	ys := make([]int64, 0, 2*len(segs))
	for i, s := range segs {
		edges[i] = newSweepEdge(s)
		ys = append(ys, edges[i].y0, edges[i].y1)
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)
	slices.SortFunc(edges, func(p, q sweepEdge) int {
		return cmp.Compare(p.y0, q.y0)
	})

	var pieces []piece
	var prevTop [][2]float64 // top intervals of the previous band
	var active []*sweepEdge
	var band []bandEdge
	next := 0
	for i := 0; i+1 < len(ys); i++ {
		yb, yt := ys[i], ys[i+1]

		// update the active edge list
		for next < len(edges) && edges[next].y0 <= yb {
			active = append(active, &edges[next])
			next++
		}
		k := 0
		for _, e := range active {
			if e.y1 > yb {
				active[k] = e
				k++
			}
		}
		active = active[:k]

		y2 := yb + yt
		slices.SortFunc(active, func(p, q *sweepEdge) int {
			return compareAt(p, q, y2)
		})
		band = band[:0]
		for j, e := range active {
			band = append(band, bandEdge{
				e:    e,
				xb:   e.xAt(yb),
				xt:   e.xAt(yt),
				same: j > 0 && compareAt(active[j-1], e, y2) == 0,
			})
		}

		spans := bandSpans(band, op)

		bottom := make([][2]float64, 0, len(spans))
		top := make([][2]float64, 0, len(spans))
		for _, s := range spans {
			pieces = append(pieces,
				piece{a: vec.Vec2{X: s.lt, Y: float64(yt)}, b: vec.Vec2{X: s.lb, Y: float64(yb)}},
				piece{a: vec.Vec2{X: s.rb, Y: float64(yb)}, b: vec.Vec2{X: s.rt, Y: float64(yt)}},
			)
			bottom = append(bottom, [2]float64{s.lb, s.rb})
			top = append(top, [2]float64{s.lt, s.rt})
		}
		pieces = appendHorizontal(pieces, float64(yb), prevTop, bottom)
		prevTop = top
	}
	pieces = appendHorizontal(pieces, float64(ys[len(ys)-1]), prevTop, nil)

	polys, open := linkPieces(pieces)
	return Region{polys: polys, merged: true}, open
}

// bandSpans walks the sorted edges of one band and returns the spans
// inside the result. Coincident edges are processed together, so that
// shared edges of the two operands do not produce slivers.
func bandSpans(band []bandEdge, op boolOp) []span {
	var spans []span
	var wind [2]int
	inside := false
	var open bandEdge
	for i := 0; i < len(band); {
		j := i + 1
		for j < len(band) && band[j].same {
			j++
		}
		for _, be := range band[i:j] {
			wind[be.e.operand] += be.e.wind
		}
		now := op.inside(wind[0] != 0, wind[1] != 0)
		if now != inside {
			if now {
				open = band[i]
			} else {
				s := span{lb: open.xb, lt: open.xt, rb: band[i].xb, rt: band[i].xt}
				if s.rb > s.lb || s.rt > s.lt {
					spans = append(spans, s)
				}
			}
			inside = now
		}
		i = j
	}
	return spans
}

// appendHorizontal adds the horizontal boundary pieces at height y, given
// the intervals covered just below and just above.
func appendHorizontal(pieces []piece, y float64, below, above [][2]float64) []piece {
	if len(below) == 0 && len(above) == 0 {
		return pieces
	}
	xs := make([]float64, 0, 2*(len(below)+len(above)))
	for _, iv := range below {
		xs = append(xs, iv[0], iv[1])
	}
	for _, iv := range above {
		xs = append(xs, iv[0], iv[1])
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)

	for k := 0; k+1 < len(xs); k++ {
		u, v := xs[k], xs[k+1]
		mid := (u + v) / 2
		inBelow := covers(below, mid)
		inAbove := covers(above, mid)
		switch {
		case inBelow && !inAbove:
			// top side of the area below: run westwards
			pieces = append(pieces, piece{a: vec.Vec2{X: v, Y: y}, b: vec.Vec2{X: u, Y: y}})
		case inAbove && !inBelow:
			// bottom side of the area above: run eastwards
			pieces = append(pieces, piece{a: vec.Vec2{X: u, Y: y}, b: vec.Vec2{X: v, Y: y}})
		}
	}
	return pieces
}

func covers(intervals [][2]float64, x float64) bool {
	for _, iv := range intervals {
		if iv[0] < x && x < iv[1] {
			return true
		}
	}
	return false
}

// linkPieces joins the directed boundary pieces into closed contours and
// snaps them to the grid. It also returns the number of chains which
// did not close.
func linkPieces(pieces []piece) ([]Polygon, int) {
	starts := make(map[vec.Vec2][]int, len(pieces))
	for i, p := range pieces {
		starts[p.a] = append(starts[p.a], i)
	}
	used := make([]bool, len(pieces))

	var res []Polygon
	var loop []vec.Vec2
	open := 0
	for first := range pieces {
		if used[first] {
			continue
		}
		used[first] = true
		loop = append(loop[:0], pieces[first].a)
		cur := first
		closed := false
		for {
			end := pieces[cur].b
			if end == pieces[first].a {
				closed = true
				break
			}
			nxt := pickNext(pieces, starts[end], used, pieces[cur])
			if nxt < 0 {
				break
			}
			used[nxt] = true
			loop = append(loop, end)
			cur = nxt
		}
		if !closed {
			open++
			continue
		}
		if poly := snapContour(loop); poly != nil {
			res = append(res, poly)
		}
	}
	return res, open
}

// pickNext selects the unused piece leaving the end point of cur which
// turns furthest to the left. This keeps contours which touch in a single
// point apart.
func pickNext(pieces []piece, candidates []int, used []bool, cur piece) int {
	din := cur.b.Sub(cur.a)
	best := -1
	bestAngle := math.Inf(-1)
	for _, c := range candidates {
		if used[c] {
			continue
		}
		dout := pieces[c].b.Sub(pieces[c].a)
		angle := math.Atan2(din.X*dout.Y-din.Y*dout.X, din.Dot(dout))
		if angle > bestAngle {
			best = c
			bestAngle = angle
		}
	}
	return best
}

// snapContour removes collinear points, rounds to the grid and drops the
// contour if nothing with positive area remains.
func snapContour(loop []vec.Vec2) Polygon {
	pts := removeCollinear(slices.Clone(loop))
	poly := make(Polygon, 0, len(pts))
	for _, pt := range pts {
		q := Point{int64(math.Round(pt.X)), int64(math.Round(pt.Y))}
		if len(poly) > 0 && poly[len(poly)-1] == q {
			continue
		}
		poly = append(poly, q)
	}
	for len(poly) > 1 && poly[0] == poly[len(poly)-1] {
		poly = poly[:len(poly)-1]
	}
	poly = removeGridCollinear(poly)
	if len(poly) < 3 || poly.Area2() == 0 {
		return nil
	}
	return poly
}

// collinearTolerance is the relative tolerance for merging nearly
// collinear boundary pieces before snapping.
const collinearTolerance = 1e-9

func removeCollinear(pts []vec.Vec2) []vec.Vec2 {
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		n := len(pts)
		out := pts[:0:0]
		for i := range n {
			prev := pts[(i+n-1)%n]
			cur := pts[i]
			nxt := pts[(i+1)%n]
			d1 := cur.Sub(prev)
			d2 := nxt.Sub(cur)
			l1, l2 := d1.Length(), d2.Length()
			if l1 == 0 || l2 == 0 {
				changed = true
				continue
			}
			cross := d1.X*d2.Y - d1.Y*d2.X
			if math.Abs(cross) <= collinearTolerance*l1*l2 && d1.Dot(d2) > 0 {
				changed = true
				continue
			}
			out = append(out, cur)
		}
		pts = out
	}
	return pts
}

// removeGridCollinear removes points which lie on the straight line
// between their neighbours, including spikes.
func removeGridCollinear(p Polygon) Polygon {
	for changed := true; changed && len(p) >= 3; {
		changed = false
		n := len(p)
		out := p[:0:0]
		for i := range n {
			prev := p[(i+n-1)%n]
			cur := p[i]
			nxt := p[(i+1)%n]
			if cur == prev {
				changed = true
				continue
			}
			cross := (cur.X-prev.X)*(nxt.Y-cur.Y) - (cur.Y-prev.Y)*(nxt.X-cur.X)
			if cross == 0 {
				changed = true
				continue
			}
			out = append(out, cur)
		}
		p = out
	}
	return p
}
