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

// Package raster converts mask geometry to pixel coverage and outlines
// paths with a width.
//
// The [Rasterizer] computes exact area coverage per pixel, using the
// nonzero winding rule which is also used by package region. It is used
// for mask previews and to cross-check polygon areas. The [Stroker]
// turns a polyline, such as the centre line of a waveguide, into a set
// of polygons covering the stroked area.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/region"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer computes the fraction of each pixel covered by a shape,
// ranging from 0 (outside) to 1 (inside). Internal buffers are reused
// between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps layout coordinates to device pixels. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness is the curve approximation accuracy in device pixels.
	Flatness float64

	cover     []float32
	area      []float32
	edges     []edge
	activeIdx []int

	bboxFirst        bool
	devXMin, devXMax float64
	devYMin, devYMax float64
}

// NewRasterizer returns a Rasterizer with the given clip rectangle and an
// identity transformation.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Reset prepares the rasterizer for a new output area.
// The CTM is restored to the identity.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
}

// FillRegion fills all contours of a region. The coordinates of the
// region, in database units, are mapped through the CTM. The emit callback
// receives coverage row by row; its slice argument is valid only during
// the call.
func (r *Rasterizer) FillRegion(reg region.Region, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	for _, p := range reg.Polygons() {
		n := len(p)
		for i := range n {
			a, b := p[i], p[(i+1)%n]
			r.addEdge(vec.Vec2{X: float64(a.X), Y: float64(a.Y)}, vec.Vec2{X: float64(b.X), Y: float64(b.Y)})
		}
	}
	r.fill(emit)
}

// FillPolygons fills a set of closed polygons given in layout units.
func (r *Rasterizer) FillPolygons(polys [][]vec.Vec2, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	for _, p := range polys {
		n := len(p)
		for i := range n {
			r.addEdge(p[i], p[(i+1)%n])
		}
	}
	r.fill(emit)
}

// FillPath fills a path using the nonzero winding rule.
func (r *Rasterizer) FillPath(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()

	var current, subpath vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[k]
			subpath = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			// degree elevation
			c1 := current.Add(p.Coords[k].Sub(current).Mul(2.0 / 3))
			c2 := p.Coords[k+1].Add(p.Coords[k].Sub(p.Coords[k+1]).Mul(2.0 / 3))
			r.flattenCubic(current, c1, c2, p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = subpath
		}
	}
	if current != subpath {
		r.addEdge(current, subpath)
	}
	r.fill(emit)
}

// Area returns the total coverage of a region in device pixels.
func (r *Rasterizer) Area(reg region.Region) float64 {
	var sum float64
	r.FillRegion(reg, func(_, _ int, coverage []float32) {
		for _, c := range coverage {
			sum += float64(c)
		}
	})
	return sum
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the segment count.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * t)).Add(p2.Mul(3 * s * t * t)).Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// linear applies the linear part of the CTM.
func (r *Rasterizer) linear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasterizer) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxFirst = true
}

// addEdge transforms an edge to device space and records it.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	x0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	y0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	x1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	y1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := y1 - y0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.bboxFirst {
		r.devXMin, r.devXMax = min(x0, x1), max(x0, x1)
		r.devYMin, r.devYMax = min(y0, y1), max(y0, y1)
		r.bboxFirst = false
		return
	}
	r.devXMin = min(r.devXMin, x0, x1)
	r.devXMax = max(r.devXMax, x0, x1)
	r.devYMin = min(r.devYMin, y0, y1)
	r.devYMax = max(r.devYMax, y0, y1)
}

// Each pixel accumulates two values while the edges are processed:
//
//	cover: signed vertical extent of the edges crossing the pixel column
//	area:  cover weighted by the horizontal position within the pixel
//
// Integrating from left to right, the coverage of a pixel is the carried
// cover plus its own area value, clamped to [0, 1].

// fill scans the collected edges with an active edge list.
func (r *Rasterizer) fill(emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})
	r.activeIdx = r.activeIdx[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		yf, yfNext := float64(y), float64(y+1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yfNext {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			if accumulateEdge(e, y, r.cover, r.area, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// accumulateEdge adds the contribution of one edge within scanline y to
// the cover and area buffers, which are indexed by x - xMin. It reports
// whether the edge intersects the scanline.
func accumulateEdge(e *edge, y int, cover, area []float32, xMin, xMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xTop, xBot)))
	pixRight := int(math.Floor(max(xTop, xBot)))

	if pixRight < xMin {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return true
	}
	if pixLeft >= xMax {
		return true
	}

	if pixLeft == pixRight {
		addSegment(e, yTop, yBot, sign, pixLeft, cover, area, xMin, xMax)
		return true
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		segTop := max(min(ya, yb), yTop)
		segBot := min(max(ya, yb), yBot)
		if segBot <= segTop {
			continue
		}
		addSegment(e, segTop, segBot, sign, pix, cover, area, xMin, xMax)
	}
	return true
}

// addSegment handles the part of an edge between yTop and yBot which lies
// in pixel column pix.
func addSegment(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, xMin, xMax int) {
	c := sign * float32(yBot-yTop)
	switch {
	case pix < xMin:
		cover[0] += c
		area[0] += c
	case pix < xMax:
		xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
		idx := pix - xMin
		cover[idx] += c
		area[idx] += c * float32(1-(xMid-float64(pix)))
	}
}

// integrateScanline converts the accumulated values to coverage, in place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of a coverage row and its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimum vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10
)
