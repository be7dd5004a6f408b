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

package layout

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// PathShape is a polyline with a width, in µm.
type PathShape struct {
	Points []vec.Vec2
	Width  float64
}

// Length returns the length of the polyline.
func (p PathShape) Length() float64 {
	var sum float64
	for i := 1; i < len(p.Points); i++ {
		sum += p.Points[i].Sub(p.Points[i-1]).Length()
	}
	return sum
}

// Start returns the first point of the path.
func (p PathShape) Start() vec.Vec2 {
	return p.Points[0]
}

// End returns the last point of the path.
func (p PathShape) End() vec.Vec2 {
	return p.Points[len(p.Points)-1]
}

// Data returns the centre line as path data, for drawing.
func (p PathShape) Data() *path.Data {
	d := &path.Data{}
	for i, pt := range p.Points {
		if i == 0 {
			d = d.MoveTo(pt)
		} else {
			d = d.LineTo(pt)
		}
	}
	return d
}

// PathLength returns the total length of a sequence of path shapes.
func PathLength(paths []PathShape) float64 {
	var sum float64
	for _, p := range paths {
		sum += p.Length()
	}
	return sum
}

// MaxGap returns the largest distance between the end point of a path
// shape and the start point of the following one. Paths which are drawn
// in opposite direction are matched at the closest pair of end points.
func MaxGap(paths []PathShape) float64 {
	var gap float64
	for i := 1; i < len(paths); i++ {
		a, b := paths[i-1], paths[i]
		if len(a.Points) == 0 || len(b.Points) == 0 {
			return math.Inf(1)
		}
		d := min(
			a.End().Sub(b.Start()).Length(),
			a.End().Sub(b.End()).Length(),
			a.Start().Sub(b.Start()).Length(),
			a.Start().Sub(b.End()).Length(),
		)
		gap = max(gap, d)
	}
	return gap
}

// IsContinuous reports whether consecutive path shapes meet within tol.
func IsContinuous(paths []PathShape, tol float64) bool {
	return MaxGap(paths) <= tol
}
