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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Trans is a placement transformation: optional mirroring at the x-axis,
// followed by a rotation by Angle degrees (counter-clockwise), followed by
// a displacement in µm.
type Trans struct {
	Angle  float64
	Mirror bool
	Disp   vec.Vec2
}

// Identity is the transformation which leaves all points in place.
var Identity = Trans{}

// Translate returns a pure displacement.
func Translate(x, y float64) Trans {
	return Trans{Disp: vec.Vec2{X: x, Y: y}}
}

// Rotate returns a rotation by angle degrees around the origin.
func Rotate(angle float64) Trans {
	return Trans{Angle: angle}
}

// MirrorX mirrors at the x-axis, mapping (x, y) to (x, -y).
var MirrorX = Trans{Mirror: true}

// MirrorY mirrors at the y-axis, mapping (x, y) to (-x, y).
var MirrorY = Trans{Angle: 180, Mirror: true}

// sincos returns exact values for multiples of 90 degrees.
func sincos(angle float64) (float64, float64) {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	switch a {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(a * math.Pi / 180)
}

// Matrix returns the transformation as an affine matrix in µm.
func (t Trans) Matrix() matrix.Matrix {
	sin, cos := sincos(t.Angle)
	s := 1.0
	if t.Mirror {
		s = -1
	}
	return matrix.Matrix{cos, sin, -s * sin, s * cos, t.Disp.X, t.Disp.Y}
}

// DBUMatrix returns the transformation as an affine matrix acting on
// database units.
func (t Trans) DBUMatrix(dbu float64) matrix.Matrix {
	m := t.Matrix()
	m[4] /= dbu
	m[5] /= dbu
	return m
}

// Apply transforms a point.
func (t Trans) Apply(p vec.Vec2) vec.Vec2 {
	m := t.Matrix()
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// ApplyVec transforms a direction vector, ignoring the displacement.
func (t Trans) ApplyVec(v vec.Vec2) vec.Vec2 {
	m := t.Matrix()
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// Then returns the transformation which first applies t and then o.
func (t Trans) Then(o Trans) Trans {
	angle := t.Angle
	if o.Mirror {
		angle = -angle
	}
	return Trans{
		Angle:  math.Mod(angle+o.Angle, 360),
		Mirror: t.Mirror != o.Mirror,
		Disp:   o.Apply(t.Disp),
	}
}

// Inverted returns the inverse transformation.
func (t Trans) Inverted() Trans {
	inv := Trans{Angle: -t.Angle, Mirror: t.Mirror}
	if t.Mirror {
		inv.Angle = t.Angle
	}
	inv.Disp = inv.ApplyVec(t.Disp).Mul(-1)
	return inv
}
