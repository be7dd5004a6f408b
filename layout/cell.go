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
	"fmt"
	"maps"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/region"
)

// Port is a connection point of a cell.
type Port struct {
	Name string
	Pos  vec.Vec2
	Dir  vec.Vec2 // outward unit vector, zero if undefined
}

// Instance is a placement of a child cell.
type Instance struct {
	Cell  *Cell
	Trans Trans
}

// Cell is one generated artifact of a layout.
type Cell struct {
	name      string
	layout    *Layout
	shapes    map[int]region.Region
	paths     map[int][]PathShape
	refpoints map[string]vec.Vec2
	ports     []Port
	instances []Instance
}

// Name returns the unique name of the cell within its layout.
func (c *Cell) Name() string {
	return c.name
}

// Layout returns the layout which owns the cell.
func (c *Cell) Layout() *Layout {
	return c.layout
}

// Insert adds a region, in database units, to the named layer.
func (c *Cell) Insert(layer string, r region.Region) error {
	idx, err := c.layout.Layer(layer)
	if err != nil {
		return err
	}
	if r.Len() == 0 {
		return nil
	}
	old := c.shapes[idx]
	old.InsertRegion(r)
	c.shapes[idx] = old
	return nil
}

// Shapes returns the merged region of the named layer. Unknown layers
// give an empty region.
func (c *Cell) Shapes(layer string) region.Region {
	idx, err := c.layout.Layer(layer)
	if err != nil {
		return region.Region{}
	}
	r := c.shapes[idx]
	if !r.IsMerged() {
		r = r.Merged()
		c.shapes[idx] = r
	}
	return r
}

// LayerIndices returns the indices of all layers with shapes or paths,
// sorted.
func (c *Cell) LayerIndices() []int {
	seen := make(map[int]bool)
	for idx, r := range c.shapes {
		if r.Len() > 0 {
			seen[idx] = true
		}
	}
	for idx, p := range c.paths {
		if len(p) > 0 {
			seen[idx] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// InsertPath adds a path shape to the named layer.
func (c *Cell) InsertPath(layer string, p PathShape) error {
	idx, err := c.layout.Layer(layer)
	if err != nil {
		return err
	}
	p.Points = slices.Clone(p.Points)
	c.paths[idx] = append(c.paths[idx], p)
	return nil
}

// Paths returns the path shapes of the named layer, in insertion order.
func (c *Cell) Paths(layer string) []PathShape {
	idx, err := c.layout.Layer(layer)
	if err != nil {
		return nil
	}
	return c.paths[idx]
}

// AddRefpoint records a named reference point.
func (c *Cell) AddRefpoint(name string, p vec.Vec2) error {
	if _, dup := c.refpoints[name]; dup {
		return fmt.Errorf("cell %q: %w %q", c.name, ErrDuplicateRefpoint, name)
	}
	c.refpoints[name] = p
	return nil
}

// Refpoint returns the named reference point.
func (c *Cell) Refpoint(name string) (vec.Vec2, bool) {
	p, ok := c.refpoints[name]
	return p, ok
}

// Refpoints returns a copy of all reference points.
func (c *Cell) Refpoints() map[string]vec.Vec2 {
	return maps.Clone(c.refpoints)
}

// RefpointNames returns the sorted names of all reference points.
func (c *Cell) RefpointNames() []string {
	return slices.Sorted(maps.Keys(c.refpoints))
}

// AddPort records a port. This adds the refpoint "port_<name>" and, if
// dir is non-zero, the refpoint "port_<name>_corner" at distance r from
// the port in direction dir.
func (c *Cell) AddPort(name string, pos, dir vec.Vec2, r float64) error {
	if l := dir.Length(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	if err := c.AddRefpoint("port_"+name, pos); err != nil {
		return err
	}
	if dir != (vec.Vec2{}) {
		if err := c.AddRefpoint("port_"+name+"_corner", pos.Add(dir.Mul(r))); err != nil {
			return err
		}
	}
	c.ports = append(c.ports, Port{Name: name, Pos: pos, Dir: dir})
	return nil
}

// InsertPort records a port without adding refpoints.
func (c *Cell) InsertPort(p Port) {
	c.ports = append(c.ports, p)
}

// Ports returns the ports in the order they were added.
func (c *Cell) Ports() []Port {
	return slices.Clone(c.ports)
}

// Port returns the named port.
func (c *Cell) Port(name string) (Port, bool) {
	for _, p := range c.ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// InsertCell places a child cell and returns the refpoints of the child,
// transformed into the coordinates of c.
func (c *Cell) InsertCell(child *Cell, t Trans) map[string]vec.Vec2 {
	c.instances = append(c.instances, Instance{Cell: child, Trans: t})
	refs := make(map[string]vec.Vec2, len(child.refpoints))
	for name, p := range child.refpoints {
		refs[name] = t.Apply(p)
	}
	return refs
}

// Instances returns the placements of child cells.
func (c *Cell) Instances() []Instance {
	return slices.Clone(c.instances)
}

// FlatShapes returns the merged region of the named layer including all
// shapes of placed child cells.
func (c *Cell) FlatShapes(layer string) region.Region {
	var res region.Region
	c.collect(layer, Identity, &res)
	return res.Merged()
}

func (c *Cell) collect(layer string, t Trans, res *region.Region) {
	r := c.Shapes(layer)
	if t == Identity {
		res.InsertRegion(r)
	} else {
		res.InsertRegion(r.Transformed(t.DBUMatrix(c.layout.DBU)))
	}
	for _, inst := range c.instances {
		inst.Cell.collect(layer, inst.Trans.Then(t), res)
	}
}

// FlatPaths returns the path shapes of the named layer including those of
// placed child cells.
func (c *Cell) FlatPaths(layer string) []PathShape {
	var res []PathShape
	c.collectPaths(layer, Identity, &res)
	return res
}

func (c *Cell) collectPaths(layer string, t Trans, res *[]PathShape) {
	for _, p := range c.Paths(layer) {
		q := PathShape{Points: make([]vec.Vec2, len(p.Points)), Width: p.Width}
		for i, pt := range p.Points {
			q.Points[i] = t.Apply(pt)
		}
		*res = append(*res, q)
	}
	for _, inst := range c.instances {
		inst.Cell.collectPaths(layer, inst.Trans.Then(t), res)
	}
}

// BBox returns the bounding box, in database units, of all shapes in the
// cell and its children.
func (c *Cell) BBox() region.Box {
	var all region.Region
	for _, info := range c.layout.layers {
		r := c.FlatShapes(info.Name)
		if r.Len() > 0 {
			all.InsertRegion(r)
		}
	}
	return all.BBox()
}
