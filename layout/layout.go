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

// Package layout holds generated mask geometry.
//
// A [Layout] owns a layer table and a set of named cells. Each [Cell]
// holds one merged region per layer, path shapes which record the centre
// lines of waveguides, named reference points, ports and placements of
// other cells. Coordinates of regions are in database units; all other
// coordinates are in µm.
//
// A Layout is not safe for concurrent mutation.
package layout

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/region"
)

// DefaultDBU is the default database unit in µm.
const DefaultDBU = 0.001

var (
	// ErrUnknownLayer is returned when a layer name is not in the layer
	// table.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrDuplicateRefpoint is returned when a refpoint name is used twice
	// within one cell.
	ErrDuplicateRefpoint = errors.New("duplicate refpoint")
)

// LayerInfo describes one mask layer.
type LayerInfo struct {
	Name        string
	Layer       int
	Datatype    int
	Description string
}

func (l LayerInfo) String() string {
	return l.Name + " (" + strconv.Itoa(l.Layer) + "/" + strconv.Itoa(l.Datatype) + ")"
}

// Names of the layers written by the generators.
const (
	BaseMetalGapWoGrid  = "base_metal_gap_wo_grid"
	GroundGridAvoidance = "ground_grid_avoidance"
	WaveguideLength     = "waveguide_length"
	SISJunction         = "SIS_junction"
	SISShadow           = "SIS_shadow"
	BaseMetalAddition   = "base_metal_addition"
	AirbridgePads       = "airbridge_pads"
	AirbridgeFlyover    = "airbridge_flyover"
)

// DefaultLayers is the layer table of a new layout.
var DefaultLayers = []LayerInfo{
	{BaseMetalGapWoGrid, 130, 1, "etched base metal, excluding the ground grid"},
	{GroundGridAvoidance, 133, 1, "areas kept free of the ground grid"},
	{WaveguideLength, 134, 1, "centre lines of waveguides, for length checks"},
	{SISJunction, 136, 1, "junction layer, first evaporation"},
	{SISShadow, 137, 1, "junction layer, shadow evaporation"},
	{BaseMetalAddition, 138, 1, "base metal kept in spite of etching"},
	{AirbridgePads, 141, 1, "airbridge landing pads"},
	{AirbridgeFlyover, 142, 1, "airbridge flyover"},
}

// Layout is a collection of cells sharing a layer table and a database
// unit.
type Layout struct {
	// DBU is the size of one database unit in µm.
	DBU float64

	layers     []LayerInfo
	layerIndex map[string]int
	cells      map[string]*Cell
	order      []*Cell
}

// New returns an empty layout with the default layer table.
// If dbu is not positive, [DefaultDBU] is used.
func New(dbu float64) *Layout {
	if dbu <= 0 {
		dbu = DefaultDBU
	}
	l := &Layout{
		DBU:        dbu,
		layerIndex: make(map[string]int),
		cells:      make(map[string]*Cell),
	}
	for _, info := range DefaultLayers {
		l.AddLayer(info)
	}
	return l
}

// AddLayer adds a layer to the layer table and returns its index.
// If a layer with the same name exists, its index is returned.
func (l *Layout) AddLayer(info LayerInfo) int {
	if idx, ok := l.layerIndex[info.Name]; ok {
		return idx
	}
	l.layers = append(l.layers, info)
	idx := len(l.layers) - 1
	l.layerIndex[info.Name] = idx
	return idx
}

// Layer returns the index of the named layer.
func (l *Layout) Layer(name string) (int, error) {
	idx, ok := l.layerIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownLayer, name)
	}
	return idx, nil
}

// Layers returns the layer table, ordered by index.
func (l *Layout) Layers() []LayerInfo {
	return slices.Clone(l.layers)
}

// LayerInfo returns the description of the layer with the given index.
func (l *Layout) LayerInfo(idx int) LayerInfo {
	return l.layers[idx]
}

// CreateCell adds a new empty cell. If the name is taken, a suffix "$1",
// "$2", ... is appended to make it unique.
func (l *Layout) CreateCell(name string) *Cell {
	unique := name
	for i := 1; l.cells[unique] != nil; i++ {
		unique = name + "$" + strconv.Itoa(i)
	}
	c := &Cell{
		name:      unique,
		layout:    l,
		shapes:    make(map[int]region.Region),
		paths:     make(map[int][]PathShape),
		refpoints: make(map[string]vec.Vec2),
	}
	l.cells[unique] = c
	l.order = append(l.order, c)
	return c
}

// Cell returns the cell with the given name, or nil.
func (l *Layout) Cell(name string) *Cell {
	return l.cells[name]
}

// Cells returns all cells in creation order.
func (l *Layout) Cells() []*Cell {
	return slices.Clone(l.order)
}

// ToDBU converts a length in µm to database units.
func (l *Layout) ToDBU(v float64) int64 {
	return region.Snap(v, l.DBU)
}

// Box returns a region holding the box with the given corners, in µm.
func (l *Layout) Box(p1, p2 vec.Vec2) region.Region {
	return region.New(region.SnapBox(p1, p2, l.DBU))
}

// Polygon returns a region holding a polygon given in µm.
func (l *Layout) Polygon(pts ...vec.Vec2) region.Region {
	return region.New(region.SnapPolygon(pts, l.DBU))
}
