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

// Command export writes the geometry of all test cases to JSON, for
// comparison with other layout tools.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/library"
	"seehuhn.de/go/pcell/testcases"
)

func main() {
	var out struct {
		DBU       float64        `json:"dbu"`
		TestCases []jsonTestCase `json:"testcases"`
	}
	out.DBU = layout.DefaultDBU

	lib := library.New()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			jtc, err := toJSON(lib, category, tc)
			if err != nil {
				panic(fmt.Errorf("%s: %w", testcases.FullName(category, tc), err))
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name      string                  `json:"name"`
	Generator string                  `json:"generator"`
	Params    map[string]any          `json:"params,omitempty"`
	Layers    map[string][][][2]int64 `json:"layers"`
	Paths     map[string][]jsonPath   `json:"paths,omitempty"`
	Refpoints map[string][2]float64   `json:"refpoints"`
}

type jsonPath struct {
	Width  float64      `json:"width"`
	Points [][2]float64 `json:"points"`
}

func toJSON(lib *library.Library, category string, tc testcases.TestCase) (jsonTestCase, error) {
	l := layout.New(0)
	c, err := lib.Generate(l, tc.Family, tc.Type, tc.Params)
	if err != nil {
		return jsonTestCase{}, err
	}

	jtc := jsonTestCase{
		Name:      testcases.FullName(category, tc),
		Generator: c.Name(),
		Params:    tc.Params,
		Layers:    make(map[string][][][2]int64),
		Refpoints: make(map[string][2]float64),
	}
	for _, info := range l.Layers() {
		r := c.FlatShapes(info.Name).Canonical()
		for _, poly := range r.Polygons() {
			pts := make([][2]int64, len(poly))
			for i, pt := range poly {
				pts[i] = [2]int64{pt.X, pt.Y}
			}
			jtc.Layers[info.Name] = append(jtc.Layers[info.Name], pts)
		}

		for _, p := range c.FlatPaths(info.Name) {
			jp := jsonPath{Width: p.Width, Points: make([][2]float64, len(p.Points))}
			for i, pt := range p.Points {
				jp.Points[i] = [2]float64{pt.X, pt.Y}
			}
			if jtc.Paths == nil {
				jtc.Paths = make(map[string][]jsonPath)
			}
			jtc.Paths[info.Name] = append(jtc.Paths[info.Name], jp)
		}
	}
	for name, pt := range c.Refpoints() {
		jtc.Refpoints[name] = [2]float64{pt.X, pt.Y}
	}
	return jtc, nil
}
