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

// Command genpdf writes mask plots of all test cases.
// It creates a PDF and a PNG preview for every test case.
// Run from the module root directory.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/library"
	"seehuhn.de/go/pcell/maskplot"
	"seehuhn.de/go/pcell/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/plots", "output directory")
	paths := flag.Bool("paths", false, "draw waveguide centre lines")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	opts := &maskplot.Options{Margin: 20, Paths: *paths}
	lib := library.New()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := testcases.FullName(category, tc)
			if err := plot(lib, tc, filepath.Join(*outDir, name), opts); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func plot(lib *library.Library, tc testcases.TestCase, base string, opts *maskplot.Options) error {
	l := layout.New(0)
	c, err := lib.Generate(l, tc.Family, tc.Type, tc.Params)
	if err != nil {
		return err
	}

	if err := maskplot.WritePDF(base+".pdf", c, opts); err != nil {
		return err
	}

	f, err := os.Create(base + ".png")
	if err != nil {
		return err
	}
	if err := maskplot.WritePNG(f, c, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
