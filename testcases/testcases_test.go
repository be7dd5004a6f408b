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

package testcases_test

import (
	"bytes"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"testing"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/library"
	"seehuhn.de/go/pcell/testcases"
)

var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

func TestAllCases(t *testing.T) {
	// region operations log lost geometry at error level
	errLog := &bytes.Buffer{}
	pcell.SetLogger(slog.New(slog.NewTextHandler(errLog, &slog.HandlerOptions{Level: slog.LevelError})))
	defer pcell.SetLogger(nil)

	lib := library.New()
	seen := make(map[string]bool)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := testcases.FullName(category, tc)
			if !validName.MatchString(tc.Name) {
				t.Errorf("invalid test case name %q", tc.Name)
			}
			if seen[name] {
				t.Errorf("duplicate test case %q", name)
			}
			seen[name] = true

			t.Run(name, func(t *testing.T) {
				errLog.Reset()
				l := layout.New(0)
				c, err := lib.Generate(l, tc.Family, tc.Type, tc.Params)
				if err != nil {
					t.Fatal(err)
				}
				if c.BBox().IsEmpty() {
					t.Error("cell has no shapes")
				}
				if len(c.Refpoints()) == 0 {
					t.Error("cell has no refpoints")
				}
				if errLog.Len() > 0 {
					t.Errorf("errors logged: %s", errLog)
				}
			})
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	lib := library.New()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			b.Run(testcases.FullName(category, tc), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					l := layout.New(0)
					if _, err := lib.Generate(l, tc.Family, tc.Type, tc.Params); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
