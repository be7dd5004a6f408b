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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeJob(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeJob(t, "job.json", `{
		"dbu": 0.005,
		"output_dir": "plots",
		"png": true,
		"library": "cells.db",
		"cells": [
			{"name": "res", "type": "Spiral Resonator", "params": {"length": 4000}},
			{"name": "jj", "family": "Junction Test Pads", "type": "nonexistent"}
		]
	}`)

	job, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := job.GetDBU(); got != 0.005 {
		t.Errorf("dbu = %g, want 0.005", got)
	}
	if !job.GetPDF() || !job.GetPNG() {
		t.Errorf("pdf=%t png=%t, want both", job.GetPDF(), job.GetPNG())
	}
	if job.GetPNGSize() != 842 {
		t.Errorf("png size = %d", job.GetPNGSize())
	}
	if job.GetOutputDir() != "plots" || job.Library != "cells.db" {
		t.Errorf("unexpected paths %q %q", job.GetOutputDir(), job.Library)
	}

	want := []Cell{
		{Name: "res", Type: "Spiral Resonator", Params: map[string]any{"length": 4000.0}},
		{Name: "jj", Family: "Junction Test Pads", Type: "nonexistent"},
	}
	if d := cmp.Diff(want, job.Cells); d != "" {
		t.Errorf("cells (-want +got):\n%s", d)
	}
}

func TestDefaults(t *testing.T) {
	job := &Job{Cells: []Cell{{Name: "c", Type: "Airbridge"}}}
	if err := job.Validate(); err != nil {
		t.Fatal(err)
	}
	if job.GetDBU() != 0.001 || !job.GetPDF() || job.GetPNG() || job.GetOutputDir() != "." {
		t.Errorf("unexpected defaults: %+v", job)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name, file, content, msg string
	}{
		{"extension", "job.yaml", `{}`, ".json extension"},
		{"syntax", "job.json", `{"cells": [`, "parse job JSON"},
		{"no cells", "job.json", `{"cells": []}`, "no cells"},
		{"dbu", "job.json", `{"dbu": -1, "cells": [{"name": "a", "type": "x"}]}`, "dbu must be positive"},
		{"png size", "job.json", `{"png_size": 0, "cells": [{"name": "a", "type": "x"}]}`, "png_size"},
		{"no name", "job.json", `{"cells": [{"type": "x"}]}`, "has no name"},
		{"duplicate", "job.json", `{"cells": [{"name": "a", "type": "x"}, {"name": "a", "type": "y"}]}`, "duplicate"},
		{"no type", "job.json", `{"cells": [{"name": "a"}]}`, "type or a family"},
		{"path", "job.json", `{"cells": [{"name": "../a", "type": "x"}]}`, "must not contain a path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeJob(t, tc.file, tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error %q does not mention %q", err, tc.msg)
			}
		})
	}
}

func TestLoadTooLarge(t *testing.T) {
	big := `{"cells": [], "pad": "` + strings.Repeat("x", MaxFileSize) + `"}`
	path := writeJob(t, "big.json", big)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("got %v, want size error", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want ErrNotExist", err)
	}
}

func TestValidateNoCells(t *testing.T) {
	if err := (&Job{}).Validate(); !errors.Is(err, ErrNoCells) {
		t.Errorf("got %v", err)
	}
}
