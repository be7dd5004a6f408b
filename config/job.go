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

// Package config reads job files for the pcellgen command.
//
// A job file is a JSON document listing the cells to generate:
//
//	{
//	  "dbu": 0.001,
//	  "output_dir": "out",
//	  "cells": [
//	    {"name": "res1", "type": "Spiral Resonator", "params": {"length": 4000}},
//	    {"name": "jj", "family": "Junction Test Pads", "type": "Junction Test Pads Simple"}
//	  ]
//	}
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/pcell/layout"
)

// MaxFileSize is the largest job file accepted by [Load].
const MaxFileSize = 1 * 1024 * 1024

// ErrNoCells is returned by [Job.Validate] when a job lists no cells.
var ErrNoCells = errors.New("job lists no cells")

// Job describes one run of the generator.
// Unset optional fields are nil; the Get* methods supply defaults.
type Job struct {
	DBU       *float64 `json:"dbu,omitempty"`
	OutputDir string   `json:"output_dir,omitempty"`

	// PDF and PNG select the output formats.
	PDF     *bool `json:"pdf,omitempty"`
	PNG     *bool `json:"png,omitempty"`
	PNGSize *int  `json:"png_size,omitempty"`

	// Library is the path of a cell library database.  If set, all
	// generated cells are stored there.
	Library string `json:"library,omitempty"`

	Cells []Cell `json:"cells"`
}

// Cell is one cell to generate.
type Cell struct {
	// Name is used for the output files.
	Name string `json:"name"`

	// Family, if set, selects a generator family.  Unknown types then
	// fall back to the default of the family.
	Family string `json:"family,omitempty"`

	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// Load reads a job from a JSON file.
// The file must have a .json extension and be at most MaxFileSize bytes.
func Load(path string) (*Job, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("job file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat job file: %w", err)
	}
	if fileInfo.Size() > MaxFileSize {
		return nil, fmt.Errorf("job file too large: %d bytes (max %d)", fileInfo.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	job := &Job{}
	if err := json.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job: %w", err)
	}
	return job, nil
}

// Validate checks that the job can be run.
func (j *Job) Validate() error {
	if j.DBU != nil && *j.DBU <= 0 {
		return fmt.Errorf("dbu must be positive, got %g", *j.DBU)
	}
	if j.PNGSize != nil && *j.PNGSize <= 0 {
		return fmt.Errorf("png_size must be positive, got %d", *j.PNGSize)
	}
	if len(j.Cells) == 0 {
		return ErrNoCells
	}
	seen := make(map[string]bool, len(j.Cells))
	for i, c := range j.Cells {
		if c.Name == "" {
			return fmt.Errorf("cell %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate cell name %q", c.Name)
		}
		seen[c.Name] = true
		if c.Type == "" && c.Family == "" {
			return fmt.Errorf("cell %q needs a type or a family", c.Name)
		}
		if filepath.Base(c.Name) != c.Name {
			return fmt.Errorf("cell name %q must not contain a path", c.Name)
		}
	}
	return nil
}

// GetDBU returns the database unit in µm.
func (j *Job) GetDBU() float64 {
	if j.DBU == nil {
		return layout.DefaultDBU
	}
	return *j.DBU
}

// GetPDF reports whether PDF mask plots are written.  The default is true.
func (j *Job) GetPDF() bool {
	if j.PDF == nil {
		return true
	}
	return *j.PDF
}

// GetPNG reports whether PNG previews are written.
func (j *Job) GetPNG() bool {
	return j.PNG != nil && *j.PNG
}

// GetPNGSize returns the size of the longer side of PNG previews.
func (j *Job) GetPNGSize() int {
	if j.PNGSize == nil {
		return 842
	}
	return *j.PNGSize
}

// GetOutputDir returns the directory for output files.
func (j *Job) GetOutputDir() string {
	if j.OutputDir == "" {
		return "."
	}
	return j.OutputDir
}
