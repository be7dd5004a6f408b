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

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/pcell/element"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/teststructure"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.Context(), filepath.Join(t.TempDir(), "cells.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cells.db")
	s, err := Open(t.Context(), path)
	require.NoError(t, err)
	version, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	require.NoError(t, s.Close())

	// opening again finds nothing to migrate
	s, err = Open(t.Context(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	l := layout.New(layout.DefaultDBU)
	values := map[string]any{"finger_number": 4}
	c, err := element.Create(l, element.FingerCapacitorTaper{}, values)
	require.NoError(t, err)

	id, err := s.Save(ctx, c, element.FingerCapacitorTaper{}.Name(), values)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	l2 := layout.New(layout.DefaultDBU)
	got, err := s.Load(ctx, id, l2)
	require.NoError(t, err)

	assert.Equal(t, c.Name(), got.Name())
	for _, layer := range []string{layout.BaseMetalGapWoGrid, layout.GroundGridAvoidance} {
		assert.True(t, c.Shapes(layer).Equal(got.Shapes(layer)), "layer %s differs", layer)
	}
	assert.Equal(t, c.Refpoints(), got.Refpoints())
	assert.Equal(t, c.Ports(), got.Ports())

	e, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Finger Capacitor Taper", e.Generator)
	assert.Equal(t, map[string]any{"finger_number": 4.0}, e.Params)
	assert.Equal(t, layout.DefaultDBU, e.DBU)
}

func TestRoundTripFlattensInstances(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	l := layout.New(layout.DefaultDBU)
	c, err := element.Create(l, teststructure.JunctionTestPads{}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, c.Instances())

	id, err := s.Save(ctx, c, teststructure.JunctionTestPadsSimple, nil)
	require.NoError(t, err)

	got, err := s.Load(ctx, id, layout.New(layout.DefaultDBU))
	require.NoError(t, err)
	assert.Empty(t, got.Instances())
	want := c.FlatShapes(layout.SISJunction)
	assert.False(t, want.IsEmpty())
	assert.True(t, want.Equal(got.Shapes(layout.SISJunction)))
}

func TestRoundTripPaths(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	l := layout.New(layout.DefaultDBU)
	values := map[string]any{"length": 2000.0}
	c, err := element.Create(l, element.SpiralResonator{}, values)
	require.NoError(t, err)

	id, err := s.Save(ctx, c, "Spiral Resonator", values)
	require.NoError(t, err)
	got, err := s.Load(ctx, id, layout.New(layout.DefaultDBU))
	require.NoError(t, err)

	want := c.Paths(layout.WaveguideLength)
	assert.Equal(t, want, got.Paths(layout.WaveguideLength))
	assert.InDelta(t, 2000, layout.PathLength(got.Paths(layout.WaveguideLength)), 2)
}

func TestListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	l := layout.New(layout.DefaultDBU)
	var ids []string
	for range 3 {
		c, err := element.Create(l, element.WaveguideCoplanar{}, nil)
		require.NoError(t, err)
		id, err := s.Save(ctx, c, "Waveguide Coplanar", nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	var listed []string
	for _, e := range entries {
		listed = append(listed, e.ID)
	}
	assert.ElementsMatch(t, ids, listed)

	require.NoError(t, s.Delete(ctx, ids[0]))
	_, err = s.Load(ctx, ids[0], l)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, ids[0]), ErrNotFound)

	entries, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSaveAs(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()

	l := layout.New(layout.DefaultDBU)
	c, err := element.Create(l, element.WaveguideCoplanar{}, nil)
	require.NoError(t, err)
	id, err := s.SaveAs(ctx, "feedline", c, "Waveguide Coplanar", nil)
	require.NoError(t, err)

	e, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "feedline", e.Name)
	assert.Equal(t, "Waveguide Coplanar", e.Generator)
}
