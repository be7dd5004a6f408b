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

package maskplot

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pcell/element"
	"seehuhn.de/go/pcell/layout"
)

func testCell(t *testing.T) *layout.Cell {
	t.Helper()
	l := layout.New(layout.DefaultDBU)
	c := l.CreateCell("test")
	err := c.Insert(layout.SISJunction, l.Box(vec.Vec2{Y: 50}, vec.Vec2{X: 100, Y: 100}))
	if err != nil {
		t.Fatal(err)
	}
	err = c.Insert(layout.GroundGridAvoidance, l.Box(vec.Vec2{}, vec.Vec2{X: 100, Y: 50}))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func near(a, b uint8) bool {
	return a+1 >= b && b+1 >= a
}

func TestRender(t *testing.T) {
	c := testCell(t)
	img, err := Render(c, &Options{Size: 100})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("image size %dx%d", b.Dx(), b.Dy())
	}
	// the junction layer is on top, north is up
	if v := img.GrayAt(50, 10).Y; !near(v, 26) {
		t.Errorf("top half has value %d", v)
	}
	if v := img.GrayAt(50, 90).Y; !near(v, 230) {
		t.Errorf("bottom half has value %d", v)
	}
}

func TestRenderMargin(t *testing.T) {
	c := testCell(t)
	img, err := Render(c, &Options{Size: 120, Margin: 10})
	if err != nil {
		t.Fatal(err)
	}
	if v := img.GrayAt(2, 2).Y; v != 255 {
		t.Errorf("margin has value %d", v)
	}
}

func TestEmpty(t *testing.T) {
	l := layout.New(layout.DefaultDBU)
	c := l.CreateCell("empty")
	if _, err := Render(c, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("got error %v, want %v", err, ErrEmpty)
	}
	fname := filepath.Join(t.TempDir(), "empty.pdf")
	if err := WritePDF(fname, c, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("got error %v, want %v", err, ErrEmpty)
	}
}

func TestWritePNG(t *testing.T) {
	l := layout.New(layout.DefaultDBU)
	c, err := element.Create(l, element.FingerCapacitorTaper{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := WritePNG(buf, c, &Options{Size: 300}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); max(b.Dx(), b.Dy()) != 300 {
		t.Errorf("image size %dx%d", b.Dx(), b.Dy())
	}
}

func TestWritePDF(t *testing.T) {
	l := layout.New(layout.DefaultDBU)
	c, err := element.Create(l, element.SpiralResonator{}, map[string]any{"length": 3000.0})
	if err != nil {
		t.Fatal(err)
	}
	fname := filepath.Join(t.TempDir(), "spiral.pdf")
	if err := WritePDF(fname, c, &Options{Paths: true, Margin: 20}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("not a PDF file")
	}
}

func TestThumbnail(t *testing.T) {
	c := testCell(t)
	img, err := Render(c, &Options{Size: 200})
	if err != nil {
		t.Fatal(err)
	}
	th := Thumbnail(img, 50)
	if b := th.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("thumbnail size %dx%d", b.Dx(), b.Dy())
	}
	if Thumbnail(img, 500) != img {
		t.Error("small image was scaled")
	}
}
