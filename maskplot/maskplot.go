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

// Package maskplot draws cells as PDF mask plots and PNG previews.
package maskplot

import (
	"errors"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/pcell"
	"seehuhn.de/go/pcell/layout"
	"seehuhn.de/go/pcell/raster"
)

// ErrEmpty is returned when a cell has no shapes to draw.
var ErrEmpty = errors.New("cell has no shapes")

// Style describes how the shapes of one layer are painted.
type Style struct {
	Layer string
	Gray  float64 // 0 is black, 1 is white
}

// DefaultStyles paints the layers generated in this module, from bottom
// to top.
var DefaultStyles = []Style{
	{layout.GroundGridAvoidance, 0.9},
	{layout.BaseMetalGapWoGrid, 0.6},
	{layout.BaseMetalAddition, 0.35},
	{layout.SISShadow, 0.5},
	{layout.SISJunction, 0.1},
	{layout.AirbridgePads, 0.25},
	{layout.AirbridgeFlyover, 0.45},
}

// Options control the output of [WritePDF], [Render] and [WritePNG].
// The zero value selects the defaults.
type Options struct {
	// Styles lists the layers to paint, from bottom to top.
	// If nil, DefaultStyles is used.
	Styles []Style

	// Margin is the space around the shapes, in µm.
	Margin float64

	// Size is the length of the longer side of the output, in PDF points
	// or pixels.  The default is 842 (A4).
	Size float64

	// Paths enables drawing the centre lines of waveguides.
	Paths bool
}

func (o *Options) styles() []Style {
	if o == nil || o.Styles == nil {
		return DefaultStyles
	}
	return o.Styles
}

// frame maps database units to output units.
type frame struct {
	k      float64 // output units per dbu
	tx, ty float64
	w, h   float64
}

func newFrame(c *layout.Cell, opts *Options) (frame, error) {
	bbox := c.BBox()
	if bbox.IsEmpty() {
		return frame{}, ErrEmpty
	}
	dbu := c.Layout().DBU
	var margin float64
	size := 842.0
	if opts != nil {
		margin = opts.Margin
		if opts.Size > 0 {
			size = opts.Size
		}
	}
	m := margin / dbu
	dx := float64(bbox.URx-bbox.LLx) + 2*m
	dy := float64(bbox.URy-bbox.LLy) + 2*m
	k := size / max(dx, dy)
	return frame{
		k:  k,
		tx: (m - float64(bbox.LLx)) * k,
		ty: (m - float64(bbox.LLy)) * k,
		w:  dx * k,
		h:  dy * k,
	}, nil
}

// WritePDF writes a mask plot of c, including all placed child cells, to
// the named file.
func WritePDF(fname string, c *layout.Cell, opts *Options) error {
	f, err := newFrame(c, opts)
	if err != nil {
		return err
	}

	paper := &pdf.Rectangle{URx: f.w, URy: f.h}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, f.w, f.h)
	page.Fill()

	page.Transform(matrix.Matrix{f.k, 0, 0, f.k, f.tx, f.ty})
	for _, st := range opts.styles() {
		reg := c.FlatShapes(st.Layer)
		if reg.Len() == 0 {
			continue
		}
		page.SetFillColor(color.DeviceGray(st.Gray))
		for _, p := range reg.Polygons() {
			for i, pt := range p {
				if i == 0 {
					page.MoveTo(float64(pt.X), float64(pt.Y))
				} else {
					page.LineTo(float64(pt.X), float64(pt.Y))
				}
			}
			page.ClosePath()
		}
		page.Fill()
	}

	if opts != nil && opts.Paths {
		dbu := c.Layout().DBU
		paths := c.FlatPaths(layout.WaveguideLength)
		if len(paths) > 0 {
			page.SetStrokeColor(color.DeviceGray(0))
			page.SetLineWidth(0.5 / f.k)
			page.SetLineCap(graphics.LineCapRound)
			page.SetLineJoin(graphics.LineJoinRound)
			for _, p := range paths {
				for i, pt := range p.Points {
					if i == 0 {
						page.MoveTo(pt.X/dbu, pt.Y/dbu)
					} else {
						page.LineTo(pt.X/dbu, pt.Y/dbu)
					}
				}
			}
			page.Stroke()
		}
	}

	if err := page.Close(); err != nil {
		return err
	}
	pcell.Logger().Info("mask plot written", "cell", c.Name(), "file", fname)
	return nil
}

// Render draws c into a grey-scale image.  North is up.
func Render(c *layout.Cell, opts *Options) (*image.Gray, error) {
	f, err := newFrame(c, opts)
	if err != nil {
		return nil, err
	}
	w, h := max(1, int(f.w+0.5)), max(1, int(f.h+0.5))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	r := raster.NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)})
	// image rows run downwards
	r.CTM = matrix.Matrix{f.k, 0, 0, -f.k, f.tx, float64(h) - f.ty}
	for _, st := range opts.styles() {
		reg := c.FlatShapes(st.Layer)
		if reg.Len() == 0 {
			continue
		}
		gray := float32(st.Gray * 255)
		r.FillRegion(reg, func(y, xMin int, coverage []float32) {
			row := img.Pix[y*img.Stride:]
			for i, cov := range coverage {
				cov = min(cov, 1)
				old := float32(row[xMin+i])
				row[xMin+i] = uint8(old*(1-cov) + gray*cov + 0.5)
			}
		})
	}
	return img, nil
}

// WritePNG writes a preview image of c in PNG format.
func WritePNG(w io.Writer, c *layout.Cell, opts *Options) error {
	img, err := Render(c, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Thumbnail scales img down so that its longer side is at most size
// pixels.  Smaller images are returned unchanged.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	long := max(b.Dx(), b.Dy())
	if long <= size || size <= 0 {
		return img
	}
	w := max(1, b.Dx()*size/long)
	h := max(1, b.Dy()*size/long)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
