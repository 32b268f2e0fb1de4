// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package surface

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"gioui.org/f32"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Software surface backed by an RGBA image. Used for image export and headless rendering.
// The text face has a fixed size, TextStyle.Size is ignored.
type Raster struct {
	img  *image.RGBA
	face font.Face
	z    *vector.Rasterizer
}

const circleSegments = 32

func NewRaster(size image.Point) *Raster {
	return &Raster{
		img:  image.NewRGBA(image.Rectangle{Max: size}),
		face: basicfont.Face7x13,
		z:    vector.NewRasterizer(size.X, size.Y),
	}
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Size() image.Point {
	return r.img.Bounds().Size()
}

func (r *Raster) Clear(c color.NRGBA) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) FillRect(rect image.Rectangle, c color.NRGBA) {
	rect = rect.Canon().Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Raster) StrokeLine(from, to f32.Point, width float32, c color.NRGBA, dashes []float32) {
	if len(dashes) == 0 {
		r.fillQuad(from, to, width, c)
		return
	}
	d := to.Sub(from)
	length := float32(math.Hypot(float64(d.X), float64(d.Y)))
	if length == 0 {
		return
	}
	dir := d.Div(length)
	var pos float32
	for i := 0; pos < length; i++ {
		dashLen := dashes[i%len(dashes)]
		if dashLen <= 0 {
			// avoid an endless loop on broken patterns
			dashLen = 1
		}
		end := min(pos+dashLen, length)
		if i%2 == 0 {
			r.fillQuad(from.Add(dir.Mul(pos)), from.Add(dir.Mul(end)), width, c)
		}
		pos = end
	}
}

func (r *Raster) StrokePolyline(points []f32.Point, width float32, c color.NRGBA) {
	for i := 1; i < len(points); i++ {
		r.fillQuad(points[i-1], points[i], width, c)
		if i < len(points)-1 && width > 2 {
			// close the gaps at the joints
			r.FillCircle(points[i], width/2, c)
		}
	}
}

func (r *Raster) FillCircle(center f32.Point, radius float32, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	r.beginPath()
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x := center.X + radius*float32(math.Cos(a))
		y := center.Y + radius*float32(math.Sin(a))
		if i == 0 {
			r.z.MoveTo(x, y)
		} else {
			r.z.LineTo(x, y)
		}
	}
	r.fillPath(c)
}

func (r *Raster) DrawText(pos f32.Point, txt string, style TextStyle) {
	size := r.MeasureText(txt, style)
	m := r.face.Metrics()
	baseline := fixed.I(int(math.Round(float64(pos.Y)))) + (m.Ascent-m.Descent)/2
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(style.Color),
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(int(pos.X) + alignOffset(style.Align, size.X)), Y: baseline},
	}
	d.DrawString(txt)
}

func (r *Raster) MeasureText(txt string, style TextStyle) image.Point {
	return image.Point{
		X: font.MeasureString(r.face, txt).Ceil(),
		Y: r.face.Metrics().Height.Ceil(),
	}
}

// Draw src over the current content.
func (r *Raster) Compose(src *Raster) {
	draw.Draw(r.img, r.img.Bounds(), src.img, image.Point{}, draw.Over)
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) fillQuad(from, to f32.Point, width float32, c color.NRGBA) {
	d := to.Sub(from)
	length := float32(math.Hypot(float64(d.X), float64(d.Y)))
	if length == 0 {
		return
	}
	width = max(width, 1)
	n := f32.Pt(-d.Y, d.X).Mul(width / 2 / length)
	r.beginPath()
	r.z.MoveTo(from.X+n.X, from.Y+n.Y)
	r.z.LineTo(to.X+n.X, to.Y+n.Y)
	r.z.LineTo(to.X-n.X, to.Y-n.Y)
	r.z.LineTo(from.X-n.X, from.Y-n.Y)
	r.fillPath(c)
}

func (r *Raster) beginPath() {
	s := r.Size()
	r.z.Reset(s.X, s.Y)
	r.z.DrawOp = draw.Over
}

func (r *Raster) fillPath(c color.NRGBA) {
	r.z.ClosePath()
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}
