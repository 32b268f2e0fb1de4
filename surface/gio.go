// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package surface

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
)

// Persistent gio layer. Drawing calls are recorded into an operation list owned by the layer,
// which is kept until the next Clear and can be replayed in every frame using Add.
type Gio struct {
	ops       op.Ops
	macro     op.MacroOp
	recording bool
	call      op.CallOp
	gtx       layout.Context
	th        *material.Theme
	size      image.Point
}

func NewGio(th *material.Theme, size image.Point) *Gio {
	g := &Gio{th: th, size: size}
	g.gtx.Ops = &g.ops
	return g
}

// Take over metrics of the current frame, and set the layer size.
func (g *Gio) Update(gtx layout.Context, size image.Point) {
	g.gtx.Metric = gtx.Metric
	g.gtx.Now = gtx.Now
	g.size = size
}

func (g *Gio) Size() image.Point {
	return g.size
}

func (g *Gio) Clear(c color.NRGBA) {
	g.ops.Reset()
	g.call = op.CallOp{}
	g.macro = op.Record(&g.ops)
	g.recording = true
	// Gio ops start from an empty list, a transparent clear needs no operation.
	if c.A == 0 {
		return
	}
	g.FillRect(image.Rectangle{Max: g.size}, c)
}

// Replay the recorded layer into the frame operations.
func (g *Gio) Add(ops *op.Ops) {
	if g.recording {
		g.call = g.macro.Stop()
		g.recording = false
	}
	g.call.Add(ops)
}

func (g *Gio) begin() *op.Ops {
	if !g.recording {
		g.Clear(color.NRGBA{})
	}
	return &g.ops
}

func (g *Gio) FillRect(r image.Rectangle, c color.NRGBA) {
	paint.FillShape(g.begin(), c, clip.Rect(r.Canon()).Op())
}

func (g *Gio) StrokeLine(from, to f32.Point, width float32, c color.NRGBA, dashes []float32) {
	var path stroke.Path
	path.Segments = []stroke.Segment{
		stroke.MoveTo(from),
		stroke.LineTo(to),
	}
	ops := g.begin()
	paint.FillShape(
		ops,
		c,
		stroke.Stroke{Path: path, Width: width, Cap: stroke.FlatCap, Dashes: stroke.Dashes{Dashes: dashes}}.Op(ops),
	)
}

func (g *Gio) StrokePolyline(points []f32.Point, width float32, c color.NRGBA) {
	if len(points) < 2 {
		return
	}
	var path stroke.Path
	path.Segments = append(path.Segments, stroke.MoveTo(points[0]))
	for _, p := range points[1:] {
		path.Segments = append(path.Segments, stroke.LineTo(p))
	}
	// Draw all data with a single stroke.
	ops := g.begin()
	paint.FillShape(
		ops,
		c,
		stroke.Stroke{Path: path, Width: width, Join: stroke.RoundJoin}.Op(ops),
	)
}

func (g *Gio) FillCircle(center f32.Point, radius float32, c color.NRGBA) {
	r := image.Rectangle{
		Min: f32.Pt(center.X-radius, center.Y-radius).Round(),
		Max: f32.Pt(center.X+radius, center.Y+radius).Round(),
	}
	ops := g.begin()
	paint.FillShape(ops, c, clip.Ellipse(r).Op(ops))
}

func (g *Gio) DrawText(pos f32.Point, txt string, style TextStyle) {
	g.begin()
	call, size := g.recordText(txt, style)
	stack := op.Offset(image.Point{
		X: int(pos.X) + alignOffset(style.Align, size.X),
		Y: int(pos.Y) - size.Y/2,
	}).Push(g.gtx.Ops)
	// Run recorded drawing.
	call.Add(g.gtx.Ops)
	stack.Pop()
}

func (g *Gio) MeasureText(txt string, style TextStyle) image.Point {
	var ops op.Ops
	gtx := g.gtx
	gtx.Ops = &ops
	_, size := layoutText(gtx, g.th, g.size, txt, style)
	return size
}

func (g *Gio) recordText(txt string, style TextStyle) (op.CallOp, image.Point) {
	return layoutText(g.gtx, g.th, g.size, txt, style)
}

func layoutText(gtx layout.Context, th *material.Theme, maxSize image.Point, txt string, style TextStyle) (op.CallOp, image.Point) {
	gtx.Constraints = layout.Constraints{Max: maxSize}
	macro := op.Record(gtx.Ops)
	lbl := material.Label(
		th,
		unit.Sp(style.Size),
		txt,
	)
	lbl.Color = style.Color
	lbl.Alignment = text.Start
	lbl.MaxLines = 1
	dims := lbl.Layout(gtx)
	return macro.Stop(), dims.Size
}
