// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"image"
	"image/color"
	"math"
	"stockchart/surface"

	"gioui.org/f32"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpFillRect
	OpStrokeLine
	OpStrokePolyline
	OpFillCircle
	OpDrawText
)

// A single recorded drawing call.
type SurfaceOp struct {
	Kind   OpKind
	Color  color.NRGBA
	Rect   image.Rectangle
	Points []f32.Point
	Width  float32
	Dashes []float32
	Text   string
	Align  surface.Align
}

// Surface which records all drawing calls. Clear discards previous calls.
type TestSurface struct {
	size image.Point
	Ops  []SurfaceOp
	// Simulate a failing paint backend.
	PanicOnStroke bool
	Clears        int
}

const testCharWidth = 7
const testCharHeight = 13

func NewTestSurface(size image.Point) *TestSurface {
	return &TestSurface{size: size}
}

func (s *TestSurface) SetSize(size image.Point) {
	s.size = size
}

func (s *TestSurface) Size() image.Point {
	return s.size
}

func (s *TestSurface) Clear(c color.NRGBA) {
	s.Clears++
	s.Ops = append(s.Ops[:0], SurfaceOp{Kind: OpClear, Color: c})
}

func (s *TestSurface) FillRect(r image.Rectangle, c color.NRGBA) {
	s.Ops = append(s.Ops, SurfaceOp{Kind: OpFillRect, Rect: r, Color: c})
}

func (s *TestSurface) StrokeLine(from, to f32.Point, width float32, c color.NRGBA, dashes []float32) {
	if s.PanicOnStroke {
		panic("stroke failed")
	}
	s.Ops = append(s.Ops, SurfaceOp{Kind: OpStrokeLine, Points: []f32.Point{from, to}, Width: width, Color: c, Dashes: dashes})
}

func (s *TestSurface) StrokePolyline(points []f32.Point, width float32, c color.NRGBA) {
	if s.PanicOnStroke {
		panic("stroke failed")
	}
	s.Ops = append(s.Ops, SurfaceOp{Kind: OpStrokePolyline, Points: append([]f32.Point(nil), points...), Width: width, Color: c})
}

func (s *TestSurface) FillCircle(center f32.Point, radius float32, c color.NRGBA) {
	s.Ops = append(s.Ops, SurfaceOp{Kind: OpFillCircle, Points: []f32.Point{center}, Width: radius, Color: c})
}

func (s *TestSurface) DrawText(pos f32.Point, txt string, style surface.TextStyle) {
	s.Ops = append(s.Ops, SurfaceOp{Kind: OpDrawText, Points: []f32.Point{pos}, Text: txt, Color: style.Color, Align: style.Align})
}

func (s *TestSurface) MeasureText(txt string, style surface.TextStyle) image.Point {
	return image.Point{X: len(txt) * testCharWidth, Y: testCharHeight}
}

func (s *TestSurface) Filter(kind OpKind) []SurfaceOp {
	var ops []SurfaceOp
	for _, op := range s.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

func (s *TestSurface) Texts() []string {
	var texts []string
	for _, op := range s.Filter(OpDrawText) {
		texts = append(texts, op.Text)
	}
	return texts
}

// Check whether all recorded coordinates are finite.
func (s *TestSurface) AllFinite() bool {
	for _, op := range s.Ops {
		for _, p := range op.Points {
			if isInvalid(p.X) || isInvalid(p.Y) {
				return false
			}
		}
		if isInvalid(op.Width) {
			return false
		}
	}
	return true
}

func isInvalid(v float32) bool {
	return math.IsNaN(float64(v)) || math.IsInf(float64(v), 0)
}
