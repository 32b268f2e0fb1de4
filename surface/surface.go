// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Package surface provides the drawing targets of the chart renderer.
// All coordinates are pixels relative to the top left corner of the surface.
package surface

import (
	"image"
	"image/color"

	"gioui.org/f32"
)

type Align int

const (
	AlignStart Align = iota
	AlignMiddle
	AlignEnd
)

type TextStyle struct {
	Size  float32 // in sp for gio, ignored by the fixed raster face
	Color color.NRGBA
	Align Align // horizontal alignment relative to the position
}

type Surface interface {
	Size() image.Point
	// Clear the full surface to c. A transparent color erases the previous content.
	Clear(c color.NRGBA)
	FillRect(r image.Rectangle, c color.NRGBA)
	// Stroke a line with flat caps. Dashes alternate between on and off lengths, nil means solid.
	StrokeLine(from, to f32.Point, width float32, c color.NRGBA, dashes []float32)
	StrokePolyline(points []f32.Point, width float32, c color.NRGBA)
	FillCircle(center f32.Point, radius float32, c color.NRGBA)
	// Draw text vertically centered at pos.Y.
	DrawText(pos f32.Point, txt string, style TextStyle)
	MeasureText(txt string, style TextStyle) image.Point
}

func alignOffset(a Align, width int) int {
	switch a {
	case AlignStart:
		return 0
	case AlignMiddle:
		return -width / 2
	case AlignEnd:
		return -width
	default:
		panic("unsupported text alignment")
	}
}
