// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// Dismissable message, e.g. a failed data request.
type MessageField struct {
	text    string
	dismiss widget.Clickable
}

func NewMessageField() *MessageField {
	return &MessageField{}
}

func (f *MessageField) SetText(txt string) {
	f.text = txt
}

func (f *MessageField) Text() string {
	return f.text
}

func (f *MessageField) Layout(gtx layout.Context, th *material.Theme, pth *PlotTheme) layout.Dimensions {
	if f.dismiss.Clicked(gtx) {
		f.text = ""
	}
	if len(f.text) == 0 {
		return layout.Dimensions{}
	}
	macro := op.Record(gtx.Ops)
	lbl := material.Body1(th, f.text)
	lbl.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	dims := lbl.Layout(gtx)
	call := macro.Stop()

	clipRect := image.Rectangle{Max: image.Point{X: gtx.Dp(50) + dims.Size.X, Y: gtx.Dp(40) + dims.Size.Y}}
	defer clip.Rect(clipRect).Push(gtx.Ops).Pop()
	bg := pth.ErrorTextColor
	bg.A = 230
	paint.Fill(gtx.Ops, bg)

	textArea := op.Offset(image.Point{X: clipRect.Min.X + gtx.Dp(25), Y: clipRect.Min.Y + gtx.Dp(20)}).Push(gtx.Ops)
	// Run recorded drawing.
	call.Add(gtx.Ops)
	textArea.Pop()
	// Click anywhere on the message to dismiss it.
	f.dismiss.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Dimensions{Size: clipRect.Size()}
	})
	return layout.Dimensions{Size: clipRect.Size()}
}
