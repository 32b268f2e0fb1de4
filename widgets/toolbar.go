// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

// Row of buttons above the chart.
type Toolbar struct {
	list layout.List
}

type ToolButton struct {
	Text   string
	Button *widget.Clickable
	// Highlighted buttons show a toggled state.
	Active bool
}

func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme, buttons []ToolButton, extra ...layout.Widget) layout.Dimensions {
	t.list.Axis = layout.Horizontal
	t.list.Alignment = layout.Middle
	n := len(buttons) + len(extra)
	return t.list.Layout(gtx, n, func(gtx layout.Context, i int) layout.Dimensions {
		if i >= len(buttons) {
			return layout.Inset{Left: 4, Right: 4}.Layout(gtx, extra[i-len(buttons)])
		}
		b := buttons[i]
		btn := material.Button(th, b.Button, b.Text)
		btn.TextSize = unit.Sp(13)
		btn.Inset = layout.UniformInset(unit.Dp(6))
		if !b.Active {
			btn.Background = component.WithAlpha(th.ContrastBg, 0x90)
		}
		return layout.Inset{Top: 4, Bottom: 4, Left: 2, Right: 2}.Layout(gtx, btn.Layout)
	})
}

func divider(th *material.Theme, margin unit.Dp) component.DividerStyle {
	return component.DividerStyle{
		Thickness: unit.Dp(1),
		Fill:      component.WithAlpha(th.ContrastBg, 0x60),
		Inset: layout.Inset{
			Top:    margin,
			Bottom: margin,
		},
	}
}

// Horizontal line below the toolbar.
func Divider(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return divider(th, 2).Layout(gtx)
}
