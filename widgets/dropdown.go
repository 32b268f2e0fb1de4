// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

const dropDownMenuHeight = 360

// Button which opens a menu to select one of a fixed set of values, e.g. the chart period.
type DropDown struct {
	// Shown in front of the selected value.
	Label       string
	items       []string
	itemButtons []widget.Clickable
	selected    int
	clicked     int
	open        bool
	menu        component.MenuState
	button      widget.Clickable
}

func NewDropDown(label string, items []string, selectedIndex int) *DropDown {
	return &DropDown{
		Label:       label,
		items:       items,
		itemButtons: make([]widget.Clickable, len(items)),
		selected:    selectedIndex,
		clicked:     -1,
	}
}

// Retrieve index of the last selected entry. Call from same goroutine as Layout.
// Returns -1 if nothing has been selected since the last call.
func (d *DropDown) ClickedIndex() int {
	c := d.clicked
	d.clicked = -1
	return c
}

// Set the currently selected item. Call from same goroutine as Layout.
func (d *DropDown) SetSelectedIndex(index int) {
	d.selected = index
}

// Select the item with the given text, returns false if there is none.
func (d *DropDown) SelectText(t string) bool {
	for i, item := range d.items {
		if item == t {
			d.selected = i
			return true
		}
	}
	return false
}

func (d *DropDown) SelectedText() string {
	if d.selected >= 0 && d.selected < len(d.items) {
		return d.items[d.selected]
	}
	return ""
}

// The menu closes as soon as the button loses focus, therefore item presses are handled first.
func (d *DropDown) update(gtx layout.Context) {
	open := d.open
	for i := range d.itemButtons {
		if d.open && d.itemButtons[i].Pressed() {
			d.selected, d.clicked = i, i
			d.open = false
		}
	}
	if d.button.Clicked(gtx) {
		gtx.Execute(key.FocusCmd{Tag: &d.button})
		d.open = !d.open
	} else if d.open && !gtx.Focused(&d.button) {
		d.open = false
	}
	if open != d.open {
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (d *DropDown) Layout(th *material.Theme, gtx layout.Context) layout.Dimensions {
	d.update(gtx)

	button := material.Button(th, &d.button, d.Label+d.SelectedText())
	button.TextSize = unit.Sp(13)
	button.Inset = layout.UniformInset(unit.Dp(6))
	dims := layout.Inset{Top: 4, Right: 2, Bottom: 4, Left: 2}.Layout(gtx, button.Layout)

	d.menu.Options = d.menu.Options[:0]
	for i, t := range d.items {
		d.menu.Options = append(d.menu.Options, component.MenuItem(th, &d.itemButtons[i], t).Layout)
	}
	if d.open && len(d.items) > 0 {
		macro := op.Record(gtx.Ops)
		op.Offset(image.Pt(0, dims.Size.Y)).Add(gtx.Ops)
		gtx.Constraints.Min = image.Point{}
		gtx.Constraints.Max.Y = max(gtx.Constraints.Max.Y, gtx.Dp(dropDownMenuHeight))
		d.menuStyle(th).Layout(gtx)
		op.Defer(gtx.Ops, macro.Stop())
	}
	return dims
}

func (d *DropDown) menuStyle(th *material.Theme) component.MenuStyle {
	m := component.Menu(th, &d.menu)
	m.AmbientColor = th.Palette.ContrastBg
	m.PenumbraColor = color.NRGBA{}
	m.UmbraColor = color.NRGBA{}
	return m
}
