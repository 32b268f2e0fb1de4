// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"strings"

	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

const maxLabelLength = 40

// Text field for the label of an annotation. An empty label removes it.
// Needs to be used from the ui goroutine only.
type LabelField struct {
	textField component.TextField
	submitted *string
}

func NewLabelField() *LabelField {
	return &LabelField{
		textField: component.TextField{
			Editor: widget.Editor{Submit: true, SingleLine: true, MaxLen: maxLabelLength},
		},
	}
}

// Retrieve the last submitted label, if it was not yet retrieved.
func (f *LabelField) SubmittedLabel() (string, bool) {
	if f.submitted == nil {
		return "", false
	}
	l := *f.submitted
	f.submitted = nil
	return l, true
}

func (f *LabelField) SetLabel(l string) {
	f.textField.SetText(l)
}

func (f *LabelField) submit(t string) {
	l := strings.TrimSpace(t)
	f.submitted = &l
}

func (f *LabelField) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	for {
		evt, ok := f.textField.Editor.Update(gtx)
		if !ok {
			break
		}
		if evt, ok := evt.(widget.SubmitEvent); ok {
			f.submit(evt.Text)
		}
	}
	gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(180))
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return f.textField.Layout(gtx, th, "Label")
}
