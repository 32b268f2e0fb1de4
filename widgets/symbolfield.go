// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"stockchart/stockval"
	"sync"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

// Text field for entering a ticker symbol.
type SymbolField struct {
	textField      component.TextField
	submitted      string
	submittedMutex sync.Mutex
	focusRequested bool
}

func NewSymbolField(symbol string) *SymbolField {
	f := &SymbolField{
		textField: component.TextField{
			Editor: widget.Editor{Submit: true, SingleLine: true, MaxLen: 32},
		},
	}
	f.textField.SetText(symbol)
	return f
}

// Retrieve last non-retrieved submitted symbol from any goroutine.
func (f *SymbolField) SubmittedSymbol() (string, bool) {
	f.submittedMutex.Lock()
	defer f.submittedMutex.Unlock()
	if len(f.submitted) > 0 {
		s := f.submitted
		f.submitted = ""
		return s, true
	}
	return "", false
}

// Replace the text, e.g. after a symbol was selected elsewhere. Call from same goroutine as Layout.
func (f *SymbolField) SetSymbol(symbol string) {
	f.textField.SetText(symbol)
}

func (f *SymbolField) Focus() {
	f.focusRequested = true
}

func (f *SymbolField) handleEvents(gtx layout.Context) {
	for {
		evt, ok := f.textField.Editor.Update(gtx)
		if !ok {
			break
		}
		if evt, ok := evt.(widget.SubmitEvent); ok {
			f.submit(evt.Text)
		}
	}
}

func (f *SymbolField) submit(t string) {
	symbol := stockval.NormalizeSymbol(t)
	if symbol != f.textField.Text() {
		f.textField.SetText(symbol)
	}
	f.textField.SetCaret(0, len(symbol))
	if len(symbol) == 0 {
		return
	}
	f.submittedMutex.Lock()
	f.submitted = symbol
	f.submittedMutex.Unlock()
}

func (f *SymbolField) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	if f.focusRequested {
		gtx.Execute(key.FocusCmd{Tag: &f.textField.Editor})
		f.focusRequested = false
	}
	f.handleEvents(gtx)
	gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(160))
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return f.textField.Layout(gtx, th, "Symbol")
}
