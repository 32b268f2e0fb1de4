// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"fmt"
	"image"
	"log"
	"stockchart/annotation"
	"stockchart/calendar"
	"stockchart/config"
	"stockchart/stockplot"
	"stockchart/stockval"
	"stockchart/surface"
	"stockchart/widgets"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/google/uuid"
)

type chartButtons struct {
	zoomIn      widget.Clickable
	zoomOut     widget.Clickable
	panLeft     widget.Clickable
	panRight    widget.Clickable
	reset       widget.Clickable
	candlestick widget.Clickable
	line        widget.Clickable
	volume      widget.Clickable
	draw        widget.Clickable
	cancel      widget.Clickable
	clear       widget.Clickable
	undo        widget.Clickable
	color       widget.Clickable
	width       widget.Clickable
	reload      widget.Clickable
}

// Chart with toolbar, symbol selection and quote summary.
// All methods need to be called from the ui goroutine.
type ChartView struct {
	Chart          *stockplot.Chart
	base           *surface.Gio
	overlay        *surface.Gio
	size           image.Point
	symbol         string
	period         string
	revision       uint64
	store          *SeriesStore
	plotTheme      *widgets.PlotTheme
	buttons        chartButtons
	watchSymbols   []string
	watchButtons   []widget.Clickable
	symbolField    *widgets.SymbolField
	labelField     *widgets.LabelField
	selected       uuid.UUID
	periodDropDown *widgets.DropDown
	quoteField     *widgets.QuoteField
	messageField   *widgets.MessageField
	toolbar        widgets.Toolbar
	symbolBar      widgets.Toolbar
	toolButtons    []widgets.ToolButton
	symbolButtons  []widgets.ToolButton
}

func NewChartView(appConfig config.AppConfig, th *material.Theme, pth *widgets.PlotTheme, store *SeriesStore) *ChartView {
	v := &ChartView{
		base:         surface.NewGio(th, image.Point{}),
		overlay:      surface.NewGio(th, image.Point{}),
		symbol:       appConfig.Chart.Symbol,
		period:       appConfig.DataSource.Period,
		store:        store,
		plotTheme:    pth,
		watchSymbols: appConfig.Chart.WatchSymbols,
		symbolField:  widgets.NewSymbolField(appConfig.Chart.Symbol),
		labelField:   widgets.NewLabelField(),
		quoteField:   widgets.NewQuoteField(),
		messageField: widgets.NewMessageField(),
	}
	v.watchButtons = make([]widget.Clickable, len(v.watchSymbols))
	periodIndex := stockval.IndexOf(config.ValidPeriods, appConfig.DataSource.Period)
	v.periodDropDown = widgets.NewDropDown("Period: ", config.ValidPeriods, periodIndex)
	v.Chart = stockplot.NewChart(NewChartOptions(appConfig.Chart, pth), v.base, v.overlay)
	v.Chart.SetAnnotationStyle(AnnotationStyle(appConfig.Chart))
	v.Chart.SetSeries(v.symbol, nil)
	return v
}

func (v *ChartView) Symbol() string {
	return v.symbol
}

func (v *ChartView) Period() string {
	return v.period
}

func (v *ChartView) SetSymbol(symbol string) {
	symbol = stockval.NormalizeSymbol(symbol)
	if len(symbol) == 0 || symbol == v.symbol {
		return
	}
	log.Printf("Switching chart to %s.", symbol)
	v.symbol = symbol
	v.symbolField.SetSymbol(symbol)
	v.resetSeries()
}

func (v *ChartView) SetPeriod(period string) {
	if period == v.period || stockval.IndexOf(config.ValidPeriods, period) < 0 {
		return
	}
	v.period = period
	v.periodDropDown.SelectText(period)
	v.resetSeries()
}

// Annotations belong to the previous data and are removed.
func (v *ChartView) resetSeries() {
	v.revision = 0
	v.Chart.SetSeries(v.symbol, nil)
	v.Chart.ResetView()
	v.Chart.ClearAnnotations()
	v.selected = uuid.Nil
	v.labelField.SetLabel("")
	v.quoteField.SetSeries("", "", nil)
	v.messageField.SetText("")
}

// Take over new data of the store.
func (v *ChartView) updateSeries() {
	entry, ok := v.store.Request(v.symbol, v.period)
	if !ok || entry.Revision == v.revision {
		return
	}
	v.revision = entry.Revision
	if entry.Error != nil {
		v.messageField.SetText(entry.Error.Error())
	} else {
		v.messageField.SetText("")
	}
	v.Chart.SetSeries(v.symbol, entry.Series)
	v.quoteField.SetSeries(entry.Name, entry.DataSource, v.Chart.Series())
}

func (v *ChartView) handleButtons(gtx layout.Context) {
	b := &v.buttons
	if b.zoomIn.Clicked(gtx) {
		v.Chart.ZoomIn()
	}
	if b.zoomOut.Clicked(gtx) {
		v.Chart.ZoomOut()
	}
	if b.panLeft.Clicked(gtx) {
		v.Chart.PanLeft()
	}
	if b.panRight.Clicked(gtx) {
		v.Chart.PanRight()
	}
	if b.reset.Clicked(gtx) {
		v.Chart.ResetView()
	}
	if b.candlestick.Clicked(gtx) {
		v.Chart.SetChartType(stockval.ChartTypeCandlestick)
	}
	if b.line.Clicked(gtx) {
		v.Chart.SetChartType(stockval.ChartTypeLine)
	}
	if b.volume.Clicked(gtx) {
		v.Chart.SetShowVolume(!v.Chart.Options().ShowVolume)
	}
	if b.draw.Clicked(gtx) {
		v.Chart.SetDrawMode(!v.Chart.DrawMode())
	}
	if b.cancel.Clicked(gtx) {
		v.Chart.CancelDraw()
	}
	if b.clear.Clicked(gtx) {
		v.Chart.ClearAnnotations()
		v.selected = uuid.Nil
		v.labelField.SetLabel("")
	}
	if b.undo.Clicked(gtx) {
		if id, ok := v.Chart.UndoAnnotation(); ok {
			log.Printf("Removed annotation %s.", id)
		}
	}
	if b.color.Clicked(gtx) {
		col, width := v.Chart.AnnotationStyle()
		v.Chart.SetAnnotationStyle(NextAnnotationColor(col), width)
	}
	if b.width.Clicked(gtx) {
		col, width := v.Chart.AnnotationStyle()
		v.Chart.SetAnnotationStyle(col, NextAnnotationWidth(width))
	}
	if label, ok := v.labelField.SubmittedLabel(); ok {
		v.labelAnnotation(label)
	}
	if b.reload.Clicked(gtx) {
		v.store.Reload(v.symbol, v.period)
	}
	for i := range v.watchButtons {
		if v.watchButtons[i].Clicked(gtx) {
			v.SetSymbol(v.watchSymbols[i])
		}
	}
	if symbol, ok := v.symbolField.SubmittedSymbol(); ok {
		v.SetSymbol(symbol)
	}
	if index := v.periodDropDown.ClickedIndex(); index >= 0 && index < len(config.ValidPeriods) {
		v.SetPeriod(config.ValidPeriods[index])
	}
}

// Label the selected annotation, or the most recent one if nothing is selected.
func (v *ChartView) labelAnnotation(label string) {
	if v.selected != uuid.Nil && v.Chart.LabelAnnotation(v.selected, label) {
		return
	}
	v.selected = uuid.Nil
	if seg, ok := v.Chart.LastAnnotation(); ok {
		v.Chart.LabelAnnotation(seg.ID, label)
	}
}

// Outside of draw mode, a primary click selects an annotation and a secondary click deletes it.
func (v *ChartView) handlePress(e pointer.Event) {
	if e.Buttons.Contain(pointer.ButtonPrimary) {
		if v.Chart.DrawMode() {
			if seg, ok := v.Chart.Click(e.Position); ok {
				log.Printf("Added annotation %s.", seg.ID)
				v.selected = seg.ID
				v.labelField.SetLabel("")
			}
		} else if seg, ok := v.Chart.AnnotationAt(e.Position); ok {
			v.selected = seg.ID
			v.labelField.SetLabel(seg.Label)
		}
	} else if e.Buttons.Contain(pointer.ButtonSecondary) {
		if v.Chart.DrawState() == annotation.StateAwaitingEndPoint {
			v.Chart.CancelDraw()
		} else if seg, ok := v.Chart.AnnotationAt(e.Position); ok && v.Chart.DeleteAnnotation(seg.ID) {
			log.Printf("Removed annotation %s.", seg.ID)
		}
	}
}

func (v *ChartView) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: key.NameEscape},
			key.Filter{Name: key.NamePageUp},
			key.Filter{Name: key.NamePageDown},
			key.Filter{Name: key.NameHome},
		)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		switch e.Name {
		case key.NameEscape:
			v.Chart.CancelDraw()
		case key.NamePageUp:
			v.Chart.ZoomIn()
		case key.NamePageDown:
			v.Chart.ZoomOut()
		case key.NameHome:
			v.Chart.ResetView()
		}
	}
}

func (v *ChartView) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  v,
			Kinds:   pointer.Press | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			v.handlePress(e)
		case pointer.Scroll:
			if e.Scroll.Y < 0 {
				v.Chart.ZoomIn()
			} else if e.Scroll.Y > 0 {
				v.Chart.ZoomOut()
			}
		}
	}
}

func (v *ChartView) updateToolButtons() {
	b := &v.buttons
	opts := v.Chart.Options()
	drawText := "Draw"
	if v.Chart.DrawState() == annotation.StateAwaitingEndPoint {
		drawText = "Draw (end point)"
	}
	_, width := v.Chart.AnnotationStyle()
	v.toolButtons = append(v.toolButtons[:0],
		widgets.ToolButton{Text: "Zoom +", Button: &b.zoomIn, Active: true},
		widgets.ToolButton{Text: "Zoom -", Button: &b.zoomOut, Active: true},
		widgets.ToolButton{Text: "<", Button: &b.panLeft, Active: true},
		widgets.ToolButton{Text: ">", Button: &b.panRight, Active: true},
		widgets.ToolButton{Text: "Reset", Button: &b.reset, Active: true},
		widgets.ToolButton{Text: "Candles", Button: &b.candlestick, Active: opts.ChartType == stockval.ChartTypeCandlestick},
		widgets.ToolButton{Text: "Line", Button: &b.line, Active: opts.ChartType == stockval.ChartTypeLine},
		widgets.ToolButton{Text: "Volume", Button: &b.volume, Active: opts.ShowVolume},
		widgets.ToolButton{Text: drawText, Button: &b.draw, Active: v.Chart.DrawMode()},
		widgets.ToolButton{Text: "Cancel", Button: &b.cancel, Active: true},
		widgets.ToolButton{Text: "Undo", Button: &b.undo, Active: v.Chart.AnnotationCount() > 0},
		widgets.ToolButton{Text: "Clear", Button: &b.clear, Active: true},
		widgets.ToolButton{Text: "Color", Button: &b.color, Active: true},
		widgets.ToolButton{Text: fmt.Sprintf("Width %g", width), Button: &b.width, Active: true},
		widgets.ToolButton{Text: "Reload", Button: &b.reload, Active: true},
	)
	v.symbolButtons = v.symbolButtons[:0]
	for i, s := range v.watchSymbols {
		v.symbolButtons = append(v.symbolButtons, widgets.ToolButton{Text: s, Button: &v.watchButtons[i], Active: s == v.symbol})
	}
}

func (v *ChartView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	v.handleButtons(gtx)
	v.handleKeys(gtx)
	v.updateSeries()
	v.updateToolButtons()
	v.quoteField.MarketState = calendar.MarketState(v.symbol, gtx.Now)

	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(
		gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.toolbar.Layout(gtx, th, v.toolButtons,
				func(gtx layout.Context) layout.Dimensions {
					return v.labelField.Layout(gtx, th)
				},
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return v.symbolBar.Layout(gtx, th, v.symbolButtons,
				func(gtx layout.Context) layout.Dimensions {
					return v.symbolField.Layout(gtx, th)
				},
				func(gtx layout.Context) layout.Dimensions {
					return v.periodDropDown.Layout(th, gtx)
				},
				func(gtx layout.Context) layout.Dimensions {
					return v.quoteField.Layout(gtx, th, v.plotTheme)
				},
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return widgets.Divider(gtx, th)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Stack{Alignment: layout.N}.Layout(
				gtx,
				layout.Expanded(v.layoutChart),
				layout.Stacked(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(10).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return v.messageField.Layout(gtx, th, v.plotTheme)
					})
				}),
			)
		}),
	)
}

func (v *ChartView) layoutChart(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	v.base.Update(gtx, size)
	v.overlay.Update(gtx, size)
	if size != v.size {
		v.size = size
		v.Chart.Resize(v.base, v.overlay)
	}
	v.handlePointer(gtx)
	v.Chart.Render()

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	if v.Chart.DrawMode() {
		pointer.CursorCrosshair.Add(gtx.Ops)
	}
	event.Op(gtx.Ops, v)
	v.base.Add(gtx.Ops)
	v.overlay.Add(gtx.Ops)
	return layout.Dimensions{Size: size}
}
