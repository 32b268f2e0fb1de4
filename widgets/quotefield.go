// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"fmt"
	"image"
	"image/color"
	"stockchart/stockval"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget/material"
)

// Summary of the latest record of a series.
type QuoteField struct {
	Name        string
	DataSource  string
	MarketState string
	series      stockval.Series
}

func NewQuoteField() *QuoteField {
	return &QuoteField{}
}

// Set the validated series. Call from same goroutine as Layout.
func (q *QuoteField) SetSeries(name, dataSource string, s stockval.Series) {
	q.Name = name
	q.DataSource = dataSource
	q.series = s
}

// Latest close, change to the previous close and volume.
// Returns false for the change direction if the latest close is lower.
func QuoteText(s stockval.Series) (string, bool) {
	if len(s) == 0 {
		return "-- (-- %)", true
	}
	last := s[len(s)-1]
	quoteText := stockval.FormatPrice(last.Close, 2)
	isGreen := true
	if len(s) > 1 {
		prev := s[len(s)-2].Close
		if prev > stockval.NearZero {
			percentage := (last.Close - prev) / prev * 100
			var prefix string
			if percentage >= 0 {
				prefix = "+"
			} else {
				isGreen = false
			}
			quoteText = fmt.Sprintf("%s (%s%s%%)", quoteText, prefix, stockval.FormatPrice(percentage, 2))
		}
	}
	return fmt.Sprintf("%s  Vol %s", quoteText, stockval.FormatVolume(last.Volume)), isGreen
}

func (q *QuoteField) Layout(gtx layout.Context, th *material.Theme, pth *PlotTheme) layout.Dimensions {
	quoteText, isGreen := QuoteText(q.series)
	return layoutFramed(gtx, pth.FrameBgColor, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{
			Axis:      layout.Horizontal,
			Alignment: layout.Middle,
		}.Layout(
			gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lblName := material.Body2(th, q.Name)
				lblName.Color = pth.FrameTextColor
				lblName.MaxLines = 1
				return layout.Inset{Right: 10}.Layout(gtx, lblName.Layout)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lblQuote := material.Body1(th, quoteText)
				lblQuote.Color = pth.GetQuoteColor(isGreen)
				lblQuote.Alignment = text.Middle
				return lblQuote.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if len(q.MarketState) == 0 {
					return layout.Dimensions{}
				}
				lblState := material.Caption(th, q.MarketState)
				lblState.Color = pth.FrameTextColor
				return layout.Inset{Left: 10}.Layout(gtx, lblState.Layout)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if len(q.DataSource) == 0 {
					return layout.Dimensions{}
				}
				lblSource := material.Caption(th, q.DataSource)
				lblSource.Color = pth.FrameTextColor
				return layout.Inset{Left: 10}.Layout(gtx, lblSource.Layout)
			}),
		)
	})
}

// Rounded box with background color around w.
func layoutFramed(gtx layout.Context, bg color.NRGBA, w layout.Widget) layout.Dimensions {
	return layout.UniformInset(4).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		macro := op.Record(gtx.Ops)
		dims := layout.UniformInset(5).Layout(gtx, w)
		call := macro.Stop()
		rr := gtx.Dp(4)
		paint.FillShape(gtx.Ops, bg, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
		call.Add(gtx.Ops)
		return dims
	})
}
