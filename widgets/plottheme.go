// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image/color"
)

// Colors and text sizes of the chart surfaces.
// Font sizes are in sp, surfaces with a fixed font ignore them.
type PlotTheme struct {
	BgColor                color.NRGBA
	AxesColor              color.NRGBA
	GridColor              color.NRGBA
	TitleFontSize          float32
	AxesXfontSize          float32
	AxesYfontSize          float32
	TitleColor             color.NRGBA
	AxesXtextColor         color.NRGBA
	AxesYtextColor         color.NRGBA
	CandleUpColor          color.NRGBA
	CandleDownColor        color.NRGBA
	BarUpColor             color.NRGBA
	BarDownColor           color.NRGBA
	LineColor              color.NRGBA
	LineMarkerColor        color.NRGBA
	QuoteDashColor         color.NRGBA
	QuoteDashPattern       []float32
	QuoteUpColor           color.NRGBA
	QuoteDownColor         color.NRGBA
	QuoteTextColor         color.NRGBA
	AnnotationPendingColor color.NRGBA
	AnnotationTextColor    color.NRGBA
	PlaceholderTextColor   color.NRGBA
	ErrorTextColor         color.NRGBA
	FrameBgColor           color.NRGBA
	FrameTextColor         color.NRGBA
}

func NewDarkPlotTheme() *PlotTheme {
	return &PlotTheme{
		BgColor:                color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 255},
		AxesColor:              color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		GridColor:              color.NRGBA{R: 60, G: 60, B: 60, A: 255},
		TitleFontSize:          20,
		AxesXfontSize:          14,
		AxesYfontSize:          14,
		TitleColor:             color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		AxesXtextColor:         color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		AxesYtextColor:         color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		CandleUpColor:          color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		CandleDownColor:        color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		BarUpColor:             color.NRGBA{R: 0, G: 255, B: 0, A: 120},
		BarDownColor:           color.NRGBA{R: 255, G: 0, B: 0, A: 120},
		LineColor:              color.NRGBA{R: 80, G: 160, B: 255, A: 255},
		LineMarkerColor:        color.NRGBA{R: 80, G: 160, B: 255, A: 255},
		QuoteDashColor:         color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		QuoteDashPattern:       []float32{2, 10},
		QuoteUpColor:           color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		QuoteDownColor:         color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		QuoteTextColor:         color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		AnnotationPendingColor: color.NRGBA{R: 255, G: 255, B: 0, A: 255},
		AnnotationTextColor:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		PlaceholderTextColor:   color.NRGBA{R: 160, G: 160, B: 160, A: 255},
		ErrorTextColor:         color.NRGBA{R: 255, G: 80, B: 80, A: 255},
		FrameBgColor:           color.NRGBA{R: 40, G: 40, B: 40, A: 255},
		FrameTextColor:         color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

func NewLightPlotTheme() *PlotTheme {
	return &PlotTheme{
		BgColor:                color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		AxesColor:              color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		GridColor:              color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		TitleFontSize:          20,
		AxesXfontSize:          14,
		AxesYfontSize:          14,
		TitleColor:             color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		AxesXtextColor:         color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		AxesYtextColor:         color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		CandleUpColor:          color.NRGBA{R: 0, G: 200, B: 0, A: 255},
		CandleDownColor:        color.NRGBA{R: 230, G: 0, B: 0, A: 255},
		BarUpColor:             color.NRGBA{R: 0, G: 200, B: 0, A: 100},
		BarDownColor:           color.NRGBA{R: 230, G: 0, B: 0, A: 100},
		LineColor:              color.NRGBA{R: 0, G: 90, B: 200, A: 255},
		LineMarkerColor:        color.NRGBA{R: 0, G: 90, B: 200, A: 255},
		QuoteDashColor:         color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		QuoteDashPattern:       []float32{2, 10},
		QuoteUpColor:           color.NRGBA{R: 0, G: 200, B: 0, A: 255},
		QuoteDownColor:         color.NRGBA{R: 230, G: 0, B: 0, A: 255},
		QuoteTextColor:         color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		AnnotationPendingColor: color.NRGBA{R: 200, G: 120, B: 0, A: 255},
		AnnotationTextColor:    color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		PlaceholderTextColor:   color.NRGBA{R: 100, G: 100, B: 100, A: 255},
		ErrorTextColor:         color.NRGBA{R: 200, G: 0, B: 0, A: 255},
		FrameBgColor:           color.NRGBA{R: 235, G: 235, B: 235, A: 255},
		FrameTextColor:         color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	}
}

func (th *PlotTheme) GetCandleColors(isGreenCandle bool) (candleColor, barColor color.NRGBA) {
	if isGreenCandle {
		candleColor = th.CandleUpColor
		barColor = th.BarUpColor
	} else {
		candleColor = th.CandleDownColor
		barColor = th.BarDownColor
	}
	return
}

func (th *PlotTheme) GetQuoteColor(isGreen bool) color.NRGBA {
	if isGreen {
		return th.QuoteUpColor
	}
	return th.QuoteDownColor
}
