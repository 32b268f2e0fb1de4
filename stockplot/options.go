// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"image"
	"stockchart/stockval"
	"stockchart/widgets"
)

type AnchorMode string

const (
	// Annotations keep their pixel position when the viewport changes.
	AnchorModePixel AnchorMode = "pixel"
	// Annotations are re-projected from their chart position on every overlay render.
	AnchorModeChart AnchorMode = "chart"
)

const DefaultPadding = 50

// Visible records of the validated series.
type Window struct {
	Records stockval.Series
	Start   int // series index of Records[0]
}

type Options struct {
	Symbol         string
	ChartType      stockval.ChartType
	ShowVolume     bool
	Padding        float64
	PriceBuffer    float64
	MaxCandleWidth float64
	Theme          *widgets.PlotTheme
}

func DefaultOptions() Options {
	return Options{
		ChartType:      stockval.ChartTypeCandlestick,
		ShowVolume:     true,
		Padding:        DefaultPadding,
		PriceBuffer:    DefaultPriceBuffer,
		MaxCandleWidth: DefaultMaxCandleWidth,
		Theme:          widgets.NewDarkPlotTheme(),
	}
}

// Padding which leaves a plot area of at least one pixel.
func (o Options) padding(size image.Point) float64 {
	p := max(o.Padding, 0)
	limit := float64(min(size.X, size.Y)-1) / 2
	return max(min(p, limit), 0)
}
