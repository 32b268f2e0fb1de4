// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"image/color"
	"stockchart/config"
	"stockchart/stockplot"
	"stockchart/widgets"
)

// Chart options according to the configuration.
func NewChartOptions(c config.ChartConfig, th *widgets.PlotTheme) stockplot.ChartOptions {
	opts := stockplot.DefaultChartOptions()
	opts.Symbol = c.Symbol
	opts.ChartType = c.Type
	opts.ShowVolume = c.ShowVolume
	opts.Padding = c.Padding
	opts.PriceBuffer = c.PriceBuffer
	opts.MaxCandleWidth = c.MaxCandleWidth
	opts.Theme = th
	opts.Viewport = stockplot.ViewportOptions{
		MinVisible: c.MinVisible,
		ZoomFactor: c.ZoomFactor,
		MinZoom:    c.MinZoom,
		MaxZoom:    c.MaxZoom,
	}
	opts.PanStep = c.PanStep
	opts.AnchorMode = stockplot.AnchorMode(c.AnchorMode)
	return opts
}

// Style of new annotation segments.
func AnnotationStyle(c config.ChartConfig) (color.NRGBA, float32) {
	col, ok := config.ParseHexColor(c.AnnotationColor)
	if !ok {
		col, _ = config.ParseHexColor(config.NewChartConfig().AnnotationColor)
	}
	return col, c.AnnotationWidth
}

// Store the chart state which should survive a restart.
func SaveChartState(c *config.ChartConfig, opts stockplot.ChartOptions) {
	c.Type = opts.ChartType
	c.ShowVolume = opts.ShowVolume
}

// Store the style of new annotation segments.
func SaveAnnotationStyle(c *config.ChartConfig, col color.NRGBA, width float32) {
	c.AnnotationColor = config.FormatHexColor(col)
	c.AnnotationWidth = width
}

var annotationColors = []color.NRGBA{
	{R: 0xff, G: 0xa0, B: 0x00, A: 0xff},
	{R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
	{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	{R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	{R: 0x8e, G: 0x24, B: 0xaa, A: 0xff},
}

var annotationWidths = []float32{1, 2, 4}

// Color following c in the annotation palette. Unknown colors are followed by the first one.
func NextAnnotationColor(c color.NRGBA) color.NRGBA {
	for i, p := range annotationColors {
		if p == c {
			return annotationColors[(i+1)%len(annotationColors)]
		}
	}
	return annotationColors[0]
}

// Next larger annotation width, wrapping around to the smallest.
func NextAnnotationWidth(w float32) float32 {
	for _, n := range annotationWidths {
		if n > w {
			return n
		}
	}
	return annotationWidths[0]
}
