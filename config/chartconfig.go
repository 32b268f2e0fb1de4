// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"stockchart/stockval"
)

type ChartConfig struct {
	Symbol       string
	WatchSymbols []string `yaml:",omitempty"`
	Type         stockval.ChartType
	ShowVolume   bool
	ZoomFactor   float64 `yaml:",omitempty"`
	MinZoom      float64 `yaml:",omitempty"`
	MaxZoom      float64 `yaml:",omitempty"`
	MinVisible   int     `yaml:",omitempty"`
	PanStep      int     `yaml:",omitempty"`
	// Relative price buffer above and below the visible data.
	PriceBuffer    float64 `yaml:",omitempty"`
	Padding        float64 `yaml:",omitempty"`
	MaxCandleWidth float64 `yaml:",omitempty"`
	// "pixel" keeps annotations at their position on screen, "chart" moves them with the data.
	AnchorMode      string  `yaml:",omitempty"`
	AnnotationColor string  `yaml:",omitempty"` // #rrggbb
	AnnotationWidth float32 `yaml:",omitempty"`
}

func NewChartConfig() ChartConfig {
	return ChartConfig{
		Symbol:          "AAPL",
		WatchSymbols:    []string{"AAPL", "MSFT", "GOOGL", "TSLA", "2330.TW"},
		Type:            stockval.ChartTypeCandlestick,
		ShowVolume:      true,
		ZoomFactor:      1.5,
		MinZoom:         0.1,
		MaxZoom:         10,
		MinVisible:      20,
		PanStep:         5,
		PriceBuffer:     0.02,
		Padding:         50,
		MaxCandleWidth:  24,
		AnchorMode:      "pixel",
		AnnotationColor: "#ffa000",
		AnnotationWidth: 2,
	}
}

func (c *ChartConfig) sanitize() {
	def := NewChartConfig()
	c.Symbol = stockval.NormalizeSymbol(c.Symbol)
	if len(c.Symbol) == 0 {
		c.Symbol = def.Symbol
	}
	symbols := c.WatchSymbols[:0]
	for _, s := range c.WatchSymbols {
		if s = stockval.NormalizeSymbol(s); len(s) > 0 && stockval.IndexOf(symbols, s) < 0 {
			symbols = append(symbols, s)
		}
	}
	c.WatchSymbols = symbols
	if c.Type != stockval.ChartTypeCandlestick && c.Type != stockval.ChartTypeLine {
		c.Type = def.Type
	}
	if c.ZoomFactor <= 1 {
		c.ZoomFactor = def.ZoomFactor
	}
	if c.MinZoom <= 0 {
		c.MinZoom = def.MinZoom
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = max(def.MaxZoom, c.MinZoom)
	}
	if c.MinVisible < 1 {
		c.MinVisible = def.MinVisible
	}
	if c.PanStep < 1 {
		c.PanStep = def.PanStep
	}
	if c.PriceBuffer < 0 || c.PriceBuffer > 1 {
		c.PriceBuffer = def.PriceBuffer
	}
	if c.Padding <= 0 {
		c.Padding = def.Padding
	}
	if c.MaxCandleWidth <= 0 {
		c.MaxCandleWidth = def.MaxCandleWidth
	}
	if c.AnchorMode != "pixel" && c.AnchorMode != "chart" {
		c.AnchorMode = def.AnchorMode
	}
	if _, ok := ParseHexColor(c.AnnotationColor); !ok {
		c.AnnotationColor = def.AnnotationColor
	}
	if c.AnnotationWidth <= 0 {
		c.AnnotationWidth = def.AnnotationWidth
	}
}
