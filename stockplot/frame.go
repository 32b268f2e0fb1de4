// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"image"

	"gioui.org/f32"
)

// Share of the plot height used by the volume band.
const volumeBandRatio = 0.2

// Gap in pixels between price area and volume band.
const volumeBandGap = 4

// Pixel geometry of a single base chart frame.
type frame struct {
	size         image.Point
	padding      float64
	visible      int
	start        int // series index of the first visible record
	prices       PriceRange
	chartHeight  float64 // height used for the price projection
	volumeTop    float64
	volumeBottom float64
	projection   projection
}

func newFrame(size image.Point, w Window, o Options) frame {
	f := frame{
		size:        size,
		padding:     o.padding(size),
		visible:     max(len(w.Records), 1),
		start:       w.Start,
		prices:      CalcPriceRange(w.Records, o.PriceBuffer),
		chartHeight: float64(size.Y),
	}
	if o.ShowVolume {
		band := (float64(size.Y) - 2*f.padding) * volumeBandRatio
		f.chartHeight -= band
		f.volumeTop = f.chartHeight - f.padding + volumeBandGap
		f.volumeBottom = float64(size.Y) - f.padding
	}
	f.projection = newProjection(f.visible, float64(size.X), f.prices, f.chartHeight, f.padding)
	return f
}

func (f frame) left() float64 {
	return f.padding
}

func (f frame) right() float64 {
	return float64(f.size.X) - f.padding
}

func (f frame) top() float64 {
	return f.padding
}

// Bottom of the price area.
func (f frame) priceBottom() float64 {
	return f.chartHeight - f.padding
}

// Bottom of the whole plot area including the volume band.
func (f frame) bottom() float64 {
	return float64(f.size.Y) - f.padding
}

func (f frame) x(i int) float64 {
	return f.projection.getXpos(float64(i))
}

func (f frame) y(price float64) float64 {
	return f.projection.getYpos(price)
}

func (f frame) point(i int, price float64) f32.Point {
	return f32.Pt(float32(f.x(i)), float32(f.y(price)))
}

// Convert a surface pixel to a series index and price.
func (f frame) toChart(p f32.Point) (index, price float64) {
	index = ToIndex(float64(p.X), f.visible, float64(f.size.X), f.padding) + float64(f.start)
	price = ToPrice(float64(p.Y), f.prices.Min, f.prices.Span(), f.chartHeight, f.padding)
	return
}

// Convert a series index and price to a surface pixel.
func (f frame) toPixel(index, price float64) f32.Point {
	return f32.Pt(
		float32(ToPixelX(index-float64(f.start), f.visible, float64(f.size.X), f.padding)),
		float32(ToPixelY(price, f.prices.Min, f.prices.Span(), f.chartHeight, f.padding)),
	)
}

// Sample n evenly distributed indices of the visible records.
func sampleIndices(visible, n int) []int {
	if visible <= 0 || n <= 0 {
		return nil
	}
	if n == 1 || visible == 1 {
		return []int{0}
	}
	n = min(n, visible)
	indices := make([]int, 0, n)
	for k := 0; k < n; k++ {
		i := int(float64(k)*float64(visible-1)/float64(n-1) + 0.5)
		if len(indices) == 0 || indices[len(indices)-1] != i {
			indices = append(indices, i)
		}
	}
	return indices
}
