// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

// Index is relative to the first visible record. The record is centered in its slot.
func ToPixelX(index float64, visibleCount int, canvasWidth, padding float64) float64 {
	return padding + (canvasWidth-2*padding)*(index+0.5)/float64(visibleCount)
}

func ToIndex(pixelX float64, visibleCount int, canvasWidth, padding float64) float64 {
	return (pixelX-padding)*float64(visibleCount)/(canvasWidth-2*padding) - 0.5
}

func ToPixelY(price, priceMin, priceRange, chartHeight, padding float64) float64 {
	return chartHeight - padding - (chartHeight-2*padding)*(price-priceMin)/priceRange
}

func ToPrice(pixelY, priceMin, priceRange, chartHeight, padding float64) float64 {
	return priceMin + (chartHeight-padding-pixelY)*priceRange/(chartHeight-2*padding)
}

// Linear mapping pos = m * value + b for both axes, calculated once per frame.
type projection struct {
	mX float64
	mY float64
	bX float64
	bY float64
}

func newProjection(visibleCount int, canvasWidth float64, prices PriceRange, chartHeight, padding float64) projection {
	var proj projection
	proj.mX = (canvasWidth - 2*padding) / float64(visibleCount)
	proj.bX = padding + proj.mX*0.5
	proj.mY = -(chartHeight - 2*padding) / prices.Span()
	proj.bY = chartHeight - padding - proj.mY*prices.Min
	return proj
}

func (proj projection) getXpos(index float64) float64 {
	return proj.mX*index + proj.bX
}

func (proj projection) getYpos(v float64) float64 {
	return proj.mY*v + proj.bY
}

func (proj projection) getIndex(x float64) float64 {
	return (x - proj.bX) / proj.mX
}

func (proj projection) getValue(y float64) float64 {
	return (y - proj.bY) / proj.mY
}
