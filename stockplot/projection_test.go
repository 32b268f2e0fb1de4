// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"math"
	"stockchart/stockval"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateRoundTrip(t *testing.T) {
	const width, height, padding = 800.0, 600.0, 50.0
	for _, visible := range []int{1, 20, 33, 250} {
		for i := 0; i < visible; i++ {
			x := ToPixelX(float64(i), visible, width, padding)
			assert.GreaterOrEqual(t, x, padding)
			assert.LessOrEqual(t, x, width-padding)
			assert.InDelta(t, float64(i), ToIndex(x, visible, width, padding), 1e-9)
		}
	}
	for _, price := range []float64{90, 95.5, 100, 104.25, 110} {
		y := ToPixelY(price, 90, 20, height, padding)
		assert.InDelta(t, price, ToPrice(y, 90, 20, height, padding), 1e-9)
	}
	assert.Equal(t, height-padding, ToPixelY(90, 90, 20, height, padding))
	assert.Equal(t, padding, ToPixelY(110, 90, 20, height, padding))
}

func TestProjectionMatchesMapping(t *testing.T) {
	prices := PriceRange{Min: 10, Max: 30}
	proj := newProjection(40, 1000, prices, 500, 20)
	for _, i := range []float64{0, 7, 39} {
		assert.InDelta(t, ToPixelX(i, 40, 1000, 20), proj.getXpos(i), 1e-9)
		assert.InDelta(t, i, proj.getIndex(proj.getXpos(i)), 1e-9)
	}
	for _, v := range []float64{10, 17.3, 30} {
		assert.InDelta(t, ToPixelY(v, 10, 20, 500, 20), proj.getYpos(v), 1e-9)
		assert.InDelta(t, v, proj.getValue(proj.getYpos(v)), 1e-9)
	}
}

func TestCalcPriceRangeBuffer(t *testing.T) {
	window := stockval.Series{
		{Open: 95, High: 100, Low: 90, Close: 98},
		{Open: 98, High: 110, Low: 97, Close: 105},
	}
	r := CalcPriceRange(window, DefaultPriceBuffer)
	assert.InDelta(t, 89.6, r.Min, 1e-9)
	assert.InDelta(t, 110.4, r.Max, 1e-9)
}

func TestCalcPriceRangeFlat(t *testing.T) {
	window := stockval.Series{
		{Open: 100, High: 100, Low: 100, Close: 100},
		{Open: 100, High: 100, Low: 100, Close: 100},
	}
	r := CalcPriceRange(window, DefaultPriceBuffer)
	assert.Greater(t, r.Span(), 0.0)
	assert.Less(t, r.Min, 100.0)
	assert.Greater(t, r.Max, 100.0)
	assert.InDelta(t, 100.0, (r.Min+r.Max)/2, 1e-9)

	zero := CalcPriceRange(stockval.Series{{}}, 0)
	assert.Equal(t, PriceRange{Min: -0.5, Max: 0.5}, zero)

	y := ToPixelY(100, r.Min, r.Span(), 600, 50)
	assert.False(t, math.IsNaN(y) || math.IsInf(y, 0))
}

func TestCalcPriceRangeLowPrice(t *testing.T) {
	window := stockval.Series{
		{Open: 0.0000123, High: 0.0000131, Low: 0.0000123, Close: 0.0000129},
		{Open: 0.0000129, High: 0.0000130, Low: 0.0000125, Close: 0.0000126},
	}
	r := CalcPriceRange(window, DefaultPriceBuffer)
	assert.InDelta(t, 0.0000123-0.0000008*DefaultPriceBuffer, r.Min, 1e-12)
	assert.InDelta(t, 0.0000131+0.0000008*DefaultPriceBuffer, r.Max, 1e-12)
	assert.Greater(t, r.Min, 0.0)

	high := ToPixelY(0.0000131, r.Min, r.Span(), 600, 50)
	low := ToPixelY(0.0000123, r.Min, r.Span(), 600, 50)
	assert.Greater(t, low-high, 400.0)
}

func TestCalcPriceRangeHuge(t *testing.T) {
	window := stockval.Series{{Open: 0, High: 1e308, Low: -1e308, Close: 0}}
	r := CalcPriceRange(window, DefaultPriceBuffer)
	assert.False(t, math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0))
	assert.False(t, math.IsInf(r.Span(), 0))
	assert.Greater(t, r.Span(), 0.0)
}

func TestPriceDecimals(t *testing.T) {
	assert.Equal(t, 0, priceDecimals(PriceRange{Min: 0, Max: 1000}))
	assert.Equal(t, 2, priceDecimals(PriceRange{Min: 90, Max: 110}))
	assert.Equal(t, 4, priceDecimals(PriceRange{Min: 1, Max: 1.025}))
	// step of 2e-7
	assert.Equal(t, 8, priceDecimals(PriceRange{Min: 0.000012, Max: 0.000013}))
	assert.Equal(t, maxPriceDecimals, priceDecimals(PriceRange{Min: 1, Max: 1 + 1e-14}))
	assert.Equal(t, 2, priceDecimals(PriceRange{}))
}

func TestGetCandleWidth(t *testing.T) {
	candleWidth, lineWidth := getCandleWidth(10, DefaultMaxCandleWidth)
	assert.Equal(t, float32(7), candleWidth)
	assert.Equal(t, float32(1), lineWidth)
	candleWidth, lineWidth = getCandleWidth(100, DefaultMaxCandleWidth)
	assert.InDelta(t, 16.8, candleWidth, 1e-5)
	assert.Equal(t, float32(2), lineWidth)
	candleWidth, _ = getCandleWidth(0.5, DefaultMaxCandleWidth)
	assert.Equal(t, float32(1), candleWidth)
}

func TestSampleIndices(t *testing.T) {
	s := sampleIndices(30, 7)
	assert.Len(t, s, 7)
	assert.Equal(t, 0, s[0])
	assert.Equal(t, 29, s[6])
	assert.Equal(t, []int{0, 1, 2}, sampleIndices(3, 7))
	assert.Equal(t, []int{0}, sampleIndices(10, 1))
	assert.Nil(t, sampleIndices(0, 5))
}
