// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"math"
	"stockchart/stockval"
)

type PriceRange struct {
	Min float64
	Max float64
}

func (r PriceRange) Span() float64 {
	return r.Max - r.Min
}

const (
	DefaultPriceBuffer = 0.02
	// Relative half height of the range which replaces a flat price range.
	flatRangeRatio = 0.005
	// Used instead if the flat price is zero.
	flatRangeAbsolute = 0.5
	// Bounds of the range, so the span can be represented.
	priceLimit = math.MaxFloat64 / 2
)

// Calculate the price range of the visible records, expanded by buffer * span on both ends.
// Only a flat window is replaced by a synthetic range, relative to its price.
// The span is always positive and finite.
func CalcPriceRange(window stockval.Series, buffer float64) PriceRange {
	if len(window) == 0 {
		return PriceRange{Min: -flatRangeAbsolute, Max: flatRangeAbsolute}
	}
	lo, hi := window.MinMax(0, len(window))
	for _, r := range window {
		lo = min(lo, r.Open, r.Close)
		hi = max(hi, r.Open, r.Close)
	}
	// Halves do not overflow for finite prices.
	center := lo/2 + hi/2
	half := hi/2 - lo/2
	if half <= 0 {
		half = math.Abs(center) * flatRangeRatio
		if half == 0 {
			half = flatRangeAbsolute
		}
	}
	if buffer < 0 {
		buffer = 0
	}
	ext := min(half*(1+2*buffer), priceLimit)
	return PriceRange{
		Min: max(center-ext, -priceLimit),
		Max: min(center+ext, priceLimit),
	}
}
