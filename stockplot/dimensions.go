// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"math"
)

const DefaultMaxCandleWidth = 24

func getCandleWidth(mX float64, maxCandleWidth float64) (candleWidth, lineWidth float32) {
	const minCandleWidth = 1
	const minLineWidth = 1
	const defaultCandleMultiplier = 0.7

	if maxCandleWidth <= 0 {
		maxCandleWidth = DefaultMaxCandleWidth
	}
	candleWidth = float32(math.Min(maxCandleWidth, math.Abs(mX)) * defaultCandleMultiplier)
	if candleWidth < minCandleWidth {
		candleWidth = minCandleWidth
	}
	lineWidth = float32(math.Floor(float64(candleWidth) / 8))
	if lineWidth < minLineWidth {
		lineWidth = minLineWidth
	}
	return
}
