// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"math"
	"stockchart/stockval"
)

const (
	dateFormat     = "2006-01-02"
	intradayFormat = "01-02 15:04"
)

// Intraday data has at least one record with a time of day.
func isIntraday(s stockval.Series) bool {
	for _, r := range s {
		if r.Time.IsZero() {
			continue
		}
		h, m, sec := r.Time.Clock()
		if h != 0 || m != 0 || sec != 0 {
			return true
		}
	}
	return false
}

func formatTimeLabel(r stockval.Record, intraday bool) string {
	if r.Time.IsZero() {
		return r.Label
	}
	if intraday {
		return r.Time.Format(intradayFormat)
	}
	return r.Time.Format(dateFormat)
}

const maxPriceDecimals = 12

// Number of decimal places which are needed to distinguish the grid labels.
// Below a step of one cent, one more place than the first significant digit of the step is used.
func priceDecimals(r PriceRange) int {
	step := r.Span() / horizontalDivisions
	switch {
	case step <= 0 || !stockval.IsFinite(step):
		return 2
	case step >= 100:
		return 0
	case step >= 0.01:
		return 2
	case step < math.Pow10(-maxPriceDecimals+1):
		return maxPriceDecimals
	}
	return min(stockval.CountDigits(int64(1/step))+1, maxPriceDecimals)
}
