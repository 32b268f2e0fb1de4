// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package cache

import (
	"context"
	"regexp"
)

// Cache for raw chart responses of the quote backend.
type SeriesCache interface {
	// Return cached data for symbol and period, or call req and cache the result.
	GetSeriesData(ctx context.Context, symbol, period string, req func(ctx context.Context) ([]byte, error)) ([]byte, error)
	// Remove cached data, e.g. if it turned out to be invalid.
	Invalidate(symbol, period string)
}

var keyRegex = regexp.MustCompile(`[^A-Za-z0-9]+`)

func CacheKey(symbol, period string) string {
	return "chart_" + keyRegex.ReplaceAllString(symbol, "_") + "_" + keyRegex.ReplaceAllString(period, "_")
}
