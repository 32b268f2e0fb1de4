// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockval

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

// A single time bucket of trading data.
// Time is zero if the time identifier could not be interpreted, Label always contains the identifier.
type Record struct {
	Time   time.Time
	Label  string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Ordered by time ascending. Insertion order is the rendering order.
type Series []Record

type ChartType string

const (
	ChartTypeCandlestick ChartType = "candlestick"
	ChartTypeLine        ChartType = "line"
)

// Limit display name size
var displayNameRegex = regexp.MustCompile(`^.{0,48}`)

var symbolRegex = regexp.MustCompile(`[^\p{L}\p{N}.^=\-]+`)

func NormalizeSymbol(s string) string {
	return strings.ToUpper(symbolRegex.ReplaceAllString(strings.TrimSpace(s), ""))
}

func TruncateDisplayName(n string) string {
	return displayNameRegex.FindString(n)
}

func CountDigits(v int64) int {
	var count int
	for ; v != 0; v /= 10 {
		count++
	}
	return count
}

func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func IndexOf[T comparable](s []T, e T) int {
	for i, v := range s {
		if v == e {
			return i
		}
	}
	return -1
}
