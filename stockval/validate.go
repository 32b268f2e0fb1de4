// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockval

import "math"

// Check the OHLC relation low <= min(open, close) <= max(open, close) <= high with all five values finite.
func (r Record) IsValid() bool {
	for _, v := range []float64{r.Open, r.High, r.Low, r.Close, r.Volume} {
		if !IsFinite(v) {
			return false
		}
	}
	return r.Low <= math.Min(r.Open, r.Close) &&
		math.Max(r.Open, r.Close) <= r.High
}

// Return the records which satisfy the OHLC invariant, keeping their order.
// Invalid records are excluded, never corrected.
// The input is not modified.
func Validate(s Series) Series {
	valid := make(Series, 0, len(s))
	for _, r := range s {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	return valid
}

// Index range [start, end) is expected to be within bounds.
func (s Series) MinMax(start, end int) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, r := range s[start:end] {
		lo = math.Min(lo, r.Low)
		hi = math.Max(hi, r.High)
	}
	return
}

func (s Series) MaxVolume(start, end int) float64 {
	var m float64
	for _, r := range s[start:end] {
		m = math.Max(m, r.Volume)
	}
	return m
}
