// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockval

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ericlagergren/decimal"
)

const NearZero = 0.000001

// The builtin decimal.Big conversion from float64 is an "exact" conversion, and useless for our cases.
// Therefore, convert using string conversion, even though this requires memory allocation.
// See also https://github.com/ericlagergren/decimal/issues/142

// Convert float to string and then to decimal.
func ConvertFloatToDecimal(v float64, bitSize int) *decimal.Big {
	d, _ := new(decimal.Big).SetString(strconv.FormatFloat(v, 'f', -1, bitSize))
	return d
}

// FormatPrice rounds v to the given number of decimal places and enforces exactly that many digits.
func FormatPrice(v float64, decimalPlaces int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	d := ConvertFloatToDecimal(v, 64)
	if d == nil {
		return strconv.FormatFloat(v, 'f', decimalPlaces, 64)
	}
	// Call Quantize twice, otherwise one digit may be missing, see https://github.com/ericlagergren/decimal/issues/151
	d.Quantize(decimalPlaces).Quantize(decimalPlaces)
	// we do not want negative zero on our label
	if d.Sign() == 0 {
		d.SetSignbit(false)
	}
	return fmt.Sprintf("%f", d)
}

// FormatVolume prints large volumes using k/m/b suffixes.
func FormatVolume(v float64) string {
	switch {
	case v >= 1000000000:
		return strconv.FormatFloat(v/1000000000, 'f', 1, 64) + "b"
	case v >= 1000000:
		return strconv.FormatFloat(v/1000000, 'f', 1, 64) + "m"
	case v >= 1000:
		return strconv.FormatFloat(v/1000, 'f', 1, 64) + "k"
	default:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
}

// Calculate the number of segments for a plot grid
func CalcNumSegments(pos int, margin int, grid int) int {
	if grid == 0 {
		return 0
	}
	return max((pos-margin+grid)/grid, 0)
}

func IsGreenCandle(o, c float64) bool {
	// this may be adjusted based on whether it is considered to be green if open price equals close price.
	return c >= o
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
