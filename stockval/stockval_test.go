// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockval

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newRecord(i int, o, h, l, c float64) Record {
	return Record{
		Time:   time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: 1000,
	}
}

func TestValidateDropsInvertedRecord(t *testing.T) {
	var s Series
	for i := 0; i < 9; i++ {
		s = append(s, newRecord(i, 100, 110, 95, 105))
	}
	s = append(s[:4], append(Series{newRecord(99, 102, 100, 105, 101)}, s[4:]...)...)
	assert.Len(t, s, 10)
	valid := Validate(s)
	assert.Len(t, valid, 9)
	for i := 1; i < len(valid); i++ {
		assert.True(t, valid[i-1].Time.Before(valid[i].Time))
	}
}

func TestValidatePredicate(t *testing.T) {
	input := Series{
		newRecord(0, 100, 110, 90, 105),           // valid
		newRecord(1, 100, 100, 100, 100),          // flat, valid
		newRecord(2, 100, 104, 90, 105),           // close above high
		newRecord(3, 89, 110, 90, 105),            // open below low
		newRecord(4, math.NaN(), 110, 90, 105),    // not finite
		newRecord(5, 100, math.Inf(1), 90, 105),   // not finite
		newRecord(6, 105, 110, 90, 100),           // red candle, valid
		{Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: math.NaN()},
	}
	valid := Validate(input)
	assert.Equal(t, Series{input[0], input[1], input[6]}, valid)
	// input is left untouched
	assert.Len(t, input, 8)
	assert.True(t, math.IsNaN(input[4].Open))
}

func TestValidateEmpty(t *testing.T) {
	assert.Empty(t, Validate(nil))
	assert.Empty(t, Validate(Series{newRecord(0, 100, 90, 110, 100)}))
}

func TestParseRecords(t *testing.T) {
	const data = `[
		{"time": "2024-03-01", "open": 10.5, "high": 11, "low": 10, "close": 10.75, "volume": 1200},
		{"time": "2024-03-04 15:30:00", "open": "10.75", "high": "12", "low": "10.5", "close": "11.5", "volume": "800"},
		{"time": 1709769600, "open": 11, "high": 11, "low": 11, "close": 11, "volume": 0},
		{"time": "2024-03-07", "open": "abc", "high": 11, "low": 10, "close": 10.75, "volume": 1},
		{"time": "2024-03-08", "open": null, "high": 11, "low": 10, "close": 10.75, "volume": 1},
		{"time": "2024-03-11", "open": 10, "high": 11, "low": 10, "close": 10.75, "volume": -5},
		{"time": "2024-03-12", "open": "NaN", "high": 11, "low": 10, "close": 10.75, "volume": 1},
		{"open": 10, "high": 11, "low": 10, "close": 10.75, "volume": 1},
		{"time": "week 11", "open": 10, "high": 11, "low": 10, "close": 10.75, "volume": 1}
	]`
	var raw []RawRecord
	assert.NoError(t, json.Unmarshal([]byte(data), &raw))
	s, rejected := ParseRecords(raw)
	assert.Equal(t, 5, rejected)
	if assert.Len(t, s, 4) {
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), s[0].Time)
		assert.Equal(t, "2024-03-01", s[0].Label)
		assert.Equal(t, 10.75, s[0].Close)
		assert.Equal(t, time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC), s[1].Time)
		assert.Equal(t, 800.0, s[1].Volume)
		assert.Equal(t, time.Unix(1709769600, 0).UTC(), s[2].Time)
		assert.True(t, s[3].Time.IsZero())
		assert.Equal(t, "week 11", s[3].Label)
	}
}

func TestParseRecordEpochMilliseconds(t *testing.T) {
	r, err := ParseRecord(RawRecord{
		Time:   json.RawMessage(`1709769600000`),
		Open:   json.RawMessage(`1`),
		High:   json.RawMessage(`2`),
		Low:    json.RawMessage(`0.5`),
		Close:  json.RawMessage(`1.5`),
		Volume: json.RawMessage(`10`),
	})
	assert.NoError(t, err)
	assert.Equal(t, time.Unix(1709769600, 0).UTC(), r.Time)
}

func TestParseRecordErrors(t *testing.T) {
	base := RawRecord{
		Time:   json.RawMessage(`"2024-01-02"`),
		Open:   json.RawMessage(`1`),
		High:   json.RawMessage(`2`),
		Low:    json.RawMessage(`0.5`),
		Close:  json.RawMessage(`1.5`),
		Volume: json.RawMessage(`10`),
	}
	_, err := ParseRecord(base)
	assert.NoError(t, err)

	r := base
	r.Volume = json.RawMessage(`-1`)
	_, err = ParseRecord(r)
	assert.ErrorIs(t, err, ErrNegativeVolume)

	r = base
	r.High = nil
	_, err = ParseRecord(r)
	assert.ErrorIs(t, err, ErrMissingValue)

	r = base
	r.Low = json.RawMessage(`"Infinity"`)
	_, err = ParseRecord(r)
	assert.ErrorIs(t, err, ErrInvalidNumber)

	r = base
	r.Time = json.RawMessage(`""`)
	_, err = ParseRecord(r)
	assert.ErrorIs(t, err, ErrMissingValue)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10.50", FormatPrice(10.5, 2))
	assert.Equal(t, "0.00", FormatPrice(-0.001, 2))
	assert.Equal(t, "123", FormatPrice(123.4, 0))
	assert.Equal(t, "-", FormatPrice(math.NaN(), 2))
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "950", FormatVolume(950))
	assert.Equal(t, "1.5k", FormatVolume(1500))
	assert.Equal(t, "2.3m", FormatVolume(2300000))
	assert.Equal(t, "4.0b", FormatVolume(4000000000))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, 0, Clamp(-3, 0, 5))
	assert.Equal(t, 0, Clamp(3, 0, -1))
	assert.Equal(t, 0.5, Clamp(0.5, 0.1, 10.0))
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeSymbol(" aapl "))
	assert.Equal(t, "BRK.B", NormalizeSymbol("brk.b"))
	assert.Equal(t, "^GSPC", NormalizeSymbol("^gspc/"))
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 0, CountDigits(0))
	assert.Equal(t, 1, CountDigits(7))
	assert.Equal(t, 3, CountDigits(125))
	assert.Equal(t, 5, CountDigits(-12345))
	assert.Equal(t, 19, CountDigits(math.MaxInt64))
}
