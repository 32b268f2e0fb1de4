// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericlagergren/decimal"
)

// Record as received from the data source, before any numeric interpretation.
// Values may be json numbers or numeric strings.
type RawRecord struct {
	Time   json.RawMessage `json:"time"`
	Open   json.RawMessage `json:"open"`
	High   json.RawMessage `json:"high"`
	Low    json.RawMessage `json:"low"`
	Close  json.RawMessage `json:"close"`
	Volume json.RawMessage `json:"volume"`
}

var (
	ErrMissingValue   = errors.New("missing value")
	ErrInvalidNumber  = errors.New("invalid number")
	ErrNegativeVolume = errors.New("negative volume")
)

// Epoch values above this are interpreted as milliseconds.
const epochMilliThreshold = 1e12

var timeLayouts = []string{
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// Strict structural parse of a single record.
// Only the shape is checked here, OHLC relations are checked by Validate.
func ParseRecord(r RawRecord) (Record, error) {
	var rec Record
	var err error
	if rec.Time, rec.Label, err = parseTime(r.Time); err != nil {
		return Record{}, fmt.Errorf("time: %w", err)
	}
	fields := []struct {
		name string
		raw  json.RawMessage
		out  *float64
	}{
		{"open", r.Open, &rec.Open},
		{"high", r.High, &rec.High},
		{"low", r.Low, &rec.Low},
		{"close", r.Close, &rec.Close},
		{"volume", r.Volume, &rec.Volume},
	}
	for _, f := range fields {
		if *f.out, err = parseNumber(f.raw); err != nil {
			return Record{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	if rec.Volume < 0 {
		return Record{}, ErrNegativeVolume
	}
	return rec, nil
}

// Parse all records which are structurally valid, and return the number of rejected ones.
func ParseRecords(raw []RawRecord) (s Series, rejected int) {
	s = make(Series, 0, len(raw))
	for _, r := range raw {
		rec, err := ParseRecord(r)
		if err != nil {
			rejected++
			continue
		}
		s = append(s, rec)
	}
	return
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func parseNumber(raw json.RawMessage) (float64, error) {
	if isNull(raw) {
		return 0, ErrMissingValue
	}
	t := bytes.TrimSpace(raw)
	var s string
	if t[0] == '"' {
		if err := json.Unmarshal(t, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
	} else {
		s = string(t)
	}
	d, ok := new(decimal.Big).SetString(s)
	if !ok || !d.IsFinite() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	v, ok := d.Float64()
	if !ok || !IsFinite(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

func parseTime(raw json.RawMessage) (time.Time, string, error) {
	if isNull(raw) {
		return time.Time{}, "", ErrMissingValue
	}
	t := bytes.TrimSpace(raw)
	if t[0] == '"' {
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return time.Time{}, "", err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, "", ErrMissingValue
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, s, nil
			}
		}
		// Unknown format, keep the identifier for labels.
		return time.Time{}, s, nil
	}
	epoch, err := parseNumber(raw)
	if err != nil {
		return time.Time{}, "", err
	}
	var ts time.Time
	if epoch > epochMilliThreshold {
		ts = time.UnixMilli(int64(epoch)).UTC()
	} else {
		ts = time.Unix(int64(epoch), 0).UTC()
	}
	return ts, string(t), nil
}
