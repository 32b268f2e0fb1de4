// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"stockchart/config"
	"stockchart/quoteapi"
	"stockchart/stockval"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testFetcher struct {
	err error
}

func (f testFetcher) Fetch(ctx context.Context, symbol, period string) quoteapi.SeriesResponse {
	resp := quoteapi.SeriesResponse{SeriesRequest: quoteapi.SeriesRequest{Symbol: symbol, Period: period}, Error: f.err}
	if f.err != nil {
		return resp
	}
	for i := 0; i < 60; i++ {
		o := 100 + float64(i%7)
		resp.Series = append(resp.Series, stockval.Record{
			Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   o,
			High:   o + 3,
			Low:    o - 2,
			Close:  o + 1,
			Volume: 1000 + float64(i),
		})
	}
	return resp
}

func TestExportPNG(t *testing.T) {
	var buf bytes.Buffer
	err := ExportPNG(context.Background(), &buf, config.NewAppConfig(), testFetcher{}, image.Pt(640, 480))
	assert.NoError(t, err)
	img, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, image.Pt(640, 480), img.Bounds().Size())
	// Background of the dark theme.
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0x1212, 0x1212, 0x1212}, []uint32{r, g, b})
}

func TestExportPNGFetchError(t *testing.T) {
	var buf bytes.Buffer
	fetchErr := errors.New("backend unavailable")
	err := ExportPNG(context.Background(), &buf, config.NewAppConfig(), testFetcher{err: fetchErr}, image.Pt(200, 100))
	assert.ErrorIs(t, err, fetchErr)
	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestExportPNGInvalidSize(t *testing.T) {
	var buf bytes.Buffer
	err := ExportPNG(context.Background(), &buf, config.NewAppConfig(), testFetcher{}, image.Pt(0, 100))
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
