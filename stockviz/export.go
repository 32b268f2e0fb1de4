// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"stockchart/config"
	"stockchart/quoteapi"
	"stockchart/stockplot"
	"stockchart/surface"
	"stockchart/widgets"
)

type SeriesFetcher interface {
	Fetch(ctx context.Context, symbol, period string) quoteapi.SeriesResponse
}

// Render the configured chart without a window and write it as png image.
// If the data request fails, the image shows the placeholder and the error is returned after writing.
func ExportPNG(ctx context.Context, w io.Writer, appConfig config.AppConfig, fetcher SeriesFetcher, size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("invalid image size %v", size)
	}
	_, pth := widgets.NewThemes(appConfig.LightTheme)
	base := surface.NewRaster(size)
	overlay := surface.NewRaster(size)
	chart := stockplot.NewChart(NewChartOptions(appConfig.Chart, pth), base, overlay)

	resp := fetcher.Fetch(ctx, appConfig.Chart.Symbol, appConfig.DataSource.Period)
	chart.SetSeries(resp.Symbol, resp.Series)
	chart.Render()
	base.Compose(overlay)
	log.Printf("Exporting %s (%s) with %d records.", resp.Symbol, resp.Period, len(chart.Series()))
	if err := base.EncodePNG(w); err != nil {
		return err
	}
	return resp.Error
}
