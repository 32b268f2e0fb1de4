// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package quoteapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"stockchart/cache"
	"stockchart/config"
	"stockchart/stockval"
	"stockchart/webclient"
	"strings"
	"time"
)

type StockInfo struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// Response of the chart endpoint.
type ChartResponse struct {
	Symbol      string               `json:"symbol"`
	StockInfo   *StockInfo           `json:"stock_info,omitempty"`
	ChartData   []stockval.RawRecord `json:"chart_data"`
	Period      string               `json:"period"`
	DataPoints  int                  `json:"data_points"`
	LastUpdated string               `json:"last_updated"`
	DataSource  string               `json:"data_source"`
}

type SeriesRequest struct {
	Symbol string
	Period string
}

type SeriesResponse struct {
	SeriesRequest
	Error      error
	Name       string
	DataSource string
	Series     stockval.Series
	// Number of records which could not be parsed.
	Rejected int
}

var ErrNoData = errors.New("no chart data")

type Client struct {
	config config.DataSourceConfig
	web    *webclient.Client
	cache  cache.SeriesCache
}

// Create a client for the quote backend. If seriesCache is nil, every request is sent to the backend.
func NewClient(c config.DataSourceConfig, seriesCache cache.SeriesCache) *Client {
	limiter := webclient.NewRateLimiter(time.Second, uint32(c.RateLimitPerSecond))
	return &Client{
		config: c,
		web:    webclient.NewClient(time.Second*time.Duration(c.DataTimeoutSeconds), limiter, c.MaxRetries),
		cache:  seriesCache,
	}
}

func ReadConfig(c config.Config, seriesCache cache.SeriesCache) (*Client, error) {
	appConfig, err := c.Copy()
	if err != nil {
		return nil, err
	}
	return NewClient(appConfig.DataSource, seriesCache), nil
}

// Number of requests which can be sent in the current rate limit interval.
func (c *Client) RemainingApiLimit() int {
	return c.web.Limiter.Remaining()
}

// Sets the pause between retries. Mainly useful for tests.
func (c *Client) SetRetryPause(d time.Duration) {
	c.web.RetryPause = d
}

func (c *Client) chartUrl(symbol, period string) string {
	query := make(url.Values)
	query.Add("period", period)
	return strings.TrimSuffix(c.config.DataUrl, "/") + "/real-data/chart/" + url.PathEscape(symbol) + "/?" + query.Encode()
}

// Process series requests until the request channel is closed.
func (c *Client) QuerySeries(ctx context.Context, request <-chan SeriesRequest, response chan<- SeriesResponse) {
	defer close(response)

	for req := range request {
		resp := c.Fetch(ctx, req.Symbol, req.Period)
		if resp.Error != nil {
			log.Print(resp.Error)
		}
		if c.RemainingApiLimit() < 1 {
			log.Println("Quote API limit reached, further requests are delayed.")
		}
		response <- resp
	}
	log.Println("quote QuerySeries terminating.")
}

// Load the series for symbol and period, using the cache if available.
// An empty period selects the configured default.
func (c *Client) Fetch(ctx context.Context, symbol, period string) SeriesResponse {
	symbol = stockval.NormalizeSymbol(symbol)
	if len(period) == 0 {
		period = c.config.Period
	}
	resp := SeriesResponse{SeriesRequest: SeriesRequest{Symbol: symbol, Period: period}}
	if len(symbol) == 0 {
		resp.Error = errors.New("empty symbol")
		return resp
	}
	body, err := c.load(ctx, symbol, period)
	if err != nil {
		resp.Error = fmt.Errorf("chart %s (%s): %w", symbol, period, err)
		return resp
	}
	var chart ChartResponse
	if err = json.Unmarshal(body, &chart); err == nil && len(chart.ChartData) == 0 {
		err = ErrNoData
	}
	if err != nil {
		if c.cache != nil {
			c.cache.Invalidate(symbol, period)
		}
		resp.Error = fmt.Errorf("chart %s (%s): %w", symbol, period, err)
		return resp
	}
	resp.Series, resp.Rejected = stockval.ParseRecords(chart.ChartData)
	resp.DataSource = chart.DataSource
	if chart.StockInfo != nil {
		resp.Name = stockval.TruncateDisplayName(chart.StockInfo.Name)
	}
	if resp.Rejected > 0 {
		log.Printf("chart %s (%s): %d records could not be parsed", symbol, period, resp.Rejected)
	}
	log.Printf("# records %s: %d", symbol, len(resp.Series))
	return resp
}

func (c *Client) load(ctx context.Context, symbol, period string) ([]byte, error) {
	req := func(ctx context.Context) ([]byte, error) {
		return c.web.Get(ctx, c.chartUrl(symbol, period))
	}
	if c.cache == nil {
		return req(ctx)
	}
	return c.cache.GetSeriesData(ctx, symbol, period, req)
}
