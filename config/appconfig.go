// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"stockchart/stockval"

	"github.com/barkimedes/go-deepcopy"
)

type AppConfig struct {
	LightTheme   bool `yaml:",omitempty"`
	DataSource   DataSourceConfig
	Chart        ChartConfig
	WindowConfig WindowConfig
}

type DataSourceConfig struct {
	DataUrl string `yaml:",omitempty"`
	Period  string `yaml:",omitempty"`
	// The quote backend has no documented limit, stay polite anyway.
	RateLimitPerSecond int `yaml:",omitempty"`
	// The backend fetches from upstream feeds which sometimes do not reply, so use a timeout.
	DataTimeoutSeconds int `yaml:",omitempty"`
	MaxRetries         int `yaml:",omitempty"`
	CacheMinutes       int `yaml:",omitempty"`
}

const DefaultPeriod = "1y"

// Periods accepted by the chart endpoint.
var ValidPeriods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

var defaultDataSourceConfig = NewDataSourceConfig()

func NewAppConfig() AppConfig {
	return AppConfig{
		DataSource:   NewDataSourceConfig(),
		Chart:        NewChartConfig(),
		WindowConfig: NewWindowConfig(),
	}
}

func NewDataSourceConfig() DataSourceConfig {
	return DataSourceConfig{
		DataUrl:            "http://localhost:8000/api",
		Period:             DefaultPeriod,
		RateLimitPerSecond: 5,
		DataTimeoutSeconds: 30,
		MaxRetries:         3,
		CacheMinutes:       15,
	}
}

func (a *AppConfig) deepCopy() AppConfig {
	c, err := deepcopy.Anything(a)
	if err != nil {
		panic(err)
	}
	return *c.(*AppConfig)
}

func (a *AppConfig) Sanitize() {
	a.DataSource.sanitize()
	a.Chart.sanitize()
	a.WindowConfig.sanitize()
	a.RestoreDefaults()
}

func (d *DataSourceConfig) sanitize() {
	if stockval.IndexOf(ValidPeriods, d.Period) < 0 {
		d.Period = DefaultPeriod
	}
	if d.RateLimitPerSecond < 0 {
		d.RateLimitPerSecond = 0
	}
	if d.DataTimeoutSeconds < 0 {
		d.DataTimeoutSeconds = 0
	}
	if d.MaxRetries < 0 {
		d.MaxRetries = 0
	}
	if d.CacheMinutes < 0 {
		d.CacheMinutes = 0
	}
}

// We do not want to store certain default values in the configuration file,
// in order to avoid having to patch them.
func (a *AppConfig) RemoveDefaults() {
	if a.DataSource.DataUrl == defaultDataSourceConfig.DataUrl {
		a.DataSource.DataUrl = ""
	}
}

// Restore certain default values which are not stored in the configuration file.
func (a *AppConfig) RestoreDefaults() {
	if len(a.DataSource.DataUrl) == 0 {
		a.DataSource.DataUrl = defaultDataSourceConfig.DataUrl
	}
	if len(a.DataSource.Period) == 0 {
		a.DataSource.Period = defaultDataSourceConfig.Period
	}
}
