// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package main

import (
	"context"
	"flag"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"stockchart/cache"
	"stockchart/config"
	"stockchart/quoteapi"
	"stockchart/stockval"
	"stockchart/stockviz"
	"time"

	"gioui.org/app"
	"gopkg.in/natefinch/lumberjack.v2"
)

type options struct {
	envFile   string
	export    string
	symbol    string
	period    string
	width     int
	height    int
	noCache   bool
	logToFile bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.envFile, "env", ".env", "optional file with environment overrides")
	flag.StringVar(&o.export, "export", "", "render the chart to this png file and exit")
	flag.StringVar(&o.symbol, "symbol", "", "ticker symbol, overrides the configuration")
	flag.StringVar(&o.period, "period", "", "chart period, overrides the configuration")
	flag.IntVar(&o.width, "width", 1200, "width of the exported image")
	flag.IntVar(&o.height, "height", 800, "height of the exported image")
	flag.BoolVar(&o.noCache, "nocache", false, "do not use the local chart data cache")
	flag.BoolVar(&o.logToFile, "logfile", true, "additionally write log output to a rotating file")
	flag.Parse()
	return o
}

func setupLogger(enabled bool) {
	if !enabled {
		return
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		log.Printf("unable to determine log path: %v", err)
		return
	}
	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(dir, config.AppName, "stockchart.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
}

// Command line values take precedence over environment and configuration file.
func (o options) lookupEnv(key string) (string, bool) {
	switch {
	case key == config.EnvSymbol && len(o.symbol) > 0:
		return o.symbol, true
	case key == config.EnvPeriod && len(o.period) > 0:
		return o.period, true
	}
	return os.LookupEnv(key)
}

func newSeriesCache(appConfig config.AppConfig, disabled bool) cache.SeriesCache {
	if disabled || appConfig.DataSource.CacheMinutes <= 0 {
		return nil
	}
	c, err := cache.NewLocalSeriesCache("charts", time.Minute*time.Duration(appConfig.DataSource.CacheMinutes))
	if err != nil {
		log.Printf("chart data is not cached: %v", err)
		return nil
	}
	return c
}

func export(ctx context.Context, o options, appConfig config.AppConfig, client *quoteapi.Client) error {
	f, err := os.Create(o.export)
	if err != nil {
		return err
	}
	defer f.Close()
	return stockviz.ExportPNG(ctx, f, appConfig, client, image.Pt(o.width, o.height))
}

func main() {
	o := parseFlags()
	setupLogger(o.logToFile)
	if err := config.LoadEnvFiles(o.envFile); err != nil {
		log.Printf("error loading %s: %v", o.envFile, err)
	}
	c := config.WithEnv(config.NewGlobalConfig(), o.lookupEnv)
	appConfig, err := c.Copy()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}
	log.Printf("Using data source %s, symbol %s, period %s.",
		appConfig.DataSource.DataUrl, stockval.NormalizeSymbol(appConfig.Chart.Symbol), appConfig.DataSource.Period)

	ctx, cancel := context.WithCancel(context.Background())
	client := quoteapi.NewClient(appConfig.DataSource, newSeriesCache(appConfig, o.noCache))

	if len(o.export) > 0 {
		err := export(ctx, o, appConfig, client)
		cancel()
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		return
	}

	a := stockviz.NewChartApp(c)
	if err := a.Initialize(ctx, client); err != nil {
		log.Fatalf("error initializing: %v", err)
	}
	go func() {
		err := a.Run()
		cancel()
		if err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}
