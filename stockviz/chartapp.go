// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockviz

import (
	"context"
	"image"
	"log"
	"stockchart/config"
	"stockchart/widgets"
	"sync/atomic"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Desktop window showing a single chart.
type ChartApp struct {
	win         *app.Window
	windowReady atomic.Bool
	size        image.Point // dp
	config      config.Config
	session     config.AppConfig
	store       *SeriesStore
	view        *ChartView
	matTheme    *material.Theme
	plotTheme   *widgets.PlotTheme
}

func NewChartApp(c config.Config) *ChartApp {
	return &ChartApp{
		win:    new(app.Window),
		config: c,
		store:  NewSeriesStore(),
	}
}

func (a *ChartApp) Initialize(ctx context.Context, querier SeriesQuerier) error {
	appConfig, err := a.config.Copy()
	if err != nil {
		return err
	}
	// Themes need to be set up first, because the chart uses them.
	a.matTheme, a.plotTheme = widgets.NewThemes(appConfig.LightTheme)
	a.session = appConfig
	a.size = appConfig.WindowConfig.Size
	a.store.Initialize(ctx, querier, a)
	a.store.StartRefresh(time.Minute * time.Duration(appConfig.DataSource.CacheMinutes))
	a.view = NewChartView(appConfig, a.matTheme, a.plotTheme, a.store)
	return nil
}

func (a *ChartApp) saveConfiguration() error {
	appConfig, err := a.config.Lock()
	if err != nil {
		return err
	}
	SaveChartState(&appConfig.Chart, a.view.Chart.Options())
	col, width := a.view.Chart.AnnotationStyle()
	SaveAnnotationStyle(&appConfig.Chart, col, width)
	// Values which still come from the environment are not stored.
	if a.view.Symbol() != a.session.Chart.Symbol {
		appConfig.Chart.Symbol = a.view.Symbol()
	}
	if a.view.Period() != a.session.DataSource.Period {
		appConfig.DataSource.Period = a.view.Period()
	}
	appConfig.WindowConfig.Size = a.size
	return a.config.Unlock(appConfig)
}

// Handle window events until the window is closed.
func (a *ChartApp) Run() error {
	a.createWindow()
	err := a.handleEvents()
	if err != nil {
		log.Printf("terminating with error: %v", err)
	}
	a.terminate()
	return err
}

// Request a new frame. Safe to call from any goroutine.
func (a *ChartApp) Invalidate() {
	if a.windowReady.Load() {
		a.win.Invalidate()
	}
}

func (a *ChartApp) createWindow() {
	a.win.Option(
		app.Title(a.config.GetAppName()),
		app.Size(unit.Dp(a.size.X), unit.Dp(a.size.Y)),
	)
	a.windowReady.Store(true)
}

func (a *ChartApp) handleEvents() error {
	var ops op.Ops
	for {
		switch e := a.win.Event().(type) {
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.size = image.Point{X: int(gtx.Metric.PxToDp(e.Size.X)), Y: int(gtx.Metric.PxToDp(e.Size.Y))}
			paint.Fill(gtx.Ops, a.matTheme.Bg)
			a.view.Layout(gtx, a.matTheme)
			e.Frame(gtx.Ops)
		case app.DestroyEvent:
			return e.Err
		}
	}
}

func (a *ChartApp) terminate() {
	a.windowReady.Store(false)
	if err := a.saveConfiguration(); err != nil {
		log.Printf("error saving configuration: %v", err)
	}
	a.store.Terminate()
}
