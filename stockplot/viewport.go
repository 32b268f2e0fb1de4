// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"math"
	"stockchart/stockval"
)

// Half open index range [Start, End) into the validated series.
type Viewport struct {
	Start int
	End   int
}

func (v Viewport) Len() int {
	return v.End - v.Start
}

func (v Viewport) Empty() bool {
	return v.End <= v.Start
}

type ViewportOptions struct {
	MinVisible int
	ZoomFactor float64
	MinZoom    float64
	MaxZoom    float64
}

func DefaultViewportOptions() ViewportOptions {
	return ViewportOptions{
		MinVisible: 20,
		ZoomFactor: 1.5,
		MinZoom:    0.1,
		MaxZoom:    10,
	}
}

func (o ViewportOptions) sanitize() ViewportOptions {
	d := DefaultViewportOptions()
	if o.MinVisible < 1 {
		o.MinVisible = d.MinVisible
	}
	if o.ZoomFactor <= 1 {
		o.ZoomFactor = d.ZoomFactor
	}
	if o.MinZoom <= 0 {
		o.MinZoom = d.MinZoom
	}
	if o.MaxZoom < o.MinZoom {
		o.MaxZoom = max(d.MaxZoom, o.MinZoom)
	}
	return o
}

// Number of visible records, never more than the series length.
func VisibleCount(length int, zoomLevel float64, minVisible int) int {
	if length <= 0 {
		return 0
	}
	if zoomLevel <= 0 {
		zoomLevel = 1
	}
	count := max(minVisible, int(math.Floor(float64(length)/zoomLevel)))
	return min(count, length)
}

// Derive the viewport from zoom and pan. The pan offset counts records back from the newest record,
// so an offset of zero shows the most recent data.
func CalcViewport(length int, zoomLevel float64, panOffset int, minVisible int) Viewport {
	count := VisibleCount(length, zoomLevel, minVisible)
	if count == 0 {
		return Viewport{}
	}
	maxStart := length - count
	start := stockval.Clamp(maxStart-panOffset, 0, maxStart)
	return Viewport{Start: start, End: min(length, start+count)}
}

// Zoom and pan state of a chart. The viewport is always recomputed from scratch.
type ViewportController struct {
	opts      ViewportOptions
	length    int
	zoomLevel float64
	panOffset int
}

func NewViewportController(opts ViewportOptions) *ViewportController {
	return &ViewportController{
		opts:      opts.sanitize(),
		zoomLevel: 1,
	}
}

func (c *ViewportController) SetLength(length int) {
	c.length = max(length, 0)
	c.clampPan()
}

func (c *ViewportController) Length() int {
	return c.length
}

func (c *ViewportController) ZoomLevel() float64 {
	return c.zoomLevel
}

func (c *ViewportController) PanOffset() int {
	return c.panOffset
}

func (c *ViewportController) VisibleCount() int {
	return VisibleCount(c.length, c.zoomLevel, c.opts.MinVisible)
}

func (c *ViewportController) Viewport() Viewport {
	return CalcViewport(c.length, c.zoomLevel, c.panOffset, c.opts.MinVisible)
}

func (c *ViewportController) ZoomIn() {
	c.zoomLevel = stockval.Clamp(c.zoomLevel*c.opts.ZoomFactor, c.opts.MinZoom, c.opts.MaxZoom)
	c.clampPan()
}

func (c *ViewportController) ZoomOut() {
	c.zoomLevel = stockval.Clamp(c.zoomLevel/c.opts.ZoomFactor, c.opts.MinZoom, c.opts.MaxZoom)
	c.clampPan()
}

// Move the viewport towards older records.
func (c *ViewportController) PanLeft(step int) {
	c.panOffset += step
	c.clampPan()
}

// Move the viewport towards newer records.
func (c *ViewportController) PanRight(step int) {
	c.panOffset -= step
	c.clampPan()
}

func (c *ViewportController) ResetView() {
	c.zoomLevel = 1
	c.panOffset = 0
}

func (c *ViewportController) clampPan() {
	c.panOffset = stockval.Clamp(c.panOffset, 0, c.length-c.VisibleCount())
}
