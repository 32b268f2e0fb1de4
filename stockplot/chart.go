// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"image/color"
	"log"
	"stockchart/annotation"
	"stockchart/stockval"
	"stockchart/surface"
	"stockchart/widgets"

	"gioui.org/f32"
	"github.com/google/uuid"
)

const AnnotationHitTolerance = 6

type ChartOptions struct {
	Options
	Viewport   ViewportOptions
	PanStep    int
	AnchorMode AnchorMode
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Options:    DefaultOptions(),
		Viewport:   DefaultViewportOptions(),
		PanStep:    5,
		AnchorMode: AnchorModePixel,
	}
}

// Candlestick or line chart of a single series with an annotation overlay.
// Inputs only change state, Render derives viewport, window and price range and paints what changed.
// All methods need to be called from the same goroutine.
type Chart struct {
	opts        ChartOptions
	series      stockval.Series
	dropped     int
	viewport    *ViewportController
	annotations *annotation.Layer
	renderer    *Renderer
	drawMode    bool
	frame       frame
	hasFrame    bool
	painted     struct {
		viewport Viewport
		revision uint64
	}
}

func NewChart(opts ChartOptions, base, overlay surface.Surface) *Chart {
	if opts.Theme == nil {
		opts.Theme = DefaultOptions().Theme
	}
	if opts.PanStep <= 0 {
		opts.PanStep = DefaultChartOptions().PanStep
	}
	if opts.AnchorMode == "" {
		opts.AnchorMode = AnchorModePixel
	}
	return &Chart{
		opts:        opts,
		viewport:    NewViewportController(opts.Viewport),
		annotations: annotation.NewLayer(),
		renderer:    NewRenderer(opts.Theme, base, overlay),
	}
}

// Validate and set a new series. Invalid records are dropped.
func (c *Chart) SetSeries(symbol string, s stockval.Series) {
	c.series = stockval.Validate(s)
	c.dropped = len(s) - len(c.series)
	if c.dropped > 0 {
		log.Printf("Dropped %d invalid records of %s.", c.dropped, symbol)
	}
	c.opts.Symbol = symbol
	c.viewport.SetLength(len(c.series))
	c.invalidateBase()
}

func (c *Chart) Series() stockval.Series {
	return c.series
}

// Number of records which were dropped by validation of the current series.
func (c *Chart) Dropped() int {
	return c.dropped
}

func (c *Chart) Options() ChartOptions {
	return c.opts
}

func (c *Chart) SetChartType(t stockval.ChartType) {
	if c.opts.ChartType != t {
		c.opts.ChartType = t
		c.invalidateBase()
	}
}

func (c *Chart) SetShowVolume(show bool) {
	if c.opts.ShowVolume != show {
		c.opts.ShowVolume = show
		c.invalidateBase()
	}
}

func (c *Chart) SetTheme(th *widgets.PlotTheme) {
	c.opts.Theme = th
	c.renderer.Theme = th
	c.renderer.InvalidateAll()
}

func (c *Chart) ZoomIn() {
	c.viewport.ZoomIn()
}

func (c *Chart) ZoomOut() {
	c.viewport.ZoomOut()
}

func (c *Chart) PanLeft() {
	c.viewport.PanLeft(c.opts.PanStep)
}

func (c *Chart) PanRight() {
	c.viewport.PanRight(c.opts.PanStep)
}

func (c *Chart) ResetView() {
	c.viewport.ResetView()
}

func (c *Chart) Viewport() Viewport {
	return c.viewport.Viewport()
}

func (c *Chart) ViewportController() *ViewportController {
	return c.viewport
}

// New surfaces after the host was resized.
func (c *Chart) Resize(base, overlay surface.Surface) {
	c.renderer.SetSurfaces(base, overlay)
	c.hasFrame = false
}

func (c *Chart) Renderer() *Renderer {
	return c.renderer
}

func (c *Chart) SetDrawMode(enabled bool) {
	if !enabled {
		c.annotations.Cancel()
	}
	c.drawMode = enabled
}

func (c *Chart) DrawMode() bool {
	return c.drawMode
}

func (c *Chart) DrawState() annotation.State {
	return c.annotations.State()
}

// Handle a pointer click on the chart surface. Clicks are only used in draw mode.
// Returns the segment if the click committed one.
func (c *Chart) Click(p f32.Point) (annotation.Segment, bool) {
	if !c.drawMode {
		return annotation.Segment{}, false
	}
	return c.annotations.Click(p, c.anchorAt(p))
}

func (c *Chart) CancelDraw() {
	c.annotations.Cancel()
}

func (c *Chart) ClearAnnotations() {
	c.annotations.ClearAll()
}

func (c *Chart) DeleteAnnotation(id uuid.UUID) bool {
	return c.annotations.Delete(id)
}

func (c *Chart) LabelAnnotation(id uuid.UUID, label string) bool {
	return c.annotations.SetLabel(id, label)
}

func (c *Chart) SetAnnotationStyle(col color.NRGBA, width float32) {
	c.annotations.SetStyle(col, width)
}

func (c *Chart) AnnotationStyle() (color.NRGBA, float32) {
	return c.annotations.Style()
}

// Committed annotation displayed within AnnotationHitTolerance pixels of p.
func (c *Chart) AnnotationAt(p f32.Point) (annotation.Segment, bool) {
	return annotation.Nearest(c.projectedAnnotations(), p, AnnotationHitTolerance)
}

func (c *Chart) AnnotationCount() int {
	return c.annotations.Len()
}

func (c *Chart) LastAnnotation() (annotation.Segment, bool) {
	return c.annotations.Last()
}

// Remove the most recently committed annotation.
func (c *Chart) UndoAnnotation() (uuid.UUID, bool) {
	seg, ok := c.annotations.Last()
	if !ok || !c.annotations.Delete(seg.ID) {
		return uuid.Nil, false
	}
	return seg.ID, true
}

func (c *Chart) Annotations() []annotation.Segment {
	return c.annotations.Segments()
}

// Chart position of a surface pixel, according to the last derived frame.
func (c *Chart) anchorAt(p f32.Point) annotation.Anchor {
	if !c.hasFrame {
		c.derive()
	}
	if !c.hasFrame {
		return annotation.Anchor{}
	}
	index, price := c.frame.toChart(p)
	return annotation.Anchor{Index: index, Price: price}
}

func (c *Chart) window(vp Viewport) Window {
	return Window{Records: c.series[vp.Start:vp.End], Start: vp.Start}
}

// Derive viewport, visible window and frame geometry from the current state.
// Invalidates the surfaces depending on what changed.
func (c *Chart) derive() Window {
	vp := c.viewport.Viewport()
	if vp != c.painted.viewport {
		c.painted.viewport = vp
		c.invalidateBase()
	}
	if rev := c.annotations.Revision(); rev != c.painted.revision {
		c.painted.revision = rev
		c.renderer.InvalidateOverlay()
	}
	w := c.window(vp)
	base := c.renderer.Base()
	if base != nil && len(w.Records) > 0 {
		size := base.Size()
		if size.X > 0 && size.Y > 0 {
			c.frame = newFrame(size, w, c.opts.Options)
			c.hasFrame = true
			return w
		}
	}
	c.hasFrame = false
	return w
}

// Derive the current state and repaint the invalidated surfaces.
func (c *Chart) Render() {
	w := c.derive()
	c.renderer.Render(
		func(s surface.Surface) error {
			DrawBaseChart(s, w, c.opts.Options)
			return nil
		},
		func(s surface.Surface) error {
			DrawAnnotations(s, c.projectedAnnotations(), c.pendingStart(), c.opts.Theme)
			return nil
		},
	)
}

func (c *Chart) pendingStart() *f32.Point {
	if p, ok := c.annotations.PendingStart(); ok {
		return &p
	}
	return nil
}

func (c *Chart) projectedAnnotations() []annotation.Segment {
	segments := c.annotations.Segments()
	if c.opts.AnchorMode != AnchorModeChart || !c.hasFrame {
		return segments
	}
	for i := range segments {
		segments[i].Start = c.frame.toPixel(segments[i].StartAnchor.Index, segments[i].StartAnchor.Price)
		segments[i].End = c.frame.toPixel(segments[i].EndAnchor.Index, segments[i].EndAnchor.Price)
	}
	return segments
}

func (c *Chart) invalidateBase() {
	c.renderer.InvalidateBase()
	if c.opts.AnchorMode == AnchorModeChart {
		c.renderer.InvalidateOverlay()
	}
}
