// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"fmt"
	"image/color"
	"log"
	"stockchart/surface"
	"stockchart/widgets"
)

const RenderErrorText = "Rendering error"

// Owns the base and the overlay surface and repaints each of them only if it was invalidated.
type Renderer struct {
	Theme        *widgets.PlotTheme
	base         surface.Surface
	overlay      surface.Surface
	baseDirty    bool
	overlayDirty bool
	baseCount    int
	overlayCount int
}

func NewRenderer(th *widgets.PlotTheme, base, overlay surface.Surface) *Renderer {
	return &Renderer{
		Theme:        th,
		base:         base,
		overlay:      overlay,
		baseDirty:    true,
		overlayDirty: true,
	}
}

// Replace the surfaces, e.g. after a resize. Both are repainted during the next render.
func (r *Renderer) SetSurfaces(base, overlay surface.Surface) {
	r.base = base
	r.overlay = overlay
	r.InvalidateAll()
}

func (r *Renderer) Base() surface.Surface {
	return r.base
}

func (r *Renderer) Overlay() surface.Surface {
	return r.overlay
}

func (r *Renderer) InvalidateBase() {
	r.baseDirty = true
}

func (r *Renderer) InvalidateOverlay() {
	r.overlayDirty = true
}

func (r *Renderer) InvalidateAll() {
	r.baseDirty = true
	r.overlayDirty = true
}

// Number of times the base surface was painted.
func (r *Renderer) BaseRenderCount() int {
	return r.baseCount
}

func (r *Renderer) OverlayRenderCount() int {
	return r.overlayCount
}

// Paint the invalidated surfaces. Errors and panics are never propagated,
// the affected surface shows an error text instead.
func (r *Renderer) Render(paintBase, paintOverlay func(s surface.Surface) error) {
	if r.baseDirty && r.base != nil {
		r.paint(r.base, "base", paintBase)
		r.baseDirty = false
		r.baseCount++
	}
	if r.overlayDirty && r.overlay != nil {
		r.paint(r.overlay, "overlay", paintOverlay)
		r.overlayDirty = false
		r.overlayCount++
	}
}

func (r *Renderer) paint(s surface.Surface, name string, fn func(s surface.Surface) error) {
	defer func() {
		if p := recover(); p != nil {
			r.showError(s, name, fmt.Errorf("panic: %v", p))
		}
	}()
	if err := fn(s); err != nil {
		r.showError(s, name, err)
	}
}

func (r *Renderer) showError(s surface.Surface, name string, err error) {
	log.Printf("Failed to render %s chart surface: %v", name, err)
	defer func() {
		if p := recover(); p != nil {
			log.Printf("Failed to show render error on %s chart surface: %v", name, p)
		}
	}()
	s.Clear(color.NRGBA{})
	drawPlaceholder(s, RenderErrorText, r.Theme.ErrorTextColor, r.Theme.AxesYfontSize)
}
