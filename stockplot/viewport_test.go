// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportDefaultZoomIn(t *testing.T) {
	c := NewViewportController(DefaultViewportOptions())
	c.SetLength(30)
	assert.Equal(t, Viewport{Start: 0, End: 30}, c.Viewport())
	c.ZoomIn()
	assert.Equal(t, 20, c.VisibleCount())
	assert.Equal(t, Viewport{Start: 10, End: 30}, c.Viewport())
}

func TestViewportBounds(t *testing.T) {
	const minVisible = 20
	for _, length := range []int{1, 5, 19, 20, 21, 30, 100, 257} {
		for _, zoom := range []float64{0.1, 0.5, 1, 1.5, 2.25, 3, 7.7, 10, 100} {
			for _, pan := range []int{0, 1, 5, 19, 50, 1000} {
				vp := CalcViewport(length, zoom, pan, minVisible)
				assert.GreaterOrEqual(t, vp.Start, 0)
				assert.Less(t, vp.Start, vp.End)
				assert.LessOrEqual(t, vp.End, length)
				if length >= minVisible {
					assert.GreaterOrEqual(t, vp.Len(), minVisible)
				} else {
					assert.Equal(t, length, vp.Len())
				}
			}
		}
	}
}

func TestViewportEmptySeries(t *testing.T) {
	assert.True(t, CalcViewport(0, 1, 0, 20).Empty())
	c := NewViewportController(DefaultViewportOptions())
	c.ZoomIn()
	c.PanLeft(5)
	assert.True(t, c.Viewport().Empty())
	assert.Equal(t, 0, c.PanOffset())
}

func TestZoomMonotonicity(t *testing.T) {
	c := NewViewportController(DefaultViewportOptions())
	c.SetLength(100)
	prev := c.Viewport().Len()
	assert.Equal(t, 100, prev)
	for prev > 20 {
		c.ZoomIn()
		count := c.Viewport().Len()
		assert.Less(t, count, prev)
		prev = count
	}
	assert.Equal(t, 20, prev)
	for i := 0; i < 10; i++ {
		c.ZoomIn()
		assert.Equal(t, 20, c.Viewport().Len())
	}
	assert.Equal(t, 10.0, c.ZoomLevel())
}

func TestZoomOutLimit(t *testing.T) {
	c := NewViewportController(DefaultViewportOptions())
	c.SetLength(50)
	for i := 0; i < 20; i++ {
		c.ZoomOut()
	}
	assert.InDelta(t, 0.1, c.ZoomLevel(), 1e-9)
	assert.Equal(t, Viewport{Start: 0, End: 50}, c.Viewport())
}

func TestPan(t *testing.T) {
	c := NewViewportController(DefaultViewportOptions())
	c.SetLength(100)
	c.ZoomIn()
	assert.Equal(t, Viewport{Start: 34, End: 100}, c.Viewport())
	c.PanLeft(5)
	assert.Equal(t, Viewport{Start: 29, End: 95}, c.Viewport())
	c.PanLeft(1000)
	assert.Equal(t, 34, c.PanOffset())
	assert.Equal(t, Viewport{Start: 0, End: 66}, c.Viewport())
	c.PanRight(4)
	assert.Equal(t, Viewport{Start: 4, End: 70}, c.Viewport())
	c.PanRight(1000)
	assert.Equal(t, 0, c.PanOffset())
	assert.Equal(t, Viewport{Start: 34, End: 100}, c.Viewport())
}

func TestResetView(t *testing.T) {
	c := NewViewportController(DefaultViewportOptions())
	c.SetLength(100)
	c.ZoomIn()
	c.ZoomIn()
	c.PanLeft(10)
	c.ResetView()
	assert.Equal(t, 1.0, c.ZoomLevel())
	assert.Equal(t, 0, c.PanOffset())
	assert.Equal(t, Viewport{Start: 0, End: 100}, c.Viewport())
}

func TestSetLengthClampsPan(t *testing.T) {
	c := NewViewportController(DefaultViewportOptions())
	c.SetLength(100)
	c.ZoomIn()
	c.PanLeft(30)
	assert.Equal(t, 30, c.PanOffset())
	c.SetLength(50)
	assert.Equal(t, 33, c.VisibleCount())
	assert.Equal(t, 17, c.PanOffset())
	assert.Equal(t, Viewport{Start: 0, End: 33}, c.Viewport())
}

func TestViewportOptionsSanitize(t *testing.T) {
	c := NewViewportController(ViewportOptions{})
	c.SetLength(30)
	c.ZoomIn()
	assert.Equal(t, Viewport{Start: 10, End: 30}, c.Viewport())
}
