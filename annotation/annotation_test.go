// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annotation

import (
	"image/color"
	"testing"

	"gioui.org/f32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func commit(l *Layer, x0, y0, x1, y1 float32) Segment {
	l.Click(f32.Pt(x0, y0), Anchor{})
	s, ok := l.Click(f32.Pt(x1, y1), Anchor{})
	if !ok {
		panic("segment not committed")
	}
	return s
}

func TestCommitGestures(t *testing.T) {
	l := NewLayer()
	const n = 5
	for i := 0; i < n; i++ {
		commit(l, float32(i), 10, float32(i)+20, 40)
		assert.Equal(t, StateIdle, l.State())
	}
	segments := l.Segments()
	assert.Len(t, segments, n)
	ids := make(map[uuid.UUID]bool)
	for i, s := range segments {
		assert.Equal(t, f32.Pt(float32(i), 10), s.Start)
		assert.Equal(t, f32.Pt(float32(i)+20, 40), s.End)
		assert.Equal(t, DefaultColor, s.Color)
		assert.Equal(t, float32(DefaultWidth), s.Width)
		ids[s.ID] = true
	}
	assert.Len(t, ids, n)
}

func TestFirstClickAwaitsEndPoint(t *testing.T) {
	l := NewLayer()
	_, ok := l.Click(f32.Pt(3, 4), Anchor{Index: 1, Price: 100})
	assert.False(t, ok)
	assert.Equal(t, StateAwaitingEndPoint, l.State())
	p, pending := l.PendingStart()
	assert.True(t, pending)
	assert.Equal(t, f32.Pt(3, 4), p)
	s, ok := l.Click(f32.Pt(5, 6), Anchor{Index: 2, Price: 90})
	assert.True(t, ok)
	assert.Equal(t, Anchor{Index: 1, Price: 100}, s.StartAnchor)
	assert.Equal(t, Anchor{Index: 2, Price: 90}, s.EndAnchor)
	_, pending = l.PendingStart()
	assert.False(t, pending)
}

func TestCancel(t *testing.T) {
	l := NewLayer()
	commit(l, 0, 0, 1, 1)
	l.Click(f32.Pt(10, 10), Anchor{})
	l.Cancel()
	assert.Equal(t, StateIdle, l.State())
	assert.Equal(t, 1, l.Len())

	// cancel while idle changes nothing
	rev := l.Revision()
	l.Cancel()
	assert.Equal(t, rev, l.Revision())
	assert.Equal(t, StateIdle, l.State())
}

func TestClearAll(t *testing.T) {
	l := NewLayer()
	commit(l, 0, 0, 1, 1)
	commit(l, 2, 2, 3, 3)
	l.Click(f32.Pt(10, 10), Anchor{})
	l.ClearAll()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Segments())
	assert.Equal(t, StateIdle, l.State())
}

func TestDeleteAndLabel(t *testing.T) {
	l := NewLayer()
	a := commit(l, 0, 0, 1, 1)
	b := commit(l, 2, 2, 3, 3)
	assert.True(t, l.SetLabel(b.ID, "support"))
	assert.True(t, l.Delete(a.ID))
	assert.False(t, l.Delete(a.ID))
	assert.False(t, l.SetLabel(uuid.New(), "x"))
	segments := l.Segments()
	if assert.Len(t, segments, 1) {
		assert.Equal(t, b.ID, segments[0].ID)
		assert.Equal(t, "support", segments[0].Label)
	}
}

func TestStyle(t *testing.T) {
	l := NewLayer()
	red := color.NRGBA{R: 0xff, A: 0xff}
	l.SetStyle(red, 4)
	s := commit(l, 0, 0, 1, 1)
	assert.Equal(t, red, s.Color)
	assert.Equal(t, float32(4), s.Width)
	// invalid width keeps the previous one
	l.SetStyle(red, 0)
	_, w := l.Style()
	assert.Equal(t, float32(4), w)
}

func TestSegmentsReturnsCopy(t *testing.T) {
	l := NewLayer()
	commit(l, 0, 0, 1, 1)
	segments := l.Segments()
	segments[0].Label = "changed"
	assert.Equal(t, "", l.Segments()[0].Label)
}

func TestSegmentDistance(t *testing.T) {
	s := Segment{Start: f32.Pt(0, 0), End: f32.Pt(100, 0)}
	assert.InDelta(t, 5, s.Distance(f32.Pt(50, 5)), 1e-4)
	assert.InDelta(t, 5, s.Distance(f32.Pt(-3, 4)), 1e-4)
	assert.InDelta(t, 0, s.Distance(f32.Pt(100, 0)), 1e-4)
	dot := Segment{Start: f32.Pt(10, 10), End: f32.Pt(10, 10)}
	assert.InDelta(t, 5, dot.Distance(f32.Pt(13, 14)), 1e-4)
}

func TestNearestAndLast(t *testing.T) {
	l := NewLayer()
	_, ok := l.Last()
	assert.False(t, ok)
	a := commit(l, 0, 0, 100, 0)
	b := commit(l, 0, 50, 100, 50)
	last, ok := l.Last()
	assert.True(t, ok)
	assert.Equal(t, b.ID, last.ID)

	found, ok := Nearest(l.Segments(), f32.Pt(50, 4), 6)
	assert.True(t, ok)
	assert.Equal(t, a.ID, found.ID)
	found, ok = Nearest(l.Segments(), f32.Pt(50, 47), 6)
	assert.True(t, ok)
	assert.Equal(t, b.ID, found.ID)
	_, ok = Nearest(l.Segments(), f32.Pt(50, 25), 6)
	assert.False(t, ok)
}
