// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package annotation

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingEndPoint
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingEndPoint:
		return "awaiting end point"
	default:
		panic("unsupported draw state")
	}
}

// Chart space position, index is relative to the full series.
type Anchor struct {
	Index float64
	Price float64
}

// A user drawn line. Start and End are pixel positions on the overlay surface at creation time.
type Segment struct {
	ID          uuid.UUID
	Start       f32.Point
	End         f32.Point
	StartAnchor Anchor
	EndAnchor   Anchor
	Color       color.NRGBA
	Width       float32
	Label       string
}

// Distance of p to the segment in pixels.
func (s Segment) Distance(p f32.Point) float32 {
	d := s.End.Sub(s.Start)
	lenSq := d.X*d.X + d.Y*d.Y
	var t float32
	if lenSq > 0 {
		v := p.Sub(s.Start)
		t = min(max((v.X*d.X+v.Y*d.Y)/lenSq, 0), 1)
	}
	q := p.Sub(s.Start.Add(d.Mul(t)))
	return float32(math.Hypot(float64(q.X), float64(q.Y)))
}

// Closest segment within tolerance pixels of p.
func Nearest(segments []Segment, p f32.Point, tolerance float32) (Segment, bool) {
	var found Segment
	best := tolerance
	ok := false
	for _, seg := range segments {
		if d := seg.Distance(p); d <= best {
			found, best, ok = seg, d, true
		}
	}
	return found, ok
}

const DefaultWidth = 2

var DefaultColor = color.NRGBA{R: 0xff, G: 0xa0, B: 0x00, A: 0xff}

// Draw gesture state machine and list of committed segments.
// Not safe for concurrent use, it is driven by the ui event loop.
type Layer struct {
	state       State
	start       f32.Point
	startAnchor Anchor
	segments    []Segment
	color       color.NRGBA
	width       float32
	revision    uint64
}

func NewLayer() *Layer {
	return &Layer{
		color: DefaultColor,
		width: DefaultWidth,
	}
}

func (l *Layer) State() State {
	return l.state
}

// Provisional start point, only meaningful while awaiting the end point.
func (l *Layer) PendingStart() (f32.Point, bool) {
	return l.start, l.state == StateAwaitingEndPoint
}

// Changes whenever the visible content of the layer changes.
func (l *Layer) Revision() uint64 {
	return l.revision
}

// Handle a pointer click. The second click of a gesture commits a new segment, which is returned.
func (l *Layer) Click(p f32.Point, a Anchor) (Segment, bool) {
	l.revision++
	switch l.state {
	case StateIdle:
		l.start = p
		l.startAnchor = a
		l.state = StateAwaitingEndPoint
		return Segment{}, false
	case StateAwaitingEndPoint:
		s := Segment{
			ID:          uuid.New(),
			Start:       l.start,
			End:         p,
			StartAnchor: l.startAnchor,
			EndAnchor:   a,
			Color:       l.color,
			Width:       l.width,
		}
		l.segments = append(l.segments, s)
		l.state = StateIdle
		return s, true
	default:
		panic("unsupported draw state")
	}
}

func (l *Layer) Cancel() {
	if l.state == StateAwaitingEndPoint {
		l.state = StateIdle
		l.revision++
	}
}

func (l *Layer) ClearAll() {
	l.segments = nil
	l.state = StateIdle
	l.revision++
}

func (l *Layer) Delete(id uuid.UUID) bool {
	for i := range l.segments {
		if l.segments[i].ID == id {
			l.segments = append(l.segments[:i], l.segments[i+1:]...)
			l.revision++
			return true
		}
	}
	return false
}

func (l *Layer) SetLabel(id uuid.UUID, label string) bool {
	for i := range l.segments {
		if l.segments[i].ID == id {
			l.segments[i].Label = label
			l.revision++
			return true
		}
	}
	return false
}

// Style used for segments committed from now on.
func (l *Layer) SetStyle(c color.NRGBA, width float32) {
	l.color = c
	if width > 0 {
		l.width = width
	}
}

func (l *Layer) Style() (color.NRGBA, float32) {
	return l.color, l.width
}

// Returns a copy of the committed segments in creation order.
func (l *Layer) Segments() []Segment {
	return append([]Segment(nil), l.segments...)
}

// Most recently committed segment.
func (l *Layer) Last() (Segment, bool) {
	if len(l.segments) == 0 {
		return Segment{}, false
	}
	return l.segments[len(l.segments)-1], true
}

func (l *Layer) Len() int {
	return len(l.segments)
}
