// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"image/color"
	"stockchart/annotation"
	"stockchart/surface"
	"stockchart/widgets"

	"gioui.org/f32"
)

const pendingMarkerRadius = 4

// Paint annotation segments to s, which is cleared first.
// A non-nil pending point is marked as the provisional start of a segment.
func DrawAnnotations(s surface.Surface, segments []annotation.Segment, pending *f32.Point, th *widgets.PlotTheme) {
	s.Clear(color.NRGBA{})
	for _, seg := range segments {
		s.StrokeLine(seg.Start, seg.End, seg.Width, seg.Color, nil)
		if seg.Label != "" {
			mid := seg.Start.Add(seg.End).Mul(0.5)
			s.DrawText(
				mid.Sub(f32.Pt(0, float32(textMargin)+th.AxesYfontSize/2)),
				seg.Label,
				surface.TextStyle{Size: th.AxesYfontSize, Color: th.AnnotationTextColor, Align: surface.AlignMiddle},
			)
		}
	}
	if pending != nil {
		s.FillCircle(*pending, pendingMarkerRadius, th.AnnotationPendingColor)
	}
}
