// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package stockplot

import (
	"image"
	"image/color"
	"math"
	"stockchart/stockval"
	"stockchart/surface"

	"gioui.org/f32"
)

const (
	horizontalDivisions = 5
	verticalDivisions   = 6
	maxTimeLabels       = verticalDivisions + 1
	textMargin          = 5
	lineMarkerRadius    = 2.5
	lineWidth           = 2
)

const NoDataText = "No valid data"

// Paint grid, axes, price data, volume and latest price marker of the window to s.
// The surface is cleared first.
func DrawBaseChart(s surface.Surface, w Window, o Options) {
	th := o.Theme
	size := s.Size()
	s.Clear(th.BgColor)
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	if len(w.Records) == 0 {
		drawPlaceholder(s, NoDataText, th.PlaceholderTextColor, th.AxesYfontSize)
		return
	}
	f := newFrame(size, w, o)
	drawGrid(s, f, o)
	drawPriceLabels(s, f, o)
	drawTimeLabels(s, f, w, o)
	if o.ShowVolume {
		drawVolume(s, f, w, o)
	}
	switch o.ChartType {
	case stockval.ChartTypeLine:
		drawLine(s, f, w, o)
	default:
		drawCandles(s, f, w, o)
	}
	drawAxes(s, f, o)
	drawLatestPrice(s, f, w, o)
	drawTitle(s, f, o)
}

func drawPlaceholder(s surface.Surface, txt string, c color.NRGBA, fontSize float32) {
	size := s.Size()
	s.DrawText(
		f32.Pt(float32(size.X)/2, float32(size.Y)/2),
		txt,
		surface.TextStyle{Size: fontSize, Color: c, Align: surface.AlignMiddle},
	)
}

func drawGrid(s surface.Surface, f frame, o Options) {
	c := o.Theme.GridColor
	for i := 0; i <= horizontalDivisions; i++ {
		y := float32(f.top() + (f.priceBottom()-f.top())*float64(i)/horizontalDivisions)
		s.StrokeLine(f32.Pt(float32(f.left()), y), f32.Pt(float32(f.right()), y), 1, c, nil)
	}
	for i := 0; i <= verticalDivisions; i++ {
		x := float32(f.left() + (f.right()-f.left())*float64(i)/verticalDivisions)
		s.StrokeLine(f32.Pt(x, float32(f.top())), f32.Pt(x, float32(f.bottom())), 1, c, nil)
	}
}

func drawAxes(s surface.Surface, f frame, o Options) {
	c := o.Theme.AxesColor
	bottomLeft := f32.Pt(float32(f.left()), float32(f.bottom()))
	s.StrokeLine(f32.Pt(float32(f.left()), float32(f.top())), bottomLeft, 1, c, nil)
	s.StrokeLine(bottomLeft, f32.Pt(float32(f.right()), float32(f.bottom())), 1, c, nil)
}

// Price labels are on the left, the right side is reserved for the latest price.
func drawPriceLabels(s surface.Surface, f frame, o Options) {
	style := surface.TextStyle{Size: o.Theme.AxesYfontSize, Color: o.Theme.AxesYtextColor, Align: surface.AlignEnd}
	decimals := priceDecimals(f.prices)
	var labelText string
	for i := 0; i <= horizontalDivisions; i++ {
		y := f.top() + (f.priceBottom()-f.top())*float64(i)/horizontalDivisions
		newLabelText := stockval.FormatPrice(f.projection.getValue(y), decimals)
		if newLabelText == labelText {
			continue // do not print text twice if it is unchanged due to precision
		}
		labelText = newLabelText
		s.DrawText(f32.Pt(float32(f.left()-textMargin), float32(y)), labelText, style)
	}
}

func drawTimeLabels(s surface.Surface, f frame, w Window, o Options) {
	style := surface.TextStyle{Size: o.Theme.AxesXfontSize, Color: o.Theme.AxesXtextColor, Align: surface.AlignMiddle}
	intraday := isIntraday(w.Records)
	// Limit the number of labels so they do not overlap.
	sample := formatTimeLabel(w.Records[len(w.Records)-1], intraday)
	textSize := s.MeasureText(sample, style)
	n := maxTimeLabels
	if textSize.X > 0 {
		n = min(n, int((f.right()-f.left())/float64(textSize.X+2*textMargin)))
	}
	y := float32(f.bottom() + textMargin + float64(textSize.Y)/2)
	for _, i := range sampleIndices(len(w.Records), n) {
		s.DrawText(f32.Pt(float32(f.x(i)), y), formatTimeLabel(w.Records[i], intraday), style)
	}
}

func drawCandles(s surface.Surface, f frame, w Window, o Options) {
	candleWidth, wickWidth := getCandleWidth(f.projection.mX, o.MaxCandleWidth)
	for i, r := range w.Records {
		c, _ := o.Theme.GetCandleColors(stockval.IsGreenCandle(r.Open, r.Close))
		x := float32(f.x(i))
		s.StrokeLine(f32.Pt(x, float32(f.y(r.High))), f32.Pt(x, float32(f.y(r.Low))), wickWidth, c, nil)
		top := float32(math.Min(f.y(r.Open), f.y(r.Close)))
		height := float32(math.Abs(f.y(r.Open) - f.y(r.Close)))
		// Keep flat candles visible.
		height = max(height, 1)
		s.StrokeLine(f32.Pt(x, top), f32.Pt(x, top+height), candleWidth, c, nil)
	}
}

func drawLine(s surface.Surface, f frame, w Window, o Options) {
	points := make([]f32.Point, 0, len(w.Records))
	for i, r := range w.Records {
		points = append(points, f.point(i, r.Close))
	}
	s.StrokePolyline(points, lineWidth, o.Theme.LineColor)
	for _, p := range points {
		s.FillCircle(p, lineMarkerRadius, o.Theme.LineMarkerColor)
	}
}

func drawVolume(s surface.Surface, f frame, w Window, o Options) {
	maxVolume := w.Records.MaxVolume(0, len(w.Records))
	bandHeight := f.volumeBottom - f.volumeTop
	if maxVolume <= 0 || bandHeight <= 0 {
		return
	}
	candleWidth, _ := getCandleWidth(f.projection.mX, o.MaxCandleWidth)
	for i, r := range w.Records {
		if r.Volume <= 0 {
			continue
		}
		_, c := o.Theme.GetCandleColors(stockval.IsGreenCandle(r.Open, r.Close))
		x := float32(f.x(i))
		h := float32(bandHeight * r.Volume / maxVolume)
		s.StrokeLine(f32.Pt(x, float32(f.volumeBottom)-h), f32.Pt(x, float32(f.volumeBottom)), candleWidth, c, nil)
	}
}

// Dashed line at the last visible close, the label box is kept inside the plot area.
func drawLatestPrice(s surface.Surface, f frame, w Window, o Options) {
	th := o.Theme
	last := w.Records[len(w.Records)-1]
	y := f.y(last.Close)
	s.StrokeLine(
		f32.Pt(float32(f.left()), float32(y)),
		f32.Pt(float32(f.right()), float32(y)),
		1,
		th.QuoteDashColor,
		th.QuoteDashPattern,
	)
	style := surface.TextStyle{Size: th.AxesYfontSize, Color: th.QuoteTextColor, Align: surface.AlignEnd}
	labelText := stockval.FormatPrice(last.Close, priceDecimals(f.prices))
	textSize := s.MeasureText(labelText, style)
	boxHeight := float64(textSize.Y + textMargin)
	boxY := stockval.Clamp(y, f.top()+boxHeight/2, f.priceBottom()-boxHeight/2)
	box := image.Rectangle{
		Min: image.Pt(int(f.right())-textSize.X-2*textMargin, int(boxY-boxHeight/2)),
		Max: image.Pt(int(f.right()), int(boxY+boxHeight/2)),
	}
	s.FillRect(box, th.GetQuoteColor(stockval.IsGreenCandle(last.Open, last.Close)))
	s.DrawText(f32.Pt(float32(f.right()-textMargin), float32(boxY)), labelText, style)
}

func drawTitle(s surface.Surface, f frame, o Options) {
	if o.Symbol == "" {
		return
	}
	s.DrawText(
		f32.Pt(float32(f.left()), float32(f.top()/2)),
		o.Symbol,
		surface.TextStyle{Size: o.Theme.TitleFontSize, Color: o.Theme.TitleColor, Align: surface.AlignStart},
	)
}
