package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"

	"github.com/liujuxiu/dm-clustering/cmd/kmviewer/uihelpers"
	"github.com/liujuxiu/dm-clustering/src/logging"
)

// chartOptions controls how the scatter image is drawn.
type chartOptions struct {
	Title     string
	Width     int
	Height    int
	DotWidth  float64
	ShowHints bool
}

var titleColor = drawing.Color{R: 64, G: 64, B: 64, A: 255}

const (
	chartPadTop    = 44
	chartPadLeft   = 16
	chartPadRight  = 12
	chartPadBottom = 28
	hintPad        = 18
	axisTickCount  = 6
)

// chartProjection records where the plot area ended up in the last rendered image so the
// crosshair can map mouse pixels back to data coordinates.
type chartProjection struct {
	Box        chart.Box
	XMin, XMax float64
	YMin, YMax float64
	ImgW, ImgH int
	Valid      bool
}

// ToData converts image pixel coordinates into data coordinates.
func (p chartProjection) ToData(px, py float64) (float64, float64) {
	x := uihelpers.PixelToValue(px, float64(p.Box.Left), float64(p.Box.Right), p.XMin, p.XMax, false)
	y := uihelpers.PixelToValue(py, float64(p.Box.Top), float64(p.Box.Bottom), p.YMin, p.YMax, true)
	return x, y
}

// ToPixel converts data coordinates into image pixel coordinates.
func (p chartProjection) ToPixel(x, y float64) (float64, float64) {
	px := uihelpers.ValueToPixel(x, float64(p.Box.Left), float64(p.Box.Right), p.XMin, p.XMax, false)
	py := uihelpers.ValueToPixel(y, float64(p.Box.Top), float64(p.Box.Bottom), p.YMin, p.YMax, true)
	return px, py
}

// Scale returns image pixels per data unit on each axis.
func (p chartProjection) Scale() (float64, float64) {
	var sx, sy float64
	if p.XMax != p.XMin {
		sx = float64(p.Box.Width()) / (p.XMax - p.XMin)
	}
	if p.YMax != p.YMin {
		sy = float64(p.Box.Height()) / (p.YMax - p.YMin)
	}
	return sx, sy
}

// Contains reports whether an image pixel lies inside the plot area.
func (p chartProjection) Contains(px, py float64) bool {
	return p.Valid && px >= float64(p.Box.Left) && px <= float64(p.Box.Right) &&
		py >= float64(p.Box.Top) && py <= float64(p.Box.Bottom)
}

// crossSeries draws its points as cross markers. It stays renderable when empty so the series
// slot and legend entry exist before centroids are shown, and it captures the plot geometry.
type crossSeries struct {
	Name  string
	Style chart.Style
	XY    [][2]float64
	Arm   int
	proj  *chartProjection
}

func (cs crossSeries) GetName() string                    { return cs.Name }
func (cs crossSeries) GetStyle() chart.Style              { return cs.Style }
func (cs crossSeries) GetYAxis() chart.YAxisType          { return chart.YAxisPrimary }
func (cs crossSeries) Len() int                           { return len(cs.XY) }
func (cs crossSeries) GetValues(i int) (float64, float64) { return cs.XY[i][0], cs.XY[i][1] }
func (cs crossSeries) Validate() error                    { return nil }

func (cs crossSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	if cs.proj != nil {
		*cs.proj = chartProjection{
			Box:   canvasBox,
			XMin:  xrange.GetMin(),
			XMax:  xrange.GetMax(),
			YMin:  yrange.GetMin(),
			YMax:  yrange.GetMax(),
			Valid: true,
		}
	}
	if len(cs.XY) == 0 {
		return
	}
	style := cs.Style.InheritFrom(defaults)
	arm := cs.Arm
	if arm <= 0 {
		arm = 7
	}
	r.SetStrokeColor(style.GetStrokeColor())
	r.SetStrokeWidth(style.GetStrokeWidth())
	for _, v := range cs.XY {
		x := canvasBox.Left + xrange.Translate(v[0])
		y := canvasBox.Bottom - yrange.Translate(v[1])
		drawCross(r, x, y, arm)
	}
}

func drawCross(r chart.Renderer, x, y, arm int) {
	r.MoveTo(x-arm, y)
	r.LineTo(x+arm, y)
	r.Stroke()
	r.MoveTo(x, y-arm)
	r.LineTo(x, y+arm)
	r.Stroke()
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color, dot float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: col,
		DotWidth:    dot,
		DotColor:    col,
	}
}

// buildChart assembles the go-chart definition for the dataset. proj, when non-nil, receives
// the plot geometry during rendering.
func buildChart(d *clusterDataset, opts chartOptions, proj *chartProjection) chart.Chart {
	w, h := uihelpers.ComputeChartDimensions(opts.Width, opts.Height)
	dot := opts.DotWidth
	if dot <= 0 {
		dot = 3
	}
	var series []chart.Series
	for _, s := range d.Series() {
		if s.Centroid {
			xy := make([][2]float64, len(s.Points))
			for i, p := range s.Points {
				xy[i] = [2]float64{p.X, p.Y}
			}
			series = append(series, crossSeries{
				Name:  s.Name,
				Style: chart.Style{StrokeColor: s.Color, StrokeWidth: 2.5},
				XY:    xy,
				Arm:   int(dot*2 + 3),
				proj:  proj,
			})
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: pointStyle(s.Color, dot)})
	}

	xAxis := chart.XAxis{Name: "X", ValueFormatter: tickFormatter}
	yAxis := chart.YAxis{Name: "Y", ValueFormatter: tickFormatter}
	if lo, hi, ok := d.Bounds(); ok {
		xAxis.Ticks, xAxis.Range = axisTicks(lo.X, hi.X)
		yAxis.Ticks, yAxis.Range = axisTicks(lo.Y, hi.Y)
	}
	padBottom := chartPadBottom
	if opts.ShowHints {
		padBottom += hintPad
	}
	ch := chart.Chart{
		Title:      opts.Title,
		TitleStyle: titleStyle(),
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: chartPadTop, Left: chartPadLeft, Right: chartPadRight, Bottom: padBottom}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
	}
	ch.Elements = []chart.Renderable{clusterLegend(d)}
	return ch
}

var (
	boldOnce sync.Once
	boldFont *truetype.Font
)

// titleFont returns the bold Go font, or nil when it cannot be parsed.
func titleFont() *truetype.Font {
	boldOnce.Do(func() {
		f, err := truetype.Parse(gobold.TTF)
		if err != nil {
			logging.Warnf("[viewer] bold title font unavailable: %v", err)
			return
		}
		boldFont = f
	})
	return boldFont
}

// titleStyle is a bold dark grey title.
func titleStyle() chart.Style {
	return chart.Style{
		Font:      titleFont(),
		FontSize:  14,
		FontColor: titleColor,
	}
}

// axisTicks returns fixed ticks and range over [lo,hi] padded to nice bounds.
func axisTicks(lo, hi float64) ([]chart.Tick, *chart.ContinuousRange) {
	a, b := uihelpers.NiceAxisBounds(lo, hi)
	vals := uihelpers.BuildNumericTicks(a, b, axisTickCount)
	if len(vals) < 2 {
		return nil, nil
	}
	ticks := make([]chart.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = chart.Tick{Value: v, Label: uihelpers.FormatNumericTick(v)}
	}
	rng := &chart.ContinuousRange{Min: vals[0], Max: vals[len(vals)-1]}
	return ticks, rng
}

func tickFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return uihelpers.FormatNumericTick(f)
	}
	return fmt.Sprintf("%v", v)
}

// clusterLegend draws one entry per series in the top-left corner of the plot: a dot in the
// cluster color, or a black cross for the centroid series.
func clusterLegend(d *clusterDataset) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		style := chart.Style{
			FillColor:   drawing.ColorWhite.WithAlpha(220),
			FontColor:   chart.DefaultTextColor,
			FontSize:    8.0,
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: chart.DefaultAxisLineWidth,
		}.InheritFrom(defaults)
		const pad, gap, swatch, rowGap = 5, 6, 10, 4

		series := d.Series()
		style.GetTextOptions().WriteToRenderer(r)
		rowH, textW := 0, 0
		for _, s := range series {
			tb := r.MeasureText(s.Name)
			if tb.Height() > rowH {
				rowH = tb.Height()
			}
			if tb.Width() > textW {
				textW = tb.Width()
			}
		}
		if rowH < swatch {
			rowH = swatch
		}
		box := chart.Box{Top: cb.Top + pad, Left: cb.Left + pad}
		box.Right = box.Left + pad + swatch + gap + textW + pad
		box.Bottom = box.Top + pad + len(series)*rowH + (len(series)-1)*rowGap + pad
		chart.Draw.Box(r, box, style)

		y := box.Top + pad
		for _, s := range series {
			cx := box.Left + pad + swatch/2
			cy := y + rowH/2
			if s.Centroid {
				r.SetStrokeColor(s.Color)
				r.SetStrokeWidth(2)
				drawCross(r, cx, cy, swatch/2)
			} else {
				r.SetFillColor(s.Color)
				r.SetStrokeColor(s.Color)
				r.SetStrokeWidth(1)
				r.Circle(float64(swatch)/2-1, cx, cy)
				r.FillStroke()
			}
			style.GetTextOptions().WriteToRenderer(r)
			r.Text(s.Name, box.Left+pad+swatch+gap, y+rowH-1)
			y += rowH + rowGap
		}
	}
}

// writeScatterPNG renders the dataset as PNG into w.
func writeScatterPNG(w io.Writer, d *clusterDataset, opts chartOptions, proj *chartProjection) error {
	ch := buildChart(d, opts, proj)
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if proj != nil {
		proj.ImgW, proj.ImgH = ch.Width, ch.Height
	}
	return nil
}

// renderScatter returns the chart image, falling back to a blank image on render errors so the
// UI still updates.
func renderScatter(d *clusterDataset, opts chartOptions, proj *chartProjection) image.Image {
	w, h := uihelpers.ComputeChartDimensions(opts.Width, opts.Height)
	if d == nil {
		return blank(w, h)
	}
	var buf bytes.Buffer
	if err := writeScatterPNG(&buf, d, opts, proj); err != nil {
		logging.Errorf("[viewer] scatter render error: %v; showing blank fallback", err)
		if proj != nil {
			proj.Valid = false
		}
		return blank(w, h)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		logging.Errorf("[viewer] scatter decode error: %v; showing blank fallback", err)
		return blank(w, h)
	}
	if opts.ShowHints {
		hint := "Hint: dots are cluster members colored by cluster id. Use the button below to overlay centroids."
		if d.CentroidsVisible() {
			hint = "Hint: black crosses mark the centroids. Hover with the crosshair on to read coordinates."
		}
		return drawHint(img, hint)
	}
	return img
}

// drawHint draws a small hint string onto the provided image near the bottom-left.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 18, B: 18, A: 255}), image.Point{}, draw.Src)
	return img
}
