package main

import (
	"fmt"
	"image/color"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/liujuxiu/dm-clustering/cmd/kmviewer/uihelpers"
)

// snapRadiusPx is how close (in image pixels) the cursor must be to a point to report it.
const snapRadiusPx = 10

// crosshairReadout is what the overlay shows for one mouse position.
type crosshairReadout struct {
	X, Y   float64
	Hit    pointHit
	HasHit bool
	// crosshair position in view coordinates; snapped to the hit point when there is one
	LineX, LineY float32
}

// Label formats the readout for the overlay label.
func (r crosshairReadout) Label() string {
	s := fmt.Sprintf("X=%s  Y=%s", fmtCoord(r.X), fmtCoord(r.Y))
	if r.HasHit {
		kind := "cluster"
		if r.Hit.Series.Centroid {
			kind = "centroid"
		}
		s += fmt.Sprintf("  |  %s %s (%s, %s)", kind, r.Hit.Series.Name, fmtCoord(r.Hit.Point.X), fmtCoord(r.Hit.Point.Y))
	}
	return s
}

func fmtCoord(v float64) string { return fmt.Sprintf("%.4g", v) }

// computeCrosshair maps a mouse position in a view of viewW x viewH, showing the chart image
// with contain scaling, into data coordinates. ok is false outside the plot area.
func computeCrosshair(proj chartProjection, d *clusterDataset, viewW, viewH, mx, my float32) (crosshairReadout, bool) {
	if !proj.Valid || proj.ImgW <= 0 || proj.ImgH <= 0 {
		return crosshairReadout{}, false
	}
	drawX, drawY, _, _, scale := uihelpers.ContainRect(float32(proj.ImgW), float32(proj.ImgH), viewW, viewH)
	if scale <= 0 {
		return crosshairReadout{}, false
	}
	px := float64((mx - drawX) / scale)
	py := float64((my - drawY) / scale)
	if !proj.Contains(px, py) {
		return crosshairReadout{}, false
	}
	out := crosshairReadout{LineX: mx, LineY: my}
	out.X, out.Y = proj.ToData(px, py)
	if d != nil {
		sx, sy := proj.Scale()
		if hit, ok := d.Nearest(out.X, out.Y, sx, sy, snapRadiusPx); ok {
			out.Hit, out.HasHit = hit, true
			hx, hy := proj.ToPixel(hit.Point.X, hit.Point.Y)
			out.LineX = drawX + float32(hx)*scale
			out.LineY = drawY + float32(hy)*scale
		}
	}
	return out, true
}

// crosshairOverlay draws a crosshair over the chart image when enabled, with a label holding the
// data coordinates under the cursor and the nearest plotted point.
type crosshairOverlay struct {
	widget.BaseWidget
	win      *ClusterChartWindow
	enabled  bool
	mouse    fyne.Position
	hovering bool
}

func newCrosshairOverlay(win *ClusterChartWindow) *crosshairOverlay {
	c := &crosshairOverlay{win: win, enabled: win != nil && win.crosshairEnabled}
	c.ExtendBaseWidget(c)
	return c
}

func (c *crosshairOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 0})
	lineV := canvas.NewLine(color.RGBA{R: 90, G: 90, B: 90, A: 200})
	lineV.StrokeWidth = 1
	lineH := canvas.NewLine(color.RGBA{R: 90, G: 90, B: 90, A: 200})
	lineH.StrokeWidth = 1
	dot := canvas.NewCircle(color.RGBA{R: 0, G: 0, B: 0, A: 0})
	dot.StrokeColor = color.RGBA{R: 20, G: 20, B: 20, A: 230}
	dot.StrokeWidth = 1.5
	label := canvas.NewText("", color.White)
	label.TextSize = theme.Size(theme.SizeNameText) - 1
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 170})
	objs := []fyne.CanvasObject{bg, lineV, lineH, dot, labelBG, label}
	return &crosshairRenderer{c: c, bg: bg, lineV: lineV, lineH: lineH, dot: dot, labelBG: labelBG, label: label, objs: objs}
}

type crosshairRenderer struct {
	c       *crosshairOverlay
	bg      *canvas.Rectangle
	lineV   *canvas.Line
	lineH   *canvas.Line
	dot     *canvas.Circle
	labelBG *canvas.Rectangle
	label   *canvas.Text
	objs    []fyne.CanvasObject
}

func (r *crosshairRenderer) hide() {
	off := fyne.NewPos(-10, -10)
	r.lineV.Position1, r.lineV.Position2 = off, off
	r.lineH.Position1, r.lineH.Position2 = off, off
	r.dot.Resize(fyne.NewSize(0, 0))
	r.dot.Move(off)
	r.label.Move(fyne.NewPos(-1000, -1000))
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
}

func (r *crosshairRenderer) Destroy() {}
func (r *crosshairRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	if !r.c.enabled || !r.c.hovering || r.c.win == nil {
		r.hide()
		return
	}
	ro, ok := computeCrosshair(r.c.win.proj, r.c.win.data, size.Width, size.Height, r.c.mouse.X, r.c.mouse.Y)
	if !ok {
		r.hide()
		return
	}
	r.lineV.Position1 = fyne.NewPos(ro.LineX, 0)
	r.lineV.Position2 = fyne.NewPos(ro.LineX, size.Height)
	r.lineH.Position1 = fyne.NewPos(0, ro.LineY)
	r.lineH.Position2 = fyne.NewPos(size.Width, ro.LineY)
	if ro.HasHit {
		const d = 12
		r.dot.Resize(fyne.NewSize(d, d))
		r.dot.Move(fyne.NewPos(ro.LineX-d/2, ro.LineY-d/2))
	} else {
		r.dot.Resize(fyne.NewSize(0, 0))
		r.dot.Move(fyne.NewPos(-10, -10))
	}
	r.label.Text = ro.Label()
	ts := r.label.MinSize()
	const pad = 4
	tx := ro.LineX + 12
	ty := ro.LineY - ts.Height - 12
	if tx+ts.Width+2*pad > size.Width {
		tx = ro.LineX - ts.Width - 2*pad - 12
	}
	if ty < 0 {
		ty = ro.LineY + 12
	}
	r.labelBG.Resize(fyne.NewSize(ts.Width+2*pad, ts.Height+2*pad))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}
func (r *crosshairRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *crosshairRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *crosshairRenderer) Refresh() {
	r.Layout(r.c.Size())
	for _, o := range r.objs {
		o.Refresh()
	}
}

func (c *crosshairOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if !c.enabled {
		return
	}
	c.hovering = true
	c.mouse = ev.Position
	c.Refresh()
}
func (c *crosshairOverlay) MouseIn(ev *desktop.MouseEvent) { c.hovering = true; c.Refresh() }
func (c *crosshairOverlay) MouseOut()                      { c.hovering = false; c.Refresh() }

// Assert that crosshairOverlay implements desktop.Hoverable
var _ desktop.Hoverable = (*crosshairOverlay)(nil)
