package uihelpers

import (
	"math"
	"path/filepath"
	"strconv"
)

// ComputeChartDimensions clamps a requested chart size. Scatter plots keep a
// landscape aspect of roughly 10:7 so clusters are not squashed vertically.
func ComputeChartDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	if w > 4096 {
		w = 4096
	}
	h := rawH
	if h <= 0 {
		h = int(float32(w) * 0.7)
	}
	if h < 420 {
		h = 420
	}
	if h > 4096 {
		h = 4096
	}
	return w, h
}

// NiceAxisBounds expands [min,max] by 5% per side and rounds outward to a tenth of the span's
// order of magnitude.
func NiceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		min, max = min-0.5, min+0.5
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	b := max + pad
	if !isFinite(span) || !isFinite(a) || !isFinite(b) {
		return min, max
	}
	mag := math.Pow(10, math.Floor(math.Log10(span))-1)
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// maxTicks bounds the tick loop when float precision stalls the step.
const maxTicks = 1000

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// round6 rounds to 6 decimal places to stabilize test comparisons / labels prep.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates about n tick marks covering [min,max] with a 1,2,2.5,5 step pattern.
// The first tick is <= min and the last >= max, so the ticks can double as the axis range.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || !isFinite(min) || !isFinite(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	if !isFinite(span) || span <= 0 {
		return []float64{min, max}
	}
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	if !isFinite(bestStep) || bestStep <= 0 {
		return []float64{min, max}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for i := 0; i < maxTicks; i++ {
		v := start + float64(i)*bestStep
		if v > end+bestStep*0.5 {
			break
		}
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatNumericTick gives a compact label; precision shrinks as magnitude grows.
func FormatNumericTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// ContainRect returns where an image of imgW x imgH is drawn inside a view of viewW x viewH
// with contain scaling (canvas.ImageFillContain): origin, drawn size and scale factor.
func ContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, viewW, viewH, 1
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	w = imgW * scale
	h = imgH * scale
	x = (viewW - w) / 2
	y = (viewH - h) / 2
	return x, y, w, h, scale
}

// PixelToValue maps a pixel offset within [lo,hi] onto [vMin,vMax]. When invert is set the
// pixel axis grows in the opposite direction (image Y grows downwards).
func PixelToValue(px, lo, hi, vMin, vMax float64, invert bool) float64 {
	if hi == lo {
		return vMin
	}
	ratio := (px - lo) / (hi - lo)
	if invert {
		ratio = 1 - ratio
	}
	return vMin + ratio*(vMax-vMin)
}

// ValueToPixel is the inverse of PixelToValue.
func ValueToPixel(v, lo, hi, vMin, vMax float64, invert bool) float64 {
	if vMax == vMin {
		return lo
	}
	ratio := (v - vMin) / (vMax - vMin)
	if invert {
		ratio = 1 - ratio
	}
	return lo + ratio*(hi-lo)
}

// TruncatePath shortens p to about n characters, keeping the base name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
