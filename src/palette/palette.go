// Package palette assigns display colors to cluster ids.
package palette

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Palette is an ordered list of series colors, reused cyclically.
type Palette []drawing.Color

// Default is a set of visually distinct colors (https://sashamaps.net/docs/resources/20-colors/)
// without the black/white/grey entries, which are kept for centroids and the canvas.
var Default = Palette{
	{R: 230, G: 25, B: 75, A: 255},
	{R: 60, G: 180, B: 75, A: 255},
	{R: 0, G: 130, B: 200, A: 255},
	{R: 245, G: 130, B: 48, A: 255},
	{R: 145, G: 30, B: 180, A: 255},
	{R: 70, G: 240, B: 240, A: 255},
	{R: 240, G: 50, B: 230, A: 255},
	{R: 210, G: 245, B: 60, A: 255},
	{R: 0, G: 128, B: 128, A: 255},
	{R: 170, G: 110, B: 40, A: 255},
	{R: 128, G: 0, B: 0, A: 255},
	{R: 128, G: 128, B: 0, A: 255},
	{R: 0, G: 0, B: 128, A: 255},
	{R: 255, G: 225, B: 25, A: 255},
}

// Centroid is the fixed color for the centroid series.
var Centroid = drawing.ColorBlack

// Index maps a running index onto a palette of size n: i mod n, never negative.
// Returns 0 when n <= 0.
func Index(i, n int) int {
	if n <= 0 {
		return 0
	}
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}

// ColorFor returns the i-th color, cycling when i exceeds the palette.
// An empty palette falls back to Default.
func ColorFor(i int, p Palette) drawing.Color {
	if len(p) == 0 {
		p = Default
	}
	return p[Index(i, len(p))]
}

// Assign gives every id a color. Ids are ranked ascending so the result depends only on the
// id set and the palette, not on the order ids were encountered.
func Assign(ids []int, p Palette) map[int]drawing.Color {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	out := make(map[int]drawing.Color, len(sorted))
	rank := 0
	for _, id := range sorted {
		if _, dup := out[id]; dup {
			continue
		}
		out[id] = ColorFor(rank, p)
		rank++
	}
	return out
}

// Hex formats a color as #rrggbb, the form used by the HTML export and config files.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Parse builds a palette from #rgb / #rrggbb strings.
func Parse(hexes []string) (Palette, error) {
	out := make(Palette, 0, len(hexes))
	for i, h := range hexes {
		s := strings.TrimSpace(h)
		if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
			return nil, fmt.Errorf("palette entry %d: %q is not a hex color", i, h)
		}
		if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
			return nil, fmt.Errorf("palette entry %d: %q is not a hex color", i, h)
		}
		out = append(out, drawing.ColorFromHex(strings.TrimPrefix(s, "#")))
	}
	return out, nil
}
