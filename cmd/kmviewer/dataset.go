package main

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/liujuxiu/dm-clustering/src/logging"
	"github.com/liujuxiu/dm-clustering/src/palette"
	"github.com/liujuxiu/dm-clustering/src/points"
)

// scatterSeries is one named, colored set of points drawn together.
type scatterSeries struct {
	Name     string
	ID       int
	Color    drawing.Color
	Points   []points.Point2D
	Centroid bool
}

// clusterDataset holds one series per cluster id plus the reserved centroid series,
// which stays empty until centroids are shown.
type clusterDataset struct {
	series    []*scatterSeries
	centroids *scatterSeries
	// flattened, deduplicated centroid points across all centroid clusters
	centroidPoints []points.Point2D
	colors         map[int]drawing.Color
	sentinel       int
	bounds         [2]points.Point2D
	hasBounds      bool
}

// centroidNameSuffix tells the centroid series apart from a real cluster with the sentinel id.
const centroidNameSuffix = " (centroids)"

// buildDataset turns the two groupings into plottable series. Real cluster ids are colored from p
// in ascending id order; the centroid series is keyed by sentinel and always drawn in
// palette.Centroid, even when a real cluster shares the sentinel id.
func buildDataset(clusters, centroids points.ClusterGrouping, sentinel int, p palette.Palette) *clusterDataset {
	ids := clusters.IDs()
	d := &clusterDataset{
		colors:         palette.Assign(ids, p),
		sentinel:       sentinel,
		centroidPoints: centroids.Flatten(),
	}
	if clusters.Has(sentinel) {
		logging.Warnf("[viewer] cluster id %d collides with the centroid sentinel; centroid styling is kept separate", sentinel)
	}
	for _, id := range ids {
		d.series = append(d.series, &scatterSeries{
			Name:   strconv.Itoa(id),
			ID:     id,
			Color:  d.colors[id],
			Points: clusters.Points(id),
		})
	}
	centroidName := strconv.Itoa(sentinel)
	if clusters.Has(sentinel) {
		centroidName += centroidNameSuffix
	}
	d.centroids = &scatterSeries{
		Name:     centroidName,
		ID:       sentinel,
		Color:    palette.Centroid,
		Centroid: true,
	}
	d.series = append(d.series, d.centroids)

	// axis bounds cover centroids too, so toggling never rescales the chart
	all := points.NewClusterGrouping()
	for _, id := range ids {
		for _, pt := range clusters.Points(id) {
			all.Add(0, pt)
		}
	}
	for _, pt := range d.centroidPoints {
		all.Add(0, pt)
	}
	d.bounds[0], d.bounds[1], d.hasBounds = all.Bounds()
	return d
}

// SeriesCount is the number of cluster series plus the centroid series.
func (d *clusterDataset) SeriesCount() int { return len(d.series) }

// Series returns the series in draw order; the centroid series is last.
func (d *clusterDataset) Series() []*scatterSeries { return d.series }

// CentroidSeries returns the reserved centroid series.
func (d *clusterDataset) CentroidSeries() *scatterSeries { return d.centroids }

// ColorOf returns the display color of a real cluster id.
func (d *clusterDataset) ColorOf(id int) (drawing.Color, bool) {
	c, ok := d.colors[id]
	return c, ok
}

// CentroidsVisible reports whether the centroid series currently holds the centroid points.
func (d *clusterDataset) CentroidsVisible() bool { return len(d.centroids.Points) > 0 }

// ShowCentroids fills the centroid series. Showing twice leaves it unchanged.
func (d *clusterDataset) ShowCentroids() {
	if d.CentroidsVisible() {
		return
	}
	d.centroids.Points = append([]points.Point2D(nil), d.centroidPoints...)
}

// HideCentroids empties the centroid series. Hiding twice leaves it unchanged.
func (d *clusterDataset) HideCentroids() { d.centroids.Points = nil }

// ToggleCentroids flips centroid visibility and returns the new state.
func (d *clusterDataset) ToggleCentroids() bool {
	if d.CentroidsVisible() {
		d.HideCentroids()
	} else {
		d.ShowCentroids()
	}
	return d.CentroidsVisible()
}

// Bounds is the extent of all cluster and centroid points, shown or not.
func (d *clusterDataset) Bounds() (points.Point2D, points.Point2D, bool) {
	return d.bounds[0], d.bounds[1], d.hasBounds
}

// PointCount counts the points of the cluster series.
func (d *clusterDataset) PointCount() int {
	n := 0
	for _, s := range d.series {
		if !s.Centroid {
			n += len(s.Points)
		}
	}
	return n
}

// pointHit identifies a plotted point found under the cursor.
type pointHit struct {
	Series *scatterSeries
	Point  points.Point2D
	Dist   float64
}

// Nearest finds the visible point closest to (x,y). sx and sy convert data units to pixels so
// maxPx is a screen radius; ok is false when nothing lies within it.
func (d *clusterDataset) Nearest(x, y, sx, sy, maxPx float64) (pointHit, bool) {
	best := pointHit{Dist: math.Inf(1)}
	for _, s := range d.series {
		for _, p := range s.Points {
			dx := (p.X - x) * sx
			dy := (p.Y - y) * sy
			dist := math.Hypot(dx, dy)
			if dist < best.Dist {
				best = pointHit{Series: s, Point: p, Dist: dist}
			}
		}
	}
	if best.Series == nil || best.Dist > maxPx {
		return pointHit{}, false
	}
	return best, true
}
