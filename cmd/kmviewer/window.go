package main

import (
	"fmt"
	"path/filepath"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/liujuxiu/dm-clustering/cmd/kmviewer/uihelpers"
	"github.com/liujuxiu/dm-clustering/src/config"
	"github.com/liujuxiu/dm-clustering/src/logging"
	"github.com/liujuxiu/dm-clustering/src/palette"
	"github.com/liujuxiu/dm-clustering/src/points"
)

const (
	displayCentroidsLabel = "Display Centroids"
	hideCentroidsLabel    = "Hide Centroids"
)

// ClusterChartWindow shows pre-computed k-means output as a scatter chart: one series per cluster
// id plus a centroid series keyed by the sentinel id that a button fills and empties.
type ClusterChartWindow struct {
	app    fyne.App
	window fyne.Window
	cfg    config.Config

	clusterPath  string
	centroidPath string
	sentinel     int
	palette      palette.Palette

	data *clusterDataset
	proj chartProjection

	crosshairEnabled bool
	showHints        bool
	lastExportDir    string

	// widgets, created on first Render
	img          *canvas.Image
	overlay      *crosshairOverlay
	toggleBtn    *widget.Button
	status       *widget.Label
	fileLabel    *widget.Label
	crosshairChk *widget.Check
	hintsChk     *widget.Check
}

// NewClusterChartWindow prepares a window bound to app. Inputs come from cfg until Configure
// overrides them.
func NewClusterChartWindow(app fyne.App, cfg config.Config) (*ClusterChartWindow, error) {
	pal, err := cfg.SeriesPalette()
	if err != nil {
		return nil, err
	}
	c := &ClusterChartWindow{app: app, cfg: cfg, palette: pal}
	c.Configure(cfg.ClusterPath(), cfg.CentroidPath(), cfg.SentinelID)
	loadPrefs(c)
	return c, nil
}

// Configure sets the two input files and the centroid sentinel id. It does no I/O.
func (c *ClusterChartWindow) Configure(clusterPointFilePath, centroidPointFilePath string, centroidSentinelID int) {
	c.clusterPath = clusterPointFilePath
	c.centroidPath = centroidPointFilePath
	c.sentinel = centroidSentinelID
}

// Render parses both input files, builds the series and shows them. The window and its controls
// are created on the first call; later calls replace the data and keep the centroid visibility.
// Parse errors are returned unchanged and leave any previous chart in place.
func (c *ClusterChartWindow) Render() error {
	defer logging.TimeTrack(time.Now(), "render")
	d, err := loadDataset(c.clusterPath, c.centroidPath, c.sentinel, c.cfg.PointDelimiter(), c.palette)
	if err != nil {
		return err
	}
	if c.data != nil && c.data.CentroidsVisible() {
		d.ShowCentroids()
	}
	c.data = d
	if c.window == nil {
		c.buildWindow()
	}
	c.redraw()
	logging.Infof("[viewer] rendered %d series (%d clusters, %d points, %d centroids)",
		d.SeriesCount(), d.SeriesCount()-1, d.PointCount(), len(d.centroidPoints))
	return nil
}

// loadDataset reads both files and builds the dataset.
func loadDataset(clusterPath, centroidPath string, sentinel int, delim points.Delimiter, pal palette.Palette) (*clusterDataset, error) {
	clusters, err := points.ParseFile(delim, clusterPath)
	if err != nil {
		return nil, fmt.Errorf("cluster points: %w", err)
	}
	centroids, err := points.ParseFile(delim, centroidPath)
	if err != nil {
		return nil, fmt.Errorf("centroid points: %w", err)
	}
	logging.Debugf("[viewer] parsed %s: %d clusters, %d points", clusterPath, clusters.Clusters(), clusters.Len())
	logging.Debugf("[viewer] parsed %s: %d centroid groups, %d points", centroidPath, centroids.Clusters(), centroids.Len())
	return buildDataset(clusters, centroids, sentinel, pal), nil
}

// ToggleCentroids shows the centroids when hidden and hides them when shown. It returns the new
// visibility.
func (c *ClusterChartWindow) ToggleCentroids() bool {
	if c.data == nil {
		return false
	}
	v := c.data.ToggleCentroids()
	logging.Debugf("[viewer] centroids visible=%v", v)
	c.redraw()
	return v
}

// ShowCentroids puts every centroid point into the centroid series.
func (c *ClusterChartWindow) ShowCentroids() {
	if c.data == nil || c.data.CentroidsVisible() {
		return
	}
	c.data.ShowCentroids()
	c.redraw()
}

// HideCentroids empties the centroid series.
func (c *ClusterChartWindow) HideCentroids() {
	if c.data == nil || !c.data.CentroidsVisible() {
		return
	}
	c.data.HideCentroids()
	c.redraw()
}

// CentroidsVisible reports whether centroid markers are currently drawn.
func (c *ClusterChartWindow) CentroidsVisible() bool {
	return c.data != nil && c.data.CentroidsVisible()
}

// Window returns the underlying Fyne window, nil before the first Render.
func (c *ClusterChartWindow) Window() fyne.Window { return c.window }

// ShowAndRun shows the window and runs the application event loop.
func (c *ClusterChartWindow) ShowAndRun() {
	if c.window == nil {
		return
	}
	c.window.ShowAndRun()
}

func (c *ClusterChartWindow) chartOpts() chartOptions {
	return chartOptions{
		Title:     c.cfg.Title,
		Width:     c.cfg.Width,
		Height:    c.cfg.Height,
		DotWidth:  c.cfg.DotWidth,
		ShowHints: c.showHints,
	}
}

func (c *ClusterChartWindow) buildWindow() {
	title := c.cfg.Title
	if title == "" {
		title = "K-means clusters"
	}
	w := c.app.NewWindow(title)
	c.window = w

	c.img = canvas.NewImageFromImage(blank(c.cfg.Width, c.cfg.Height))
	c.img.FillMode = canvas.ImageFillContain
	c.img.SetMinSize(fyne.NewSize(float32(c.cfg.Width)*0.6, float32(c.cfg.Height)*0.6))
	c.overlay = newCrosshairOverlay(c)

	c.toggleBtn = widget.NewButton(displayCentroidsLabel, func() { c.ToggleCentroids() })
	c.status = widget.NewLabel("")
	c.fileLabel = widget.NewLabel(uihelpers.TruncatePath(c.clusterPath, 60))

	c.crosshairChk = widget.NewCheck("Crosshair", func(b bool) {
		c.crosshairEnabled = b
		savePrefs(c)
		c.overlay.enabled = b
		c.overlay.Refresh()
	})
	c.crosshairChk.SetChecked(c.crosshairEnabled)
	c.hintsChk = widget.NewCheck("Hints", func(b bool) {
		c.showHints = b
		savePrefs(c)
		c.redraw()
	})
	c.hintsChk.SetChecked(c.showHints)

	top := container.NewHBox(c.fileLabel, widget.NewSeparator(), c.crosshairChk, c.hintsChk)
	bottom := container.NewVBox(
		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, c.status, container.NewCenter(c.toggleBtn)),
	)
	chartArea := container.NewStack(c.img, c.overlay)
	w.SetContent(container.NewBorder(top, bottom, nil, nil, chartArea))
	w.Resize(fyne.NewSize(float32(c.cfg.Width)+24, float32(c.cfg.Height)+110))
	w.SetOnClosed(func() { savePrefs(c) })
	buildMenus(c)
}

// redraw re-renders the chart image and syncs the controls with the dataset.
func (c *ClusterChartWindow) redraw() {
	if c.data == nil || c.img == nil {
		return
	}
	c.img.Image = renderScatter(c.data, c.chartOpts(), &c.proj)
	c.img.Refresh()
	c.fileLabel.SetText(uihelpers.TruncatePath(c.clusterPath, 60))
	if c.CentroidsVisible() {
		c.toggleBtn.SetText(hideCentroidsLabel)
	} else {
		c.toggleBtn.SetText(displayCentroidsLabel)
	}
	c.status.SetText(fmt.Sprintf("%d clusters, %d points, %d centroids",
		c.data.SeriesCount()-1, c.data.PointCount(), len(c.centroidsShown())))
	c.overlay.Refresh()
}

func (c *ClusterChartWindow) centroidsShown() []points.Point2D {
	return c.data.CentroidSeries().Points
}

// reload re-parses both files; errors are reported in a dialog and keep the current chart.
func (c *ClusterChartWindow) reload() {
	if err := c.Render(); err != nil {
		logging.Errorf("[viewer] reload failed: %v", err)
		dialog.ShowError(err, c.window)
	}
}

// menus and shortcuts
func buildMenus(c *ClusterChartWindow) {
	if c == nil || c.window == nil {
		return
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Reload", func() { c.reload() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart PNG…", func() { exportChartPNG(c) }),
		fyne.NewMenuItem("Export HTML…", func() { exportChartHTML(c) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { c.window.Close() }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Centroids", func() { c.ToggleCentroids() }),
	)
	c.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu))

	canv := c.window.Canvas()
	if canv == nil {
		return
	}
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { c.reload() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { c.window.Close() })
	}
}

// prefs
func savePrefs(c *ClusterChartWindow) {
	if c == nil || c.app == nil {
		return
	}
	prefs := c.app.Preferences()
	prefs.SetBool("crosshair", c.crosshairEnabled)
	prefs.SetBool("showHints", c.showHints)
	prefs.SetString("lastExportDir", c.lastExportDir)
}

func loadPrefs(c *ClusterChartWindow) {
	if c == nil || c.app == nil {
		return
	}
	prefs := c.app.Preferences()
	c.crosshairEnabled = prefs.BoolWithFallback("crosshair", true)
	c.showHints = prefs.BoolWithFallback("showHints", false)
	c.lastExportDir = prefs.StringWithFallback("lastExportDir", "")
}

// rememberExportDir stores the directory of an exported file for the next save dialog.
func rememberExportDir(c *ClusterChartWindow, path string) {
	if path == "" {
		return
	}
	c.lastExportDir = filepath.Dir(path)
	savePrefs(c)
}
