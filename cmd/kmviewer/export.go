package main

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/liujuxiu/dm-clustering/src/config"
	"github.com/liujuxiu/dm-clustering/src/logging"
	"github.com/liujuxiu/dm-clustering/src/palette"
)

// crossSymbol is an ECharts path symbol shaped like a plus sign.
const crossSymbol = "path://M4,0 L6,0 L6,4 L10,4 L10,6 L6,6 L6,10 L4,10 L4,6 L0,6 L0,4 L4,4 Z"

// Names of the files written by RunExportMode.
const (
	exportPNGName          = "clusters.png"
	exportCentroidsPNGName = "clusters_centroids.png"
	exportHTMLName         = "clusters.html"
)

// buildEChart builds an interactive scatter chart with the same series and colors as the PNG.
// The centroid series always carries every centroid; its legend entry toggles it in the page.
func buildEChart(d *clusterDataset, title string, width, height int) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        opts.Bool(true),
			Trigger:     "item",
			AxisPointer: &opts.AxisPointer{Type: "cross"},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y", Type: "value", Scale: opts.Bool(true)}),
	)
	for _, s := range d.Series() {
		if s.Centroid {
			data := make([]opts.ScatterData, 0, len(d.centroidPoints))
			for _, p := range d.centroidPoints {
				data = append(data, opts.ScatterData{Value: []float64{p.X, p.Y}, Symbol: crossSymbol, SymbolSize: 14})
			}
			scatter.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.Hex(s.Color)}))
			continue
		}
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.ScatterData{Value: []float64{p.X, p.Y}, SymbolSize: 6})
		}
		scatter.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.Hex(s.Color)}))
	}
	return scatter
}

// writeScatterHTML renders the interactive chart page into w.
func writeScatterHTML(w io.Writer, d *clusterDataset, title string, width, height int) error {
	if err := buildEChart(d, title, width, height).Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// RunExportMode renders the configured dataset without opening a window: the chart without and
// with centroids as PNG, plus the interactive HTML page, all under outDir.
func RunExportMode(cfg config.Config, outDir string) error {
	defer logging.TimeTrack(time.Now(), "export")
	pal, err := cfg.SeriesPalette()
	if err != nil {
		return err
	}
	d, err := loadDataset(cfg.ClusterPath(), cfg.CentroidPath(), cfg.SentinelID, cfg.PointDelimiter(), pal)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	o := chartOptions{Title: cfg.Title, Width: cfg.Width, Height: cfg.Height, DotWidth: cfg.DotWidth}

	d.HideCentroids()
	if err := writeFile(filepath.Join(outDir, exportPNGName), func(w io.Writer) error { return writeScatterPNG(w, d, o, nil) }); err != nil {
		return err
	}
	d.ShowCentroids()
	if err := writeFile(filepath.Join(outDir, exportCentroidsPNGName), func(w io.Writer) error { return writeScatterPNG(w, d, o, nil) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outDir, exportHTMLName), func(w io.Writer) error {
		return writeScatterHTML(w, d, cfg.Title, cfg.Width, cfg.Height)
	}); err != nil {
		return err
	}
	logging.Infof("[viewer] exported %s, %s and %s to %s", exportPNGName, exportCentroidsPNGName, exportHTMLName, outDir)
	return nil
}

func writeFile(path string, fill func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// export PNG
func exportChartPNG(c *ClusterChartWindow) {
	if c == nil || c.window == nil {
		return
	}
	if c.img == nil || c.img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", c.window)
		return
	}
	showSaveDialog(c, "clusters.png", func(w io.Writer) error { return png.Encode(w, c.img.Image) })
}

// export HTML
func exportChartHTML(c *ClusterChartWindow) {
	if c == nil || c.window == nil {
		return
	}
	if c.data == nil {
		dialog.ShowInformation("Export", "No chart to export.", c.window)
		return
	}
	showSaveDialog(c, "clusters.html", func(w io.Writer) error {
		return writeScatterHTML(w, c.data, c.cfg.Title, c.cfg.Width, c.cfg.Height)
	})
}

func showSaveDialog(c *ClusterChartWindow, defaultName string, write func(io.Writer) error) {
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := write(wc); err != nil {
			logging.Errorf("[viewer] export %s failed: %v", wc.URI().Path(), err)
			dialog.ShowError(err, c.window)
			return
		}
		rememberExportDir(c, wc.URI().Path())
		logging.Infof("[viewer] exported %s", wc.URI().Path())
	}, c.window)
	fs.SetFileName(defaultName)
	if c.lastExportDir != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(c.lastExportDir)); err == nil {
			fs.SetLocation(dir)
		}
	}
	fs.Show()
}
