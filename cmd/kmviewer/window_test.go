package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/liujuxiu/dm-clustering/cmd/kmviewer/uihelpers"
	"github.com/liujuxiu/dm-clustering/src/config"
	"github.com/liujuxiu/dm-clustering/src/points"
)

func exampleConfig() config.Config {
	cfg := config.Default(3)
	cfg.DataDir = "testdata"
	return cfg
}

func newTestWindow(t *testing.T, cfg config.Config) *ClusterChartWindow {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w, err := NewClusterChartWindow(a, cfg)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	return w
}

// The hard-coded example: 3 clusters, 3 centroids, sentinel 9999.
func TestExampleScenario(t *testing.T) {
	w := newTestWindow(t, exampleConfig())
	if err := w.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w.Window() == nil {
		t.Fatalf("window not created")
	}
	if got := w.data.SeriesCount(); got != 4 {
		t.Fatalf("series = %d want 4", got)
	}
	if w.data.CentroidSeries().ID != 9999 {
		t.Fatalf("centroid series id = %d", w.data.CentroidSeries().ID)
	}
	if w.toggleBtn.Text != displayCentroidsLabel {
		t.Fatalf("initial label %q", w.toggleBtn.Text)
	}

	test.Tap(w.toggleBtn)
	if !w.CentroidsVisible() || len(w.data.CentroidSeries().Points) != 3 {
		t.Fatalf("after first tap expected 3 centroid points, got %d", len(w.data.CentroidSeries().Points))
	}
	if w.toggleBtn.Text != hideCentroidsLabel {
		t.Fatalf("label after show = %q", w.toggleBtn.Text)
	}

	test.Tap(w.toggleBtn)
	if w.CentroidsVisible() || len(w.data.CentroidSeries().Points) != 0 {
		t.Fatalf("after second tap centroid series should be empty")
	}
	if w.toggleBtn.Text != displayCentroidsLabel {
		t.Fatalf("label after hide = %q", w.toggleBtn.Text)
	}
}

func TestShowHideIdempotentOnWindow(t *testing.T) {
	w := newTestWindow(t, exampleConfig())
	if err := w.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	w.ShowCentroids()
	w.ShowCentroids()
	if len(w.data.CentroidSeries().Points) != 3 || w.toggleBtn.Text != hideCentroidsLabel {
		t.Fatalf("double show: %d points, label %q", len(w.data.CentroidSeries().Points), w.toggleBtn.Text)
	}
	w.HideCentroids()
	w.HideCentroids()
	if w.CentroidsVisible() || w.toggleBtn.Text != displayCentroidsLabel {
		t.Fatalf("double hide left centroids visible")
	}
}

func TestConfigureOverridesInputs(t *testing.T) {
	dir := t.TempDir()
	cl := filepath.Join(dir, "c.csv")
	ce := filepath.Join(dir, "m.csv")
	if err := os.WriteFile(cl, []byte("1,1,5\n2,2,5\n3,3,7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ce, []byte("1.5,1.5,5\n3,3,7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := newTestWindow(t, exampleConfig())
	w.Configure(cl, ce, -1)
	if err := w.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w.data.SeriesCount() != 3 || w.data.CentroidSeries().ID != -1 {
		t.Fatalf("series=%d sentinel=%d", w.data.SeriesCount(), w.data.CentroidSeries().ID)
	}
	if !w.ToggleCentroids() || len(w.data.CentroidSeries().Points) != 2 {
		t.Fatalf("toggle should show 2 centroids")
	}
}

func TestRenderErrors(t *testing.T) {
	w := newTestWindow(t, exampleConfig())
	w.Configure(filepath.Join(t.TempDir(), "missing.txt"), "testdata/kmeans_3_centroids.txt", 9999)
	err := w.Render()
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if w.Window() != nil {
		t.Fatalf("window should not be created when parsing fails")
	}

	bad := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(bad, []byte("1 2 0\n1 oops 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.Configure("testdata/kmeans_3_cluster_points.txt", bad, 9999)
	err = w.Render()
	var pe *points.ParseError
	if !errors.As(err, &pe) || pe.Line != 2 {
		t.Fatalf("expected parse error on line 2, got %v", err)
	}
}

func TestRenderAgainKeepsVisibilityAndPreviousDataOnError(t *testing.T) {
	w := newTestWindow(t, exampleConfig())
	if err := w.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	w.ShowCentroids()
	if err := w.Render(); err != nil {
		t.Fatalf("re-render: %v", err)
	}
	if !w.CentroidsVisible() || w.toggleBtn.Text != hideCentroidsLabel {
		t.Fatalf("reload should keep centroids visible")
	}
	prev := w.data
	w.Configure(filepath.Join(t.TempDir(), "gone.txt"), "testdata/kmeans_3_centroids.txt", 9999)
	if err := w.Render(); err == nil {
		t.Fatalf("expected error")
	}
	if w.data != prev {
		t.Fatalf("failed reload must keep the previous dataset")
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w, err := NewClusterChartWindow(a, exampleConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	w.crosshairChk.SetChecked(false)
	w.hintsChk.SetChecked(true)
	rememberExportDir(w, filepath.Join("exports", "clusters.png"))

	w2, err := NewClusterChartWindow(a, exampleConfig())
	if err != nil {
		t.Fatal(err)
	}
	if w2.crosshairEnabled || !w2.showHints || w2.lastExportDir != "exports" {
		t.Fatalf("prefs not restored: crosshair=%v hints=%v dir=%q", w2.crosshairEnabled, w2.showHints, w2.lastExportDir)
	}
}

func TestCrosshairOnByDefault(t *testing.T) {
	w := newTestWindow(t, exampleConfig())
	if err := w.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !w.crosshairEnabled || !w.overlay.enabled || !w.crosshairChk.Checked {
		t.Fatalf("crosshair should start enabled: state=%v overlay=%v check=%v",
			w.crosshairEnabled, w.overlay.enabled, w.crosshairChk.Checked)
	}
}

func TestRenderAfterConfigureUpdatesFileLabel(t *testing.T) {
	w := newTestWindow(t, exampleConfig())
	if err := w.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	dir := t.TempDir()
	cl := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(cl, []byte("1 1 0\n2 2 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.Configure(cl, "testdata/kmeans_3_centroids.txt", 9999)
	if err := w.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if w.fileLabel.Text != uihelpers.TruncatePath(cl, 60) {
		t.Fatalf("file label = %q want path of %q", w.fileLabel.Text, cl)
	}
}
