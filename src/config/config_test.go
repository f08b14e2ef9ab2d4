package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/liujuxiu/dm-clustering/src/palette"
	"github.com/liujuxiu/dm-clustering/src/points"
)

func TestDefault_HardCodedExample(t *testing.T) {
	c := Default(3)
	if c.Title != "K-means [k=3]" {
		t.Fatalf("title = %q", c.Title)
	}
	if c.SentinelID != 9999 {
		t.Fatalf("sentinel = %d", c.SentinelID)
	}
	if got, want := c.ClusterPath(), filepath.Join("data", "kmeans_3_cluster_points.txt"); got != want {
		t.Fatalf("cluster path = %q want %q", got, want)
	}
	if got, want := c.CentroidPath(), filepath.Join("data", "kmeans_3_centroids.txt"); got != want {
		t.Fatalf("centroid path = %q want %q", got, want)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if c.PointDelimiter() != points.DelimiterAny {
		t.Fatalf("delimiter = %q", c.PointDelimiter())
	}
}

func TestDecode_OverridesOnlyGivenKeys(t *testing.T) {
	doc := `
title: "Iris"
sentinel_id: -1
delimiter: comma
palette: ["#ff0000", "#00ff00"]
`
	c, err := Decode(strings.NewReader(doc), Default(3))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Title != "Iris" || c.SentinelID != -1 || c.Delimiter != "comma" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.ClusterFile != "kmeans_3_cluster_points.txt" || c.Width != 1000 {
		t.Fatalf("defaults lost: %+v", c)
	}
	p, err := c.SeriesPalette()
	if err != nil || len(p) != 2 {
		t.Fatalf("palette = %v err=%v", p, err)
	}
}

func TestDecode_EmptyDocumentKeepsBase(t *testing.T) {
	c, err := Decode(strings.NewReader(""), Default(4))
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if c.K != 4 {
		t.Fatalf("k = %d", c.K)
	}
}

func TestDecode_ValidationFailures(t *testing.T) {
	cases := map[string]string{
		"delimiter":   "delimiter: pipe\n",
		"palette":     "palette: [\"red\"]\n",
		"width":       "width: 10\n",
		"log level":   "log_level: loud\n",
		"cluster":     "cluster_file: \"\"\n",
		"unknown key": "colour: blue\n",
	}
	for name, doc := range cases {
		if _, err := Decode(strings.NewReader(doc), Default(3)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoad_FileAndAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "pts.txt")
	cfgPath := filepath.Join(dir, "viewer.yaml")
	doc := "cluster_file: " + abs + "\ndata_dir: " + dir + "\n"
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(cfgPath, Default(3))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ClusterPath() != abs {
		t.Fatalf("absolute path should be kept, got %q", c.ClusterPath())
	}
	if c.CentroidPath() != filepath.Join(dir, "kmeans_3_centroids.txt") {
		t.Fatalf("centroid path = %q", c.CentroidPath())
	}
	if _, err := Load(filepath.Join(dir, "nope.yaml"), Default(3)); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestSeriesPalette_DefaultWhenUnset(t *testing.T) {
	p, err := Default(3).SeriesPalette()
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != len(palette.Default) {
		t.Fatalf("expected default palette")
	}
}
