// Package config holds the viewer settings: input files, the centroid sentinel id, the
// delimiter and chart styling. Values come from defaults, an optional YAML file and flags,
// in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/liujuxiu/dm-clustering/src/palette"
	"github.com/liujuxiu/dm-clustering/src/points"
)

// DefaultSentinelID keys the centroid series unless configured otherwise.
const DefaultSentinelID = 9999

// DefaultDataDir is where the example input files live.
const DefaultDataDir = "data"

// Config is the resolved viewer configuration.
type Config struct {
	Title        string   `yaml:"title"`
	K            int      `yaml:"k" validate:"gte=0"`
	DataDir      string   `yaml:"data_dir"`
	ClusterFile  string   `yaml:"cluster_file" validate:"required"`
	CentroidFile string   `yaml:"centroid_file" validate:"required"`
	SentinelID   int      `yaml:"sentinel_id"`
	Delimiter    string   `yaml:"delimiter" validate:"omitempty,oneof=any whitespace comma semicolon tab"`
	Palette      []string `yaml:"palette" validate:"omitempty,dive,hexcolor"`
	Width        int      `yaml:"width" validate:"gte=320,lte=4096"`
	Height       int      `yaml:"height" validate:"gte=240,lte=4096"`
	DotWidth     float64  `yaml:"dot_width" validate:"gt=0,lte=20"`
	LogLevel     string   `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
}

// Default returns the hard-coded example for k clusters:
// data/kmeans_<k>_cluster_points.txt and data/kmeans_<k>_centroids.txt, sentinel 9999.
func Default(k int) Config {
	return Config{
		Title:        fmt.Sprintf("K-means [k=%d]", k),
		K:            k,
		DataDir:      DefaultDataDir,
		ClusterFile:  fmt.Sprintf("kmeans_%d_cluster_points.txt", k),
		CentroidFile: fmt.Sprintf("kmeans_%d_centroids.txt", k),
		SentinelID:   DefaultSentinelID,
		Delimiter:    string(points.DelimiterAny),
		Width:        1000,
		Height:       700,
		DotWidth:     3,
		LogLevel:     "info",
	}
}

// Load reads a YAML file on top of base and validates the result.
func Load(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f, base)
}

// Decode reads YAML from r on top of base and validates the result.
// Keys missing from the document keep base's values.
func Decode(r io.Reader, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks struct tags and returns a single readable error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// ClusterPath resolves ClusterFile against DataDir unless it is absolute.
func (c Config) ClusterPath() string { return c.resolve(c.ClusterFile) }

// CentroidPath resolves CentroidFile against DataDir unless it is absolute.
func (c Config) CentroidPath() string { return c.resolve(c.CentroidFile) }

func (c Config) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// PointDelimiter returns the parser delimiter.
func (c Config) PointDelimiter() points.Delimiter {
	if c.Delimiter == "" {
		return points.DelimiterAny
	}
	return points.Delimiter(c.Delimiter)
}

// SeriesPalette parses Palette, falling back to palette.Default when unset.
func (c Config) SeriesPalette() (palette.Palette, error) {
	if len(c.Palette) == 0 {
		return palette.Default, nil
	}
	return palette.Parse(c.Palette)
}
