package main

import (
	"flag"
	"os"
	"strings"

	"fyne.io/fyne/v2/app"

	"github.com/liujuxiu/dm-clustering/src/config"
	"github.com/liujuxiu/dm-clustering/src/logging"
)

// cliFlags holds values given on the command line; zero values mean "not set".
type cliFlags struct {
	configPath  string
	k           int
	dataDir     string
	clusters    string
	centroids   string
	sentinel    int
	sentinelSet bool
	delimiter   string
	logLevel    string
	exportDir   string
}

func parseFlags(fs *flag.FlagSet, args []string) (cliFlags, error) {
	var f cliFlags
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	fs.IntVar(&f.k, "k", 3, "Number of clusters of the example files (data/kmeans_<k>_*.txt)")
	fs.StringVar(&f.dataDir, "data-dir", "", "Directory holding the input files")
	fs.StringVar(&f.clusters, "clusters", "", "Cluster point file (x y clusterId per line)")
	fs.StringVar(&f.centroids, "centroids", "", "Centroid point file (x y clusterId per line)")
	fs.IntVar(&f.sentinel, "sentinel", config.DefaultSentinelID, "Series id reserved for centroids")
	fs.StringVar(&f.delimiter, "delimiter", "", "Field delimiter: any, whitespace, comma, semicolon, tab")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.exportDir, "export-dir", "", "Render PNG and HTML exports into this directory and exit (no window)")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "sentinel" {
			f.sentinelSet = true
		}
	})
	return f, nil
}

// resolveConfig layers defaults, the optional config file and flags, in that order.
func resolveConfig(f cliFlags) (config.Config, error) {
	cfg := config.Default(f.k)
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath, cfg); err != nil {
			return config.Config{}, err
		}
	}
	if f.dataDir != "" {
		cfg.DataDir = f.dataDir
	}
	if f.clusters != "" {
		cfg.ClusterFile = f.clusters
	}
	if f.centroids != "" {
		cfg.CentroidFile = f.centroids
	}
	if f.sentinelSet {
		cfg.SentinelID = f.sentinel
	}
	if f.delimiter != "" {
		cfg.Delimiter = strings.ToLower(f.delimiter)
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func main() {
	f, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	cfg, err := resolveConfig(f)
	if err != nil {
		logging.Errorf("[viewer] config: %v", err)
		os.Exit(1)
	}
	if logging.ValidLevel(cfg.LogLevel) {
		logging.SetLogLevel(cfg.LogLevel)
	}
	defer logging.Sync()

	if f.exportDir != "" {
		if err := RunExportMode(cfg, f.exportDir); err != nil {
			logging.Errorf("[viewer] export: %v", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.dmclustering.kmviewer")
	win, err := NewClusterChartWindow(a, cfg)
	if err != nil {
		logging.Errorf("[viewer] %v", err)
		os.Exit(1)
	}
	if err := win.Render(); err != nil {
		logging.Errorf("[viewer] %v", err)
		os.Exit(1)
	}
	win.ShowAndRun()
}
