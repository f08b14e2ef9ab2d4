package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/liujuxiu/dm-clustering/src/config"
	"github.com/liujuxiu/dm-clustering/src/points"
)

func main() {
	var k, sentinel int
	var dataDir, clusterFile, centroidFile, delim string
	flag.IntVar(&k, "k", 3, "Number of clusters of the example files")
	flag.StringVar(&dataDir, "data-dir", config.DefaultDataDir, "Directory holding the input files")
	flag.StringVar(&clusterFile, "clusters", "", "Cluster point file (default kmeans_<k>_cluster_points.txt)")
	flag.StringVar(&centroidFile, "centroids", "", "Centroid point file (default kmeans_<k>_centroids.txt)")
	flag.IntVar(&sentinel, "sentinel", config.DefaultSentinelID, "Series id reserved for centroids")
	flag.StringVar(&delim, "delimiter", string(points.DelimiterAny), "Field delimiter: any, whitespace, comma, semicolon, tab")
	flag.Parse()

	cfg := config.Default(k)
	cfg.DataDir = dataDir
	if clusterFile != "" {
		cfg.ClusterFile = clusterFile
	}
	if centroidFile != "" {
		cfg.CentroidFile = centroidFile
	}
	cfg.SentinelID = sentinel
	cfg.Delimiter = delim
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	clusters, err := points.ParseFile(cfg.PointDelimiter(), cfg.ClusterPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	centroids, err := points.ParseFile(cfg.PointDelimiter(), cfg.CentroidPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	summarize(os.Stdout, clusters, centroids, cfg.SentinelID)
}

// summarize prints per-cluster counts, the centroids and whether a cluster id collides with the
// centroid sentinel.
func summarize(w io.Writer, clusters, centroids points.ClusterGrouping, sentinel int) {
	fmt.Fprintf(w, "Clusters: %d, points: %d\n", clusters.Clusters(), clusters.Len())
	for _, id := range clusters.IDs() {
		fmt.Fprintf(w, "  cluster %d: %d points\n", id, len(clusters.Points(id)))
	}
	flat := centroids.Flatten()
	fmt.Fprintf(w, "Centroids: %d\n", len(flat))
	for _, id := range centroids.IDs() {
		for _, p := range centroids.Points(id) {
			fmt.Fprintf(w, "  centroid %d: %s\n", id, p)
		}
	}
	if lo, hi, ok := clusters.Bounds(); ok {
		fmt.Fprintf(w, "Extent: %s .. %s\n", lo, hi)
	}
	if clusters.Has(sentinel) {
		fmt.Fprintf(w, "Warning: cluster id %d is also the centroid sentinel\n", sentinel)
	}
	fmt.Fprintf(w, "Series: %d (incl. centroid series %d)\n", clusters.Clusters()+1, sentinel)
}
