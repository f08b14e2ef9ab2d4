package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/liujuxiu/dm-clustering/src/points"
)

func TestSummarize(t *testing.T) {
	clusters, err := points.Parse(points.DelimiterAny, strings.NewReader("1 1 0\n2 2 0\n5 5 1\n9 9 9999\n"))
	if err != nil {
		t.Fatal(err)
	}
	centroids, err := points.Parse(points.DelimiterAny, strings.NewReader("1.5 1.5 0\n5 5 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	summarize(&buf, clusters, centroids, 9999)
	out := buf.String()
	for _, want := range []string{
		"Clusters: 3, points: 4",
		"cluster 0: 2 points",
		"Centroids: 2",
		"centroid 0: (1.5, 1.5)",
		"Warning: cluster id 9999",
		"Series: 4",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
