// Package points reads the delimiter separated point lists produced by the k-means runs
// (one "x y [clusterId]" record per line) into per-cluster point sets.
package points

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Point2D is a single plotted coordinate.
type Point2D struct {
	X float64
	Y float64
}

func (p Point2D) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// ImplicitClusterID is assigned to lines that carry only x and y.
const ImplicitClusterID = 0

// ClusterGrouping maps a cluster id to its unique points. Points keep the order in which
// they were first seen. The zero value is not usable; use NewClusterGrouping.
type ClusterGrouping struct {
	byID map[int][]Point2D
	seen map[int]map[Point2D]struct{}
}

// NewClusterGrouping returns an empty grouping.
func NewClusterGrouping() ClusterGrouping {
	return ClusterGrouping{byID: map[int][]Point2D{}, seen: map[int]map[Point2D]struct{}{}}
}

// Add inserts p under id and reports whether it was new for that cluster.
func (g ClusterGrouping) Add(id int, p Point2D) bool {
	set, ok := g.seen[id]
	if !ok {
		set = map[Point2D]struct{}{}
		g.seen[id] = set
	}
	if _, dup := set[p]; dup {
		return false
	}
	set[p] = struct{}{}
	g.byID[id] = append(g.byID[id], p)
	return true
}

// IDs returns the cluster ids in ascending order.
func (g ClusterGrouping) IDs() []int {
	ids := make([]int, 0, len(g.byID))
	for id := range g.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Points returns a copy of the points of one cluster.
func (g ClusterGrouping) Points(id int) []Point2D {
	src := g.byID[id]
	if len(src) == 0 {
		return nil
	}
	out := make([]Point2D, len(src))
	copy(out, src)
	return out
}

// Has reports whether the cluster id exists.
func (g ClusterGrouping) Has(id int) bool {
	_, ok := g.byID[id]
	return ok
}

// Clusters is the number of distinct ids.
func (g ClusterGrouping) Clusters() int { return len(g.byID) }

// Len is the total number of points across all clusters.
func (g ClusterGrouping) Len() int {
	n := 0
	for _, pts := range g.byID {
		n += len(pts)
	}
	return n
}

// Flatten returns the union of all points, visiting clusters by ascending id.
// A point present in more than one cluster is returned once.
func (g ClusterGrouping) Flatten() []Point2D {
	seen := make(map[Point2D]struct{}, g.Len())
	out := make([]Point2D, 0, g.Len())
	for _, id := range g.IDs() {
		for _, p := range g.byID[id] {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Bounds returns the min/max coordinates over all points; ok is false when empty.
func (g ClusterGrouping) Bounds() (minP, maxP Point2D, ok bool) {
	minP = Point2D{X: math.Inf(1), Y: math.Inf(1)}
	maxP = Point2D{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, pts := range g.byID {
		for _, p := range pts {
			minP.X = math.Min(minP.X, p.X)
			minP.Y = math.Min(minP.Y, p.Y)
			maxP.X = math.Max(maxP.X, p.X)
			maxP.Y = math.Max(maxP.Y, p.Y)
			ok = true
		}
	}
	return minP, maxP, ok
}

// Delimiter selects how a line is split into fields.
type Delimiter string

const (
	DelimiterAny        Delimiter = "any"
	DelimiterWhitespace Delimiter = "whitespace"
	DelimiterComma      Delimiter = "comma"
	DelimiterSemicolon  Delimiter = "semicolon"
	DelimiterTab        Delimiter = "tab"
)

var delimiterPatterns = map[Delimiter]*regexp.Regexp{
	DelimiterAny:        regexp.MustCompile(`[\t,;\s]+`),
	DelimiterWhitespace: regexp.MustCompile(`\s+`),
	DelimiterComma:      regexp.MustCompile(`\s*,\s*`),
	DelimiterSemicolon:  regexp.MustCompile(`\s*;\s*`),
	DelimiterTab:        regexp.MustCompile(`\t+`),
}

// Pattern returns the split pattern; unknown names fall back to DelimiterAny.
func (d Delimiter) Pattern() *regexp.Regexp {
	if re, ok := delimiterPatterns[Delimiter(strings.ToLower(string(d)))]; ok {
		return re
	}
	return delimiterPatterns[DelimiterAny]
}

// Valid reports whether d names a known delimiter. The empty string counts as DelimiterAny.
func (d Delimiter) Valid() bool {
	if d == "" {
		return true
	}
	_, ok := delimiterPatterns[Delimiter(strings.ToLower(string(d)))]
	return ok
}

// ParseError describes the first malformed line of an input.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	src := e.Path
	if src == "" {
		src = "input"
	}
	return fmt.Sprintf("%s:%d: %s", src, e.Line, e.Reason)
}

// ParseFile opens path and parses it with Parse.
func ParseFile(delim Delimiter, path string) (ClusterGrouping, error) {
	f, err := os.Open(path)
	if err != nil {
		return ClusterGrouping{}, fmt.Errorf("open points file: %w", err)
	}
	defer f.Close()
	g, err := parse(delim, f, path)
	if err != nil {
		return ClusterGrouping{}, err
	}
	return g, nil
}

// Parse reads "x y [clusterId]" records. Blank lines and lines starting with '#' are skipped.
// Two fields put the point into ImplicitClusterID. Any malformed line aborts the parse.
func Parse(delim Delimiter, r io.Reader) (ClusterGrouping, error) {
	return parse(delim, r, "")
}

func parse(delim Delimiter, r io.Reader, path string) (ClusterGrouping, error) {
	re := delim.Pattern()
	g := NewClusterGrouping()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, p, err := parseLine(re, line)
		if err != nil {
			return ClusterGrouping{}, &ParseError{Path: path, Line: lineNo, Reason: err.Error()}
		}
		g.Add(id, p)
	}
	if err := sc.Err(); err != nil {
		return ClusterGrouping{}, fmt.Errorf("read points: %w", err)
	}
	return g, nil
}

func parseLine(re *regexp.Regexp, line string) (int, Point2D, error) {
	raw := re.Split(line, -1)
	fields := raw[:0]
	for _, f := range raw {
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) != 2 && len(fields) != 3 {
		return 0, Point2D{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(fields))
	}
	x, err := parseCoord(fields[0])
	if err != nil {
		return 0, Point2D{}, fmt.Errorf("x: %w", err)
	}
	y, err := parseCoord(fields[1])
	if err != nil {
		return 0, Point2D{}, fmt.Errorf("y: %w", err)
	}
	id := ImplicitClusterID
	if len(fields) == 3 {
		id, err = strconv.Atoi(fields[2])
		if err != nil {
			return 0, Point2D{}, fmt.Errorf("cluster id %q is not an integer", fields[2])
		}
	}
	return id, Point2D{X: x, Y: y}, nil
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return v, nil
}
