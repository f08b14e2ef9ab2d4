package uihelpers

import (
	"math"
	"strings"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		inW, inH     int
		wantW, wantH int
	}{
		{100, 0, 640, 448},
		{1000, 0, 1000, 700},
		{1000, 100, 1000, 420},
		{5000, 5000, 4096, 4096},
		{1200, 800, 1200, 800},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.inW, c.inH)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("input %dx%d => %dx%d want %dx%d", c.inW, c.inH, w, h, c.wantW, c.wantH)
		}
	}
}

func TestNiceAxisBounds(t *testing.T) {
	a, b := NiceAxisBounds(0, 10)
	if a != -1 || b != 11 {
		t.Fatalf("NiceAxisBounds(0,10) = %v,%v", a, b)
	}
	// degenerate span still yields a usable range around the value
	a, b = NiceAxisBounds(5, 5)
	if !(a < 5 && b > 5) {
		t.Fatalf("degenerate bounds should straddle 5: %v,%v", a, b)
	}
	a, b = NiceAxisBounds(-3.2, 7.9)
	if a > -3.2 || b < 7.9 {
		t.Fatalf("bounds must contain data: %v,%v", a, b)
	}
}

func TestBuildNumericTicks(t *testing.T) {
	ticks := BuildNumericTicks(-1, 11, 6)
	if len(ticks) != 7 {
		t.Fatalf("expected 7 ticks, got %v", ticks)
	}
	if ticks[0] > -1 || ticks[len(ticks)-1] < 11 {
		t.Fatalf("ticks must cover range: %v", ticks)
	}
	for i := 1; i < len(ticks); i++ {
		if d := ticks[i] - ticks[i-1]; math.Abs(d-2.5) > 1e-9 {
			t.Fatalf("non-uniform step %v at %d", d, i)
		}
	}
	if BuildNumericTicks(0, 1, 1) != nil {
		t.Fatalf("n<2 should return nil")
	}
	if BuildNumericTicks(math.NaN(), 1, 5) != nil {
		t.Fatalf("NaN should return nil")
	}
}

func TestTicksForExtremeRanges(t *testing.T) {
	a, b := NiceAxisBounds(-1e308, 1e308)
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		t.Fatalf("bounds overflowed: %v,%v", a, b)
	}
	if a != -1e308 || b != 1e308 {
		t.Fatalf("overflowing span should keep the data bounds, got %v,%v", a, b)
	}
	ticks := BuildNumericTicks(a, b, 6)
	if len(ticks) != 2 || ticks[0] != a || ticks[1] != b {
		t.Fatalf("overflowing span ticks = %v", ticks)
	}
	if got := BuildNumericTicks(1e300, 1e300, 6); len(got) != 2 {
		t.Fatalf("degenerate huge range ticks = %v", got)
	}
	if got := BuildNumericTicks(1e17, 1e17+64, 6); len(got) < 2 || len(got) > maxTicks {
		t.Fatalf("imprecise range produced %d ticks", len(got))
	}
	if BuildNumericTicks(math.Inf(-1), 1, 6) != nil {
		t.Fatalf("infinite bound should return nil")
	}
}

func TestFormatNumericTick(t *testing.T) {
	cases := map[float64]string{
		0:     "0",
		250:   "250",
		12.5:  "12.5",
		2.5:   "2.50",
		0.25:  "0.250",
		0.001: "0.0010",
		-7.5:  "-7.50",
	}
	for v, want := range cases {
		if got := FormatNumericTick(v); got != want {
			t.Fatalf("FormatNumericTick(%v) = %q want %q", v, got, want)
		}
	}
}

func TestContainRect(t *testing.T) {
	x, y, w, h, s := ContainRect(800, 400, 1200, 400)
	if x != 200 || y != 0 || w != 800 || h != 400 || s != 1 {
		t.Fatalf("wide view: %v %v %v %v %v", x, y, w, h, s)
	}
	x, y, w, h, s = ContainRect(800, 400, 400, 400)
	if x != 0 || y != 100 || w != 400 || h != 200 || s != 0.5 {
		t.Fatalf("narrow view: %v %v %v %v %v", x, y, w, h, s)
	}
	_, _, w, h, s = ContainRect(0, 0, 300, 200)
	if w != 300 || h != 200 || s != 1 {
		t.Fatalf("empty image should fill view")
	}
}

func TestPixelValueRoundTrip(t *testing.T) {
	if v := PixelToValue(125, 100, 200, 0, 10, false); v != 2.5 {
		t.Fatalf("x mapping = %v", v)
	}
	if v := PixelToValue(125, 100, 200, 0, 10, true); v != 7.5 {
		t.Fatalf("inverted mapping = %v", v)
	}
	for _, inv := range []bool{false, true} {
		px := ValueToPixel(3.3, 40, 640, -2, 8, inv)
		back := PixelToValue(px, 40, 640, -2, 8, inv)
		if math.Abs(back-3.3) > 1e-9 {
			t.Fatalf("roundtrip invert=%v: %v", inv, back)
		}
	}
	if PixelToValue(5, 1, 1, 3, 9, false) != 3 {
		t.Fatalf("zero-width pixel span should return vMin")
	}
}

func TestTruncatePath(t *testing.T) {
	if TruncatePath("short.txt", 20) != "short.txt" {
		t.Fatalf("short path should be unchanged")
	}
	got := TruncatePath("/a/very/long/directory/name/file.txt", 20)
	if !strings.HasSuffix(got, "file.txt") || !strings.Contains(got, "...") || len(got) > 20 {
		t.Fatalf("unexpected truncation %q", got)
	}
}
