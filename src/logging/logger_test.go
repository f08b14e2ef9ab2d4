package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	SetOutput(&buf)
	defer func() { baseLogger = saved }()

	SetLogLevel("info")

	msg := "[viewer] loaded kmeans_3_cluster_points.txt clusters=3 points=90 (100.0% parsed)"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100.0% parsed)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!p(MISSING)") || strings.Contains(out, "(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Fatalf("expected level in output: %s", out)
	}
}

func TestSetLogLevel_FiltersLowerLevels(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	SetOutput(&buf)
	defer func() { baseLogger = saved; SetLogLevel("info") }()

	SetLogLevel("warn")
	if GetLogLevel() != LevelWarn {
		t.Fatalf("level = %v want warn", GetLogLevel())
	}
	Infof("hidden %d", 1)
	Debugf("hidden too")
	Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info/debug should be filtered at warn: %s", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Fatalf("warn line missing: %s", out)
	}

	// unknown names leave the level alone
	SetLogLevel("chatty")
	if GetLogLevel() != LevelWarn {
		t.Fatalf("unknown level changed current level to %v", GetLogLevel())
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", " warn ", "warning", "error"} {
		if !ValidLevel(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidLevel("trace") {
		t.Fatalf("trace should not be valid")
	}
}
