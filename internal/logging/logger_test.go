package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("specpair", "info", &buf)

	log.Debug("hidden")
	log.Info("scanned directory", "dir", "/captures")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug record written at info level: %s", out)
	}
	if !strings.Contains(out, "scanned directory") || !strings.Contains(out, "dir=/captures") {
		t.Errorf("Expected info record with dir field, got %s", out)
	}
	if !strings.Contains(out, "specpair") {
		t.Errorf("Expected logger name in output, got %s", out)
	}
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if got := GetLogLevel(); got != "info" {
		t.Errorf("Expected default level info, got %s", got)
	}

	t.Setenv(EnvLogLevel, "trace")
	if got := GetLogLevel(); got != "trace" {
		t.Errorf("Expected level trace, got %s", got)
	}
}
