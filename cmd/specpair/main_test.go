package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/kdimtricp/specpair/internal/pairing"
)

func writeCapture(t *testing.T, dir, stem, cameraID string) {
	t.Helper()
	header := fmt.Sprintf("ENVI\nsamples = 1\nid = %s\n", cameraID)
	if err := os.WriteFile(filepath.Join(dir, stem+".hdr"), []byte(header), 0644); err != nil {
		t.Fatalf("Failed to write header: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, stem+".img"), []byte{0}, 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SPECPAIR_LOG_LEVEL", "off")
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScanAndFind(t *testing.T) {
	dir := t.TempDir()
	writeCapture(t, dir, "cat#001-left", "left")
	writeCapture(t, dir, "cat#001-right", "right")
	writeCapture(t, dir, "dog+wolf#002-left", "left")
	writeCapture(t, dir, "dog+wolf#002-right", "right")

	common := []string{"--camera1", "left", "--camera2", "right", "--part-delimiter", "#", "--between-delimiter", "+"}

	out, err := runCmd(t, append([]string{"scan", dir}, common...)...)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(out, "dog+wolf#002-left.img") || !strings.Contains(out, "dog,wolf") {
		t.Errorf("Unexpected scan output:\n%s", out)
	}

	out, err = runCmd(t, append([]string{"find", "wolf", "--dir", dir}, common...)...)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !strings.Contains(out, "camera1: [1]") || !strings.Contains(out, "dog+wolf#002-right.img") {
		t.Errorf("Unexpected find output:\n%s", out)
	}

	_, err = runCmd(t, append([]string{"find", "zebra", "--dir", dir}, common...)...)
	var notFound *pairing.LabelNotFoundError
	if !errors.As(err, &notFound) || notFound.Camera != 1 {
		t.Errorf("Expected camera 1 label-not-found error, got %v", err)
	}
}

func TestScanStoredLookup(t *testing.T) {
	dir := t.TempDir()
	writeCapture(t, dir, "cat__001_vnir", "vnir")
	writeCapture(t, dir, "cat__001_swir", "swir")
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	out, err := runCmd(t, "scan", dir, "--db", dbPath)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	id := regexp.MustCompile(`stored scan (\S+)`).FindStringSubmatch(out)
	if id == nil {
		t.Fatalf("Expected stored scan id in output:\n%s", out)
	}

	out, err = runCmd(t, "find", "cat", "--db", dbPath, "--scan-id", id[1])
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !strings.Contains(out, "cat__001_swir.img") {
		t.Errorf("Unexpected find output:\n%s", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	_, err := runCmd(t, "scan", t.TempDir(), "--camera2", "vnir")
	if err == nil {
		t.Error("Expected error for identical camera ids")
	}
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	for i := 0; i < 2; i++ {
		out, err := runCmd(t, "migrate", "--db", dbPath)
		if err != nil {
			t.Fatalf("migrate failed: %v", err)
		}
		if !strings.Contains(out, "applied 001_init.sql") || !strings.Contains(out, "applied 002_scan_images_header_path.sql") {
			t.Errorf("Unexpected migrate output:\n%s", out)
		}
	}

	if _, err := runCmd(t, "migrate"); err == nil {
		t.Error("Expected error without --db")
	}
}
