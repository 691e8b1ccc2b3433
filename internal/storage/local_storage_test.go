package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorage(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := NewLocalStorage(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	content := []byte("raw band data")
	if err := os.MkdirAll(filepath.Join(tmpDir, "session1"), 0755); err != nil {
		t.Fatalf("Failed to create session dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "session1", "cat__1.img"), content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	t.Run("Resolve", func(t *testing.T) {
		tests := []struct {
			name     string
			path     string
			expected string
		}{
			{"empty is root", "", storage.BasePath()},
			{"relative dir", "session1", filepath.Join(storage.BasePath(), "session1")},
			{"absolute inside", filepath.Join(storage.BasePath(), "session1"), filepath.Join(storage.BasePath(), "session1")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := storage.Resolve(tt.path)
				if err != nil {
					t.Fatalf("Failed to resolve: %v", err)
				}
				if got != tt.expected {
					t.Errorf("Expected %s, got %s", tt.expected, got)
				}
			})
		}
	})

	t.Run("OpenFile", func(t *testing.T) {
		for _, path := range []string{
			filepath.Join("session1", "cat__1.img"),
			filepath.Join(storage.BasePath(), "session1", "cat__1.img"),
		} {
			file, err := storage.OpenFile(path)
			if err != nil {
				t.Fatalf("Failed to open file: %v", err)
			}

			got, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				t.Fatalf("Failed to read file: %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("File content mismatch")
			}
		}
	})

	t.Run("Stat", func(t *testing.T) {
		info, err := storage.Stat(filepath.Join("session1", "cat__1.img"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("Expected size %d, got %d", len(content), info.Size())
		}

		if _, err := storage.Stat("session1"); err == nil {
			t.Error("Expected error for directory")
		}
		if _, err := storage.Stat("session1/missing.img"); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected not-exist error, got %v", err)
		}
		if _, err := storage.Stat("../outside.img"); !errors.Is(err, ErrOutsideRoot) {
			t.Errorf("Expected ErrOutsideRoot, got %v", err)
		}
	})

	t.Run("OpenFile_Missing", func(t *testing.T) {
		if _, err := storage.OpenFile("session1/missing.img"); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("PathTraversalPrevention", func(t *testing.T) {
		_, err := storage.OpenFile("../../../etc/passwd")
		if !errors.Is(err, ErrOutsideRoot) {
			t.Errorf("Path traversal was not prevented: %v", err)
		}

		_, err = storage.Resolve("/etc")
		if !errors.Is(err, ErrOutsideRoot) {
			t.Errorf("Absolute path outside root was not rejected: %v", err)
		}
	})
}

func TestNewLocalStorage_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if _, err := NewLocalStorage(file); err == nil {
		t.Error("Expected error for non-directory root")
	}
	if _, err := NewLocalStorage(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing root")
	}
}
