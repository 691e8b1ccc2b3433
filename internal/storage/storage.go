package storage

import (
	"io"
	"os"
)

// Storage gives read access to capture files under one root directory.
type Storage interface {
	// Resolve maps a directory or file, relative to the root or absolute,
	// to an absolute path inside the root.
	Resolve(path string) (string, error)
	// Stat describes a regular file inside the root.
	Stat(path string) (os.FileInfo, error)
	OpenFile(path string) (io.ReadSeekCloser, error)
}
