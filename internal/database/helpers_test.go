package database

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	db, err := NewDB(Config{SQLitePath: filepath.Join(t.TempDir(), "specpair_test.db")})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.RunMigrations(nil); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}
