// Package testutil provides shared test helpers for setting up note
// repositories and run ledgers.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dagaz/internal/runlog"
	"github.com/starford/dagaz/internal/storage"
)

// TestRepo creates a temporary notes repository with a storage.Provider.
func TestRepo(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// TestLedger creates a temporary SQLite run ledger that is automatically
// cleaned up.
func TestLedger(t *testing.T) (string, *runlog.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dagaz-test.db")
	db, err := runlog.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return path, db
}

// WriteIndex writes an index document into the repository.
func WriteIndex(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
