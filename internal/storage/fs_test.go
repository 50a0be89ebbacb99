package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempRepo(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempRepo(t)
	content := []byte("# Hello\n\n> gist\n")
	if err := s.Write("2026/01/15-hello.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("2026/01/15-hello.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	s := tempRepo(t)
	if err := s.Write("README.md", []byte("index")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(s.Root())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "README.md" {
			t.Errorf("unexpected leftover: %s", e.Name())
		}
	}
}

func TestExists(t *testing.T) {
	s := tempRepo(t)
	ok, err := s.Exists("missing.md")
	if err != nil || ok {
		t.Errorf("Exists(missing) = %v, %v", ok, err)
	}
	_ = s.Write("there.md", []byte("x"))
	ok, err = s.Exists("there.md")
	if err != nil || !ok {
		t.Errorf("Exists(there) = %v, %v", ok, err)
	}
}

func TestList(t *testing.T) {
	s := tempRepo(t)
	_ = s.Write("README.md", []byte("index"))
	_ = s.Write("2026/01/15-a.md", []byte("a"))
	_ = s.Write("2026/01/16-b.md", []byte("b"))
	if err := os.MkdirAll(filepath.Join(s.Root(), ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Root(), ".git", "ignored.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("len = %d, want 3: %v", len(paths), paths)
	}
	for _, p := range paths {
		if filepath.IsAbs(p) {
			t.Errorf("path not relative: %s", p)
		}
	}
}

func TestSafePathRejectsEscape(t *testing.T) {
	s := tempRepo(t)
	if _, err := s.Read("../outside.md"); err == nil {
		t.Error("expected traversal to be rejected")
	}
	if err := s.Write("/etc/evil.md", []byte("x")); err == nil {
		t.Error("expected absolute path to be rejected")
	}
}
