package runlog

import (
	"os"
	"testing"

	"github.com/starford/dagaz/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "dagaz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndRecent(t *testing.T) {
	db := testDB(t)

	for _, r := range []models.RunRecord{
		{Date: "2026-01-14", Title: "First", Slug: "first", Category: "React", Path: "2026/01/14-first.md", Status: "ok"},
		{Date: "2026-01-15", Title: "Second", Slug: "second", Category: "TypeScript", Path: "2026/01/15-second.md", Status: "partial"},
	} {
		if _, err := db.Record(r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	rows, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	// Newest first.
	if rows[0].Title != "Second" || rows[1].Title != "First" {
		t.Errorf("order = [%s %s], want [Second First]", rows[0].Title, rows[1].Title)
	}
	if rows[0].Status != "partial" {
		t.Errorf("status = %q", rows[0].Status)
	}
}

func TestHasDate(t *testing.T) {
	db := testDB(t)

	ok, err := db.HasDate("2026-01-15")
	if err != nil {
		t.Fatalf("HasDate: %v", err)
	}
	if ok {
		t.Error("empty ledger should not have the date")
	}

	if _, err := db.Record(models.RunRecord{Date: "2026-01-15", Title: "X", Status: "ok"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	ok, err = db.HasDate("2026-01-15")
	if err != nil {
		t.Fatalf("HasDate: %v", err)
	}
	if !ok {
		t.Error("recorded date not found")
	}
}

func TestRecentLimit(t *testing.T) {
	db := testDB(t)
	for i := 0; i < 5; i++ {
		if _, err := db.Record(models.RunRecord{Date: "2026-01-10", Status: "ok"}); err != nil {
			t.Fatal(err)
		}
	}
	rows, err := db.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("len = %d, want 3", len(rows))
	}
}
