// Package models defines the domain types for Dagaz.
package models

import "time"

// Note represents one run's generated markdown artifact.
type Note struct {
	RawContent string // full markdown body as returned by the generator
	Title      string // first-level heading text (fallback applied by the pipeline)
	Slug       string // filesystem-safe derivation of Title
	Summary    string // first blockquote line, empty when the note has none
	Date       time.Time
}

// Path returns the note's file path relative to the repository root,
// in the YYYY/MM/DD-slug.md layout.
func (n Note) Path() string {
	return NotePath(n.Date, n.Slug)
}

// NotePath builds the relative file path for a note dated date with the
// given slug.
func NotePath(date time.Time, slug string) string {
	return date.Format("2006/01/02") + "-" + slug + ".md"
}

// Category is one topic bucket of the index document. The set of categories
// is closed per deployment and comes from configuration.
type Category struct {
	Name    string // display name, e.g. "React" or "前端架構"
	Heading string // exact heading line in the index document, e.g. "## React"
}

// RunRecord is one row of the run ledger.
type RunRecord struct {
	ID        int64
	Date      string // YYYY-MM-DD
	Title     string
	Slug      string
	Category  string
	Path      string
	Checksum  string
	Status    string // "ok", "partial" (index update skipped), or "error"
	CreatedAt time.Time
}
