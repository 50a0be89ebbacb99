// Package noteindex formats index entries and inserts them into the
// category sections of the index document.
package noteindex

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/apperr"
)

// FormatEntry produces one index entry line of the form
// "- [YYYY-MM-DD] [title](relPath)". Newlines in the title are squashed to
// spaces so the entry always stays a single line.
func FormatEntry(date time.Time, title, relPath string) string {
	title = strings.Join(strings.Fields(title), " ")
	return fmt.Sprintf("- [%s] [%s](%s)", date.Format("2006-01-02"), title, relPath)
}

// InsertEntry inserts entryLine into the section of document introduced by
// the given heading line and returns the updated document text.
//
// The document is treated as an ordered line sequence: locate the heading,
// skip at most one blank separator line, then either replace the sentinel
// line (first entry into an empty section) or insert entryLine before the
// next content line (newest-first order). Every line outside the insertion
// point passes through unchanged.
//
// When the heading is absent the document is returned unchanged together
// with apperr.ErrSectionNotFound; callers log a warning and continue.
func InsertEntry(document, heading, sentinel, entryLine string) (string, error) {
	lines := strings.Split(document, "\n")

	at := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == heading {
			at = i
			break
		}
	}
	if at < 0 {
		return document, apperr.ErrSectionNotFound
	}

	// Position of the section's first content line.
	pos := at + 1
	if pos < len(lines) && strings.TrimSpace(lines[pos]) == "" {
		pos++
	}

	if pos >= len(lines) {
		// Heading at end of document: append.
		return strings.Join(append(lines, entryLine), "\n"), nil
	}

	if sentinel != "" && strings.TrimSpace(lines[pos]) == sentinel {
		lines[pos] = entryLine
		return strings.Join(lines, "\n"), nil
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:pos]...)
	out = append(out, entryLine)
	out = append(out, lines[pos:]...)
	return strings.Join(out, "\n"), nil
}
