// Package parser extracts the title and summary from generated Markdown
// content and derives filesystem-safe slugs from titles.
package parser

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	slugCharRe   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Result holds what the parser extracted from one generated note.
type Result struct {
	Title   string // first H1 heading text, empty when absent
	Summary string // first blockquote line text, empty when absent
}

// Parse scans raw Markdown content and extracts the display title and
// summary. Both fields are empty strings when the corresponding line is
// absent; the caller decides fallbacks.
func Parse(data []byte) *Result {
	return &Result{
		Title:   ExtractTitle(string(data)),
		Summary: ExtractSummary(string(data)),
	}
}

// ExtractTitle returns the text of the first line consisting of a single
// "#", one space, and non-empty text. Lines with deeper heading levels do
// not match. Returns "" when no such line exists.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "# ") {
			continue
		}
		if text := strings.TrimSpace(trimmed[2:]); text != "" {
			return text
		}
	}
	return ""
}

// ExtractSummary returns the text of the first line beginning with the
// blockquote marker ("> "), with the marker stripped. Returns "" when the
// content has no blockquote line.
func ExtractSummary(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "> ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// DeriveSlug lowercases the title, replaces each run of whitespace with a
// single hyphen, and strips every character that is not an ASCII
// alphanumeric or hyphen. The result is deterministic and may legitimately
// be empty for titles with no ASCII alphanumerics (the caller applies a
// fallback).
func DeriveSlug(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRe.ReplaceAllString(s, "-")
	return slugCharRe.ReplaceAllString(s, "")
}
