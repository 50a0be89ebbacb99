// Package classify maps note titles to categories via ordered keyword rules.
package classify

import (
	"strings"

	"github.com/starford/dagaz/internal/models"
)

// Rule pairs a category with the keywords that select it. Rules are
// evaluated in declaration order; the first rule with a matching keyword
// wins, so priority is carried by the ordering, not by the matcher.
type Rule struct {
	Category models.Category
	Keywords []string
}

// Classifier resolves titles to exactly one category. Titles that match no
// rule fall into the catch-all category.
type Classifier struct {
	rules    []Rule
	catchAll models.Category
}

// New creates a Classifier from an ordered rule list and a catch-all
// category.
func New(rules []Rule, catchAll models.Category) *Classifier {
	return &Classifier{rules: rules, catchAll: catchAll}
}

// Classify returns the category for a title: case-insensitive substring
// match against each rule's keywords in rule order, first match wins. The
// result is total — every title maps to exactly one category.
func (c *Classifier) Classify(title string) models.Category {
	lowered := strings.ToLower(title)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(kw)) {
				return rule.Category
			}
		}
	}
	return c.catchAll
}

// Categories returns every category the classifier can produce, rules
// first, catch-all last.
func (c *Classifier) Categories() []models.Category {
	out := make([]models.Category, 0, len(c.rules)+1)
	for _, rule := range c.rules {
		out = append(out, rule.Category)
	}
	return append(out, c.catchAll)
}
