package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Suggestions returns titles and tags containing partial, compared with
// Unicode case folding. Each distinct string appears once, in the order it
// was found walking the posts newest first. A limit below 1 returns nothing.
func (idx *Index) Suggestions(partial string, limit int) []string {
	q := strings.TrimSpace(partial)
	if limit < 1 || utf8.RuneCountInString(q) < MinQueryLength {
		return []string{}
	}

	fold := cases.Fold()
	needle := fold.String(q)

	seen := make(map[string]struct{})
	out := []string{}
	add := func(s string) bool {
		if _, ok := seen[s]; ok {
			return false
		}
		if !strings.Contains(fold.String(s), needle) {
			return false
		}
		seen[s] = struct{}{}
		out = append(out, s)
		return len(out) >= limit
	}

	for _, p := range idx.posts {
		if add(p.Title) {
			return out
		}
		for _, tag := range p.Tags {
			if add(tag) {
				return out
			}
		}
	}
	return out
}
