package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	highlightOpen  = `<mark class="search-highlight">`
	highlightClose = `</mark>`
)

// HighlightTerms wraps every case-insensitive occurrence of each query term
// longer than one rune in a <mark> element. Terms are applied one after the
// other, so a later term can match inside an earlier highlight.
func HighlightTerms(text, query string) string {
	if text == "" || query == "" {
		return text
	}
	out := text
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(term) <= 1 {
			continue
		}
		re := regexp.MustCompile("(?i)(" + regexp.QuoteMeta(term) + ")")
		out = re.ReplaceAllString(out, highlightOpen+"${1}"+highlightClose)
	}
	return out
}
