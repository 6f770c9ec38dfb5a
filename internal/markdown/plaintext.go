package markdown

import (
	"regexp"
	"strings"
)

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`]*`")
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	symbolRe     = regexp.MustCompile("[#*_~`]")
	newlinesRe   = regexp.MustCompile(`\n+`)
)

// PlainText strips markdown syntax from md for search indexing. Code is
// dropped entirely and links keep only their label. The steps run in a fixed
// order: fenced code must go before inline code, and both before symbols.
func PlainText(md string) string {
	s := fencedCodeRe.ReplaceAllString(md, "")
	s = inlineCodeRe.ReplaceAllString(s, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = symbolRe.ReplaceAllString(s, "")
	s = newlinesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
