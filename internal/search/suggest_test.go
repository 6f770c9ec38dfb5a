package search

import (
	"strings"
	"testing"

	"github.com/Bitlatte/quill/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSuggestions_TitlesAndTagsDeduplicated(t *testing.T) {
	posts := []*model.Post{
		{Slug: "a", Title: "React Basics", Tags: []string{"react", "frontend"}},
		{Slug: "b", Title: "Advanced React", Tags: []string{"react", "hooks"}},
		{Slug: "c", Title: "Go Tips", Tags: []string{"go"}},
	}
	idx := New(posts, DefaultOptions())

	got := idx.Suggestions("rea", 10)
	assert.Equal(t, []string{"React Basics", "react", "Advanced React"}, got)
}

func TestSuggestions_Limit(t *testing.T) {
	posts := []*model.Post{
		{Title: "React Basics", Tags: []string{"react"}},
		{Title: "Advanced React", Tags: []string{"reactivity"}},
	}
	idx := New(posts, DefaultOptions())

	assert.Equal(t, []string{"React Basics", "react"}, idx.Suggestions("REA", 2))
	assert.Len(t, idx.Suggestions("rea", 10), 4)
	assert.Empty(t, idx.Suggestions("rea", 0))
}

func TestSuggestions_ShortQuery(t *testing.T) {
	idx := New([]*model.Post{{Title: "React", Tags: []string{"r"}}}, DefaultOptions())

	assert.Empty(t, idx.Suggestions("r", 5))
	assert.Empty(t, idx.Suggestions("  ", 5))
	assert.False(t, idx.Built(), "suggestions never build the fuzzy index")
}

func TestSuggestions_CaseFolding(t *testing.T) {
	idx := New([]*model.Post{{Title: "Straße bauen", Tags: []string{}}}, DefaultOptions())

	assert.Equal(t, []string{"Straße bauen"}, idx.Suggestions("STRASSE", 5))
}

func TestHighlightTerms(t *testing.T) {
	got := HighlightTerms("Learning Go is fun", "go FUN")
	assert.Equal(t,
		`Learning <mark class="search-highlight">Go</mark> is <mark class="search-highlight">fun</mark>`,
		got)
}

func TestHighlightTerms_SkipsSingleRuneTerms(t *testing.T) {
	assert.Equal(t, "a b c", HighlightTerms("a b c", "a b"))
}

func TestHighlightTerms_EmptyInputs(t *testing.T) {
	assert.Equal(t, "", HighlightTerms("", "go"))
	assert.Equal(t, "text", HighlightTerms("text", ""))
}

func TestHighlightTerms_EscapesRegexp(t *testing.T) {
	got := HighlightTerms("Is C++ (still) fast?", "c++ (still)")
	assert.Equal(t,
		`Is <mark class="search-highlight">C++</mark> <mark class="search-highlight">(still)</mark> fast?`,
		got)
}

func TestHighlightTerms_AllOccurrences(t *testing.T) {
	got := HighlightTerms("go Go GO", "go")
	assert.Equal(t, 3, strings.Count(got, "<mark"))
}
