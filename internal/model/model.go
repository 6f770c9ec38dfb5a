package model

import (
	"time"
)

// Post represents a single blog post loaded from a markdown source file.
type Post struct {
	Slug       string         `json:"slug"`
	Title      string         `json:"title"`
	Date       time.Time      `json:"date"`
	Tags       []string       `json:"tags"`
	Excerpt    string         `json:"excerpt"`
	Cover      string         `json:"cover,omitempty"`
	Draft      bool           `json:"draft"`
	Content    string         `json:"-"`
	Extra      map[string]any `json:"extra,omitempty"`
	SourcePath string         `json:"-"`
}

// HasTag reports whether the post carries tag, compared case-insensitively.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if equalFold(t, tag) {
			return true
		}
	}
	return false
}

// TagCount is a tag together with the number of posts using it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
