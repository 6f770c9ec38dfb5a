package content

import (
	"sort"

	"github.com/Bitlatte/quill/internal/model"
)

// DefaultPerPage is used by Paginate when perPage is not positive.
const DefaultPerPage = 10

// Collection is an immutable, date-sorted set of posts. Every accessor
// returns a fresh slice; the posts themselves must not be modified.
type Collection struct {
	posts    []*model.Post
	problems error
}

// NewCollection wraps posts that are already sorted newest first.
func NewCollection(posts []*model.Post) *Collection {
	return newCollection(posts, nil)
}

func newCollection(posts []*model.Post, problems error) *Collection {
	return &Collection{posts: posts, problems: problems}
}

// Problems returns the aggregated parse errors of skipped files, or nil.
func (c *Collection) Problems() error {
	return c.problems
}

// Len returns the number of posts.
func (c *Collection) Len() int {
	return len(c.posts)
}

// All returns every post, newest first.
func (c *Collection) All() []*model.Post {
	return append([]*model.Post(nil), c.posts...)
}

// BySlug returns the post with the given slug.
func (c *Collection) BySlug(slug string) (*model.Post, bool) {
	for _, p := range c.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return nil, false
}

// ByTag returns the posts carrying tag, compared case-insensitively.
func (c *Collection) ByTag(tag string) []*model.Post {
	out := []*model.Post{}
	for _, p := range c.posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Paginate returns the 1-based page of perPage posts. Pages outside the
// range come back with no posts; callers decide whether to redirect.
func (c *Collection) Paginate(page, perPage int) model.Page {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	total := len(c.posts)
	totalPages := (total + perPage - 1) / perPage

	posts := []*model.Post{}
	start := (page - 1) * perPage
	if page >= 1 && start < total {
		end := min(start+perPage, total)
		posts = append(posts, c.posts[start:end]...)
	}

	result := model.Page{
		Posts:       posts,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalPosts:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	if result.HasNextPage {
		result.NextPage = page + 1
	}
	if result.HasPrevPage {
		result.PrevPage = page - 1
	}
	return result
}

// Tags counts posts per tag, most used first. Equal counts keep the order in
// which the tags were first seen.
func (c *Collection) Tags() []model.TagCount {
	index := make(map[string]int)
	counts := []model.TagCount{}
	for _, p := range c.posts {
		for _, tag := range p.Tags {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, model.TagCount{Tag: tag, Count: 1})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Recent returns up to limit of the newest posts, leaving out excludeSlug
// when it is not empty.
func (c *Collection) Recent(excludeSlug string, limit int) []*model.Post {
	out := []*model.Post{}
	for _, p := range c.posts {
		if len(out) >= limit {
			break
		}
		if excludeSlug != "" && p.Slug == excludeSlug {
			continue
		}
		out = append(out, p)
	}
	return out
}
