// Package search answers fuzzy, field-weighted queries over a post set.
package search

import (
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/Bitlatte/quill/internal/markdown"
	"github.com/Bitlatte/quill/internal/model"
)

// MinQueryLength is the shortest trimmed query, in runes, that is searched.
const MinQueryLength = 2

// Weights sets how much each field counts towards a document's score.
type Weights struct {
	Title   float64
	Excerpt float64
	Tags    float64
	Content float64
}

// Options tune matching. Start from DefaultOptions: a negative Threshold or
// Distance, a non-positive MinMatchCharLength or MaxPatternLength and all-zero
// Weights fall back to the defaults, while a zero Threshold or Distance is
// kept.
type Options struct {
	// Threshold is the worst per-field score still counted as a match.
	// 0 only accepts exact matches; 1 accepts anything.
	Threshold float64
	// Distance is how far from Location a match may drift; each Distance
	// runes of drift cost as much as a full mismatch. 0 only accepts matches
	// that start exactly at Location.
	Distance int
	// Location is where in a field a match is expected to start.
	Location int
	// MinMatchCharLength is the shortest run of matched runes that counts.
	MinMatchCharLength int
	// MaxPatternLength splits longer queries into chunks of this size.
	MaxPatternLength int
	// IgnoreLocation disables the distance penalty.
	IgnoreLocation bool
	// UseFieldNorm weakens matches in fields with many words.
	UseFieldNorm bool
	Weights      Weights
}

// DefaultOptions returns the tuning used by the blog.
func DefaultOptions() Options {
	return Options{
		Threshold:          0.4,
		Distance:           100,
		MinMatchCharLength: 2,
		MaxPatternLength:   32,
		Weights: Weights{
			Title:   0.4,
			Excerpt: 0.3,
			Tags:    0.2,
			Content: 0.1,
		},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Threshold < 0 {
		o.Threshold = d.Threshold
	}
	if o.Distance < 0 {
		o.Distance = d.Distance
	}
	if o.MinMatchCharLength <= 0 {
		o.MinMatchCharLength = d.MinMatchCharLength
	}
	if o.MaxPatternLength <= 0 || o.MaxPatternLength > 64 {
		o.MaxPatternLength = d.MaxPatternLength
	}
	if o.Weights == (Weights{}) {
		o.Weights = d.Weights
	}
	return o
}

// Result is one ranked hit. Score is 0 for a perfect match and approaches 1
// for the weakest accepted one; Relevance is the same as a percentage where
// 100 is best.
type Result struct {
	Post      *model.Post `json:"post"`
	Score     float64     `json:"score"`
	Relevance float64     `json:"relevance"`
}

type fieldValue struct {
	text []rune
	norm float64
}

type field struct {
	weight float64
	values []fieldValue
}

type document struct {
	post   *model.Post
	fields []field
}

// Index is a lazily built search index over a fixed set of posts. It is
// safe for concurrent use; the first query builds the documents and any
// concurrent callers wait for that build.
type Index struct {
	posts []*model.Post
	opts  Options

	once  sync.Once
	built atomic.Bool
	docs  []document
}

// New returns an index over posts. Nothing is computed until the first
// query.
func New(posts []*model.Post, opts Options) *Index {
	return &Index{
		posts: append([]*model.Post(nil), posts...),
		opts:  opts.withDefaults(),
	}
}

// Built reports whether the documents have been computed.
func (idx *Index) Built() bool {
	return idx.built.Load()
}

func (idx *Index) ensureBuilt() {
	idx.once.Do(idx.build)
}

func (idx *Index) build() {
	w := idx.opts.Weights
	total := w.Title + w.Excerpt + w.Tags + w.Content

	docs := make([]document, len(idx.posts))
	for i, p := range idx.posts {
		tags := make([]fieldValue, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, newFieldValue(t))
		}
		docs[i] = document{
			post: p,
			fields: []field{
				{weight: w.Title / total, values: []fieldValue{newFieldValue(p.Title)}},
				{weight: w.Excerpt / total, values: []fieldValue{newFieldValue(p.Excerpt)}},
				{weight: w.Tags / total, values: tags},
				{weight: w.Content / total, values: []fieldValue{newFieldValue(markdown.PlainText(p.Content))}},
			},
		}
	}
	idx.docs = docs
	idx.built.Store(true)
}

func newFieldValue(s string) fieldValue {
	return fieldValue{text: []rune(strings.ToLower(s)), norm: fieldNorm(s)}
}

// fieldNorm is 1/sqrt(word count), rounded to three decimals.
func fieldNorm(s string) float64 {
	n := len(strings.Fields(s))
	if n == 0 {
		return 1
	}
	return math.Round(1/math.Sqrt(float64(n))*1000) / 1000
}

// Search returns the posts matching query, best first. Queries shorter than
// MinQueryLength runes after trimming return nothing and do not build the
// index, and so does a limit below 1.
func (idx *Index) Search(query string, limit int) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if limit < 1 || utf8.RuneCountInString(q) < MinQueryLength {
		return []Result{}
	}
	idx.ensureBuilt()

	m := newMatcher([]rune(q), idx.opts.MaxPatternLength, matchOptions{
		location:           idx.opts.Location,
		distance:           idx.opts.Distance,
		threshold:          idx.opts.Threshold,
		minMatchCharLength: idx.opts.MinMatchCharLength,
		ignoreLocation:     idx.opts.IgnoreLocation,
	})

	results := []Result{}
	for _, doc := range idx.docs {
		score, ok := idx.scoreDocument(m, doc)
		if !ok {
			continue
		}
		results = append(results, Result{
			Post:      doc.post,
			Score:     score,
			Relevance: (1 - score) * 100,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// scoreDocument multiplies score^(weight*norm) over every matched field
// value, so each extra match can only improve the result.
func (idx *Index) scoreDocument(m *matcher, doc document) (float64, bool) {
	total := 1.0
	matched := false
	for _, f := range doc.fields {
		for _, v := range f.values {
			if len(v.text) == 0 {
				continue
			}
			ok, score := m.match(v.text)
			if !ok {
				continue
			}
			matched = true
			if score == 0 {
				score = epsilon
			}
			norm := 1.0
			if idx.opts.UseFieldNorm {
				norm = v.norm
			}
			total *= math.Pow(score, f.weight*norm)
		}
	}
	return total, matched
}

// epsilon stands in for a perfect score so it still ranks by field weight.
const epsilon = 2.220446049250313e-16
