package content

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/Bitlatte/quill/internal/model"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"
)

const defaultTitle = "Untitled"

// ParseError reports a source file whose frontmatter could not be turned
// into a valid post.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SlugFromPath derives a post slug from its source file name.
func SlugFromPath(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// ParsePost splits raw into frontmatter and body and normalizes the result.
// now is used when the frontmatter has no date.
func ParsePost(p string, raw []byte, now time.Time) (*model.Post, error) {
	var fm map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, &ParseError{Path: p, Err: err}
	}

	post := &model.Post{
		Slug:       SlugFromPath(p),
		Title:      defaultTitle,
		Date:       now,
		Tags:       []string{},
		Content:    string(body),
		SourcePath: p,
	}

	for key, value := range fm {
		if err := applyField(post, key, value); err != nil {
			return nil, &ParseError{Path: p, Err: err}
		}
	}
	return post, nil
}

func applyField(post *model.Post, key string, value any) error {
	if value == nil {
		return nil
	}
	switch key {
	case "title":
		s, err := scalarString(key, value)
		if err != nil {
			return err
		}
		if s != "" {
			post.Title = s
		}
	case "date":
		t, err := parseDate(value)
		if err != nil {
			return err
		}
		if !t.IsZero() {
			post.Date = t
		}
	case "tags":
		tags, err := parseTags(value)
		if err != nil {
			return err
		}
		post.Tags = tags
	case "excerpt":
		s, err := scalarString(key, value)
		if err != nil {
			return err
		}
		post.Excerpt = s
	case "cover":
		s, err := scalarString(key, value)
		if err != nil {
			return err
		}
		post.Cover = s
	case "draft":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		post.Draft = b
	default:
		if post.Extra == nil {
			post.Extra = make(map[string]any)
		}
		post.Extra[key] = normalizeValue(value)
	}
	return nil
}

func scalarString(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("field %q: expected a string, got %T", key, value)
	}
}

func parseDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return time.Time{}, nil
		}
		t, err := dateparse.ParseAny(strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, fmt.Errorf("field \"date\": %w", err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("field \"date\": expected a date, got %T", value)
	}
}

func parseTags(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return []string{}, nil
		}
		return []string{v}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, err := scalarString("tags", item)
			if err != nil {
				return nil, err
			}
			tags = append(tags, s)
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("field \"tags\": expected a list, got %T", value)
	}
}

func parseBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("field \"draft\": %w", err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("field \"draft\": expected a boolean, got %T", value)
	}
}

// normalizeValue turns YAML's map[interface{}]interface{} into
// map[string]any so extra metadata survives JSON encoding.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[fmt.Sprint(k)] = normalizeValue(item)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[k] = normalizeValue(item)
		}
		return m
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
