package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Bitlatte/quill/internal/logger"
	"github.com/Bitlatte/quill/internal/model"

	"github.com/hashicorp/go-multierror"
)

// Options control how a post set is loaded.
type Options struct {
	// DevMode keeps draft posts in the collection.
	DevMode bool
	// Now returns the date given to posts without one. Defaults to time.Now.
	Now func() time.Time
}

// Load reads every markdown file under fsys and returns the normalized,
// filtered and date-sorted collection. Files with malformed frontmatter are
// skipped and reported through Collection.Problems; only I/O failures make
// Load itself return an error.
func Load(fsys fs.FS, opts Options) (*Collection, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	loadedAt := now()

	var paths []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", p, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", err)
	}

	var problems *multierror.Error
	posts := make([]*model.Post, 0, len(paths))
	seen := make(map[string]int, len(paths))

	for _, p := range paths {
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read file '%s': %w", p, err)
		}

		post, err := ParsePost(p, raw, loadedAt)
		if err != nil {
			logger.WithPath(p).Warn("skipping post with malformed frontmatter", slog.Any("error", err))
			problems = multierror.Append(problems, err)
			continue
		}

		if idx, ok := seen[post.Slug]; ok {
			logger.WithPath(p).Warn("duplicate slug, replacing earlier post",
				slog.String("slug", post.Slug),
				slog.String("replaced", posts[idx].SourcePath),
			)
			posts[idx] = post
			continue
		}
		seen[post.Slug] = len(posts)
		posts = append(posts, post)
	}

	if !opts.DevMode {
		published := posts[:0]
		for _, post := range posts {
			if !post.Draft {
				published = append(published, post)
			}
		}
		posts = published
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	logger.Debug("posts loaded", slog.Int("count", len(posts)), slog.Bool("dev_mode", opts.DevMode))
	return newCollection(posts, problems.ErrorOrNil()), nil
}
