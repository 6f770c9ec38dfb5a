// Package site turns a content directory into the build output: static
// assets, rendered post data for the client app, and the post-build feeds.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/shlex"

	"github.com/Bitlatte/quill/internal/config"
	"github.com/Bitlatte/quill/internal/content"
	"github.com/Bitlatte/quill/internal/feed"
	"github.com/Bitlatte/quill/internal/logger"
	"github.com/Bitlatte/quill/internal/markdown"
	"github.com/Bitlatte/quill/internal/model"
	"github.com/Bitlatte/quill/internal/postbuild"
	"github.com/Bitlatte/quill/internal/search"
)

// LoadPosts loads the content directory. Skipped files are logged; they do
// not fail the load.
func LoadPosts(cfg config.Config, devMode bool) (*content.Collection, error) {
	if _, err := os.Stat(cfg.ContentDir); err != nil {
		return nil, fmt.Errorf("content directory '%s' not found: %w", cfg.ContentDir, err)
	}
	posts, err := content.Load(os.DirFS(cfg.ContentDir), content.Options{DevMode: devMode})
	if err != nil {
		return nil, err
	}
	if problems := posts.Problems(); problems != nil {
		logger.Warn("some posts were skipped", slog.String("problems", problems.Error()))
	}
	logger.Info("posts loaded",
		slog.String("dir", cfg.ContentDir),
		slog.Int("count", posts.Len()),
		slog.Bool("drafts", devMode),
	)
	return posts, nil
}

// NewIndex builds a search index over posts using the configured tuning.
func NewIndex(cfg config.Config, posts *content.Collection) *search.Index {
	opts := search.DefaultOptions()
	opts.Threshold = cfg.Search.Threshold
	opts.Distance = cfg.Search.Distance
	return search.New(posts.All(), opts)
}

// RecentPostsLimit is how many other posts each post page lists.
const RecentPostsLimit = 5

type postPage struct {
	*model.Post
	HTML   string        `json:"html"`
	Recent []*model.Post `json:"recent"`
}

type tagPage struct {
	Tag   string        `json:"tag"`
	Posts []*model.Post `json:"posts"`
}

// Build cleans the output directory, copies static assets, writes the post
// data consumed by the client app and returns the loaded collection.
func Build(cfg config.Config, devMode bool) (*content.Collection, error) {
	logger.Info("starting build",
		slog.String("output", cfg.OutputDir),
		slog.String("base_url", cfg.BaseURL),
	)

	posts, err := LoadPosts(cfg, devMode)
	if err != nil {
		return nil, err
	}

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to remove output directory '%s': %w", cfg.OutputDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", cfg.OutputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		n, err := copyStatic(cfg.StaticDir, cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to copy static assets: %w", err)
		}
		logger.Info("static assets copied", slog.String("from", cfg.StaticDir), slog.Int("files", n))
	} else {
		logger.Debug("no static directory, skipping copy", slog.String("dir", cfg.StaticDir))
	}

	if err := writePostData(cfg.OutputDir, cfg.PerPage, posts); err != nil {
		return nil, err
	}

	logger.Info("build completed", slog.Int("posts", posts.Len()))
	return posts, nil
}

// writePostData writes the listing, one file per listing page, tag counts,
// one file per tag and one rendered file per post.
func writePostData(outputDir string, perPage int, posts *content.Collection) error {
	renderer := markdown.NewRenderer()

	if err := writeJSON(filepath.Join(outputDir, "posts.json"), posts.All()); err != nil {
		return err
	}

	first := posts.Paginate(1, perPage)
	for n := 1; n == 1 || n <= first.TotalPages; n++ {
		path := filepath.Join(outputDir, "pages", strconv.Itoa(n)+".json")
		if err := writeJSON(path, posts.Paginate(n, perPage)); err != nil {
			return err
		}
	}

	tags := posts.Tags()
	if err := writeJSON(filepath.Join(outputDir, "tags.json"), tags); err != nil {
		return err
	}
	for _, tc := range tags {
		path := filepath.Join(outputDir, "tags", TagFileName(tc.Tag))
		if err := writeJSON(path, tagPage{Tag: tc.Tag, Posts: posts.ByTag(tc.Tag)}); err != nil {
			return err
		}
	}

	for _, p := range posts.All() {
		html, err := renderer.Render(p.Content)
		if err != nil {
			return fmt.Errorf("failed to render post '%s': %w", p.Slug, err)
		}
		path := filepath.Join(outputDir, "posts", p.Slug+".json")
		page := postPage{Post: p, HTML: html, Recent: posts.Recent(p.Slug, RecentPostsLimit)}
		if err := writeJSON(path, page); err != nil {
			return err
		}
		logger.Debug("post rendered", slog.String("slug", p.Slug))
	}
	return nil
}

// TagFileName is the file under tags/ holding the posts for tag.
func TagFileName(tag string) string {
	return url.PathEscape(tag) + ".json"
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode '%s': %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}

// PostBuildSteps returns the RSS step, the sitemap step and one step per
// configured script, in that order. Scripts are split with shell quoting
// rules; a script that cannot be split becomes a step that fails with the
// parse error. posts must be a production load.
func PostBuildSteps(cfg config.Config, posts *content.Collection, now time.Time) []postbuild.Step {
	channel := feed.Channel{
		Title:       cfg.SiteTitle,
		Description: cfg.SiteDescription,
		BaseURL:     cfg.BaseURL,
		Language:    cfg.Language,
	}
	steps := []postbuild.Step{
		postbuild.Func{StepName: "rss", Fn: func(context.Context) error {
			return feed.WriteRSSFile(filepath.Join(cfg.OutputDir, "rss.xml"), posts.All(), channel, now)
		}},
		postbuild.Func{StepName: "sitemap", Fn: func(context.Context) error {
			return feed.WriteSitemapFile(filepath.Join(cfg.OutputDir, "sitemap.xml"), posts.All(), cfg.BaseURL, now)
		}},
	}
	for _, script := range cfg.PostBuild.Scripts {
		argv, err := shlex.Split(script)
		if err != nil {
			splitErr := fmt.Errorf("invalid script %q: %w", script, err)
			steps = append(steps, postbuild.Func{StepName: script, Fn: func(context.Context) error {
				return splitErr
			}})
			continue
		}
		if len(argv) == 0 {
			continue
		}
		steps = append(steps, postbuild.Command{Path: argv[0], Args: argv[1:]})
	}
	return steps
}

// RunPostBuild loads the published posts and runs every post-build step.
// Drafts never reach the public feeds, whatever mode the build ran in.
func RunPostBuild(ctx context.Context, cfg config.Config) error {
	posts, err := LoadPosts(cfg, false)
	if err != nil {
		return err
	}
	return postbuild.Run(ctx, PostBuildSteps(cfg, posts, time.Now())...)
}
