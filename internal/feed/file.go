package feed

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Bitlatte/quill/internal/model"
)

// writeFile creates path (and its directory) and fills it with write.
func writeFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close '%s': %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}

// WriteRSSFile writes the RSS feed to path.
func WriteRSSFile(path string, posts []*model.Post, ch Channel, now time.Time) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteRSS(w, posts, ch, now)
	})
}

// WriteSitemapFile writes the sitemap to path.
func WriteSitemapFile(path string, posts []*model.Post, baseURL string, now time.Time) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteSitemap(w, posts, baseURL, now)
	})
}
