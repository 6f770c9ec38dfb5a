package site

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bitlatte/quill/internal/logger"
)

// copyStatic mirrors the static directory into the output root, where the
// client app expects its assets. Dotfiles and dot directories (.gitkeep,
// .DS_Store, .git) are not published. Generated post data is written after
// this, so it wins over a static file of the same name.
func copyStatic(staticDir, outputDir string) (int, error) {
	copied := 0
	err := filepath.WalkDir(staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return fmt.Errorf("failed to resolve static path %s: %w", path, err)
		}
		if rel != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(outputDir, rel)
		if d.IsDir() {
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create asset directory %s: %w", target, err)
			}
			return nil
		}
		if err := copyAsset(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}

// copyAsset writes one static file to target with the source's mode bits.
func copyAsset(src, target string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open asset %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat asset %s: %w", src, err)
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create asset %s: %w", target, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close asset %s: %w", target, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy asset %s to %s: %w", src, target, err)
	}
	logger.Debug("asset copied", slog.String("path", target))
	return nil
}
