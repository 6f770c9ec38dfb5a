// cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/logger"
	"github.com/Bitlatte/quill/internal/site"
)

var serverPort int
var serveDrafts bool

const debounceDuration = 500 * time.Millisecond

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the blog locally and rebuilds on changes",
	Long: `The serve command builds the blog (drafts included by default), serves the
output directory together with a JSON search API under /api/search and
/api/suggest, and watches the content and static directories, rebuilding
whenever something changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		srv, err := rebuild(ctx, nil)
		if err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		go watchForChanges(ctx, watcher, srv)

		for _, rootPath := range []string{appConfig.ContentDir, appConfig.StaticDir} {
			addWatchTree(watcher, rootPath)
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		logger.Info("serving site",
			slog.String("dir", appConfig.OutputDir),
			slog.String("url", "http://localhost"+serverAddr),
		)

		if err := http.ListenAndServe(serverAddr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	},
}

// buildMu keeps debounced rebuilds from writing the output directory at the
// same time.
var buildMu sync.Mutex

// rebuild runs a full build and points srv (created when nil) at the fresh
// search index.
func rebuild(ctx context.Context, srv *site.Server) (*site.Server, error) {
	buildMu.Lock()
	defer buildMu.Unlock()

	posts, err := site.Build(appConfig, appConfig.DevMode || serveDrafts)
	if err != nil {
		return srv, err
	}
	if err := site.RunPostBuild(ctx, appConfig); err != nil {
		logger.Warn("post-build steps failed during preview", slog.Any("error", err))
	}

	idx := site.NewIndex(appConfig, posts)
	if srv == nil {
		return site.NewServer(appConfig.OutputDir, idx), nil
	}
	srv.SetIndex(idx)
	return srv, nil
}

func watchForChanges(ctx context.Context, watcher *fsnotify.Watcher, srv *site.Server) {
	var (
		mu         sync.Mutex
		buildTimer *time.Timer
	)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Info("change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn("failed to watch new directory", slog.String("dir", event.Name), slog.Any("error", err))
				}
			}

			mu.Lock()
			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, func() {
				logger.Info("rebuilding site due to changes")
				if _, err := rebuild(ctx, srv); err != nil {
					logger.Error("rebuild failed", slog.Any("error", err))
					return
				}
				logger.Info("site rebuilt")
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// addWatchTree watches root and every directory below it.
func addWatchTree(watcher *fsnotify.Watcher, root string) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		logger.Debug("directory not found, not watching", slog.String("dir", root))
		return
	}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("error walking directory", slog.String("path", path), slog.Any("error", err))
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				logger.Warn("failed to watch directory", slog.String("dir", path), slog.Any("error", err))
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("error setting up watches", slog.String("dir", root), slog.Any("error", err))
	}
}

// Helper function to check if a path is a directory
func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	serveCmd.Flags().BoolVar(&serveDrafts, "drafts", true, "Include draft posts while previewing")
	rootCmd.AddCommand(serveCmd)
}
