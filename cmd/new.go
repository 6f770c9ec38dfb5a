package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/content"
	"github.com/Bitlatte/quill/internal/logger"
)

var newCmd = &cobra.Command{
	Use:   "new <slug>",
	Short: "Creates a new draft post",
	Long: `The new command writes <contentDir>/<slug>.md with frontmatter for a draft
post dated today. It never overwrites an existing file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]
		src, err := content.Scaffold(slug, time.Now())
		if err != nil {
			return err
		}

		if err := os.MkdirAll(appConfig.ContentDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create content directory '%s': %w", appConfig.ContentDir, err)
		}
		path := filepath.Join(appConfig.ContentDir, slug+".md")

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("post '%s' already exists", path)
			}
			return fmt.Errorf("failed to create '%s': %w", path, err)
		}
		defer f.Close()

		if _, err := f.Write(src); err != nil {
			return fmt.Errorf("failed to write '%s': %w", path, err)
		}
		logger.Info("created draft post", slog.String("path", path))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
