package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/config"
	"github.com/Bitlatte/quill/internal/logger"
)

var cfgFile string
var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill - a markdown blog builder",
	Long: `Quill loads markdown posts with YAML frontmatter, renders them for a
client-side blog app, searches them, and generates the RSS feed and sitemap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(_ *cobra.Command) error {
	cfg, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	logger.SetLogger(logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	if used != "" {
		logger.Debug("using config file", slog.String("file", used))
	} else {
		logger.Debug("no config file found, using defaults and environment")
	}
	return nil
}
