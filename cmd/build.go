package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/site"
)

var buildDrafts bool
var skipPostBuild bool

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the blog data, static assets, RSS feed and sitemap",
	Long: `The build command loads every Markdown post from the content directory,
renders it to sanitized HTML, writes posts.json, tags.json and one JSON file per
post into the output directory, copies static assets, and finally runs the
post-build steps (RSS feed, sitemap and any configured scripts).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devMode := appConfig.DevMode || buildDrafts
		if _, err := site.Build(appConfig, devMode); err != nil {
			return err
		}
		if skipPostBuild {
			return nil
		}
		return site.RunPostBuild(cmd.Context(), appConfig)
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildDrafts, "drafts", false, "Include draft posts in the generated data")
	buildCmd.Flags().BoolVar(&skipPostBuild, "skip-postbuild", false, "Do not generate feeds or run post-build scripts")
	rootCmd.AddCommand(buildCmd)
}
