package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/site"
)

var postBuildCmd = &cobra.Command{
	Use:   "postbuild",
	Short: "Generates the RSS feed and sitemap and runs post-build scripts",
	Long: `The postbuild command loads the published posts (drafts are always
excluded), writes rss.xml and sitemap.xml into the output directory, then runs
each configured postbuild script in order. The first failing step stops the
pipeline and the command exits with a non-zero status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return site.RunPostBuild(cmd.Context(), appConfig)
	},
}

func init() {
	rootCmd.AddCommand(postBuildCmd)
}
