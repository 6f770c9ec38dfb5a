package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/quill/internal/site"
)

var searchLimit int
var searchSuggest bool
var searchDrafts bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches posts with fuzzy matching",
	Long: `The search command runs the same fuzzy, field-weighted search the blog
uses and prints matching posts with their relevance. With --suggest it prints
title and tag suggestions for a partial query instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		posts, err := site.LoadPosts(appConfig, appConfig.DevMode || searchDrafts)
		if err != nil {
			return err
		}
		idx := site.NewIndex(appConfig, posts)
		out := cmd.OutOrStdout()

		if searchSuggest {
			for _, s := range idx.Suggestions(query, searchLimit) {
				fmt.Fprintln(out, s)
			}
			return nil
		}

		results := idx.Search(query, searchLimit)
		if len(results) == 0 {
			fmt.Fprintf(out, "No posts match %q.\n", query)
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "%5.1f%%  %-30s  %s\n", r.Relevance, r.Post.Slug, r.Post.Title)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum number of results")
	searchCmd.Flags().BoolVar(&searchSuggest, "suggest", false, "Print suggestions instead of results")
	searchCmd.Flags().BoolVar(&searchDrafts, "drafts", false, "Include draft posts")
	rootCmd.AddCommand(searchCmd)
}
