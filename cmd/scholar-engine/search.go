// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search publications by keyword, ranked by citations",
	Long: `Search runs a keyword query against the publication source and returns
the most cited matches. Truncated abstracts are enriched from Semantic
Scholar, Crossref, and Unpaywall when a longer version is available.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	count := countFlag(cmd)

	papers, err := newPipeline(cmd).Search(context.Background(), query, count)
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}
	return emitPapers(cmd, "search", query, count, papers)
}

func init() {
	addOutputFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
