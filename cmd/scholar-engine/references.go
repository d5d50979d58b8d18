// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var referencesCmd = &cobra.Command{
	Use:   "references [paper-id]",
	Short: "List papers that cite a given paper",
	Long: `References returns the most cited papers citing the given paper. The
argument is a paper ID as reported by the search or paper subcommands.`,
	Args: cobra.ExactArgs(1),
	RunE: runReferences,
}

func runReferences(cmd *cobra.Command, args []string) error {
	paperID := args[0]
	count := countFlag(cmd)

	papers, err := newPipeline(cmd).References(context.Background(), paperID, count)
	if err != nil {
		return fmt.Errorf("references %q: %w", paperID, err)
	}
	return emitPapers(cmd, "references", paperID, count, papers)
}

func init() {
	addOutputFlags(referencesCmd)
	rootCmd.AddCommand(referencesCmd)
}
