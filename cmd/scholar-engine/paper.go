// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/scholar-engine/pkg/types"
)

var paperCmd = &cobra.Command{
	Use:   "paper [paper-id]",
	Short: "Show full metadata for a single paper",
	Long: `Paper fetches the detail page for one paper and prints its full
metadata, including the enriched abstract when one is available.`,
	Args: cobra.ExactArgs(1),
	RunE: runPaper,
}

func runPaper(cmd *cobra.Command, args []string) error {
	paperID := args[0]

	paper, err := newPipeline(cmd).PaperDetail(context.Background(), paperID)
	if err != nil {
		return fmt.Errorf("paper %q: %w", paperID, err)
	}
	if paper == nil {
		return fmt.Errorf("no paper found for ID %q", paperID)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(paper)
	}
	printPaper(paper)
	return nil
}

func printPaper(p *types.Paper) {
	fmt.Println("Title:    ", p.Title)
	fmt.Println("Authors:  ", p.Authors)
	fmt.Println("Year:     ", p.Year)
	if p.Venue != "" {
		fmt.Println("Venue:    ", p.Venue)
	}
	fmt.Println("Citations:", p.Citations)
	if p.DOI != "" {
		fmt.Println("DOI:      ", p.DOI)
	}
	if p.URL != "" {
		fmt.Println("URL:      ", p.URL)
	}
	if p.CitationURL != "" {
		fmt.Println("Cited by: ", p.CitationURL)
	}
	fmt.Println()
	fmt.Println(p.Abstract)
	if p.AbstractSource != "" {
		fmt.Println()
		fmt.Println("Abstract via", p.AbstractSource)
	}
}

func init() {
	paperCmd.Flags().Bool("json", false, "output the paper as JSON")
	rootCmd.AddCommand(paperCmd)
}
