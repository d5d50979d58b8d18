// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/scholar-engine/internal/pipeline"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [query]",
	Short: "Write a markdown reading list for a topic",
	Long: `Summarize searches a topic and writes the most cited papers as a
markdown reading list, one section per paper with its abstract. With
--out the list is written to a file instead of stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	count := countFlag(cmd)

	papers, err := newPipeline(cmd).Search(context.Background(), query, count)
	if err != nil {
		return fmt.Errorf("summarize %q: %w", query, err)
	}

	title := "Reading list: " + query
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		pipeline.FormatMarkdown(os.Stdout, title, papers)
		return nil
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()
	pipeline.FormatMarkdown(f, title, papers)
	fmt.Fprintln(os.Stderr, "Wrote summary to", out)
	return nil
}

func init() {
	summarizeCmd.Flags().Int("count", defaultCount, "maximum number of papers to include")
	summarizeCmd.Flags().String("out", "", "write the markdown summary to a file")
	rootCmd.AddCommand(summarizeCmd)
}
