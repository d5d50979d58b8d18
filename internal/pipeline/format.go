// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/scholar-engine/pkg/types"
)

// FormatTable writes papers as a fixed-width text table.
func FormatTable(w io.Writer, papers []types.Paper) {
	fmt.Fprintf(w, "%-4s  %-50s  %-30s  %-6s  %8s\n",
		"Rank", "Title", "Authors", "Year", "Cited by")
	fmt.Fprintln(w, strings.Repeat("-", 106))
	for i, p := range papers {
		fmt.Fprintf(w, "%-4d  %-50s  %-30s  %-6s  %8d\n",
			i+1, truncate(p.Title, 50), truncate(p.Authors, 30), p.Year, p.Citations)
	}
}

// FormatJSON writes papers as an indented JSON array.
func FormatJSON(w io.Writer, papers []types.Paper) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

// FormatMarkdown writes papers as a markdown reading list, one section per
// paper with its abstract underneath.
func FormatMarkdown(w io.Writer, title string, papers []types.Paper) {
	fmt.Fprintf(w, "# %s\n\n", title)
	for i, p := range papers {
		fmt.Fprintf(w, "## %d. %s\n\n", i+1, p.Title)
		fmt.Fprintf(w, "- Authors: %s\n", p.Authors)
		fmt.Fprintf(w, "- Year: %s\n", p.Year)
		if p.Venue != "" {
			fmt.Fprintf(w, "- Venue: %s\n", p.Venue)
		}
		fmt.Fprintf(w, "- Citations: %d\n", p.Citations)
		if p.URL != "" {
			fmt.Fprintf(w, "- Link: %s\n", p.URL)
		}
		fmt.Fprintf(w, "\n%s\n\n", p.Abstract)
	}
}

// ResultFile is the on-disk representation of a lookup and its results. A
// result set can be saved and reloaded later without re-querying.
type ResultFile struct {
	Query   ResultQuery   `yaml:"query"`
	Results []types.Paper `yaml:"results"`
	Summary ResultSummary `yaml:"summary"`
}

// ResultQuery records what was asked for.
type ResultQuery struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
	Count int    `yaml:"count"`
}

// ResultSummary records result statistics and a timestamp.
type ResultSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a lookup and its results to a YAML file.
func WriteResultFile(path, kind, value string, count int, papers []types.Paper) error {
	rf := ResultFile{
		Query:   ResultQuery{Kind: kind, Value: value, Count: count},
		Results: papers,
		Summary: ResultSummary{Total: len(papers), Timestamp: time.Now()},
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
