// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/scholar-engine/internal/enrich"
	"github.com/meshintel/scholar-engine/internal/pipeline"
	"github.com/meshintel/scholar-engine/internal/scholar"
	"github.com/meshintel/scholar-engine/pkg/types"
)

const (
	defaultCount  = 5
	defaultDelay  = time.Second
	defaultUA     = "scholar-engine/0.1"
	s2KeyName     = "semantic-scholar-api-key"
	unpaywallName = "unpaywall-email"
)

// scholarConfig assembles the source and orchestrator settings from flags,
// the config file, and built-in defaults, in that order of precedence.
func scholarConfig(cmd *cobra.Command) types.ScholarConfig {
	cfg := types.ScholarConfig{
		MaxResults:      viper.GetInt("scholar.max_results"),
		PacingDelay:     defaultDelay,
		OverfetchFactor: viper.GetInt("scholar.overfetch_factor"),
	}
	cfg.Timeout = scholar.DefaultTimeout
	cfg.UserAgent = defaultUA

	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultCount
	}
	if v := viper.GetDuration("scholar.pacing_delay"); v > 0 {
		cfg.PacingDelay = v
	}
	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.UserAgent = v
	}

	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := cmd.Flags().GetDuration("delay"); v >= 0 {
		cfg.PacingDelay = v
	}
	if v, _ := cmd.Flags().GetString("user-agent"); v != "" {
		cfg.UserAgent = v
	}
	return cfg
}

// enrichConfig assembles the enrichment chain settings. API credentials come
// from flags when given, from .secrets/ otherwise.
func enrichConfig(cmd *cobra.Command, base types.ScholarConfig) types.EnrichConfig {
	cfg := types.EnrichConfig{
		ProviderTimeout: viper.GetDuration("enrich.provider_timeout"),
	}
	cfg.HTTPConfig = base.HTTPConfig

	key, _ := cmd.Flags().GetString("s2-api-key")
	cfg.SemanticScholarAPIKey = loadedSecrets.Get(s2KeyName, key)
	email, _ := cmd.Flags().GetString("unpaywall-email")
	cfg.UnpaywallEmail = loadedSecrets.Get(unpaywallName, email)
	return cfg
}

// newPipeline builds the full lookup pipeline from command flags.
func newPipeline(cmd *cobra.Command) *pipeline.Pipeline {
	cfg := scholarConfig(cmd)

	client := scholar.NewClient(
		scholar.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		scholar.WithUserAgent(cfg.UserAgent),
	)

	var chain *enrich.Chain
	if noEnrich, _ := cmd.Flags().GetBool("no-enrich"); !noEnrich {
		ecfg := enrichConfig(cmd, cfg)
		chain = enrich.NewDefaultChain(&http.Client{Timeout: cfg.Timeout}, ecfg, os.Stderr)
	}

	return pipeline.New(client, chain, cfg, os.Stderr)
}

// countFlag reads the shared --count flag. When the flag is not given the
// config file's max_results applies, then the built-in default.
func countFlag(cmd *cobra.Command) int {
	count, _ := cmd.Flags().GetInt("count")
	if !cmd.Flags().Changed("count") {
		if v := viper.GetInt("scholar.max_results"); v > 0 {
			count = v
		}
	}
	if count <= 0 {
		count = defaultCount
	}
	return count
}

// emitPapers renders papers to stdout and optionally saves them to a YAML
// result file.
func emitPapers(cmd *cobra.Command, kind, value string, count int, papers []types.Paper) error {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := pipeline.WriteResultFile(out, kind, value, count, papers); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved results to", out)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return pipeline.FormatJSON(os.Stdout, papers)
	}
	if len(papers) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	pipeline.FormatTable(os.Stdout, papers)
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(papers))
	return nil
}

// addOutputFlags registers the flags shared by every lookup subcommand.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Int("count", defaultCount, "maximum number of papers to return")
	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().String("out", "", "save results to a YAML file")
}
