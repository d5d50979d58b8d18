// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/scholar-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Store

// rootCmd is the base command for the scholar-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-engine",
	Short: "Scholarly publication search with multi-source abstract enrichment",
	Long: `scholar-engine looks up scholarly publications: keyword search, author
profiles, citing papers, and single-paper detail. Results are ranked by
citation count, and truncated abstracts are enriched from Semantic Scholar,
Crossref, and Unpaywall.

Each lookup is a subcommand: search, profile, references, paper, and
summarize. Consecutive requests to the publication source are paced to keep
a polite interval.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-engine.yaml or ~/.config/scholar-engine/config.yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	rootCmd.PersistentFlags().Duration("delay", -1, "pause between consecutive source requests (default 1s)")
	rootCmd.PersistentFlags().String("user-agent", "", "User-Agent header for outgoing requests")
	rootCmd.PersistentFlags().String("s2-api-key", "", "Semantic Scholar API key (default: .secrets/semantic-scholar-api-key)")
	rootCmd.PersistentFlags().String("unpaywall-email", "", "contact email for Unpaywall requests (default: .secrets/unpaywall-email)")
	rootCmd.PersistentFlags().Bool("no-enrich", false, "skip the abstract enrichment chain")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-engine"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
