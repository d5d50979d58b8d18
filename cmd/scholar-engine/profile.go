// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/scholar-engine/internal/scholar"
)

var profileCmd = &cobra.Command{
	Use:   "profile [profile-id-or-url]",
	Short: "List an author's most cited publications",
	Long: `Profile looks up an author profile and returns their most cited
publications. The argument is either a bare profile ID or a full profile
URL containing a user= parameter.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	profileID := args[0]
	if strings.Contains(profileID, "/") || strings.Contains(profileID, "=") {
		profileID = scholar.ExtractProfileID(profileID)
		if profileID == "" {
			return fmt.Errorf("no user= parameter in %q", args[0])
		}
	}
	count := countFlag(cmd)

	papers, err := newPipeline(cmd).Profile(context.Background(), profileID, count)
	if err != nil {
		return fmt.Errorf("profile %q: %w", profileID, err)
	}
	return emitPapers(cmd, "profile", profileID, count, papers)
}

func init() {
	addOutputFlags(profileCmd)
	rootCmd.AddCommand(profileCmd)
}
