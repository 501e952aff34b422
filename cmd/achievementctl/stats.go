package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tahcohcat/capsule-achievements/internal/services"
)

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Print a user's statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeStats(cmd.Context(), cmd.OutOrStdout(), engine.Stats, args[0])
	},
}

func writeStats(ctx context.Context, w io.Writer, s *services.StatsService, userID string) error {
	output, err := json.MarshalIndent(s.GetUserStats(ctx, userID), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	fmt.Fprintln(w, string(output))
	return nil
}
