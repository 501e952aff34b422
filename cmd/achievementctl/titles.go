package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tahcohcat/capsule-achievements/internal/services"
)

var titlesCmd = &cobra.Command{
	Use:   "titles <user-id>",
	Short: "List the titles a user holds and can earn",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeTitles(cmd.Context(), cmd.OutOrStdout(), engine.Titles, args[0])
	},
}

func writeTitles(ctx context.Context, w io.Writer, t *services.TitleService, userID string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tTITLE\tACHIEVEMENT\tRARITY\tSTATUS")
	for _, title := range t.ListAvailable(ctx, userID) {
		marker, status := "", "locked"
		switch {
		case title.Equipped:
			marker, status = "*", "equipped"
		case title.Unlocked:
			status = "unlocked"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, title.Title, title.AchievementID, title.Rarity, status)
	}
	return tw.Flush()
}
