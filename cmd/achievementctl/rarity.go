package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tahcohcat/capsule-achievements/internal/catalog"
	"github.com/tahcohcat/capsule-achievements/internal/services"
)

var rarityCmd = &cobra.Command{
	Use:   "rarity [achievement-id]",
	Short: "Show the share of users holding achievements",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return writeRarity(cmd.Context(), cmd.OutOrStdout(), engine.Rarity, cat, id)
	},
}

func writeRarity(ctx context.Context, w io.Writer, r *services.RarityService, c *catalog.Catalog, id string) error {
	if id != "" {
		def, ok := c.Get(id)
		if !ok {
			if s := c.Suggest(id); s != "" {
				return fmt.Errorf("unknown achievement %q (did you mean %q?)", id, s)
			}
			return fmt.Errorf("unknown achievement %q", id)
		}
		fmt.Fprintf(w, "%-28s %5.1f%%\n", def.ID, r.Percent(ctx, def.ID))
		return nil
	}

	global := r.Global(ctx)
	percent := r.All(ctx)
	defs := c.All()
	sort.SliceStable(defs, func(i, j int) bool {
		return percent[defs[i].ID] > percent[defs[j].ID]
	})

	fmt.Fprintf(w, "%d users\n", global.TotalUsers)
	for _, d := range defs {
		fmt.Fprintf(w, "%-28s %5.1f%%  %d\n", d.ID, percent[d.ID], global.UnlockCounts[d.ID])
	}
	return nil
}
