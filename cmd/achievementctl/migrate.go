package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tahcohcat/capsule-achievements/internal/services"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

var (
	migrateUsersFlag []string
	migrateAllFlag   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Grant achievements retroactively",
	Long: `Migrate replays each user's stored statistics against the catalog and
grants every achievement already earned. Grants are marked retroactive and
announced to the user in one catch-up notice. Running it twice is harmless.

Example:
  achievementctl migrate --user u1 --user u2
  achievementctl migrate --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users := migrateUsersFlag
		if migrateAllFlag {
			keys, err := db.Keys(cmd.Context(), store.StatsKey(""))
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			users = usersFromKeys(keys)
		}
		if len(users) == 0 {
			return errors.New("no users given (use --user or --all)")
		}
		return migrateUsers(cmd.Context(), cmd.OutOrStdout(), engine.Migration, users)
	},
}

func init() {
	migrateCmd.Flags().StringSliceVar(&migrateUsersFlag, "user", nil, "user id to migrate (repeatable)")
	migrateCmd.Flags().BoolVar(&migrateAllFlag, "all", false, "migrate every user with stored stats")
}

func usersFromKeys(keys []string) []string {
	prefix := store.StatsKey("")
	users := make([]string, 0, len(keys))
	for _, k := range keys {
		if id := strings.TrimPrefix(k, prefix); id != "" && id != k {
			users = append(users, id)
		}
	}
	return users
}

// migrateUsers runs the migration for each user, reporting as it goes. It
// keeps going past failures and returns an error naming how many failed.
func migrateUsers(ctx context.Context, w io.Writer, m *services.MigrationService, users []string) error {
	failed, granted := 0, 0
	for _, u := range users {
		res, err := m.RunFor(ctx, u)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%-24s failed: %v\n", u, err)
			continue
		}
		ids := make([]string, 0, len(res.Granted))
		for _, d := range res.Granted {
			ids = append(ids, d.ID)
		}
		granted += len(ids)
		if len(ids) == 0 {
			fmt.Fprintf(w, "%-24s up to date\n", u)
			continue
		}
		fmt.Fprintf(w, "%-24s granted %d: %s\n", u, len(ids), strings.Join(ids, ", "))
	}
	fmt.Fprintf(w, "%d users, %d achievements granted\n", len(users), granted)
	if failed > 0 {
		return fmt.Errorf("%d of %d migrations failed", failed, len(users))
	}
	return nil
}
