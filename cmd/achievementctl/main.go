// Package main provides achievementctl, the operator CLI for the
// achievement engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tahcohcat/capsule-achievements/config"
	"github.com/tahcohcat/capsule-achievements/internal/catalog"
	"github.com/tahcohcat/capsule-achievements/internal/database"
	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/services"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

var (
	// configDir is set by the --config-dir flag.
	configDir string

	db     *database.DB
	engine *services.Engine
	cat    = catalog.Load()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "achievementctl",
	Short: "Operate the achievement engine",
	Long: `achievementctl inspects and maintains achievement data: it runs
retroactive migrations, exports the catalog and reports rarity, stats and
titles for a user.`,
	SilenceUsage:      true,
	PersistentPreRunE: openEngine,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding config.yaml")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(rarityCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(titlesCmd)
}

// openEngine loads config and connects the engine to the configured database.
func openEngine(cmd *cobra.Command, args []string) error {
	// The catalog export needs no storage.
	if cmd.Name() == catalogCmd.Name() {
		return nil
	}

	cfg, err := config.LoadWith(viper.New(), configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetGlobalLevel(cfg.Log.Level)

	db, err = database.NewDB(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	st := store.New(db,
		store.WithReadTimeout(cfg.Store.ReadTimeout),
		store.WithRetries(cfg.Store.Retries),
	)
	engine = services.NewEngine(st, cat,
		services.WithShownRetention(cfg.Notifications.ShownRetention),
		services.WithActivityRetention(cfg.Activity.Retention),
	)
	return nil
}
