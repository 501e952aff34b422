package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

var catalogFormat string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Export the achievement catalog",
	Long: `Catalog prints every achievement definition with its unlock criteria.

Example:
  achievementctl catalog --format yaml > catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCatalog(cmd.OutOrStdout(), cat.All(), catalogFormat)
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "yaml", "output format: yaml or json")
}

type catalogEntry struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Category    string         `json:"category" yaml:"category"`
	Rarity      string         `json:"rarity" yaml:"rarity"`
	Icon        string         `json:"icon" yaml:"icon"`
	Points      int            `json:"points" yaml:"points"`
	Reward      string         `json:"title_reward,omitempty" yaml:"title_reward,omitempty"`
	Hidden      bool           `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Criteria    map[string]any `json:"criteria" yaml:"criteria"`
}

func writeCatalog(w io.Writer, defs []models.AchievementDefinition, format string) error {
	entries := make([]catalogEntry, 0, len(defs))
	for _, d := range defs {
		entries = append(entries, catalogEntry{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Category:    string(d.Category),
			Rarity:      string(d.Rarity),
			Icon:        d.Icon,
			Points:      d.Rewards.Points,
			Reward:      d.Rewards.Title,
			Hidden:      d.Hidden,
			Criteria:    models.CriteriaDescriptor(d.UnlockCriteria),
		})
	}

	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unknown format %q (valid: yaml, json)", format)
	}
}
