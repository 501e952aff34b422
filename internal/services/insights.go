package services

import (
	"context"
	"sort"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/criteria"
	"github.com/tahcohcat/capsule-achievements/internal/models"
)

const (
	recentLimit      = 5
	nextClosestLimit = 5
)

type InsightsService struct {
	catalog Catalog
	stats   *StatsService
}

type Breakdown struct {
	Unlocked int `json:"unlocked"`
	Total    int `json:"total"`
}

type RecentUnlock struct {
	AchievementID string    `json:"achievement_id"`
	Title         string    `json:"title"`
	Icon          string    `json:"icon"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	Retroactive   bool      `json:"retroactive"`
}

type ProgressEntry struct {
	AchievementID string  `json:"achievement_id"`
	Title         string  `json:"title"`
	Current       float64 `json:"current"`
	Target        float64 `json:"target"`
	Percent       float64 `json:"percent"`
}

type Insights struct {
	UserID      string                        `json:"user_id"`
	Unlocked    int                           `json:"unlocked"`
	Total       int                           `json:"total"`
	Points      int                           `json:"points"`
	ByRarity    map[models.Rarity]Breakdown   `json:"by_rarity"`
	ByCategory  map[models.Category]Breakdown `json:"by_category"`
	Recent      []RecentUnlock                `json:"recent"`
	NextClosest []ProgressEntry               `json:"next_closest"`
}

// ForUser summarizes a user's unlocks. Next closest only ranks count
// criteria, the one kind with a measurable distance; hidden entries are
// never suggested.
func (i *InsightsService) ForUser(ctx context.Context, userID string) Insights {
	records := i.stats.GetUnlocks(ctx, userID)
	st := i.stats.GetUserStats(ctx, userID)
	held := unlockedIDs(records)

	out := Insights{
		UserID:      userID,
		ByRarity:    map[models.Rarity]Breakdown{},
		ByCategory:  map[models.Category]Breakdown{},
		Recent:      []RecentUnlock{},
		NextClosest: []ProgressEntry{},
	}

	for _, def := range i.catalog.All() {
		out.Total++
		r, c := out.ByRarity[def.Rarity], out.ByCategory[def.Category]
		r.Total++
		c.Total++
		if held[def.ID] {
			out.Unlocked++
			out.Points += def.Rewards.Points
			r.Unlocked++
			c.Unlocked++
		} else if !def.Hidden {
			if cur, target, pct, ok := criteria.Progress(def.UnlockCriteria, st); ok {
				out.NextClosest = append(out.NextClosest, ProgressEntry{
					AchievementID: def.ID,
					Title:         def.Title,
					Current:       cur,
					Target:        target,
					Percent:       pct,
				})
			}
		}
		out.ByRarity[def.Rarity], out.ByCategory[def.Category] = r, c
	}

	sort.SliceStable(out.NextClosest, func(a, b int) bool {
		return out.NextClosest[a].Percent > out.NextClosest[b].Percent
	})
	if len(out.NextClosest) > nextClosestLimit {
		out.NextClosest = out.NextClosest[:nextClosestLimit]
	}

	sorted := append([]models.UnlockRecord(nil), records...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].UnlockedAt.After(sorted[b].UnlockedAt)
	})
	for _, rec := range sorted {
		if len(out.Recent) == recentLimit {
			break
		}
		def, ok := i.catalog.Get(rec.AchievementID)
		if !ok {
			continue
		}
		out.Recent = append(out.Recent, RecentUnlock{
			AchievementID: def.ID,
			Title:         def.Title,
			Icon:          def.Icon,
			UnlockedAt:    rec.UnlockedAt,
			Retroactive:   rec.Retroactive,
		})
	}
	return out
}
