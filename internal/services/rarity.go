package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

// RarityService maintains the shared unlock counters. Updates are plain
// read-modify-write: concurrent cycles for different users can lose
// increments, so the figures are approximations.
type RarityService struct {
	store   *store.Adapter
	catalog Catalog
}

func NewRarityService(st *store.Adapter, cat Catalog) *RarityService {
	return &RarityService{store: st, catalog: cat}
}

// RarityPercent is count/total as a percentage rounded to one decimal and
// clamped to [0, 100]. A zero or negative total yields 0.
func RarityPercent(count, total int) float64 {
	if total <= 0 || count <= 0 {
		return 0
	}
	pct := math.Round(float64(count)/float64(total)*1000) / 10
	return math.Min(100, pct)
}

// Global returns the shared record, or an empty one.
func (r *RarityService) Global(ctx context.Context) models.GlobalStats {
	g, _ := store.Get(ctx, r.store, store.GlobalStatsKey, models.GlobalStats{})
	g.Normalize()
	return g
}

// RecordUnlocks counts one unlock of each id and bumps total_users once for
// the cycle, clamped to at least 1. Nothing is written when the record could
// not be read.
func (r *RarityService) RecordUnlocks(ctx context.Context, ids []string, now time.Time) {
	if len(ids) == 0 {
		return
	}
	g, ok := store.Get(ctx, r.store, store.GlobalStatsKey, models.GlobalStats{})
	if !ok {
		logger.New().Warn(fmt.Sprintf("global stats unavailable, %d unlock(s) not counted", len(ids)))
		return
	}
	g.Normalize()

	for _, id := range ids {
		g.UnlockCounts[id]++
		if _, seen := g.FirstUnlockTimes[id]; !seen {
			g.FirstUnlockTimes[id] = now
		}
	}
	g.TotalUsers = max(g.TotalUsers+1, 1)
	_ = r.store.Save(ctx, store.GlobalStatsKey, g)
}

// Percent returns the share of users holding id.
func (r *RarityService) Percent(ctx context.Context, id string) float64 {
	g := r.Global(ctx)
	return RarityPercent(g.UnlockCounts[id], g.TotalUsers)
}

// All returns the percentage for every catalog entry.
func (r *RarityService) All(ctx context.Context) map[string]float64 {
	g := r.Global(ctx)
	out := map[string]float64{}
	for _, def := range r.catalog.All() {
		out[def.ID] = RarityPercent(g.UnlockCounts[def.ID], g.TotalUsers)
	}
	return out
}
