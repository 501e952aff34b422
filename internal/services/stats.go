package services

import (
	"context"

	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

// StatsService reads per-user stats and unlock records.
type StatsService struct {
	store *store.Adapter
}

func NewStatsService(st *store.Adapter) *StatsService {
	return &StatsService{store: st}
}

// load returns the user's stats, normalized. ok is false when the read
// failed and the returned record is a fresh default.
func (s *StatsService) load(ctx context.Context, userID string) (*models.UserStats, bool) {
	st, ok := store.Get[*models.UserStats](ctx, s.store, store.StatsKey(userID), nil)
	if st == nil {
		st = models.NewUserStats(userID)
	}
	st.UserID = userID
	st.Normalize()
	return st, ok
}

// GetUserStats returns the stored stats, or a fresh record when there are
// none or the store is unavailable.
func (s *StatsService) GetUserStats(ctx context.Context, userID string) *models.UserStats {
	st, _ := s.load(ctx, userID)
	return st
}

// GetUnlocks returns the user's unlock records, deduplicated.
func (s *StatsService) GetUnlocks(ctx context.Context, userID string) []models.UnlockRecord {
	records, _ := store.Get(ctx, s.store, store.UnlocksKey(userID), []models.UnlockRecord{})
	return DedupeRecords(records)
}
