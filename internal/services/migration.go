package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

// MigrationService grants achievements earned by stats recorded before the
// achievement existed.
type MigrationService struct {
	store         *store.Adapter
	catalog       Catalog
	ledger        *ledger
	notifications *NotificationService
	locks         *userLocks
	now           func() time.Time
}

type MigrationResult struct {
	UserID  string                         `json:"user_id"`
	Granted []models.AchievementDefinition `json:"granted"`
	Notice  *models.CatchUpNotice          `json:"notice,omitempty"`
}

// RunFor replays the user's current stats against the catalog. Grants are
// marked retroactive and announced in one catch-up notice. Passes repeat
// until nothing new qualifies, so a second run right after finds nothing.
func (m *MigrationService) RunFor(ctx context.Context, userID string) (res MigrationResult, err error) {
	res = MigrationResult{UserID: userID, Granted: []models.AchievementDefinition{}}
	defer func() {
		if r := recover(); r != nil {
			logger.New().Error(fmt.Sprintf("migration for %s failed: %v", userID, r))
			res, err = MigrationResult{UserID: userID, Granted: []models.AchievementDefinition{}}, fmt.Errorf("migration for %s: %v", userID, r)
		}
	}()

	unlock := m.locks.lock(userID)
	defer unlock()

	records, ok := store.Get(ctx, m.store, store.UnlocksKey(userID), []models.UnlockRecord{})
	if !ok {
		return res, ErrStoreUnavailable
	}
	st, ok := store.Get[*models.UserStats](ctx, m.store, store.StatsKey(userID), nil)
	if !ok {
		return res, ErrStoreUnavailable
	}
	if st == nil {
		st = models.NewUserStats(userID)
	}
	st.UserID = userID
	st.Normalize()

	meta := models.Metadata{"retroactive": true}
	var grantedIDs []string
	for pass := 0; pass < len(m.catalog.All()); pass++ {
		g := &grant{
			userID:      userID,
			records:     records,
			stats:       st,
			defs:        m.ledger.eligible(records, st, models.ActionRetroactiveCheck, meta),
			action:      models.ActionRetroactiveCheck,
			meta:        meta,
			retroactive: true,
			deferRarity: true,
		}
		granted := m.ledger.commit(ctx, g)
		if len(granted) == 0 {
			break
		}
		records, st = g.records, g.stats
		res.Granted = append(res.Granted, granted...)
		for _, def := range granted {
			grantedIDs = append(grantedIDs, def.ID)
		}
	}

	now := m.now()
	if len(res.Granted) > 0 {
		m.ledger.rarity.RecordUnlocks(ctx, grantedIDs, now)
		notice := newCatchUpNotice(res.Granted, now)
		if err := m.notifications.addCatchUp(ctx, userID, notice); err != nil {
			logger.New().WithError(err).Warn(fmt.Sprintf("storing catch-up notice for %s", userID))
		}
		res.Notice = &notice
	}

	marker, _ := store.Get(ctx, m.store, store.MigrationKey(userID), models.MigrationMarker{})
	marker.LastRunAt = now
	marker.Runs++
	marker.Granted += len(res.Granted)
	_ = m.store.Save(ctx, store.MigrationKey(userID), marker)

	return res, nil
}

// Status returns the user's migration marker and whether one exists.
func (m *MigrationService) Status(ctx context.Context, userID string) (models.MigrationMarker, bool) {
	marker, _ := store.Get(ctx, m.store, store.MigrationKey(userID), models.MigrationMarker{})
	return marker, marker.Runs > 0
}

func newCatchUpNotice(granted []models.AchievementDefinition, now time.Time) models.CatchUpNotice {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	notice := models.CatchUpNotice{
		ID:             id.String(),
		AchievementIDs: make([]string, 0, len(granted)),
		Count:          len(granted),
		CreatedAt:      now,
	}
	for _, def := range granted {
		notice.AchievementIDs = append(notice.AchievementIDs, def.ID)
		notice.Points += def.Rewards.Points
	}
	return notice
}
