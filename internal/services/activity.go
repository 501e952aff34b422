package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

const (
	ActivityAchievementUnlocked    = "achievement_unlocked"
	ActivityAchievementRetroactive = "achievement_retroactive"
	ActivityTitleEquipped          = "title_equipped"
	ActivityTitleUnequipped        = "title_unequipped"
)

// ActivityLog keeps a bounded, newest-first feed of analytics events per user.
type ActivityLog struct {
	store     *store.Adapter
	now       func() time.Time
	retention int
}

func NewActivityLog(st *store.Adapter, now func() time.Time, retention int) *ActivityLog {
	if retention <= 0 {
		retention = DefaultActivityRetention
	}
	return &ActivityLog{store: st, now: now, retention: retention}
}

// RecordActivity adds a new activity entry for the user. An unreadable feed
// is left alone rather than replaced by a one-entry list.
func (a *ActivityLog) RecordActivity(ctx context.Context, userID, activityType, title, details, icon string) {
	key := store.ActivityKey(userID)
	feed, ok := store.Get(ctx, a.store, key, []models.Activity{})
	if !ok {
		return
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	entry := models.Activity{
		ID:        id.String(),
		UserID:    userID,
		Type:      activityType,
		Title:     title,
		Details:   details,
		Icon:      icon,
		CreatedAt: a.now(),
	}

	feed = append([]models.Activity{entry}, feed...)
	if len(feed) > a.retention {
		feed = feed[:a.retention]
	}
	_ = a.store.Save(ctx, key, feed)
}

// GetRecentActivities returns up to limit entries, newest first.
func (a *ActivityLog) GetRecentActivities(ctx context.Context, userID string, limit int) []models.Activity {
	if limit <= 0 {
		limit = 10
	}
	feed, _ := store.Get(ctx, a.store, store.ActivityKey(userID), []models.Activity{})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}
