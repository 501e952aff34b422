package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/criteria"
	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/stats"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

// AchievementService is the unlock controller: it folds actions into stats
// and grants whatever the updated stats satisfy.
type AchievementService struct {
	store         *store.Adapter
	catalog       Catalog
	aggregator    *stats.Aggregator
	ledger        *ledger
	notifications *NotificationService
	stats         *StatsService
	locks         *userLocks
	notifier      Notifier
	cooldown      time.Duration
	now           func() time.Time
}

type ActionResult struct {
	NewlyUnlocked []models.AchievementDefinition `json:"newly_unlocked"`
	Stats         *models.UserStats              `json:"stats"`
}

// RecordAction runs one unlock cycle. It never fails: store trouble, an
// active cooldown or a panic all yield an empty unlock list.
func (s *AchievementService) RecordAction(ctx context.Context, userID, action string, meta models.Metadata) (res ActionResult) {
	log := logger.New()
	defer func() {
		if r := recover(); r != nil {
			log.Error(fmt.Sprintf("action %s for %s failed: %v", action, userID, r))
			res = ActionResult{NewlyUnlocked: []models.AchievementDefinition{}, Stats: models.NewUserStats(userID)}
		}
	}()

	unlock := s.locks.lock(userID)
	defer unlock()

	res = ActionResult{NewlyUnlocked: []models.AchievementDefinition{}}
	now := s.now()

	records, ok := store.Get(ctx, s.store, store.UnlocksKey(userID), []models.UnlockRecord{})
	if !ok {
		log.Warn(fmt.Sprintf("unlock set for %s unavailable, skipping %s", userID, action))
		res.Stats = s.stats.GetUserStats(ctx, userID)
		return res
	}

	if !s.claimCooldown(ctx, userID, action, now) {
		res.Stats = s.stats.GetUserStats(ctx, userID)
		return res
	}

	prior, ok := s.stats.load(ctx, userID)
	if !ok {
		log.Warn(fmt.Sprintf("stats for %s unavailable, skipping %s", userID, action))
		res.Stats = prior
		return res
	}
	next := s.aggregator.Update(prior, action, meta)
	next.UserID = userID
	_ = s.store.Save(ctx, store.StatsKey(userID), next)
	res.Stats = next

	g := &grant{
		userID:  userID,
		records: records,
		stats:   next,
		defs:    s.ledger.eligible(records, next, action, meta),
		action:  action,
		meta:    meta,
	}
	granted := s.ledger.commit(ctx, g)
	if len(granted) == 0 {
		return res
	}

	if err := s.notifications.enqueue(ctx, userID, granted, now); err != nil {
		log.WithError(err).Warn(fmt.Sprintf("queueing notifications for %s", userID))
	}
	if s.notifier != nil {
		s.notifier.NotifyUnlocked(userID, granted)
	}

	res.NewlyUnlocked = granted
	res.Stats = g.stats
	return res
}

// claimCooldown reports whether the cycle may run and, if so, starts a new
// cooldown window. An unreadable cooldown key blocks the cycle.
func (s *AchievementService) claimCooldown(ctx context.Context, userID, action string, now time.Time) bool {
	key := store.CooldownKey(userID, action)
	last, ok := store.Get(ctx, s.store, key, time.Time{})
	if !ok {
		logger.New().Warn(fmt.Sprintf("cooldown for %s/%s unavailable, skipping", userID, action))
		return false
	}
	if !last.IsZero() && now.Before(last.Add(s.cooldown)) {
		logger.New().Debug(fmt.Sprintf("%s/%s in cooldown", userID, action))
		return false
	}
	_ = s.store.Save(ctx, key, now)
	return true
}

// UserAchievementView is one catalog entry as seen by a user. Hidden entries
// the user has not unlocked are masked.
type UserAchievementView struct {
	Achievement models.AchievementDefinition `json:"achievement"`
	Unlocked    bool                         `json:"unlocked"`
	UnlockedAt  *time.Time                   `json:"unlocked_at,omitempty"`
	Retroactive bool                         `json:"retroactive"`
	Progress    *float64                     `json:"progress,omitempty"`
}

// GetUserAchievements returns every achievement with the user's progress,
// in catalog order.
func (s *AchievementService) GetUserAchievements(ctx context.Context, userID string) []UserAchievementView {
	records := s.stats.GetUnlocks(ctx, userID)
	st := s.stats.GetUserStats(ctx, userID)

	defs := s.catalog.All()
	out := make([]UserAchievementView, 0, len(defs))
	for _, def := range defs {
		view := UserAchievementView{Achievement: def}
		if r, ok := findRecord(records, def.ID); ok {
			at := r.UnlockedAt
			view.Unlocked, view.UnlockedAt, view.Retroactive = true, &at, r.Retroactive
		} else {
			if _, _, pct, ok := criteria.Progress(def.UnlockCriteria, st); ok {
				view.Progress = &pct
			}
			if def.Hidden {
				view.Achievement = def.Masked()
				view.Progress = nil
			}
		}
		out = append(out, view)
	}
	return out
}
