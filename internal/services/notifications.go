package services

import (
	"context"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

// NotificationService owns the per-user unlock queue and catch-up notices.
// Unshown entries are kept indefinitely; shown ones are trimmed to the most
// recent retention entries.
type NotificationService struct {
	store     *store.Adapter
	locks     *userLocks
	now       func() time.Time
	retention int
}

func NewNotificationService(st *store.Adapter, locks *userLocks, now func() time.Time, retention int) *NotificationService {
	return &NotificationService{store: st, locks: locks, now: now, retention: retention}
}

// Enqueue adds entries for defs that are not queued yet.
func (n *NotificationService) Enqueue(ctx context.Context, userID string, defs []models.AchievementDefinition) error {
	unlock := n.locks.lock(userID)
	defer unlock()
	return n.enqueue(ctx, userID, defs, n.now())
}

// enqueue is Enqueue for callers already holding the user's lock.
func (n *NotificationService) enqueue(ctx context.Context, userID string, defs []models.AchievementDefinition, at time.Time) error {
	key := store.NotificationsKey(userID)
	queue, ok := store.Get(ctx, n.store, key, []models.NotificationQueueEntry{})
	if !ok {
		return ErrStoreUnavailable
	}

	queued := map[string]bool{}
	for _, e := range queue {
		queued[e.AchievementID] = true
	}
	for _, def := range defs {
		if queued[def.ID] {
			continue
		}
		queued[def.ID] = true
		queue = append(queue, models.NotificationQueueEntry{AchievementID: def.ID, UnlockedAt: at})
	}
	return n.store.Save(ctx, key, trimShown(queue, n.retention))
}

// GetPending returns the unshown entries, oldest first.
func (n *NotificationService) GetPending(ctx context.Context, userID string) []models.NotificationQueueEntry {
	queue, _ := store.Get(ctx, n.store, store.NotificationsKey(userID), []models.NotificationQueueEntry{})
	pending := []models.NotificationQueueEntry{}
	for _, e := range queue {
		if !e.Shown {
			pending = append(pending, e)
		}
	}
	return pending
}

// MarkShown flags the given entries as shown and mirrors the flag onto the
// unlock records.
func (n *NotificationService) MarkShown(ctx context.Context, userID string, achievementIDs []string) error {
	if len(achievementIDs) == 0 {
		return nil
	}
	unlock := n.locks.lock(userID)
	defer unlock()

	ids := map[string]bool{}
	for _, id := range achievementIDs {
		ids[id] = true
	}

	key := store.NotificationsKey(userID)
	queue, ok := store.Get(ctx, n.store, key, []models.NotificationQueueEntry{})
	if !ok {
		return ErrStoreUnavailable
	}
	for i := range queue {
		if ids[queue[i].AchievementID] {
			queue[i].Shown = true
		}
	}
	if err := n.store.Save(ctx, key, trimShown(queue, n.retention)); err != nil {
		return err
	}

	records, ok := store.Get(ctx, n.store, store.UnlocksKey(userID), []models.UnlockRecord{})
	if !ok {
		return nil
	}
	changed := false
	for i := range records {
		if ids[records[i].AchievementID] && !records[i].NotificationShown {
			records[i].NotificationShown = true
			changed = true
		}
	}
	if changed {
		_ = n.store.Save(ctx, store.UnlocksKey(userID), records)
	}
	return nil
}

// trimShown drops the oldest shown entries beyond keep, preserving order.
func trimShown(queue []models.NotificationQueueEntry, keep int) []models.NotificationQueueEntry {
	shown := 0
	for _, e := range queue {
		if e.Shown {
			shown++
		}
	}
	drop := shown - keep
	if drop <= 0 {
		return queue
	}
	out := make([]models.NotificationQueueEntry, 0, len(queue)-drop)
	for _, e := range queue {
		if e.Shown && drop > 0 {
			drop--
			continue
		}
		out = append(out, e)
	}
	return out
}

// addCatchUp stores a retroactive batch notice. Callers hold the user's lock.
func (n *NotificationService) addCatchUp(ctx context.Context, userID string, notice models.CatchUpNotice) error {
	key := store.CatchUpKey(userID)
	notices, ok := store.Get(ctx, n.store, key, []models.CatchUpNotice{})
	if !ok {
		return ErrStoreUnavailable
	}
	notices = append(notices, notice)
	return n.store.Save(ctx, key, trimShownNotices(notices, n.retention))
}

// GetCatchUp returns the unshown catch-up notices.
func (n *NotificationService) GetCatchUp(ctx context.Context, userID string) []models.CatchUpNotice {
	notices, _ := store.Get(ctx, n.store, store.CatchUpKey(userID), []models.CatchUpNotice{})
	pending := []models.CatchUpNotice{}
	for _, c := range notices {
		if !c.Shown {
			pending = append(pending, c)
		}
	}
	return pending
}

// MarkCatchUpShown flags the notice with id as shown, or every notice when
// id is empty.
func (n *NotificationService) MarkCatchUpShown(ctx context.Context, userID, id string) error {
	unlock := n.locks.lock(userID)
	defer unlock()

	key := store.CatchUpKey(userID)
	notices, ok := store.Get(ctx, n.store, key, []models.CatchUpNotice{})
	if !ok {
		return ErrStoreUnavailable
	}
	for i := range notices {
		if id == "" || notices[i].ID == id {
			notices[i].Shown = true
		}
	}
	return n.store.Save(ctx, key, trimShownNotices(notices, n.retention))
}

func trimShownNotices(notices []models.CatchUpNotice, keep int) []models.CatchUpNotice {
	shown := 0
	for _, c := range notices {
		if c.Shown {
			shown++
		}
	}
	drop := shown - keep
	if drop <= 0 {
		return notices
	}
	out := make([]models.CatchUpNotice, 0, len(notices)-drop)
	for _, c := range notices {
		if c.Shown && drop > 0 {
			drop--
			continue
		}
		out = append(out, c)
	}
	return out
}
