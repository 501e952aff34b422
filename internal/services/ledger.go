package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/criteria"
	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

// ledger commits granted achievements: records, titles, rollups, global
// counters and the activity feed. Callers hold the user's lock.
type ledger struct {
	store    *store.Adapter
	catalog  Catalog
	rarity   *RarityService
	activity *ActivityLog
	now      func() time.Time
}

type grant struct {
	userID      string
	records     []models.UnlockRecord
	stats       *models.UserStats
	defs        []models.AchievementDefinition
	action      string
	meta        models.Metadata
	retroactive bool
	// equipID is equipped as soon as its title is granted.
	equipID string
	// deferRarity leaves the global counters to the caller, which records
	// several commits as one unlock event.
	deferRarity bool
}

// eligible evaluates every catalog entry the user does not hold yet. A
// panicking criteria counts as not met and does not stop the pass.
func (l *ledger) eligible(records []models.UnlockRecord, s *models.UserStats, action string, meta models.Metadata) []models.AchievementDefinition {
	held := unlockedIDs(records)
	var out []models.AchievementDefinition
	for _, def := range l.catalog.All() {
		if held[def.ID] {
			continue
		}
		if evaluateSafely(def, s, action, meta) {
			out = append(out, def)
		}
	}
	return out
}

func evaluateSafely(def models.AchievementDefinition, s *models.UserStats, action string, meta models.Metadata) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.New().Error(fmt.Sprintf("evaluating %s failed: %v", def.ID, r))
			ok = false
		}
	}()
	return criteria.Evaluate(def.UnlockCriteria, s, action, meta)
}

// commit appends records for g.defs and persists everything they touch. It
// returns the definitions actually granted, with g.records and g.stats
// updated in place.
func (l *ledger) commit(ctx context.Context, g *grant) []models.AchievementDefinition {
	if len(g.defs) == 0 {
		return nil
	}
	log := logger.New()
	now := l.now()

	profile, profileOK := store.Get(ctx, l.store, store.TitleProfileKey(g.userID), models.TitleProfile{})
	profile.Normalize()
	profileChanged := false

	held := unlockedIDs(g.records)
	granted := make([]models.AchievementDefinition, 0, len(g.defs))
	for _, def := range g.defs {
		if held[def.ID] {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error(fmt.Sprintf("granting %s to %s failed: %v", def.ID, g.userID, r))
				}
			}()

			g.records = append(g.records, models.UnlockRecord{
				AchievementID: def.ID,
				UnlockedAt:    now,
				Progress:      criteria.Snapshot(def.UnlockCriteria, g.stats),
				SourceAction:  g.action,
				Retroactive:   g.retroactive,
				Metadata:      g.meta,
			})
			held[def.ID] = true

			if def.HasTitle() && !profileOK {
				log.Warn(fmt.Sprintf("title profile for %s unavailable, %q backfilled on a later grant", g.userID, def.Rewards.Title))
			}
			if def.HasTitle() && profileOK {
				if !profile.HasTitle(def.Rewards.Title) {
					profile.UnlockedTitles = append(profile.UnlockedTitles, def.Rewards.Title)
					profileChanged = true
				}
				if def.ID == g.equipID {
					title, id := def.Rewards.Title, def.ID
					profile.EquippedTitle, profile.EquippedAchievementID = &title, &id
					profileChanged = true
				}
				var repaired bool
				if g.records, repaired = EnsureUnlockRecord(g.records, def, g.action, now); repaired {
					log.Warn(fmt.Sprintf("title %q granted to %s without record %s, repaired", def.Rewards.Title, g.userID, def.ID))
				}
			}
			granted = append(granted, def)
		}()
	}
	if len(granted) == 0 {
		return nil
	}

	g.records = DedupeRecords(g.records)
	applyRollup(g.stats, g.records, l.catalog)
	if profileOK && backfillTitles(&profile, g.records, l.catalog) {
		profileChanged = true
	}

	_ = l.store.Save(ctx, store.UnlocksKey(g.userID), g.records)
	_ = l.store.Save(ctx, store.StatsKey(g.userID), g.stats)
	if profileChanged {
		_ = l.store.Save(ctx, store.TitleProfileKey(g.userID), profile)
	}

	ids := make([]string, len(granted))
	for i, def := range granted {
		ids[i] = def.ID
	}
	if !g.deferRarity {
		l.rarity.RecordUnlocks(ctx, ids, now)
	}

	kind := ActivityAchievementUnlocked
	if g.retroactive {
		kind = ActivityAchievementRetroactive
	}
	for _, def := range granted {
		l.activity.RecordActivity(ctx, g.userID, kind, fmt.Sprintf("Unlocked %q", def.Title), def.Description, def.Icon)
		log.Unlock(g.userID, def.Title)
	}
	return granted
}
