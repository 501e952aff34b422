package services

import (
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

func unlockedIDs(records []models.UnlockRecord) map[string]bool {
	ids := make(map[string]bool, len(records))
	for _, r := range records {
		ids[r.AchievementID] = true
	}
	return ids
}

func findRecord(records []models.UnlockRecord, id string) (models.UnlockRecord, bool) {
	for _, r := range records {
		if r.AchievementID == id {
			return r, true
		}
	}
	return models.UnlockRecord{}, false
}

// DedupeRecords keeps the first record of every achievement id, in order.
func DedupeRecords(records []models.UnlockRecord) []models.UnlockRecord {
	seen := make(map[string]bool, len(records))
	out := make([]models.UnlockRecord, 0, len(records))
	for _, r := range records {
		if r.AchievementID == "" || seen[r.AchievementID] {
			continue
		}
		seen[r.AchievementID] = true
		out = append(out, r)
	}
	return out
}

// EnsureUnlockRecord repairs a title grant whose achievement record is
// missing by appending one for def. It reports whether a repair was needed.
func EnsureUnlockRecord(records []models.UnlockRecord, def models.AchievementDefinition, action string, now time.Time) ([]models.UnlockRecord, bool) {
	if _, ok := findRecord(records, def.ID); ok {
		return records, false
	}
	return append(records, models.UnlockRecord{
		AchievementID: def.ID,
		UnlockedAt:    now,
		SourceAction:  action,
		Metadata:      models.Metadata{"repaired": true},
	}), true
}

// backfillTitles adds the title of every held achievement missing from p,
// such as one granted while the profile could not be read. It reports
// whether p changed.
func backfillTitles(p *models.TitleProfile, records []models.UnlockRecord, cat Catalog) bool {
	changed := false
	for _, r := range records {
		def, ok := cat.Get(r.AchievementID)
		if !ok || !def.HasTitle() || p.HasTitle(def.Rewards.Title) {
			continue
		}
		p.UnlockedTitles = append(p.UnlockedTitles, def.Rewards.Title)
		changed = true
	}
	return changed
}

// Rollup computes the denormalized achievement totals over records. Ids the
// catalog no longer knows are counted but earn no points. The rarest
// achievement is the highest rarity rank, ties going to the earlier entry.
func Rollup(records []models.UnlockRecord, cat Catalog) (count, points int, rarest string) {
	bestRank, bestIndex := 0, -1
	for _, r := range DedupeRecords(records) {
		count++
		def, ok := cat.Get(r.AchievementID)
		if !ok {
			continue
		}
		points += def.Rewards.Points
		rank, index := def.Rarity.Rank(), cat.Index(def.ID)
		if rank > bestRank || (rank == bestRank && index < bestIndex) {
			bestRank, bestIndex, rarest = rank, index, def.ID
		}
	}
	return count, points, rarest
}

func applyRollup(s *models.UserStats, records []models.UnlockRecord, cat Catalog) {
	s.AchievementCount, s.AchievementPoints, s.RarestAchievement = Rollup(records, cat)
}
