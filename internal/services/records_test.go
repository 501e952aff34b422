package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

func TestEnsureUnlockRecord(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	def := models.AchievementDefinition{ID: "curator", Rewards: models.Reward{Title: "Curator"}}

	records, repaired := EnsureUnlockRecord(nil, def, "media_uploaded", now)
	assert.True(t, repaired)
	assert.Len(t, records, 1)
	assert.Equal(t, "curator", records[0].AchievementID)
	assert.Equal(t, now, records[0].UnlockedAt)

	again, repaired := EnsureUnlockRecord(records, def, "media_uploaded", now)
	assert.False(t, repaired)
	assert.Len(t, again, 1)
}

func TestDedupeRecords(t *testing.T) {
	in := []models.UnlockRecord{
		{AchievementID: "a", SourceAction: "one"},
		{AchievementID: "b"},
		{AchievementID: "a", SourceAction: "two"},
		{AchievementID: ""},
	}
	out := DedupeRecords(in)
	assert.Len(t, out, 2)
	assert.Equal(t, "one", out[0].SourceAction)
}

func TestRollup(t *testing.T) {
	cat := testCatalog(t)
	records := []models.UnlockRecord{
		{AchievementID: "first"},
		{AchievementID: "curator"},
		{AchievementID: "five"},
		{AchievementID: "five"},
		{AchievementID: "retired"},
	}

	count, points, rarest := Rollup(records, cat)

	assert.Equal(t, 4, count)
	assert.Equal(t, 10+30+50, points)
	// five and curator are both rare; five comes first in the catalog
	assert.Equal(t, "five", rarest)
}

func TestBackfillTitles(t *testing.T) {
	cat := testCatalog(t)
	p := models.TitleProfile{UnlockedTitles: []string{"Curator"}}
	records := []models.UnlockRecord{{AchievementID: "first"}, {AchievementID: "curator"}, {AchievementID: "five"}}

	assert.True(t, backfillTitles(&p, records, cat))
	assert.ElementsMatch(t, []string{"Curator", "Rookie"}, p.UnlockedTitles)
	assert.False(t, backfillTitles(&p, records, cat))
}
