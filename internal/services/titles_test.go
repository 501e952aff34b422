package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

func strPtr(s string) *string { return &s }

func TestEquip_RejectsLockedAchievement(t *testing.T) {
	f := newFixture(t)
	f.act("u1", models.ActionCapsuleCreated, nil)
	_, err := f.engine.Titles.Equip(f.ctx, "u1", strPtr("first"))
	require.NoError(t, err)

	p, err := f.engine.Titles.Equip(f.ctx, "u1", strPtr("curator"))

	assert.ErrorIs(t, err, ErrNotUnlocked)
	require.NotNil(t, p.EquippedTitle)
	assert.Equal(t, "Rookie", *p.EquippedTitle)
	stored := f.engine.Titles.GetProfile(f.ctx, "u1")
	assert.Equal(t, "Rookie", *stored.EquippedTitle)
}

func TestEquip_Preconditions(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.act("u1", models.ActionCapsuleCreated, nil)
	}

	_, err := f.engine.Titles.Equip(f.ctx, "u1", strPtr("five"))
	assert.ErrorIs(t, err, ErrNoTitleReward)

	_, err = f.engine.Titles.Equip(f.ctx, "u1", strPtr("fist"))
	assert.ErrorIs(t, err, ErrUnknownAchievement)

	assert.Nil(t, f.engine.Titles.GetProfile(f.ctx, "u1").EquippedTitle)
}

func TestEquip_AddsMissingTitleThenUnequips(t *testing.T) {
	f := newFixture(t)
	f.put(t, store.UnlocksKey("u1"), []models.UnlockRecord{{AchievementID: "curator"}})

	p, err := f.engine.Titles.Equip(f.ctx, "u1", strPtr("curator"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Curator"}, p.UnlockedTitles)
	assert.Equal(t, "curator", *p.EquippedAchievementID)

	p, err = f.engine.Titles.Equip(f.ctx, "u1", nil)
	require.NoError(t, err)
	assert.Nil(t, p.EquippedTitle)
	assert.Nil(t, p.EquippedAchievementID)
	assert.Equal(t, []string{"Curator"}, p.UnlockedTitles, "unequipping keeps the title")

	feed := f.engine.Activity.GetRecentActivities(f.ctx, "u1", 10)
	require.Len(t, feed, 2)
	assert.Equal(t, ActivityTitleUnequipped, feed[0].Type)
	assert.Equal(t, ActivityTitleEquipped, feed[1].Type)
}

func TestListAvailable_Order(t *testing.T) {
	f := newFixture(t)
	f.put(t, store.UnlocksKey("u1"), []models.UnlockRecord{{AchievementID: "curator"}, {AchievementID: "night"}})
	_, err := f.engine.Titles.Equip(f.ctx, "u1", strPtr("curator"))
	require.NoError(t, err)

	titles := f.engine.Titles.ListAvailable(f.ctx, "u1")

	got := make([]string, len(titles))
	for i, tt := range titles {
		got[i] = tt.AchievementID
	}
	// equipped, then unlocked (uncommon), then locked by rarity
	assert.Equal(t, []string{"curator", "night", "first", "achiever"}, got)
	assert.True(t, titles[0].Equipped)
	assert.True(t, titles[1].Unlocked)
	assert.False(t, titles[2].Unlocked)
}

func TestInitializeDefault(t *testing.T) {
	f := newFixture(t)

	p, err := f.engine.Titles.InitializeDefault(f.ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p.EquippedTitle)
	assert.Equal(t, "Rookie", *p.EquippedTitle)
	assert.Equal(t, "first", *p.EquippedAchievementID)

	recs := f.records(t, "u1")
	require.Len(t, recs, 1)
	assert.Equal(t, ActionInitializeDefault, recs[0].SourceAction)

	pending := f.engine.Notifications.GetPending(f.ctx, "u1")
	require.Len(t, pending, 1)
	assert.Equal(t, "first", pending[0].AchievementID)

	stats := f.engine.Stats.GetUserStats(f.ctx, "u1")
	assert.Equal(t, 1, stats.AchievementCount)

	// second call is a no-op
	_, err = f.engine.Titles.InitializeDefault(f.ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, f.records(t, "u1"), 1)
	assert.Len(t, f.engine.Notifications.GetPending(f.ctx, "u1"), 1)
}

func TestInitializeDefault_KeepsEquippedTitle(t *testing.T) {
	f := newFixture(t)
	f.put(t, store.TitleProfileKey("u1"), models.TitleProfile{
		EquippedTitle:         strPtr("Curator"),
		EquippedAchievementID: strPtr("curator"),
		UnlockedTitles:        []string{"Curator"},
	})

	p, err := f.engine.Titles.InitializeDefault(f.ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "Curator", *p.EquippedTitle)
	assert.Empty(t, f.records(t, "u1"))
}

func TestInitializeDefault_EquipsAlreadyUnlockedFirst(t *testing.T) {
	f := newFixture(t)
	f.act("u1", models.ActionCapsuleCreated, nil)

	p, err := f.engine.Titles.InitializeDefault(f.ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "Rookie", *p.EquippedTitle)
	assert.Len(t, f.records(t, "u1"), 1)
}

func TestGrant_RestoresTitleMissingFromProfile(t *testing.T) {
	f := newFixture(t)
	f.put(t, store.UnlocksKey("u1"), []models.UnlockRecord{{AchievementID: "first"}})
	st := models.NewUserStats("u1")
	st.CapsulesCreated = 1
	f.put(t, store.StatsKey("u1"), st)

	res := f.act("u1", models.ActionMediaUploaded, nil)
	require.Contains(t, ids(res.NewlyUnlocked), "curator")

	p := f.engine.Titles.GetProfile(f.ctx, "u1")
	assert.ElementsMatch(t, []string{"Rookie", "Curator"}, p.UnlockedTitles)
}

func TestInitializeDefault_BackfillsWhenTitleEquipped(t *testing.T) {
	f := newFixture(t)
	f.put(t, store.UnlocksKey("u1"), []models.UnlockRecord{{AchievementID: "first"}, {AchievementID: "curator"}})
	f.put(t, store.TitleProfileKey("u1"), models.TitleProfile{
		EquippedTitle:         strPtr("Curator"),
		EquippedAchievementID: strPtr("curator"),
		UnlockedTitles:        []string{"Curator"},
	})

	p, err := f.engine.Titles.InitializeDefault(f.ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "Curator", *p.EquippedTitle)
	assert.ElementsMatch(t, []string{"Curator", "Rookie"}, p.UnlockedTitles)
}
