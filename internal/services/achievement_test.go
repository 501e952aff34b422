package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/capsule-achievements/internal/catalog"
	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

func TestRecordAction_FirstCapsuleUnlocksCountAchievement(t *testing.T) {
	f := newFixture(t)

	res := f.act("u1", models.ActionCapsuleCreated, nil)

	require.NotNil(t, res.Stats)
	assert.Equal(t, 1, res.Stats.CapsulesCreated)
	assert.Equal(t, []string{"first"}, ids(res.NewlyUnlocked))
	assert.Equal(t, 1, res.Stats.AchievementCount)
	assert.Equal(t, 10, res.Stats.AchievementPoints)
	assert.Equal(t, "first", res.Stats.RarestAchievement)

	recs := f.records(t, "u1")
	require.Len(t, recs, 1)
	assert.Equal(t, models.ActionCapsuleCreated, recs[0].SourceAction)
	assert.False(t, recs[0].Retroactive)
	assert.Equal(t, 1.0, recs[0].Progress["capsules_created"])
}

func TestRecordAction_WithBuiltInCatalog(t *testing.T) {
	kv := store.NewMemoryKV()
	e := NewEngine(store.New(kv), catalog.Load())

	res := e.Achievements.RecordAction(t.Context(), "u1", models.ActionCapsuleCreated, models.Metadata{"local_hour": 2})

	assert.Contains(t, ids(res.NewlyUnlocked), catalog.FirstAchievementID)
	assert.Contains(t, ids(res.NewlyUnlocked), "night_owl")
}

func TestRecordAction_NeverDuplicatesUnlocks(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 4; i++ {
		f.act("u1", models.ActionCapsuleCreated, nil)
	}

	seen := map[string]int{}
	for _, r := range f.records(t, "u1") {
		seen[r.AchievementID]++
	}
	assert.Equal(t, 1, seen["first"])
}

func TestRecordAction_Cooldown(t *testing.T) {
	f := newFixture(t)

	first := f.engine.Achievements.RecordAction(f.ctx, "u1", models.ActionCapsuleCreated, nil)
	f.clock.Advance(2 * time.Second)
	second := f.engine.Achievements.RecordAction(f.ctx, "u1", models.ActionCapsuleCreated, nil)

	assert.Len(t, first.NewlyUnlocked, 1)
	assert.Empty(t, second.NewlyUnlocked)
	assert.Equal(t, 1, second.Stats.CapsulesCreated, "second call inside the window is dropped")

	other := f.engine.Achievements.RecordAction(f.ctx, "u1", models.ActionEchoSent, nil)
	assert.Equal(t, 1, other.Stats.EchoesSent, "cooldown is per action")

	f.clock.Advance(5 * time.Second)
	third := f.engine.Achievements.RecordAction(f.ctx, "u1", models.ActionCapsuleCreated, nil)
	assert.Equal(t, 2, third.Stats.CapsulesCreated)
}

func TestRecordAction_ComboNeedsEveryCondition(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		res := f.act("u1", models.ActionEchoSent, nil)
		assert.NotContains(t, ids(res.NewlyUnlocked), "social")
	}
	for i := 0; i < 9; i++ {
		res := f.act("u1", models.ActionSocialShare, nil)
		assert.NotContains(t, ids(res.NewlyUnlocked), "social")
	}

	res := f.act("u1", models.ActionSocialShare, nil)
	assert.Equal(t, []string{"social"}, ids(res.NewlyUnlocked))
}

func TestRecordAction_ComboOrderIndependent(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 10; i++ {
		res := f.act("u1", models.ActionSocialShare, nil)
		assert.NotContains(t, ids(res.NewlyUnlocked), "social")
	}
	var last ActionResult
	for i := 0; i < 5; i++ {
		last = f.act("u1", models.ActionEchoSent, nil)
	}
	assert.Contains(t, ids(last.NewlyUnlocked), "social")
}

func TestRecordAction_RollupsNeverDecrease(t *testing.T) {
	f := newFixture(t)
	actions := []string{
		models.ActionCapsuleCreated, models.ActionMediaUploaded, models.ActionEchoSent,
		models.ActionCapsuleCreated, "unknown_action", models.ActionCapsuleCreated,
	}

	count, points := 0, 0
	for _, a := range actions {
		res := f.act("u1", a, nil)
		assert.GreaterOrEqual(t, res.Stats.AchievementCount, count)
		assert.GreaterOrEqual(t, res.Stats.AchievementPoints, points)
		count, points = res.Stats.AchievementCount, res.Stats.AchievementPoints
	}
	assert.Equal(t, 2, count)
}

func TestRecordAction_RarestIsHighestRank(t *testing.T) {
	f := newFixture(t)

	f.act("u1", models.ActionCapsuleCreated, nil)
	res := f.act("u1", models.ActionMediaUploaded, nil)

	assert.Equal(t, "curator", res.Stats.RarestAchievement)
}

func TestRecordAction_NightOwlNeedsLocalHour(t *testing.T) {
	f := newFixture(t)

	res := f.act("u1", models.ActionCapsuleCreated, nil)
	assert.NotContains(t, ids(res.NewlyUnlocked), "night")

	res = f.act("u1", models.ActionCapsuleCreated, models.Metadata{"local_hour": 1.0})
	assert.Contains(t, ids(res.NewlyUnlocked), "night")
}

func TestRecordAction_UnknownActionChangesNothing(t *testing.T) {
	f := newFixture(t)

	res := f.act("u1", "capsule_viewed", models.Metadata{"foo": "bar"})

	assert.Empty(t, res.NewlyUnlocked)
	assert.Zero(t, res.Stats.CapsulesCreated)
	assert.Empty(t, f.records(t, "u1"))
}

func TestRecordAction_UnreadableStoreYieldsNoUnlocks(t *testing.T) {
	f := newFixture(t)
	f.kv.FailReads(errors.New("connection reset"))

	res := f.act("u1", models.ActionCapsuleCreated, nil)

	assert.Empty(t, res.NewlyUnlocked)
	require.NotNil(t, res.Stats)
	assert.Zero(t, f.kv.Writes(), "a failed cycle writes nothing")
}

func TestRecordAction_SlowStoreTimesOut(t *testing.T) {
	f := newFixture(t)
	f.kv.SlowReads(time.Second)

	start := time.Now()
	res := f.act("u1", models.ActionCapsuleCreated, nil)

	assert.Empty(t, res.NewlyUnlocked)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
}

func TestRecordAction_WriteFailuresAreTolerated(t *testing.T) {
	f := newFixture(t)
	f.kv.FailWrites(errors.New("disk full"))

	res := f.act("u1", models.ActionCapsuleCreated, nil)

	assert.Equal(t, []string{"first"}, ids(res.NewlyUnlocked))
	assert.Empty(t, f.records(t, "u1"))
}

func TestRecordAction_MalformedStatsAreReset(t *testing.T) {
	f := newFixture(t)
	f.kv.Put(store.StatsKey("u1"), []byte(`{"capsules_created": "lots"`))

	res := f.act("u1", models.ActionCapsuleCreated, nil)

	assert.Equal(t, 1, res.Stats.CapsulesCreated)
}

func TestRecordAction_LegacyStatsMissingCollections(t *testing.T) {
	f := newFixture(t)
	f.kv.Put(store.StatsKey("u1"), []byte(`{"user_id":"u1","capsules_created":4}`))

	res := f.act("u1", models.ActionCapsuleCreated, models.Metadata{"theme": "cosmic"})

	assert.Equal(t, 5, res.Stats.CapsulesCreated)
	assert.Equal(t, 1, res.Stats.ThemesUsed["cosmic"])
	assert.ElementsMatch(t, []string{"first", "five"}, ids(res.NewlyUnlocked))
}

func TestRecordAction_SerializesSameUser(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.engine.Achievements.RecordAction(f.ctx, "u1", models.ActionCapsuleCreated, nil)
		}()
	}
	wg.Wait()

	stats := f.engine.Stats.GetUserStats(f.ctx, "u1")
	assert.Equal(t, 1, stats.CapsulesCreated)
	assert.Len(t, f.records(t, "u1"), 1)
}

func TestRecordAction_QueuesNotificationsAndCountsRarity(t *testing.T) {
	f := newFixture(t)

	f.act("u1", models.ActionCapsuleCreated, nil)
	f.act("u2", models.ActionCapsuleCreated, nil)

	pending := f.engine.Notifications.GetPending(f.ctx, "u1")
	require.Len(t, pending, 1)
	assert.Equal(t, "first", pending[0].AchievementID)

	g := f.engine.Rarity.Global(f.ctx)
	assert.Equal(t, 2, g.UnlockCounts["first"])
	assert.Equal(t, 2, g.TotalUsers)
	assert.Equal(t, 100.0, f.engine.Rarity.Percent(f.ctx, "first"))
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls map[string][]string
}

func (n *recordingNotifier) NotifyUnlocked(userID string, unlocked []models.AchievementDefinition) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.calls == nil {
		n.calls = map[string][]string{}
	}
	n.calls[userID] = append(n.calls[userID], ids(unlocked)...)
}

func TestRecordAction_PushesToNotifier(t *testing.T) {
	n := &recordingNotifier{}
	f := newFixture(t, WithNotifier(n))

	f.act("u1", models.ActionCapsuleCreated, nil)
	f.act("u1", models.ActionCapsuleCreated, nil)

	assert.Equal(t, []string{"first"}, n.calls["u1"])
}

type panickingNotifier struct{}

func (panickingNotifier) NotifyUnlocked(string, []models.AchievementDefinition) { panic("boom") }

func TestRecordAction_RecoversFromPanics(t *testing.T) {
	f := newFixture(t, WithNotifier(panickingNotifier{}))

	var res ActionResult
	assert.NotPanics(t, func() {
		res = f.act("u1", models.ActionCapsuleCreated, nil)
	})
	assert.Empty(t, res.NewlyUnlocked)
	require.NotNil(t, res.Stats)
}

func TestRecordAction_TitleGrantedNotEquipped(t *testing.T) {
	f := newFixture(t)

	f.act("u1", models.ActionCapsuleCreated, nil)

	p := f.engine.Titles.GetProfile(f.ctx, "u1")
	assert.Equal(t, []string{"Rookie"}, p.UnlockedTitles)
	assert.Nil(t, p.EquippedTitle)
}

func TestGetUserAchievements_MasksHiddenLocked(t *testing.T) {
	f := newFixture(t)
	f.act("u1", models.ActionCapsuleCreated, nil)

	views := f.engine.Achievements.GetUserAchievements(f.ctx, "u1")
	require.Len(t, views, len(testDefinitions()))

	byID := map[string]UserAchievementView{}
	for _, v := range views {
		byID[v.Achievement.ID] = v
	}
	assert.True(t, byID["first"].Unlocked)
	assert.NotNil(t, byID["first"].UnlockedAt)
	require.NotNil(t, byID["five"].Progress)
	assert.InDelta(t, 20.0, *byID["five"].Progress, 0.001)
	assert.Equal(t, "???", byID["secret"].Achievement.Title)
	assert.Nil(t, byID["secret"].Progress)
}
