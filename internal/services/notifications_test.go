package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

func TestEnqueue_Deduplicates(t *testing.T) {
	f := newFixture(t)
	def := models.AchievementDefinition{ID: "first"}

	require.NoError(t, f.engine.Notifications.Enqueue(f.ctx, "u1", []models.AchievementDefinition{def}))
	require.NoError(t, f.engine.Notifications.Enqueue(f.ctx, "u1", []models.AchievementDefinition{def, def}))

	assert.Len(t, f.engine.Notifications.GetPending(f.ctx, "u1"), 1)
}

func TestMarkShown_UpdatesQueueAndRecords(t *testing.T) {
	f := newFixture(t)
	f.act("u1", models.ActionCapsuleCreated, nil)

	require.NoError(t, f.engine.Notifications.MarkShown(f.ctx, "u1", []string{"first"}))

	assert.Empty(t, f.engine.Notifications.GetPending(f.ctx, "u1"))
	recs := f.records(t, "u1")
	require.Len(t, recs, 1)
	assert.True(t, recs[0].NotificationShown)
}

func TestShownRetention(t *testing.T) {
	f := newFixture(t)
	var queue []models.NotificationQueueEntry
	for i := 0; i < 12; i++ {
		queue = append(queue, models.NotificationQueueEntry{AchievementID: fmt.Sprintf("shown_%02d", i), Shown: true})
	}
	queue = append([]models.NotificationQueueEntry{{AchievementID: "unshown_old"}}, queue...)
	f.put(t, store.NotificationsKey("u1"), queue)

	require.NoError(t, f.engine.Notifications.Enqueue(f.ctx, "u1", []models.AchievementDefinition{{ID: "new"}}))

	var stored []models.NotificationQueueEntry
	raw, ok := f.kv.Raw(store.NotificationsKey("u1"))
	require.True(t, ok)
	require.NoError(t, json.Unmarshal(raw, &stored))

	assert.Len(t, stored, 12)
	assert.Equal(t, "unshown_old", stored[0].AchievementID)
	assert.Equal(t, "shown_02", stored[1].AchievementID, "oldest shown entries are dropped")
	assert.Equal(t, "new", stored[len(stored)-1].AchievementID)

	pending := f.engine.Notifications.GetPending(f.ctx, "u1")
	assert.Len(t, pending, 2)
}

func TestTrimShown(t *testing.T) {
	queue := []models.NotificationQueueEntry{
		{AchievementID: "a", Shown: true},
		{AchievementID: "b"},
		{AchievementID: "c", Shown: true},
		{AchievementID: "d", Shown: true},
	}
	got := trimShown(queue, 1)
	assert.Equal(t, []models.NotificationQueueEntry{{AchievementID: "b"}, {AchievementID: "d", Shown: true}}, got)
	assert.Equal(t, queue, trimShown(queue, 10))
}
