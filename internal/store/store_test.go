package store

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type record struct {
	Count int `json:"count"`
}

func TestGet_MissingKeyYieldsDefault(t *testing.T) {
	a := New(NewMemoryKV())

	got, ok := Get(context.Background(), a, "missing", record{Count: 7})
	assert.True(t, ok)
	assert.Equal(t, 7, got.Count)
}

func TestGet_RoundTrip(t *testing.T) {
	a := New(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, "k", record{Count: 3}))
	got, ok := Get(ctx, a, "k", record{})
	assert.True(t, ok)
	assert.Equal(t, 3, got.Count)
}

func TestGet_MalformedValueYieldsDefault(t *testing.T) {
	kv := NewMemoryKV()
	kv.Put("k", []byte("{not json"))
	a := New(kv)

	got, ok := Get(context.Background(), a, "k", record{Count: 1})
	assert.True(t, ok)
	assert.Equal(t, 1, got.Count)
}

func TestGet_ReadFailureIsReported(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailReads(errors.New("connection reset"))
	a := New(kv, WithRetries(3))

	got, ok := Get(context.Background(), a, "k", record{Count: 1})
	assert.False(t, ok)
	assert.Equal(t, 1, got.Count)
}

func TestLoad_TimesOut(t *testing.T) {
	kv := NewMemoryKV()
	kv.SlowReads(time.Second)
	a := New(kv, WithReadTimeout(20*time.Millisecond))

	start := time.Now()
	var r record
	found, err := a.Load(context.Background(), "k", &r)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestLoad_RetriesWithLongerTimeout(t *testing.T) {
	kv := NewMemoryKV()
	kv.Put("k", []byte(`{"count":4}`))
	kv.SlowReads(30 * time.Millisecond)

	// The first 20ms attempt times out; later attempts get 40ms then 80ms.
	a := New(kv, WithReadTimeout(20*time.Millisecond), WithRetries(3))
	var r record
	found, err := a.Load(context.Background(), "k", &r)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, r.Count)
}

func TestSave_WriteFailure(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailWrites(errors.New("disk full"))
	a := New(kv)

	err := a.Save(context.Background(), "k", record{Count: 1})
	require.Error(t, err)
	_, exists := kv.Raw("k")
	assert.False(t, exists)
	assert.Equal(t, 1, kv.Writes())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "user_stats:u1", StatsKey("u1"))
	assert.Equal(t, "user_achievements:u1", UnlocksKey("u1"))
	assert.Equal(t, "achievement_cooldown:u1:capsule_created", CooldownKey("u1", "capsule_created"))
	assert.Equal(t, "achievement_migration:u1", MigrationKey("u1"))
}
