// Package services implements the achievement engine on top of the store
// adapter: the unlock controller and the title, notification, rarity,
// migration, insight and activity services around it.
package services

import (
	"errors"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/stats"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

// Catalog is the read-only achievement table.
type Catalog interface {
	All() []models.AchievementDefinition
	Get(id string) (models.AchievementDefinition, bool)
	First() models.AchievementDefinition
	Index(id string) int
}

// Notifier receives newly unlocked achievements after a cycle has been
// persisted. Implementations must not block.
type Notifier interface {
	NotifyUnlocked(userID string, unlocked []models.AchievementDefinition)
}

var (
	ErrUnknownAchievement = errors.New("unknown achievement")
	ErrNoTitleReward      = errors.New("achievement has no title reward")
	ErrNotUnlocked        = errors.New("achievement not unlocked")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

const (
	DefaultCooldown          = 5 * time.Second
	DefaultShownRetention    = 10
	DefaultActivityRetention = 50
)

type options struct {
	now               func() time.Time
	cooldown          time.Duration
	serialize         bool
	shownRetention    int
	activityRetention int
	notifier          Notifier
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCooldown sets the per (user, action) debounce window.
func WithCooldown(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.cooldown = d
		}
	}
}

// WithSerializePerUser toggles the in-process per-user lock around every
// read-modify-write cycle.
func WithSerializePerUser(on bool) Option {
	return func(o *options) { o.serialize = on }
}

// WithShownRetention bounds how many shown notifications are kept.
func WithShownRetention(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.shownRetention = n
		}
	}
}

func WithActivityRetention(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.activityRetention = n
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// Engine bundles the services sharing one store, catalog, clock and lock set.
type Engine struct {
	Achievements  *AchievementService
	Stats         *StatsService
	Titles        *TitleService
	Notifications *NotificationService
	Rarity        *RarityService
	Migration     *MigrationService
	Insights      *InsightsService
	Activity      *ActivityLog
}

func NewEngine(st *store.Adapter, cat Catalog, opts ...Option) *Engine {
	o := options{
		now:               time.Now,
		cooldown:          DefaultCooldown,
		serialize:         true,
		shownRetention:    DefaultShownRetention,
		activityRetention: DefaultActivityRetention,
	}
	for _, opt := range opts {
		opt(&o)
	}

	locks := newUserLocks(o.serialize)
	activity := NewActivityLog(st, o.now, o.activityRetention)
	rarity := NewRarityService(st, cat)
	notifications := NewNotificationService(st, locks, o.now, o.shownRetention)
	statsSvc := NewStatsService(st)
	l := &ledger{
		store:    st,
		catalog:  cat,
		rarity:   rarity,
		activity: activity,
		now:      o.now,
	}

	return &Engine{
		Achievements: &AchievementService{
			store:         st,
			catalog:       cat,
			aggregator:    stats.NewAggregator(stats.WithClock(o.now)),
			ledger:        l,
			notifications: notifications,
			stats:         statsSvc,
			locks:         locks,
			notifier:      o.notifier,
			cooldown:      o.cooldown,
			now:           o.now,
		},
		Stats:         statsSvc,
		Titles:        &TitleService{store: st, catalog: cat, ledger: l, notifications: notifications, activity: activity, locks: locks, now: o.now},
		Notifications: notifications,
		Rarity:        rarity,
		Migration:     &MigrationService{store: st, catalog: cat, ledger: l, notifications: notifications, locks: locks, now: o.now},
		Insights:      &InsightsService{catalog: cat, stats: statsSvc},
		Activity:      activity,
	}
}
