package models

import (
	"time"
)

// UnlockRecord is one granted achievement. A user's records are append-only
// and hold at most one record per achievement id.
type UnlockRecord struct {
	AchievementID     string             `json:"achievement_id"`
	UnlockedAt        time.Time          `json:"unlocked_at"`
	NotificationShown bool               `json:"notification_shown"`
	Shared            bool               `json:"shared"`
	Progress          map[string]float64 `json:"progress,omitempty"`
	SourceAction      string             `json:"source_action"`
	Retroactive       bool               `json:"retroactive"`
	Metadata          Metadata           `json:"metadata,omitempty"`
}

// TitleProfile tracks the cosmetic titles a user holds. EquippedAchievementID
// is nil when nothing is equipped.
type TitleProfile struct {
	EquippedTitle         *string  `json:"equipped_title"`
	EquippedAchievementID *string  `json:"equipped_achievement_id"`
	UnlockedTitles        []string `json:"unlocked_titles"`
}

func (p *TitleProfile) Normalize() {
	if p.UnlockedTitles == nil {
		p.UnlockedTitles = []string{}
	}
}

// HasTitle reports whether title is already unlocked.
func (p *TitleProfile) HasTitle(title string) bool {
	for _, t := range p.UnlockedTitles {
		if t == title {
			return true
		}
	}
	return false
}

type NotificationQueueEntry struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	Shown         bool      `json:"shown"`
}

// CatchUpNotice batches the achievements granted by a retroactive pass into
// a single notification.
type CatchUpNotice struct {
	ID             string    `json:"id"`
	AchievementIDs []string  `json:"achievement_ids"`
	Count          int       `json:"count"`
	Points         int       `json:"points"`
	CreatedAt      time.Time `json:"created_at"`
	Shown          bool      `json:"shown"`
}

// GlobalStats is the single shared record of unlock counts across users.
type GlobalStats struct {
	TotalUsers       int                  `json:"total_users"`
	UnlockCounts     map[string]int       `json:"unlock_counts"`
	FirstUnlockTimes map[string]time.Time `json:"first_unlock_times"`
}

func (g *GlobalStats) Normalize() {
	if g.UnlockCounts == nil {
		g.UnlockCounts = map[string]int{}
	}
	if g.FirstUnlockTimes == nil {
		g.FirstUnlockTimes = map[string]time.Time{}
	}
}

// Activity is an analytics entry in the user's activity feed.
type Activity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"` // achievement_unlocked, achievement_retroactive, title_equipped, ...
	Title     string    `json:"title"`
	Details   string    `json:"details"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// MigrationMarker records the last retroactive pass run for a user.
type MigrationMarker struct {
	LastRunAt time.Time `json:"last_run_at"`
	Runs      int       `json:"runs"`
	Granted   int       `json:"granted"`
}
