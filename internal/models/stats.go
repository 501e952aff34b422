package models

import (
	"time"
)

// UserStats is the per-user statistics record the criteria are graded
// against. It is replaced wholesale on every write.
type UserStats struct {
	UserID string `json:"user_id"`

	// Capsules
	CapsulesCreated        int        `json:"capsules_created"`
	CapsulesToOthers       int        `json:"capsules_to_others"`
	SelfCapsules           int        `json:"self_capsules"`
	CapsulesWithMedia      int        `json:"capsules_with_media"`
	CapsulesEdited         int        `json:"capsules_edited"`
	NightOwlCapsules       int        `json:"night_owl_capsules"`
	MidnightCapsules       int        `json:"midnight_capsules"`
	EarlyBirdCapsules      int        `json:"early_bird_capsules"`
	WeekendCapsules        int        `json:"weekend_capsules"`
	MultiRecipientCapsules int        `json:"multi_recipient_capsules"`
	MaxRecipients          int        `json:"max_recipients"`
	FirstCapsuleAt         *time.Time `json:"first_capsule_at,omitempty"`
	LastCapsuleAt          *time.Time `json:"last_capsule_at,omitempty"`

	// Schedule lead time in days
	MaxScheduleDays int  `json:"max_schedule_days"`
	MinScheduleDays *int `json:"min_schedule_days,omitempty"`

	// Media
	MediaUploaded  int   `json:"media_uploaded"`
	TotalMediaSize int64 `json:"total_media_size"`

	// Enhancements
	EnhancementsUsed  int `json:"enhancements_used"`
	VisualFiltersUsed int `json:"visual_filters_used"`
	AudioFiltersUsed  int `json:"audio_filters_used"`
	StickersUsed      int `json:"stickers_used"`
	VisualEffectsUsed int `json:"visual_effects_used"`

	// Vault and sharing
	LegacyVaultConfigured bool `json:"legacy_vault_configured"`
	LegacyBeneficiaries   int  `json:"legacy_beneficiaries"`
	VaultFoldersCreated   int  `json:"vault_folders_created"`
	CustomVaultFolders    int  `json:"custom_vault_folders"`
	VaultMediaOrganized   int  `json:"vault_media_organized"`
	SocialShares          int  `json:"social_shares"`

	// Echoes
	EchoesSent     int `json:"echoes_sent"`
	EchoesReceived int `json:"echoes_received"`

	// Bounded sets
	UniqueRecipientEmails []string `json:"unique_recipient_emails"`
	UniqueEchoSenders     []string `json:"unique_echo_senders"`
	CreationDaySet        []string `json:"creation_day_set"`
	DeliveryYears         []int    `json:"delivery_years"`
	ActiveYears           []int    `json:"active_years"`

	// Buckets
	MediaByType         map[string]int `json:"media_by_type"`
	FilterUsage         map[string]int `json:"filter_usage"`
	ThemesUsed          map[string]int `json:"themes_used"`
	HourlyCapsuleCounts map[string]int `json:"hourly_capsule_counts"`
	DailyCapsuleCounts  map[string]int `json:"daily_capsule_counts"`
	RecipientMilestones map[string]int `json:"recipient_milestones"`

	// Streaks
	CurrentStreak             int    `json:"current_streak"`
	LongestStreak             int    `json:"longest_streak"`
	LastActivityDate          string `json:"last_activity_date,omitempty"`
	MonthlyStreak             int    `json:"monthly_streak"`
	LastActiveMonth           string `json:"last_active_month,omitempty"`
	MediaCapsuleStreak        int    `json:"media_capsule_streak"`
	LongestMediaCapsuleStreak int    `json:"longest_media_capsule_streak"`
	LastMediaCapsuleDate      string `json:"last_media_capsule_date,omitempty"`

	// Rollups
	AchievementCount  int    `json:"achievement_count"`
	AchievementPoints int    `json:"achievement_points"`
	RarestAchievement string `json:"rarest_achievement,omitempty"`

	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewUserStats returns a zeroed record with every collection allocated.
func NewUserStats(userID string) *UserStats {
	s := &UserStats{UserID: userID}
	s.Normalize()
	return s
}

// Normalize allocates any nil collection. Records written before a field
// existed come back from the store without it.
func (s *UserStats) Normalize() {
	if s.UniqueRecipientEmails == nil {
		s.UniqueRecipientEmails = []string{}
	}
	if s.UniqueEchoSenders == nil {
		s.UniqueEchoSenders = []string{}
	}
	if s.CreationDaySet == nil {
		s.CreationDaySet = []string{}
	}
	if s.DeliveryYears == nil {
		s.DeliveryYears = []int{}
	}
	if s.ActiveYears == nil {
		s.ActiveYears = []int{}
	}
	if s.MediaByType == nil {
		s.MediaByType = map[string]int{}
	}
	if s.FilterUsage == nil {
		s.FilterUsage = map[string]int{}
	}
	if s.ThemesUsed == nil {
		s.ThemesUsed = map[string]int{}
	}
	if s.HourlyCapsuleCounts == nil {
		s.HourlyCapsuleCounts = map[string]int{}
	}
	if s.DailyCapsuleCounts == nil {
		s.DailyCapsuleCounts = map[string]int{}
	}
	if s.RecipientMilestones == nil {
		s.RecipientMilestones = map[string]int{}
	}
}

// Clone returns a deep copy, normalized.
func (s *UserStats) Clone() *UserStats {
	if s == nil {
		return nil
	}
	c := *s
	c.FirstCapsuleAt = cloneTime(s.FirstCapsuleAt)
	c.LastCapsuleAt = cloneTime(s.LastCapsuleAt)
	c.UpdatedAt = cloneTime(s.UpdatedAt)
	if s.MinScheduleDays != nil {
		v := *s.MinScheduleDays
		c.MinScheduleDays = &v
	}
	c.UniqueRecipientEmails = append([]string(nil), s.UniqueRecipientEmails...)
	c.UniqueEchoSenders = append([]string(nil), s.UniqueEchoSenders...)
	c.CreationDaySet = append([]string(nil), s.CreationDaySet...)
	c.DeliveryYears = append([]int(nil), s.DeliveryYears...)
	c.ActiveYears = append([]int(nil), s.ActiveYears...)
	c.MediaByType = cloneCounts(s.MediaByType)
	c.FilterUsage = cloneCounts(s.FilterUsage)
	c.ThemesUsed = cloneCounts(s.ThemesUsed)
	c.HourlyCapsuleCounts = cloneCounts(s.HourlyCapsuleCounts)
	c.DailyCapsuleCounts = cloneCounts(s.DailyCapsuleCounts)
	c.RecipientMilestones = cloneCounts(s.RecipientMilestones)
	c.Normalize()
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneCounts(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
