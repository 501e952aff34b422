package criteria

import (
	"strings"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

type scalarFn func(s *models.UserStats) (float64, bool)

func intField(get func(s *models.UserStats) int) scalarFn {
	return func(s *models.UserStats) (float64, bool) { return float64(get(s)), true }
}

func boolField(get func(s *models.UserStats) bool) scalarFn {
	return func(s *models.UserStats) (float64, bool) {
		if get(s) {
			return 1, true
		}
		return 0, true
	}
}

// scalars maps each addressable stat name to its accessor. Names that are
// derived (distinct_*, unique_*) are computed from the underlying sets.
var scalars = map[string]scalarFn{
	"capsules_created":             intField(func(s *models.UserStats) int { return s.CapsulesCreated }),
	"capsules_to_others":           intField(func(s *models.UserStats) int { return s.CapsulesToOthers }),
	"self_capsules":                intField(func(s *models.UserStats) int { return s.SelfCapsules }),
	"capsules_with_media":          intField(func(s *models.UserStats) int { return s.CapsulesWithMedia }),
	"capsules_edited":              intField(func(s *models.UserStats) int { return s.CapsulesEdited }),
	"night_owl_capsules":           intField(func(s *models.UserStats) int { return s.NightOwlCapsules }),
	"midnight_capsules":            intField(func(s *models.UserStats) int { return s.MidnightCapsules }),
	"early_bird_capsules":          intField(func(s *models.UserStats) int { return s.EarlyBirdCapsules }),
	"weekend_capsules":             intField(func(s *models.UserStats) int { return s.WeekendCapsules }),
	"multi_recipient_capsules":     intField(func(s *models.UserStats) int { return s.MultiRecipientCapsules }),
	"max_recipients":               intField(func(s *models.UserStats) int { return s.MaxRecipients }),
	"max_schedule_days":            intField(func(s *models.UserStats) int { return s.MaxScheduleDays }),
	"media_uploaded":               intField(func(s *models.UserStats) int { return s.MediaUploaded }),
	"enhancements_used":            intField(func(s *models.UserStats) int { return s.EnhancementsUsed }),
	"visual_filters_used":          intField(func(s *models.UserStats) int { return s.VisualFiltersUsed }),
	"audio_filters_used":           intField(func(s *models.UserStats) int { return s.AudioFiltersUsed }),
	"stickers_used":                intField(func(s *models.UserStats) int { return s.StickersUsed }),
	"visual_effects_used":          intField(func(s *models.UserStats) int { return s.VisualEffectsUsed }),
	"legacy_vault_configured":      boolField(func(s *models.UserStats) bool { return s.LegacyVaultConfigured }),
	"legacy_beneficiaries":         intField(func(s *models.UserStats) int { return s.LegacyBeneficiaries }),
	"vault_folders_created":        intField(func(s *models.UserStats) int { return s.VaultFoldersCreated }),
	"custom_vault_folders":         intField(func(s *models.UserStats) int { return s.CustomVaultFolders }),
	"vault_media_organized":        intField(func(s *models.UserStats) int { return s.VaultMediaOrganized }),
	"social_shares":                intField(func(s *models.UserStats) int { return s.SocialShares }),
	"echoes_sent":                  intField(func(s *models.UserStats) int { return s.EchoesSent }),
	"echoes_received":              intField(func(s *models.UserStats) int { return s.EchoesReceived }),
	"current_streak":               intField(func(s *models.UserStats) int { return s.CurrentStreak }),
	"longest_streak":               intField(func(s *models.UserStats) int { return s.LongestStreak }),
	"monthly_streak":               intField(func(s *models.UserStats) int { return s.MonthlyStreak }),
	"media_capsule_streak":         intField(func(s *models.UserStats) int { return s.MediaCapsuleStreak }),
	"longest_media_capsule_streak": intField(func(s *models.UserStats) int { return s.LongestMediaCapsuleStreak }),
	"achievement_count":            intField(func(s *models.UserStats) int { return s.AchievementCount }),
	"achievement_points":           intField(func(s *models.UserStats) int { return s.AchievementPoints }),
	"unique_recipients":            intField(func(s *models.UserStats) int { return len(s.UniqueRecipientEmails) }),
	"unique_echo_senders":          intField(func(s *models.UserStats) int { return len(s.UniqueEchoSenders) }),
	"unique_creation_days":         intField(func(s *models.UserStats) int { return len(s.CreationDaySet) }),
	"distinct_themes":              intField(func(s *models.UserStats) int { return positiveKeys(s.ThemesUsed) }),
	"distinct_filters":             intField(func(s *models.UserStats) int { return positiveKeys(s.FilterUsage) }),
	"distinct_media_types":         intField(func(s *models.UserStats) int { return positiveKeys(s.MediaByType) }),
	"total_media_size": func(s *models.UserStats) (float64, bool) {
		return float64(s.TotalMediaSize), true
	},
	"min_schedule_days": func(s *models.UserStats) (float64, bool) {
		if s.MinScheduleDays == nil {
			return 0, false
		}
		return float64(*s.MinScheduleDays), true
	},
}

var buckets = map[string]func(s *models.UserStats) map[string]int{
	"media_by_type":         func(s *models.UserStats) map[string]int { return s.MediaByType },
	"filter_usage":          func(s *models.UserStats) map[string]int { return s.FilterUsage },
	"themes_used":           func(s *models.UserStats) map[string]int { return s.ThemesUsed },
	"hourly_capsule_counts": func(s *models.UserStats) map[string]int { return s.HourlyCapsuleCounts },
	"daily_capsule_counts":  func(s *models.UserStats) map[string]int { return s.DailyCapsuleCounts },
	"recipient_milestones":  func(s *models.UserStats) map[string]int { return s.RecipientMilestones },
}

// Lookup resolves a stat path such as "capsules_created" or
// "media_by_type.photo". ok is false when the path names nothing. A missing
// key inside a known bucket resolves to 0.
func Lookup(s *models.UserStats, path string) (value float64, ok bool) {
	if s == nil || path == "" {
		return 0, false
	}
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		fn, found := scalars[path]
		if !found {
			return 0, false
		}
		return fn(s)
	}
	bucket, found := buckets[head]
	if !found || rest == "" || strings.Contains(rest, ".") {
		return 0, false
	}
	m := bucket(s)
	if m == nil {
		return 0, true
	}
	return float64(m[rest]), true
}

func positiveKeys(m map[string]int) int {
	n := 0
	for _, v := range m {
		if v > 0 {
			n++
		}
	}
	return n
}
