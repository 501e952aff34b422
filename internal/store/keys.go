package store

import "fmt"

const GlobalStatsKey = "global_achievement_stats"

func StatsKey(userID string) string { return fmt.Sprintf("user_stats:%s", userID) }

func UnlocksKey(userID string) string { return fmt.Sprintf("user_achievements:%s", userID) }

func CooldownKey(userID, action string) string {
	return fmt.Sprintf("achievement_cooldown:%s:%s", userID, action)
}

func TitleProfileKey(userID string) string { return fmt.Sprintf("title_profile:%s", userID) }

func NotificationsKey(userID string) string { return fmt.Sprintf("achievement_queue:%s", userID) }

func CatchUpKey(userID string) string { return fmt.Sprintf("achievement_catchup:%s", userID) }

func ActivityKey(userID string) string { return fmt.Sprintf("activity:%s", userID) }

func MigrationKey(userID string) string { return fmt.Sprintf("achievement_migration:%s", userID) }
