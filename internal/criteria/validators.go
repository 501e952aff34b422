package criteria

import (
	"sort"
	"strconv"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

// Validator is a closed-form check over UserStats used by custom criteria.
type Validator func(s *models.UserStats) bool

var validators = map[string]Validator{
	"three_consecutive_years":  threeConsecutiveYears,
	"all_themes_used":          allBuckets(func(s *models.UserStats) map[string]int { return s.ThemesUsed }, models.Themes),
	"all_media_types_uploaded": allBuckets(func(s *models.UserStats) map[string]int { return s.MediaByType }, models.MediaTypes),
	"filter_connoisseur":       allBuckets(func(s *models.UserStats) map[string]int { return s.FilterUsage }, models.VisualFilters),
	"audio_maestro":            allBuckets(func(s *models.UserStats) map[string]int { return s.FilterUsage }, models.AudioFilters),
	"echo_senders_25": func(s *models.UserStats) bool {
		return len(s.UniqueEchoSenders) >= 25
	},
	"busy_day": func(s *models.UserStats) bool {
		for _, n := range s.DailyCapsuleCounts {
			if n >= 5 {
				return true
			}
		}
		return false
	},
	"round_the_clock": func(s *models.UserStats) bool {
		for h := 0; h < 24; h++ {
			if s.HourlyCapsuleCounts[strconv.Itoa(h)] < 1 {
				return false
			}
		}
		return true
	},
	"decade_planner": func(s *models.UserStats) bool {
		years := map[int]bool{}
		for _, y := range s.DeliveryYears {
			years[y] = true
		}
		return len(years) >= 10
	},
}

func allBuckets(get func(s *models.UserStats) map[string]int, keys []string) Validator {
	return func(s *models.UserStats) bool {
		m := get(s)
		for _, k := range keys {
			if m[k] < 1 {
				return false
			}
		}
		return true
	}
}

func threeConsecutiveYears(s *models.UserStats) bool {
	years := append([]int(nil), s.ActiveYears...)
	sort.Ints(years)
	run := 0
	for i, y := range years {
		switch {
		case i == 0:
			run = 1
		case y == years[i-1]:
			continue
		case y == years[i-1]+1:
			run++
		default:
			run = 1
		}
		if run >= 3 {
			return true
		}
	}
	return false
}

// ValidatorNames lists the registered validators, sorted.
func ValidatorNames() []string {
	names := make([]string, 0, len(validators))
	for name := range validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
