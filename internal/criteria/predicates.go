package criteria

import (
	"sort"
	"strings"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

// Predicate grades a named specific_action criteria. Metadata-based
// predicates only hold for the live action they describe; stats-based ones
// also hold during a retroactive pass.
type Predicate func(c models.SpecificActionCriteria, s *models.UserStats, action string, meta models.Metadata) bool

const (
	MetaLocalHour     = "local_hour"
	MetaLocalDate     = "local_date"
	MetaMediaTypes    = "media_types"
	MetaMessageLength = "message_length"

	dateLayout = "2006-01-02"
)

var predicates = map[string]Predicate{
	// metadata only
	"night_owl":  liveHour(func(h int) bool { return h >= 0 && h <= 3 }),
	"midnight":   liveHour(func(h int) bool { return h == 0 }),
	"early_bird": liveHour(func(h int) bool { return h == 5 || h == 6 }),
	"new_year":   liveDate(func(d time.Time) bool { return d.Month() == time.January && d.Day() == 1 }),
	"leap_day":   liveDate(func(d time.Time) bool { return d.Month() == time.February && d.Day() == 29 }),
	"all_media_types": func(c models.SpecificActionCriteria, _ *models.UserStats, action string, meta models.Metadata) bool {
		if action != c.Action {
			return false
		}
		present := map[string]bool{}
		for _, t := range meta.Strings(MetaMediaTypes) {
			present[strings.ToLower(strings.TrimSpace(t))] = true
		}
		for _, t := range models.MediaTypes {
			if !present[t] {
				return false
			}
		}
		return true
	},
	"long_message": func(c models.SpecificActionCriteria, _ *models.UserStats, action string, meta models.Metadata) bool {
		n, ok := meta.Int(MetaMessageLength)
		return action == c.Action && ok && n >= 1000
	},

	// stats backed
	"self_addressed": func(_ models.SpecificActionCriteria, s *models.UserStats, _ string, _ models.Metadata) bool {
		return s.SelfCapsules >= 1
	},
	"legacy_vault": func(_ models.SpecificActionCriteria, s *models.UserStats, _ string, _ models.Metadata) bool {
		return s.LegacyVaultConfigured
	},
	"first_share": func(_ models.SpecificActionCriteria, s *models.UserStats, _ string, _ models.Metadata) bool {
		return s.SocialShares >= 1
	},
	"first_edit": func(_ models.SpecificActionCriteria, s *models.UserStats, _ string, _ models.Metadata) bool {
		return s.CapsulesEdited >= 1
	},
}

// liveHour checks the caller-supplied local hour. Server time is never
// consulted: without local_hour the predicate does not hold.
func liveHour(match func(hour int) bool) Predicate {
	return func(c models.SpecificActionCriteria, _ *models.UserStats, action string, meta models.Metadata) bool {
		if action != c.Action {
			return false
		}
		hour, ok := meta.Int(MetaLocalHour)
		if !ok || hour < 0 || hour > 23 {
			return false
		}
		return match(hour)
	}
}

func liveDate(match func(d time.Time) bool) Predicate {
	return func(c models.SpecificActionCriteria, _ *models.UserStats, action string, meta models.Metadata) bool {
		if action != c.Action {
			return false
		}
		d, err := time.Parse(dateLayout, meta.String(MetaLocalDate))
		if err != nil {
			return false
		}
		return match(d)
	}
}

// PredicateNames lists the registered predicates, sorted.
func PredicateNames() []string {
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
