// Package criteria grades achievement unlock criteria against a user's
// statistics. Evaluation is pure: it reads the stats, the triggering action
// and its metadata, and never mutates any of them.
package criteria

import (
	"math"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

// Evaluate reports whether c holds. Unknown variants, unknown validators and
// unresolvable stat paths all evaluate to false.
func Evaluate(c models.Criteria, s *models.UserStats, action string, meta models.Metadata) bool {
	if c == nil || s == nil {
		return false
	}
	switch v := c.(type) {
	case models.CountCriteria:
		return evalCount(v.Stat, v.Operator, v.Threshold, s)
	case models.StreakCriteria:
		return float64(s.CurrentStreak) >= float64(v.Threshold)
	case models.TimeWaitCriteria:
		return float64(s.MaxScheduleDays) >= float64(v.Days)
	case models.SpecificActionCriteria:
		return evalSpecificAction(v, s, action, meta)
	case models.ComboCriteria:
		return evalCombo(v, s)
	case models.CustomCriteria:
		validate, ok := validators[v.Validator]
		if !ok {
			return false
		}
		return validate(s)
	}
	return false
}

func evalCount(stat string, op models.Operator, threshold float64, s *models.UserStats) bool {
	value, ok := Lookup(s, stat)
	if !ok {
		return false
	}
	return op.Compare(value, threshold)
}

func evalSpecificAction(c models.SpecificActionCriteria, s *models.UserStats, action string, meta models.Metadata) bool {
	if pred, ok := predicates[c.Predicate]; ok {
		return pred(c, s, action, meta)
	}
	return action != "" && action == c.Action
}

// evalCombo grades every condition, without short-circuiting, and requires
// all of them. An empty combo never holds.
func evalCombo(c models.ComboCriteria, s *models.UserStats) bool {
	if len(c.Conditions) == 0 {
		return false
	}
	all := true
	for _, cond := range c.Conditions {
		if !evalCount(cond.Stat, cond.Operator, cond.Threshold, s) {
			all = false
		}
	}
	return all
}

// Snapshot captures the stat values a criteria depends on, stored with the
// unlock record.
func Snapshot(c models.Criteria, s *models.UserStats) map[string]float64 {
	out := map[string]float64{}
	if s == nil {
		return out
	}
	put := func(path string) {
		if v, ok := Lookup(s, path); ok {
			out[path] = v
		}
	}
	switch v := c.(type) {
	case models.CountCriteria:
		put(v.Stat)
	case models.StreakCriteria:
		put("current_streak")
	case models.TimeWaitCriteria:
		put("max_schedule_days")
	case models.ComboCriteria:
		for _, cond := range v.Conditions {
			put(cond.Stat)
		}
	}
	return out
}

// Progress returns completion of a count criteria as a percentage in
// [0, 100]. ok is false for other variants, for thresholds that are not
// positive, and for operators that do not express "reach at least".
func Progress(c models.Criteria, s *models.UserStats) (current, target, percent float64, ok bool) {
	cc, isCount := c.(models.CountCriteria)
	if !isCount || cc.Stat == "" || cc.Threshold <= 0 {
		return 0, 0, 0, false
	}
	switch cc.Operator {
	case "", models.OpGTE, models.OpGT:
	default:
		return 0, 0, 0, false
	}
	value, found := Lookup(s, cc.Stat)
	if !found {
		return 0, 0, 0, false
	}
	percent = math.Min(100, math.Max(0, value/cc.Threshold*100))
	return value, cc.Threshold, percent, true
}
