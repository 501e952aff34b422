package models

// CriteriaKind tags the unlock criteria dialects.
type CriteriaKind string

const (
	KindCount          CriteriaKind = "count"
	KindStreak         CriteriaKind = "streak"
	KindTimeWait       CriteriaKind = "time_wait"
	KindSpecificAction CriteriaKind = "specific_action"
	KindCombo          CriteriaKind = "combo"
	KindCustom         CriteriaKind = "custom"
)

// Criteria is the closed set of unlock criteria variants. Only types in this
// package implement it.
type Criteria interface {
	Kind() CriteriaKind
	criteria()
}

// Operator compares a stat value against a threshold.
type Operator string

const (
	OpGTE Operator = ">="
	OpGT  Operator = ">"
	OpEQ  Operator = "=="
	OpLTE Operator = "<="
	OpLT  Operator = "<"
)

// Compare applies the operator. An empty operator means ">="; an unrecognised
// one never matches.
func (o Operator) Compare(value, threshold float64) bool {
	switch o {
	case "", OpGTE:
		return value >= threshold
	case OpGT:
		return value > threshold
	case OpEQ:
		return value == threshold
	case OpLTE:
		return value <= threshold
	case OpLT:
		return value < threshold
	}
	return false
}

// CountCriteria holds when the value at Stat (a dotted path) satisfies
// Operator against Threshold.
type CountCriteria struct {
	Stat      string   `json:"stat"`
	Threshold float64  `json:"threshold"`
	Operator  Operator `json:"operator,omitempty"`
}

// StreakCriteria compares current_streak against Threshold.
type StreakCriteria struct {
	Threshold int `json:"threshold"`
}

// TimeWaitCriteria compares the longest schedule lead time, in days, against Days.
type TimeWaitCriteria struct {
	Days int `json:"days"`
}

// SpecificActionCriteria names a predicate evaluated against stats or the
// triggering metadata. When no predicate by that name exists the criteria
// holds if the triggering action equals Action.
type SpecificActionCriteria struct {
	Action    string `json:"action"`
	Predicate string `json:"predicate,omitempty"`
}

type Condition struct {
	Stat      string   `json:"stat"`
	Threshold float64  `json:"threshold"`
	Operator  Operator `json:"operator,omitempty"`
}

// ComboCriteria holds when every condition holds.
type ComboCriteria struct {
	Conditions []Condition `json:"conditions"`
}

// CustomCriteria dispatches to a named validator over UserStats.
type CustomCriteria struct {
	Validator string `json:"validator"`
}

func (CountCriteria) Kind() CriteriaKind          { return KindCount }
func (StreakCriteria) Kind() CriteriaKind         { return KindStreak }
func (TimeWaitCriteria) Kind() CriteriaKind       { return KindTimeWait }
func (SpecificActionCriteria) Kind() CriteriaKind { return KindSpecificAction }
func (ComboCriteria) Kind() CriteriaKind          { return KindCombo }
func (CustomCriteria) Kind() CriteriaKind         { return KindCustom }

func (CountCriteria) criteria()          {}
func (StreakCriteria) criteria()         {}
func (TimeWaitCriteria) criteria()       {}
func (SpecificActionCriteria) criteria() {}
func (ComboCriteria) criteria()          {}
func (CustomCriteria) criteria()         {}
