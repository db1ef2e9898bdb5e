package domain

import "strings"

// Condition is the physical state of a media unit, ordered best to worst.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

var conditionRank = map[Condition]int{
	ConditionExcellent: 0,
	ConditionGood:      1,
	ConditionFair:      2,
	ConditionPoor:      3,
}

// Conditions lists every condition from best to worst.
func Conditions() []Condition {
	return []Condition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor}
}

func (c Condition) Valid() bool {
	_, ok := conditionRank[c]
	return ok
}

// WorseThan reports whether c is strictly worse than other.
// Unknown conditions are never worse than anything.
func (c Condition) WorseThan(other Condition) bool {
	r, ok := conditionRank[c]
	if !ok {
		return false
	}
	o, ok := conditionRank[other]
	if !ok {
		return false
	}
	return r > o
}

// ParseCondition normalizes s; the second value is false for unknown input.
func ParseCondition(s string) (Condition, bool) {
	c := Condition(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}
