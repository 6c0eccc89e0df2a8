package rules

import (
	"fmt"
	"time"
)

// EligibilityDecision is the outcome of the exam-eligibility evaluation.
// When CanTake is false, Reason explains why and WaitUntil (if set) is the
// first day a new attempt becomes allowed.
type EligibilityDecision struct {
	CanTake   bool
	Reason    string
	WaitUntil *time.Time
}

// Cooldown evaluates the 15-day wait against the most recent resolved
// attempt. lastResolved is nil when the candidate has no resolved attempt
// for the phase; older attempts outside the window do not matter.
//
// The rule applies identically whether the last attempt passed or failed.
// A passed phase is additionally blocked by the already-passed check in the
// scheduling path, so the post-pass cooldown is normally shadowed, but the
// computation itself does not distinguish outcomes.
func Cooldown(lastResolved *time.Time, asOf time.Time) EligibilityDecision {
	if lastResolved == nil {
		return EligibilityDecision{CanTake: true}
	}
	if DaysBetween(*lastResolved, asOf) >= CooldownDays {
		return EligibilityDecision{CanTake: true}
	}
	until := CooldownEnd(*lastResolved)
	return EligibilityDecision{
		CanTake:   false,
		Reason:    fmt.Sprintf("cooldown active until %s", until.Format(DateLayout)),
		WaitUntil: &until,
	}
}
