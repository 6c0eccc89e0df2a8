package service

import "errors"

// Classified failures returned to callers. Every rejection is scoped to the
// single requested operation and is never retried automatically.
var (
	// ErrInvalidState indicates an operation on a booking that is not in the
	// required source state (e.g. recording a result on a resolved exam).
	ErrInvalidState = errors.New("invalid state")

	// ErrSchedulingConflict indicates the instructor or candidate already has
	// an active booking at the requested slot.
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrNotEligibleYet indicates the exam cooldown is still active, the
	// phase is already passed, or a pending attempt already exists.
	ErrNotEligibleYet = errors.New("not eligible for exam yet")

	// ErrValidation indicates malformed input: bad date/time, unknown enum,
	// notes over the length limit.
	ErrValidation = errors.New("validation failed")
)
