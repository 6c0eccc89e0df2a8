package rules

import (
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/domain"
)

// ApplyLessonCompletion records one completed lesson toward the candidate's
// phase quota. SessionsCompleted is monotonically non-decreasing; completions
// past the plan are recorded but the display ratio caps at the plan.
func ApplyLessonCompletion(c *domain.Candidate, phase domain.Phase) error {
	pp := c.ProgressFor(phase)
	if pp == nil {
		return fmt.Errorf("candidate %s has no progress entry for phase %s", c.ID, phase)
	}
	pp.SessionsCompleted++
	return nil
}

// ApplyExamResult records a resolved exam attempt against the candidate's
// phase progress and drives the phase state machine:
//
//   - the attempt counter increments and the scheduled-exam marker clears
//   - on pass the phase completes; the last phase graduates the candidate,
//     any other phase unlocks exactly the next one (not_started only, an
//     already-advanced phase is never downgraded)
//   - on fail the phase stays in_progress and the candidate re-enters
//     scheduling after the cooldown
//
// now is the instant the result was recorded; its calendar day becomes the
// cooldown anchor.
func ApplyExamResult(c *domain.Candidate, phase domain.Phase, result domain.ExamResult, now time.Time) error {
	pp := c.ProgressFor(phase)
	if pp == nil {
		return fmt.Errorf("candidate %s has no progress entry for phase %s", c.ID, phase)
	}

	day := DateOnly(now)
	pp.ExamAttempts++
	pp.LastExamDate = &day
	pp.ExamDate = nil

	if result == domain.ResultFailed {
		pp.Status = domain.PhaseInProgress
		return nil
	}

	pp.Status = domain.PhaseCompleted
	pp.ExamPassed = true

	next := domain.NextPhase(phase)
	if next == "" {
		c.Status = domain.CandidateCompleted
		return nil
	}
	if np := c.ProgressFor(next); np != nil && np.Status == domain.PhaseNotStarted {
		np.Status = domain.PhaseInProgress
	}
	return nil
}
