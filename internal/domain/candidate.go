package domain

import "time"

// Candidate is a driving school student working through the three licensing
// phases. Progress holds exactly one entry per phase, in canonical order.
type Candidate struct {
	ID              string
	Name            string
	LicenseCategory string
	Status          CandidateStatus

	Progress []PhaseProgress

	// Payment totals, in cents. PaidAmount is kept equal to the sum of the
	// candidate's payment ledger entries.
	TotalFee   int
	PaidAmount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhaseProgress is a candidate's status, lesson quota, and exam-attempt
// record for one phase.
type PhaseProgress struct {
	Phase             Phase
	Status            PhaseStatus
	SessionsCompleted int
	SessionsPlan      int
	ExamAttempts      int
	ExamPassed        bool
	LastExamDate      *time.Time
	ExamDate          *time.Time
}

// NewProgressSet builds the fixed three-entry progress list for a fresh
// enrollment. The first phase starts in_progress, the rest not_started.
// sessionsPlan maps phase to lesson quota; missing phases get zero.
func NewProgressSet(sessionsPlan map[Phase]int) []PhaseProgress {
	set := make([]PhaseProgress, 0, len(Phases))
	for i, p := range Phases {
		status := PhaseNotStarted
		if i == 0 {
			status = PhaseInProgress
		}
		set = append(set, PhaseProgress{
			Phase:        p,
			Status:       status,
			SessionsPlan: sessionsPlan[p],
		})
	}
	return set
}

// ProgressFor returns the progress entry for the given phase, or nil if the
// candidate has no entry for it (malformed record).
func (c *Candidate) ProgressFor(phase Phase) *PhaseProgress {
	for i := range c.Progress {
		if c.Progress[i].Phase == phase {
			return &c.Progress[i]
		}
	}
	return nil
}

// PhaseReachable reports whether every phase before the given one is
// completed. The first phase is always reachable.
func (c *Candidate) PhaseReachable(phase Phase) bool {
	idx := PhaseIndex(phase)
	if idx < 0 {
		return false
	}
	for _, pp := range c.Progress {
		if PhaseIndex(pp.Phase) < idx && pp.Status != PhaseCompleted {
			return false
		}
	}
	return true
}

// SessionsRatio returns completed/plan for display, capping the numerator at
// the plan. Excess completions stay recorded on SessionsCompleted.
func (pp *PhaseProgress) SessionsRatio() (done, plan int) {
	done = pp.SessionsCompleted
	if pp.SessionsPlan > 0 && done > pp.SessionsPlan {
		done = pp.SessionsPlan
	}
	return done, pp.SessionsPlan
}

// Payment is one entry in a candidate's payment ledger. Amount is in cents.
type Payment struct {
	ID          string
	CandidateID string
	Amount      int
	PaidAt      time.Time
	Note        string
}
