package domain

// Phase is one of the three sequential licensing stages. Order matters:
// advancement walks Phases front to back and never skips.
type Phase string

const (
	PhaseHighwayCode Phase = "highway_code"
	PhaseParking     Phase = "parking"
	PhaseDriving     Phase = "driving"
)

// Phases is the canonical phase order. All order-dependent logic
// (advancement, graduation) derives from this slice.
var Phases = []Phase{PhaseHighwayCode, PhaseParking, PhaseDriving}

// PhaseIndex returns the position of p in the canonical order, or -1 if p is
// not a known phase.
func PhaseIndex(p Phase) int {
	for i, ph := range Phases {
		if ph == p {
			return i
		}
	}
	return -1
}

// NextPhase returns the phase following p, or "" if p is the last phase or unknown.
func NextPhase(p Phase) Phase {
	i := PhaseIndex(p)
	if i < 0 || i == len(Phases)-1 {
		return ""
	}
	return Phases[i+1]
}

// ValidPhase reports whether p is a member of the closed phase enumeration.
func ValidPhase(p Phase) bool {
	return PhaseIndex(p) >= 0
}

type PhaseStatus string

const (
	PhaseNotStarted PhaseStatus = "not_started"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseCompleted  PhaseStatus = "completed"
	PhaseFailed     PhaseStatus = "failed"
)

type CandidateStatus string

const (
	CandidateActive    CandidateStatus = "active"
	CandidateCompleted CandidateStatus = "completed"
	CandidateDeleted   CandidateStatus = "deleted"
)

type ExamStatus string

const (
	ExamScheduled ExamStatus = "scheduled"
	ExamPassed    ExamStatus = "passed"
	ExamFailed    ExamStatus = "failed"
	ExamCancelled ExamStatus = "cancelled"
)

// Resolved reports whether the status counts as a resolved attempt.
// Cancelled exams free the slot without consuming an attempt.
func (s ExamStatus) Resolved() bool {
	return s == ExamPassed || s == ExamFailed
}

type LessonStatus string

const (
	LessonScheduled LessonStatus = "scheduled"
	LessonCompleted LessonStatus = "completed"
	LessonCancelled LessonStatus = "cancelled"
)

// ExamResult is the outcome recorded against a scheduled exam.
type ExamResult string

const (
	ResultPassed ExamResult = "passed"
	ResultFailed ExamResult = "failed"
)

// ValidExamResult reports whether r is a member of the closed result enumeration.
func ValidExamResult(r ExamResult) bool {
	return r == ResultPassed || r == ResultFailed
}

type InstructorStatus string

const (
	InstructorActive   InstructorStatus = "active"
	InstructorInactive InstructorStatus = "inactive"
)
