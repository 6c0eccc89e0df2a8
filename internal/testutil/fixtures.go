package testutil

import (
	"time"

	"github.com/amezghal/autoecole/internal/domain"
	"github.com/google/uuid"
)

// Candidate options
type CandidateOption func(*domain.Candidate)

func WithCandidateStatus(s domain.CandidateStatus) CandidateOption {
	return func(c *domain.Candidate) {
		c.Status = s
	}
}

func WithTotalFee(cents int) CandidateOption {
	return func(c *domain.Candidate) {
		c.TotalFee = cents
	}
}

// WithPhaseStatus overrides one phase's progress status.
func WithPhaseStatus(phase domain.Phase, s domain.PhaseStatus) CandidateOption {
	return func(c *domain.Candidate) {
		if pp := c.ProgressFor(phase); pp != nil {
			pp.Status = s
		}
	}
}

// WithPhasePassed marks a phase's exam as passed and the phase completed.
func WithPhasePassed(phase domain.Phase) CandidateOption {
	return func(c *domain.Candidate) {
		if pp := c.ProgressFor(phase); pp != nil {
			pp.Status = domain.PhaseCompleted
			pp.ExamPassed = true
		}
	}
}

func WithSessionsPlan(phase domain.Phase, plan int) CandidateOption {
	return func(c *domain.Candidate) {
		if pp := c.ProgressFor(phase); pp != nil {
			pp.SessionsPlan = plan
		}
	}
}

// NewTestCandidate builds an enrolled candidate: three-phase progress set,
// highway_code in progress, default quotas.
func NewTestCandidate(name string, opts ...CandidateOption) *domain.Candidate {
	now := time.Now().UTC()
	c := &domain.Candidate{
		ID:              uuid.New().String(),
		Name:            name,
		LicenseCategory: "B",
		Status:          domain.CandidateActive,
		Progress: domain.NewProgressSet(map[domain.Phase]int{
			domain.PhaseHighwayCode: 20,
			domain.PhaseParking:     10,
			domain.PhaseDriving:     20,
		}),
		TotalFee:  120000,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Instructor options
type InstructorOption func(*domain.Instructor)

func WithInstructorStatus(s domain.InstructorStatus) InstructorOption {
	return func(in *domain.Instructor) {
		in.Status = s
	}
}

func NewTestInstructor(name string, opts ...InstructorOption) *domain.Instructor {
	now := time.Now().UTC()
	in := &domain.Instructor{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.InstructorActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func NewTestVehicle(plate, model string) *domain.Vehicle {
	now := time.Now().UTC()
	return &domain.Vehicle{
		ID:        uuid.New().String(),
		Plate:     plate,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Exam options
type ExamOption func(*domain.Exam)

func WithExamStatus(s domain.ExamStatus) ExamOption {
	return func(e *domain.Exam) {
		e.Status = s
	}
}

func WithExamDate(date time.Time) ExamOption {
	return func(e *domain.Exam) {
		e.Date = date
	}
}

func WithExamSlot(slot string) ExamOption {
	return func(e *domain.Exam) {
		e.Time = slot
	}
}

func WithAttemptNumber(n int) ExamOption {
	return func(e *domain.Exam) {
		e.AttemptNumber = n
	}
}

func NewTestExam(candidateID, instructorID string, phase domain.Phase, opts ...ExamOption) *domain.Exam {
	now := time.Now().UTC()
	e := &domain.Exam{
		ID:            uuid.New().String(),
		CandidateID:   candidateID,
		InstructorID:  instructorID,
		ExamType:      phase,
		Date:          now.Truncate(24 * time.Hour),
		Time:          "09:00",
		Status:        domain.ExamScheduled,
		AttemptNumber: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lesson options
type LessonOption func(*domain.Lesson)

func WithLessonStatus(s domain.LessonStatus) LessonOption {
	return func(l *domain.Lesson) {
		l.Status = s
	}
}

func WithLessonDate(date time.Time) LessonOption {
	return func(l *domain.Lesson) {
		l.Date = date
	}
}

func WithLessonSlot(slot string) LessonOption {
	return func(l *domain.Lesson) {
		l.Time = slot
	}
}

func NewTestLesson(candidateID, instructorID string, phase domain.Phase, opts ...LessonOption) *domain.Lesson {
	now := time.Now().UTC()
	l := &domain.Lesson{
		ID:           uuid.New().String(),
		CandidateID:  candidateID,
		InstructorID: instructorID,
		LessonType:   phase,
		Date:         now.Truncate(24 * time.Hour),
		Time:         "10:00",
		Status:       domain.LessonScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
