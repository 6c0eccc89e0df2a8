package repository

import (
	"context"
	"time"

	"github.com/amezghal/autoecole/internal/domain"
)

type CandidateRepo interface {
	Create(ctx context.Context, c *domain.Candidate) error
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	List(ctx context.Context, includeDeleted bool) ([]*domain.Candidate, error)
	Update(ctx context.Context, c *domain.Candidate) error
	Delete(ctx context.Context, id string) error
	AddPayment(ctx context.Context, p *domain.Payment) error
	ListPayments(ctx context.Context, candidateID string) ([]*domain.Payment, error)
}

type InstructorRepo interface {
	Create(ctx context.Context, in *domain.Instructor) error
	GetByID(ctx context.Context, id string) (*domain.Instructor, error)
	List(ctx context.Context) ([]*domain.Instructor, error)
	Update(ctx context.Context, in *domain.Instructor) error
}

type VehicleRepo interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
}

// ExamRepo is the exam side of the booking ledger: append-style storage plus
// the slot and attempt queries the engine checks against. No business rules
// live here.
type ExamRepo interface {
	Create(ctx context.Context, e *domain.Exam) error
	GetByID(ctx context.Context, id string) (*domain.Exam, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Exam, error)
	ListForDay(ctx context.Context, date time.Time) ([]*domain.Exam, error)
	// FindActiveAt returns scheduled exams at the exact (date, time) slot
	// touching either the instructor or the candidate. excludeID skips a
	// booking's own row on the update path.
	FindActiveAt(ctx context.Context, instructorID, candidateID string, date time.Time, slot string, excludeID string) ([]*domain.Exam, error)
	// FindPending returns the candidate's scheduled exam for the phase, or
	// ErrNotFound when there is none.
	FindPending(ctx context.Context, candidateID string, phase domain.Phase) (*domain.Exam, error)
	CountResolved(ctx context.Context, candidateID string, phase domain.Phase) (int, error)
	// MostRecentResolved returns the latest passed or failed exam for the
	// phase, or ErrNotFound when the candidate has no resolved attempt.
	MostRecentResolved(ctx context.Context, candidateID string, phase domain.Phase) (*domain.Exam, error)
	Update(ctx context.Context, e *domain.Exam) error
}

// LessonRepo is the lesson side of the booking ledger.
type LessonRepo interface {
	Create(ctx context.Context, l *domain.Lesson) error
	GetByID(ctx context.Context, id string) (*domain.Lesson, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Lesson, error)
	ListForDay(ctx context.Context, date time.Time) ([]*domain.Lesson, error)
	FindActiveAt(ctx context.Context, instructorID, candidateID string, date time.Time, slot string, excludeID string) ([]*domain.Lesson, error)
	Update(ctx context.Context, l *domain.Lesson) error
}
