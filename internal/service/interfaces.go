package service

import (
	"context"
	"time"

	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/domain"
)

type CandidateService interface {
	Enroll(ctx context.Context, req contract.EnrollCandidateRequest) (*domain.Candidate, error)
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	List(ctx context.Context, includeDeleted bool) ([]*domain.Candidate, error)
	Update(ctx context.Context, c *domain.Candidate) error
	Delete(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, req contract.RecordPaymentRequest) (*domain.Candidate, error)
	ListPayments(ctx context.Context, candidateID string) ([]*domain.Payment, error)
}

type InstructorService interface {
	Create(ctx context.Context, in *domain.Instructor) error
	GetByID(ctx context.Context, id string) (*domain.Instructor, error)
	List(ctx context.Context) ([]*domain.Instructor, error)
	AssignVehicle(ctx context.Context, instructorID, vehicleID string) error
	UnassignVehicle(ctx context.Context, instructorID string) error
}

type VehicleService interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
}

type LessonService interface {
	Book(ctx context.Context, req contract.BookLessonRequest) (*domain.Lesson, error)
	Complete(ctx context.Context, lessonID string) (*domain.Lesson, error)
	Cancel(ctx context.Context, lessonID string) (*domain.Lesson, error)
	Reschedule(ctx context.Context, req contract.RescheduleRequest) (*domain.Lesson, error)
	GetByID(ctx context.Context, id string) (*domain.Lesson, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Lesson, error)
}

type ExamService interface {
	Schedule(ctx context.Context, req contract.ScheduleExamRequest) (*domain.Exam, error)
	CanTake(ctx context.Context, candidateID string, phase domain.Phase, asOf time.Time) (contract.EligibilityDecision, error)
	RecordResult(ctx context.Context, req contract.RecordResultRequest) (*domain.Exam, error)
	Cancel(ctx context.Context, examID string) (*domain.Exam, error)
	Reschedule(ctx context.Context, req contract.RescheduleRequest) (*domain.Exam, error)
	GetByID(ctx context.Context, id string) (*domain.Exam, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Exam, error)
}

type ScheduleService interface {
	Agenda(ctx context.Context, date time.Time) (*contract.DayAgenda, error)
}
