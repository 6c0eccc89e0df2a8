package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/amezghal/autoecole/internal/rules"
	"github.com/google/uuid"
)

type lessonService struct {
	lessons     repository.LessonRepo
	candidates  repository.CandidateRepo
	instructors repository.InstructorRepo
	uow         db.UnitOfWork
}

func NewLessonService(lessons repository.LessonRepo, candidates repository.CandidateRepo, instructors repository.InstructorRepo, uow db.UnitOfWork) LessonService {
	return &lessonService{lessons: lessons, candidates: candidates, instructors: instructors, uow: uow}
}

// Book runs the lesson check-and-reserve sequence. Lessons collide with
// lessons on the instructor and candidate dimensions; vehicles are tied 1:1
// to instructors and are deliberately not a scheduling dimension.
func (s *lessonService) Book(ctx context.Context, req contract.BookLessonRequest) (*domain.Lesson, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var lesson *domain.Lesson
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCandidates := repository.NewSQLiteCandidateRepo(tx)
		txLessons := repository.NewSQLiteLessonRepo(tx)
		txInstructors := repository.NewSQLiteInstructorRepo(tx)

		cand, err := txCandidates.GetByID(ctx, req.CandidateID)
		if err != nil {
			return err
		}
		if cand.Status != domain.CandidateActive {
			return fmt.Errorf("%w: candidate %s is %s", ErrInvalidState, cand.ID, cand.Status)
		}
		instructor, err := txInstructors.GetByID(ctx, req.InstructorID)
		if err != nil {
			return err
		}
		if instructor.Status != domain.InstructorActive {
			return fmt.Errorf("%w: instructor %s is inactive", ErrInvalidState, instructor.ID)
		}

		pp := cand.ProgressFor(req.LessonType)
		if pp == nil {
			return fmt.Errorf("%w: candidate has no progress for phase %s", ErrValidation, req.LessonType)
		}
		if pp.Status == domain.PhaseCompleted {
			return fmt.Errorf("%w: %s phase already completed", ErrInvalidState, req.LessonType)
		}
		if !cand.PhaseReachable(req.LessonType) {
			return fmt.Errorf("%w: previous phase not completed", ErrInvalidState)
		}

		if err := checkLessonSlot(ctx, txLessons, req.InstructorID, req.CandidateID, req.Day, req.Slot, ""); err != nil {
			return err
		}

		now := time.Now().UTC()
		lesson = &domain.Lesson{
			ID:           uuid.New().String(),
			CandidateID:  req.CandidateID,
			InstructorID: req.InstructorID,
			LessonType:   req.LessonType,
			Date:         rules.DateOnly(req.Day),
			Time:         req.Slot,
			Status:       domain.LessonScheduled,
			Notes:        req.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return txLessons.Create(ctx, lesson)
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// Complete marks a scheduled lesson as done and credits the candidate's
// phase quota in the same transaction.
func (s *lessonService) Complete(ctx context.Context, lessonID string) (*domain.Lesson, error) {
	var lesson *domain.Lesson
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCandidates := repository.NewSQLiteCandidateRepo(tx)
		txLessons := repository.NewSQLiteLessonRepo(tx)

		var err error
		lesson, err = txLessons.GetByID(ctx, lessonID)
		if err != nil {
			return err
		}
		if lesson.Status != domain.LessonScheduled {
			return fmt.Errorf("%w: lesson %s is %s, complete requires scheduled", ErrInvalidState, lesson.ID, lesson.Status)
		}

		cand, err := txCandidates.GetByID(ctx, lesson.CandidateID)
		if err != nil {
			return err
		}
		if err := rules.ApplyLessonCompletion(cand, lesson.LessonType); err != nil {
			return err
		}

		lesson.Status = domain.LessonCompleted
		if err := txLessons.Update(ctx, lesson); err != nil {
			return err
		}
		return txCandidates.Update(ctx, cand)
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *lessonService) Cancel(ctx context.Context, lessonID string) (*domain.Lesson, error) {
	var lesson *domain.Lesson
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLessons := repository.NewSQLiteLessonRepo(tx)

		var err error
		lesson, err = txLessons.GetByID(ctx, lessonID)
		if err != nil {
			return err
		}
		if lesson.Status != domain.LessonScheduled {
			return fmt.Errorf("%w: lesson %s is %s, cancel requires scheduled", ErrInvalidState, lesson.ID, lesson.Status)
		}
		lesson.Status = domain.LessonCancelled
		return txLessons.Update(ctx, lesson)
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *lessonService) Reschedule(ctx context.Context, req contract.RescheduleRequest) (*domain.Lesson, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var lesson *domain.Lesson
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLessons := repository.NewSQLiteLessonRepo(tx)

		var err error
		lesson, err = txLessons.GetByID(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if lesson.Status != domain.LessonScheduled {
			return fmt.Errorf("%w: lesson %s is %s, reschedule requires scheduled", ErrInvalidState, lesson.ID, lesson.Status)
		}

		instructorID := lesson.InstructorID
		if req.InstructorID != "" {
			instructorID = req.InstructorID
		}
		if err := checkLessonSlot(ctx, txLessons, instructorID, lesson.CandidateID, req.Day, req.Slot, lesson.ID); err != nil {
			return err
		}

		lesson.InstructorID = instructorID
		lesson.Date = rules.DateOnly(req.Day)
		lesson.Time = req.Slot
		return txLessons.Update(ctx, lesson)
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *lessonService) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	return s.lessons.GetByID(ctx, id)
}

func (s *lessonService) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Lesson, error) {
	return s.lessons.ListByCandidate(ctx, candidateID)
}

// checkLessonSlot rejects instructor and candidate double-bookings at the
// exact (date, time) slot. Lessons only collide with lessons.
func checkLessonSlot(ctx context.Context, lessons repository.LessonRepo, instructorID, candidateID string, day time.Time, slot string, excludeID string) error {
	matches, err := lessons.FindActiveAt(ctx, instructorID, candidateID, day, slot, excludeID)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if m.InstructorID == instructorID {
			return fmt.Errorf("%w: instructor already has a lesson scheduled at this time", ErrSchedulingConflict)
		}
		if m.CandidateID == candidateID {
			return fmt.Errorf("%w: candidate already has a lesson scheduled at this time", ErrSchedulingConflict)
		}
	}
	return nil
}
