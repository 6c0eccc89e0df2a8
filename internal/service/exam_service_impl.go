package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/amezghal/autoecole/internal/rules"
	"github.com/google/uuid"
)

type examService struct {
	exams       repository.ExamRepo
	candidates  repository.CandidateRepo
	instructors repository.InstructorRepo
	uow         db.UnitOfWork
}

func NewExamService(exams repository.ExamRepo, candidates repository.CandidateRepo, instructors repository.InstructorRepo, uow db.UnitOfWork) ExamService {
	return &examService{exams: exams, candidates: candidates, instructors: instructors, uow: uow}
}

// Schedule runs the full check-and-reserve sequence for an exam slot inside
// one transaction: eligibility first, then slot conflicts, then the insert.
func (s *examService) Schedule(ctx context.Context, req contract.ScheduleExamRequest) (*domain.Exam, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var exam *domain.Exam
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCandidates := repository.NewSQLiteCandidateRepo(tx)
		txExams := repository.NewSQLiteExamRepo(tx)
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

		if err := checkExamEligibility(ctx, txExams, cand, req.ExamType, time.Now().UTC()); err != nil {
			return err
		}
		if err := checkExamSlot(ctx, txExams, req.InstructorID, req.CandidateID, req.Day, req.Slot, ""); err != nil {
			return err
		}

		resolved, err := txExams.CountResolved(ctx, req.CandidateID, req.ExamType)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		exam = &domain.Exam{
			ID:            uuid.New().String(),
			CandidateID:   req.CandidateID,
			InstructorID:  req.InstructorID,
			ExamType:      req.ExamType,
			Date:          rules.DateOnly(req.Day),
			Time:          req.Slot,
			Status:        domain.ExamScheduled,
			AttemptNumber: resolved + 1,
			Notes:         req.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := txExams.Create(ctx, exam); err != nil {
			return err
		}

		day := rules.DateOnly(req.Day)
		cand.ProgressFor(req.ExamType).ExamDate = &day
		return txCandidates.Update(ctx, cand)
	})
	if err != nil {
		return nil, err
	}
	return exam, nil
}

// CanTake is the read-only eligibility evaluator: cooldown, already-passed,
// and pending-attempt checks for (candidate, phase) as of the given instant.
func (s *examService) CanTake(ctx context.Context, candidateID string, phase domain.Phase, asOf time.Time) (contract.EligibilityDecision, error) {
	if !domain.ValidPhase(phase) {
		return contract.EligibilityDecision{}, fmt.Errorf("%w: unknown phase %q", ErrValidation, phase)
	}
	cand, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return contract.EligibilityDecision{}, err
	}

	pp := cand.ProgressFor(phase)
	if pp == nil {
		return contract.EligibilityDecision{}, fmt.Errorf("%w: candidate has no progress for phase %s", ErrValidation, phase)
	}
	if pp.ExamPassed {
		return contract.EligibilityDecision{Reason: fmt.Sprintf("%s exam already passed", phase)}, nil
	}
	if !cand.PhaseReachable(phase) {
		return contract.EligibilityDecision{Reason: "previous phase not completed"}, nil
	}
	if _, err := s.exams.FindPending(ctx, candidateID, phase); err == nil {
		return contract.EligibilityDecision{Reason: "an exam attempt is already scheduled for this phase"}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return contract.EligibilityDecision{}, err
	}

	return s.cooldownDecision(ctx, candidateID, phase, asOf)
}

func (s *examService) cooldownDecision(ctx context.Context, candidateID string, phase domain.Phase, asOf time.Time) (contract.EligibilityDecision, error) {
	last, err := s.exams.MostRecentResolved(ctx, candidateID, phase)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return contract.EligibilityDecision{CanTake: true}, nil
		}
		return contract.EligibilityDecision{}, err
	}
	return rules.Cooldown(&last.Date, asOf), nil
}

// RecordResult resolves a scheduled exam and drives the candidate's phase
// progression in the same transaction.
func (s *examService) RecordResult(ctx context.Context, req contract.RecordResultRequest) (*domain.Exam, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var exam *domain.Exam
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCandidates := repository.NewSQLiteCandidateRepo(tx)
		txExams := repository.NewSQLiteExamRepo(tx)

		var err error
		exam, err = txExams.GetByID(ctx, req.ExamID)
		if err != nil {
			return err
		}
		if exam.Status != domain.ExamScheduled {
			return fmt.Errorf("%w: exam %s is %s, result requires scheduled", ErrInvalidState, exam.ID, exam.Status)
		}

		cand, err := txCandidates.GetByID(ctx, exam.CandidateID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		exam.Status = domain.ExamStatus(req.Result)
		if req.Notes != "" {
			exam.Notes = req.Notes
		}
		if err := rules.ApplyExamResult(cand, exam.ExamType, req.Result, now); err != nil {
			return err
		}

		if err := txExams.Update(ctx, exam); err != nil {
			return err
		}
		return txCandidates.Update(ctx, cand)
	})
	if err != nil {
		return nil, err
	}
	return exam, nil
}

// Cancel frees a scheduled slot without consuming an attempt.
func (s *examService) Cancel(ctx context.Context, examID string) (*domain.Exam, error) {
	var exam *domain.Exam
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCandidates := repository.NewSQLiteCandidateRepo(tx)
		txExams := repository.NewSQLiteExamRepo(tx)

		var err error
		exam, err = txExams.GetByID(ctx, examID)
		if err != nil {
			return err
		}
		if exam.Status != domain.ExamScheduled {
			return fmt.Errorf("%w: exam %s is %s, cancel requires scheduled", ErrInvalidState, exam.ID, exam.Status)
		}
		exam.Status = domain.ExamCancelled
		if err := txExams.Update(ctx, exam); err != nil {
			return err
		}

		cand, err := txCandidates.GetByID(ctx, exam.CandidateID)
		if err != nil {
			return err
		}
		if pp := cand.ProgressFor(exam.ExamType); pp != nil {
			pp.ExamDate = nil
		}
		return txCandidates.Update(ctx, cand)
	})
	if err != nil {
		return nil, err
	}
	return exam, nil
}

// Reschedule moves a scheduled exam, re-running the slot conflict check with
// the exam's own row excluded.
func (s *examService) Reschedule(ctx context.Context, req contract.RescheduleRequest) (*domain.Exam, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var exam *domain.Exam
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCandidates := repository.NewSQLiteCandidateRepo(tx)
		txExams := repository.NewSQLiteExamRepo(tx)

		var err error
		exam, err = txExams.GetByID(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if exam.Status != domain.ExamScheduled {
			return fmt.Errorf("%w: exam %s is %s, reschedule requires scheduled", ErrInvalidState, exam.ID, exam.Status)
		}

		instructorID := exam.InstructorID
		if req.InstructorID != "" {
			instructorID = req.InstructorID
		}
		if err := checkExamSlot(ctx, txExams, instructorID, exam.CandidateID, req.Day, req.Slot, exam.ID); err != nil {
			return err
		}

		exam.InstructorID = instructorID
		exam.Date = rules.DateOnly(req.Day)
		exam.Time = req.Slot
		if err := txExams.Update(ctx, exam); err != nil {
			return err
		}

		cand, err := txCandidates.GetByID(ctx, exam.CandidateID)
		if err != nil {
			return err
		}
		if pp := cand.ProgressFor(exam.ExamType); pp != nil {
			day := exam.Date
			pp.ExamDate = &day
		}
		return txCandidates.Update(ctx, cand)
	})
	if err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *examService) GetByID(ctx context.Context, id string) (*domain.Exam, error) {
	return s.exams.GetByID(ctx, id)
}

func (s *examService) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Exam, error) {
	return s.exams.ListByCandidate(ctx, candidateID)
}

// checkExamEligibility enforces the hard-reject eligibility rules at
// scheduling time: reachable phase, not already passed, no pending attempt,
// cooldown elapsed.
func checkExamEligibility(ctx context.Context, exams repository.ExamRepo, cand *domain.Candidate, phase domain.Phase, asOf time.Time) error {
	pp := cand.ProgressFor(phase)
	if pp == nil {
		return fmt.Errorf("%w: candidate has no progress for phase %s", ErrValidation, phase)
	}
	if pp.ExamPassed {
		return fmt.Errorf("%w: %s exam already passed", ErrNotEligibleYet, phase)
	}
	if !cand.PhaseReachable(phase) {
		return fmt.Errorf("%w: previous phase not completed", ErrNotEligibleYet)
	}

	if _, err := exams.FindPending(ctx, cand.ID, phase); err == nil {
		return fmt.Errorf("%w: an exam attempt is already scheduled for this phase", ErrNotEligibleYet)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	last, err := exams.MostRecentResolved(ctx, cand.ID, phase)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if decision := rules.Cooldown(&last.Date, asOf); !decision.CanTake {
		return fmt.Errorf("%w: %s", ErrNotEligibleYet, decision.Reason)
	}
	return nil
}

// checkExamSlot rejects instructor and candidate double-bookings at the
// exact (date, time) slot. Exams only collide with exams.
func checkExamSlot(ctx context.Context, exams repository.ExamRepo, instructorID, candidateID string, day time.Time, slot string, excludeID string) error {
	matches, err := exams.FindActiveAt(ctx, instructorID, candidateID, day, slot, excludeID)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if m.InstructorID == instructorID {
			return fmt.Errorf("%w: instructor already has an exam scheduled at this time", ErrSchedulingConflict)
		}
		if m.CandidateID == candidateID {
			return fmt.Errorf("%w: candidate already has an exam scheduled at this time", ErrSchedulingConflict)
		}
	}
	return nil
}
