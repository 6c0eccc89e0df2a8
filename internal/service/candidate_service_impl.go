package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/google/uuid"
)

type candidateService struct {
	candidates repository.CandidateRepo
	uow        db.UnitOfWork
}

func NewCandidateService(candidates repository.CandidateRepo, uow db.UnitOfWork) CandidateService {
	return &candidateService{candidates: candidates, uow: uow}
}

// Enroll registers a candidate with the fixed three-phase progress set. The
// first phase starts in_progress; later phases unlock as exams are passed.
func (s *candidateService) Enroll(ctx context.Context, req contract.EnrollCandidateRequest) (*domain.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := time.Now().UTC()
	cand := &domain.Candidate{
		ID:              uuid.New().String(),
		Name:            req.Name,
		LicenseCategory: req.LicenseCategory,
		Status:          domain.CandidateActive,
		Progress:        domain.NewProgressSet(req.EffectivePlans()),
		TotalFee:        req.TotalFee,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if cand.LicenseCategory == "" {
		cand.LicenseCategory = "B"
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCandidateRepo(tx).Create(ctx, cand)
	})
	if err != nil {
		return nil, err
	}
	return cand, nil
}

func (s *candidateService) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	return s.candidates.GetByID(ctx, id)
}

func (s *candidateService) List(ctx context.Context, includeDeleted bool) ([]*domain.Candidate, error) {
	return s.candidates.List(ctx, includeDeleted)
}

func (s *candidateService) Update(ctx context.Context, c *domain.Candidate) error {
	return s.candidates.Update(ctx, c)
}

func (s *candidateService) Delete(ctx context.Context, id string) error {
	return s.candidates.Delete(ctx, id)
}

// RecordPayment appends a ledger entry and keeps the candidate's PaidAmount
// total consistent with the ledger, in one transaction.
func (s *candidateService) RecordPayment(ctx context.Context, req contract.RecordPaymentRequest) (*domain.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var cand *domain.Candidate
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCandidates := repository.NewSQLiteCandidateRepo(tx)

		var err error
		cand, err = txCandidates.GetByID(ctx, req.CandidateID)
		if err != nil {
			return err
		}
		if cand.Status == domain.CandidateDeleted {
			return fmt.Errorf("%w: candidate %s is deleted", ErrInvalidState, cand.ID)
		}
		if cand.TotalFee > 0 && cand.PaidAmount+req.Amount > cand.TotalFee {
			return fmt.Errorf("%w: payment would exceed total fee", ErrValidation)
		}

		payment := &domain.Payment{
			ID:          uuid.New().String(),
			CandidateID: cand.ID,
			Amount:      req.Amount,
			PaidAt:      time.Now().UTC(),
			Note:        req.Note,
		}
		if err := txCandidates.AddPayment(ctx, payment); err != nil {
			return err
		}

		cand.PaidAmount += req.Amount
		return txCandidates.Update(ctx, cand)
	})
	if err != nil {
		return nil, err
	}
	return cand, nil
}

func (s *candidateService) ListPayments(ctx context.Context, candidateID string) ([]*domain.Payment, error) {
	return s.candidates.ListPayments(ctx, candidateID)
}
