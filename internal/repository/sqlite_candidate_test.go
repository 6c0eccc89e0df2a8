package repository

import (
	"context"
	"testing"
	"time"

	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCandidateRepo(database)
	ctx := context.Background()

	cand := testutil.NewTestCandidate("Nadia", testutil.WithTotalFee(150000))
	require.NoError(t, repo.Create(ctx, cand))

	got, err := repo.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	assert.Equal(t, cand.Name, got.Name)
	assert.Equal(t, "B", got.LicenseCategory)
	assert.Equal(t, domain.CandidateActive, got.Status)
	assert.Equal(t, 150000, got.TotalFee)

	require.Len(t, got.Progress, 3)
	assert.Equal(t, domain.PhaseHighwayCode, got.Progress[0].Phase)
	assert.Equal(t, domain.PhaseInProgress, got.Progress[0].Status)
	assert.Equal(t, 20, got.Progress[0].SessionsPlan)
	assert.Equal(t, domain.PhaseNotStarted, got.Progress[1].Status)
}

func TestCandidateRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCandidateRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCandidateRepo_ProgressOrderCanonical(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCandidateRepo(database)
	ctx := context.Background()

	// Insert progress rows in reverse phase order.
	cand := testutil.NewTestCandidate("Omar")
	cand.Progress[0], cand.Progress[2] = cand.Progress[2], cand.Progress[0]
	require.NoError(t, repo.Create(ctx, cand))

	got, err := repo.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	require.Len(t, got.Progress, 3)
	assert.Equal(t, domain.PhaseHighwayCode, got.Progress[0].Phase)
	assert.Equal(t, domain.PhaseParking, got.Progress[1].Phase)
	assert.Equal(t, domain.PhaseDriving, got.Progress[2].Phase)
}

func TestCandidateRepo_UpdatePersistsProgress(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCandidateRepo(database)
	ctx := context.Background()

	cand := testutil.NewTestCandidate("Lina")
	require.NoError(t, repo.Create(ctx, cand))

	day := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	pp := cand.ProgressFor(domain.PhaseHighwayCode)
	pp.SessionsCompleted = 7
	pp.ExamAttempts = 2
	pp.LastExamDate = &day
	cand.PaidAmount = 40000
	require.NoError(t, repo.Update(ctx, cand))

	got, err := repo.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	assert.Equal(t, 40000, got.PaidAmount)
	gotPP := got.ProgressFor(domain.PhaseHighwayCode)
	assert.Equal(t, 7, gotPP.SessionsCompleted)
	assert.Equal(t, 2, gotPP.ExamAttempts)
	require.NotNil(t, gotPP.LastExamDate)
	assert.Equal(t, "2024-10-01", gotPP.LastExamDate.Format("2006-01-02"))
	assert.Nil(t, gotPP.ExamDate)
}

func TestCandidateRepo_UpdateMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCandidateRepo(database)

	cand := testutil.NewTestCandidate("Ghost")
	err := repo.Update(context.Background(), cand)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCandidateRepo_SoftDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCandidateRepo(database)
	ctx := context.Background()

	cand := testutil.NewTestCandidate("Sami")
	require.NoError(t, repo.Create(ctx, cand))
	require.NoError(t, repo.Delete(ctx, cand.ID))

	// Row survives with deleted status.
	got, err := repo.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CandidateDeleted, got.Status)

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
}

func TestCandidateRepo_Payments(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCandidateRepo(database)
	ctx := context.Background()

	cand := testutil.NewTestCandidate("Yara")
	require.NoError(t, repo.Create(ctx, cand))

	require.NoError(t, repo.AddPayment(ctx, &domain.Payment{
		ID: "p-1", CandidateID: cand.ID, Amount: 30000,
		PaidAt: time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC), Note: "deposit",
	}))
	require.NoError(t, repo.AddPayment(ctx, &domain.Payment{
		ID: "p-2", CandidateID: cand.ID, Amount: 20000,
		PaidAt: time.Date(2024, 10, 1, 10, 0, 0, 0, time.UTC),
	}))

	payments, err := repo.ListPayments(ctx, cand.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "p-1", payments[0].ID, "ordered by paid_at")
	assert.Equal(t, 30000, payments[0].Amount)
	assert.Equal(t, "deposit", payments[0].Note)
}
