package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/testutil"
	"github.com/stretchr/testify/require"
)

// seedBookingParents inserts a candidate and instructor so booking rows
// satisfy their foreign keys.
func seedBookingParents(t *testing.T, database *sql.DB) (*domain.Candidate, *domain.Instructor) {
	t.Helper()
	ctx := context.Background()

	cand := testutil.NewTestCandidate("Nadia")
	require.NoError(t, NewSQLiteCandidateRepo(database).Create(ctx, cand))

	instructor := testutil.NewTestInstructor("Karim")
	require.NoError(t, NewSQLiteInstructorRepo(database).Create(ctx, instructor))

	return cand, instructor
}
