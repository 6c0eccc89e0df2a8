package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/amezghal/autoecole/internal/testutil"
	"github.com/stretchr/testify/require"
)

type engine struct {
	db          *sql.DB
	candidates  repository.CandidateRepo
	instructors repository.InstructorRepo
	vehicles    repository.VehicleRepo
	lessons     repository.LessonRepo
	exams       repository.ExamRepo
	uow         db.UnitOfWork
}

func setupEngine(t *testing.T) *engine {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &engine{
		db:          database,
		candidates:  repository.NewSQLiteCandidateRepo(database),
		instructors: repository.NewSQLiteInstructorRepo(database),
		vehicles:    repository.NewSQLiteVehicleRepo(database),
		lessons:     repository.NewSQLiteLessonRepo(database),
		exams:       repository.NewSQLiteExamRepo(database),
		uow:         testutil.NewTestUoW(database),
	}
}

// newConcurrentTestDB creates a file-backed SQLite database in a temp
// directory. Unlike :memory:, a file-backed DB shares state across all
// connections in the pool, which is required to exercise real concurrent
// access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func (e *engine) seedCandidate(t *testing.T, opts ...testutil.CandidateOption) *domain.Candidate {
	t.Helper()
	cand := testutil.NewTestCandidate("Nadia", opts...)
	require.NoError(t, e.candidates.Create(context.Background(), cand))
	return cand
}

func (e *engine) seedInstructor(t *testing.T, opts ...testutil.InstructorOption) *domain.Instructor {
	t.Helper()
	instructor := testutil.NewTestInstructor("Karim", opts...)
	require.NoError(t, e.instructors.Create(context.Background(), instructor))
	return instructor
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}
