package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
)

const examColumns = `id, candidate_id, instructor_id, exam_type, date, time, status, attempt_number, notes, created_at, updated_at`

// SQLiteExamRepo implements ExamRepo using a SQLite database.
type SQLiteExamRepo struct {
	db db.DBTX
}

// NewSQLiteExamRepo creates a new SQLiteExamRepo.
func NewSQLiteExamRepo(conn db.DBTX) *SQLiteExamRepo {
	return &SQLiteExamRepo{db: conn}
}

func (r *SQLiteExamRepo) Create(ctx context.Context, e *domain.Exam) error {
	query := `INSERT INTO exams (` + examColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.CandidateID,
		e.InstructorID,
		string(e.ExamType),
		e.Date.Format(dateLayout),
		e.Time,
		string(e.Status),
		e.AttemptNumber,
		e.Notes,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting exam: %w", err)
	}
	return nil
}

func (r *SQLiteExamRepo) GetByID(ctx context.Context, id string) (*domain.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE id = ?`
	return r.scanExam(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteExamRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE candidate_id = ? ORDER BY date, time`
	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("listing exams by candidate: %w", err)
	}
	defer rows.Close()
	return r.scanExams(rows)
}

func (r *SQLiteExamRepo) ListForDay(ctx context.Context, date time.Time) ([]*domain.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE date = ? ORDER BY time`
	rows, err := r.db.QueryContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing exams for day: %w", err)
	}
	defer rows.Close()
	return r.scanExams(rows)
}

func (r *SQLiteExamRepo) FindActiveAt(ctx context.Context, instructorID, candidateID string, date time.Time, slot string, excludeID string) ([]*domain.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams
		WHERE status = 'scheduled' AND date = ? AND time = ?
		  AND (instructor_id = ? OR candidate_id = ?)
		  AND id != ?`
	rows, err := r.db.QueryContext(ctx, query,
		date.Format(dateLayout), slot, instructorID, candidateID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("finding active exams at slot: %w", err)
	}
	defer rows.Close()
	return r.scanExams(rows)
}

func (r *SQLiteExamRepo) FindPending(ctx context.Context, candidateID string, phase domain.Phase) (*domain.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams
		WHERE candidate_id = ? AND exam_type = ? AND status = 'scheduled'`
	return r.scanExam(r.db.QueryRowContext(ctx, query, candidateID, string(phase)))
}

func (r *SQLiteExamRepo) CountResolved(ctx context.Context, candidateID string, phase domain.Phase) (int, error) {
	query := `SELECT COUNT(*) FROM exams
		WHERE candidate_id = ? AND exam_type = ? AND status IN ('passed','failed')`
	var n int
	if err := r.db.QueryRowContext(ctx, query, candidateID, string(phase)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting resolved exams: %w", err)
	}
	return n, nil
}

func (r *SQLiteExamRepo) MostRecentResolved(ctx context.Context, candidateID string, phase domain.Phase) (*domain.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams
		WHERE candidate_id = ? AND exam_type = ? AND status IN ('passed','failed')
		ORDER BY date DESC, updated_at DESC LIMIT 1`
	return r.scanExam(r.db.QueryRowContext(ctx, query, candidateID, string(phase)))
}

func (r *SQLiteExamRepo) Update(ctx context.Context, e *domain.Exam) error {
	query := `UPDATE exams SET instructor_id = ?, exam_type = ?, date = ?, time = ?,
		status = ?, attempt_number = ?, notes = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.InstructorID,
		string(e.ExamType),
		e.Date.Format(dateLayout),
		e.Time,
		string(e.Status),
		e.AttemptNumber,
		e.Notes,
		time.Now().UTC().Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating exam: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("exam %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteExamRepo) scanExam(row *sql.Row) (*domain.Exam, error) {
	var e domain.Exam
	var examType, status, dateStr, createdAtStr, updatedAtStr string

	err := row.Scan(&e.ID, &e.CandidateID, &e.InstructorID, &examType, &dateStr,
		&e.Time, &status, &e.AttemptNumber, &e.Notes, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("exam: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning exam: %w", err)
	}
	return r.populateExam(&e, examType, status, dateStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteExamRepo) scanExams(rows *sql.Rows) ([]*domain.Exam, error) {
	var exams []*domain.Exam
	for rows.Next() {
		var e domain.Exam
		var examType, status, dateStr, createdAtStr, updatedAtStr string

		err := rows.Scan(&e.ID, &e.CandidateID, &e.InstructorID, &examType, &dateStr,
			&e.Time, &status, &e.AttemptNumber, &e.Notes, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning exam row: %w", err)
		}
		exam, parseErr := r.populateExam(&e, examType, status, dateStr, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exams: %w", err)
	}
	return exams, nil
}

func (r *SQLiteExamRepo) populateExam(e *domain.Exam, examType, status, dateStr, createdAtStr, updatedAtStr string) (*domain.Exam, error) {
	e.ExamType = domain.Phase(examType)
	e.Status = domain.ExamStatus(status)

	var parseErr error
	e.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing exam date: %w", parseErr)
	}
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return e, nil
}
