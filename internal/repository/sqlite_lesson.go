package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
)

const lessonColumns = `id, candidate_id, instructor_id, lesson_type, date, time, status, notes, created_at, updated_at`

// SQLiteLessonRepo implements LessonRepo using a SQLite database.
type SQLiteLessonRepo struct {
	db db.DBTX
}

// NewSQLiteLessonRepo creates a new SQLiteLessonRepo.
func NewSQLiteLessonRepo(conn db.DBTX) *SQLiteLessonRepo {
	return &SQLiteLessonRepo{db: conn}
}

func (r *SQLiteLessonRepo) Create(ctx context.Context, l *domain.Lesson) error {
	query := `INSERT INTO lessons (` + lessonColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.CandidateID,
		l.InstructorID,
		string(l.LessonType),
		l.Date.Format(dateLayout),
		l.Time,
		string(l.Status),
		l.Notes,
		l.CreatedAt.Format(time.RFC3339),
		l.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting lesson: %w", err)
	}
	return nil
}

func (r *SQLiteLessonRepo) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ?`
	return r.scanLesson(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteLessonRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE candidate_id = ? ORDER BY date, time`
	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("listing lessons by candidate: %w", err)
	}
	defer rows.Close()
	return r.scanLessons(rows)
}

func (r *SQLiteLessonRepo) ListForDay(ctx context.Context, date time.Time) ([]*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE date = ? ORDER BY time`
	rows, err := r.db.QueryContext(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing lessons for day: %w", err)
	}
	defer rows.Close()
	return r.scanLessons(rows)
}

func (r *SQLiteLessonRepo) FindActiveAt(ctx context.Context, instructorID, candidateID string, date time.Time, slot string, excludeID string) ([]*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons
		WHERE status = 'scheduled' AND date = ? AND time = ?
		  AND (instructor_id = ? OR candidate_id = ?)
		  AND id != ?`
	rows, err := r.db.QueryContext(ctx, query,
		date.Format(dateLayout), slot, instructorID, candidateID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("finding active lessons at slot: %w", err)
	}
	defer rows.Close()
	return r.scanLessons(rows)
}

func (r *SQLiteLessonRepo) Update(ctx context.Context, l *domain.Lesson) error {
	query := `UPDATE lessons SET instructor_id = ?, lesson_type = ?, date = ?, time = ?,
		status = ?, notes = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		l.InstructorID,
		string(l.LessonType),
		l.Date.Format(dateLayout),
		l.Time,
		string(l.Status),
		l.Notes,
		time.Now().UTC().Format(time.RFC3339),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating lesson: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("lesson %s: %w", l.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteLessonRepo) scanLesson(row *sql.Row) (*domain.Lesson, error) {
	var l domain.Lesson
	var lessonType, status, dateStr, createdAtStr, updatedAtStr string

	err := row.Scan(&l.ID, &l.CandidateID, &l.InstructorID, &lessonType, &dateStr,
		&l.Time, &status, &l.Notes, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lesson: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning lesson: %w", err)
	}
	return r.populateLesson(&l, lessonType, status, dateStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteLessonRepo) scanLessons(rows *sql.Rows) ([]*domain.Lesson, error) {
	var lessons []*domain.Lesson
	for rows.Next() {
		var l domain.Lesson
		var lessonType, status, dateStr, createdAtStr, updatedAtStr string

		err := rows.Scan(&l.ID, &l.CandidateID, &l.InstructorID, &lessonType, &dateStr,
			&l.Time, &status, &l.Notes, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning lesson row: %w", err)
		}
		lesson, parseErr := r.populateLesson(&l, lessonType, status, dateStr, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lessons: %w", err)
	}
	return lessons, nil
}

func (r *SQLiteLessonRepo) populateLesson(l *domain.Lesson, lessonType, status, dateStr, createdAtStr, updatedAtStr string) (*domain.Lesson, error) {
	l.LessonType = domain.Phase(lessonType)
	l.Status = domain.LessonStatus(status)

	var parseErr error
	l.Date, parseErr = time.Parse(dateLayout, dateStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing lesson date: %w", parseErr)
	}
	l.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	l.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return l, nil
}
