package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
)

// SQLiteInstructorRepo implements InstructorRepo using a SQLite database.
type SQLiteInstructorRepo struct {
	db db.DBTX
}

// NewSQLiteInstructorRepo creates a new SQLiteInstructorRepo.
func NewSQLiteInstructorRepo(conn db.DBTX) *SQLiteInstructorRepo {
	return &SQLiteInstructorRepo{db: conn}
}

func (r *SQLiteInstructorRepo) Create(ctx context.Context, in *domain.Instructor) error {
	query := `INSERT INTO instructors (id, name, status, vehicle_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		in.ID,
		in.Name,
		string(in.Status),
		strToNullable(in.VehicleID),
		in.CreatedAt.Format(time.RFC3339),
		in.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting instructor: %w", err)
	}
	return nil
}

func (r *SQLiteInstructorRepo) GetByID(ctx context.Context, id string) (*domain.Instructor, error) {
	query := `SELECT id, name, status, vehicle_id, created_at, updated_at FROM instructors WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var in domain.Instructor
	var statusStr, createdAtStr, updatedAtStr string
	var vehicleID sql.NullString

	err := row.Scan(&in.ID, &in.Name, &statusStr, &vehicleID, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("instructor: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning instructor: %w", err)
	}
	return r.populateInstructor(&in, statusStr, vehicleID, createdAtStr, updatedAtStr)
}

func (r *SQLiteInstructorRepo) List(ctx context.Context) ([]*domain.Instructor, error) {
	query := `SELECT id, name, status, vehicle_id, created_at, updated_at FROM instructors ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing instructors: %w", err)
	}
	defer rows.Close()

	var instructors []*domain.Instructor
	for rows.Next() {
		var in domain.Instructor
		var statusStr, createdAtStr, updatedAtStr string
		var vehicleID sql.NullString

		if err := rows.Scan(&in.ID, &in.Name, &statusStr, &vehicleID, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning instructor row: %w", err)
		}
		instructor, parseErr := r.populateInstructor(&in, statusStr, vehicleID, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		instructors = append(instructors, instructor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating instructors: %w", err)
	}
	return instructors, nil
}

func (r *SQLiteInstructorRepo) Update(ctx context.Context, in *domain.Instructor) error {
	query := `UPDATE instructors SET name = ?, status = ?, vehicle_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		in.Name,
		string(in.Status),
		strToNullable(in.VehicleID),
		time.Now().UTC().Format(time.RFC3339),
		in.ID,
	)
	if err != nil {
		return fmt.Errorf("updating instructor: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("instructor %s: %w", in.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteInstructorRepo) populateInstructor(in *domain.Instructor, statusStr string, vehicleID sql.NullString, createdAtStr, updatedAtStr string) (*domain.Instructor, error) {
	in.Status = domain.InstructorStatus(statusStr)
	in.VehicleID = nullableStr(vehicleID)

	var parseErr error
	in.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	in.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return in, nil
}
