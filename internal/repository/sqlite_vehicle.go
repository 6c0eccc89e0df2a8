package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
)

// SQLiteVehicleRepo implements VehicleRepo using a SQLite database.
type SQLiteVehicleRepo struct {
	db db.DBTX
}

// NewSQLiteVehicleRepo creates a new SQLiteVehicleRepo.
func NewSQLiteVehicleRepo(conn db.DBTX) *SQLiteVehicleRepo {
	return &SQLiteVehicleRepo{db: conn}
}

func (r *SQLiteVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (id, plate, model, instructor_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.Plate,
		v.Model,
		strToNullable(v.InstructorID),
		v.CreatedAt.Format(time.RFC3339),
		v.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting vehicle: %w", err)
	}
	return nil
}

func (r *SQLiteVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT id, plate, model, instructor_id, created_at, updated_at FROM vehicles WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var v domain.Vehicle
	var createdAtStr, updatedAtStr string
	var instructorID sql.NullString

	err := row.Scan(&v.ID, &v.Plate, &v.Model, &instructorID, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("vehicle: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning vehicle: %w", err)
	}
	return r.populateVehicle(&v, instructorID, createdAtStr, updatedAtStr)
}

func (r *SQLiteVehicleRepo) List(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT id, plate, model, instructor_id, created_at, updated_at FROM vehicles ORDER BY plate`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		var createdAtStr, updatedAtStr string
		var instructorID sql.NullString

		if err := rows.Scan(&v.ID, &v.Plate, &v.Model, &instructorID, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning vehicle row: %w", err)
		}
		vehicle, parseErr := r.populateVehicle(&v, instructorID, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *SQLiteVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET plate = ?, model = ?, instructor_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		v.Plate,
		v.Model,
		strToNullable(v.InstructorID),
		time.Now().UTC().Format(time.RFC3339),
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vehicle: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("vehicle %s: %w", v.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteVehicleRepo) populateVehicle(v *domain.Vehicle, instructorID sql.NullString, createdAtStr, updatedAtStr string) (*domain.Vehicle, error) {
	v.InstructorID = nullableStr(instructorID)

	var parseErr error
	v.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	v.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return v, nil
}
