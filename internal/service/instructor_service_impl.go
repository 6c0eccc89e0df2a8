package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/google/uuid"
)

type instructorService struct {
	instructors repository.InstructorRepo
	vehicles    repository.VehicleRepo
	uow         db.UnitOfWork
}

func NewInstructorService(instructors repository.InstructorRepo, vehicles repository.VehicleRepo, uow db.UnitOfWork) InstructorService {
	return &instructorService{instructors: instructors, vehicles: vehicles, uow: uow}
}

func (s *instructorService) Create(ctx context.Context, in *domain.Instructor) error {
	if in.Name == "" {
		return fmt.Errorf("%w: instructor name is required", ErrValidation)
	}
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.Status == "" {
		in.Status = domain.InstructorActive
	}
	now := time.Now().UTC()
	in.CreatedAt = now
	in.UpdatedAt = now
	return s.instructors.Create(ctx, in)
}

func (s *instructorService) GetByID(ctx context.Context, id string) (*domain.Instructor, error) {
	return s.instructors.GetByID(ctx, id)
}

func (s *instructorService) List(ctx context.Context) ([]*domain.Instructor, error) {
	return s.instructors.List(ctx)
}

// AssignVehicle links an instructor and a vehicle 1:1. Both sides of the
// relation are rewritten in one transaction so it is symmetric at all times;
// existing partners on either side are detached first.
func (s *instructorService) AssignVehicle(ctx context.Context, instructorID, vehicleID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txInstructors := repository.NewSQLiteInstructorRepo(tx)
		txVehicles := repository.NewSQLiteVehicleRepo(tx)

		instructor, err := txInstructors.GetByID(ctx, instructorID)
		if err != nil {
			return err
		}
		vehicle, err := txVehicles.GetByID(ctx, vehicleID)
		if err != nil {
			return err
		}

		// Detach the instructor's current vehicle, if different.
		if instructor.VehicleID != nil && *instructor.VehicleID != vehicleID {
			old, err := txVehicles.GetByID(ctx, *instructor.VehicleID)
			if err != nil {
				return err
			}
			old.InstructorID = nil
			if err := txVehicles.Update(ctx, old); err != nil {
				return err
			}
		}
		// Detach the vehicle's current instructor, if different.
		if vehicle.InstructorID != nil && *vehicle.InstructorID != instructorID {
			old, err := txInstructors.GetByID(ctx, *vehicle.InstructorID)
			if err != nil {
				return err
			}
			old.VehicleID = nil
			if err := txInstructors.Update(ctx, old); err != nil {
				return err
			}
		}

		instructor.VehicleID = &vehicleID
		vehicle.InstructorID = &instructorID
		if err := txInstructors.Update(ctx, instructor); err != nil {
			return err
		}
		return txVehicles.Update(ctx, vehicle)
	})
}

func (s *instructorService) UnassignVehicle(ctx context.Context, instructorID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txInstructors := repository.NewSQLiteInstructorRepo(tx)
		txVehicles := repository.NewSQLiteVehicleRepo(tx)

		instructor, err := txInstructors.GetByID(ctx, instructorID)
		if err != nil {
			return err
		}
		if instructor.VehicleID == nil {
			return nil
		}

		vehicle, err := txVehicles.GetByID(ctx, *instructor.VehicleID)
		if err != nil {
			return err
		}
		vehicle.InstructorID = nil
		instructor.VehicleID = nil

		if err := txVehicles.Update(ctx, vehicle); err != nil {
			return err
		}
		return txInstructors.Update(ctx, instructor)
	})
}

type vehicleService struct {
	vehicles repository.VehicleRepo
}

func NewVehicleService(vehicles repository.VehicleRepo) VehicleService {
	return &vehicleService{vehicles: vehicles}
}

func (s *vehicleService) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.Plate == "" {
		return fmt.Errorf("%w: vehicle plate is required", ErrValidation)
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	return s.vehicles.Create(ctx, v)
}

func (s *vehicleService) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *vehicleService) List(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}
