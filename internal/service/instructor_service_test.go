package service

import (
	"context"
	"testing"

	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/amezghal/autoecole/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructorService_Create(t *testing.T) {
	e := setupEngine(t)
	svc := NewInstructorService(e.instructors, e.vehicles, e.uow)
	ctx := context.Background()

	in := &domain.Instructor{Name: "Karim"}
	require.NoError(t, svc.Create(ctx, in))
	assert.NotEmpty(t, in.ID)
	assert.Equal(t, domain.InstructorActive, in.Status)

	assert.ErrorIs(t, svc.Create(ctx, &domain.Instructor{}), ErrValidation)
}

func TestVehicleService_Create(t *testing.T) {
	e := setupEngine(t)
	svc := NewVehicleService(e.vehicles)
	ctx := context.Background()

	v := &domain.Vehicle{Plate: "AB-123-CD", Model: "Clio"}
	require.NoError(t, svc.Create(ctx, v))
	assert.NotEmpty(t, v.ID)

	assert.ErrorIs(t, svc.Create(ctx, &domain.Vehicle{Model: "Clio"}), ErrValidation)
}

func TestInstructorService_AssignVehicle_Symmetric(t *testing.T) {
	e := setupEngine(t)
	svc := NewInstructorService(e.instructors, e.vehicles, e.uow)
	ctx := context.Background()

	instructor := e.seedInstructor(t)
	vehicle := testutil.NewTestVehicle("AB-123-CD", "Clio")
	require.NoError(t, e.vehicles.Create(ctx, vehicle))

	require.NoError(t, svc.AssignVehicle(ctx, instructor.ID, vehicle.ID))

	gotIn, err := e.instructors.GetByID(ctx, instructor.ID)
	require.NoError(t, err)
	require.NotNil(t, gotIn.VehicleID)
	assert.Equal(t, vehicle.ID, *gotIn.VehicleID)

	gotV, err := e.vehicles.GetByID(ctx, vehicle.ID)
	require.NoError(t, err)
	require.NotNil(t, gotV.InstructorID)
	assert.Equal(t, instructor.ID, *gotV.InstructorID)
}

func TestInstructorService_AssignVehicle_DetachesPreviousPartners(t *testing.T) {
	e := setupEngine(t)
	svc := NewInstructorService(e.instructors, e.vehicles, e.uow)
	ctx := context.Background()

	instructorA := e.seedInstructor(t)
	instructorB := testutil.NewTestInstructor("Leila")
	require.NoError(t, e.instructors.Create(ctx, instructorB))

	vehicleX := testutil.NewTestVehicle("AA-111-AA", "Clio")
	vehicleY := testutil.NewTestVehicle("BB-222-BB", "208")
	require.NoError(t, e.vehicles.Create(ctx, vehicleX))
	require.NoError(t, e.vehicles.Create(ctx, vehicleY))

	require.NoError(t, svc.AssignVehicle(ctx, instructorA.ID, vehicleX.ID))
	require.NoError(t, svc.AssignVehicle(ctx, instructorB.ID, vehicleY.ID))

	// Move vehicleY to instructorA: both A's old vehicle and Y's old
	// instructor must detach.
	require.NoError(t, svc.AssignVehicle(ctx, instructorA.ID, vehicleY.ID))

	gotA, err := e.instructors.GetByID(ctx, instructorA.ID)
	require.NoError(t, err)
	require.NotNil(t, gotA.VehicleID)
	assert.Equal(t, vehicleY.ID, *gotA.VehicleID)

	gotB, err := e.instructors.GetByID(ctx, instructorB.ID)
	require.NoError(t, err)
	assert.Nil(t, gotB.VehicleID)

	gotX, err := e.vehicles.GetByID(ctx, vehicleX.ID)
	require.NoError(t, err)
	assert.Nil(t, gotX.InstructorID)

	gotY, err := e.vehicles.GetByID(ctx, vehicleY.ID)
	require.NoError(t, err)
	require.NotNil(t, gotY.InstructorID)
	assert.Equal(t, instructorA.ID, *gotY.InstructorID)
}

func TestInstructorService_UnassignVehicle(t *testing.T) {
	e := setupEngine(t)
	svc := NewInstructorService(e.instructors, e.vehicles, e.uow)
	ctx := context.Background()

	instructor := e.seedInstructor(t)
	vehicle := testutil.NewTestVehicle("AB-123-CD", "Clio")
	require.NoError(t, e.vehicles.Create(ctx, vehicle))
	require.NoError(t, svc.AssignVehicle(ctx, instructor.ID, vehicle.ID))

	require.NoError(t, svc.UnassignVehicle(ctx, instructor.ID))

	gotIn, err := e.instructors.GetByID(ctx, instructor.ID)
	require.NoError(t, err)
	assert.Nil(t, gotIn.VehicleID)

	gotV, err := e.vehicles.GetByID(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Nil(t, gotV.InstructorID)

	// Unassigning an instructor without a vehicle is a no-op.
	require.NoError(t, svc.UnassignVehicle(ctx, instructor.ID))
}

func TestInstructorService_AssignVehicle_MissingParties(t *testing.T) {
	e := setupEngine(t)
	svc := NewInstructorService(e.instructors, e.vehicles, e.uow)
	ctx := context.Background()

	instructor := e.seedInstructor(t)
	assert.ErrorIs(t, svc.AssignVehicle(ctx, instructor.ID, "missing"), repository.ErrNotFound)
	assert.ErrorIs(t, svc.AssignVehicle(ctx, "missing", "missing"), repository.ErrNotFound)
}
