package domain

import "time"

// Instructor teaches lessons and sits exams. VehicleID is the 1:1 vehicle
// assignment; the relation is symmetric with Vehicle.InstructorID and both
// sides are rewritten together by the assignment operation.
type Instructor struct {
	ID        string
	Name      string
	Status    InstructorStatus
	VehicleID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vehicle is a school car. InstructorID mirrors Instructor.VehicleID.
type Vehicle struct {
	ID           string
	Plate        string
	Model        string
	InstructorID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
