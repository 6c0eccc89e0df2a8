package domain

import "time"

// Lesson is a booked practice or theory session. LessonType names the phase
// the lesson counts toward once completed.
type Lesson struct {
	ID           string
	CandidateID  string
	InstructorID string
	LessonType   Phase
	Date         time.Time
	Time         string
	Status       LessonStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
