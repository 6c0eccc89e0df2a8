package domain

import "time"

// Exam is a scheduled or resolved exam attempt. Date carries the calendar
// day; Time is the HH:MM slot within it. AttemptNumber is assigned at
// creation as the count of prior resolved attempts plus one.
type Exam struct {
	ID            string
	CandidateID   string
	InstructorID  string
	ExamType      Phase
	Date          time.Time
	Time          string
	Status        ExamStatus
	AttemptNumber int
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
