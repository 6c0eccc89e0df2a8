package contract

import (
	"time"

	"github.com/amezghal/autoecole/internal/domain"
)

// AgendaEntry is one booking on a day's schedule with names resolved for
// display. Kind is "lesson" or "exam".
type AgendaEntry struct {
	Kind           string
	BookingID      string
	Slot           string
	Phase          domain.Phase
	CandidateID    string
	CandidateName  string
	InstructorID   string
	InstructorName string
	Status         string
}

// DayAgenda is the merged, time-sorted view of one day's lessons and exams.
type DayAgenda struct {
	Date    time.Time
	Entries []AgendaEntry
}
