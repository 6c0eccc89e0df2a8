package contract

import (
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/rules"
)

// MaxNotesLen bounds free-text notes on bookings and results.
const MaxNotesLen = 500

// BookLessonRequest asks for a lesson slot. Date and Slot carry the raw
// boundary strings; Validate parses them before the engine runs.
type BookLessonRequest struct {
	CandidateID  string
	InstructorID string
	LessonType   domain.Phase
	Date         string
	Slot         string
	Notes        string

	// Parsed by Validate.
	Day time.Time
}

func (r *BookLessonRequest) Validate() error {
	if r.CandidateID == "" || r.InstructorID == "" {
		return fmt.Errorf("candidate and instructor are required")
	}
	if !domain.ValidPhase(r.LessonType) {
		return fmt.Errorf("unknown lesson type %q", r.LessonType)
	}
	day, err := rules.ParseDate(r.Date)
	if err != nil {
		return err
	}
	if _, err := rules.ParseSlotTime(r.Slot); err != nil {
		return err
	}
	if len(r.Notes) > MaxNotesLen {
		return fmt.Errorf("notes exceed %d characters", MaxNotesLen)
	}
	r.Day = day
	return nil
}

// ScheduleExamRequest asks for an exam slot.
type ScheduleExamRequest struct {
	CandidateID  string
	InstructorID string
	ExamType     domain.Phase
	Date         string
	Slot         string
	Notes        string

	Day time.Time
}

func (r *ScheduleExamRequest) Validate() error {
	if r.CandidateID == "" || r.InstructorID == "" {
		return fmt.Errorf("candidate and instructor are required")
	}
	if !domain.ValidPhase(r.ExamType) {
		return fmt.Errorf("unknown exam type %q", r.ExamType)
	}
	day, err := rules.ParseDate(r.Date)
	if err != nil {
		return err
	}
	if _, err := rules.ParseSlotTime(r.Slot); err != nil {
		return err
	}
	if len(r.Notes) > MaxNotesLen {
		return fmt.Errorf("notes exceed %d characters", MaxNotesLen)
	}
	r.Day = day
	return nil
}

// RescheduleRequest moves an existing booking to a new slot and optionally a
// new instructor. The conflict check excludes the booking's own row.
type RescheduleRequest struct {
	BookingID    string
	InstructorID string
	Date         string
	Slot         string

	Day time.Time
}

func (r *RescheduleRequest) Validate() error {
	if r.BookingID == "" {
		return fmt.Errorf("booking id is required")
	}
	day, err := rules.ParseDate(r.Date)
	if err != nil {
		return err
	}
	if _, err := rules.ParseSlotTime(r.Slot); err != nil {
		return err
	}
	r.Day = day
	return nil
}

// RecordResultRequest resolves a scheduled exam.
type RecordResultRequest struct {
	ExamID string
	Result domain.ExamResult
	Notes  string
}

func (r *RecordResultRequest) Validate() error {
	if r.ExamID == "" {
		return fmt.Errorf("exam id is required")
	}
	if !domain.ValidExamResult(r.Result) {
		return fmt.Errorf("unknown exam result %q", r.Result)
	}
	if len(r.Notes) > MaxNotesLen {
		return fmt.Errorf("notes exceed %d characters", MaxNotesLen)
	}
	return nil
}

// EligibilityDecision mirrors rules.EligibilityDecision at the service
// boundary so callers never import the rules package directly.
type EligibilityDecision = rules.EligibilityDecision
