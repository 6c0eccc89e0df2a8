package service

import (
	"context"
	"sort"
	"time"

	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/amezghal/autoecole/internal/rules"
)

type scheduleService struct {
	lessons     repository.LessonRepo
	exams       repository.ExamRepo
	candidates  repository.CandidateRepo
	instructors repository.InstructorRepo
}

func NewScheduleService(lessons repository.LessonRepo, exams repository.ExamRepo, candidates repository.CandidateRepo, instructors repository.InstructorRepo) ScheduleService {
	return &scheduleService{lessons: lessons, exams: exams, candidates: candidates, instructors: instructors}
}

// Agenda merges one day's lessons and exams into a time-sorted view with
// candidate and instructor names resolved.
func (s *scheduleService) Agenda(ctx context.Context, date time.Time) (*contract.DayAgenda, error) {
	day := rules.DateOnly(date)

	lessons, err := s.lessons.ListForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	exams, err := s.exams.ListForDay(ctx, day)
	if err != nil {
		return nil, err
	}

	names := newNameCache(s.candidates, s.instructors)
	agenda := &contract.DayAgenda{Date: day}

	for _, l := range lessons {
		candName, instrName, err := names.resolve(ctx, l.CandidateID, l.InstructorID)
		if err != nil {
			return nil, err
		}
		agenda.Entries = append(agenda.Entries, contract.AgendaEntry{
			Kind:           "lesson",
			BookingID:      l.ID,
			Slot:           l.Time,
			Phase:          l.LessonType,
			CandidateID:    l.CandidateID,
			CandidateName:  candName,
			InstructorID:   l.InstructorID,
			InstructorName: instrName,
			Status:         string(l.Status),
		})
	}
	for _, e := range exams {
		candName, instrName, err := names.resolve(ctx, e.CandidateID, e.InstructorID)
		if err != nil {
			return nil, err
		}
		agenda.Entries = append(agenda.Entries, contract.AgendaEntry{
			Kind:           "exam",
			BookingID:      e.ID,
			Slot:           e.Time,
			Phase:          e.ExamType,
			CandidateID:    e.CandidateID,
			CandidateName:  candName,
			InstructorID:   e.InstructorID,
			InstructorName: instrName,
			Status:         string(e.Status),
		})
	}

	sort.SliceStable(agenda.Entries, func(i, j int) bool {
		if agenda.Entries[i].Slot != agenda.Entries[j].Slot {
			return agenda.Entries[i].Slot < agenda.Entries[j].Slot
		}
		return agenda.Entries[i].Kind < agenda.Entries[j].Kind
	})
	return agenda, nil
}

// nameCache memoizes candidate/instructor name lookups within one agenda build.
type nameCache struct {
	candidates  repository.CandidateRepo
	instructors repository.InstructorRepo
	candNames   map[string]string
	instrNames  map[string]string
}

func newNameCache(candidates repository.CandidateRepo, instructors repository.InstructorRepo) *nameCache {
	return &nameCache{
		candidates:  candidates,
		instructors: instructors,
		candNames:   make(map[string]string),
		instrNames:  make(map[string]string),
	}
}

func (n *nameCache) resolve(ctx context.Context, candidateID, instructorID string) (string, string, error) {
	candName, ok := n.candNames[candidateID]
	if !ok {
		c, err := n.candidates.GetByID(ctx, candidateID)
		if err != nil {
			return "", "", err
		}
		candName = c.Name
		n.candNames[candidateID] = candName
	}
	instrName, ok := n.instrNames[instructorID]
	if !ok {
		in, err := n.instructors.GetByID(ctx, instructorID)
		if err != nil {
			return "", "", err
		}
		instrName = in.Name
		n.instrNames[instructorID] = instrName
	}
	return candName, instrName, nil
}
