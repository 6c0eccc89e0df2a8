package service

import (
	"context"
	"testing"
	"time"

	"github.com/amezghal/autoecole/internal/contract"
	"github.com/amezghal/autoecole/internal/domain"
	"github.com/amezghal/autoecole/internal/repository"
	"github.com/amezghal/autoecole/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleReq(candidateID, instructorID string, phase domain.Phase, day time.Time, slot string) contract.ScheduleExamRequest {
	return contract.ScheduleExamRequest{
		CandidateID:  candidateID,
		InstructorID: instructorID,
		ExamType:     phase,
		Date:         dateStr(day),
		Slot:         slot,
	}
}

func TestExamService_Schedule(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 30)

	exam, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.ExamScheduled, exam.Status)
	assert.Equal(t, 1, exam.AttemptNumber)
	assert.Equal(t, "09:00", exam.Time)

	// The candidate's progress carries the upcoming exam date.
	got, err := e.candidates.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	pp := got.ProgressFor(domain.PhaseHighwayCode)
	require.NotNil(t, pp.ExamDate)
	assert.Equal(t, dateStr(day), dateStr(*pp.ExamDate))
}

func TestExamService_Schedule_ValidationErrors(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	_, err := svc.Schedule(ctx, contract.ScheduleExamRequest{
		CandidateID: "c", InstructorID: "i", ExamType: "theory",
		Date: "2024-10-01", Slot: "09:00",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Schedule(ctx, contract.ScheduleExamRequest{
		CandidateID: "c", InstructorID: "i", ExamType: domain.PhaseHighwayCode,
		Date: "2024-10-01", Slot: "9am",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExamService_Schedule_UnknownCandidate(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	_, err := svc.Schedule(context.Background(),
		scheduleReq("missing", instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExamService_Schedule_InactiveParties(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()
	day := time.Now().UTC().AddDate(0, 0, 10)

	deleted := e.seedCandidate(t, testutil.WithCandidateStatus(domain.CandidateDeleted))
	instructor := e.seedInstructor(t)
	_, err := svc.Schedule(ctx, scheduleReq(deleted.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	assert.ErrorIs(t, err, ErrInvalidState)

	cand := e.seedCandidate(t)
	inactive := e.seedInstructor(t, testutil.WithInstructorStatus(domain.InstructorInactive))
	_, err = svc.Schedule(ctx, scheduleReq(cand.ID, inactive.ID, domain.PhaseHighwayCode, day, "09:00"))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestExamService_Schedule_PhaseNotReachable(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	_, err := svc.Schedule(context.Background(),
		scheduleReq(cand.ID, instructor.ID, domain.PhaseParking, day, "09:00"))
	assert.ErrorIs(t, err, ErrNotEligibleYet)
}

func TestExamService_Schedule_AlreadyPassed(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)

	cand := e.seedCandidate(t, testutil.WithPhasePassed(domain.PhaseHighwayCode))
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	_, err := svc.Schedule(context.Background(),
		scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	assert.ErrorIs(t, err, ErrNotEligibleYet)
}

func TestExamService_Schedule_PendingAttemptBlocks(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 20)

	_, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day.AddDate(0, 0, 1), "09:00"))
	assert.ErrorIs(t, err, ErrNotEligibleYet)
}

func TestExamService_Schedule_CooldownBlocks(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)

	// Failed attempt 5 days ago keeps the cooldown active.
	failed := testutil.NewTestExam(cand.ID, instructor.ID, domain.PhaseHighwayCode,
		testutil.WithExamDate(time.Now().UTC().AddDate(0, 0, -5)),
		testutil.WithExamStatus(domain.ExamFailed))
	require.NoError(t, e.exams.Create(ctx, failed))

	day := time.Now().UTC().AddDate(0, 0, 30)
	_, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	assert.ErrorIs(t, err, ErrNotEligibleYet)
}

func TestExamService_Schedule_CooldownElapsedAllowsRetry(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)

	failed := testutil.NewTestExam(cand.ID, instructor.ID, domain.PhaseHighwayCode,
		testutil.WithExamDate(time.Now().UTC().AddDate(0, 0, -20)),
		testutil.WithExamStatus(domain.ExamFailed))
	require.NoError(t, e.exams.Create(ctx, failed))

	day := time.Now().UTC().AddDate(0, 0, 10)
	exam, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)
	assert.Equal(t, 2, exam.AttemptNumber, "attempt number counts resolved attempts plus one")
}

func TestExamService_Schedule_InstructorSlotConflict(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	first := e.seedCandidate(t)
	second := testutil.NewTestCandidate("Omar")
	require.NoError(t, e.candidates.Create(ctx, second))
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 20)

	_, err := svc.Schedule(ctx, scheduleReq(first.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)

	// Different candidate, same instructor, same slot.
	_, err = svc.Schedule(ctx, scheduleReq(second.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	assert.ErrorIs(t, err, ErrSchedulingConflict)

	// Same instructor, different slot is fine.
	_, err = svc.Schedule(ctx, scheduleReq(second.ID, instructor.ID, domain.PhaseHighwayCode, day, "10:00"))
	assert.NoError(t, err)
}

func TestExamService_Schedule_CandidateSlotConflict(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t, testutil.WithPhasePassed(domain.PhaseHighwayCode))
	instructorA := e.seedInstructor(t)
	instructorB := testutil.NewTestInstructor("Leila")
	require.NoError(t, e.instructors.Create(ctx, instructorB))
	day := time.Now().UTC().AddDate(0, 0, 20)

	// Pending highway_code already passed, so parking is schedulable.
	_, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructorA.ID, domain.PhaseParking, day, "09:00"))
	require.NoError(t, err)

	// The candidate cannot be in two places even with another instructor.
	// The pending-attempt rule already blocks the same phase, so aim the
	// second booking at a later phase to isolate the slot conflict.
	cand2, err := e.candidates.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	cand2.ProgressFor(domain.PhaseParking).Status = domain.PhaseCompleted
	cand2.ProgressFor(domain.PhaseParking).ExamPassed = true
	require.NoError(t, e.candidates.Update(ctx, cand2))

	_, err = svc.Schedule(ctx, scheduleReq(cand.ID, instructorB.ID, domain.PhaseDriving, day, "09:00"))
	assert.ErrorIs(t, err, ErrSchedulingConflict)
}

func TestExamService_CanTake(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	asOf := time.Now().UTC()

	decision, err := svc.CanTake(ctx, cand.ID, domain.PhaseHighwayCode, asOf)
	require.NoError(t, err)
	assert.True(t, decision.CanTake)

	decision, err = svc.CanTake(ctx, cand.ID, domain.PhaseParking, asOf)
	require.NoError(t, err)
	assert.False(t, decision.CanTake)
	assert.Equal(t, "previous phase not completed", decision.Reason)

	_, err = svc.CanTake(ctx, cand.ID, "theory", asOf)
	assert.ErrorIs(t, err, ErrValidation)

	// Failed attempt 10 days ago: blocked with an explicit wait-until day.
	resolvedOn := asOf.AddDate(0, 0, -10)
	failed := testutil.NewTestExam(cand.ID, instructor.ID, domain.PhaseHighwayCode,
		testutil.WithExamDate(resolvedOn), testutil.WithExamStatus(domain.ExamFailed))
	require.NoError(t, e.exams.Create(ctx, failed))

	decision, err = svc.CanTake(ctx, cand.ID, domain.PhaseHighwayCode, asOf)
	require.NoError(t, err)
	assert.False(t, decision.CanTake)
	require.NotNil(t, decision.WaitUntil)
	assert.Equal(t, dateStr(resolvedOn.AddDate(0, 0, 15)), dateStr(*decision.WaitUntil))
	assert.Contains(t, decision.Reason, "cooldown active until")

	// The same history is clear once 15 days have passed.
	decision, err = svc.CanTake(ctx, cand.ID, domain.PhaseHighwayCode, asOf.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.True(t, decision.CanTake)
}

func TestExamService_RecordResult_Pass(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	exam, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)

	resolved, err := svc.RecordResult(ctx, contract.RecordResultRequest{
		ExamID: exam.ID, Result: domain.ResultPassed,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ExamPassed, resolved.Status)

	got, err := e.candidates.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	hc := got.ProgressFor(domain.PhaseHighwayCode)
	assert.Equal(t, domain.PhaseCompleted, hc.Status)
	assert.True(t, hc.ExamPassed)
	assert.Equal(t, 1, hc.ExamAttempts)
	assert.Nil(t, hc.ExamDate, "pending marker cleared on resolution")
	assert.NotNil(t, hc.LastExamDate)
	assert.Equal(t, domain.PhaseInProgress, got.ProgressFor(domain.PhaseParking).Status)
	assert.Equal(t, domain.CandidateActive, got.Status)
}

func TestExamService_RecordResult_Fail(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	exam, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)

	_, err = svc.RecordResult(ctx, contract.RecordResultRequest{
		ExamID: exam.ID, Result: domain.ResultFailed, Notes: "stalled twice",
	})
	require.NoError(t, err)

	got, err := e.candidates.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	hc := got.ProgressFor(domain.PhaseHighwayCode)
	assert.Equal(t, domain.PhaseInProgress, hc.Status)
	assert.False(t, hc.ExamPassed)
	assert.Equal(t, 1, hc.ExamAttempts)
	assert.Equal(t, domain.PhaseNotStarted, got.ProgressFor(domain.PhaseParking).Status)
}

func TestExamService_RecordResult_Graduation(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t,
		testutil.WithPhasePassed(domain.PhaseHighwayCode),
		testutil.WithPhasePassed(domain.PhaseParking),
		testutil.WithPhaseStatus(domain.PhaseDriving, domain.PhaseInProgress))
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	exam, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseDriving, day, "09:00"))
	require.NoError(t, err)

	_, err = svc.RecordResult(ctx, contract.RecordResultRequest{ExamID: exam.ID, Result: domain.ResultPassed})
	require.NoError(t, err)

	got, err := e.candidates.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CandidateCompleted, got.Status)
}

func TestExamService_RecordResult_RequiresScheduled(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	resolved := testutil.NewTestExam(cand.ID, instructor.ID, domain.PhaseHighwayCode,
		testutil.WithExamStatus(domain.ExamPassed))
	require.NoError(t, e.exams.Create(ctx, resolved))

	_, err := svc.RecordResult(ctx, contract.RecordResultRequest{
		ExamID: resolved.ID, Result: domain.ResultFailed,
	})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.RecordResult(ctx, contract.RecordResultRequest{
		ExamID: resolved.ID, Result: "cancelled",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExamService_Cancel(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	exam, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExamCancelled, cancelled.Status)

	// No attempt consumed and the pending marker is gone.
	got, err := e.candidates.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	pp := got.ProgressFor(domain.PhaseHighwayCode)
	assert.Equal(t, 0, pp.ExamAttempts)
	assert.Nil(t, pp.ExamDate)

	// Cancelling twice is an invalid transition.
	_, err = svc.Cancel(ctx, exam.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// Slot and phase are immediately reusable.
	_, err = svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	assert.NoError(t, err, "cancelled attempt does not start a cooldown")
}

func TestExamService_Reschedule(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	cand := e.seedCandidate(t)
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	exam, err := svc.Schedule(ctx, scheduleReq(cand.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)

	// Moving to its own current slot must not self-conflict.
	moved, err := svc.Reschedule(ctx, contract.RescheduleRequest{
		BookingID: exam.ID, Date: dateStr(day), Slot: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", moved.Time)

	moved, err = svc.Reschedule(ctx, contract.RescheduleRequest{
		BookingID: exam.ID, Date: dateStr(day.AddDate(0, 0, 2)), Slot: "11:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "11:30", moved.Time)

	got, err := e.candidates.GetByID(ctx, cand.ID)
	require.NoError(t, err)
	pp := got.ProgressFor(domain.PhaseHighwayCode)
	require.NotNil(t, pp.ExamDate)
	assert.Equal(t, dateStr(day.AddDate(0, 0, 2)), dateStr(*pp.ExamDate))
}

func TestExamService_Reschedule_Conflict(t *testing.T) {
	e := setupEngine(t)
	svc := NewExamService(e.exams, e.candidates, e.instructors, e.uow)
	ctx := context.Background()

	first := e.seedCandidate(t)
	second := testutil.NewTestCandidate("Omar")
	require.NoError(t, e.candidates.Create(ctx, second))
	instructor := e.seedInstructor(t)
	day := time.Now().UTC().AddDate(0, 0, 10)

	_, err := svc.Schedule(ctx, scheduleReq(first.ID, instructor.ID, domain.PhaseHighwayCode, day, "09:00"))
	require.NoError(t, err)
	exam2, err := svc.Schedule(ctx, scheduleReq(second.ID, instructor.ID, domain.PhaseHighwayCode, day, "10:00"))
	require.NoError(t, err)

	_, err = svc.Reschedule(ctx, contract.RescheduleRequest{
		BookingID: exam2.ID, Date: dateStr(day), Slot: "09:00",
	})
	assert.ErrorIs(t, err, ErrSchedulingConflict)
}
