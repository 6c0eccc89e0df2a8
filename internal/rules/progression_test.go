package rules

import (
	"testing"
	"time"

	"github.com/amezghal/autoecole/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandidate() *domain.Candidate {
	return &domain.Candidate{
		ID:     "cand-1",
		Name:   "Nadia",
		Status: domain.CandidateActive,
		Progress: domain.NewProgressSet(map[domain.Phase]int{
			domain.PhaseHighwayCode: 20,
			domain.PhaseParking:     10,
			domain.PhaseDriving:     20,
		}),
	}
}

func TestApplyLessonCompletion(t *testing.T) {
	c := newCandidate()

	require.NoError(t, ApplyLessonCompletion(c, domain.PhaseHighwayCode))
	require.NoError(t, ApplyLessonCompletion(c, domain.PhaseHighwayCode))

	pp := c.ProgressFor(domain.PhaseHighwayCode)
	assert.Equal(t, 2, pp.SessionsCompleted)

	err := ApplyLessonCompletion(c, domain.Phase("karting"))
	assert.Error(t, err)
}

func TestApplyLessonCompletion_ExcessRecordedBeyondPlan(t *testing.T) {
	c := newCandidate()
	pp := c.ProgressFor(domain.PhaseParking)
	pp.SessionsCompleted = 10

	require.NoError(t, ApplyLessonCompletion(c, domain.PhaseParking))

	assert.Equal(t, 11, pp.SessionsCompleted)
	done, plan := pp.SessionsRatio()
	assert.Equal(t, 10, done, "display ratio caps at the plan")
	assert.Equal(t, 10, plan)
}

func TestApplyExamResult_FailKeepsPhaseInProgress(t *testing.T) {
	c := newCandidate()
	now := time.Date(2024, 10, 1, 11, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyExamResult(c, domain.PhaseHighwayCode, domain.ResultFailed, now))

	pp := c.ProgressFor(domain.PhaseHighwayCode)
	assert.Equal(t, domain.PhaseInProgress, pp.Status)
	assert.Equal(t, 1, pp.ExamAttempts)
	assert.False(t, pp.ExamPassed)
	require.NotNil(t, pp.LastExamDate)
	assert.Equal(t, "2024-10-01", pp.LastExamDate.Format(DateLayout))
	assert.Nil(t, pp.ExamDate)

	// Next phase stays locked.
	assert.Equal(t, domain.PhaseNotStarted, c.ProgressFor(domain.PhaseParking).Status)
	assert.Equal(t, domain.CandidateActive, c.Status)
}

func TestApplyExamResult_PassUnlocksExactlyNextPhase(t *testing.T) {
	c := newCandidate()
	now := time.Now().UTC()

	require.NoError(t, ApplyExamResult(c, domain.PhaseHighwayCode, domain.ResultPassed, now))

	hc := c.ProgressFor(domain.PhaseHighwayCode)
	assert.Equal(t, domain.PhaseCompleted, hc.Status)
	assert.True(t, hc.ExamPassed)
	assert.Equal(t, domain.PhaseInProgress, c.ProgressFor(domain.PhaseParking).Status)
	assert.Equal(t, domain.PhaseNotStarted, c.ProgressFor(domain.PhaseDriving).Status,
		"later phases stay untouched")
	assert.Equal(t, domain.CandidateActive, c.Status)
}

func TestApplyExamResult_PassNeverDowngradesAdvancedPhase(t *testing.T) {
	c := newCandidate()
	c.ProgressFor(domain.PhaseParking).Status = domain.PhaseInProgress
	c.ProgressFor(domain.PhaseParking).SessionsCompleted = 4

	require.NoError(t, ApplyExamResult(c, domain.PhaseHighwayCode, domain.ResultPassed, time.Now()))

	pp := c.ProgressFor(domain.PhaseParking)
	assert.Equal(t, domain.PhaseInProgress, pp.Status)
	assert.Equal(t, 4, pp.SessionsCompleted)
}

func TestApplyExamResult_LastPhaseGraduates(t *testing.T) {
	c := newCandidate()
	now := time.Now().UTC()
	require.NoError(t, ApplyExamResult(c, domain.PhaseHighwayCode, domain.ResultPassed, now))
	require.NoError(t, ApplyExamResult(c, domain.PhaseParking, domain.ResultPassed, now))
	require.NoError(t, ApplyExamResult(c, domain.PhaseDriving, domain.ResultPassed, now))

	assert.Equal(t, domain.CandidateCompleted, c.Status)
	for _, pp := range c.Progress {
		assert.Equal(t, domain.PhaseCompleted, pp.Status)
		assert.True(t, pp.ExamPassed)
	}
}

func TestApplyExamResult_AttemptsAccumulate(t *testing.T) {
	c := newCandidate()
	now := time.Now().UTC()
	require.NoError(t, ApplyExamResult(c, domain.PhaseHighwayCode, domain.ResultFailed, now))
	require.NoError(t, ApplyExamResult(c, domain.PhaseHighwayCode, domain.ResultFailed, now))
	require.NoError(t, ApplyExamResult(c, domain.PhaseHighwayCode, domain.ResultPassed, now))

	assert.Equal(t, 3, c.ProgressFor(domain.PhaseHighwayCode).ExamAttempts)
}
