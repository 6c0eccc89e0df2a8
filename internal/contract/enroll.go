package contract

import (
	"fmt"

	"github.com/amezghal/autoecole/internal/domain"
)

// Default lesson quotas per phase for a fresh enrollment.
var DefaultSessionPlans = map[domain.Phase]int{
	domain.PhaseHighwayCode: 20,
	domain.PhaseParking:     10,
	domain.PhaseDriving:     20,
}

// EnrollCandidateRequest registers a new candidate. SessionPlans overrides
// the per-phase lesson quotas; zero-value entries fall back to the defaults.
type EnrollCandidateRequest struct {
	Name            string
	LicenseCategory string
	TotalFee        int
	SessionPlans    map[domain.Phase]int
}

func NewEnrollCandidateRequest(name string) EnrollCandidateRequest {
	return EnrollCandidateRequest{
		Name:            name,
		LicenseCategory: "B",
	}
}

func (r *EnrollCandidateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("candidate name is required")
	}
	if r.TotalFee < 0 {
		return fmt.Errorf("total fee cannot be negative")
	}
	for phase, n := range r.SessionPlans {
		if !domain.ValidPhase(phase) {
			return fmt.Errorf("unknown phase %q in session plans", phase)
		}
		if n < 0 {
			return fmt.Errorf("session plan for %s cannot be negative", phase)
		}
	}
	return nil
}

// EffectivePlans merges the request's overrides over the defaults.
func (r *EnrollCandidateRequest) EffectivePlans() map[domain.Phase]int {
	plans := make(map[domain.Phase]int, len(domain.Phases))
	for _, p := range domain.Phases {
		plans[p] = DefaultSessionPlans[p]
	}
	for p, n := range r.SessionPlans {
		if n > 0 {
			plans[p] = n
		}
	}
	return plans
}

// RecordPaymentRequest appends to a candidate's payment ledger.
type RecordPaymentRequest struct {
	CandidateID string
	Amount      int
	Note        string
}

func (r *RecordPaymentRequest) Validate() error {
	if r.CandidateID == "" {
		return fmt.Errorf("candidate id is required")
	}
	if r.Amount <= 0 {
		return fmt.Errorf("payment amount must be positive")
	}
	return nil
}
