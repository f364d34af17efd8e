// Package entitlement answers one question for every gated operation: given
// an account's tier and its current usage, is this action still within the
// plan? Checks run before any side-effecting write and fail with a typed
// ErrLimitExceeded that handlers map to a user-facing message.
package entitlement

import (
	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/internal/plan"
)

// Service resolves tier limits against usage counters.
type Service struct {
	catalog plan.Catalog
}

func NewService(catalog plan.Catalog) *Service {
	return &Service{catalog: catalog}
}

// Limits exposes the raw limits for a tier, for dashboards.
func (s *Service) Limits(tier plan.Tier) (plan.Limits, error) {
	return s.catalog.Limits(tier)
}

// CanCreateProject reports whether the account may create one more project.
//
// This is check-then-act: a concurrent create from the same account can pass
// the same check. The overshoot is bounded by the number of in-flight
// requests and accepted; project creation is not a hot path.
func (s *Service) CanCreateProject(acct *account.Account) error {
	limits, err := s.catalog.Limits(acct.Tier)
	if err != nil {
		return err
	}
	return checkCeiling(acct.ProjectsCount, limits.MaxProjects)
}

// CanAcceptSubmission reports whether a project on the given tier may accept
// one more form submission.
func (s *Service) CanAcceptSubmission(tier plan.Tier, currentSignups int64) error {
	limits, err := s.catalog.Limits(tier)
	if err != nil {
		return err
	}
	return checkCeiling(currentSignups, limits.MaxSubmissionsPerProject)
}

// VoiceCreditLimit returns the voice credit cap for a tier. The atomic
// consume lives in the account repository; this only resolves the ceiling.
func (s *Service) VoiceCreditLimit(tier plan.Tier) (int64, error) {
	limits, err := s.catalog.Limits(tier)
	if err != nil {
		return 0, err
	}
	return limits.VoiceCreditsPerPeriod, nil
}

func checkCeiling(used, limit int64) error {
	if limit == plan.Unlimited {
		return nil
	}
	if used >= limit {
		return ErrLimitExceeded
	}
	return nil
}
