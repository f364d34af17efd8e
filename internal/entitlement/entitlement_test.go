package entitlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/internal/entitlement"
	"github.com/koltukutsu/listele/internal/plan"
)

func TestCanCreateProject(t *testing.T) {
	t.Parallel()

	svc := entitlement.NewService(plan.Default())

	t.Run("free tier under limit", func(t *testing.T) {
		t.Parallel()
		err := svc.CanCreateProject(&account.Account{Tier: plan.TierFree, ProjectsCount: 1})
		assert.NoError(t, err)
	})

	t.Run("free tier at limit", func(t *testing.T) {
		t.Parallel()
		err := svc.CanCreateProject(&account.Account{Tier: plan.TierFree, ProjectsCount: 2})
		assert.ErrorIs(t, err, entitlement.ErrLimitExceeded)
	})

	t.Run("unlimited tier never blocks", func(t *testing.T) {
		t.Parallel()
		err := svc.CanCreateProject(&account.Account{Tier: plan.TierUnlimited, ProjectsCount: 10_000})
		assert.NoError(t, err)
	})

	t.Run("unknown tier", func(t *testing.T) {
		t.Parallel()
		err := svc.CanCreateProject(&account.Account{Tier: plan.Tier("platinum")})
		assert.ErrorIs(t, err, plan.ErrPlanNotFound)
	})
}

func TestCanAcceptSubmission(t *testing.T) {
	t.Parallel()

	svc := entitlement.NewService(plan.Default())

	t.Run("under limit", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, svc.CanAcceptSubmission(plan.TierFree, 74))
	})

	t.Run("at limit", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, svc.CanAcceptSubmission(plan.TierFree, 75), entitlement.ErrLimitExceeded)
	})

	t.Run("unlimited tier", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, svc.CanAcceptSubmission(plan.TierUnlimited, 1_000_000))
	})
}

func TestVoiceCreditLimit(t *testing.T) {
	t.Parallel()

	svc := entitlement.NewService(plan.Default())

	limit, err := svc.VoiceCreditLimit(plan.TierFree)
	require.NoError(t, err)
	assert.Equal(t, int64(5), limit)

	_, err = svc.VoiceCreditLimit(plan.Tier("nope"))
	assert.ErrorIs(t, err, plan.ErrPlanNotFound)
}
