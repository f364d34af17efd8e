// Package plan defines the subscription tier catalog and its resource limits.
//
// Limits are typed fields on each Plan; the Turkish feature strings shown on
// the pricing page are display-only. The built-in catalog still derives its
// limits from those strings once at startup (see LimitsFromFeatures), so the
// pricing copy and the enforced limits cannot drift apart silently.
package plan

// Tier identifies a subscription tier.
type Tier string

const (
	TierFree      Tier = "free"
	TierBasic     Tier = "basic"
	TierPro       Tier = "pro"
	TierUnlimited Tier = "unlimited"
)

// Unlimited is the sentinel for a resource with no cap. It is never a large
// integer; comparisons must special-case it.
const Unlimited int64 = -1

// Limits holds the numeric resource caps for a tier.
type Limits struct {
	MaxProjects              int64 `yaml:"max_projects" json:"maxProjects"`
	MaxSubmissionsPerProject int64 `yaml:"max_submissions_per_project" json:"maxSubmissionsPerProject"`
	VoiceCreditsPerPeriod    int64 `yaml:"voice_credits_per_period" json:"voiceCreditsPerPeriod"`
}

// Plan describes a subscription tier: identity, price, display copy, limits.
type Plan struct {
	Tier     Tier     `yaml:"tier" json:"tier"`
	Name     string   `yaml:"name" json:"name"`
	Price    float64  `yaml:"price" json:"price"` // monthly, TRY
	Features []string `yaml:"features" json:"features"`
	Limits   Limits   `yaml:"limits" json:"limits"`
}

// Catalog is the ordered list of available plans.
type Catalog []Plan

// ByTier returns the plan for the given tier.
func (c Catalog) ByTier(t Tier) (Plan, error) {
	for _, p := range c {
		if p.Tier == t {
			return p, nil
		}
	}
	return Plan{}, ErrPlanNotFound
}

// Limits resolves the limits for a tier.
func (c Catalog) Limits(t Tier) (Limits, error) {
	p, err := c.ByTier(t)
	if err != nil {
		return Limits{}, err
	}
	return p.Limits, nil
}

// Valid reports whether t names a plan in the catalog.
func (c Catalog) Valid(t Tier) bool {
	_, err := c.ByTier(t)
	return err == nil
}
