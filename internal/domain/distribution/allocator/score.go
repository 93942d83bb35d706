package allocator

import (
	"time"

	vo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
)

const (
	// neverServedBonus is the recency credit for a beneficiary with no recorded distribution.
	neverServedBonus = 3.0
	// maxRecencyBonus caps the credit earned by waiting.
	maxRecencyBonus = 3.0
	// recencyDaysPerPoint is how many days of waiting earn one point.
	recencyDaysPerPoint   = 7.0
	healthConditionWeight = 0.5
)

// Candidate is the read-only view of a beneficiary the allocator scores.
type Candidate struct {
	ID               string          `json:"id" yaml:"id" validate:"required"`
	Name             string          `json:"name" yaml:"name"`
	NGOID            string          `json:"ngo_id" yaml:"ngo_id"`
	Priority         vo.PriorityTier `json:"priority" yaml:"priority" validate:"priority_tier"`
	LastServedAt     *time.Time      `json:"last_served_at,omitempty" yaml:"last_served_at,omitempty"`
	HealthConditions int             `json:"health_conditions" yaml:"health_conditions" validate:"gte=0"`
}

// Score is tier weight plus a recency credit plus half a point per recorded
// health condition. The result is at least 1 for any candidate.
//
// Recency is measured against ref, not the wall clock, so that every
// candidate in one plan is scored at the same instant. A last-served time in
// the future earns no credit.
func Score(c Candidate, ref time.Time) float64 {
	score := c.Priority.Weight()
	score += recencyBonus(c.LastServedAt, ref)
	if c.HealthConditions > 0 {
		score += float64(c.HealthConditions) * healthConditionWeight
	}
	return score
}

func recencyBonus(lastServed *time.Time, ref time.Time) float64 {
	if lastServed == nil {
		return neverServedBonus
	}
	days := ref.Sub(*lastServed).Hours() / 24
	if days <= 0 {
		return 0
	}
	return min(days/recencyDaysPerPoint, maxRecencyBonus)
}
