package valueobjects

import "fmt"

// PriorityTier is the urgency category assigned to a beneficiary by NGO staff.
type PriorityTier string

const (
	PriorityLow      PriorityTier = "low"
	PriorityMedium   PriorityTier = "medium"
	PriorityHigh     PriorityTier = "high"
	PriorityCritical PriorityTier = "critical"
)

// DefaultPriority is assigned when a beneficiary is registered without a tier.
const DefaultPriority = PriorityMedium

var priorityWeights = map[PriorityTier]float64{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// Tiers lists the valid tiers from least to most urgent.
var Tiers = []PriorityTier{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p PriorityTier) String() string {
	return string(p)
}

func (p PriorityTier) IsValid() bool {
	_, ok := priorityWeights[p]
	return ok
}

// Weight is the base allocation score for the tier. Unknown or empty tiers
// weigh the same as low so that bad data never blocks an allocation.
func (p PriorityTier) Weight() float64 {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return priorityWeights[PriorityLow]
}

// Rank orders tiers for storage queries: critical=4 down to low=1, unknown=0.
func (p PriorityTier) Rank() int {
	if !p.IsValid() {
		return 0
	}
	return int(priorityWeights[p])
}

func NewPriorityTier(s string) (PriorityTier, error) {
	p := PriorityTier(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority tier: %s", s)
	}
	return p, nil
}

func (p PriorityTier) IsCritical() bool {
	return p == PriorityCritical
}
