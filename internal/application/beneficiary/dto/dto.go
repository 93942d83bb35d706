package dto

import (
	"time"

	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
)

// EligibleBeneficiaryDTO previews a roster entry with the score it would get
// in a plan calculated now.
type EligibleBeneficiaryDTO struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	NGOID            string     `json:"ngo_id"`
	City             string     `json:"city,omitempty"`
	Priority         string     `json:"priority"`
	LastServedAt     *time.Time `json:"last_served_at,omitempty"`
	HealthConditions []string   `json:"health_conditions"`
	NeedCategories   []string   `json:"need_categories"`
	PriorityScore    string     `json:"priority_score"`
}

func ToEligibleBeneficiaryDTO(b *beneficiary.Beneficiary, ref time.Time) EligibleBeneficiaryDTO {
	line := allocator.Line{PriorityScore: allocator.Score(b.ToCandidate(), ref)}
	return EligibleBeneficiaryDTO{
		ID:               b.ID(),
		Name:             b.DisplayName(),
		NGOID:            b.NGOID(),
		City:             b.City(),
		Priority:         string(b.Priority()),
		LastServedAt:     b.LastServedAt(),
		HealthConditions: b.HealthConditions(),
		NeedCategories:   b.NeedCategories(),
		PriorityScore:    line.FormattedPriorityScore(),
	}
}
