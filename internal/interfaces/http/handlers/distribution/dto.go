package distribution

import (
	"github.com/aidlink/aidlink/internal/application/distribution/dto"
)

type CalculateRequest struct {
	NGOID          string   `json:"ngo_id"`
	City           string   `json:"city"`
	Priority       string   `json:"priority" binding:"priority_tier"`
	BeneficiaryIDs []string `json:"beneficiary_ids"`
	ItemType       string   `json:"item_type" binding:"required,max=100"`
	ItemName       string   `json:"item_name" binding:"max=200"`
	Unit           string   `json:"unit" binding:"max=50"`
	DonationID     string   `json:"donation_id"`
	TotalQuantity  int      `json:"total_quantity" binding:"gte=1"`
}

type ValidateRequest struct {
	Lines             []dto.PlanLineDTO `json:"lines" binding:"dive"`
	AvailableQuantity *int              `json:"available_quantity" binding:"required,gte=0"`
}

// ExecuteRequest commits a stored plan by plan_id, or an edited plan given
// as lines. Supply is the donation's remaining stock when donation_id is set.
type ExecuteRequest struct {
	PlanID            string            `json:"plan_id"`
	Lines             []dto.PlanLineDTO `json:"lines" binding:"dive"`
	ItemType          string            `json:"item_type" binding:"max=100"`
	ItemName          string            `json:"item_name" binding:"max=200"`
	Unit              string            `json:"unit" binding:"max=50"`
	DonationID        string            `json:"donation_id"`
	AvailableQuantity *int              `json:"available_quantity" binding:"omitempty,gte=0"`
	Notes             string            `json:"notes" binding:"max=5000"`
}
