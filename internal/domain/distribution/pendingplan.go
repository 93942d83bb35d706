package distribution

import (
	"context"
	"errors"
	"time"

	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
)

var ErrPlanNotFound = errors.New("plan not found or already executed")

// PendingPlan is a calculated plan parked for human review before commit.
type PendingPlan struct {
	ID         string         `json:"id"`
	NGOID      string         `json:"ngo_id,omitempty"`
	City       string         `json:"city,omitempty"`
	DonationID string         `json:"donation_id,omitempty"`
	ItemName   string         `json:"item_name,omitempty"`
	Unit       string         `json:"unit,omitempty"`
	Plan       allocator.Plan `json:"plan"`
	CreatedAt  time.Time      `json:"created_at"`
	ExpiresAt  time.Time      `json:"expires_at"`
}

// PendingPlanStore keeps plans between calculate and execute. Take removes
// the plan it returns so a reviewed plan can be executed at most once.
// Restore puts a taken plan back until its original ExpiresAt.
type PendingPlanStore interface {
	Save(ctx context.Context, plan *PendingPlan) error
	Get(ctx context.Context, id string) (*PendingPlan, error)
	Take(ctx context.Context, id string) (*PendingPlan, error)
	Restore(ctx context.Context, plan *PendingPlan) error
}
