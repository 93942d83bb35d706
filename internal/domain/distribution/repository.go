package distribution

import (
	"context"
	"time"
)

// HistoryFilter selects committed records. Zero values do not filter; Limit
// caps the result and is always applied by the caller.
type HistoryFilter struct {
	NGOID         string
	BeneficiaryID string
	DonationID    string
	From          *time.Time
	To            *time.Time
	Limit         int
}

type Repository interface {
	CreateBatch(ctx context.Context, records []*Record) error
	List(ctx context.Context, filter HistoryFilter) ([]*Record, error)
	// SumQuantityByDonation totals units already recorded against a donation.
	SumQuantityByDonation(ctx context.Context, donationID string) (int, error)
}
