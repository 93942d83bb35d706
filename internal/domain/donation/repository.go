package donation

import (
	"context"
	"time"

	vo "github.com/aidlink/aidlink/internal/domain/donation/valueobjects"
)

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	// GetByIDForUpdate locks the row for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Donation, error)
	// UpdateStatus saves d only while the stored status is still from and
	// returns ErrStatusChanged otherwise.
	UpdateStatus(ctx context.Context, d *Donation, from vo.DonationStatus) error
	// ListExpiring returns pending or received donations whose expiry is at or before now.
	ListExpiring(ctx context.Context, now time.Time, limit int) ([]*Donation, error)
}
