package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/aidlink/aidlink/internal/domain/donation"
	"github.com/aidlink/aidlink/internal/infrastructure/metrics"
	"github.com/aidlink/aidlink/internal/shared/biztime"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

// ExpireDonationsUseCase moves pending or received donations past their
// expiry date to expired, one batch per call.
type ExpireDonationsUseCase struct {
	donationRepo donation.Repository
	batchSize    int
	logger       logger.Interface
	now          func() time.Time
}

func NewExpireDonationsUseCase(donationRepo donation.Repository, batchSize int, logger logger.Interface) *ExpireDonationsUseCase {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &ExpireDonationsUseCase{
		donationRepo: donationRepo,
		batchSize:    batchSize,
		logger:       logger,
		now:          biztime.NowUTC,
	}
}

// Execute returns how many donations were expired. A failure on one donation
// is logged and does not stop the batch.
func (uc *ExpireDonationsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.now()

	due, err := uc.donationRepo.ListExpiring(ctx, now, uc.batchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, d := range due {
		from := d.Status()
		if err := d.Expire(now); err != nil {
			uc.logger.Warnw("donation cannot be expired", "donation_id", d.ID(), "status", from, "error", err)
			continue
		}
		if err := uc.donationRepo.UpdateStatus(ctx, d, from); err != nil {
			if errors.Is(err, donation.ErrStatusChanged) {
				uc.logger.Infow("donation changed before expiry, skipped", "donation_id", d.ID(), "read_status", from)
				continue
			}
			uc.logger.Errorw("failed to save expired donation", "donation_id", d.ID(), "error", err)
			continue
		}
		expired++
	}

	if expired > 0 {
		metrics.RecordDonationsExpired(expired)
		uc.logger.Infow("donations expired", "count", expired, "due", len(due))
	}
	return expired, nil
}
