package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
	"github.com/aidlink/aidlink/internal/domain/donation"
	apperrors "github.com/aidlink/aidlink/internal/shared/errors"
)

// donationSupply returns how many units d can still give at now.
func donationSupply(ctx context.Context, records distribution.Repository, d *donation.Donation, itemType string, now time.Time) (int, error) {
	if itemType != "" && !strings.EqualFold(d.ItemType(), itemType) {
		return 0, apperrors.NewValidationError("donation item type does not match",
			fmt.Sprintf("donation %s holds %s, plan is for %s", d.ID(), d.ItemType(), itemType))
	}

	distributed, err := records.SumQuantityByDonation(ctx, d.ID())
	if err != nil {
		return 0, err
	}

	available, err := d.Available(distributed, now)
	if err != nil {
		if errors.Is(err, donation.ErrNotInStock) {
			return 0, apperrors.NewConflictError("donation cannot supply this distribution", err.Error()).WithCause(err)
		}
		return 0, err
	}
	return available, nil
}

func donationLookupError(err error, donationID string) error {
	if errors.Is(err, donation.ErrDonationNotFound) {
		return apperrors.NewNotFoundError("donation not found", donationID).WithCause(err)
	}
	return err
}

// overAllocationError maps the allocator's error to a 409 carrying both figures.
func overAllocationError(err error) error {
	var over *allocator.OverAllocationError
	if errors.As(err, &over) {
		return apperrors.NewConflictError(over.Error(),
			fmt.Sprintf("available=%d", over.Available),
			fmt.Sprintf("requested=%d", over.Requested),
		).WithCause(err)
	}
	return err
}
