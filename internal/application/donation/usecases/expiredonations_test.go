package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidlink/aidlink/internal/domain/donation"
	vo "github.com/aidlink/aidlink/internal/domain/donation/valueobjects"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

type mockDonationRepository struct {
	donation.Repository
	ListExpiringFunc func(ctx context.Context, now time.Time, limit int) ([]*donation.Donation, error)
	UpdateStatusFunc func(ctx context.Context, d *donation.Donation, from vo.DonationStatus) error
}

func (m *mockDonationRepository) ListExpiring(ctx context.Context, now time.Time, limit int) ([]*donation.Donation, error) {
	return m.ListExpiringFunc(ctx, now, limit)
}

func (m *mockDonationRepository) UpdateStatus(ctx context.Context, d *donation.Donation, from vo.DonationStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, d, from)
	}
	return nil
}

func makeDonation(t *testing.T, id string, status vo.DonationStatus, expiresAt time.Time) *donation.Donation {
	t.Helper()
	d, err := donation.ReconstructDonation(id, "ngo-1", "donor", "milk", "milk", 10, "l",
		&expiresAt, status, nil, "", expiresAt.Add(-72*time.Hour), expiresAt.Add(-72*time.Hour))
	require.NoError(t, err)
	return d
}

func TestExpireDonationsUseCase_Execute(t *testing.T) {
	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	pending := makeDonation(t, "d1", vo.StatusPending, past)
	received := makeDonation(t, "d2", vo.StatusReceived, past)
	// already distributed rows can slip in if the query races a commit
	done := makeDonation(t, "d3", vo.StatusDistributed, past)
	failing := makeDonation(t, "d4", vo.StatusReceived, past)
	// distributed by a commit after the list query ran
	raced := makeDonation(t, "d5", vo.StatusReceived, past)

	var gotLimit int
	var saved []string
	fromByID := map[string]vo.DonationStatus{}
	repo := &mockDonationRepository{
		ListExpiringFunc: func(ctx context.Context, at time.Time, limit int) ([]*donation.Donation, error) {
			assert.Equal(t, now, at)
			gotLimit = limit
			return []*donation.Donation{pending, received, done, failing, raced}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, d *donation.Donation, from vo.DonationStatus) error {
			switch d.ID() {
			case "d4":
				return errors.New("write failed")
			case "d5":
				assert.Equal(t, vo.StatusReceived, from)
				return donation.ErrStatusChanged
			}
			fromByID[d.ID()] = from
			saved = append(saved, d.ID())
			return nil
		},
	}

	uc := NewExpireDonationsUseCase(repo, 50, logger.NewNop())
	uc.now = func() time.Time { return now }

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 50, gotLimit)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"d1", "d2"}, saved)
	assert.Equal(t, vo.StatusPending, fromByID["d1"])
	assert.Equal(t, vo.StatusReceived, fromByID["d2"])
	assert.Equal(t, vo.StatusExpired, pending.Status())
	assert.Equal(t, vo.StatusDistributed, done.Status())
}

func TestExpireDonationsUseCase_Execute_ListError(t *testing.T) {
	listErr := errors.New("db down")
	repo := &mockDonationRepository{
		ListExpiringFunc: func(ctx context.Context, now time.Time, limit int) ([]*donation.Donation, error) {
			return nil, listErr
		},
	}
	uc := NewExpireDonationsUseCase(repo, 0, logger.NewNop())
	assert.Equal(t, 200, uc.batchSize)

	count, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, listErr)
	assert.Zero(t, count)
}
