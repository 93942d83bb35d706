package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	bvo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
	"github.com/aidlink/aidlink/internal/domain/donation"
	dvo "github.com/aidlink/aidlink/internal/domain/donation/valueobjects"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func newTestBeneficiary(t *testing.T, id string, tier bvo.PriorityTier, health ...string) *beneficiary.Beneficiary {
	t.Helper()
	b, err := beneficiary.NewBeneficiary(id, "ngo-1", "Name "+id, "", tier, health)
	require.NoError(t, err)
	return b
}

func newTestDonation(t *testing.T, status dvo.DonationStatus, qty int, expiresAt *time.Time) *donation.Donation {
	t.Helper()
	d, err := donation.ReconstructDonation("don-1", "ngo-1", "Harvest Trust", "rice", "Basmati rice", qty, "kg",
		expiresAt, status, nil, "", testNow.Add(-48*time.Hour), testNow.Add(-48*time.Hour))
	require.NoError(t, err)
	return d
}
