package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	bvo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
	"github.com/aidlink/aidlink/internal/domain/distribution/allocator"
	"github.com/aidlink/aidlink/internal/domain/donation"
	dvo "github.com/aidlink/aidlink/internal/domain/donation/valueobjects"
	apperrors "github.com/aidlink/aidlink/internal/shared/errors"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

func newCalculateUseCase(roster *mockRosterRepository, donations *mockDonationRepository, records *mockRecordRepository, store *memoryPlanStore) *CalculatePlanUseCase {
	uc := NewCalculatePlanUseCase(roster, donations, records, nil, allocator.New(allocator.WithClock(fixedNow)), "units", logger.NewNop())
	if store != nil {
		uc.planStore = store
	}
	uc.now = fixedNow
	return uc
}

func TestCalculatePlanUseCase_Execute_StoresPlan(t *testing.T) {
	var gotFilter beneficiary.RosterFilter
	roster := &mockRosterRepository{
		ListEligibleFunc: func(ctx context.Context, filter beneficiary.RosterFilter) ([]*beneficiary.Beneficiary, error) {
			gotFilter = filter
			return []*beneficiary.Beneficiary{
				newTestBeneficiary(t, "b1", bvo.PriorityCritical),
				newTestBeneficiary(t, "b2", bvo.PriorityLow),
			}, nil
		},
	}
	store := newMemoryPlanStore()
	uc := newCalculateUseCase(roster, &mockDonationRepository{}, &mockRecordRepository{}, store)

	result, err := uc.Execute(context.Background(), CalculatePlanCommand{
		NGOID:         "ngo-1",
		Priority:      "critical",
		ItemType:      "rice",
		TotalQuantity: 11,
	})
	require.NoError(t, err)

	assert.Equal(t, "ngo-1", gotFilter.NGOID)
	require.NotNil(t, gotFilter.Priority)
	assert.Equal(t, bvo.PriorityCritical, *gotFilter.Priority)

	require.Len(t, result.Lines, 2)
	assert.Equal(t, 7, result.Lines[0].Quantity)
	assert.Equal(t, 4, result.Lines[1].Quantity)
	assert.Equal(t, 2, result.Summary.TotalBeneficiaries)
	assert.Equal(t, 11, result.Summary.TotalQuantity)
	assert.InDelta(t, 5.5, result.Summary.AveragePerBeneficiary, 1e-9)
	assert.Equal(t, "rice", result.ItemName)
	assert.Equal(t, "units", result.Unit)
	assert.Equal(t, testNow, result.ReferenceTime)

	assert.True(t, strings.HasPrefix(result.PlanID, "plan_"))
	require.NotNil(t, result.ExpiresAt)
	stored, err := store.Get(context.Background(), result.PlanID)
	require.NoError(t, err)
	assert.Equal(t, 11, stored.Plan.Requested())
}

func TestCalculatePlanUseCase_Execute_DonationSupply(t *testing.T) {
	roster := &mockRosterRepository{
		ListEligibleFunc: func(ctx context.Context, filter beneficiary.RosterFilter) ([]*beneficiary.Beneficiary, error) {
			return []*beneficiary.Beneficiary{newTestBeneficiary(t, "b1", bvo.PriorityHigh)}, nil
		},
	}
	donations := &mockDonationRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*donation.Donation, error) {
			return newTestDonation(t, dvo.StatusReceived, 100, nil), nil
		},
	}
	records := &mockRecordRepository{
		SumQuantityByDonationFunc: func(ctx context.Context, donationID string) (int, error) {
			assert.Equal(t, "don-1", donationID)
			return 30, nil
		},
	}
	uc := newCalculateUseCase(roster, donations, records, nil)

	result, err := uc.Execute(context.Background(), CalculatePlanCommand{
		ItemType:      "rice",
		DonationID:    "don-1",
		TotalQuantity: 70,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Summary.AvailableQuantity)
	assert.Equal(t, 70, *result.Summary.AvailableQuantity)
	assert.Equal(t, "Basmati rice", result.ItemName)
	assert.Equal(t, "kg", result.Unit)
	assert.Empty(t, result.PlanID)
}

func TestCalculatePlanUseCase_Execute_Errors(t *testing.T) {
	rosterErr := errors.New("db down")

	tests := []struct {
		name      string
		cmd       CalculatePlanCommand
		roster    *mockRosterRepository
		donations *mockDonationRepository
		check     func(t *testing.T, err error)
	}{
		{
			name: "missing item type",
			cmd:  CalculatePlanCommand{TotalQuantity: 5},
			check: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsValidationError(err))
			},
		},
		{
			name: "negative total",
			cmd:  CalculatePlanCommand{ItemType: "rice", TotalQuantity: -1},
			check: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsValidationError(err))
			},
		},
		{
			name: "unknown priority filter",
			cmd:  CalculatePlanCommand{ItemType: "rice", Priority: "urgent", TotalQuantity: 5},
			check: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsValidationError(err))
			},
		},
		{
			name: "roster failure",
			cmd:  CalculatePlanCommand{ItemType: "rice", TotalQuantity: 5},
			roster: &mockRosterRepository{
				ListEligibleFunc: func(ctx context.Context, filter beneficiary.RosterFilter) ([]*beneficiary.Beneficiary, error) {
					return nil, rosterErr
				},
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, rosterErr)
			},
		},
		{
			name: "donation not found",
			cmd:  CalculatePlanCommand{ItemType: "rice", DonationID: "missing", TotalQuantity: 5},
			check: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsNotFoundError(err))
				assert.ErrorIs(t, err, donation.ErrDonationNotFound)
			},
		},
		{
			name: "donation holds another item",
			cmd:  CalculatePlanCommand{ItemType: "blankets", DonationID: "don-1", TotalQuantity: 5},
			donations: &mockDonationRepository{
				GetByIDFunc: func(ctx context.Context, id string) (*donation.Donation, error) {
					return newTestDonation(t, dvo.StatusReceived, 10, nil), nil
				},
			},
			check: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsValidationError(err))
			},
		},
		{
			name: "donation not yet received",
			cmd:  CalculatePlanCommand{ItemType: "rice", DonationID: "don-1", TotalQuantity: 5},
			donations: &mockDonationRepository{
				GetByIDFunc: func(ctx context.Context, id string) (*donation.Donation, error) {
					return newTestDonation(t, dvo.StatusPending, 10, nil), nil
				},
			},
			check: func(t *testing.T, err error) {
				assert.True(t, apperrors.IsConflictError(err))
				assert.ErrorIs(t, err, donation.ErrNotInStock)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := tt.roster
			if roster == nil {
				roster = &mockRosterRepository{}
			}
			donations := tt.donations
			if donations == nil {
				donations = &mockDonationRepository{}
			}
			uc := newCalculateUseCase(roster, donations, &mockRecordRepository{}, nil)

			result, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.Nil(t, result)
			tt.check(t, err)
		})
	}
}

func TestCalculatePlanUseCase_Execute_StoreFailureStillReturnsPlan(t *testing.T) {
	roster := &mockRosterRepository{
		ListEligibleFunc: func(ctx context.Context, filter beneficiary.RosterFilter) ([]*beneficiary.Beneficiary, error) {
			return []*beneficiary.Beneficiary{newTestBeneficiary(t, "b1", bvo.PriorityMedium)}, nil
		},
	}
	store := newMemoryPlanStore()
	store.saveErr = errors.New("redis unavailable")
	uc := newCalculateUseCase(roster, &mockDonationRepository{}, &mockRecordRepository{}, store)

	result, err := uc.Execute(context.Background(), CalculatePlanCommand{ItemType: "rice", TotalQuantity: 3})
	require.NoError(t, err)
	assert.Empty(t, result.PlanID)
	assert.Nil(t, result.ExpiresAt)
	assert.Equal(t, 3, result.Lines[0].Quantity)
}

func TestCalculatePlanUseCase_Execute_EmptyRoster(t *testing.T) {
	uc := newCalculateUseCase(&mockRosterRepository{}, &mockDonationRepository{}, &mockRecordRepository{}, nil)

	result, err := uc.Execute(context.Background(), CalculatePlanCommand{ItemType: "rice", TotalQuantity: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Lines)
	assert.Zero(t, result.Summary.TotalQuantity)
	assert.Zero(t, result.Summary.AveragePerBeneficiary)
}
