package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/domain/donation"
	dvo "github.com/aidlink/aidlink/internal/domain/donation/valueobjects"
)

type mockRosterRepository struct {
	CreateFunc       func(ctx context.Context, b *beneficiary.Beneficiary) error
	GetByIDFunc      func(ctx context.Context, id string) (*beneficiary.Beneficiary, error)
	ListEligibleFunc func(ctx context.Context, filter beneficiary.RosterFilter) ([]*beneficiary.Beneficiary, error)
	MarkServedFunc   func(ctx context.Context, ids []string, at time.Time) error
}

func (m *mockRosterRepository) Create(ctx context.Context, b *beneficiary.Beneficiary) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	return nil
}

func (m *mockRosterRepository) GetByID(ctx context.Context, id string) (*beneficiary.Beneficiary, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, beneficiary.ErrBeneficiaryNotFound
}

func (m *mockRosterRepository) ListEligible(ctx context.Context, filter beneficiary.RosterFilter) ([]*beneficiary.Beneficiary, error) {
	if m.ListEligibleFunc != nil {
		return m.ListEligibleFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockRosterRepository) MarkServed(ctx context.Context, ids []string, at time.Time) error {
	if m.MarkServedFunc != nil {
		return m.MarkServedFunc(ctx, ids, at)
	}
	return nil
}

type mockDonationRepository struct {
	CreateFunc           func(ctx context.Context, d *donation.Donation) error
	GetByIDFunc          func(ctx context.Context, id string) (*donation.Donation, error)
	GetByIDForUpdateFunc func(ctx context.Context, id string) (*donation.Donation, error)
	UpdateStatusFunc     func(ctx context.Context, d *donation.Donation, from dvo.DonationStatus) error
	ListExpiringFunc     func(ctx context.Context, now time.Time, limit int) ([]*donation.Donation, error)
}

func (m *mockDonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	return nil
}

func (m *mockDonationRepository) GetByID(ctx context.Context, id string) (*donation.Donation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, donation.ErrDonationNotFound
}

func (m *mockDonationRepository) GetByIDForUpdate(ctx context.Context, id string) (*donation.Donation, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *mockDonationRepository) UpdateStatus(ctx context.Context, d *donation.Donation, from dvo.DonationStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, d, from)
	}
	return nil
}

func (m *mockDonationRepository) ListExpiring(ctx context.Context, now time.Time, limit int) ([]*donation.Donation, error) {
	if m.ListExpiringFunc != nil {
		return m.ListExpiringFunc(ctx, now, limit)
	}
	return nil, nil
}

type mockRecordRepository struct {
	CreateBatchFunc           func(ctx context.Context, records []*distribution.Record) error
	ListFunc                  func(ctx context.Context, filter distribution.HistoryFilter) ([]*distribution.Record, error)
	SumQuantityByDonationFunc func(ctx context.Context, donationID string) (int, error)
}

func (m *mockRecordRepository) CreateBatch(ctx context.Context, records []*distribution.Record) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, records)
	}
	return nil
}

func (m *mockRecordRepository) List(ctx context.Context, filter distribution.HistoryFilter) ([]*distribution.Record, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockRecordRepository) SumQuantityByDonation(ctx context.Context, donationID string) (int, error) {
	if m.SumQuantityByDonationFunc != nil {
		return m.SumQuantityByDonationFunc(ctx, donationID)
	}
	return 0, nil
}

// memoryPlanStore mimics the GETDEL semantics of the Redis store.
type memoryPlanStore struct {
	mu      sync.Mutex
	plans    map[string]distribution.PendingPlan
	saveErr  error
	restored int
}

func newMemoryPlanStore() *memoryPlanStore {
	return &memoryPlanStore{plans: map[string]distribution.PendingPlan{}}
}

func (s *memoryPlanStore) Save(_ context.Context, p *distribution.PendingPlan) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.CreatedAt = time.Now().UTC()
	p.ExpiresAt = p.CreatedAt.Add(30 * time.Minute)
	s.plans[p.ID] = *p
	return nil
}

// Restore keeps the plan's original expiry.
func (s *memoryPlanStore) Restore(_ context.Context, p *distribution.PendingPlan) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[p.ID] = *p
	s.restored++
	return nil
}

func (s *memoryPlanStore) Get(_ context.Context, id string) (*distribution.PendingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, distribution.ErrPlanNotFound
	}
	return &p, nil
}

func (s *memoryPlanStore) Take(_ context.Context, id string) (*distribution.PendingPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, distribution.ErrPlanNotFound
	}
	delete(s.plans, id)
	return &p, nil
}

// passthroughTx runs fn directly; tests assert rollback by checking that
// nothing after the failing call ran.
type passthroughTx struct {
	calls int
}

func (tx *passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}
