package beneficiary

import (
	"context"
	"errors"
	"time"

	vo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
)

var ErrBeneficiaryNotFound = errors.New("beneficiary not found")

// RosterFilter narrows the eligible roster. Zero values do not filter.
type RosterFilter struct {
	NGOID    string
	City     string
	Priority *vo.PriorityTier
	IDs      []string
	Limit    int
}

// Repository is the roster provider. ListEligible returns active
// beneficiaries only, most urgent tier first, then longest-unserved first
// with never-served ahead of everyone in the same tier.
type Repository interface {
	Create(ctx context.Context, b *Beneficiary) error
	GetByID(ctx context.Context, id string) (*Beneficiary, error)
	ListEligible(ctx context.Context, filter RosterFilter) ([]*Beneficiary, error)
	MarkServed(ctx context.Context, ids []string, at time.Time) error
}
