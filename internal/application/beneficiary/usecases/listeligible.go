package usecases

import (
	"context"
	"time"

	"github.com/aidlink/aidlink/internal/application/beneficiary/dto"
	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	vo "github.com/aidlink/aidlink/internal/domain/beneficiary/valueobjects"
	"github.com/aidlink/aidlink/internal/shared/biztime"
	"github.com/aidlink/aidlink/internal/shared/errors"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

type ListEligibleQuery struct {
	NGOID    string
	City     string
	Priority string
	Limit    int
}

type ListEligibleUseCase struct {
	rosterRepo beneficiary.Repository
	maxRows    int
	logger     logger.Interface
	now        func() time.Time
}

func NewListEligibleUseCase(rosterRepo beneficiary.Repository, maxRows int, logger logger.Interface) *ListEligibleUseCase {
	return &ListEligibleUseCase{
		rosterRepo: rosterRepo,
		maxRows:    maxRows,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

// Execute returns the roster in allocation order with a score preview.
func (uc *ListEligibleUseCase) Execute(ctx context.Context, query ListEligibleQuery) ([]dto.EligibleBeneficiaryDTO, error) {
	filter := beneficiary.RosterFilter{
		NGOID: query.NGOID,
		City:  query.City,
		Limit: query.Limit,
	}
	if filter.Limit <= 0 || (uc.maxRows > 0 && filter.Limit > uc.maxRows) {
		filter.Limit = uc.maxRows
	}
	if query.Priority != "" {
		tier, err := vo.NewPriorityTier(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Priority = &tier
	}

	roster, err := uc.rosterRepo.ListEligible(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list eligible beneficiaries", "error", err, "ngo_id", query.NGOID)
		return nil, err
	}

	ref := uc.now()
	out := make([]dto.EligibleBeneficiaryDTO, len(roster))
	for i, b := range roster {
		out[i] = dto.ToEligibleBeneficiaryDTO(b, ref)
	}
	return out, nil
}
