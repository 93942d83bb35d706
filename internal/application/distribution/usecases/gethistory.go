package usecases

import (
	"context"
	"time"

	"github.com/aidlink/aidlink/internal/application/distribution/dto"
	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/shared/errors"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

type GetHistoryQuery struct {
	NGOID         string
	BeneficiaryID string
	DonationID    string
	From          *time.Time
	To            *time.Time
	Limit         int
}

type GetHistoryUseCase struct {
	recordRepo distribution.Repository
	maxRows    int
	logger     logger.Interface
}

func NewGetHistoryUseCase(recordRepo distribution.Repository, maxRows int, logger logger.Interface) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		recordRepo: recordRepo,
		maxRows:    maxRows,
		logger:     logger,
	}
}

// Execute returns matching records newest first, never more than maxRows.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, query GetHistoryQuery) ([]dto.RecordDTO, error) {
	if query.From != nil && query.To != nil && query.From.After(*query.To) {
		return nil, errors.NewValidationError("from must not be after to")
	}

	limit := query.Limit
	if limit <= 0 || (uc.maxRows > 0 && limit > uc.maxRows) {
		limit = uc.maxRows
	}

	records, err := uc.recordRepo.List(ctx, distribution.HistoryFilter{
		NGOID:         query.NGOID,
		BeneficiaryID: query.BeneficiaryID,
		DonationID:    query.DonationID,
		From:          query.From,
		To:            query.To,
		Limit:         limit,
	})
	if err != nil {
		uc.logger.Errorw("failed to list distribution history", "error", err)
		return nil, err
	}
	return dto.ToRecordDTOs(records), nil
}
