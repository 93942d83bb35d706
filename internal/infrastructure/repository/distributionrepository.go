package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/aidlink/aidlink/internal/domain/distribution"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/mappers"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
	"github.com/aidlink/aidlink/internal/shared/db"
)

const createBatchSize = 200

type DistributionRepository struct {
	db     *gorm.DB
	mapper mappers.DistributionMapper
}

func NewDistributionRepository(db *gorm.DB) *DistributionRepository {
	return &DistributionRepository{
		db:     db,
		mapper: mappers.NewDistributionMapper(),
	}
}

func (r *DistributionRepository) CreateBatch(ctx context.Context, records []*distribution.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]*models.DistributionModel, 0, len(records))
	for _, rec := range records {
		rows = append(rows, r.mapper.ToModel(rec))
	}
	if err := db.GetTxFromContext(ctx, r.db).CreateInBatches(rows, createBatchSize).Error; err != nil {
		return fmt.Errorf("failed to create distribution records: %w", err)
	}
	return nil
}

// List returns matching records newest first. filter.Limit is applied when positive.
func (r *DistributionRepository) List(ctx context.Context, filter distribution.HistoryFilter) ([]*distribution.Record, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.DistributionModel{})

	if filter.NGOID != "" {
		query = query.Where("ngo_id = ?", filter.NGOID)
	}
	if filter.BeneficiaryID != "" {
		query = query.Where("beneficiary_id = ?", filter.BeneficiaryID)
	}
	if filter.DonationID != "" {
		query = query.Where("donation_id = ?", filter.DonationID)
	}
	if filter.From != nil {
		query = query.Where("distributed_at >= ?", filter.From.UnixMilli())
	}
	if filter.To != nil {
		query = query.Where("distributed_at <= ?", filter.To.UnixMilli())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []*models.DistributionModel
	if err := query.Order("distributed_at DESC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list distributions: %w", err)
	}

	out := make([]*distribution.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.mapper.ToDomain(row))
	}
	return out, nil
}

func (r *DistributionRepository) SumQuantityByDonation(ctx context.Context, donationID string) (int, error) {
	var total int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.DistributionModel{}).
		Where("donation_id = ?", donationID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum distributed quantity: %w", err)
	}
	return int(total), nil
}
