package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aidlink/aidlink/internal/domain/beneficiary"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/mappers"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
	"github.com/aidlink/aidlink/internal/shared/db"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

// rosterOrder puts the most urgent tier first, then the longest-unserved
// (NULL sorts first under ASC in both mysql and sqlite), then creation order
// so that equal candidates keep a stable position between calls.
const rosterOrder = "CASE priority WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC, " +
	"last_served_at ASC, created_at ASC, id ASC"

type BeneficiaryRepository struct {
	db     *gorm.DB
	mapper mappers.BeneficiaryMapper
	logger logger.Interface
}

func NewBeneficiaryRepository(db *gorm.DB, logger logger.Interface) *BeneficiaryRepository {
	return &BeneficiaryRepository{
		db:     db,
		mapper: mappers.NewBeneficiaryMapper(),
		logger: logger,
	}
}

func (r *BeneficiaryRepository) Create(ctx context.Context, b *beneficiary.Beneficiary) error {
	model := r.mapper.ToModel(b)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create beneficiary: %w", err)
	}
	return nil
}

func (r *BeneficiaryRepository) GetByID(ctx context.Context, id string) (*beneficiary.Beneficiary, error) {
	var model models.BeneficiaryModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, beneficiary.ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("failed to get beneficiary: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// ListEligible reads the roster in a single statement so the caller sees one
// consistent snapshot.
func (r *BeneficiaryRepository) ListEligible(ctx context.Context, filter beneficiary.RosterFilter) ([]*beneficiary.Beneficiary, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.BeneficiaryModel{}).
		Where("is_active = ?", true)

	if filter.NGOID != "" {
		query = query.Where("ngo_id = ?", filter.NGOID)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var list []*models.BeneficiaryModel
	if err := query.Order(rosterOrder).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list eligible beneficiaries: %w", err)
	}

	r.logger.Debugw("loaded roster", "ngo_id", filter.NGOID, "city", filter.City, "count", len(list))
	return r.mapper.ToDomainList(list)
}

// MarkServed stamps last_served_at for every id in one statement. The
// execute use case loads the same ids through ListEligible earlier in the
// transaction, so every id names an active beneficiary.
func (r *BeneficiaryRepository) MarkServed(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	ms := at.UnixMilli()
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BeneficiaryModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"last_served_at": ms,
			"updated_at":     ms,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark beneficiaries served: %w", err)
	}
	return nil
}
