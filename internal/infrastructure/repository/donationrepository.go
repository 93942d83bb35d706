package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aidlink/aidlink/internal/domain/donation"
	vo "github.com/aidlink/aidlink/internal/domain/donation/valueobjects"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/mappers"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
	"github.com/aidlink/aidlink/internal/shared/db"
)

type DonationRepository struct {
	db     *gorm.DB
	mapper mappers.DonationMapper
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{
		db:     db,
		mapper: mappers.NewDonationMapper(),
	}
}

func (r *DonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(d)).Error; err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

func (r *DonationRepository) GetByID(ctx context.Context, id string) (*donation.Donation, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

// GetByIDForUpdate takes a row lock (SELECT ... FOR UPDATE on mysql) so two
// concurrent commits against one donation serialize. sqlite ignores the clause
// and serializes writers on its own.
func (r *DonationRepository) GetByIDForUpdate(ctx context.Context, id string) (*donation.Donation, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(tx, id)
}

func (r *DonationRepository) get(tx *gorm.DB, id string) (*donation.Donation, error) {
	var model models.DonationModel
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, donation.ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *DonationRepository) UpdateStatus(ctx context.Context, d *donation.Donation, from vo.DonationStatus) error {
	tx := db.GetTxFromContext(ctx, r.db)
	model := r.mapper.ToModel(d)
	result := tx.
		Model(&models.DonationModel{}).
		Where("id = ? AND status = ?", model.ID, from.String()).
		Updates(map[string]any{
			"status":      model.Status,
			"received_at": model.ReceivedAt,
			"notes":       model.Notes,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update donation: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.DonationModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to update donation: %w", err)
	}
	if count == 0 {
		return donation.ErrDonationNotFound
	}
	return donation.ErrStatusChanged
}

func (r *DonationRepository) ListExpiring(ctx context.Context, now time.Time, limit int) ([]*donation.Donation, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("status IN ?", []string{vo.StatusPending.String(), vo.StatusReceived.String()}).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now.UnixMilli()).
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var list []*models.DonationModel
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list expiring donations: %w", err)
	}

	out := make([]*donation.Donation, 0, len(list))
	for _, model := range list {
		d, err := r.mapper.ToDomain(model)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
