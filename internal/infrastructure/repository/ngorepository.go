package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aidlink/aidlink/internal/domain/ngo"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/mappers"
	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
	"github.com/aidlink/aidlink/internal/shared/db"
)

type NGORepository struct {
	db     *gorm.DB
	mapper mappers.NGOMapper
}

func NewNGORepository(db *gorm.DB) *NGORepository {
	return &NGORepository{db: db, mapper: mappers.NewNGOMapper()}
}

func (r *NGORepository) Create(ctx context.Context, n *ngo.NGO) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(n)).Error; err != nil {
		return fmt.Errorf("failed to create ngo: %w", err)
	}
	return nil
}

func (r *NGORepository) GetByID(ctx context.Context, id string) (*ngo.NGO, error) {
	var model models.NGOModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ngo.ErrNGONotFound
		}
		return nil, fmt.Errorf("failed to get ngo: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}
