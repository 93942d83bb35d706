package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/aidlink/aidlink/internal/infrastructure/persistence/models"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&models.NGOModel{},
		&models.BeneficiaryModel{},
		&models.DonationModel{},
		&models.DistributionModel{},
	}
}

// AutoMigrateStrategy lets gorm derive the schema from the models. Used for
// throwaway sqlite databases in development.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_automigrate"
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migration completed", "tables", len(Models()))
	return nil
}
