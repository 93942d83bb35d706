package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/aidlink/aidlink/internal/shared/constants"
	"github.com/aidlink/aidlink/internal/shared/logger"
)

// Manager runs the strategy chosen for an environment.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks gorm AutoMigrate for development on sqlite and the goose
// scripts everywhere else.
func NewManager(environment, dialect string, log logger.Interface) *Manager {
	var strategy Strategy
	if strings.EqualFold(environment, constants.EnvDevelopment) && dialect == "sqlite3" {
		strategy = NewAutoMigrateStrategy(log)
	} else {
		strategy = NewGooseStrategy(dialect, log)
	}
	return NewManagerWithStrategy(strategy, log)
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())
	if err := m.strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}
