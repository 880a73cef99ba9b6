package migration

import (
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"purser/internal/infrastructure/persistence/models"
	"purser/internal/shared/logger"
)

// Manager picks a migration strategy per environment: gorm auto-migration in
// development, versioned goose scripts everywhere else.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

func NewManager(environment string, log logger.Interface) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case "debug", "development", "dev":
		strategy = NewGormAutoMigrateStrategy(log)
	default:
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		strategy = NewGooseStrategy(scriptsPath, log)
	}

	return &Manager{
		strategy: strategy,
		logger:   log,
	}
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log,
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, Models()...); err != nil {
		return fmt.Errorf("migration failed (%s): %w", m.strategy.GetName(), err)
	}

	return nil
}

// Models lists every persisted model, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.AgencyModel{},
		&models.UserModel{},
		&models.BookingModel{},
		&models.PaymentModel{},
		&models.InviteModel{},
		&models.WebhookEventModel{},
	}
}
