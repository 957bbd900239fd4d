package database

import (
	"fmt"
	"log/slog"

	"github.com/cleanarchmvc/catalog/app/config"
	"github.com/cleanarchmvc/catalog/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database selected by cfg.Driver. The returned func closes
// the underlying connection pool.
func New(cfg config.DBConfig, log *slog.Logger) (*gorm.DB, func() error, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLiteDSN)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.NewSlogLogger(log, logger.Config{
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}

	return db, sqlDB.Close, nil
}

// AutoMigrate creates the schema from the gorm models. It is used for
// sqlite, which the SQL migrations do not target.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
