package main

import (
	"fmt"
	"log/slog"

	"github.com/cleanarchmvc/catalog/app/config"
	"github.com/cleanarchmvc/catalog/app/database"
	"github.com/cleanarchmvc/catalog/app/logging"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := logging.New(cfg.Log)
			return migrateSchema(cfg.DB, logger)
		},
	}
}

// migrateSchema applies the SQL migrations on postgres and creates the
// schema from the gorm models on sqlite.
func migrateSchema(cfg config.DBConfig, logger *slog.Logger) error {
	if cfg.Driver != config.DriverPostgres {
		db, closeDB, err := database.New(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB()
		return database.AutoMigrate(db)
	}
	return database.Migrate(cfg.URL(), logger)
}
