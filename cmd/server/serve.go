package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cleanarchmvc/catalog/app/cache"
	"github.com/cleanarchmvc/catalog/app/catalog"
	"github.com/cleanarchmvc/catalog/app/categories"
	"github.com/cleanarchmvc/catalog/app/config"
	"github.com/cleanarchmvc/catalog/app/database"
	"github.com/cleanarchmvc/catalog/app/logging"
	"github.com/cleanarchmvc/catalog/app/metrics"
	"github.com/cleanarchmvc/catalog/app/server"
	"github.com/cleanarchmvc/catalog/app/services"
	"github.com/cleanarchmvc/catalog/app/telemetry"
	"github.com/cleanarchmvc/catalog/domain"
	"github.com/cleanarchmvc/catalog/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(ctx, cfg, skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not migrate the schema on startup")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, skipMigrations bool) error {
	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	tp, err := telemetry.NewTracerProvider(ctx, cfg.OTLP)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	if !skipMigrations && cfg.DB.Driver == config.DriverPostgres {
		if err := migrateSchema(cfg.DB, logger); err != nil {
			return err
		}
	}

	db, closeDB, err := database.New(cfg.DB, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	if !skipMigrations && cfg.DB.Driver == config.DriverSQLite {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}

	productRepo, closeCache, err := productRepository(ctx, cfg.Redis, db, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	m := metrics.New()
	categoryRepo := models.NewCategoriesRepository(db)
	categorySvc := services.NewCategoryService(categoryRepo, logger, m)
	productSvc := services.NewProductService(productRepo, categoryRepo, logger, m)

	router := server.NewRouter(logger, m,
		categories.NewCategoryHandler(categorySvc, logger),
		catalog.NewCatalogHandler(productSvc, logger),
	)

	return server.New(cfg.HTTP, router, logger).Run(ctx)
}

// productRepository returns the gorm product repository, fronted by the
// redis cache when one is configured.
func productRepository(ctx context.Context, cfg config.RedisConfig, db *gorm.DB, logger *slog.Logger) (domain.ProductRepository, func() error, error) {
	repo := models.NewProductsRepository(db)
	if !cfg.Enabled() {
		return repo, func() error { return nil }, nil
	}

	store := cache.NewRedisStore(cfg)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("product cache enabled", slog.String("addr", cfg.Addr), slog.Duration("ttl", cfg.TTL))

	return cache.NewProductRepository(repo, store, cfg.TTL, logger), store.Close, nil
}
