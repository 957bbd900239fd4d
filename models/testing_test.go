package models

import (
	"fmt"
	"testing"

	"github.com/cleanarchmvc/catalog/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory sqlite database with the schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open sqlite database")

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.AutoMigrate(&Category{}, &Product{}), "Failed to migrate schema")
	return db
}

func seedCategory(t *testing.T, repo *CategoriesRepository, name string) *domain.Category {
	t.Helper()

	category, err := domain.NewCategory(name)
	require.NoError(t, err)
	created, err := repo.Create(t.Context(), category)
	require.NoError(t, err)
	return created
}

func seedProduct(t *testing.T, repo *ProductsRepository, name string, price string, categoryID int) *domain.Product {
	t.Helper()

	product, err := domain.NewProduct(name, name+" description", decimal.RequireFromString(price), 10, name+".png")
	require.NoError(t, err)
	product.SetCategoryID(categoryID)
	created, err := repo.Create(t.Context(), product)
	require.NoError(t, err)
	return created
}
