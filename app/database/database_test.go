package database

import (
	"testing"

	"github.com/cleanarchmvc/catalog/app/config"
	"github.com/cleanarchmvc/catalog/app/logging"
	"github.com/cleanarchmvc/catalog/models"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, _, err := New(config.DBConfig{Driver: "oracle"}, logging.Discard())

	assert.EqualError(t, err, "unsupported database driver: oracle")
}

func TestNew_SQLiteAndAutoMigrate(t *testing.T) {
	db, closeDB, err := New(config.DBConfig{
		Driver:    config.DriverSQLite,
		SQLiteDSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeDB() })

	require.NoError(t, AutoMigrate(db))

	assert.True(t, db.Migrator().HasTable(&models.Category{}))
	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.True(t, db.Migrator().HasColumn(&models.Product{}, "category_id"))
}

func TestMigrations_AreEmbedded(t *testing.T) {
	source, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := source.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	up, identifier, err := source.ReadUp(next)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "create_products", identifier)
}
