package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/entities"
)

// setupTestDB opens a fresh database file and applies all migrations.
func setupTestDB(t *testing.T, enforceForeignKeys bool) *Database {
	t.Helper()
	logger, _ := test.NewNullLogger()

	db, err := NewDatabase(config.Database{
		Path:               filepath.Join(t.TempDir(), "test.db"),
		EnforceForeignKeys: enforceForeignKeys,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, false)

	t.Run("creates all tables", func(t *testing.T) {
		for _, table := range []string{"users", "books", "authors_books"} {
			assert.True(t, db.DB.Migrator().HasTable(table), table)
		}
	})

	t.Run("reports the latest version", func(t *testing.T) {
		version, err := db.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), version)
	})

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, db.Migrate(ctx))
	})

	t.Run("status lists applied migrations", func(t *testing.T) {
		states, err := db.MigrationStatus(ctx)
		require.NoError(t, err)
		require.Len(t, states, 3)
		for _, s := range states {
			assert.True(t, s.Applied, s.Path)
		}
		assert.Equal(t, "00001_create_users_table.sql", filepath.Base(states[0].Path))
	})

	t.Run("down rolls back one migration", func(t *testing.T) {
		require.NoError(t, db.MigrateDown(ctx))
		assert.False(t, db.DB.Migrator().HasTable("authors_books"))

		version, err := db.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)
	})

	t.Run("reset drops everything", func(t *testing.T) {
		require.NoError(t, db.Reset(ctx))
		assert.False(t, db.DB.Migrator().HasTable("users"))
		assert.False(t, db.DB.Migrator().HasTable("books"))
	})
}

func TestMigrationStatus_FreshDatabase(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()

	db, err := NewDatabase(config.Database{Path: filepath.Join(t.TempDir(), "fresh.db")}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	version, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	states, err := db.MigrationStatus(ctx)
	require.NoError(t, err)
	require.Len(t, states, 3)
	for _, s := range states {
		assert.False(t, s.Applied, s.Path)
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, false)

	result, err := db.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Users: 10, Books: 5}, result)

	var john entities.User
	require.NoError(t, db.DB.First(&john, 1).Error)
	assert.Equal(t, "John", john.GivenName)
	assert.Equal(t, "Doe", john.FamilyName)

	again, err := db.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, again)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestMapError(t *testing.T) {
	ctx := context.Background()

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil))
	})

	t.Run("unique violation", func(t *testing.T) {
		db := setupTestDB(t, false)
		pair := entities.Authorship{UserID: 1, BookID: 1}
		require.NoError(t, db.DB.WithContext(ctx).Create(&pair).Error)

		dup := entities.Authorship{UserID: 1, BookID: 1}
		err := db.DB.WithContext(ctx).Create(&dup).Error
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))

		mapped := MapError(err)
		assert.ErrorIs(t, mapped, ErrConstraintViolation)
		assert.NotErrorIs(t, mapped, ErrStore)
		assert.Contains(t, mapped.Error(), "unique")
	})

	t.Run("foreign key violation when enforced", func(t *testing.T) {
		db := setupTestDB(t, true)
		orphan := entities.Authorship{UserID: 42, BookID: 42}
		err := MapError(db.DB.WithContext(ctx).Create(&orphan).Error)
		assert.ErrorIs(t, err, ErrConstraintViolation)
		assert.Contains(t, err.Error(), "foreign key")
	})

	t.Run("other failures are store errors", func(t *testing.T) {
		cause := errors.New("disk on fire")
		mapped := MapError(cause)
		assert.ErrorIs(t, mapped, ErrStore)
		assert.ErrorIs(t, mapped, cause)
		assert.False(t, IsUniqueViolation(cause))
	})

	t.Run("context errors stay detectable", func(t *testing.T) {
		assert.ErrorIs(t, MapError(context.Canceled), context.Canceled)
	})
}
