package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/database/migrations"
	"github.com/mrlokans/userbooks/internal/logging"
)

// versionTable is where goose records applied migrations.
const versionTable = "goose_db_version"

type Database struct {
	DB     *gorm.DB
	path   string
	logger *logrus.Logger
}

// NewDatabase opens the SQLite database described by cfg. It does not touch
// the schema; call Migrate for that.
func NewDatabase(cfg config.Database, logger *logrus.Logger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dsn(cfg)), &gorm.Config{
		Logger: logging.GormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"path":         cfg.Path,
		"foreign_keys": cfg.EnforceForeignKeys,
	}).Info("database opened")

	return &Database{DB: db, path: cfg.Path, logger: logger}, nil
}

func dsn(cfg config.Database) string {
	params := url.Values{}
	params.Set("_busy_timeout", "5000")
	if cfg.EnforceForeignKeys {
		params.Set("_foreign_keys", "1")
	} else {
		params.Set("_foreign_keys", "0")
	}

	sep := "?"
	if strings.Contains(cfg.Path, "?") {
		sep = "&"
	}
	return cfg.Path + sep + params.Encode()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database answers.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) provider() (*goose.Provider, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, sqlDB, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration.
func (d *Database) Migrate(ctx context.Context) error {
	provider, err := d.provider()
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	for _, r := range results {
		d.logResult(r)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	d.logger.WithField("version", version).Info("database schema up to date")
	return nil
}

// MigrateDown rolls back the most recent migration.
func (d *Database) MigrateDown(ctx context.Context) error {
	provider, err := d.provider()
	if err != nil {
		return err
	}
	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	d.logResult(result)
	return nil
}

// Reset rolls back every applied migration.
func (d *Database) Reset(ctx context.Context) error {
	provider, err := d.provider()
	if err != nil {
		return err
	}
	results, err := provider.DownTo(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	for _, r := range results {
		d.logResult(r)
	}
	return nil
}

// MigrationState describes one known migration.
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

// MigrationStatus lists every known migration and whether it has been applied.
func (d *Database) MigrationStatus(ctx context.Context) ([]MigrationState, error) {
	provider, err := d.provider()
	if err != nil {
		return nil, err
	}
	if !d.versioned(ctx) {
		sources := provider.ListSources()
		states := make([]MigrationState, 0, len(sources))
		for _, src := range sources {
			states = append(states, MigrationState{Version: src.Version, Path: src.Path})
		}
		return states, nil
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	states := make([]MigrationState, 0, len(statuses))
	for _, s := range statuses {
		states = append(states, MigrationState{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return states, nil
}

// SchemaVersion returns the latest applied migration version, 0 if none.
func (d *Database) SchemaVersion(ctx context.Context) (int64, error) {
	provider, err := d.provider()
	if err != nil {
		return 0, err
	}
	if !d.versioned(ctx) {
		return 0, nil
	}
	return provider.GetDBVersion(ctx)
}

// versioned reports whether goose has ever run against this database.
func (d *Database) versioned(ctx context.Context) bool {
	return d.DB.WithContext(ctx).Migrator().HasTable(versionTable)
}

func (d *Database) logResult(r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	d.logger.WithFields(logrus.Fields{
		"version":   r.Source.Version,
		"file":      r.Source.Path,
		"direction": r.Direction,
		"duration":  r.Duration.String(),
	}).Info("migration applied")
}
