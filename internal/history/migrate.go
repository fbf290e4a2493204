package history

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/matheus3301/flash/internal/history/migrations"
)

// SchemaVersion is the newest migration this build knows about.
const SchemaVersion uint = 2

var (
	// ErrDirtySchema means a previous migration failed halfway. The file
	// needs manual repair (or deletion) before history can be used again.
	ErrDirtySchema = errors.New("history schema is dirty")
	// ErrSchemaTooNew means the file was migrated by a newer build.
	ErrSchemaTooNew = errors.New("history schema is newer than this build")
)

// MigrateResult describes what happened during migration.
type MigrateResult struct {
	Version uint
	Changed bool
}

// Migrate brings the history schema up to SchemaVersion. It refuses to touch
// a dirty or newer schema rather than guessing at its state.
func (db *DB) Migrate() (*MigrateResult, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("migration instance: %w", err)
	}

	before, err := schemaVersion(m)
	if err != nil {
		return nil, err
	}
	if before > SchemaVersion {
		return nil, fmt.Errorf("%w: file at version %d, build supports %d", ErrSchemaTooNew, before, SchemaVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("migration up: %w", err)
	}

	after, err := schemaVersion(m)
	if err != nil {
		return nil, err
	}
	if after != SchemaVersion {
		return nil, fmt.Errorf("migration up: reached version %d, want %d", after, SchemaVersion)
	}
	return &MigrateResult{Version: after, Changed: after != before}, nil
}

// schemaVersion reports the applied version, 0 for a fresh file.
func schemaVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migration version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("%w at version %d", ErrDirtySchema, version)
	}
	return version, nil
}
