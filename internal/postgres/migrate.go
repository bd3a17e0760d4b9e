package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations
type Migrator struct {
	m      *migrate.Migrate
	logger *logger.Logger
}

func NewMigrator(cfg *config.Configuration, logger *logger.Logger) (*Migrator, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.Postgres.GetURL())
	if err != nil {
		return nil, err
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	mg.logVersion()
	return nil
}

// Down reverts the given number of migrations
func (mg *Migrator) Down(steps int) error {
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	mg.logVersion()
	return nil
}

// Version reports the applied version and whether the last run left it dirty
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Pending lists the migration files that would run on Up
func (mg *Migrator) Pending() ([]string, error) {
	current, _, err := mg.Version()
	if err != nil {
		return nil, err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, e := range entries {
		version, ok := parseMigrationVersion(e.Name())
		if !ok || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		if version > current {
			pending = append(pending, e.Name())
		}
	}
	return pending, nil
}

func (mg *Migrator) Close() {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil || dbErr != nil {
		mg.logger.Errorw("failed to close migrator", "source_error", srcErr, "database_error", dbErr)
	}
}

func (mg *Migrator) logVersion() {
	version, dirty, err := mg.Version()
	if err != nil {
		mg.logger.Warnw("could not read migration version", "error", err)
		return
	}
	mg.logger.Infow("database schema migrated", "version", version, "dirty", dirty)
}

// parseMigrationVersion reads the numeric prefix of a file such as 000001_init.up.sql
func parseMigrationVersion(name string) (uint, bool) {
	var version uint
	if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
		return 0, false
	}
	return version, true
}
