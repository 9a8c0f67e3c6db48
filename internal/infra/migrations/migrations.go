package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Source драйвер источника поверх встроенных SQL файлов
func Source() (source.Driver, error) {
	src, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	return src, nil
}

// Run применяет все невыполненные миграции
func Run(db *sql.DB, log Logger) error {
	src, err := Source()
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to init migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		log.Warn("Migrations: database is dirty at version %d", version)
	} else {
		log.Info("Migrations: schema at version %d", version)
	}
	return nil
}
