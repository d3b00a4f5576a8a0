package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrateUp applies every pending migration found at migrationsPath (e.g. "file://migrations").
func MigrateUp(databaseURL, migrationsPath string, logger *slog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, logger, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// MigrateDown rolls back the given number of migrations; steps <= 0 rolls back all of them.
func MigrateDown(databaseURL, migrationsPath string, steps int, logger *slog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, logger, func(m *migrate.Migrate) error {
		if steps <= 0 {
			return m.Down()
		}
		return m.Steps(-steps)
	})
}

func withMigrator(databaseURL, migrationsPath string, logger *slog.Logger, run func(*migrate.Migrate) error) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	runErr := run(m)
	if runErr != nil && !errors.Is(runErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", runErr)
	}

	version, dirty, verr := m.Version()
	switch {
	case errors.Is(runErr, migrate.ErrNoChange):
		logger.Info("No new migrations to apply.")
	case verr == nil:
		logger.Info("Database migrations applied successfully.", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	default:
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
