package main

import (
	"os"

	"github.com/rs/zerolog"

	"financetracker/ledger/postgres"
)

// runMigrations applies the schema migrations under path to the database at
// dsn. A missing directory is logged and skipped.
func runMigrations(dsn, path string, log zerolog.Logger) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warn().Str("path", path).Msg("Migrations directory not found, skipping migrations")
		return nil
	}

	log.Info().Str("path", path).Msg("Running database migrations")
	version, dirty, err := postgres.Migrate(dsn, path)
	if err != nil {
		return err
	}

	// Display current migration version
	if dirty {
		log.Warn().Uint("version", version).Msg("Current migration version is DIRTY, a migration failed")
	} else {
		log.Info().Uint("version", version).Msg("Database migrations completed successfully")
	}
	return nil
}
