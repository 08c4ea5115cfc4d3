package main

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRunMigrationsSkipsMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-migrations")
	// The DSN is never dialled when there is nothing to apply.
	assert.NoError(t, runMigrations("postgres://invalid", missing, zerolog.Nop()))
}
