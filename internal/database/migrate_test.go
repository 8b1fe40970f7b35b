package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsUsesEmbeddedDir(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, runMigrations(context.Background(), nil))
	assert.Equal(t, "migrations", gotDir)
}

func TestRunMigrationsWrapsFailure(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	gooseErr := errors.New("relation already exists")
	gooseUp = func(_ context.Context, _ *sql.DB, _ string) error {
		return gooseErr
	}

	err := runMigrations(context.Background(), nil)
	require.ErrorIs(t, err, gooseErr)
	assert.Contains(t, err.Error(), "apply migrations")
}

func TestMigrateRequiresPool(t *testing.T) {
	var db *DB
	require.Error(t, db.Migrate(context.Background()))
	require.Error(t, (&DB{}).Migrate(context.Background()))
}
