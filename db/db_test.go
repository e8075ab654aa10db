package db_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakalivres/notifymail/db"
)

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	names, err := fs.Glob(db.Migrations, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "00001_create_users.sql")

	body, err := fs.ReadFile(db.Migrations, "00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "preferences JSONB")
}
