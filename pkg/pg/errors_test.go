package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/stakalivres/notifymail/pkg/pg"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsNotFoundError(nil))
	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("find user: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(errors.New("other")))
}

func TestIsInvalidTextError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsInvalidTextError(nil))
	assert.True(t, pg.IsInvalidTextError(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, pg.IsInvalidTextError(&pgconn.PgError{Code: "23505"}))
}
