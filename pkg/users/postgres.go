package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stakalivres/notifymail/pkg/pg"
)

// Querier is the subset of *pgxpool.Pool and pgx.Tx used by PostgresDirectory.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresDirectory reads users from the users table.
type PostgresDirectory struct {
	db Querier
}

// NewPostgresDirectory creates a directory on top of db.
func NewPostgresDirectory(db Querier) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const findUserByID = `
	SELECT id::text, email, first_name, last_name, preferences
	FROM users
	WHERE id = $1;
`

func (d *PostgresDirectory) FindByID(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	var (
		u     User
		prefs []byte
	)
	err := d.db.QueryRow(ctx, findUserByID, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &prefs)
	if err != nil {
		// a malformed uuid cannot match any row
		if pg.IsNotFoundError(err) || pg.IsInvalidTextError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode preferences of user %s: %w", id, err)
		}
	}

	return &u, nil
}
