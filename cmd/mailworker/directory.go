package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stakalivres/notifymail/db"
	"github.com/stakalivres/notifymail/pkg/pg"
	"github.com/stakalivres/notifymail/pkg/users"
)

// openDirectory returns the user directory, its readiness probe (nil when
// there is nothing to probe) and a close function.
func openDirectory(ctx context.Context, cfg configs, log *slog.Logger) (users.Directory, func(context.Context) error, func(), error) {
	if !cfg.Postgres.Enabled() {
		log.WarnContext(ctx, "DATABASE_URL not set, using an empty in-memory user directory")
		return users.NewMemoryDirectory(), nil, func() {}, nil
	}

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("postgres: %w", err)
	}

	if cfg.Postgres.AutoMigrate {
		if err := pg.Migrate(ctx, pool, cfg.Postgres, db.Migrations, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
	}

	return users.NewPostgresDirectory(pool), pg.Healthcheck(pool), pool.Close, nil
}
