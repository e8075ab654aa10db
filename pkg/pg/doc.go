// Package pg connects to PostgreSQL with pgx/v5 and applies goose
// migrations. It backs the user directory the mail listeners query for
// recipient addresses and email preferences.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if cfg.AutoMigrate {
//	    if err := pg.Migrate(ctx, pool, cfg, db.Migrations, log); err != nil {
//	        return err
//	    }
//	}
//
// Healthcheck returns a func(context.Context) error suitable for readiness
// probes.
package pg
