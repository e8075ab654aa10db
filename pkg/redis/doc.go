// Package redis connects to Redis with retries and exposes a readiness probe.
//
// The mail worker only needs Redis when several processes share the client
// notification deduplication window; with REDIS_URL unset the in-memory
// deduplicator is used instead.
//
//	cfg := config.MustLoad[redis.Config]()
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    ...
//	}
package redis
