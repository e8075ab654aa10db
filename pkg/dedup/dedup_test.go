package dedup_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakalivres/notifymail/pkg/cache"
	"github.com/stakalivres/notifymail/pkg/dedup"
)

func TestMemory_Seen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	d, err := dedup.NewMemory(0, 2*time.Minute, cache.WithClock(clock))
	require.NoError(t, err)

	seen, err := d.Seen(ctx, "u1|T|1")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, _ = d.Seen(ctx, "u1|T|1")
	assert.True(t, seen)

	seen, _ = d.Seen(ctx, "u2|T|1")
	assert.False(t, seen)

	now = now.Add(2*time.Minute + time.Millisecond)
	seen, _ = d.Seen(ctx, "u1|T|1")
	assert.False(t, seen)
}

func TestRedis_Seen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	defer client.Close()

	d, err := dedup.NewRedis(client, 2*time.Minute, "test:")
	require.NoError(t, err)

	seen, err := d.Seen(ctx, "u1|T|1")
	require.NoError(t, err)
	assert.False(t, seen)
	assert.True(t, srv.Exists("test:dedup:u1|T|1"))

	seen, err = d.Seen(ctx, "u1|T|1")
	require.NoError(t, err)
	assert.True(t, seen)

	srv.FastForward(2*time.Minute + time.Second)
	seen, err = d.Seen(ctx, "u1|T|1")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedis_Error(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr(), MaxRetries: -1})
	defer client.Close()

	d, err := dedup.NewRedis(client, time.Minute, "")
	require.NoError(t, err)

	srv.Close()
	_, err = d.Seen(context.Background(), "k")
	assert.Error(t, err)
}

func TestInvalidWindow(t *testing.T) {
	t.Parallel()

	_, err := dedup.NewMemory(10, 0)
	assert.ErrorIs(t, err, dedup.ErrInvalidWindow)

	_, err = dedup.NewRedis(nil, -time.Second, "")
	assert.ErrorIs(t, err, dedup.ErrInvalidWindow)
}
