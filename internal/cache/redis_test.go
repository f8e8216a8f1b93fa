package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "mines:session:abc", key("abc"))
}

func TestNewUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := New(ctx, &config.Redis{Addr: "127.0.0.1:1", TTL: time.Minute})
	assert.Error(t, err)
}

func testStore(t *testing.T) *Store {
	t.Helper()
	addr, ok := os.LookupEnv("TEST_REDIS_URL")
	if !ok {
		t.Skip("TEST_REDIS_URL not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return NewWithClient(client, time.Minute)
}

func TestStore(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	game, err := mines.NewGame(mines.DefaultParams())
	require.NoError(t, err)
	now := time.Now().UTC()
	rec := &session.Record{ID: session.NewID(), Game: game, CreatedAt: now, UpdatedAt: now}
	t.Cleanup(func() { s.Delete(ctx, rec.ID) })

	assert.ErrorIs(t, s.Save(ctx, rec), session.ErrNotFound)
	require.NoError(t, s.Create(ctx, rec))
	assert.ErrorIs(t, s.Create(ctx, rec), session.ErrExists)

	_, err = rec.Game.ToggleFlag(2, 3)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, rec))

	loaded, err := s.Load(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Game, loaded.Game)

	ttl, err := s.client.TTL(ctx, key(rec.ID)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, s.Delete(ctx, rec.ID))
	_, err = s.Load(ctx, rec.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	assert.NoError(t, s.Ping(ctx))
}
