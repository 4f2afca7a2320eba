package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-handbook/internal/core/browser"
	"food-handbook/internal/core/catalog"
	"food-handbook/internal/infrastructure/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cfg := testSessionConfig()
	cfg.Store = config.SessionStoreRedis
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.KeyPrefix = "test:session:"

	store, err := NewRedisStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound))

	snap := browser.NewSnapshot()
	snap.State.SearchTerm = "瓜"
	snap.State.ActiveCategory = "水果"
	snap.State.ActiveSort = catalog.SortSeason
	snap.State.ActiveMonth = 7
	snap.OpenItem = "西瓜"
	require.NoError(t, store.Save(ctx, "s1", snap))

	require.True(t, mr.Exists("test:session:s1"))
	require.Equal(t, time.Hour, mr.TTL("test:session:s1"))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, snap, got)

	require.NoError(t, store.Ping(ctx))
}

func TestRedisStoreExpiredSessionIsNotFound(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", browser.NewSnapshot()))
	mr.FastForward(2 * time.Hour)

	_, err := store.Load(ctx, "s1")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestRedisStoreCorruptSnapshot(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("test:session:bad", "{not json"))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestServiceWithRedisStore(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	cat, err := catalog.New([]catalog.FoodItem{
		{Name: "菠菜", Category: "蔬菜", Season: "全年"},
		{Name: "西瓜", Category: "水果", Season: "6–8月"},
	})
	require.NoError(t, err)
	svc := NewService(store, cat, browser.NewRenderer())
	ctx := context.Background()

	_, err = svc.Apply(ctx, "a", browser.Event{Type: browser.EventMonth, Value: "7"})
	require.NoError(t, err)

	page, err := svc.Page(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "7月已选", page.MonthIndicator)
	require.NoError(t, svc.Ping(ctx))

	page, err = svc.Reset(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "", page.MonthIndicator)
	require.Equal(t, 2, page.Count)
}
