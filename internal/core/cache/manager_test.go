package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-handbook/internal/infrastructure/config"
	"food-handbook/internal/pkg/common"

	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	current time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.current
}

func newTestManager(t *testing.T, maxSize int) (*Manager, *fixedClock) {
	t.Helper()

	m := NewManager("test", config.CacheConfig{
		Enabled:         true,
		MaxSize:         maxSize,
		TTL:             time.Minute,
		CleanupInterval: time.Hour,
	})
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Close() })

	clock := &fixedClock{current: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	m.now = clock.Now
	return m, clock
}

func TestManagerSetGet(t *testing.T) {
	m, _ := newTestManager(t, 4)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("apple")))
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "apple", string(got))

	_, err = m.Get(ctx, "missing")
	require.True(t, errors.Is(err, common.ErrCacheMiss))

	stats := m.GetStats()
	require.EqualValues(t, 1, stats["hits"])
	require.EqualValues(t, 1, stats["misses"])
	require.InDelta(t, 0.5, stats["hit_ratio"], 0.0001)
}

func TestManagerExpiry(t *testing.T) {
	m, clock := newTestManager(t, 4)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("apple")))
	clock.current = clock.current.Add(2 * time.Minute)

	_, err := m.Get(ctx, "a")
	require.True(t, errors.Is(err, common.ErrCacheMiss))
	require.Zero(t, m.Len())
}

func TestManagerZeroTTLNeverExpires(t *testing.T) {
	m := NewManager("pinned", config.CacheConfig{Enabled: true, MaxSize: 2})
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Close() })

	clock := &fixedClock{current: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	m.now = clock.Now
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "style.css", []byte("body{}")))
	clock.current = clock.current.AddDate(1, 0, 0)

	m.mu.Lock()
	require.Zero(t, m.cleanup())
	m.mu.Unlock()

	got, err := m.Get(ctx, "style.css")
	require.NoError(t, err)
	require.Equal(t, "body{}", string(got))
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	m, clock := newTestManager(t, 2)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	clock.current = clock.current.Add(time.Second)
	require.NoError(t, m.Set(ctx, "b", []byte("2")))

	// a 被讀取過，b 應被淘汰
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", []byte("3")))
	require.Equal(t, 2, m.Len())

	_, err = m.Get(ctx, "b")
	require.Error(t, err)
	_, err = m.Get(ctx, "c")
	require.NoError(t, err)
}

func TestManagerOverwriteDoesNotEvict(t *testing.T) {
	m, _ := newTestManager(t, 1)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1")))
	require.NoError(t, m.Set(ctx, "a", []byte("2")))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "2", string(got))
}

func TestNilManagerIsDisabled(t *testing.T) {
	m := NewManager("off", config.CacheConfig{Enabled: false})
	require.Nil(t, m)

	ctx := context.Background()
	_, err := m.Get(ctx, "a")
	require.True(t, errors.Is(err, common.ErrCacheDisabled))
	require.True(t, errors.Is(m.Set(ctx, "a", nil), common.ErrCacheDisabled))
	require.Zero(t, m.Len())
	require.NoError(t, m.Close())
	require.Equal(t, false, m.GetStats()["enabled"])
}
