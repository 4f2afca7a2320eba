package offline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"food-handbook/internal/core/cache"
	"food-handbook/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"style.css":      {Data: []byte("body{margin:0}")},
		"manifest.json":  {Data: []byte(`{"name":"test"}`)},
		"icons/icon.svg": {Data: []byte("<svg></svg>")},
		"extra.txt":      {Data: []byte("not precached")},
	}
}

func newTestAssetCache(t *testing.T, assets []string, enabled bool) *AssetCache {
	t.Helper()

	manager := cache.NewManager("assets", config.CacheConfig{
		Enabled:         enabled,
		MaxSize:         16,
		TTL:             time.Hour,
		CleanupInterval: time.Hour,
	})
	t.Cleanup(func() { _ = manager.Close() })

	return NewAssetCache(config.OfflineConfig{
		CacheName: "test-cache-v1",
		Assets:    assets,
	}, testFS(), manager)
}

func serve(a *AssetCache, target string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/static/*filepath", a.Handler())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestAssetCacheServesPrecachedAssets(t *testing.T) {
	t.Parallel()

	a := newTestAssetCache(t, []string{"style.css", "/manifest.json", "icons/icon.svg"}, true)
	require.NoError(t, a.Precache(context.Background()))

	rec := serve(a, "/static/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	require.Equal(t, "body{margin:0}", rec.Body.String())
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")

	rec = serve(a, "/static/manifest.json")
	require.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestAssetCacheFallsThroughOnMiss(t *testing.T) {
	t.Parallel()

	a := newTestAssetCache(t, []string{"style.css"}, true)
	require.NoError(t, a.Precache(context.Background()))

	rec := serve(a, "/static/extra.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	require.Equal(t, "not precached", rec.Body.String())

	// 未命中不會回寫
	rec = serve(a, "/static/extra.txt")
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = serve(a, "/static/missing.js")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssetCachePrecacheFailsOnMissingAsset(t *testing.T) {
	t.Parallel()

	a := newTestAssetCache(t, []string{"style.css", "app.js"}, true)
	require.Error(t, a.Precache(context.Background()))
}

func TestManagerConfigPinsAssets(t *testing.T) {
	t.Parallel()

	offlineCfg := config.OfflineConfig{
		CacheName: "test-cache-v1",
		Assets:    []string{"style.css", "manifest.json", "icons/icon.svg"},
	}
	cfg := ManagerConfig(offlineCfg, true)
	require.True(t, cfg.Enabled)
	require.Zero(t, cfg.TTL)
	require.Equal(t, 3, cfg.MaxSize)

	manager := cache.NewManager("assets", cfg)
	t.Cleanup(func() { _ = manager.Close() })
	a := NewAssetCache(offlineCfg, testFS(), manager)
	require.NoError(t, a.Precache(context.Background()))
	require.Equal(t, 3, manager.Len())

	for _, target := range []string{"/static/style.css", "/static/manifest.json", "/static/icons/icon.svg"} {
		require.Equal(t, "HIT", serve(a, target).Header().Get("X-Cache"), target)
	}

	require.False(t, ManagerConfig(offlineCfg, false).Enabled)
}

func TestAssetCacheDisabled(t *testing.T) {
	t.Parallel()

	a := newTestAssetCache(t, []string{"style.css"}, false)
	require.NoError(t, a.Precache(context.Background()))

	rec := serve(a, "/static/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	require.Equal(t, "body{margin:0}", rec.Body.String())
}
