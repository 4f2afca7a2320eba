package offline

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"food-handbook/internal/core/cache"
	"food-handbook/internal/infrastructure/config"
	"food-handbook/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const cacheControl = "public, max-age=604800, stale-while-revalidate=86400"

// AssetCache 靜態資源快取：啟動時預先載入固定清單，請求時優先使用快取
type AssetCache struct {
	name   string
	assets []string
	fsys   fs.FS
	cache  *cache.Manager
	files  http.Handler
}

// NewAssetCache 創建資源快取；manager 為 nil 時所有請求直接讀檔
func NewAssetCache(cfg config.OfflineConfig, fsys fs.FS, manager *cache.Manager) *AssetCache {
	return &AssetCache{
		name:   cfg.CacheName,
		assets: cfg.Assets,
		fsys:   fsys,
		cache:  manager,
		files:  http.FileServer(http.FS(fsys)),
	}
}

// ManagerConfig 資源快取用的設定：容量等於清單長度且永不過期，只靠快取名稱區分版本
func ManagerConfig(cfg config.OfflineConfig, enabled bool) config.CacheConfig {
	return config.CacheConfig{
		Enabled: enabled,
		MaxSize: max(len(cfg.Assets), 1),
	}
}

// Precache 載入清單中的所有資源，任一失敗即回傳錯誤
func (a *AssetCache) Precache(ctx context.Context) error {
	if a.cache == nil {
		common.LogInfo("離線快取已停用，略過預載", zap.String("cache_name", a.name))
		return nil
	}

	for _, asset := range a.assets {
		name := cleanAssetPath(asset)
		data, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return fmt.Errorf("failed to precache %s: %w", asset, err)
		}
		if err := a.cache.Set(ctx, a.key(name), data); err != nil {
			return fmt.Errorf("failed to store %s: %w", asset, err)
		}
	}

	common.LogInfo("離線資源已預載",
		zap.String("cache_name", a.name),
		zap.Int("assets", len(a.assets)),
	)
	return nil
}

// Handler 以 /*filepath 參數提供資源
func (a *AssetCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := cleanAssetPath(c.Param("filepath"))
		c.Header("Cache-Control", cacheControl)

		if data, err := a.cache.Get(c.Request.Context(), a.key(name)); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, contentType(name, data), data)
			return
		}

		// 未命中時直接讀檔，不回寫快取
		c.Header("X-Cache", "MISS")
		req := c.Request.Clone(c.Request.Context())
		req.URL.Path = "/" + name
		a.files.ServeHTTP(c.Writer, req)
	}
}

// Status 快取狀態
func (a *AssetCache) Status() map[string]interface{} {
	return map[string]interface{}{
		"cache_name": a.name,
		"assets":     a.assets,
		"stats":      a.cache.GetStats(),
	}
}

// key 生成快取鍵，快取名稱即版本
func (a *AssetCache) key(name string) string {
	return a.name + ":" + name
}

func cleanAssetPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
