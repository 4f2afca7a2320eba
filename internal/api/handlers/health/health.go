package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"food-handbook/internal/core/catalog"
	"food-handbook/internal/core/offline"
	"food-handbook/internal/infrastructure/config"
	"food-handbook/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
	Offline   map[string]interface{} `json:"offline,omitempty"`
}

// CatalogStatus 食材資料狀態
type CatalogStatus struct {
	Source string `json:"source"`
	Items  int    `json:"items"`
}

// Pinger 可檢查連線的依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler 健康檢查處理器
type Handler struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	assets   *offline.AssetCache
	sessions Pinger
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, cat *catalog.Catalog, assets *offline.AssetCache, sessions Pinger) *Handler {
	return &Handler{
		cfg:      cfg,
		catalog:  cat,
		assets:   assets,
		sessions: sessions,
	}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Catalog: &CatalogStatus{
			Source: h.cfg.Catalog.Source,
			Items:  h.catalog.Len(),
		},
	}
	if h.assets != nil {
		response.Offline = h.assets.Status()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：食材已載入且會話存放可連線
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.catalog.Len() == 0 {
		common.AbortWithError(c, common.ErrCatalogUnavailable)
		return
	}

	if h.sessions != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := h.sessions.Ping(ctx); err != nil {
			common.AbortWithError(c, common.ErrSessionStore.Wrap(err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
