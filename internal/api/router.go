package api

import (
	"fmt"
	"html/template"
	"time"

	browserHandler "food-handbook/internal/api/handlers/browser"
	catalogHandler "food-handbook/internal/api/handlers/catalog"
	"food-handbook/internal/api/handlers/health"
	"food-handbook/internal/api/middleware"
	"food-handbook/internal/core/catalog"
	"food-handbook/internal/core/offline"
	"food-handbook/internal/core/session"
	"food-handbook/internal/infrastructure/config"
	"food-handbook/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由所需的服務
type Dependencies struct {
	Catalog   *catalog.Catalog
	Sessions  *session.Service
	Assets    *offline.AssetCache
	Templates *template.Template
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if deps.Catalog == nil || deps.Sessions == nil || deps.Templates == nil {
		return nil, fmt.Errorf("router dependencies are incomplete")
	}

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()
	router.SetHTMLTemplate(deps.Templates)

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Cache"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 設置配置
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	// 健康檢查路由
	healthH := health.NewHandler(cfg, deps.Catalog, deps.Assets, deps.Sessions)
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)

	// 靜態資源
	if deps.Assets != nil {
		router.GET("/static/*filepath", deps.Assets.Handler())
		router.HEAD("/static/*filepath", deps.Assets.Handler())
	}

	browserH := browserHandler.NewHandler(deps.Sessions)
	catalogH := catalogHandler.NewHandler(deps.Catalog)

	// 頁面路由，需要會話
	sessionMW := middleware.Session(cfg.Session.CookieName, cfg.Session.TTL, cfg.App.Env == "production")
	pages := router.Group("/", sessionMW)
	{
		pages.GET("", browserH.HandleIndex)
		pages.POST("events", browserH.HandlePostEvent)
	}

	// API 路由組
	api := router.Group("/api/v1")
	{
		catalogGroup := api.Group("/catalog")
		{
			catalogGroup.GET("/categories", catalogH.HandleCategories)
			catalogGroup.GET("/items", catalogH.HandleListItems)
			catalogGroup.GET("/items/:name", catalogH.HandleGetItem)
			catalogGroup.GET("/season", catalogH.HandleParseSeason)
		}

		browserGroup := api.Group("/browser", sessionMW)
		{
			browserGroup.GET("/state", browserH.HandleState)
			browserGroup.POST("/events", browserH.HandleEvent)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Int("catalog_items", deps.Catalog.Len()),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("offline_assets", deps.Assets != nil),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
