package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-handbook/internal/api"
	"food-handbook/internal/core/browser"
	"food-handbook/internal/core/cache"
	"food-handbook/internal/core/catalog"
	"food-handbook/internal/core/offline"
	"food-handbook/internal/core/session"
	"food-handbook/internal/infrastructure/config"
	"food-handbook/internal/pkg/common"
	"food-handbook/internal/web"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 載入食材資料
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Catalog.Timeout)
	cat, err := catalog.NewLoader(cfg.Catalog).Load(loadCtx)
	cancelLoad()
	if err != nil {
		common.LogFatal("Failed to load catalog", zap.Error(err))
	}

	// 離線資源快取
	staticFS, err := web.StaticFS()
	if err != nil {
		common.LogFatal("Failed to open static assets", zap.Error(err))
	}
	assetManager := cache.NewManager("offline", offline.ManagerConfig(cfg.Offline, cfg.Cache.Enabled))
	defer assetManager.Close()

	assets := offline.NewAssetCache(cfg.Offline, staticFS, assetManager)
	if err := assets.Precache(context.Background()); err != nil {
		common.LogFatal("Failed to precache offline assets", zap.Error(err))
	}

	// 會話存放
	store, err := session.NewStore(cfg.Session)
	if err != nil {
		common.LogFatal("Failed to initialize session store", zap.Error(err))
	}
	sessions := session.NewService(store, cat, browser.NewRenderer())
	defer sessions.Close()

	tmpl, err := web.Templates()
	if err != nil {
		common.LogFatal("Failed to parse templates", zap.Error(err))
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Dependencies{
		Catalog:   cat,
		Sessions:  sessions,
		Assets:    assets,
		Templates: tmpl,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
