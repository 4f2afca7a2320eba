package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"food-handbook/internal/core/browser"
	"food-handbook/internal/core/cache"
	"food-handbook/internal/infrastructure/config"
	"food-handbook/internal/pkg/common"
)

// ErrNotFound 會話不存在或已過期
var ErrNotFound = errors.New("session not found")

// Store 保存每個瀏覽會話的狀態快照
type Store interface {
	Load(ctx context.Context, id string) (browser.Snapshot, error)
	Save(ctx context.Context, id string, snap browser.Snapshot) error
	Close() error
}

// NewStore 依設定建立會話存放
func NewStore(cfg config.SessionConfig) (Store, error) {
	switch cfg.Store {
	case config.SessionStoreMemory, "":
		return NewMemoryStore(cfg), nil
	case config.SessionStoreRedis:
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// MemoryStore 以記憶體緩存保存會話，重啟後遺失
type MemoryStore struct {
	cache *cache.Manager
}

// NewMemoryStore 創建記憶體會話存放
func NewMemoryStore(cfg config.SessionConfig) *MemoryStore {
	return &MemoryStore{
		cache: cache.NewManager("session", config.CacheConfig{
			Enabled:         true,
			MaxSize:         cfg.MaxSessions,
			TTL:             cfg.TTL,
			CleanupInterval: cleanupInterval(cfg),
		}),
	}
}

// Load 讀取會話快照
func (s *MemoryStore) Load(ctx context.Context, id string) (browser.Snapshot, error) {
	data, err := s.cache.Get(ctx, id)
	if err != nil {
		return browser.Snapshot{}, ErrNotFound
	}
	return decodeSnapshot(data)
}

// Save 寫入會話快照
func (s *MemoryStore) Save(ctx context.Context, id string, snap browser.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.cache.Set(ctx, id, data)
}

// Stats 緩存統計
func (s *MemoryStore) Stats() map[string]interface{} {
	return s.cache.GetStats()
}

// Close 關閉存放
func (s *MemoryStore) Close() error {
	return s.cache.Close()
}

func decodeSnapshot(data []byte) (browser.Snapshot, error) {
	var snap browser.Snapshot
	if err := common.ParseJSONBytes(data, &snap); err != nil {
		return browser.Snapshot{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return snap, nil
}

func cleanupInterval(cfg config.SessionConfig) time.Duration {
	interval := cfg.TTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
