package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"food-handbook/internal/core/browser"
	"food-handbook/internal/infrastructure/config"
	"food-handbook/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 保存會話，多個實例可共用
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 創建 Redis 會話存放並測試連線
func NewRedisStore(cfg config.SessionConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 3 * time.Second,
	})

	// 測試連接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 會話存放已連線",
		zap.String("addr", cfg.Redis.Addr),
		zap.Int("db", cfg.Redis.DB),
		zap.Duration("ttl", cfg.TTL),
	)

	return newRedisStore(client, cfg), nil
}

func newRedisStore(client *redis.Client, cfg config.SessionConfig) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: cfg.Redis.KeyPrefix,
		ttl:    cfg.TTL,
	}
}

// Load 讀取會話快照
func (s *RedisStore) Load(ctx context.Context, id string) (browser.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return browser.Snapshot{}, ErrNotFound
		}
		return browser.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}
	return decodeSnapshot(data)
}

// Save 寫入會話快照並重設存活時間
func (s *RedisStore) Save(ctx context.Context, id string, snap browser.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Ping 檢查連線
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// key 生成會話鍵
func (s *RedisStore) key(id string) string {
	return s.prefix + id
}
