package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"os"

	"food-handbook/internal/infrastructure/config"
	"food-handbook/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

//go:embed data/foods.json
var embeddedFoods []byte

// Loader 載入食材資料集
type Loader struct {
	config config.CatalogConfig
	client *resty.Client
}

// NewLoader 創建資料載入器
func NewLoader(cfg config.CatalogConfig) *Loader {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2)

	return &Loader{
		config: cfg,
		client: client,
	}
}

// Load 依設定的來源載入資料集
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	var (
		data []byte
		err  error
	)

	switch l.config.Source {
	case config.CatalogSourceEmbedded, "":
		data = embeddedFoods
	case config.CatalogSourceFile:
		data, err = os.ReadFile(l.config.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	case config.CatalogSourceRemote:
		data, err = l.fetch(ctx)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown catalog source %q", l.config.Source)
	}

	cat, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", l.sourceName(), err)
	}

	common.LogInfo("食材資料已載入",
		zap.String("source", l.sourceName()),
		zap.Int("items", cat.Len()),
	)
	return cat, nil
}

// fetch 從遠端取得 JSON
func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		Get(l.config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

func (l *Loader) sourceName() string {
	switch l.config.Source {
	case config.CatalogSourceFile:
		return l.config.Path
	case config.CatalogSourceRemote:
		return l.config.URL
	default:
		return config.CatalogSourceEmbedded
	}
}

// Decode 解析 JSON 陣列格式的資料集
func Decode(data []byte) (*Catalog, error) {
	var items []FoodItem
	if err := common.DecodeJSONStrict(bytes.NewReader(data), &items); err != nil {
		return nil, fmt.Errorf("invalid catalog json: %w", err)
	}

	for _, item := range items {
		if item.Kind() == CategoryUnknown {
			common.LogWarn("未知的食材分類",
				zap.String("name", item.Name),
				zap.String("category", item.Category),
			)
		}
	}

	return New(items)
}
