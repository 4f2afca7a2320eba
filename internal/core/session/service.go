package session

import (
	"context"
	"errors"

	"food-handbook/internal/core/browser"
	"food-handbook/internal/core/catalog"
	"food-handbook/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 將會話存放與操作控制器接在一起
type Service struct {
	store    Store
	catalog  *catalog.Catalog
	renderer *browser.Renderer
}

// NewService 創建會話服務
func NewService(store Store, cat *catalog.Catalog, renderer *browser.Renderer) *Service {
	return &Service{
		store:    store,
		catalog:  cat,
		renderer: renderer,
	}
}

// Controller 還原會話的控制器；不存在時從預設狀態開始
func (s *Service) Controller(ctx context.Context, id string) (*browser.Controller, error) {
	snap, err := s.store.Load(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		common.LogDebug("新的瀏覽會話", zap.String("session_id", id))
		snap = browser.NewSnapshot()
	case err != nil:
		return nil, common.ErrSessionStore.Wrap(err)
	}
	return browser.NewController(s.catalog, s.renderer, snap), nil
}

// Page 渲染會話目前的畫面
func (s *Service) Page(ctx context.Context, id string) (browser.Page, error) {
	c, err := s.Controller(ctx, id)
	if err != nil {
		return browser.Page{}, err
	}
	return c.Render(), nil
}

// Apply 套用一次操作、保存並回傳新畫面。操作無效時狀態不變。
func (s *Service) Apply(ctx context.Context, id string, ev browser.Event) (browser.Page, error) {
	c, err := s.Controller(ctx, id)
	if err != nil {
		return browser.Page{}, err
	}

	if err := c.Dispatch(ev); err != nil {
		return browser.Page{}, err
	}

	if err := s.store.Save(ctx, id, c.Snapshot()); err != nil {
		return browser.Page{}, common.ErrSessionStore.Wrap(err)
	}

	return c.Render(), nil
}

// Reset 將會話恢復為初始狀態，對應頁面重新載入
func (s *Service) Reset(ctx context.Context, id string) (browser.Page, error) {
	return s.Apply(ctx, id, browser.Event{Type: browser.EventReset})
}

// Ping 檢查存放是否可用；記憶體存放永遠可用
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close 關閉底層存放
func (s *Service) Close() error {
	return s.store.Close()
}
