package browser

import (
	"fmt"

	"food-handbook/internal/core/catalog"
	"food-handbook/internal/pkg/common"

	"go.uber.org/zap"
)

// EventType 使用者操作類型
type EventType string

const (
	EventSearch     EventType = "search"
	EventCategory   EventType = "category"
	EventSort       EventType = "sort"
	EventMonth      EventType = "month"
	EventSelectItem EventType = "select_item"
	EventCloseModal EventType = "close_modal"
	EventReset      EventType = "reset"
)

// Event 一次使用者操作
type Event struct {
	Type  EventType `json:"type" form:"type" binding:"required"`
	Value string    `json:"value" form:"value"`
}

// Snapshot 可保存的會話狀態
type Snapshot struct {
	State    ViewState `json:"state"`
	OpenItem string    `json:"open_item,omitempty"`
}

// NewSnapshot 預設狀態的快照
func NewSnapshot() Snapshot {
	return Snapshot{State: *NewViewState()}
}

// Controller 處理使用者操作，是唯一會修改 ViewState 的地方
type Controller struct {
	catalog  *catalog.Catalog
	renderer *Renderer
	state    *ViewState
	modal    DetailModal
}

// NewController 由快照還原狀態；快照中不合法的值會回到預設
func NewController(cat *catalog.Catalog, renderer *Renderer, snap Snapshot) *Controller {
	state := snap.State
	state.normalize()

	c := &Controller{
		catalog:  cat,
		renderer: renderer,
		state:    &state,
	}
	if snap.OpenItem != "" {
		if item, ok := cat.Lookup(snap.OpenItem); ok {
			c.modal.Open(item)
		}
	}
	return c
}

// Dispatch 依事件類型處理操作
func (c *Controller) Dispatch(ev Event) error {
	common.LogDebug("處理操作事件",
		zap.String("type", string(ev.Type)),
		zap.String("value", ev.Value),
	)

	switch ev.Type {
	case EventSearch:
		c.SearchChanged(ev.Value)
		return nil
	case EventCategory:
		return c.SelectCategory(ev.Value)
	case EventSort:
		return c.SelectSort(ev.Value)
	case EventMonth:
		return c.SelectMonth(ev.Value)
	case EventSelectItem:
		return c.SelectItem(ev.Value)
	case EventCloseModal:
		c.CloseModal()
		return nil
	case EventReset:
		c.Reset()
		return nil
	default:
		return common.ErrInvalidEvent.Wrap(fmt.Errorf("unknown event type %q", ev.Type))
	}
}

// SearchChanged 更新搜尋字詞
func (c *Controller) SearchChanged(text string) {
	c.state.SearchTerm = text
}

// SelectCategory 切換分類
func (c *Controller) SelectCategory(label string) error {
	if !catalog.IsFilterLabel(label) {
		return common.NewValidationErrorf("unknown category %q", label)
	}
	c.state.ActiveCategory = label
	return nil
}

// SelectSort 切換排序方式
func (c *Controller) SelectSort(value string) error {
	mode, err := catalog.ParseSortMode(value)
	if err != nil {
		return err
	}
	c.state.ActiveSort = mode
	return nil
}

// SelectMonth 切換月份，"all" 取消篩選
func (c *Controller) SelectMonth(value string) error {
	month, err := catalog.ParseMonthFilter(value)
	if err != nil {
		return err
	}
	c.state.ActiveMonth = month
	return nil
}

// SelectItem 開啟食材詳情
func (c *Controller) SelectItem(name string) error {
	item, ok := c.catalog.Lookup(name)
	if !ok {
		return common.ErrItemNotFound.Wrap(fmt.Errorf("item %q not found", name))
	}
	c.modal.Open(item)
	return nil
}

// CloseModal 關閉詳情視窗
func (c *Controller) CloseModal() {
	c.modal.Close()
}

// Reset 回到初始狀態並關閉詳情視窗，等同重新載入頁面
func (c *Controller) Reset() {
	*c.state = *NewViewState()
	c.modal = DetailModal{}
}

// Render 以目前狀態渲染畫面
func (c *Controller) Render() Page {
	return c.renderer.Render(c.catalog, c.state, &c.modal)
}

// State 目前狀態的複本
func (c *Controller) State() ViewState {
	return *c.state
}

// Modal 目前詳情視窗的複本
func (c *Controller) Modal() DetailModal {
	return c.modal
}

// Snapshot 產生可保存的快照
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{State: *c.state}
	if c.modal.Visible {
		snap.OpenItem = c.modal.ItemName
	}
	return snap
}
