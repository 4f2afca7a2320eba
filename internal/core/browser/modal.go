package browser

import (
	"food-handbook/internal/core/catalog"
)

// DetailModal 食材詳情視窗
type DetailModal struct {
	Visible      bool   `json:"visible"`
	ScrollLocked bool   `json:"scroll_locked"`
	ItemName     string `json:"item_name,omitempty"`
	Title        string `json:"title"`
	Emoji        string `json:"emoji"`
	Badge        string `json:"badge"`
	BadgeClass   string `json:"badge_class"`
	Season       string `json:"season"`
	Origin       string `json:"origin"`
	Recipe       string `json:"recipe"`
}

// Open 以食材覆寫所有欄位並顯示，同時鎖定背景捲動
func (m *DetailModal) Open(item catalog.FoodItem) {
	kind := item.Kind()
	*m = DetailModal{
		Visible:      true,
		ScrollLocked: true,
		ItemName:     item.Name,
		Title:        item.Name,
		Emoji:        kind.Emoji(),
		Badge:        item.Category,
		BadgeClass:   kind.Badge(),
		Season:       item.Season,
		Origin:       item.Origin,
		Recipe:       item.Recipe,
	}
}

// Close 隱藏並恢復背景捲動
func (m *DetailModal) Close() {
	m.Visible = false
	m.ScrollLocked = false
}

// Detail 不經過會話直接取得某食材的詳情
func Detail(item catalog.FoodItem) DetailModal {
	var m DetailModal
	m.Open(item)
	return m
}
