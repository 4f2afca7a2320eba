package browser

import (
	"food-handbook/internal/core/catalog"
)

// ViewState 目前的搜尋、篩選與排序選擇，每個瀏覽會話一份
type ViewState struct {
	SearchTerm     string              `json:"search_term"`
	ActiveCategory string              `json:"active_category"`
	ActiveSort     catalog.SortMode    `json:"active_sort"`
	ActiveMonth    catalog.MonthFilter `json:"active_month"`
}

// NewViewState 預設狀態：不搜尋、全部分類、預設排序、不限月份
func NewViewState() *ViewState {
	return &ViewState{
		ActiveCategory: catalog.AllLabel,
		ActiveSort:     catalog.SortDefault,
		ActiveMonth:    catalog.AnyMonth,
	}
}

// Query 轉為篩選條件
func (s *ViewState) Query() catalog.Query {
	return catalog.Query{
		Search:   s.SearchTerm,
		Category: s.ActiveCategory,
		Month:    s.ActiveMonth,
		Sort:     s.ActiveSort,
	}
}

// normalize 修正從外部還原的不合法欄位
func (s *ViewState) normalize() {
	if !catalog.IsFilterLabel(s.ActiveCategory) {
		s.ActiveCategory = catalog.AllLabel
	}
	if _, err := catalog.ParseSortMode(string(s.ActiveSort)); err != nil || s.ActiveSort == "" {
		s.ActiveSort = catalog.SortDefault
	}
	if s.ActiveMonth < 0 || s.ActiveMonth > 12 {
		s.ActiveMonth = catalog.AnyMonth
	}
}
