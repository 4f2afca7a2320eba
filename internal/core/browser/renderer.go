package browser

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"food-handbook/internal/core/catalog"

	"github.com/agnivade/levenshtein"
)

const (
	allItemsTitle  = "全部食材"
	allMonthsLabel = "全部"
	seasonPrefix   = "上市："
)

// Page 一次渲染的完整畫面
type Page struct {
	Title          string           `json:"title"`
	CountText      string           `json:"count_text"`
	Count          int              `json:"count"`
	Empty          bool             `json:"empty"`
	Cards          []Card           `json:"cards"`
	Categories     []CategoryButton `json:"categories"`
	SortButtons    []ToggleButton   `json:"sort_buttons"`
	MonthButtons   []ToggleButton   `json:"month_buttons"`
	MonthIndicator string           `json:"month_indicator"`
	Suggestions    []string         `json:"suggestions,omitempty"`
	State          ViewState        `json:"state"`
	Modal          DetailModal      `json:"modal"`
}

// Card 食材卡片
type Card struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	BadgeClass string `json:"badge_class"`
	SeasonLine string `json:"season_line"`
}

// CategoryButton 分類列按鈕
type CategoryButton struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// ToggleButton 排序與月份按鈕
type ToggleButton struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Pressed bool   `json:"pressed"`
}

// Renderer 將資料集與狀態投影成畫面
type Renderer struct {
	maxSuggestions int
	maxDistance    int
}

// NewRenderer 創建渲染器
func NewRenderer() *Renderer {
	return &Renderer{
		maxSuggestions: 3,
		maxDistance:    2,
	}
}

// Render 計算結果並產生畫面
func (r *Renderer) Render(cat *catalog.Catalog, state *ViewState, modal *DetailModal) Page {
	view := cat.View(state.Query())

	page := Page{
		Title:          allItemsTitle,
		CountText:      fmt.Sprintf("共 %d 种", view.Count),
		Count:          view.Count,
		Empty:          view.Empty,
		Cards:          make([]Card, 0, view.Count),
		Categories:     CategoryBar(state.ActiveCategory),
		SortButtons:    sortButtons(state.ActiveSort),
		MonthButtons:   monthButtons(state.ActiveMonth),
		MonthIndicator: MonthIndicator(state.ActiveMonth),
		State:          *state,
	}
	if state.ActiveCategory != catalog.AllLabel && state.ActiveCategory != "" {
		page.Title = state.ActiveCategory
	}
	if modal != nil {
		page.Modal = *modal
	}

	for _, item := range view.Items {
		page.Cards = append(page.Cards, Card{
			Name:       item.Name,
			Category:   item.Category,
			BadgeClass: item.Kind().Badge(),
			SeasonLine: seasonPrefix + item.Season,
		})
	}

	if view.Empty && state.SearchTerm != "" {
		page.Suggestions = r.suggest(cat, state.SearchTerm)
	}

	return page
}

// CategoryBar 分類列，標示目前選取的分類
func CategoryBar(active string) []CategoryButton {
	if active == "" {
		active = catalog.AllLabel
	}
	labels := catalog.FilterLabels()
	buttons := make([]CategoryButton, len(labels))
	for i, label := range labels {
		buttons[i] = CategoryButton{Label: label, Active: label == active}
	}
	return buttons
}

// MonthIndicator 「N月已選」提示；不限月份時為空
func MonthIndicator(month catalog.MonthFilter) string {
	if month.IsAny() {
		return ""
	}
	return fmt.Sprintf("%d月已选", int(month))
}

func sortButtons(active catalog.SortMode) []ToggleButton {
	modes := catalog.SortModes()
	buttons := make([]ToggleButton, len(modes))
	for i, mode := range modes {
		buttons[i] = ToggleButton{
			Label:   mode.Label(),
			Value:   string(mode),
			Pressed: mode == active,
		}
	}
	return buttons
}

func monthButtons(active catalog.MonthFilter) []ToggleButton {
	buttons := make([]ToggleButton, 0, 13)
	buttons = append(buttons, ToggleButton{
		Label:   allMonthsLabel,
		Value:   catalog.AnyMonth.String(),
		Pressed: active.IsAny(),
	})
	for m := 1; m <= 12; m++ {
		buttons = append(buttons, ToggleButton{
			Label:   strconv.Itoa(m) + "月",
			Value:   strconv.Itoa(m),
			Pressed: int(active) == m,
		})
	}
	return buttons
}

// suggest 找出與搜尋字詞相近的名稱
func (r *Renderer) suggest(cat *catalog.Catalog, term string) []string {
	type candidate struct {
		name  string
		dist  int
		index int
	}

	term = strings.ToLower(term)
	var candidates []candidate
	for i, name := range cat.Names() {
		dist := levenshtein.ComputeDistance(term, strings.ToLower(name))
		// 距離等於名稱長度代表完全不相干
		if dist > r.maxDistance || dist >= utf8.RuneCountInString(name) {
			continue
		}
		candidates = append(candidates, candidate{name: name, dist: dist, index: i})
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	out := make([]string, 0, r.maxSuggestions)
	for _, c := range candidates {
		if len(out) == r.maxSuggestions {
			break
		}
		out = append(out, c.name)
	}
	return out
}
