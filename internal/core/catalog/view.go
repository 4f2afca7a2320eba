package catalog

import (
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"food-handbook/internal/pkg/common"
)

// SortMode 排序方式
type SortMode string

const (
	SortDefault  SortMode = "default"
	SortSeason   SortMode = "season"
	SortCategory SortMode = "category"
)

// SortModes 所有排序方式，依按鈕順序
func SortModes() []SortMode {
	return []SortMode{SortDefault, SortSeason, SortCategory}
}

// ParseSortMode 解析排序方式；空字串視為 default
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "", SortDefault:
		return SortDefault, nil
	case SortSeason, SortCategory:
		return SortMode(s), nil
	default:
		return "", common.NewValidationErrorf("unknown sort mode %q", s)
	}
}

// Label 按鈕文字
func (m SortMode) Label() string {
	switch m {
	case SortSeason:
		return "按季节"
	case SortCategory:
		return "按分类"
	default:
		return "默认"
	}
}

// MonthFilter 月份篩選；AnyMonth 表示不限
type MonthFilter int

// AnyMonth 不限月份（"all"）
const AnyMonth MonthFilter = 0

const anyMonthValue = "all"

// ParseMonthFilter 解析 "all" 或 1–12；空字串視為 all
func ParseMonthFilter(s string) (MonthFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == anyMonthValue {
		return AnyMonth, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return AnyMonth, common.NewValidationErrorf("invalid month %q", s)
	}
	return MonthFilter(n), nil
}

// IsAny 是否不限月份
func (m MonthFilter) IsAny() bool {
	return m == AnyMonth
}

func (m MonthFilter) String() string {
	if m.IsAny() {
		return anyMonthValue
	}
	return strconv.Itoa(int(m))
}

// MarshalJSON 輸出 "all" 或月份數字
func (m MonthFilter) MarshalJSON() ([]byte, error) {
	if m.IsAny() {
		return json.Marshal(anyMonthValue)
	}
	return json.Marshal(int(m))
}

// UnmarshalJSON 接受 "all"、數字或數字字串
func (m *MonthFilter) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		parsed, err := ParseMonthFilter(strconv.Itoa(n))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonthFilter(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Query 篩選與排序條件
type Query struct {
	Search   string      `json:"search"`
	Category string      `json:"category"`
	Month    MonthFilter `json:"month"`
	Sort     SortMode    `json:"sort"`
}

// DefaultQuery 不篩選、原始順序
func DefaultQuery() Query {
	return Query{
		Category: AllLabel,
		Month:    AnyMonth,
		Sort:     SortDefault,
	}
}

// View 篩選排序後的結果
type View struct {
	Items []FoodItem `json:"items"`
	Count int        `json:"count"`
	Empty bool       `json:"empty"`
}

type rankedItem struct {
	item  FoodItem
	index int
	key   int
}

// ComputeView 依條件篩選並排序，不修改 items
func ComputeView(items []FoodItem, q Query) View {
	term := strings.ToLower(q.Search)
	allCategories := q.Category == "" || q.Category == AllLabel

	ranked := make([]rankedItem, 0, len(items))
	for i, item := range items {
		if term != "" && !strings.Contains(strings.ToLower(item.Name), term) {
			continue
		}
		if !allCategories && item.Category != q.Category {
			continue
		}
		var months MonthSet
		if !q.Month.IsAny() || q.Sort == SortSeason {
			months = item.Months()
		}
		if !q.Month.IsAny() && !months.Has(int(q.Month)) {
			continue
		}
		ranked = append(ranked, rankedItem{item: item, index: i, key: sortKey(item, months, q.Sort)})
	}

	if q.Sort == SortSeason || q.Sort == SortCategory {
		// 同鍵值時以原始索引決定先後
		slices.SortStableFunc(ranked, func(a, b rankedItem) int {
			if c := cmp.Compare(a.key, b.key); c != 0 {
				return c
			}
			return cmp.Compare(a.index, b.index)
		})
	}

	out := make([]FoodItem, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}

	return View{
		Items: out,
		Count: len(out),
		Empty: len(out) == 0,
	}
}

func sortKey(item FoodItem, months MonthSet, mode SortMode) int {
	switch mode {
	case SortSeason:
		return months.Min()
	case SortCategory:
		return item.Kind().Priority()
	default:
		return 0
	}
}
