package browser

import (
	"errors"
	"testing"

	"food-handbook/internal/core/catalog"
	"food-handbook/internal/pkg/common"

	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.New([]catalog.FoodItem{
		{Name: "菠菜", Category: "蔬菜", Season: "全年", Origin: "河北", Recipe: "清炒"},
		{Name: "西瓜", Category: "水果", Season: "6–8月", Origin: "新疆", Recipe: "鲜食"},
		{Name: "羊肉", Category: "肉类", Season: "冬", Origin: "内蒙古", Recipe: "涮"},
		{Name: "八角", Category: "调味品", Season: "", Origin: "广西", Recipe: "卤"},
	})
	require.NoError(t, err)
	return cat
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return NewController(newTestCatalog(t), NewRenderer(), NewSnapshot())
}

func cardNames(p Page) []string {
	out := make([]string, len(p.Cards))
	for i, c := range p.Cards {
		out[i] = c.Name
	}
	return out
}

func TestControllerInitialRender(t *testing.T) {
	t.Parallel()

	c := newTestController(t)
	page := c.Render()

	require.Equal(t, "全部食材", page.Title)
	require.Equal(t, "共 4 种", page.CountText)
	require.False(t, page.Empty)
	require.Equal(t, []string{"菠菜", "西瓜", "羊肉", "八角"}, cardNames(page))
	require.Equal(t, "上市：6–8月", page.Cards[1].SeasonLine)
	require.Equal(t, "", page.MonthIndicator)
	require.False(t, page.Modal.Visible)

	require.Len(t, page.Categories, 8)
	require.True(t, page.Categories[0].Active)
	require.Len(t, page.MonthButtons, 13)
	require.True(t, page.MonthButtons[0].Pressed)
	require.True(t, page.SortButtons[0].Pressed)
}

func TestControllerMonthSelection(t *testing.T) {
	t.Parallel()

	c := newTestController(t)
	require.NoError(t, c.Dispatch(Event{Type: EventMonth, Value: "7"}))

	page := c.Render()
	require.Equal(t, []string{"菠菜", "西瓜"}, cardNames(page))
	require.Equal(t, "7月已选", page.MonthIndicator)
	for _, b := range page.MonthButtons {
		require.Equal(t, b.Value == "7", b.Pressed, b.Label)
	}

	require.NoError(t, c.Dispatch(Event{Type: EventMonth, Value: "1"}))
	require.Equal(t, []string{"菠菜", "羊肉"}, cardNames(c.Render()))

	require.NoError(t, c.Dispatch(Event{Type: EventMonth, Value: "all"}))
	page = c.Render()
	require.Equal(t, "", page.MonthIndicator)
	require.Equal(t, 4, page.Count)
}

func TestControllerCategorySelection(t *testing.T) {
	t.Parallel()

	c := newTestController(t)
	require.NoError(t, c.Dispatch(Event{Type: EventCategory, Value: "水果"}))

	page := c.Render()
	require.Equal(t, "水果", page.Title)
	require.Equal(t, []string{"西瓜"}, cardNames(page))
	for _, b := range page.Categories {
		require.Equal(t, b.Label == "水果", b.Active, b.Label)
	}

	require.NoError(t, c.Dispatch(Event{Type: EventCategory, Value: "海鲜"}))
	page = c.Render()
	require.True(t, page.Empty)
	require.Equal(t, "共 0 种", page.CountText)

	err := c.Dispatch(Event{Type: EventCategory, Value: "零食"})
	require.True(t, common.IsValidationError(err))
	require.Equal(t, "海鲜", c.State().ActiveCategory)
}

func TestControllerSortSelection(t *testing.T) {
	t.Parallel()

	c := newTestController(t)
	require.NoError(t, c.Dispatch(Event{Type: EventSort, Value: "season"}))
	require.Equal(t, []string{"菠菜", "羊肉", "西瓜", "八角"}, cardNames(c.Render()))

	require.NoError(t, c.Dispatch(Event{Type: EventSort, Value: "category"}))
	page := c.Render()
	require.Equal(t, []string{"菠菜", "西瓜", "羊肉", "八角"}, cardNames(page))
	for _, b := range page.SortButtons {
		require.Equal(t, b.Value == "category", b.Pressed, b.Label)
	}

	require.Error(t, c.Dispatch(Event{Type: EventSort, Value: "price"}))
	require.Equal(t, catalog.SortCategory, c.State().ActiveSort)
}

func TestControllerSearch(t *testing.T) {
	t.Parallel()

	c := newTestController(t)
	require.NoError(t, c.Dispatch(Event{Type: EventSearch, Value: "瓜"}))
	require.Equal(t, []string{"西瓜"}, cardNames(c.Render()))

	require.NoError(t, c.Dispatch(Event{Type: EventSearch, Value: "西刮"}))
	page := c.Render()
	require.True(t, page.Empty)
	require.Equal(t, []string{"西瓜"}, page.Suggestions)

	require.NoError(t, c.Dispatch(Event{Type: EventSearch, Value: ""}))
	page = c.Render()
	require.Equal(t, 4, page.Count)
	require.Empty(t, page.Suggestions)
}

func TestControllerModalLifecycle(t *testing.T) {
	t.Parallel()

	c := newTestController(t)
	require.NoError(t, c.Dispatch(Event{Type: EventSelectItem, Value: "西瓜"}))

	m := c.Modal()
	require.True(t, m.Visible)
	require.True(t, m.ScrollLocked)
	require.Equal(t, "西瓜", m.Title)
	require.Equal(t, "水果", m.Badge)
	require.Equal(t, "🍎", m.Emoji)
	require.Equal(t, "6–8月", m.Season)
	require.Equal(t, "新疆", m.Origin)
	require.Equal(t, "鲜食", m.Recipe)

	// 再次開啟完整覆寫欄位
	require.NoError(t, c.Dispatch(Event{Type: EventSelectItem, Value: "八角"}))
	m = c.Modal()
	require.Equal(t, "八角", m.Title)
	require.Equal(t, "📦", m.Emoji)
	require.Equal(t, "", m.Season)
	require.Equal(t, "卤", m.Recipe)

	require.NoError(t, c.Dispatch(Event{Type: EventCloseModal}))
	m = c.Modal()
	require.False(t, m.Visible)
	require.False(t, m.ScrollLocked)

	err := c.Dispatch(Event{Type: EventSelectItem, Value: "榴莲"})
	require.True(t, errors.Is(err, common.ErrItemNotFound))
}

func TestControllerReset(t *testing.T) {
	t.Parallel()

	c := newTestController(t)
	require.NoError(t, c.Dispatch(Event{Type: EventSearch, Value: "西"}))
	require.NoError(t, c.Dispatch(Event{Type: EventCategory, Value: "水果"}))
	require.NoError(t, c.Dispatch(Event{Type: EventSort, Value: "season"}))
	require.NoError(t, c.Dispatch(Event{Type: EventMonth, Value: "7"}))
	require.NoError(t, c.Dispatch(Event{Type: EventSelectItem, Value: "西瓜"}))

	require.NoError(t, c.Dispatch(Event{Type: EventReset}))
	require.Equal(t, *NewViewState(), c.State())
	require.False(t, c.Modal().Visible)
	require.False(t, c.Modal().ScrollLocked)
	require.Equal(t, NewSnapshot(), c.Snapshot())
	require.Equal(t, "共 4 种", c.Render().CountText)
}

func TestControllerUnknownEvent(t *testing.T) {
	t.Parallel()

	c := newTestController(t)
	err := c.Dispatch(Event{Type: "swipe"})
	require.True(t, errors.Is(err, common.ErrInvalidEvent))
}

func TestControllerSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	cat := newTestCatalog(t)
	c := NewController(cat, NewRenderer(), NewSnapshot())
	require.NoError(t, c.Dispatch(Event{Type: EventCategory, Value: "肉类"}))
	require.NoError(t, c.Dispatch(Event{Type: EventMonth, Value: "12"}))
	require.NoError(t, c.Dispatch(Event{Type: EventSelectItem, Value: "羊肉"}))

	snap := c.Snapshot()
	require.Equal(t, "羊肉", snap.OpenItem)

	restored := NewController(cat, NewRenderer(), snap)
	require.Equal(t, c.State(), restored.State())
	require.True(t, restored.Modal().Visible)
	require.Equal(t, []string{"羊肉"}, cardNames(restored.Render()))

	require.NoError(t, restored.Dispatch(Event{Type: EventCloseModal}))
	require.Empty(t, restored.Snapshot().OpenItem)
}

func TestControllerNormalizesBadSnapshot(t *testing.T) {
	t.Parallel()

	snap := Snapshot{
		State: ViewState{
			ActiveCategory: "零食",
			ActiveSort:     "price",
			ActiveMonth:    42,
		},
		OpenItem: "榴莲",
	}
	c := NewController(newTestCatalog(t), NewRenderer(), snap)
	require.Equal(t, *NewViewState(), c.State())
	require.False(t, c.Modal().Visible)
}
