package catalog

import (
	"fmt"
	"strings"
)

// Catalog 唯讀的食材資料集，保留原始順序
type Catalog struct {
	items  []FoodItem
	byName map[string]int
}

// New 建立資料集；名稱不可為空或重複
func New(items []FoodItem) (*Catalog, error) {
	c := &Catalog{
		items:  make([]FoodItem, 0, len(items)),
		byName: make(map[string]int, len(items)),
	}
	for i, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return nil, fmt.Errorf("item %d: name is required", i)
		}
		if _, dup := c.byName[item.Name]; dup {
			return nil, fmt.Errorf("item %d: duplicate name %q", i, item.Name)
		}
		c.byName[item.Name] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// Items 所有食材，呼叫者不得修改
func (c *Catalog) Items() []FoodItem {
	return c.items
}

// Len 食材數量
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup 以名稱查詢
func (c *Catalog) Lookup(name string) (FoodItem, bool) {
	i, ok := c.byName[name]
	if !ok {
		return FoodItem{}, false
	}
	return c.items[i], true
}

// Names 所有名稱，依原始順序
func (c *Catalog) Names() []string {
	names := make([]string, len(c.items))
	for i, item := range c.items {
		names[i] = item.Name
	}
	return names
}

// View 以條件計算結果
func (c *Catalog) View(q Query) View {
	return ComputeView(c.items, q)
}
