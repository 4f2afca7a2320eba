package catalog

// FoodItem 一筆食材資料
type FoodItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Season   string `json:"season"`
	Origin   string `json:"origin"`
	Recipe   string `json:"recipe"`
}

// Kind 食材分類
func (f FoodItem) Kind() Category {
	return ParseCategory(f.Category)
}

// Months 上市月份
func (f FoodItem) Months() MonthSet {
	return ParseSeason(f.Season)
}
