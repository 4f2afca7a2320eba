package catalog

// Category 食材分類
type Category int

const (
	// CategoryUnknown 不在固定清單中的分類
	CategoryUnknown Category = iota
	CategoryVegetable
	CategoryFruit
	CategoryMeat
	CategorySeafood
	CategorySoy
	CategoryMushroom
	CategoryOffal
)

// AllLabel 分類列「全部」
const AllLabel = "全部"

// categories 依排序優先順序排列
var categories = []Category{
	CategoryVegetable,
	CategoryFruit,
	CategoryMeat,
	CategorySeafood,
	CategorySoy,
	CategoryMushroom,
	CategoryOffal,
}

const (
	defaultBadge = "bg-gray-50 text-gray-700 border-gray-200"
	defaultEmoji = "📦"
)

// ParseCategory 由標籤取得分類，無法辨識時回傳 CategoryUnknown
func ParseCategory(label string) Category {
	for _, c := range categories {
		if c.Label() == label {
			return c
		}
	}
	return CategoryUnknown
}

// Categories 固定分類，依排序優先順序
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// FilterLabels 分類列按鈕標籤：全部 + 固定分類
func FilterLabels() []string {
	labels := make([]string, 0, len(categories)+1)
	labels = append(labels, AllLabel)
	for _, c := range categories {
		labels = append(labels, c.Label())
	}
	return labels
}

// IsFilterLabel 檢查是否為分類列上的標籤
func IsFilterLabel(label string) bool {
	return label == AllLabel || ParseCategory(label) != CategoryUnknown
}

// Label 分類顯示名稱；CategoryUnknown 為空字串
func (c Category) Label() string {
	switch c {
	case CategoryVegetable:
		return "蔬菜"
	case CategoryFruit:
		return "水果"
	case CategoryMeat:
		return "肉类"
	case CategorySeafood:
		return "海鲜"
	case CategorySoy:
		return "豆制品"
	case CategoryMushroom:
		return "菌菇"
	case CategoryOffal:
		return "内脏"
	default:
		return ""
	}
}

// Badge 徽章樣式；未知分類使用灰色
func (c Category) Badge() string {
	switch c {
	case CategoryVegetable:
		return "bg-green-50 text-green-700 border-green-200"
	case CategoryFruit:
		return "bg-red-50 text-red-700 border-red-200"
	case CategoryMeat:
		return "bg-orange-50 text-orange-700 border-orange-200"
	case CategorySeafood:
		return "bg-blue-50 text-blue-700 border-blue-200"
	case CategorySoy:
		return "bg-yellow-50 text-yellow-700 border-yellow-200"
	case CategoryMushroom:
		return "bg-emerald-50 text-emerald-700 border-emerald-200"
	case CategoryOffal:
		return "bg-amber-50 text-amber-700 border-amber-200"
	default:
		return defaultBadge
	}
}

// Emoji 詳情視窗圖示；未知分類為 📦
func (c Category) Emoji() string {
	switch c {
	case CategoryVegetable:
		return "🥬"
	case CategoryFruit:
		return "🍎"
	case CategoryMeat:
		return "🥩"
	case CategorySeafood:
		return "🦐"
	case CategorySoy:
		return "🫘"
	case CategoryMushroom:
		return "🍄"
	case CategoryOffal:
		return "💔"
	default:
		return defaultEmoji
	}
}

// Priority 分類排序權重。未知分類排在所有固定分類之後。
func (c Category) Priority() int {
	for i, known := range categories {
		if known == c {
			return i
		}
	}
	return len(categories)
}
