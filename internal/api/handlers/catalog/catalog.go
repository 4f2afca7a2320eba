package catalog

import (
	"net/http"

	"food-handbook/internal/core/browser"
	"food-handbook/internal/core/catalog"
	"food-handbook/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItemsQuery 無狀態查詢參數
type ItemsQuery struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Month    string `form:"month"`
	Sort     string `form:"sort"`
}

// ItemsResponse 查詢結果
type ItemsResponse struct {
	Query      catalog.Query            `json:"query"`
	Count      int                      `json:"count"`
	Empty      bool                     `json:"empty"`
	Items      []ItemResponse           `json:"items"`
	Categories []browser.CategoryButton `json:"categories"`
}

// ItemResponse 單筆食材與解析後的月份
type ItemResponse struct {
	catalog.FoodItem
	Months     catalog.MonthSet `json:"months"`
	BadgeClass string           `json:"badge_class"`
	Emoji      string           `json:"emoji"`
}

// SeasonResponse 季節解析結果
type SeasonResponse struct {
	Text   string           `json:"text"`
	Months catalog.MonthSet `json:"months"`
}

// Handler 食材查詢 API
type Handler struct {
	catalog *catalog.Catalog
}

// NewHandler 創建食材查詢處理器
func NewHandler(cat *catalog.Catalog) *Handler {
	return &Handler{catalog: cat}
}

// HandleListItems 處理 GET /catalog/items
func (h *Handler) HandleListItems(c *gin.Context) {
	var params ItemsQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		common.AbortWithError(c, common.NewValidationError(err.Error()))
		return
	}

	q, err := params.toQuery()
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	view := h.catalog.View(q)
	resp := ItemsResponse{
		Query:      q,
		Count:      view.Count,
		Empty:      view.Empty,
		Items:      make([]ItemResponse, 0, view.Count),
		Categories: browser.CategoryBar(q.Category),
	}
	for _, item := range view.Items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}

	common.LogDebug("食材查詢完成",
		zap.String("request_id", requestid.Get(c)),
		zap.String("search", q.Search),
		zap.String("category", q.Category),
		zap.String("month", q.Month.String()),
		zap.String("sort", string(q.Sort)),
		zap.Int("count", view.Count),
	)

	c.JSON(http.StatusOK, resp)
}

// HandleGetItem 處理 GET /catalog/items/:name，回傳詳情視窗內容
func (h *Handler) HandleGetItem(c *gin.Context) {
	name := c.Param("name")
	item, ok := h.catalog.Lookup(name)
	if !ok {
		common.AbortWithError(c, common.ErrItemNotFound)
		return
	}

	c.JSON(http.StatusOK, browser.Detail(item))
}

// HandleCategories 處理 GET /catalog/categories
func (h *Handler) HandleCategories(c *gin.Context) {
	active := c.DefaultQuery("category", catalog.AllLabel)
	if !catalog.IsFilterLabel(active) {
		common.AbortWithError(c, common.NewValidationErrorf("unknown category %q", active))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": browser.CategoryBar(active),
	})
}

// HandleParseSeason 處理 GET /catalog/season?text=
func (h *Handler) HandleParseSeason(c *gin.Context) {
	text := c.Query("text")
	c.JSON(http.StatusOK, SeasonResponse{
		Text:   text,
		Months: catalog.ParseSeason(text),
	})
}

// toQuery 驗證並轉換查詢參數
func (p ItemsQuery) toQuery() (catalog.Query, error) {
	q := catalog.DefaultQuery()
	q.Search = p.Search

	if p.Category != "" {
		if !catalog.IsFilterLabel(p.Category) {
			return q, common.NewValidationErrorf("unknown category %q", p.Category)
		}
		q.Category = p.Category
	}

	month, err := catalog.ParseMonthFilter(p.Month)
	if err != nil {
		return q, err
	}
	q.Month = month

	sort, err := catalog.ParseSortMode(p.Sort)
	if err != nil {
		return q, err
	}
	q.Sort = sort

	return q, nil
}

func toItemResponse(item catalog.FoodItem) ItemResponse {
	kind := item.Kind()
	return ItemResponse{
		FoodItem:   item,
		Months:     item.Months(),
		BadgeClass: kind.Badge(),
		Emoji:      kind.Emoji(),
	}
}
