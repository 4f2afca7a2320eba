package browser

import (
	"net/http"

	"food-handbook/internal/api/middleware"
	"food-handbook/internal/core/browser"
	"food-handbook/internal/core/session"
	"food-handbook/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resumeParam 表單事件重導後帶上的標記；沒有標記的 GET / 視為重新載入
const resumeParam = "resume"

// resumeURL 表單事件處理後的重導位置
const resumeURL = "/?" + resumeParam + "=1"

// StateResponse 會話狀態與畫面
type StateResponse struct {
	SessionID string       `json:"session_id"`
	Page      browser.Page `json:"page"`
}

// Handler 瀏覽頁面與操作事件
type Handler struct {
	sessions *session.Service
}

// NewHandler 創建瀏覽處理器
func NewHandler(sessions *session.Service) *Handler {
	return &Handler{sessions: sessions}
}

// HandleIndex 處理 GET /。重新載入時狀態回到預設，事件重導後則沿用會話狀態
func (h *Handler) HandleIndex(c *gin.Context) {
	var (
		page browser.Page
		err  error
	)
	id := middleware.SessionID(c)
	if c.Query(resumeParam) == "" {
		page, err = h.sessions.Reset(c.Request.Context(), id)
	} else {
		page, err = h.sessions.Page(c.Request.Context(), id)
	}
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index", page)
}

// HandlePostEvent 處理 POST /events，表單送出後重導回頁面。
// 無效的操作不改變狀態，同樣重導；只有會話存放失敗才回錯誤。
func (h *Handler) HandlePostEvent(c *gin.Context) {
	var ev browser.Event
	if err := c.ShouldBind(&ev); err != nil {
		h.rejectForm(c, common.ErrInvalidEvent.Wrap(err))
		return
	}

	if _, err := h.apply(c, ev); err != nil {
		if status, _ := common.StatusOf(err); status >= http.StatusInternalServerError {
			common.AbortWithError(c, err)
			return
		}
		h.rejectForm(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, resumeURL)
}

// HandleState 處理 GET /browser/state
func (h *Handler) HandleState(c *gin.Context) {
	id := middleware.SessionID(c)
	page, err := h.sessions.Page(c.Request.Context(), id)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StateResponse{SessionID: id, Page: page})
}

// HandleEvent 處理 POST /browser/events (JSON)
func (h *Handler) HandleEvent(c *gin.Context) {
	var ev browser.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		common.AbortWithError(c, common.ErrInvalidEvent.Wrap(err))
		return
	}

	page, err := h.apply(c, ev)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StateResponse{SessionID: middleware.SessionID(c), Page: page})
}

// rejectForm 記錄無效的表單操作並重導回未變更的頁面
func (h *Handler) rejectForm(c *gin.Context, err error) {
	_, code := common.StatusOf(err)
	common.LogWarn("忽略無效的表單操作",
		zap.Error(err),
		zap.String("code", code),
		zap.String("session_id", middleware.SessionID(c)),
	)
	_ = c.Error(err)
	c.Redirect(http.StatusSeeOther, resumeURL)
}

func (h *Handler) apply(c *gin.Context, ev browser.Event) (browser.Page, error) {
	id := middleware.SessionID(c)
	page, err := h.sessions.Apply(c.Request.Context(), id, ev)
	if err != nil {
		return page, err
	}

	common.LogDebug("瀏覽事件",
		zap.String("session_id", id),
		zap.String("type", string(ev.Type)),
		zap.String("value", ev.Value),
		zap.Int("count", page.Count),
	)
	return page, nil
}
