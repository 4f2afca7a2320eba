package middleware

import (
	"net/http"
	"time"

	"food-handbook/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionIDKey = "session_id"

// Session 確保每個瀏覽器都有會話 cookie，並將 ID 放入 context
func Session(cookieName string, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || !common.IsUUID(id) {
			id = common.GenerateUUID()
			common.LogDebug("建立新會話",
				zap.String("session_id", id),
				zap.String("ip", c.ClientIP()),
			)
		}

		// 每次請求都延長 cookie 效期
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, int(ttl.Seconds()), "/", "", secure, true)
		c.Set(sessionIDKey, id)

		c.Next()
	}
}

// SessionID 取得目前請求的會話 ID
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
