package common

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// IsUUID 檢查字串是否為合法 UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// AbortWithError 寫入錯誤響應並中止請求
func AbortWithError(c *gin.Context, err error) {
	status, code := StatusOf(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if status >= 500 {
		LogError("請求處理失敗", fields...)
	} else {
		LogWarn("請求無效", fields...)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    code,
		Message: MessageOf(err),
	})
}
