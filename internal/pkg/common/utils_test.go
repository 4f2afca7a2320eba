package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAbortWithErrorHidesCause(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		AbortWithError(c, ErrSessionStore.Wrap(errors.New("redis://:hunter2@cache:6379 refused")))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotContains(t, rec.Body.String(), "hunter2")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "SESSION_STORE_ERROR", resp.Code)
	require.Equal(t, "會話存取失敗", resp.Message)
}

func TestIsUUID(t *testing.T) {
	t.Parallel()

	require.True(t, IsUUID(GenerateUUID()))
	require.False(t, IsUUID("../../etc"))
	require.False(t, IsUUID(""))
}
