package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/charlesng35/heroes/pkg/logger"
	"github.com/charlesng35/heroes/pkg/response"
)

func TestRecoveryHidesPanicFromClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zap.ErrorLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.DELETE("/heroes/:id", func(c *gin.Context) {
		panic("secret connection string")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/heroes/3", nil)
	req.Header.Set(RequestIDHeader, "trace-9")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "secret")

	var payload response.Response
	require.NoError(t, decodeJSON(w, &payload))
	require.Equal(t, "INTERNAL_SERVER_ERROR", payload.Error.Code)

	entries := recorded.FilterMessage("handler panicked").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "secret connection string", fields["panic"])
	require.Equal(t, "trace-9", fields["request_id"])
	require.Equal(t, http.MethodDelete, fields["method"])
}

func TestRecoveryKeepsCommittedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Cleanup(logger.Replace(zap.NewNop()))

	r := gin.New()
	r.Use(Recovery())
	r.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusAccepted, "started")
		panic("late failure")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/partial", nil))

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, "started", w.Body.String())
}

func TestNotFoundHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.NoRoute(NotFoundHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/villains", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var payload response.Response
	require.NoError(t, decodeJSON(w, &payload))
	require.Equal(t, "NOT_FOUND", payload.Error.Code)
	require.Equal(t, "route /villains not found", payload.Message)
}
