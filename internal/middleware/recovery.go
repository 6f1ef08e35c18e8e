package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/charlesng35/heroes/pkg/errors"
	"github.com/charlesng35/heroes/pkg/logger"
	"github.com/charlesng35/heroes/pkg/response"
)

// Recovery turns a panicking handler into a generic 500 envelope. The panic value only
// reaches the log.
func Recovery() gin.HandlerFunc {
	log := logger.WithModule("http")
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			log.Error("handler panicked",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", RequestIDFromContext(c)),
				zap.Any("panic", recovered),
				zap.Stack("stack"),
			)
			if !c.Writer.Written() {
				response.Error(c, appErrors.ErrInternalServer)
			}
			c.Abort()
		}()
		c.Next()
	}
}

// NotFoundHandler answers unknown routes with the JSON error envelope.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, appErrors.NewNotFound("route %s not found", c.Request.URL.Path))
}
