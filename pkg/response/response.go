package response

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/heroes/pkg/errors"
)

// Response is the envelope every API handler writes: a human readable message plus an
// optional payload or error detail.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo is the machine readable half of an error response.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data with a message.
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{Message: message, Data: data})
}

// Message writes an envelope without data. Gin drops the body for statuses that forbid
// one, so 204 responses stay empty.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{Message: message})
}

// Error renders err. Errors that are not AppErrors are reported as a generic 500 so their
// text never reaches the client.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr == nil {
		appErr = appErrors.ErrInternalServer
	}
	c.JSON(appErrors.HTTPStatus(appErr), Response{
		Message: appErr.Message,
		Error:   &ErrorInfo{Code: appErr.Code, Message: appErr.Message},
	})
}
