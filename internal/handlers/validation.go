package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/heroes/pkg/errors"
	"github.com/charlesng35/heroes/pkg/response"
	appValidator "github.com/charlesng35/heroes/pkg/validator"
)

// bindAndValidate decodes the JSON body into dest and applies its validate tags. On failure
// the 400 response has already been written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.Struct(dest); err != nil {
		message := "invalid request payload"
		var failures appValidator.ValidationErrors
		if errors.As(err, &failures) && len(failures) > 0 {
			message = failures.Error()
		}
		response.Error(c, appErrors.NewBadRequest(message))
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(c.Param(key)), 10, 0)
	if err != nil {
		return 0, err
	}
	if parsed == 0 {
		return 0, errors.New("value must be positive")
	}
	return uint(parsed), nil
}
