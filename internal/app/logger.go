package app

import (
	"strings"

	"github.com/charlesng35/heroes/pkg/logger"
)

// ConfigureLogging installs the process logger from the server section. An empty level
// means info and an empty format means JSON.
func ConfigureLogging(level, format string) error {
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	return logger.Init(level, format)
}
