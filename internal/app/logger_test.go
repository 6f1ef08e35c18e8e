package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/charlesng35/heroes/pkg/logger"
)

func TestConfigureLogging(t *testing.T) {
	t.Cleanup(logger.Replace(zap.NewNop()))

	require.NoError(t, ConfigureLogging("debug", "json"))
	require.True(t, logger.Logger().Core().Enabled(zap.DebugLevel))

	require.NoError(t, ConfigureLogging("", "console"))
	require.False(t, logger.Logger().Core().Enabled(zap.DebugLevel))

	require.Error(t, ConfigureLogging("info", "syslog"))
}
