package observability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/dnd-companion/internal/config"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		enabled zapcore.Level
		wantErr bool
	}{
		{name: "json info", cfg: config.LoggingConfig{Level: "info", Format: "json"}, enabled: zapcore.InfoLevel},
		{name: "console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}, enabled: zapcore.DebugLevel},
		{name: "warn", cfg: config.LoggingConfig{Level: "warn", Format: "json"}, enabled: zapcore.WarnLevel},
		{name: "bad level", cfg: config.LoggingConfig{Level: "chatty", Format: "json"}, wantErr: true},
		{name: "bad format", cfg: config.LoggingConfig{Level: "info", Format: "yaml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := observability.NewLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.enabled > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.enabled-1))
			}
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, observability.OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, observability.OrNop(logger))
}
