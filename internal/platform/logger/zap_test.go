package logger

import (
	"testing"

	"weather_prediction_ui/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("chatty"))
}

func TestNew_RespectsLevel(t *testing.T) {
	for _, mode := range []string{"debug", "release"} {
		l, err := New(&config.Config{GinMode: mode, LogLevel: "warn", LogFormat: "json"})
		require.NoError(t, err)

		assert.False(t, l.Core().Enabled(zapcore.InfoLevel), mode)
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel), mode)
	}
}
