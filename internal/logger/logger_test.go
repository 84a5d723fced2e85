package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	orig := Log
	t.Cleanup(func() { Log = orig })

	tests := []struct {
		level   string
		enabled zapcore.Level
		quiet   zapcore.Level
	}{
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			require.NoError(t, Init(tt.level))
			assert.True(t, Log.Core().Enabled(tt.enabled))
			assert.False(t, Log.Core().Enabled(tt.quiet))
		})
	}
}

func TestInitInvalidLevel(t *testing.T) {
	orig := Log
	t.Cleanup(func() { Log = orig })

	err := Init("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
	assert.Same(t, orig, Log, "logger unchanged on error")
}

func TestNopByDefault(t *testing.T) {
	assert.False(t, Log.Core().Enabled(zapcore.ErrorLevel))

	// The wrappers are safe to call before Init
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}
