package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rezonia/gst-invoice/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{" error ", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lvl, err := logger.ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lvl)
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := logger.NewLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = logger.NewLogger("chatty")
	assert.Error(t, err)
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.New(zap.New(core)).With("invoice", "INV-1")

	log.Infow("rendered", "pages", 2)
	log.Debugw("hidden")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rendered", entries[0].Message)
	assert.Equal(t, "INV-1", entries[0].ContextMap()["invoice"])
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		log := logger.NewNop()
		log.Warnw("discarded")
		log.Sync()
	})
}
