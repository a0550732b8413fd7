package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/store-pilot/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		level     logrus.Level
		formatter logrus.Formatter
	}{
		{"json debug", config.LoggingConfig{Level: "debug", Format: "json"}, logrus.DebugLevel, &logrus.JSONFormatter{}},
		{"text warn", config.LoggingConfig{Level: "warn", Format: "text"}, logrus.WarnLevel, &logrus.TextFormatter{}},
		{"bad level falls back to info", config.LoggingConfig{Level: "loud", Format: "json"}, logrus.InfoLevel, &logrus.JSONFormatter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, closer, err := New(tt.cfg)
			require.NoError(t, err)
			defer closer.Close()

			assert.Equal(t, tt.level, l.GetLevel())
			assert.IsType(t, tt.formatter, l.Formatter)
		})
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, closer, err := New(config.LoggingConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)
	l.Info("hello file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}
