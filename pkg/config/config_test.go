package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dd0wney/netmatrix/pkg/logging"
	"github.com/dd0wney/netmatrix/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netmatrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, logging.InfoLevel, cfg.Level())
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 1024, cfg.Audit.BufferSize)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Metrics.Textfile)
	assert.True(t, cfg.Input.Mmap)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
audit:
  enabled: false
  buffer_size: 16
metrics:
  textfile: /tmp/netmatrix.prom
input:
  mmap: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, logging.DebugLevel, cfg.Level())
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, 16, cfg.Audit.BufferSize)
	assert.True(t, cfg.Metrics.Enabled, "unset keys keep their defaults")
	assert.Equal(t, "/tmp/netmatrix.prom", cfg.Metrics.Textfile)
	assert.False(t, cfg.Input.Mmap)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown level", "log_level: trace\n"},
		{"zero buffer", "audit:\n  buffer_size: 0\n"},
		{"negative buffer", "audit:\n  buffer_size: -4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, storage.ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: [unterminated\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
