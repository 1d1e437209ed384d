package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(writeConfig(t, "project_id: retail-dev\n"))
	require.NoError(t, err)

	assert.Equal(t, "retail-dev", cfg.ProjectID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.IdleTimeoutMinutes)
	assert.Equal(t, 30*time.Minute, cfg.IdleTimeout())
	assert.Equal(t, 100, cfg.MaxOutstandingMessages)
	assert.Equal(t, 10*1024*1024, cfg.MaxOutstandingBytes)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.False(t, cfg.DisableORAEValidation)
}

func TestLoad_AllFields(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out", "nested")

	cfg, err := Load(writeConfig(t, `
project_id: retail-prod
topic_id: rims-records
subscription_id: orae-events-sub
input_save_path: `+in+`
output_save_path: `+out+`
log_level: debug
disable_orae_validation: true
enable_debug_logging: true
idle_timeout_minutes: 5
max_outstanding_messages: 10
max_outstanding_bytes: 2048
max_concurrency: 8
archive_bucket: rims-archive
`))
	require.NoError(t, err)

	assert.Equal(t, "rims-records", cfg.TopicID)
	assert.Equal(t, "orae-events-sub", cfg.SubscriptionID)
	assert.True(t, cfg.DisableORAEValidation)
	assert.True(t, cfg.EnableDebugLogging)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout())
	assert.Equal(t, 10, cfg.MaxOutstandingMessages)
	assert.Equal(t, 2048, cfg.MaxOutstandingBytes)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "rims-archive", cfg.ArchiveBucket)
	assert.NoError(t, cfg.RequirePubSub())

	assert.DirExists(t, in)
	assert.DirExists(t, out)
}

func TestLoad_EnvOverridesLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "log_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = Load(writeConfig(t, "project_id: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")

	_, err = Load(writeConfig(t, "log_level: chatty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = Load(writeConfig(t, "layout_template: /does/not/exist.xlsx\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout_template")
}

func TestRequirePubSub(t *testing.T) {
	cfg := Default()
	cfg.TopicID = "rims-records"

	err := cfg.RequirePubSub()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPubSub))
	assert.Contains(t, err.Error(), "project_id, subscription_id")
}
