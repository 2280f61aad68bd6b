// FILE: override_test.go
package log

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValueSplitsOnFirstEquals(t *testing.T) {
	key, value, err := parseKeyValue("http_endpoint=http://host/a=b")
	require.NoError(t, err)
	assert.Equal(t, "http_endpoint", key)
	assert.Equal(t, "http://host/a=b", value)
}

func TestParseKeyValueRejectsMissingEquals(t *testing.T) {
	_, _, err := parseKeyValue("not-a-pair")
	assert.Error(t, err)
}

func TestParseKeyValueRejectsEmptyKey(t *testing.T) {
	_, _, err := parseKeyValue("=value")
	assert.Error(t, err)
}

func TestApplyConfigFieldSetsKnownFields(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, applyConfigField(cfg, "ring_capacity", "512"))
	require.NoError(t, applyConfigField(cfg, "enable_file", "true"))
	require.NoError(t, applyConfigField(cfg, "directory", "/tmp/logs"))
	require.NoError(t, applyConfigField(cfg, "format", "json"))

	assert.Equal(t, 512, cfg.RingCapacity)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, "/tmp/logs", cfg.Directory)
	assert.Equal(t, "json", cfg.Format)
}

func TestApplyConfigFieldRejectsUnknownKey(t *testing.T) {
	cfg := DefaultConfig()
	err := applyConfigField(cfg, "not_a_field", "x")
	assert.Error(t, err)
}

func TestApplyConfigFieldRejectsBadIntValue(t *testing.T) {
	cfg := DefaultConfig()
	err := applyConfigField(cfg, "ring_capacity", "not-a-number")
	assert.Error(t, err)
}

func TestCombineConfigErrorsJoinsMultiple(t *testing.T) {
	cfg := DefaultConfig()
	err := combineConfigErrors([]error{
		applyConfigField(cfg, "ring_capacity", "bad"),
		applyConfigField(cfg, "unknown_key", "x"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.")
	assert.Contains(t, err.Error(), "2.")
}

func TestApplyOverrideReconfiguresLogger(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.InitWithDefaults("enable_console=false"))
	defer l.ShutdownTimeout(time.Second)

	require.NoError(t, l.ApplyOverride("level=error", "format=json"))

	cfg := l.GetConfig()
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}

func TestApplyOverrideRejectsBadOverride(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.InitWithDefaults("enable_console=false"))
	defer l.ShutdownTimeout(time.Second)

	err := l.ApplyOverride("ring_capacity=not-a-number")
	assert.Error(t, err)
}
