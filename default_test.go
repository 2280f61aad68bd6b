// FILE: default_test.go
package log

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageLevelFunctionsDelegateToDefaultLogger(t *testing.T) {
	require.NoError(t, InitWithDefaults("enable_console=false", "level=debug"))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = Shutdown(ctx)
	}()

	assert.True(t, Debug("debug via package default"))
	assert.True(t, Info("info via package default"))
	assert.True(t, Warn("warn via package default"))
	assert.True(t, Error("error via package default"))
	assert.True(t, Push(LevelInfo, "push via package default"))

	cfg := GetConfig()
	assert.Equal(t, "debug", cfg.Level)
	assert.GreaterOrEqual(t, QueueDepth(), 0)
	assert.GreaterOrEqual(t, DroppedCount(), uint64(0))
}

func TestApplyConfigStringDelegatesToDefaultLogger(t *testing.T) {
	require.NoError(t, InitWithDefaults("enable_console=false"))
	defer ShutdownTimeout(time.Second)

	require.NoError(t, ApplyConfigString("level=warn"))
	assert.Equal(t, "warn", GetConfig().Level)
}
