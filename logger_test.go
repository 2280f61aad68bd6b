// FILE: logger_test.go
package log

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerStartsUninitialized(t *testing.T) {
	l := NewLogger()
	assert.Nil(t, l.currentEngine())
	assert.False(t, l.Push(LevelInfo, "unreachable"))
}

func TestLoggerInitTwiceErrors(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.InitWithDefaults("enable_console=false"))
	defer l.ShutdownTimeout(time.Second)

	err := l.Init(DefaultConfig())
	assert.Error(t, err)
}

func TestLoggerApplyConfigStringReconfigures(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.InitWithDefaults("enable_console=false"))
	defer l.ShutdownTimeout(time.Second)

	require.NoError(t, l.ApplyConfigString("level=debug"))
	assert.Equal(t, "debug", l.GetConfig().Level)

	err := l.ApplyConfigString("unknown_key=1")
	assert.Error(t, err)
}

func TestLoggerLevelFiltering(t *testing.T) {
	l := NewLogger()
	cfg := DefaultConfig()
	cfg.EnableConsole = false
	cfg.Level = "warn"
	require.NoError(t, l.Init(cfg))
	defer l.ShutdownTimeout(time.Second)

	assert.False(t, l.Debug("debug msg"))
	assert.False(t, l.Info("info msg"))
	assert.True(t, l.Warn("warn msg"))
	assert.True(t, l.Error("error msg"))
}

func TestLoggerHotSwapPreservesService(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.InitWithDefaults("enable_console=false", "ring_capacity=128"))
	defer l.ShutdownTimeout(time.Second)

	assert.True(t, l.Info("before reconfigure"))
	require.NoError(t, l.ApplyConfigString("ring_capacity=256"))
	assert.True(t, l.Info("after reconfigure"))
}

func TestLoggerShutdownIsIdempotentSafe(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.InitWithDefaults("enable_console=false"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, l.Shutdown(ctx))
	require.NoError(t, l.Shutdown(ctx))

	assert.False(t, l.Push(LevelInfo, "after shutdown"))
}

func TestLoggerConcurrentPush(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.InitWithDefaults("enable_console=false", "ring_capacity=1024"))
	defer l.ShutdownTimeout(time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Push(LevelInfo, "worker {} iter {}", id, j)
			}
		}(i)
	}
	wg.Wait()
}

func TestBuildSinksFallsBackToNullSink(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableConsole = false
	sinks, err := buildSinks(cfg)
	require.NoError(t, err)
	require.Len(t, sinks, 1)
	_, ok := sinks[0].(NullSink)
	assert.True(t, ok)
}
