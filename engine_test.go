// FILE: engine_test.go
package log

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForCount(t *testing.T, sink *MemorySink, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sink.Count() >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d records, got %d", n, sink.Count())
}

func TestEnginePushAndDispatch(t *testing.T) {
	sink := NewMemorySink()
	e := NewEngine([]Sink{sink}, PolicyDrop, WithCapacity(16))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = e.Shutdown(ctx)
	}()

	require.True(t, Push1(e, LevelInfo, "hello {}", "world"))
	waitForCount(t, sink, 1)

	lines := sink.Lines()
	assert.True(t, strings.Contains(string(lines[0]), "hello world"))
	assert.True(t, strings.HasPrefix(string(lines[0]), LevelInfo.String()))
}

func TestEnginePush2And3(t *testing.T) {
	sink := NewMemorySink()
	e := NewEngine([]Sink{sink}, PolicyDrop, WithCapacity(16))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = e.Shutdown(ctx)
	}()

	require.True(t, Push2(e, LevelWarn, "{} and {}", 1, 2))
	require.True(t, Push3(e, LevelError, "{} {} {}", "a", "b", "c"))
	waitForCount(t, sink, 2)

	lines := sink.Lines()
	assert.Contains(t, string(lines[0]), "1 and 2")
	assert.Contains(t, string(lines[1]), "a b c")
}

func TestEngineDropPolicyCountsOverflow(t *testing.T) {
	sink := NewMemorySink()
	e := NewEngine([]Sink{sink}, PolicyDrop, WithCapacity(2))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = e.Shutdown(ctx)
	}()

	accepted := 0
	for i := 0; i < 1000; i++ {
		if e.Push(LevelInfo, "seq={}", i) {
			accepted++
		}
	}
	assert.LessOrEqual(t, accepted, 1000)
	// Under a tiny ring and no draining guarantee timing, at least some
	// pushes should have been accepted.
	assert.Greater(t, accepted, 0)
	// Every rejected push is counted exactly once.
	assert.Equal(t, uint64(1000-accepted), e.DroppedCount())
}

func TestEngineSpinRetryNeverDrops(t *testing.T) {
	sink := NewMemorySink()
	e := NewEngine([]Sink{sink}, PolicySpinRetry, WithCapacity(4))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = e.Shutdown(ctx)
	}()

	const total = 500
	for i := 0; i < total; i++ {
		require.True(t, e.Push(LevelDebug, "n={}", i))
	}
	waitForCount(t, sink, total)
	assert.Equal(t, uint64(0), e.DroppedCount())
}

func TestEngineShutdownFlushesSinks(t *testing.T) {
	sink := NewMemorySink()
	e := NewEngine([]Sink{sink}, PolicyDrop, WithCapacity(16))

	e.Push(LevelInfo, "final message")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Shutdown(ctx))

	assert.Equal(t, 1, sink.Count())
	assert.Equal(t, 1, sink.Flushes())

	// Pushing after shutdown is always dropped.
	assert.False(t, e.Push(LevelInfo, "too late"))
	assert.Equal(t, uint64(1), e.DroppedCount())
}

func TestEngineJSONOutput(t *testing.T) {
	sink := NewMemorySink()
	e := NewEngine([]Sink{sink}, PolicyDrop, WithCapacity(16), WithJSONOutput(true))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = e.Shutdown(ctx)
	}()

	require.True(t, Push1(e, LevelInfo, "value={}", 7))
	waitForCount(t, sink, 1)

	line := string(sink.Lines()[0])
	assert.Contains(t, line, `"level":"INFO"`)
	assert.Contains(t, line, `"message":"value=7"`)
}

func TestEngineSanitizationStripsControlChars(t *testing.T) {
	sink := NewMemorySink()
	e := NewEngine([]Sink{sink}, PolicyDrop, WithCapacity(16), WithSanitization("txt"))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = e.Shutdown(ctx)
	}()

	require.True(t, Push1(e, LevelInfo, "bell{}", "\x07"))
	waitForCount(t, sink, 1)

	line := string(sink.Lines()[0])
	assert.NotContains(t, line, "\x07")
}
