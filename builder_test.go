// FILE: builder_test.go
package log

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderChainPopulatesConfig(t *testing.T) {
	cfg := NewBuilder().
		RingCapacity(256).
		OverloadPolicy("drop").
		Level("debug").
		Console(true, "stderr").
		File(t.TempDir(), "builder-test").
		Rotation(10, 3, 7, true).
		Sanitization("strict").
		Format("json").
		Metrics(true, "127.0.0.1:0").
		Heartbeat(2, 30).
		Config()

	assert.Equal(t, 256, cfg.RingCapacity)
	assert.Equal(t, "drop", cfg.OverloadPolicy)
	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.EnableConsole)
	assert.Equal(t, "stderr", cfg.ConsoleTarget)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, "builder-test", cfg.Name)
	assert.Equal(t, 10, cfg.MaxSizeMB)
	assert.Equal(t, "strict", cfg.Sanitization)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, 2, cfg.HeartbeatLevel)
	assert.Equal(t, int64(30), cfg.HeartbeatIntervalS)
}

func TestBuilderBuildStartsLogger(t *testing.T) {
	l, err := NewBuilder().Console(false, "").Build()
	require.NoError(t, err)
	defer l.ShutdownTimeout(time.Second)

	assert.True(t, l.Info("builder-built logger works"))
}

func TestBuilderConfigReturnsIndependentClone(t *testing.T) {
	b := NewBuilder().RingCapacity(128)
	cfg1 := b.Config()
	cfg1.RingCapacity = 999
	cfg2 := b.Config()
	assert.Equal(t, 128, cfg2.RingCapacity)
}
