package compat

import (
	"testing"
	"time"

	log "github.com/N3ro47/lockfree-log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		appLogger := log.NewLogger()
		require.NoError(t, appLogger.InitWithDefaults("enable_console=false"))
		defer appLogger.ShutdownTimeout(time.Second)

		builder := NewBuilder().WithLogger(appLogger)
		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.NotNil(t, gnetAdapter)
		assert.Equal(t, appLogger, gnetAdapter.logger)
	})

	t.Run("with config", func(t *testing.T) {
		logCfg := log.DefaultConfig()
		logCfg.EnableConsole = false

		builder := NewBuilder().WithConfig(logCfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger1, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger1.ShutdownTimeout(time.Second)
	})
}

func TestGnetAdapter(t *testing.T) {
	appLogger := log.NewLogger()
	require.NoError(t, appLogger.InitWithDefaults("enable_console=false"))
	defer appLogger.ShutdownTimeout(time.Second)

	builder := NewBuilder().WithLogger(appLogger)

	var fatalCalled bool
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalCalled = true
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	assert.True(t, fatalCalled, "Custom fatal handler should have been called")
}

func TestStructuredGnetAdapter(t *testing.T) {
	appLogger := log.NewLogger()
	require.NoError(t, appLogger.InitWithDefaults("enable_console=false"))
	defer appLogger.ShutdownTimeout(time.Second)

	builder := NewBuilder().WithLogger(appLogger)
	adapter, err := builder.BuildStructuredGnet()
	require.NoError(t, err)

	adapter.Infof("request served status=%d client_ip=%s", 200, "127.0.0.1")
}

func TestFastHTTPAdapter(t *testing.T) {
	appLogger := log.NewLogger()
	require.NoError(t, appLogger.InitWithDefaults("enable_console=false"))
	defer appLogger.ShutdownTimeout(time.Second)

	builder := NewBuilder().WithLogger(appLogger)
	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}
}

func TestFiberAdapter(t *testing.T) {
	appLogger := log.NewLogger()
	require.NoError(t, appLogger.InitWithDefaults("enable_console=false"))
	defer appLogger.ShutdownTimeout(time.Second)

	builder := NewBuilder().WithLogger(appLogger)

	var fatalCalled bool
	var panicCalled bool
	adapter, err := builder.BuildFiber(
		WithFiberFatalHandler(func(msg string) {
			fatalCalled = true
		}),
		WithFiberPanicHandler(func(msg string) {
			panicCalled = true
		}),
	)
	require.NoError(t, err)

	adapter.Tracef("fiber trace id=%d", 1)
	adapter.Debugf("fiber debug id=%d", 2)
	adapter.Infof("fiber info id=%d", 3)
	adapter.Warnf("fiber warn id=%d", 4)
	adapter.Errorf("fiber error id=%d", 5)
	adapter.Fatalf("fiber fatal id=%d", 6)
	adapter.Panicf("fiber panic id=%d", 7)

	assert.True(t, fatalCalled, "Custom fatal handler should have been called")
	assert.True(t, panicCalled, "Custom panic handler should have been called")
}

func TestFiberAdapterStructuredLogging(t *testing.T) {
	appLogger := log.NewLogger()
	require.NoError(t, appLogger.InitWithDefaults("enable_console=false"))
	defer appLogger.ShutdownTimeout(time.Second)

	builder := NewBuilder().WithLogger(appLogger)
	adapter, err := builder.BuildFiber()
	require.NoError(t, err)

	adapter.Infow("request served", "status", 200, "client_ip", "127.0.0.1", "method", "GET")
	adapter.Debugw("query executed", "duration_ms", 42, "query", "SELECT * FROM users")
}

func TestFiberBuilderIntegration(t *testing.T) {
	appLogger := log.NewLogger()
	require.NoError(t, appLogger.InitWithDefaults("enable_console=false"))
	defer appLogger.ShutdownTimeout(time.Second)

	builder := NewBuilder().WithLogger(appLogger)
	fiberAdapter, err := builder.BuildFiber()
	require.NoError(t, err)
	assert.NotNil(t, fiberAdapter)
	assert.Equal(t, appLogger, fiberAdapter.logger)
}
