// FILE: metrics_test.go
package log

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserveCounters(t *testing.T) {
	m := newMetrics()
	m.observePushed(LevelInfo)
	m.observePushed(LevelInfo)
	m.observeDropped()
	m.setDepth(5)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.pushed.WithLabelValues("INFO")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dropped))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.depth))
}

func TestMetricsServeHTTP(t *testing.T) {
	m := newMetrics()
	m.observePushed(LevelWarn)

	require.NoError(t, m.Start("127.0.0.1:19091"))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = m.Stop(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	resp, err := http.Get("http://127.0.0.1:19091/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "lockfreelog_records_pushed_total")
}

func TestLoggerEnablesMetricsServer(t *testing.T) {
	l := NewLogger()
	require.NoError(t, l.InitWithDefaults(
		"enable_console=false",
		"enable_metrics=true",
		"metrics_addr=127.0.0.1:19092",
	))
	defer l.ShutdownTimeout(time.Second)

	l.Info("sample")
	time.Sleep(50 * time.Millisecond)

	resp, err := http.Get("http://127.0.0.1:19092/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
