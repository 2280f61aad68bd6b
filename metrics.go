// FILE: metrics.go
package log

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments an Engine with Prometheus counters and a gauge,
// registered on a private registry so multiple Logger instances in the
// same process never collide on metric names.
type Metrics struct {
	registry *prometheus.Registry

	pushed  *prometheus.CounterVec
	dropped prometheus.Counter
	depth   prometheus.Gauge

	mu     sync.Mutex
	server *http.Server
}

func newMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		pushed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lockfreelog",
			Name:      "records_pushed_total",
			Help:      "Records accepted into the ring, by level.",
		}, []string{"level"}),
		dropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lockfreelog",
			Name:      "records_dropped_total",
			Help:      "Records discarded under the overload policy or after shutdown.",
		}),
		depth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lockfreelog",
			Name:      "ring_depth",
			Help:      "Most recently observed fill level of the ring buffer.",
		}),
	}
}

func (m *Metrics) observePushed(level Level) {
	if m == nil {
		return
	}
	m.pushed.WithLabelValues(level.String()).Inc()
}

func (m *Metrics) observeDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}

func (m *Metrics) setDepth(n int) {
	if m == nil {
		return
	}
	m.depth.Set(float64(n))
}

// Start launches the metrics HTTP server on addr, replacing any server this
// Metrics had previously started.
func (m *Metrics) Start(addr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = m.server.Shutdown(ctx)
		cancel()
		m.server = nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	m.server = srv

	go srv.Serve(ln)
	return nil
}

// Stop shuts the metrics HTTP server down, if one is running.
func (m *Metrics) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.server == nil {
		return nil
	}
	err := m.server.Shutdown(ctx)
	m.server = nil
	return err
}
