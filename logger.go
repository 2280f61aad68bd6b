// FILE: logger.go
package log

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/N3ro47/lockfree-log/formatter"
	"github.com/N3ro47/lockfree-log/sanitizer"
)

// Logger wraps an Engine with hot-swappable Config. Reconfiguration builds
// an entirely new Engine and sink list, then atomically swaps the pointer
// in place; in-flight Push calls either land on the old engine or the new
// one, never a half-built one.
type Logger struct {
	engine atomic.Pointer[Engine]
	cfg    atomic.Pointer[Config]

	reconfigureMu sync.Mutex

	minLevel atomic.Int64

	hbCancel context.CancelFunc
	hbWG     sync.WaitGroup

	metrics *Metrics
}

// NewLogger constructs a Logger from the package defaults without starting
// it; call Init or ApplyConfig to build the first Engine.
func NewLogger() *Logger {
	return &Logger{}
}

// Init builds the Engine for the given configuration and starts the
// logger. It is an error to call Init twice without an intervening
// Shutdown.
func (l *Logger) Init(cfg *Config) error {
	l.reconfigureMu.Lock()
	defer l.reconfigureMu.Unlock()

	if l.engine.Load() != nil {
		return fmtErrorf("logger already initialized")
	}
	return l.reconfigureLocked(cfg)
}

// InitWithDefaults builds the Engine from package defaults overridden by
// the given "key=value" strings.
func (l *Logger) InitWithDefaults(overrides ...string) error {
	cfg := DefaultConfig()
	for _, o := range overrides {
		key, value, err := parseKeyValue(o)
		if err != nil {
			return err
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			return err
		}
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	return l.Init(cfg)
}

// InitFromFile builds the Engine from a TOML configuration file.
func (l *Logger) InitFromFile(path, basePath string) error {
	cfg, err := NewConfigFromFile(path, basePath)
	if err != nil {
		return err
	}
	return l.Init(cfg)
}

// ApplyConfig rebuilds the Engine from cfg and atomically swaps it in,
// shutting the previous Engine down after the swap so in-flight records on
// the old engine still get flushed.
func (l *Logger) ApplyConfig(cfg *Config) error {
	l.reconfigureMu.Lock()
	defer l.reconfigureMu.Unlock()
	return l.reconfigureLocked(cfg)
}

// ApplyConfigString applies string "key=value" overrides on top of the
// current configuration and reconfigures the logger.
func (l *Logger) ApplyConfigString(overrides ...string) error {
	return l.ApplyOverride(overrides...)
}

func (l *Logger) reconfigureLocked(cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	sinks, err := buildSinks(cfg)
	if err != nil {
		return err
	}

	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	policy := PolicyDrop
	if cfg.OverloadPolicy == "spin_retry" {
		policy = PolicySpinRetry
	}

	internalErrorsToStderr.Store(cfg.InternalErrorsToStderr)

	if cfg.EnableMetrics {
		if l.metrics == nil {
			l.metrics = newMetrics()
		}
		if err := l.metrics.Start(cfg.MetricsAddr); err != nil {
			return fmt.Errorf("log: failed to start metrics server: %w", err)
		}
	} else if l.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = l.metrics.Stop(ctx)
		cancel()
	}

	newEngine := NewEngine(sinks, policy,
		WithCapacity(cfg.RingCapacity),
		WithMetrics(l.metrics),
		WithSanitization(cfg.Sanitization),
		WithJSONOutput(cfg.Format == "json"),
		WithLegacyFormatter(buildLegacyFormatter(cfg)),
	)

	old := l.engine.Swap(newEngine)
	l.cfg.Store(cfg)
	l.minLevel.Store(int64(lvl))

	l.restartHeartbeat(cfg)

	if old != nil {
		go func(e *Engine) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := e.Shutdown(ctx); err != nil {
				internalLog("shutdown of superseded engine returned error: %v\n", err)
			}
		}(old)
	}
	return nil
}

// buildLegacyFormatter constructs the formatter package's renderer when
// cfg opts into it, sharing the same sanitization preset the engine's own
// inline renderer would otherwise apply. Returns nil when disabled, which
// WithLegacyFormatter treats as "use the built-in renderer".
func buildLegacyFormatter(cfg *Config) *formatter.Formatter {
	if !cfg.LegacyFormatter {
		return nil
	}
	san := sanitizer.New()
	if cfg.Sanitization != "" && cfg.Sanitization != string(sanitizer.PolicyRaw) {
		san = san.Policy(sanitizer.PolicyPreset(cfg.Sanitization))
	}
	legacyType := "txt"
	if cfg.Format == "json" {
		legacyType = "json"
	}
	return formatter.New(san).Type(legacyType).TimestampFormat(cfg.TimestampFormat)
}

func (l *Logger) restartHeartbeat(cfg *Config) {
	if l.hbCancel != nil {
		l.hbCancel()
		l.hbWG.Wait()
		l.hbCancel = nil
	}
	if cfg.HeartbeatLevel <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.hbCancel = cancel
	l.hbWG.Add(1)
	go l.heartbeatLoop(ctx, cfg.HeartbeatLevel, time.Duration(cfg.HeartbeatIntervalS)*time.Second)
}

// GetConfig returns a clone of the configuration currently in effect, safe
// for the caller to mutate and feed back into ApplyConfig.
func (l *Logger) GetConfig() *Config {
	cfg := l.cfg.Load()
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg.Clone()
}

func (l *Logger) currentEngine() *Engine {
	return l.engine.Load()
}

func (l *Logger) enabled(level Level) bool {
	return int64(level) >= l.minLevel.Load()
}

// Push submits a record with an arbitrary argument count.
func (l *Logger) Push(level Level, template string, args ...any) bool {
	e := l.currentEngine()
	if e == nil || !l.enabled(level) {
		return false
	}
	return e.Push(level, template, args...)
}

func (l *Logger) Debug(template string, args ...any) bool { return l.Push(LevelDebug, template, args...) }
func (l *Logger) Info(template string, args ...any) bool  { return l.Push(LevelInfo, template, args...) }
func (l *Logger) Warn(template string, args ...any) bool  { return l.Push(LevelWarn, template, args...) }
func (l *Logger) Error(template string, args ...any) bool { return l.Push(LevelError, template, args...) }

// DroppedCount reports drops accrued on the engine currently installed.
// Counts from engines superseded by a prior ApplyConfig are not retained.
func (l *Logger) DroppedCount() uint64 {
	e := l.currentEngine()
	if e == nil {
		return 0
	}
	return e.DroppedCount()
}

// QueueDepth is a racy diagnostic snapshot of the current engine's ring.
func (l *Logger) QueueDepth() int {
	e := l.currentEngine()
	if e == nil {
		return 0
	}
	return e.QueueDepth()
}

// Shutdown stops the heartbeat ticker and the active Engine, flushing every
// sink. It blocks until shutdown completes or ctx is done.
func (l *Logger) Shutdown(ctx context.Context) error {
	l.reconfigureMu.Lock()
	defer l.reconfigureMu.Unlock()

	if l.hbCancel != nil {
		l.hbCancel()
		l.hbWG.Wait()
		l.hbCancel = nil
	}

	if l.metrics != nil {
		_ = l.metrics.Stop(ctx)
	}

	e := l.engine.Swap(nil)
	if e == nil {
		return nil
	}
	return e.Shutdown(ctx)
}

// ShutdownTimeout is a convenience wrapper around Shutdown for call sites
// that would rather not build a context.
func (l *Logger) ShutdownTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return l.Shutdown(ctx)
}

// buildSinks constructs the sink list a Config describes, in a fixed order:
// console, file (optionally signing-wrapped), sql, http. Each is grounded
// in its own file; buildSinks only wires them together.
func buildSinks(cfg *Config) ([]Sink, error) {
	var sinks []Sink

	if cfg.EnableConsole {
		w := os.Stdout
		if cfg.ConsoleTarget == "stderr" {
			w = os.Stderr
		}
		sinks = append(sinks, NewConsoleSink(w))
	}

	if cfg.EnableFile {
		fs, err := NewFileSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("log: failed to build file sink: %w", err)
		}
		if cfg.EnableSigning {
			sinks = append(sinks, NewSigningSink(fs))
		} else {
			sinks = append(sinks, fs)
		}
	}

	if cfg.EnableSQL {
		ss, err := NewSQLSink(cfg.SQLPath)
		if err != nil {
			return nil, fmt.Errorf("log: failed to build sql sink: %w", err)
		}
		sinks = append(sinks, ss)
	}

	if cfg.EnableHTTP {
		hs := NewHTTPSink(cfg.HTTPEndpoint, cfg.HTTPBatchSize, time.Duration(cfg.HTTPBatchIntervalMs)*time.Millisecond)
		sinks = append(sinks, hs)
	}

	if len(sinks) == 0 {
		sinks = append(sinks, NullSink{})
	}
	return sinks, nil
}
