// FILE: engine.go
package log

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/N3ro47/lockfree-log/formatter"
	"github.com/N3ro47/lockfree-log/sanitizer"
	"go.uber.org/multierr"
)

// OverloadPolicy governs what a producer does when the ring is full.
type OverloadPolicy int

const (
	// PolicyDrop discards the record silently and counts it. Default;
	// matches the non-blocking guarantee producers get everywhere else.
	PolicyDrop OverloadPolicy = iota
	// PolicySpinRetry cooperatively yields and retries until accepted.
	// Callers choosing this give up the non-blocking guarantee in
	// exchange for delivery.
	PolicySpinRetry
)

// DefaultRingCapacity is used by NewEngine when no explicit capacity is
// given via WithCapacity.
const DefaultRingCapacity = 1024

// Engine owns one ring, one consumer goroutine, and the ordered sink list
// records are dispatched to. It is the asynchronous record-passing core
// the rest of this package builds on.
type Engine struct {
	ring   *ring
	sinks  []Sink
	policy OverloadPolicy

	done     atomic.Bool
	signal   atomic.Uint64
	doorbell chan struct{}

	dropped    atomic.Uint64
	metrics    *Metrics
	saner      *sanitizer.Sanitizer
	jsonOutput bool
	legacyFmt  *formatter.Formatter

	shutdownOnce sync.Once
	consumerWG   sync.WaitGroup
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*engineOptions)

type engineOptions struct {
	capacity   int
	metrics    *Metrics
	saner      *sanitizer.Sanitizer
	jsonOutput bool
	legacyFmt  *formatter.Formatter
}

// WithCapacity overrides the ring's power-of-two capacity.
func WithCapacity(capacity int) EngineOption {
	return func(o *engineOptions) { o.capacity = capacity }
}

// WithMetrics attaches a Metrics instrument; every accept, drop and ring
// depth observation is reported to it. Nil is a valid no-op instrument.
func WithMetrics(m *Metrics) EngineOption {
	return func(o *engineOptions) { o.metrics = m }
}

// WithSanitization applies a sanitizer.PolicyPreset to every rendered line
// before it reaches the sink list. An empty or "raw" preset disables it.
func WithSanitization(preset string) EngineOption {
	return func(o *engineOptions) {
		if preset == "" || preset == string(sanitizer.PolicyRaw) {
			return
		}
		o.saner = sanitizer.New().Policy(sanitizer.PolicyPreset(preset))
	}
}

// WithJSONOutput renders every dispatched line as a JSON object instead of
// the default "LEVEL: message" text line.
func WithJSONOutput(enabled bool) EngineOption {
	return func(o *engineOptions) { o.jsonOutput = enabled }
}

// WithLegacyFormatter routes every dispatched line through f instead of the
// engine's own inline text/JSON rendering. f's Type and TimestampFormat
// apply; the engine always calls it with formatter.FlagDefault, so every
// line carries a timestamp and level whatever ShowLevel/ShowTimestamp say.
// A nil f disables this path and falls back to the built-in renderer. Takes
// priority over WithJSONOutput when both are set.
func WithLegacyFormatter(f *formatter.Formatter) EngineOption {
	return func(o *engineOptions) { o.legacyFmt = f }
}

// NewEngine constructs an Engine over the given sinks (dispatched in the
// order given) and starts its consumer goroutine immediately.
func NewEngine(sinks []Sink, policy OverloadPolicy, opts ...EngineOption) *Engine {
	cfg := engineOptions{capacity: DefaultRingCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		ring:       newRing(cfg.capacity),
		sinks:      append([]Sink(nil), sinks...),
		policy:     policy,
		doorbell:   make(chan struct{}, 1),
		metrics:    cfg.metrics,
		saner:      cfg.saner,
		jsonOutput: cfg.jsonOutput,
		legacyFmt:  cfg.legacyFmt,
	}

	e.consumerWG.Add(1)
	go e.consumerLoop()
	return e
}

// wake delivers a non-blocking wake to the consumer. Duplicate wakes
// coalesce harmlessly into the channel's single buffered slot.
func (e *Engine) wake() {
	select {
	case e.doorbell <- struct{}{}:
	default:
	}
}

// pushRecord is the common tail of every Push variant: attempt the
// lock-free emplace, apply the overload policy on rejection.
func (e *Engine) pushRecord(rec Record) bool {
	if e.done.Load() {
		rec.Destroy()
		e.dropped.Add(1)
		e.metrics.observeDropped()
		return false
	}

	for {
		if e.ring.tryEmplace(&rec) {
			e.signal.Add(1)
			e.metrics.observePushed(rec.level)
			e.metrics.setDepth(e.ring.depth())
			e.wake()
			return true
		}
		if e.policy == PolicyDrop {
			rec.Destroy()
			e.dropped.Add(1)
			e.metrics.observeDropped()
			return false
		}
		runtime.Gosched()
	}
}

// Push1 submits a record capturing exactly one argument, with no
// allocation on this call's path.
func Push1[A any](e *Engine, level Level, template string, a A) bool {
	return e.pushRecord(newRecord1(level, template, a))
}

// Push2 is the two-argument counterpart of Push1.
func Push2[A, B any](e *Engine, level Level, template string, a A, b B) bool {
	return e.pushRecord(newRecord2(level, template, a, b))
}

// Push3 is the three-argument counterpart of Push1.
func Push3[A, B, C any](e *Engine, level Level, template string, a A, b B, c C) bool {
	return e.pushRecord(newRecord3(level, template, a, b, c))
}

// Push is the allocating convenience form for call sites with more than
// three arguments or argument counts only known at runtime.
func (e *Engine) Push(level Level, template string, args ...any) bool {
	if len(args) == 0 {
		return e.pushRecord(newRecord0(level, template))
	}
	return e.pushRecord(newRecordDynamic(level, template, args))
}

// Debug, Info, Warn and Error are the allocating level-convenience forms.
func (e *Engine) Debug(template string, args ...any) bool { return e.Push(LevelDebug, template, args...) }
func (e *Engine) Info(template string, args ...any) bool  { return e.Push(LevelInfo, template, args...) }
func (e *Engine) Warn(template string, args ...any) bool  { return e.Push(LevelWarn, template, args...) }
func (e *Engine) Error(template string, args ...any) bool { return e.Push(LevelError, template, args...) }

// DroppedCount returns the number of records discarded under PolicyDrop or
// after shutdown, for diagnostic reporting.
func (e *Engine) DroppedCount() uint64 {
	return e.dropped.Load()
}

// QueueDepth is a racy diagnostic snapshot of the ring's current fill.
func (e *Engine) QueueDepth() int {
	return e.ring.depth()
}

// consumerLoop is the single drain goroutine: pop, format, dispatch to
// every sink in order, destroy; park on the doorbell when the ring is
// empty until a producer wakes it or shutdown is requested.
func (e *Engine) consumerLoop() {
	defer e.consumerWG.Done()

	var rec Record
	buf := make([]byte, 0, 256)

	for {
		if e.ring.tryPop(&rec) {
			buf = e.formatAndDispatch(buf, &rec)
			continue
		}

		if e.done.Load() {
			return
		}

		// The doorbell is a buffered, coalescing wake token: any push or
		// shutdown between here and the blocking receive below has
		// already queued a wake, so this can never miss one. signal
		// itself is read only for diagnostics; the doorbell is the
		// actual wait/notify primitive doing the futex-equivalent job.
		_ = e.signal.Load()
		<-e.doorbell
	}
}

func (e *Engine) formatAndDispatch(buf []byte, rec *Record) []byte {
	buf = buf[:0]

	switch {
	case e.legacyFmt != nil:
		message := string(rec.Format(nil))
		rendered := e.legacyFmt.Format(formatter.FlagDefault, time.Now(), int64(rec.level), "", []any{message})
		buf = append(buf, rendered...)
		buf = buf[:len(buf)-1] // legacy formatter appends its own trailing newline
	case e.jsonOutput:
		message := string(rec.Format(buf[:0]))
		buf = renderJSONLine(buf[:0], rec.level.String(), rec.goid, message)
	default:
		buf = append(buf, rec.level.String()...)
		buf = append(buf, ": "...)
		buf = rec.Format(buf)
	}

	if e.saner != nil {
		sanitized := e.saner.Sanitize(string(buf))
		buf = append(buf[:0], sanitized...)
	}
	buf = append(buf, '\n')

	for _, s := range e.sinks {
		if err := s.Write(buf, rec.level); err != nil {
			e.reportSinkError(err)
		}
	}
	rec.Destroy()
	return buf
}

func (e *Engine) reportSinkError(err error) {
	// Sink I/O failures are the sink's responsibility; the core neither
	// retries nor aborts. Best-effort stderr fallback only.
	internalLog("sink write failed: %v\n", err)
}

// Shutdown idempotently stops the consumer after it has drained every
// record already accepted into the ring, then flushes every sink in
// order. It blocks until that drain completes or ctx is done.
func (e *Engine) Shutdown(ctx context.Context) error {
	var flushErr error
	e.shutdownOnce.Do(func() {
		e.done.Store(true)
		e.signal.Add(1)
		e.wake()

		joined := make(chan struct{})
		go func() {
			e.consumerWG.Wait()
			close(joined)
		}()

		select {
		case <-joined:
		case <-ctx.Done():
			flushErr = ctx.Err()
			return
		}

		// The consumer has exited, so this goroutine is now the only
		// consumer: dispatch anything that landed after its last pop.
		var rec Record
		buf := make([]byte, 0, 256)
		for e.ring.tryPop(&rec) {
			buf = e.formatAndDispatch(buf, &rec)
		}

		for _, s := range e.sinks {
			if err := s.Flush(); err != nil {
				flushErr = multierr.Append(flushErr, err)
			}
		}
	})
	return flushErr
}
