package compat

import (
	"fmt"
	"os"
	"strings"

	log "github.com/N3ro47/lockfree-log"
)

// FiberAdapter wraps this package's Logger to implement Fiber's CommonLogger interface
// This provides compatibility with Fiber v2.54.x logging requirements
type FiberAdapter struct {
	logger       *log.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
	panicHandler func(msg string) // Customizable panic behavior
}

// NewFiberAdapter creates a new Fiber-compatible logger adapter
func NewFiberAdapter(logger *log.Logger, opts ...FiberOption) *FiberAdapter {
	adapter := &FiberAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior
		},
		panicHandler: func(msg string) {
			panic(msg) // Default behavior
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FiberOption allows customizing adapter behavior
type FiberOption func(*FiberAdapter)

// WithFiberFatalHandler sets a custom fatal handler
func WithFiberFatalHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.fatalHandler = handler
	}
}

// WithFiberPanicHandler sets a custom panic handler
func WithFiberPanicHandler(handler func(string)) FiberOption {
	return func(a *FiberAdapter) {
		a.panicHandler = handler
	}
}

// renderKV turns a "key1, value1, key2, value2, ..." slice into a
// positional template and its values, for adapters whose upstream
// interface is structured key-value rather than printf-style.
func renderKV(msg string, keysAndValues ...any) (string, []any) {
	var tmpl strings.Builder
	tmpl.WriteString(msg)
	values := make([]any, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		tmpl.WriteString(" ")
		tmpl.WriteString(key)
		tmpl.WriteString("={}")
		values = append(values, keysAndValues[i+1])
	}
	return tmpl.String(), values
}

// --- Logger interface implementation (7 methods) ---

// Trace logs at trace/debug level
func (a *FiberAdapter) Trace(v ...any) {
	a.logger.Debug("fiber trace: {}", fmt.Sprint(v...))
}

// Debug logs at debug level
func (a *FiberAdapter) Debug(v ...any) {
	a.logger.Debug("fiber: {}", fmt.Sprint(v...))
}

// Info logs at info level
func (a *FiberAdapter) Info(v ...any) {
	a.logger.Info("fiber: {}", fmt.Sprint(v...))
}

// Warn logs at warn level
func (a *FiberAdapter) Warn(v ...any) {
	a.logger.Warn("fiber: {}", fmt.Sprint(v...))
}

// Error logs at error level
func (a *FiberAdapter) Error(v ...any) {
	a.logger.Error("fiber: {}", fmt.Sprint(v...))
}

// Fatal logs at error level and triggers fatal handler
func (a *FiberAdapter) Fatal(v ...any) {
	msg := fmt.Sprint(v...)
	a.logger.Error("fiber fatal: {}", msg)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// Panic logs at error level and triggers panic handler
func (a *FiberAdapter) Panic(v ...any) {
	msg := fmt.Sprint(v...)
	a.logger.Error("fiber panic: {}", msg)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// Write makes FiberAdapter implement io.Writer interface
// This allows it to be used with fiber.Config.ErrorHandler output redirection
func (a *FiberAdapter) Write(p []byte) (n int, err error) {
	msg := string(p)
	// Trim trailing newline if present
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	a.logger.Info("fiber: {}", msg)
	return len(p), nil
}

// --- FormatLogger interface implementation (7 methods) ---

// Tracef logs at trace/debug level with printf-style formatting
func (a *FiberAdapter) Tracef(format string, v ...any) {
	a.logger.Debug("fiber trace: {}", fmt.Sprintf(format, v...))
}

// Debugf logs at debug level with printf-style formatting
func (a *FiberAdapter) Debugf(format string, v ...any) {
	a.logger.Debug("fiber: {}", fmt.Sprintf(format, v...))
}

// Infof logs at info level with printf-style formatting
func (a *FiberAdapter) Infof(format string, v ...any) {
	a.logger.Info("fiber: {}", fmt.Sprintf(format, v...))
}

// Warnf logs at warn level with printf-style formatting
func (a *FiberAdapter) Warnf(format string, v ...any) {
	a.logger.Warn("fiber: {}", fmt.Sprintf(format, v...))
}

// Errorf logs at error level with printf-style formatting
func (a *FiberAdapter) Errorf(format string, v ...any) {
	a.logger.Error("fiber: {}", fmt.Sprintf(format, v...))
}

// Fatalf logs at error level and triggers fatal handler
func (a *FiberAdapter) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.logger.Error("fiber fatal: {}", msg)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// Panicf logs at error level and triggers panic handler
func (a *FiberAdapter) Panicf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	a.logger.Error("fiber panic: {}", msg)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}

// --- WithLogger interface implementation (7 methods) ---

// Tracew logs at trace/debug level with structured key-value pairs
func (a *FiberAdapter) Tracew(msg string, keysAndValues ...any) {
	tmpl, values := renderKV(msg, keysAndValues...)
	a.logger.Push(log.LevelDebug, "fiber trace: "+tmpl, values...)
}

// Debugw logs at debug level with structured key-value pairs
func (a *FiberAdapter) Debugw(msg string, keysAndValues ...any) {
	tmpl, values := renderKV(msg, keysAndValues...)
	a.logger.Debug("fiber: "+tmpl, values...)
}

// Infow logs at info level with structured key-value pairs
func (a *FiberAdapter) Infow(msg string, keysAndValues ...any) {
	tmpl, values := renderKV(msg, keysAndValues...)
	a.logger.Info("fiber: "+tmpl, values...)
}

// Warnw logs at warn level with structured key-value pairs
func (a *FiberAdapter) Warnw(msg string, keysAndValues ...any) {
	tmpl, values := renderKV(msg, keysAndValues...)
	a.logger.Warn("fiber: "+tmpl, values...)
}

// Errorw logs at error level with structured key-value pairs
func (a *FiberAdapter) Errorw(msg string, keysAndValues ...any) {
	tmpl, values := renderKV(msg, keysAndValues...)
	a.logger.Error("fiber: "+tmpl, values...)
}

// Fatalw logs at error level with structured key-value pairs and triggers fatal handler
func (a *FiberAdapter) Fatalw(msg string, keysAndValues ...any) {
	tmpl, values := renderKV(msg, keysAndValues...)
	a.logger.Error("fiber fatal: "+tmpl, values...)
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// Panicw logs at error level with structured key-value pairs and triggers panic handler
func (a *FiberAdapter) Panicw(msg string, keysAndValues ...any) {
	tmpl, values := renderKV(msg, keysAndValues...)
	a.logger.Error("fiber panic: "+tmpl, values...)
	if a.panicHandler != nil {
		a.panicHandler(msg)
	}
}
