package compat

import (
	"fmt"
	"os"
	"time"

	log "github.com/N3ro47/lockfree-log"
)

// GnetAdapter wraps this package's Logger to implement gnet's logging.Logger interface
type GnetAdapter struct {
	logger       *log.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *log.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Debug("gnet: {}", msg)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Info("gnet: {}", msg)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Warn("gnet: {}", msg)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Error("gnet: {}", msg)
}

// Fatalf logs at error level and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Error("gnet fatal: {}", msg)

	if err := a.logger.ShutdownTimeout(100 * time.Millisecond); err != nil {
		fmt.Fprintf(os.Stderr, "gnet adapter: shutdown before fatal exit failed: %v\n", err)
	}

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
