// FILE: compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	log "github.com/N3ro47/lockfree-log"
)

// FastHTTPAdapter wraps this package's Logger to implement fasthttp's Logger interface
type FastHTTPAdapter struct {
	logger        *log.Logger
	defaultLevel  log.Level
	levelDetector func(string) log.Level // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *log.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  log.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default log level for Printf calls
func WithDefaultLevel(level log.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) log.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	// Detect log level from message content
	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != a.defaultLevel {
			level = detected
		}
	}

	switch level {
	case log.LevelDebug:
		a.logger.Debug("fasthttp: {}", msg)
	case log.LevelWarn:
		a.logger.Warn("fasthttp: {}", msg)
	case log.LevelError:
		a.logger.Error("fasthttp: {}", msg)
	default:
		a.logger.Info("fasthttp: {}", msg)
	}
}

// DetectLogLevel attempts to detect log level from message content
func DetectLogLevel(msg string) log.Level {
	msgLower := strings.ToLower(msg)

	// Check for error indicators
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return log.LevelError
	}

	// Check for warning indicators
	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "warning") ||
		strings.Contains(msgLower, "deprecated") {
		return log.LevelWarn
	}

	// Check for debug indicators
	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return log.LevelDebug
	}

	// Default to info level
	return log.LevelInfo
}
