// FILE: default.go
package log

import (
	"context"
	"time"
)

// defaultLogger backs the package-level convenience functions, so callers
// who don't need multiple independent loggers can use the package
// directly.
var defaultLogger = NewLogger()

// Init builds the default logger's Engine from cfg.
func Init(cfg *Config) error {
	return defaultLogger.Init(cfg)
}

// InitWithDefaults builds the default logger from package defaults
// overridden by the given "key=value" strings.
func InitWithDefaults(overrides ...string) error {
	return defaultLogger.InitWithDefaults(overrides...)
}

// InitFromFile builds the default logger from a TOML configuration file.
func InitFromFile(path, basePath string) error {
	return defaultLogger.InitFromFile(path, basePath)
}

// ApplyConfig reconfigures the default logger.
func ApplyConfig(cfg *Config) error {
	return defaultLogger.ApplyConfig(cfg)
}

// ApplyConfigString reconfigures the default logger from overrides.
func ApplyConfigString(overrides ...string) error {
	return defaultLogger.ApplyConfigString(overrides...)
}

// GetConfig returns a clone of the default logger's current configuration.
func GetConfig() *Config {
	return defaultLogger.GetConfig()
}

// Push submits a record through the default logger.
func Push(level Level, template string, args ...any) bool {
	return defaultLogger.Push(level, template, args...)
}

func Debug(template string, args ...any) bool { return defaultLogger.Debug(template, args...) }
func Info(template string, args ...any) bool  { return defaultLogger.Info(template, args...) }
func Warn(template string, args ...any) bool  { return defaultLogger.Warn(template, args...) }
func Error(template string, args ...any) bool { return defaultLogger.Error(template, args...) }

// DroppedCount reports drops on the default logger's active engine.
func DroppedCount() uint64 {
	return defaultLogger.DroppedCount()
}

// QueueDepth reports the default logger's active ring depth.
func QueueDepth() int {
	return defaultLogger.QueueDepth()
}

// Shutdown stops the default logger.
func Shutdown(ctx context.Context) error {
	return defaultLogger.Shutdown(ctx)
}

// ShutdownTimeout stops the default logger with a timeout.
func ShutdownTimeout(timeout time.Duration) error {
	return defaultLogger.ShutdownTimeout(timeout)
}
