// FILE: config.go
package log

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
)

// Config holds every knob needed to build an Engine and its sink list.
// ArgCap is deliberately absent: it is a compile-time constant, not a
// runtime setting, per SPEC_FULL.md's AMBIENT STACK note.
type Config struct {
	// Core engine knobs
	RingCapacity   int    `toml:"ring_capacity"`
	OverloadPolicy string `toml:"overload_policy"` // "drop" or "spin_retry"
	Level          string `toml:"level"`           // minimum level dispatched

	// Console sink
	EnableConsole bool   `toml:"enable_console"`
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"

	// File sink (lumberjack-backed)
	EnableFile    bool   `toml:"enable_file"`
	Directory     string `toml:"directory"`
	Name          string `toml:"name"`
	Extension     string `toml:"extension"`
	MaxSizeMB     int    `toml:"max_size_mb"`
	MaxBackups    int    `toml:"max_backups"`
	MaxAgeDays    int    `toml:"max_age_days"`
	Compress      bool   `toml:"compress"`
	MinDiskFreeMB int64  `toml:"min_disk_free_mb"`

	// SQLite durable sink
	EnableSQL bool   `toml:"enable_sql"`
	SQLPath   string `toml:"sql_path"`

	// Tamper-evident hash-chain wrapper, applied around the file sink
	EnableSigning bool `toml:"enable_signing"`

	// Batched HTTP collector sink
	EnableHTTP          bool   `toml:"enable_http"`
	HTTPEndpoint        string `toml:"http_endpoint"`
	HTTPBatchSize       int    `toml:"http_batch_size"`
	HTTPBatchIntervalMs int64  `toml:"http_batch_interval_ms"`

	// Prometheus metrics
	EnableMetrics bool   `toml:"enable_metrics"`
	MetricsAddr   string `toml:"metrics_addr"`

	// Rendering
	Format          string `toml:"format"` // "text" or "json"
	TimestampFormat string `toml:"timestamp_format"`
	Sanitization    string `toml:"sanitization"` // "raw", "txt", "json", or "shell"

	// LegacyFormatter switches rendering from the engine's own inline
	// text/JSON writer to the formatter package's flag-driven renderer,
	// for deployments that want its quoting/structured-field behavior.
	LegacyFormatter bool `toml:"legacy_formatter"`

	// Diagnostics
	HeartbeatLevel         int   `toml:"heartbeat_level"` // 0=off, 1=proc, 2=+disk, 3=+sys
	HeartbeatIntervalS     int64 `toml:"heartbeat_interval_s"`
	InternalErrorsToStderr bool  `toml:"internal_errors_to_stderr"`
}

var defaultConfig = Config{
	RingCapacity:   DefaultRingCapacity,
	OverloadPolicy: "drop",
	Level:          "info",

	EnableConsole: true,
	ConsoleTarget: "stdout",

	EnableFile: false,
	Directory:  "./logs",
	Name:       "app",
	Extension:  "log",
	MaxSizeMB:  10,
	MaxBackups: 5,
	MaxAgeDays: 0,
	Compress:   false,

	MinDiskFreeMB: 100,

	EnableSQL: false,
	SQLPath:   "./logs/app.sqlite",

	EnableSigning: false,

	EnableHTTP:          false,
	HTTPBatchSize:       64,
	HTTPBatchIntervalMs: 1000,

	EnableMetrics: false,
	MetricsAddr:   ":9090",

	Format:          "text",
	TimestampFormat: time.RFC3339Nano,
	Sanitization:    "txt",

	HeartbeatLevel:     0,
	HeartbeatIntervalS: 60,

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the package's default configuration.
func DefaultConfig() *Config {
	cfg := defaultConfig
	return &cfg
}

// Clone returns a deep copy (Config has no reference fields that need
// more than a shallow struct copy).
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// NewConfigFromFile loads configuration from a TOML file under the given
// base path, layering it over the package defaults.
func NewConfigFromFile(path, basePath string) (*Config, error) {
	cfg := DefaultConfig()

	// Config paths are dotted ("base.level"), so the prefix needs a
	// trailing dot to line up with the TOML table keys.
	prefix := basePath
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}

	loader := config.New()
	if err := loader.RegisterStruct(prefix, *cfg); err != nil {
		return nil, fmt.Errorf("log: failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("log: failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, prefix, cfg); err != nil {
		return nil, fmt.Errorf("log: failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}
		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}
		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(s)
	case reflect.Int, reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind: %v", field.Kind())
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmtErrorf("name cannot be empty")
	}
	if c.OverloadPolicy != "drop" && c.OverloadPolicy != "spin_retry" {
		return fmtErrorf("invalid overload_policy: '%s' (use drop or spin_retry)", c.OverloadPolicy)
	}
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	if c.RingCapacity <= 0 || c.RingCapacity&(c.RingCapacity-1) != 0 {
		return fmtErrorf("ring_capacity must be a power of two: %d", c.RingCapacity)
	}
	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}
	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}
	if c.Format != "text" && c.Format != "json" {
		return fmtErrorf("invalid format: '%s' (use text or json)", c.Format)
	}
	switch c.Sanitization {
	case "raw", "txt", "json", "shell":
	default:
		return fmtErrorf("invalid sanitization preset: '%s'", c.Sanitization)
	}
	if c.HeartbeatLevel < 0 || c.HeartbeatLevel > 3 {
		return fmtErrorf("heartbeat_level must be between 0 and 3: %d", c.HeartbeatLevel)
	}
	if c.HeartbeatLevel > 0 && c.HeartbeatIntervalS <= 0 {
		return fmtErrorf("heartbeat_interval_s must be positive when heartbeat is enabled")
	}
	if c.EnableFile && strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty when file sink is enabled")
	}
	if c.EnableHTTP && strings.TrimSpace(c.HTTPEndpoint) == "" {
		return fmtErrorf("http_endpoint cannot be empty when http sink is enabled")
	}
	return nil
}
