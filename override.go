// FILE: override.go
package log

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string "key=value" overrides on top of a clone of
// the logger's current configuration and reconfigures it.
func (l *Logger) ApplyOverride(overrides ...string) error {
	cfg := l.GetConfig()

	var errs []error
	for _, o := range overrides {
		key, value, err := parseKeyValue(o)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}
	return l.ApplyConfig(cfg)
}

func combineConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var sb strings.Builder
	sb.WriteString("log: multiple configuration errors:")
	for i, err := range errs {
		msg := err.Error()
		if strings.HasPrefix(msg, "log: ") {
			msg = msg[len("log: "):]
		}
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, msg))
	}
	return fmt.Errorf("%s", sb.String())
}

func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "ring_capacity":
		return setIntField(&cfg.RingCapacity, key, value)
	case "overload_policy":
		cfg.OverloadPolicy = value
	case "level":
		cfg.Level = value
	case "enable_console":
		return setBoolField(&cfg.EnableConsole, key, value)
	case "console_target":
		cfg.ConsoleTarget = value
	case "enable_file":
		return setBoolField(&cfg.EnableFile, key, value)
	case "directory":
		cfg.Directory = value
	case "name":
		cfg.Name = value
	case "extension":
		cfg.Extension = value
	case "max_size_mb":
		return setIntField(&cfg.MaxSizeMB, key, value)
	case "max_backups":
		return setIntField(&cfg.MaxBackups, key, value)
	case "max_age_days":
		return setIntField(&cfg.MaxAgeDays, key, value)
	case "compress":
		return setBoolField(&cfg.Compress, key, value)
	case "min_disk_free_mb":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
		}
		cfg.MinDiskFreeMB = n
	case "enable_sql":
		return setBoolField(&cfg.EnableSQL, key, value)
	case "sql_path":
		cfg.SQLPath = value
	case "enable_signing":
		return setBoolField(&cfg.EnableSigning, key, value)
	case "enable_http":
		return setBoolField(&cfg.EnableHTTP, key, value)
	case "http_endpoint":
		cfg.HTTPEndpoint = value
	case "http_batch_size":
		return setIntField(&cfg.HTTPBatchSize, key, value)
	case "http_batch_interval_ms":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
		}
		cfg.HTTPBatchIntervalMs = n
	case "enable_metrics":
		return setBoolField(&cfg.EnableMetrics, key, value)
	case "metrics_addr":
		cfg.MetricsAddr = value
	case "format":
		cfg.Format = value
	case "legacy_formatter":
		return setBoolField(&cfg.LegacyFormatter, key, value)
	case "timestamp_format":
		cfg.TimestampFormat = value
	case "sanitization":
		cfg.Sanitization = value
	case "heartbeat_level":
		return setIntField(&cfg.HeartbeatLevel, key, value)
	case "heartbeat_interval_s":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
		}
		cfg.HeartbeatIntervalS = n
	case "internal_errors_to_stderr":
		return setBoolField(&cfg.InternalErrorsToStderr, key, value)
	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}
	return nil
}

func setIntField(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
	}
	*dst = n
	return nil
}

func setBoolField(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
	}
	*dst = b
	return nil
}
