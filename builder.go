// FILE: builder.go
package log

// Builder provides a fluent configuration surface over Config, targeting
// this package's Engine-backed fields.
type Builder struct {
	cfg *Config
}

// NewBuilder starts from the package defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

func (b *Builder) RingCapacity(n int) *Builder {
	b.cfg.RingCapacity = n
	return b
}

func (b *Builder) OverloadPolicy(policy string) *Builder {
	b.cfg.OverloadPolicy = policy
	return b
}

func (b *Builder) Level(level string) *Builder {
	b.cfg.Level = level
	return b
}

func (b *Builder) Console(enabled bool, target string) *Builder {
	b.cfg.EnableConsole = enabled
	if target != "" {
		b.cfg.ConsoleTarget = target
	}
	return b
}

func (b *Builder) File(directory, name string) *Builder {
	b.cfg.EnableFile = true
	b.cfg.Directory = directory
	b.cfg.Name = name
	return b
}

func (b *Builder) Rotation(maxSizeMB, maxBackups, maxAgeDays int, compress bool) *Builder {
	b.cfg.MaxSizeMB = maxSizeMB
	b.cfg.MaxBackups = maxBackups
	b.cfg.MaxAgeDays = maxAgeDays
	b.cfg.Compress = compress
	return b
}

func (b *Builder) Signing(enabled bool) *Builder {
	b.cfg.EnableSigning = enabled
	return b
}

func (b *Builder) SQL(path string) *Builder {
	b.cfg.EnableSQL = true
	b.cfg.SQLPath = path
	return b
}

func (b *Builder) HTTP(endpoint string, batchSize int, batchIntervalMs int64) *Builder {
	b.cfg.EnableHTTP = true
	b.cfg.HTTPEndpoint = endpoint
	if batchSize > 0 {
		b.cfg.HTTPBatchSize = batchSize
	}
	if batchIntervalMs > 0 {
		b.cfg.HTTPBatchIntervalMs = batchIntervalMs
	}
	return b
}

func (b *Builder) Metrics(enabled bool, addr string) *Builder {
	b.cfg.EnableMetrics = enabled
	if addr != "" {
		b.cfg.MetricsAddr = addr
	}
	return b
}

func (b *Builder) Heartbeat(level int, intervalS int64) *Builder {
	b.cfg.HeartbeatLevel = level
	if intervalS > 0 {
		b.cfg.HeartbeatIntervalS = intervalS
	}
	return b
}

func (b *Builder) Sanitization(preset string) *Builder {
	b.cfg.Sanitization = preset
	return b
}

func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

func (b *Builder) LegacyFormatter(enabled bool) *Builder {
	b.cfg.LegacyFormatter = enabled
	return b
}

// Config returns the configuration accumulated so far, without building a
// Logger. Useful for tests that want to inspect or further mutate it.
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Build validates the accumulated configuration and returns a started
// Logger.
func (b *Builder) Build() (*Logger, error) {
	l := NewLogger()
	if err := l.Init(b.cfg); err != nil {
		return nil, err
	}
	return l, nil
}
