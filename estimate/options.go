package estimate

import "go.uber.org/zap"

// Config holds optional pipeline settings.
type Config struct {
	// Logger receives progress records. Defaults to a no-op logger.
	Logger *zap.Logger
	// BandpowerPath, when non-empty, receives the expanded bandpower table.
	BandpowerPath string
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a config with a no-op logger and no bandpower dump.
func DefaultConfig() Config {
	return Config{Logger: zap.NewNop()}
}

// WithLogger sets the progress logger.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithBandpowerDump writes the expanded bandpower table to path whenever
// bins are built.
func WithBandpowerDump(path string) Option {
	return func(cfg *Config) {
		cfg.BandpowerPath = path
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
