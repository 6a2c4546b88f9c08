package model

import "time"

// Config is the full runtime configuration. Values resolve in the usual
// order: CLI flags, then TRIAGE_* environment variables, then the config
// file, then these defaults.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// ServerConfig controls the HTTP boundary.
type ServerConfig struct {
	Addr           string  `yaml:"addr" mapstructure:"addr"`
	StaticDir      string  `yaml:"static_dir" mapstructure:"static_dir"`
	MaxConnections int     `yaml:"max_connections" mapstructure:"max_connections"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	Burst          int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls response memoisation. The cache is process-local
// and TTL-bounded; nothing outlives the process.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// BatchConfig controls offline batch analysis.
type BatchConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":5000",
			MaxConnections: 256,
			RequestsPerSec: 20,
			Burst:          40,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Batch: BatchConfig{
			Workers: 8,
		},
		Output: OutputConfig{
			Verbose: false,
			Pretty:  true,
		},
	}
}
