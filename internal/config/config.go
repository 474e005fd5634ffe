// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// JobQueueSize bounds the in-memory simulation job queue.
	JobQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of simulation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the request deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// StoreCapacity bounds how many match results are retained.
	StoreCapacity int `koanf:"store_capacity"`

	// MaxResultsLimit caps GET /matches?limit.
	MaxResultsLimit int `koanf:"max_results_limit"`

	// ParamsPath points to an optional YAML file overriding the
	// simulation probability tables.
	ParamsPath string `koanf:"params_path"`

	// TossBatBias is the probability that the toss winner elects to bat.
	TossBatBias float64 `koanf:"toss_bat_bias"`

	// Narrative toggles ball-by-ball commentary generation.
	Narrative bool `koanf:"narrative"`

	// Seed fixes the simulation RNG for reproducible runs. Zero means
	// time-seeded.
	Seed int64 `koanf:"seed"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		JobQueueSize:    10_000,
		WorkerCount:     runtime.NumCPU() * 4,
		DedupeSize:      100_000,
		StoreCapacity:   1024,
		MaxResultsLimit: 100,
		ParamsPath:      "",
		TossBatBias:     0.60,
		Narrative:       true,
		Seed:            0,
	}
	return c
}
