// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package batch

import (
	"fmt"
	"runtime"
	"time"
)

// Config holds tuning parameters for a Scanner.
type Config struct {
	// PoolSize is the number of documents scanned concurrently.
	// Default: runtime.NumCPU() / 2, with a minimum of 1
	PoolSize int

	// ReportInterval is the number of documents between progress reports.
	// Default: 100
	ReportInterval int

	// MaxRetries is the number of attempts made to persist a batch.
	// Default: 3
	MaxRetries int

	// RetryDelay is the delay before the first retry. It doubles on each retry.
	// Default: 100ms
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithConfigPoolSize sets the worker pool size.
func WithConfigPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithConfigReportInterval sets the progress report interval.
func WithConfigReportInterval(interval int) ConfigOption {
	return func(c *Config) {
		c.ReportInterval = interval
	}
}

// WithConfigRetry sets the persistence retry policy.
func WithConfigRetry(maxRetries int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config sized for the current machine.
func DefaultConfig() *Config {
	return &Config{
		PoolSize:       max(runtime.NumCPU()/2, 1),
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     100 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithConfigPoolSize(8),
//	    WithConfigRetry(5, time.Second),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: PoolSize must be at least 1", ErrInvalidConfig)
	}
	if c.ReportInterval < 1 {
		return fmt.Errorf("%w: ReportInterval must be at least 1", ErrInvalidConfig)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("%w: MaxRetries must be at least 1", ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: RetryDelay must not be negative", ErrInvalidConfig)
	}
	return nil
}
