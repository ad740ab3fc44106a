// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/gomlx/ndarray/internal/workerspool"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// NDARRAY_CONFIG is the environment variable with the default configuration of the package.
//
// See ParseConfig for its format.
const NDARRAY_CONFIG = "NDARRAY_CONFIG"

// DefaultConfig is the configuration used if NDARRAY_CONFIG is not set.
//
// It must be set before the first operation is executed, see SetConfig to change the
// configuration afterward.
var DefaultConfig string

// DefaultMinParallelSize is the default value of Config.MinParallelSize.
const DefaultMinParallelSize = 4096

// Config controls how operations are executed.
type Config struct {
	// MaxParallelism is the maximum number of goroutines used by one operation.
	// If 0 or 1 operations run sequentially in the calling goroutine. If -1 parallelism is unlimited.
	MaxParallelism int

	// MinParallelSize is the minimum number of elements (or matrix rows, for MatMul) each goroutine
	// works on. Smaller operations are executed sequentially.
	MinParallelSize int
}

// DefaultSettings returns the built-in configuration: parallelism of runtime.NumCPU() and a
// minimum chunk size of DefaultMinParallelSize.
func DefaultSettings() Config {
	return Config{
		MaxParallelism:  runtime.NumCPU(),
		MinParallelSize: DefaultMinParallelSize,
	}
}

// ParseConfig parses a configuration formatted as a comma-separated list of "key=value"
// settings. Settings not given take the values of DefaultSettings.
//
// Keys:
//
//   - "parallelism": Config.MaxParallelism, an int >= -1.
//   - "min_parallel_size": Config.MinParallelSize, an int >= 1.
//
// Unknown keys are logged and ignored. Example: "parallelism=4,min_parallel_size=1024".
func ParseConfig(config string) (Config, error) {
	cfg := DefaultSettings()
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, valueStr, found := strings.Cut(part, "=")
		if !found {
			return Config{}, errors.Errorf("invalid ndarray configuration %q: setting %q is not in the form key=value", config, part)
		}
		key = strings.TrimSpace(key)
		value, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid ndarray configuration %q: failed to parse value of %q", config, key)
		}
		switch key {
		case "parallelism":
			if value < -1 {
				return Config{}, errors.Errorf("invalid ndarray configuration %q: parallelism must be >= -1, got %d", config, value)
			}
			cfg.MaxParallelism = value
		case "min_parallel_size":
			if value < 1 {
				return Config{}, errors.Errorf("invalid ndarray configuration %q: min_parallel_size must be >= 1, got %d", config, value)
			}
			cfg.MinParallelSize = value
		default:
			klog.Warningf("ndarray configuration %q: ignoring unknown setting %q", config, key)
		}
	}
	return cfg, nil
}

// engine holds the configuration and the worker pool shared by all operations.
var engine struct {
	once   sync.Once
	mu     sync.RWMutex
	config Config
	pool   *workerspool.Pool
}

// loadConfig sets the initial configuration. The order of precedence is:
//
//  1. The environment variable NDARRAY_CONFIG, if defined.
//  2. The variable DefaultConfig, if set.
//  3. DefaultSettings.
//
// Invalid configurations are logged and the built-in settings are used instead.
func loadConfig() {
	config, found := os.LookupEnv(NDARRAY_CONFIG)
	if !found {
		config = DefaultConfig
	}
	cfg, err := ParseConfig(config)
	if err != nil {
		klog.Errorf("ndarray: %+v", err)
		cfg = DefaultSettings()
	}
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.config = cfg
	engine.pool = workerspool.NewWithParallelism(cfg.MaxParallelism)
}

// SetConfig changes the configuration used by operations started afterward.
// Operations already running finish with the previous configuration.
func SetConfig(cfg Config) {
	engine.once.Do(loadConfig)
	cfg.MinParallelSize = max(cfg.MinParallelSize, 1)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.config = cfg
	engine.pool = workerspool.NewWithParallelism(cfg.MaxParallelism)
	klog.V(1).Infof("ndarray: configuration set to %+v", cfg)
}

// CurrentConfig returns the configuration in use.
func CurrentConfig() Config {
	engine.once.Do(loadConfig)
	engine.mu.RLock()
	defer engine.mu.RUnlock()
	return engine.config
}

// parallelFor runs fn over chunks of [0, n) using the shared worker pool, see workerspool.Pool.ParallelFor.
func parallelFor(n int, fn func(start, end int)) {
	engine.once.Do(loadConfig)
	engine.mu.RLock()
	pool, minSize := engine.pool, engine.config.MinParallelSize
	engine.mu.RUnlock()
	pool.ParallelFor(n, minSize, fn)
}
