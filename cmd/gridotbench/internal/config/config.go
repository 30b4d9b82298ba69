// Package config loads cmd/gridotbench's run settings: koanf defaults
// overridden by a GRIDOT_-prefixed environment provider, with a
// positional-argument fallback for the data directory.
package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the environment-variable prefix consulted for every config
// key, e.g. GRIDOT_DATA_DIR -> "data_dir".
const envPrefix = "GRIDOT_"

// ErrMissingDataDir indicates neither the environment nor a positional
// argument supplied a data directory; the caller reports this as exit
// code 1.
var ErrMissingDataDir = errors.New("config: data directory not set (GRIDOT_DATA_DIR or first argument)")

// Config holds everything cmd/gridotbench needs for one benchmark run.
type Config struct {
	// DataDir is the root directory whose subdirectories are DOTmark class
	// names.
	DataDir string `koanf:"data_dir"`
	// Runs is the repeat count per image pair, used to report a stabler
	// wall-clock mean.
	Runs int `koanf:"runs"`
	// Resolution restricts the run to one grid edge length; 0 means every
	// resolution present under DataDir.
	Resolution int `koanf:"resolution"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

func defaults() map[string]any {
	return map[string]any{
		"data_dir":          "",
		"runs":              5,
		"resolution":        0,
		"log_level":         "info",
		"metrics_namespace": "gridot",
	}
}

// Load builds a Config from defaults, the GRIDOT_ environment, and args (the
// program's positional arguments, i.e. os.Args[1:]).
//
// Precedence: GRIDOT_DATA_DIR, when set, wins over args[0] for the data
// directory, and the remaining positional arguments (runs, resolution)
// shift accordingly; with no environment override, the data directory
// itself is args[0].
func Load(args []string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}
	// Config keys are flat ("data_dir", not "data.dir"), so the transform
	// only lowercases and strips the prefix.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	dataArg := 0
	if cfg.DataDir == "" {
		if len(args) > 0 {
			cfg.DataDir = args[0]
			dataArg = 1
		} else {
			return nil, ErrMissingDataDir
		}
	}
	if len(args) > dataArg {
		if n, err := strconv.Atoi(args[dataArg]); err == nil {
			cfg.Runs = n
		}
	}
	if len(args) > dataArg+1 {
		if n, err := strconv.Atoi(args[dataArg+1]); err == nil {
			cfg.Resolution = n
		}
	}
	return &cfg, nil
}
