// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// envOverride maps an env key (without the GROU_ prefix) to the CLI flag it
// shadows and a function that applies the env value.
type envOverride struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string)
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	{"THRESHOLD", "threshold", intOverride(func(c *AppConfig) *int { return &c.Threshold })},
	{"PARALLEL_THRESHOLD", "parallel-threshold", intOverride(func(c *AppConfig) *int { return &c.ParallelThreshold })},
	{"MAX_GOROUTINES", "max-goroutines", intOverride(func(c *AppConfig) *int { return &c.MaxGoroutines })},

	{"TIMEOUT", "timeout", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"EXPR", "expr", func(c *AppConfig, v string) { c.Expr = v }},
	{"METRICS_ADDR", "metrics-addr", func(c *AppConfig, v string) { c.MetricsAddr = v }},
	{"CALIBRATION_PROFILE", "calibration-profile", func(c *AppConfig, v string) { c.CalibrationProfile = v }},

	{"VERIFY", "verify", boolOverride(func(c *AppConfig) *bool { return &c.Verify })},
	{"VERBOSE", "v", boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", "quiet", boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", "no-color", boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
	{"LOG_JSON", "log-json", boolOverride(func(c *AppConfig) *bool { return &c.LogJSON })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with GROU_):
//   - EXPR, THRESHOLD, PARALLEL_THRESHOLD, MAX_GOROUTINES, TIMEOUT,
//     METRICS_ADDR, CALIBRATION_PROFILE, VERIFY, VERBOSE, QUIET, NO_COLOR,
//     LOG_JSON
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSet(fs, o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
