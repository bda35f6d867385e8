// Package config defines the application configuration, parses it from the
// command line and environment, and fills in hardware-derived defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/grou/internal/errors"
)

// EnvPrefix is prepended to every environment variable the configuration reads.
const EnvPrefix = "GROU_"

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 5 * time.Minute

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Expr is a single expression to evaluate, e.g. "0xff * 12345".
	Expr string
	// REPL starts the interactive loop.
	REPL bool
	// Threshold is the Karatsuba recursion threshold in limbs. Zero means
	// "resolve from profile or hardware".
	Threshold int
	// ParallelThreshold is the operand size in limbs above which Karatsuba
	// sub-products run concurrently. Zero means "resolve"; ParallelOff keeps
	// every multiplication sequential.
	ParallelThreshold int
	// MaxGoroutines caps helper goroutines per multiplication; zero uses GOMAXPROCS.
	MaxGoroutines int
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// Verify cross-checks every product against the other strategies.
	Verify bool
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string
	// Calibrate runs threshold calibration and exits.
	Calibrate bool
	// CalibrationProfile is the path of the cached calibration profile.
	CalibrationProfile string
	Verbose            bool
	Quiet              bool
	NoColor            bool
	LogJSON            bool
}

// ParseConfig parses args into an AppConfig, applies GROU_ environment
// overrides for flags not given on the command line, and validates the result.
// Usage and parse errors are written to errWriter.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var cfg AppConfig
	fs.StringVar(&cfg.Expr, "expr", "", "Evaluate a single expression, e.g. \"0xff * 123\".")
	fs.BoolVar(&cfg.REPL, "repl", false, "Start the interactive evaluator.")
	fs.IntVar(&cfg.Threshold, "threshold", 0, "Karatsuba recursion threshold in limbs (0 = auto).")
	fs.IntVar(&cfg.ParallelThreshold, "parallel-threshold", 0, "Operand size in limbs above which sub-products run in parallel (0 = auto, -1 = off).")
	fs.IntVar(&cfg.MaxGoroutines, "max-goroutines", 0, "Helper goroutines per multiplication (0 = GOMAXPROCS).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of one evaluation.")
	fs.BoolVar(&cfg.Verify, "verify", false, "Cross-check products with straight, Karatsuba and parallel multiplication.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Measure the fastest Karatsuba threshold and save it.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile (default ~/.grou_calibration.json).")
	fs.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print results only.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.LogJSON, "log-json", false, "Emit logs as JSON.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments %q; quote the expression and pass it with -expr", fs.Args())
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no mode can work with.
func (c AppConfig) Validate() error {
	switch {
	case c.Threshold < 0:
		return apperrors.ValidationError{Field: "threshold", Message: "must be non-negative"}
	case c.ParallelThreshold < ParallelOff:
		return apperrors.ValidationError{Field: "parallel-threshold", Message: "must be -1 (off) or non-negative"}
	case c.MaxGoroutines < 0:
		return apperrors.ValidationError{Field: "max-goroutines", Message: "must be non-negative"}
	case c.Timeout <= 0:
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	case c.Verbose && c.Quiet:
		return apperrors.NewConfigError("-v and -quiet are mutually exclusive")
	}
	return nil
}
