package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agbru/grou/internal/calibration"
	"github.com/agbru/grou/internal/cli"
	"github.com/agbru/grou/internal/config"
	apperrors "github.com/agbru/grou/internal/errors"
	"github.com/agbru/grou/internal/eval"
	"github.com/agbru/grou/internal/logging"
	"github.com/agbru/grou/internal/metrics"
	"github.com/agbru/grou/internal/sysmon"
	"github.com/agbru/grou/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// Application represents the grou application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In is the REPL input. It defaults to os.Stdin.
	In io.Reader

	logger   logging.Logger
	memory   *metrics.MemoryCollector
	recorder metrics.Recorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the REPL input.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// New creates a new Application by parsing command-line arguments. Thresholds
// left unset are resolved from the cached calibration profile, or else from
// the hardware.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "grou"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, calibration.ProfilePath(cfg)); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	app.Config = cfg
	if app.logger == nil {
		app.logger = newLogger(cfg, errWriter)
	}
	app.memory = metrics.NewMemoryCollector()
	app.recorder = metrics.Nop{}
	return app, nil
}

func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	var l *logging.ZerologAdapter
	if cfg.LogJSON {
		l = logging.NewLogger(w, "grou")
	} else {
		l = logging.NewConsoleLogger(w, "grou", cfg.Verbose)
	}
	switch {
	case cfg.Verbose:
		l = l.WithLevel(zerolog.DebugLevel)
	case cfg.Quiet:
		l = l.WithLevel(zerolog.ErrorLevel)
	}
	return l
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	a.logger.Debug("configuration",
		logging.Int("karatsuba_threshold", a.Config.Threshold),
		logging.Int("parallel_threshold", a.Config.ParallelThreshold),
		logging.Int("max_goroutines", a.Config.MaxGoroutines),
		logging.Duration("timeout", a.Config.Timeout))

	if a.Config.MetricsAddr != "" {
		stop, err := a.startMetrics()
		if err != nil {
			a.logger.Error("metrics server failed to start", err, logging.String("addr", a.Config.MetricsAddr))
			return apperrors.ExitErrorConfig
		}
		defer stop()
	}

	switch {
	case a.Config.Calibrate:
		return a.runCalibration(ctx, out)
	case a.Config.Expr != "":
		return a.runExpr(ctx, out)
	default:
		return a.runREPL(ctx, out)
	}
}

// startMetrics serves Prometheus metrics and returns a function stopping the
// server.
func (a *Application) startMetrics() (func(), error) {
	p := metrics.NewPrometheus(a.memory)
	srv := metrics.NewServer(a.Config.MetricsAddr, p, a.logger)
	if _, err := srv.Start(); err != nil {
		return nil, err
	}
	a.recorder = p
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			a.logger.Error("metrics server shutdown", err)
		}
	}, nil
}

func (a *Application) newEvaluator() *eval.Evaluator {
	return eval.New(a.Config.Multiplier(), a.evalOptions()...)
}

func (a *Application) evalOptions() []eval.Option {
	return []eval.Option{
		eval.WithRecorder(a.recorder),
		eval.WithLogger(a.logger),
		eval.WithTimeout(a.Config.Timeout),
		eval.WithVerify(a.Config.Verify),
	}
}

// runCalibration measures the thresholds, saves the profile and prints the
// thresholds adopted.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	profile, err := calibration.RunCalibration(ctx, out, a.Config, calibration.Options{}, a.logger)
	if err != nil {
		return a.fail("calibration failed", err)
	}
	path := calibration.ProfilePath(a.Config)
	if err := profile.SaveProfile(path); err != nil {
		a.logger.Error("could not save calibration profile", err, logging.String("path", path))
	} else {
		a.logger.Info("calibration profile saved", logging.String("path", path))
	}
	a.Config = calibration.ApplyProfile(a.Config, profile)
	fmt.Fprintln(out)
	calibration.PrintSummary(out, a.Config)
	return apperrors.ExitSuccess
}

// runExpr evaluates the -expr expression once.
func (a *Application) runExpr(ctx context.Context, out io.Writer) int {
	x, err := eval.ParseExpression(a.Config.Expr)
	if err != nil {
		return a.fail("invalid expression", err)
	}
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		fmt.Fprintln(out)
	}

	e := a.newEvaluator()
	var res eval.Result
	run := func() error {
		var err error
		res, err = e.Apply(ctx, x)
		return err
	}
	if !a.Config.Quiet && isTerminal(out) {
		err = cli.RunWithSpinner(out, " evaluating "+string(x.Op), run)
	} else {
		err = run()
	}
	if err != nil {
		return a.fail("evaluation failed", err)
	}

	a.logger.Info("evaluated",
		logging.String("op", string(x.Op)),
		logging.Int("limbs", res.Value.Len()),
		logging.Duration("elapsed", res.Duration))
	if a.Config.Quiet {
		cli.DisplayQuietResult(out, x, res)
	} else {
		cli.DisplayResult(out, x, res, a.Config.Verbose)
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{
		Multiplier:  a.Config.Multiplier(),
		Timeout:     a.Config.Timeout,
		Verify:      a.Config.Verify,
		Verbose:     a.Config.Verbose,
		Spinner:     isTerminal(out),
		EvalOptions: []eval.Option{eval.WithRecorder(a.recorder), eval.WithLogger(a.logger)},
		Memory:      a.memory,
		System:      sysmon.Sample,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// fail reports err on the error writer and maps it to an exit code.
func (a *Application) fail(msg string, err error) int {
	a.logger.Debug(msg, logging.Err(err))
	fmt.Fprintln(a.ErrWriter, ui.Error("Error: "+err.Error()))
	return apperrors.ExitCode(err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// IsHelpError checks if the error is a help flag error (-h or -help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
