package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/grou"
	"github.com/agbru/grou/internal/eval"
	"github.com/agbru/grou/internal/metrics"
	"github.com/agbru/grou/internal/sysmon"
	"github.com/agbru/grou/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Multiplier is the initial engine; the threshold command changes it.
	Multiplier grou.Multiplier
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// Verify cross-checks every product.
	Verify bool
	// Verbose prints limb lists without truncation.
	Verbose bool
	// Spinner shows a spinner during evaluations slower than SpinnerDelay.
	Spinner bool
	// EvalOptions are applied to every evaluator the session builds.
	EvalOptions []eval.Option
	// Memory feeds the status command. Nil hides memory statistics.
	Memory *metrics.MemoryCollector
	// System samples machine-wide usage for the status command. Nil hides it.
	System func() sysmon.Stats
}

// REPL is an interactive evaluation session.
type REPL struct {
	config    REPLConfig
	evaluator *eval.Evaluator
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a new REPL reading stdin and writing stdout.
func NewREPL(config REPLConfig) *REPL {
	r := &REPL{config: config, in: os.Stdin, out: os.Stdout}
	r.rebuild()
	return r
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// rebuild recreates the evaluator after a configuration change.
func (r *REPL) rebuild() {
	opts := slices.Clone(r.config.EvalOptions)
	opts = append(opts, eval.WithTimeout(r.config.Timeout), eval.WithVerify(r.config.Verify))
	r.evaluator = eval.New(r.config.Multiplier, opts...)
}

// Start runs the session until exit, EOF or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, ui.Warning("\nInterrupted."))
			return
		}
		fmt.Fprint(r.out, ui.Primary("grou> "))

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			r.printError(fmt.Errorf("read error: %w", err))
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(ctx, line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintln(r.out, ui.Primary("grou - arbitrary-precision limb arithmetic"))
}

var replCommands = []struct{ usage, desc string }{
	{"parse <n>", "Show the limbs of a literal (decimal, 0x, 0b)"},
	{"split2 <n>, split3 <n>", "Split into two or three views"},
	{"blocks <n> <length>", "Iterate fixed-length blocks"},
	{"threshold [parallel] [n]", "Show or set the Karatsuba or parallel threshold"},
	{"verify [on|off|<a> <b>]", "Toggle cross-checking, or cross-check a * b"},
	{"status", "Display configuration and memory usage"},
	{"help", "Display this help"},
	{"exit", "Exit interactive mode"},
}

func (r *REPL) printHelp() {
	ops := make([]string, len(eval.Ops))
	for i, op := range eval.Ops {
		ops[i] = string(op)
	}
	const width = 24
	fmt.Fprintln(r.out, ui.Heading("Available commands:"))
	fmt.Fprintf(r.out, "  %s - Evaluate, op one of %s\n", ui.Warning(padRight("<a> <op> <b>", width)), strings.Join(ops, " "))
	for _, c := range replCommands {
		fmt.Fprintf(r.out, "  %s - %s\n", ui.Warning(padRight(c.usage, width)), c.desc)
	}
}

// processCommand executes one input line. It returns false if the REPL
// should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "parse", "p":
		r.cmdParse(args)
	case "split2":
		r.cmdSplit(args, 2)
	case "split3":
		r.cmdSplit(args, 3)
	case "blocks":
		r.cmdBlocks(args)
	case "threshold", "th":
		r.cmdThreshold(args)
	case "verify":
		r.cmdVerify(ctx, args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, ui.Success("Goodbye!"))
		return false
	default:
		r.evaluate(ctx, input)
	}
	return true
}

func (r *REPL) evaluate(ctx context.Context, input string) {
	x, err := eval.ParseExpression(input)
	if err != nil {
		r.printError(err)
		fmt.Fprintf(r.out, "Type %s to see available commands.\n", ui.Warning("help"))
		return
	}

	var res eval.Result
	run := func() error {
		var err error
		res, err = r.evaluator.Apply(ctx, x)
		return err
	}
	if r.config.Spinner {
		err = withSpinner(r.out, SpinnerDelay, " evaluating "+string(x.Op), run)
	} else {
		err = run()
	}
	if err != nil {
		r.printError(err)
		return
	}
	DisplayResult(r.out, x, res, r.config.Verbose)
}

func (r *REPL) parseArg(args []string, usage string) (grou.Number, bool) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, ui.Error("Usage: "+usage))
		return grou.Number{}, false
	}
	n, err := grou.Parse(args[0])
	if err != nil {
		r.printError(err)
		return grou.Number{}, false
	}
	return n, true
}

func (r *REPL) cmdParse(args []string) {
	n, ok := r.parseArg(args, "parse <n>")
	if !ok {
		return
	}
	DisplayNumber(r.out, "value", n.Limbs(), r.config.Verbose)
}

func (r *REPL) cmdSplit(args []string, parts int) {
	n, ok := r.parseArg(args, fmt.Sprintf("split%d <n>", parts))
	if !ok {
		return
	}
	if parts == 2 {
		low, high := n.Split2()
		DisplayNumber(r.out, "low", low.Limbs(), r.config.Verbose)
		DisplayNumber(r.out, "high", high.Limbs(), r.config.Verbose)
		return
	}
	low, mid, high := n.Split3()
	DisplayNumber(r.out, "low", low.Limbs(), r.config.Verbose)
	DisplayNumber(r.out, "mid", mid.Limbs(), r.config.Verbose)
	DisplayNumber(r.out, "high", high.Limbs(), r.config.Verbose)
}

func (r *REPL) cmdBlocks(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, ui.Error("Usage: blocks <n> <length>"))
		return
	}
	n, ok := r.parseArg(args, "blocks <n> <length>")
	if !ok {
		return
	}
	length, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(r.out, ui.Error("Invalid length: "+args[1]))
		return
	}
	i := 0
	for v := range n.Blocks(length) {
		DisplayNumber(r.out, "#"+strconv.Itoa(i), v.Limbs(), r.config.Verbose)
		i++
	}
	if i == 0 {
		fmt.Fprintln(r.out, ui.Warning("no blocks"))
	}
}

func (r *REPL) cmdThreshold(args []string) {
	m := &r.config.Multiplier
	target, name := &m.KaratsubaThreshold, "Karatsuba"
	if len(args) > 0 && strings.EqualFold(args[0], "parallel") {
		target, name = &m.ParallelThreshold, "parallel"
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Thresholds: Karatsuba=%s limbs, parallel=%s limbs\n",
			ui.Info(strconv.Itoa(m.KaratsubaThreshold)), ui.Info(strconv.Itoa(m.ParallelThreshold)))
		return
	}
	v, err := strconv.Atoi(args[0])
	if err != nil || v < 0 {
		fmt.Fprintln(r.out, ui.Error("Invalid threshold: "+args[0]))
		return
	}
	*target = v
	r.rebuild()
	fmt.Fprintf(r.out, "%s threshold set to %s limbs\n", name, ui.Success(strconv.Itoa(v)))
}

func (r *REPL) cmdVerify(ctx context.Context, args []string) {
	switch len(args) {
	case 0:
		r.config.Verify = !r.config.Verify
	case 1:
		switch strings.ToLower(args[0]) {
		case "on":
			r.config.Verify = true
		case "off":
			r.config.Verify = false
		default:
			fmt.Fprintln(r.out, ui.Error("Usage: verify [on|off|<a> <b>]"))
			return
		}
	case 2:
		a, okA := r.parseArg(args[:1], "verify <a> <b>")
		b, okB := r.parseArg(args[1:], "verify <a> <b>")
		if !okA || !okB {
			return
		}
		results, err := r.evaluator.RunStrategies(ctx, a, b)
		if err != nil {
			r.printError(err)
			return
		}
		if PresentStrategies(r.out, results) {
			DisplayNumber(r.out, "product", results[0].Product.Limbs(), r.config.Verbose)
		}
		return
	default:
		fmt.Fprintln(r.out, ui.Error("Usage: verify [on|off|<a> <b>]"))
		return
	}
	r.rebuild()
	fmt.Fprintf(r.out, "Cross-check: %s\n", ui.Success(onOff(r.config.Verify)))
}

func (r *REPL) cmdStatus() {
	m := r.config.Multiplier
	fmt.Fprintln(r.out, ui.Heading("Current configuration:"))
	fmt.Fprintf(r.out, "  Karatsuba threshold: %s limbs\n", ui.Info(strconv.Itoa(m.KaratsubaThreshold)))
	fmt.Fprintf(r.out, "  Parallel threshold:  %s limbs\n", ui.Info(strconv.Itoa(m.ParallelThreshold)))
	fmt.Fprintf(r.out, "  Max goroutines:      %s\n", ui.Info(strconv.Itoa(m.MaxGoroutines)))
	fmt.Fprintf(r.out, "  Timeout:             %s\n", ui.Info(r.config.Timeout.String()))
	fmt.Fprintf(r.out, "  Cross-check:         %s\n", ui.Info(onOff(r.config.Verify)))
	if r.config.Memory != nil {
		fmt.Fprintln(r.out, ui.Heading("Memory:"))
		DisplayMemoryStats(r.out, r.config.Memory.Snapshot())
	}
	if r.config.System != nil {
		DisplaySystemStats(r.out, r.config.System())
	}
}

func (r *REPL) printError(err error) {
	fmt.Fprintln(r.out, ui.Error("Error: "+err.Error()))
}
