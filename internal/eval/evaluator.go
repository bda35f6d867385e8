package eval

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/grou"
	apperrors "github.com/agbru/grou/internal/errors"
	"github.com/agbru/grou/internal/logging"
	"github.com/agbru/grou/internal/metrics"
)

var tracer = otel.Tracer("github.com/agbru/grou/internal/eval")

// Result is the outcome of one evaluation.
type Result struct {
	Expr string
	// Value is the arithmetic result; it is empty for comparisons.
	Value grou.Number
	// Sign is the comparison result (-1, 0, +1) for cmp and <=>. For
	// arithmetic it is 0 when Value is zero and +1 otherwise.
	Sign     int
	Duration time.Duration
}

// Evaluator evaluates expressions with a configured multiplication engine.
// It is safe for concurrent use.
type Evaluator struct {
	multiplier grou.Multiplier
	recorder   metrics.Recorder
	logger     logging.Logger
	timeout    time.Duration
	verify     bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRecorder sets the metrics recorder. The default discards observations.
func WithRecorder(r metrics.Recorder) Option { return func(e *Evaluator) { e.recorder = r } }

// WithLogger sets the logger used for debug records and failures.
func WithLogger(l logging.Logger) Option { return func(e *Evaluator) { e.logger = l } }

// WithTimeout bounds each evaluation. Zero means no bound beyond ctx.
func WithTimeout(d time.Duration) Option { return func(e *Evaluator) { e.timeout = d } }

// WithVerify makes every "*" evaluation cross-check its product.
func WithVerify(v bool) Option { return func(e *Evaluator) { e.verify = v } }

// New returns an Evaluator multiplying with m.
func New(m grou.Multiplier, opts ...Option) *Evaluator {
	e := &Evaluator{multiplier: m, recorder: metrics.Nop{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewDefaultLogger()
	}
	return e
}

// Multiplier returns the engine used for "*".
func (e *Evaluator) Multiplier() grou.Multiplier { return e.multiplier }

// Evaluate parses and evaluates text.
func (e *Evaluator) Evaluate(ctx context.Context, text string) (Result, error) {
	x, err := ParseExpression(text)
	if err != nil {
		return Result{}, err
	}
	return e.Apply(ctx, x)
}

// Apply evaluates an already parsed expression. No partial result is
// returned alongside an error.
func (e *Evaluator) Apply(ctx context.Context, x Expression) (res Result, err error) {
	limbs := max(x.LHS.Len(), x.RHS.Len())
	ctx, span := tracer.Start(ctx, "eval.Apply", trace.WithAttributes(
		attribute.String("grou.op", string(x.Op)),
		attribute.Int("grou.limbs", limbs),
	))
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		e.recorder.ObserveOperation(string(x.Op), limbs, elapsed, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			e.logger.Debug("evaluation failed", logging.String("expr", x.Text), logging.Err(err))
		} else {
			e.logger.Debug("evaluated",
				logging.String("expr", x.Text),
				logging.Int("limbs", res.Value.Len()),
				logging.Duration("elapsed", elapsed))
		}
		span.End()
	}()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	res, err = e.apply(ctx, x)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return Result{}, e.wrap(x, err)
	}
	res.Expr = x.Text
	res.Duration = time.Since(start)
	return res, nil
}

func (e *Evaluator) apply(ctx context.Context, x Expression) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	var (
		v   grou.Number
		err error
	)
	switch x.Op {
	case OpCmp, OpSpaceship:
		return Result{Sign: x.LHS.Cmp(x.RHS)}, nil
	case OpAdd:
		v = x.LHS.Add(x.RHS)
		v.Trim()
	case OpSub:
		v, err = x.LHS.Sub(x.RHS)
	case OpStraightMul:
		v = grou.StraightMul(x.LHS.SubsetAll(), x.RHS.SubsetAll())
	case OpMul:
		if e.verify {
			v, err = e.CrossCheck(ctx, x.LHS, x.RHS)
		} else {
			v, err = e.multiplier.Mul(ctx, x.LHS, x.RHS)
		}
	default:
		err = apperrors.ValidationError{Field: "operator", Message: "unknown operator " + string(x.Op)}
	}
	if err != nil {
		return Result{}, err
	}
	sign := 1
	if v.IsZero() {
		sign = 0
	}
	return Result{Value: v, Sign: sign}, nil
}

func (e *Evaluator) wrap(x Expression, err error) error {
	var mismatch apperrors.MismatchError
	switch {
	case errors.As(err, &mismatch):
		return err
	case errors.Is(err, context.DeadlineExceeded) && e.timeout > 0:
		return apperrors.EvaluationError{Expr: x.Text, Cause: apperrors.TimeoutError{Operation: string(x.Op), Limit: e.timeout}}
	}
	return apperrors.EvaluationError{Expr: x.Text, Cause: err}
}
