package eval

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/grou"
	apperrors "github.com/agbru/grou/internal/errors"
	"github.com/agbru/grou/internal/logging"
)

// Strategy names used by CrossCheck.
const (
	StrategyStraight  = "straight"
	StrategyKaratsuba = "karatsuba"
	StrategyParallel  = "parallel"
)

// StrategyResult is the outcome of one multiplication strategy.
type StrategyResult struct {
	Name     string
	Product  grou.Number
	Duration time.Duration
}

// RunStrategies multiplies a and b with schoolbook, sequential Karatsuba and
// parallel Karatsuba concurrently and returns their products in that order.
// The parallel strategy uses the evaluator's thresholds but always forks at
// the top level so the concurrent path is exercised whatever the operand size.
func (e *Evaluator) RunStrategies(ctx context.Context, a, b grou.Number) ([]StrategyResult, error) {
	parallel := e.multiplier
	parallel.ParallelThreshold = 1

	type strategy struct {
		name string
		mul  func(context.Context) (grou.Number, error)
	}
	strategies := []strategy{
		{StrategyStraight, func(context.Context) (grou.Number, error) {
			return grou.StraightMul(a.SubsetAll(), b.SubsetAll()), nil
		}},
		{StrategyKaratsuba, func(ctx context.Context) (grou.Number, error) {
			seq := e.multiplier
			seq.ParallelThreshold = 0
			return seq.Mul(ctx, a, b)
		}},
		{StrategyParallel, func(ctx context.Context) (grou.Number, error) {
			return parallel.Mul(ctx, a, b)
		}},
	}

	results := make([]StrategyResult, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		g.Go(func() error {
			start := time.Now()
			p, err := s.mul(gctx)
			if err != nil {
				return err
			}
			results[i] = StrategyResult{Name: s.name, Product: p, Duration: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CrossCheck multiplies a and b with every strategy and returns the product
// when all of them agree. A disagreement yields an apperrors.MismatchError
// naming the strategies that differ from schoolbook multiplication.
func (e *Evaluator) CrossCheck(ctx context.Context, a, b grou.Number) (grou.Number, error) {
	ctx, span := tracer.Start(ctx, "eval.CrossCheck", trace.WithAttributes(
		attribute.Int("grou.lhs_limbs", a.Len()),
		attribute.Int("grou.rhs_limbs", b.Len()),
	))
	defer span.End()

	results, err := e.RunStrategies(ctx, a, b)
	if err != nil {
		span.RecordError(err)
		return grou.Number{}, err
	}

	ref := results[0]
	var differing []string
	for _, r := range results[1:] {
		if !r.Product.Equal(ref.Product) {
			differing = append(differing, r.Name)
		}
	}
	e.recorder.ObserveCrossCheck(len(differing) == 0)
	if len(differing) > 0 {
		err := apperrors.MismatchError{Reference: ref.Name, Strategies: differing}
		e.logger.Error("multiplication strategies disagree", err,
			logging.Int("lhs_limbs", a.Len()), logging.Int("rhs_limbs", b.Len()))
		span.RecordError(err)
		return grou.Number{}, err
	}
	return ref.Product, nil
}
