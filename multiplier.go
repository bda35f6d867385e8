package grou

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultParallelThreshold is the operand length, in limbs, above which a
// Multiplier computes the three Karatsuba sub-products concurrently.
const DefaultParallelThreshold = 256

var tracer = otel.Tracer("github.com/agbru/grou")

// Multiplier is a configurable Karatsuba engine. The zero value multiplies
// sequentially with DefaultKaratsubaThreshold. Results are identical to
// KaratsubaMul and StraightMul whatever the configuration.
type Multiplier struct {
	// KaratsubaThreshold is the operand length, in limbs, at or below which
	// schoolbook multiplication is used. Zero selects the default.
	KaratsubaThreshold int
	// ParallelThreshold is the operand length, in limbs, above which the
	// sub-products run on separate goroutines. Zero disables parallelism.
	ParallelThreshold int
	// MaxGoroutines bounds the helper goroutines of a single Mul call.
	// Zero selects runtime.GOMAXPROCS(0).
	MaxGoroutines int
}

func (m Multiplier) karatsubaThreshold() int {
	if m.KaratsubaThreshold <= 0 {
		return DefaultKaratsubaThreshold
	}
	return m.KaratsubaThreshold
}

func (m Multiplier) maxGoroutines() int {
	if m.MaxGoroutines <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return m.MaxGoroutines
}

func (m Multiplier) parallel(x, y []Limb) bool {
	return m.ParallelThreshold > 0 && max(len(x), len(y)) > m.ParallelThreshold
}

// Mul returns a · b, trimmed. Cancellation of ctx is observed before every
// Karatsuba split, sequential or parallel; on cancellation no partial product
// is returned.
func (m Multiplier) Mul(ctx context.Context, a, b Number) (Number, error) {
	parallel := m.parallel(a.limbs, b.limbs)
	ctx, span := tracer.Start(ctx, "grou.Multiplier.Mul", trace.WithAttributes(
		attribute.Int("grou.lhs_limbs", a.Len()),
		attribute.Int("grou.rhs_limbs", b.Len()),
		attribute.Bool("grou.parallel", parallel),
	))
	defer span.End()

	var z []Limb
	err := ctx.Err()
	switch {
	case err != nil:
	case parallel:
		sem := semaphore.NewWeighted(int64(m.maxGoroutines()))
		z, err = m.mulParallel(ctx, sem, nil, a.limbs, b.limbs)
	default:
		z, err = karatsuba(ctx, nil, a.limbs, b.limbs, m.karatsubaThreshold())
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Number{}, err
	}
	return Number{limbs: z}, nil
}

// mulParallel is karatsubaStep with the three sub-products fanned out over an
// errgroup. Sub-products that cannot get a semaphore slot run inline.
func (m Multiplier) mulParallel(ctx context.Context, sem *semaphore.Weighted, z, x, y []Limb) ([]Limb, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(x) == 0 || len(y) == 0 {
		return z[:0], nil
	}
	if !m.parallel(x, y) {
		return karatsuba(ctx, z, x, y, m.karatsubaThreshold())
	}

	s := splitKaratsuba(x, y)
	defer s.release()

	var low, high, mid []Limb
	tasks := [...]struct {
		dst  *[]Limb
		a, b []Limb
	}{
		{&low, s.x0, s.y0},
		{&high, s.x1, s.y1},
		{&mid, s.dx, s.dy},
	}

	g, gctx := errgroup.WithContext(ctx)
	var inlineErr error
	for _, t := range tasks {
		work := func() error {
			r, err := m.mulParallel(gctx, sem, acquireLimbs(len(t.a)+len(t.b)), t.a, t.b)
			*t.dst = r
			return err
		}
		if sem.TryAcquire(1) {
			g.Go(func() error {
				defer sem.Release(1)
				return work()
			})
		} else if inlineErr == nil {
			inlineErr = work()
		}
	}
	err := g.Wait()
	if err == nil {
		err = inlineErr
	}
	if err == nil {
		z = s.combine(z, low, high, mid)
	}
	releaseLimbs(low)
	releaseLimbs(high)
	releaseLimbs(mid)
	if err != nil {
		return nil, err
	}
	return z, nil
}
