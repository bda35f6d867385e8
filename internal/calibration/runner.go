package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/agbru/grou"
	"github.com/agbru/grou/internal/config"
	apperrors "github.com/agbru/grou/internal/errors"
	"github.com/agbru/grou/internal/logging"
)

const (
	// DefaultCalibrationLimbs is the operand size of a full calibration run.
	DefaultCalibrationLimbs = 4096
	// QuickCalibrationLimbs is the operand size of a quick run.
	QuickCalibrationLimbs = 1024
	defaultRounds         = 3
)

// Options tunes a calibration run. The zero value runs the full candidate
// set on DefaultCalibrationLimbs-limb operands.
type Options struct {
	// Quick measures fewer candidates on smaller operands.
	Quick bool
	// Limbs overrides the operand size.
	Limbs int
	// Rounds is the number of timings per candidate; the fastest one counts.
	Rounds int
	// Seed makes the random operands reproducible.
	Seed uint64
}

func (o Options) limbs() int {
	switch {
	case o.Limbs > 0:
		return o.Limbs
	case o.Quick:
		return QuickCalibrationLimbs
	}
	return DefaultCalibrationLimbs
}

func (o Options) rounds() int {
	if o.Rounds > 0 {
		return o.Rounds
	}
	return defaultRounds
}

type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// RunCalibration measures the Karatsuba threshold first, sequentially, then
// the parallel threshold using the winning Karatsuba threshold. Results are
// printed to out as tables. The returned profile has not been saved.
func RunCalibration(ctx context.Context, out io.Writer, cfg config.AppConfig, opts Options, logger logging.Logger) (*CalibrationProfile, error) {
	start := time.Now()
	limbs := opts.limbs()
	a, b := randomOperands(limbs, opts.Seed)

	karatsubaCandidates := GenerateKaratsubaThresholds()
	parallelCandidates := GenerateParallelThresholds()
	if opts.Quick {
		karatsubaCandidates = GenerateQuickKaratsubaThresholds()
		parallelCandidates = GenerateQuickParallelThresholds()
	}

	logger.Info("calibration started",
		logging.Int("limbs", limbs),
		logging.Int("karatsuba_candidates", len(karatsubaCandidates)),
		logging.Int("parallel_candidates", len(parallelCandidates)))

	// Every candidate must reproduce the schoolbook product.
	want := grou.StraightMul(a.SubsetAll(), b.SubsetAll())

	karatsubaResults, err := measure(ctx, karatsubaCandidates, opts.rounds(), a, b, want, func(th int) grou.Multiplier {
		return grou.Multiplier{KaratsubaThreshold: th}
	})
	if err != nil {
		return nil, err
	}
	bestKaratsuba, err := fastest(karatsubaResults)
	if err != nil {
		return nil, err
	}
	printCalibrationResults(out, "Karatsuba threshold", karatsubaResults, bestKaratsuba)

	parallelResults, err := measure(ctx, parallelCandidates, opts.rounds(), a, b, want, func(th int) grou.Multiplier {
		return grou.Multiplier{KaratsubaThreshold: bestKaratsuba, ParallelThreshold: th, MaxGoroutines: cfg.MaxGoroutines}
	})
	if err != nil {
		return nil, err
	}
	bestParallel, err := fastest(parallelResults)
	if err != nil {
		return nil, err
	}
	printCalibrationResults(out, "Parallel threshold", parallelResults, bestParallel)

	profile := NewProfile()
	profile.OptimalKaratsubaThreshold = bestKaratsuba
	profile.OptimalParallelThreshold = bestParallel
	profile.CalibrationLimbs = limbs
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	logger.Info("calibration finished",
		logging.Int("karatsuba_threshold", bestKaratsuba),
		logging.Int("parallel_threshold", bestParallel),
		logging.Duration("elapsed", time.Since(start)))
	return profile, nil
}

// ApplyProfile overwrites the thresholds of cfg with the profile's.
func ApplyProfile(cfg config.AppConfig, p *CalibrationProfile) config.AppConfig {
	cfg.Threshold = p.OptimalKaratsubaThreshold
	cfg.ParallelThreshold = p.OptimalParallelThreshold
	return cfg
}

func measure(ctx context.Context, candidates []int, rounds int, a, b, want grou.Number, build func(int) grou.Multiplier) ([]calibrationResult, error) {
	results := make([]calibrationResult, 0, len(candidates))
	for _, th := range candidates {
		m := build(th)
		res := calibrationResult{Threshold: th}
		for range rounds {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			t0 := time.Now()
			got, err := m.Mul(ctx, a, b)
			elapsed := time.Since(t0)
			if err != nil {
				if apperrors.IsContextError(err) {
					return nil, err
				}
				res.Err = err
				break
			}
			if !got.Equal(want) {
				res.Err = apperrors.MismatchError{Reference: "straight", Strategies: []string{fmt.Sprintf("threshold=%d", th)}}
				break
			}
			if res.Duration == 0 || elapsed < res.Duration {
				res.Duration = elapsed
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// fastest returns the threshold with the lowest duration. Ties keep the
// earlier candidate.
func fastest(results []calibrationResult) (int, error) {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.Duration < results[best].Duration {
			best = i
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("calibration: every candidate failed")
	}
	return results[best].Threshold, nil
}

func randomOperands(limbs int, seed uint64) (grou.Number, grou.Number) {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	gen := func() grou.Number {
		l := make([]grou.Limb, limbs)
		for i := range l {
			l[i] = r.Uint64()
		}
		l[limbs-1] |= 1
		return grou.FromLimbs(l...)
	}
	return gen(), gen()
}
