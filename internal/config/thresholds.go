package config

import (
	"runtime"

	"github.com/agbru/grou"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (-threshold, -parallel-threshold)
//   2. Environment variables (GROU_THRESHOLD, GROU_PARALLEL_THRESHOLD)
//   3. Cached calibration profile (~/.grou_calibration.json)
//   4. Adaptive hardware estimation (this file)
//   5. Static defaults in the grou package

// ParallelOff is the ParallelThreshold value that disables parallel
// multiplication. Unlike zero it is never replaced by a profile or an
// estimate.
const ParallelOff = -1

// ApplyAdaptiveThresholds fills thresholds left at zero with estimates based
// on the CPU count. User-specified values are preserved.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalKaratsubaThreshold()
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold returns the operand size in limbs above
// which spreading the three Karatsuba sub-products over goroutines pays off.
// It returns 0 (no parallelism) on a single CPU.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 0
	case numCPU <= 2:
		return 4 * grou.DefaultParallelThreshold
	case numCPU <= 4:
		return 2 * grou.DefaultParallelThreshold
	case numCPU <= 8:
		return grou.DefaultParallelThreshold
	default:
		return grou.DefaultParallelThreshold / 2
	}
}

// EstimateOptimalKaratsubaThreshold returns the schoolbook cutoff in limbs.
// The crossover depends on the multiply latency more than on the core count,
// so only the word size is considered.
func EstimateOptimalKaratsubaThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)
	if wordSize == 64 {
		return grou.DefaultKaratsubaThreshold
	}
	return grou.DefaultKaratsubaThreshold * 2
}

// Multiplier builds the multiplication engine described by cfg.
func (c AppConfig) Multiplier() grou.Multiplier {
	return grou.Multiplier{
		KaratsubaThreshold: c.Threshold,
		ParallelThreshold:  max(c.ParallelThreshold, 0),
		MaxGoroutines:      c.MaxGoroutines,
	}
}
