// This file generates the candidate thresholds a calibration run measures.

package calibration

import "runtime"

// GenerateKaratsubaThresholds returns the schoolbook cutoffs, in limbs, to
// measure. The list is ascending and always contains the package default.
func GenerateKaratsubaThresholds() []int {
	return []int{8, 16, 24, 32, 48, 64, 96, 128}
}

// GenerateQuickKaratsubaThresholds is a reduced set for quick calibration.
func GenerateQuickKaratsubaThresholds() []int {
	return []int{16, 32, 64}
}

// GenerateParallelThresholds returns the parallel thresholds to measure based
// on the number of available CPU cores. 0 means sequential and is always
// first; on a single core it is the only candidate.
func GenerateParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	thresholds := []int{0}

	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		// Goroutine overhead is relatively high with few cores.
		thresholds = append(thresholds, 256, 512, 1024, 2048)
	case numCPU <= 8:
		thresholds = append(thresholds, 128, 256, 512, 1024, 2048)
	default:
		thresholds = append(thresholds, 64, 128, 256, 512, 1024, 2048)
	}

	return thresholds
}

// GenerateQuickParallelThresholds is a reduced set for quick calibration.
func GenerateQuickParallelThresholds() []int {
	if runtime.NumCPU() == 1 {
		return []int{0}
	}
	return []int{0, 256, 1024}
}
