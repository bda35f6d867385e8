// Package calibration measures the Karatsuba and parallel thresholds that are
// fastest on the current machine and caches them in a JSON profile so later
// runs can skip the measurement.
package calibration
