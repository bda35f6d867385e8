// Package logging provides a unified logging interface for the grou tools.
// It abstracts the underlying logging implementation so the evaluator, the
// calibration runner and the REPL log the same way, backed either by zerolog
// or by the standard library logger.
package logging
