// Package eval parses and evaluates binary expressions over grou Numbers
// ("<a> <op> <b>") and cross-checks multiplication strategies against each
// other. Evaluations are traced with OpenTelemetry and recorded through a
// metrics.Recorder.
package eval
