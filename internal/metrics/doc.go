// Package metrics records evaluator activity as Prometheus metrics on a
// private registry and serves them over HTTP.
package metrics
