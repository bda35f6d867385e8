// Package app wires configuration, logging, metrics, the evaluator and the
// REPL into the grou command.
package app
