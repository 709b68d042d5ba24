// Package orchestrator wires the loader, validator, code generation dispatcher
// and artifact renderer into a single pipeline. Every stage can be replaced
// through options; missing stages fall back to the built-in implementations.
package orchestrator
