// Package metrics provides prometheus instrumentation for contract loading.
//
// Metrics are registered against a caller-supplied registry, never the
// global default, so tests and embedders stay isolated.
package metrics
