// Package telemetry groups saturn's observability packages.
//
//   - metrics: Prometheus instrumentation of contract loads
//   - health: liveness and readiness probes for the watch daemon
package telemetry
