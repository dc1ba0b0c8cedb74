// Package health provides liveness and readiness checks for the watch
// daemon's HTTP endpoint.
//
// Liveness reports only that the process runs. Readiness aggregates
// registered component checks (loaded contracts, snapshot store) and
// degrades when any component is unhealthy.
package health
