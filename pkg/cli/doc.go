// Package cli provides shared helpers for saturn commands: typed command
// and configuration errors, signal-aware contexts for long-running
// commands, and output formatters.
package cli
