// Package manager coordinates the lifecycle of loaded contracts.
//
// The manager sits above the loader and validator: it loads the configured
// root contracts, validates them, and registers the results in a
// thread-safe registry. Reloads are atomic; a reload that fails for any
// contract leaves the previously registered set untouched.
//
// Two reload triggers are available:
//
//   - FileWatcher: fsnotify-based watching of the contract files'
//     directories, debounced to absorb editor save bursts
//   - ResyncScheduler: cron-scheduled full reloads for drift repair
//
// Optional collaborators attach via options: a snapshot store persisting
// every successful load, and prometheus load instrumentation.
package manager
