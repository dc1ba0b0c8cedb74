// Package store persists resolved contract snapshots in SQLite.
//
// Every successful load can be recorded as a snapshot: the contract name,
// the root file it came from, a unique load ID, and the fully resolved
// tree serialized as YAML. Snapshots form an audit trail and allow
// inspecting exactly what a past load produced; they are never consulted
// on the serving path.
package store
