package store

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the snapshot database schema.
const Schema = `
-- Contract snapshot table: one row per successful load
CREATE TABLE IF NOT EXISTS contract_snapshots (
    load_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    source_path TEXT NOT NULL,
    contract_yaml TEXT NOT NULL,
    loaded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_name_loaded
    ON contract_snapshots (name, loaded_at DESC);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// insertSchemaVersion records the schema version (idempotent).
const insertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version) VALUES (?);
`

// getSchemaVersion retrieves the recorded schema version.
const getSchemaVersion = `
SELECT version FROM schema_version LIMIT 1;
`
