package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database
	// schema for the 'journaldb' component. The journal state is stored as
	// opaque blobs keyed by name; the store layer owns their shape.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS daysay_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at REAL DEFAULT (unixepoch())
);
`
)
