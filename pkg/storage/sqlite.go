package storage

import (
	"database/sql"
	"fmt"

	pkgdb "github.com/daysay-app/daysay/pkg/db"
)

const (
	getBlobStatement = `
	SELECT value FROM blobs WHERE key = ?
	`

	setBlobStatement = `
	INSERT INTO blobs (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = unixepoch()
	`
)

// SQLiteStore is a Persistence backed by a SQLite blob table, for setups
// that prefer one database file over a directory of key files.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens the database at dbPath (WAL, NORMAL sync) and
// ensures the schema is at the current version.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	conn, err := pkgdb.OpenDBConnection(dbPath, true, "NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := pkgdb.UpgradeDB(conn, dbPath, pkgdb.TargetSchemaVersion); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize journal database schema: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Get(key string) (string, error) {
	var value string
	err := s.conn.QueryRow(getBlobStatement, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.conn.Exec(setBlobStatement, key, value)
	return err
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
