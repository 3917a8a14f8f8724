// Package db owns the SQLite handle and the schema lifecycle for the
// clinic database.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the clinic database at path, creating the file when it does
// not exist. The connection pool is pinned to a single connection since
// modernc.org/sqlite serializes writers anyway, and foreign key
// enforcement is switched on so patient deletes cascade.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open clinic database %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("reach clinic database %s: %w", path, err)
	}
	if _, err := conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("turn on foreign key enforcement: %w", err)
	}
	return conn, nil
}
