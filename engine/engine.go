package engine

import (
	"database/sql"
	"net/url"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./stars.sqlite". For in-memory
// databases, pass MemoryDSN; the pool is then limited to a single connection
// since every SQLite connection to ":memory:" sees its own database.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == MemoryDSN {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenReadOnly opens an existing database file with SQLite's mode=ro URI
// parameter; writes fail and a missing file is not created.
func OpenReadOnly(path string) (*sql.DB, error) {
	u := url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}
	return sql.Open("sqlite", u.String())
}
