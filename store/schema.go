package store

import (
	"database/sql"
)

const starsSchema = `
CREATE TABLE IF NOT EXISTS stars (
    obj_id INTEGER PRIMARY KEY,
    ra     REAL NOT NULL,
    dec    REAL NOT NULL,
    u      REAL,
    g      REAL,
    r      REAL,
    i      REAL,
    z      REAL
);
`

// starColumns lists the stars table columns in scan order.
const starColumns = `obj_id, ra, dec, u, g, r, i, z`

// EnsureSchema creates the stars table in the provided database if it does
// not already exist. Absent magnitudes are stored as NULL.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(starsSchema)
	return err
}
