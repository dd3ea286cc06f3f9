// Package store keeps a parsed star catalog in SQLite so it can be reloaded
// without re-parsing the CSV export. It includes:
//   - Store interface and SQLiteStore implementation
//   - Schema helpers to create the stars table
//   - NearestSQL, a brute-force kNN in SQL via the star_dist2 function
//
// Only records are stored; spatial indexes are always rebuilt in memory.
package store
