package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/engine"
	"github.com/viant/starindex/index"
)

// SQLiteStore is a Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed Store. It registers star_dist2
// and ensures the stars schema exists in the provided database. Connections
// opened before the first engine.RegisterStarFunctions call cannot run
// NearestSQL.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := engine.RegisterStarFunctions(); err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// ErrNoCatalog is returned by OpenSQLiteStore when the database has no stars table.
var ErrNoCatalog = errors.New("store: stars table not found")

// OpenSQLiteStore attaches to a database that already holds a stars table.
// Unlike NewSQLiteStore it never changes the schema, so it is safe on
// read-only connections.
func OpenSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := engine.RegisterStarFunctions(); err != nil {
		return nil, err
	}
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'stars'`).Scan(&n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNoCatalog
	}
	return &SQLiteStore{db: db}, nil
}

// AddStars upserts stars in a single transaction.
func (s *SQLiteStore) AddStars(ctx context.Context, stars []catalog.Star) (int, error) {
	if len(stars) == 0 {
		return 0, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO stars(`+starColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(obj_id) DO UPDATE SET
  ra = excluded.ra,
  dec = excluded.dec,
  u = excluded.u,
  g = excluded.g,
  r = excluded.r,
  i = excluded.i,
  z = excluded.z`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, star := range stars {
		if star.ObjID > math.MaxInt64 {
			return 0, fmt.Errorf("store: obj_id %d exceeds the SQLite INTEGER range", star.ObjID)
		}
		args := []any{int64(star.ObjID), star.RA, star.Dec}
		for _, b := range catalog.Bands() {
			v, ok := star.Magnitude(b).Get()
			args = append(args, sql.NullFloat64{Float64: v, Valid: ok})
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("store: insert obj_id %d: %w", star.ObjID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(stars), nil
}

// Stars returns every stored star ordered by obj_id.
func (s *SQLiteStore) Stars(ctx context.Context) ([]catalog.Star, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+starColumns+` FROM stars ORDER BY obj_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Star, 0)
	for rows.Next() {
		star, err := scanStar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, star)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored stars.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stars`).Scan(&n)
	return n, err
}

// NearestSQL orders the whole table by star_dist2 and returns the first k.
// It scans every row and is meant for cross-checking the in-memory indexes.
func (s *SQLiteStore) NearestSQL(ctx context.Context, x, y float64, k int) ([]index.Neighbor, error) {
	if k <= 0 {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+starColumns+`, star_dist2(ra, dec, ?, ?) AS d2
FROM stars ORDER BY d2, obj_id LIMIT ?`, x, y, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []index.Neighbor
	for rows.Next() {
		var n index.Neighbor
		star, err := scanStar(rows, &n.DistanceSq)
		if err != nil {
			return nil, err
		}
		n.Star = star
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes a star by obj_id.
func (s *SQLiteStore) Remove(ctx context.Context, id uint64) error {
	if id > math.MaxInt64 {
		return fmt.Errorf("store: obj_id %d exceeds the SQLite INTEGER range", id)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM stars WHERE obj_id = ?`, int64(id))
	return err
}

// scanStar reads one stars row; extra destinations follow the star columns.
func scanStar(rows *sql.Rows, extra ...any) (catalog.Star, error) {
	var (
		star catalog.Star
		id   int64
		mags [catalog.NumBands]sql.NullFloat64
	)
	dest := []any{&id, &star.RA, &star.Dec}
	for b := range mags {
		dest = append(dest, &mags[b])
	}
	dest = append(dest, extra...)
	if err := rows.Scan(dest...); err != nil {
		return catalog.Star{}, err
	}
	star.ObjID = uint64(id)
	for b, m := range mags {
		if m.Valid {
			star.Magnitudes[b] = catalog.Some(m.Float64)
		}
	}
	return star, nil
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
