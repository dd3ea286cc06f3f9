package store

import (
	"context"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/index"
)

// Store defines the catalog persistence API.
type Store interface {
	// AddStars upserts stars by obj_id and returns the number written.
	AddStars(ctx context.Context, stars []catalog.Star) (int, error)

	// Stars returns every stored star ordered by obj_id.
	Stars(ctx context.Context) ([]catalog.Star, error)

	// Count returns the number of stored stars.
	Count(ctx context.Context) (int, error)

	// NearestSQL returns up to k stars ordered by squared distance from
	// (x, y), computed in SQL. Ties are ordered by obj_id.
	NearestSQL(ctx context.Context, x, y float64, k int) ([]index.Neighbor, error)

	// Remove deletes the star with the given obj_id.
	Remove(ctx context.Context, id uint64) error
}
