package index

import (
	"iter"
	"math"

	"github.com/viant/starindex/catalog"
)

// Index defines a read-only spatial index over stars. Implementations are
// built once from the full catalog and may be queried concurrently.
type Index interface {
	// Len returns the number of indexed stars.
	Len() int

	// Nearest returns a lazy iterator yielding stars in non-decreasing squared
	// distance from (x, y). Each call returns an independent iterator.
	Nearest(x, y float64) Iterator
}

// Iterator yields neighbors one at a time. Next returns false once the index
// is exhausted. Iterators are not safe for concurrent use; abandoning one
// early releases everything it holds.
type Iterator interface {
	Next() (Neighbor, bool)
}

// Neighbor is a star together with its squared distance to the query point.
type Neighbor struct {
	Star       catalog.Star
	DistanceSq float64
}

// Distance returns the Euclidean distance.
func (n Neighbor) Distance() float64 { return math.Sqrt(n.DistanceSq) }

// DistanceSq returns the squared Euclidean distance between two points.
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// Take consumes up to k neighbors. When k <= 0 the iterator is not advanced.
func Take(it Iterator, k int) []Neighbor {
	return Within(it, k, 0)
}

// Within consumes up to k neighbors no farther than radius from the query
// point; radius <= 0 means unbounded.
func Within(it Iterator, k int, radius float64) []Neighbor {
	if k <= 0 {
		return nil
	}
	limit := math.Inf(1)
	if radius > 0 {
		limit = radius * radius
	}
	var out []Neighbor
	for len(out) < k {
		n, ok := it.Next()
		if !ok || n.DistanceSq > limit {
			break
		}
		out = append(out, n)
	}
	return out
}

// Seq adapts it to a range-over-func sequence.
func Seq(it Iterator) iter.Seq[Neighbor] {
	return func(yield func(Neighbor) bool) {
		for {
			n, ok := it.Next()
			if !ok || !yield(n) {
				return
			}
		}
	}
}
