package bruteforce

import (
	"fmt"
	"sort"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/index"
)

// Index is a simple brute-force star index.
type Index struct {
	stars []catalog.Star
}

// Build copies the stars into a new index.
func Build(stars []catalog.Star) (*Index, error) {
	for j := range stars {
		if !stars[j].Valid() {
			return nil, fmt.Errorf("bruteforce: star %d has a non-finite position", stars[j].ObjID)
		}
	}
	return &Index{stars: append([]catalog.Star(nil), stars...)}, nil
}

// Len returns the number of indexed stars.
func (i *Index) Len() int { return len(i.stars) }

// Nearest scores every star against (x, y). Equal distances keep input order.
func (i *Index) Nearest(x, y float64) index.Iterator {
	scored := make([]index.Neighbor, len(i.stars))
	for j := range i.stars {
		scored[j] = index.Neighbor{
			Star:       i.stars[j],
			DistanceSq: index.DistanceSq(i.stars[j].RA, i.stars[j].Dec, x, y),
		}
	}
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].DistanceSq < scored[b].DistanceSq })
	return &iterator{items: scored}
}

type iterator struct {
	items []index.Neighbor
	pos   int
}

func (it *iterator) Next() (index.Neighbor, bool) {
	if it.pos >= len(it.items) {
		return index.Neighbor{}, false
	}
	n := it.items[it.pos]
	it.pos++
	return n, true
}

var _ index.Index = (*Index)(nil)
