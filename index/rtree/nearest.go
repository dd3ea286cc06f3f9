package rtree

import (
	"container/heap"

	"github.com/viant/starindex/index"
)

// Nearest returns a lazy iterator over all stars ordered by squared distance
// from (x, y). Nothing is traversed until the first call to Next.
//
// Equal keys pop stars before nodes, then by arena position, so repeated
// queries against one tree yield ties in the same order.
func (t *Tree) Nearest(x, y float64) index.Iterator {
	return &iterator{tree: t, x: x, y: y}
}

type iterator struct {
	tree    *Tree
	x, y    float64
	queue   entryQueue
	started bool
}

func (it *iterator) Next() (index.Neighbor, bool) {
	t := it.tree
	if !it.started {
		it.started = true
		if t.root >= 0 {
			heap.Push(&it.queue, entry{distSq: t.nodes[t.root].box.MinDistanceSq(it.x, it.y), pos: t.root})
		}
	}
	for it.queue.Len() > 0 {
		e := heap.Pop(&it.queue).(entry)
		if e.star {
			return index.Neighbor{Star: t.stars[e.pos], DistanceSq: e.distSq}, true
		}
		n := &t.nodes[e.pos]
		for j := n.first; j < n.first+n.count; j++ {
			if n.leaf {
				s := &t.stars[j]
				heap.Push(&it.queue, entry{distSq: index.DistanceSq(s.RA, s.Dec, it.x, it.y), star: true, pos: j})
			} else {
				heap.Push(&it.queue, entry{distSq: t.nodes[j].box.MinDistanceSq(it.x, it.y), pos: j})
			}
		}
	}
	it.queue = nil
	return index.Neighbor{}, false
}

// entry is either a star (exact distance) or a node (lower bound).
type entry struct {
	distSq float64
	star   bool
	pos    int
}

type entryQueue []entry

func (q entryQueue) Len() int { return len(q) }

func (q entryQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.distSq != b.distSq {
		return a.distSq < b.distSq
	}
	if a.star != b.star {
		return a.star
	}
	return a.pos < b.pos
}

func (q entryQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *entryQueue) Push(x interface{}) { *q = append(*q, x.(entry)) }
func (q *entryQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
