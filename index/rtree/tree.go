package rtree

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/index"
)

// Tree is a static, STR-packed R-tree. The zero value is not usable; call Build.
type Tree struct {
	stars    []catalog.Star // leaf order
	nodes    []node
	root     int // -1 when empty
	height   int
	nodeSize int
}

// node covers either a contiguous run of stars (leaf) or a contiguous run of
// child nodes.
type node struct {
	box   BBox
	leaf  bool
	first int
	count int
}

// Build bulk-loads a tree from a copy of stars. An empty slice yields an
// empty tree. Build fails only when a star has a non-finite position.
func Build(stars []catalog.Star, opts ...Option) (*Tree, error) {
	o := newOptions(opts)
	t := &Tree{root: -1, nodeSize: o.nodeSize}
	for j := range stars {
		if !stars[j].Valid() {
			return nil, fmt.Errorf("rtree: star %d has a non-finite position", stars[j].ObjID)
		}
	}
	if len(stars) == 0 {
		return t, nil
	}
	t.stars = append([]catalog.Star(nil), stars...)
	if err := tile(t.stars, o, starPosition); err != nil {
		return nil, err
	}

	level := make([]node, 0, ceilDiv(len(t.stars), o.nodeSize))
	for start := 0; start < len(t.stars); start += o.nodeSize {
		end := min(start+o.nodeSize, len(t.stars))
		box := pointBox(t.stars[start].RA, t.stars[start].Dec)
		for _, s := range t.stars[start+1 : end] {
			box = box.combine(pointBox(s.RA, s.Dec))
		}
		level = append(level, node{box: box, leaf: true, first: start, count: end - start})
	}
	t.height = 1

	for len(level) > 1 {
		if err := tile(level, o, nodeCenter); err != nil {
			return nil, err
		}
		offset := len(t.nodes)
		t.nodes = append(t.nodes, level...)
		parents := make([]node, 0, ceilDiv(len(level), o.nodeSize))
		for start := 0; start < len(level); start += o.nodeSize {
			end := min(start+o.nodeSize, len(level))
			box := level[start].box
			for _, child := range level[start+1 : end] {
				box = box.combine(child.box)
			}
			parents = append(parents, node{box: box, first: offset + start, count: end - start})
		}
		level = parents
		t.height++
	}
	t.root = len(t.nodes)
	t.nodes = append(t.nodes, level[0])
	return t, nil
}

// Len returns the number of indexed stars.
func (t *Tree) Len() int { return len(t.stars) }

// Height returns the number of levels; 0 for an empty tree.
func (t *Tree) Height() int { return t.height }

// NodeSize returns the maximum fan-out used at build time.
func (t *Tree) NodeSize() int { return t.nodeSize }

// Bounds returns the box covering every star, and false for an empty tree.
func (t *Tree) Bounds() (BBox, bool) {
	if t.root < 0 {
		return BBox{}, false
	}
	return t.nodes[t.root].box, true
}

// tile reorders items in place using Sort-Tile-Recursive: a stable sort by x,
// then a stable sort by y within each vertical slab of S*M items, where S is
// the square root of the number of nodes the items pack into.
func tile[T any](items []T, o options, position func(T) (float64, float64)) error {
	nodeCount := ceilDiv(len(items), o.nodeSize)
	slabCount := int(math.Ceil(math.Sqrt(float64(nodeCount))))
	slabSize := slabCount * o.nodeSize

	slices.SortStableFunc(items, func(a, b T) int {
		ax, _ := position(a)
		bx, _ := position(b)
		return cmp.Compare(ax, bx)
	})
	byY := func(a, b T) int {
		_, ay := position(a)
		_, by := position(b)
		return cmp.Compare(ay, by)
	}
	if o.parallelism <= 1 || slabCount == 1 {
		for start := 0; start < len(items); start += slabSize {
			slices.SortStableFunc(items[start:min(start+slabSize, len(items))], byY)
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for start := 0; start < len(items); start += slabSize {
		slab := items[start:min(start+slabSize, len(items))]
		g.Go(func() error {
			slices.SortStableFunc(slab, byY)
			return nil
		})
	}
	return g.Wait()
}

func starPosition(s catalog.Star) (float64, float64) { return s.RA, s.Dec }

func nodeCenter(n node) (float64, float64) { return n.box.center() }

func ceilDiv(a, b int) int { return (a + b - 1) / b }

var _ index.Index = (*Tree)(nil)
