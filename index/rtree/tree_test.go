package rtree

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/index"
	"github.com/viant/starindex/index/bruteforce"
)

func randomStars(n int, seed uint64) []catalog.Star {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	stars := make([]catalog.Star, n)
	for i := range stars {
		stars[i] = catalog.Star{
			ObjID: uint64(i + 1),
			RA:    rng.Float64() * 360,
			Dec:   rng.Float64()*180 - 90,
		}
	}
	return stars
}

func collect(it index.Iterator) []index.Neighbor {
	var out []index.Neighbor
	for n := range index.Seq(it) {
		out = append(out, n)
	}
	return out
}

func TestTree_Scenario(t *testing.T) {
	tree, err := Build([]catalog.Star{
		{ObjID: 1, RA: 150.0, Dec: 2.0},
		{ObjID: 2, RA: 150.1, Dec: 2.1},
		{ObjID: 3, RA: 150.2, Dec: 2.2},
	})
	require.NoError(t, err)

	got := index.Take(tree.Nearest(150.0, 2.0), 2)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].Star.ObjID)
	assert.Equal(t, 0.0, got[0].DistanceSq)
	assert.Equal(t, uint64(2), got[1].Star.ObjID)
	assert.InDelta(t, 0.02, got[1].DistanceSq, 1e-9)
}

func TestTree_Empty(t *testing.T) {
	for _, stars := range [][]catalog.Star{nil, {}} {
		tree, err := Build(stars)
		require.NoError(t, err)
		assert.Zero(t, tree.Len())
		assert.Zero(t, tree.Height())
		_, ok := tree.Bounds()
		assert.False(t, ok)

		for _, k := range []int{0, 1, 100} {
			assert.Empty(t, index.Take(tree.Nearest(1, 2), k))
		}
		it := tree.Nearest(0, 0)
		_, ok = it.Next()
		assert.False(t, ok)
		_, ok = it.Next()
		assert.False(t, ok)
	}
}

func TestTree_Single(t *testing.T) {
	tree, err := Build([]catalog.Star{{ObjID: 9, RA: 10, Dec: -5}})
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Height())

	got := index.Take(tree.Nearest(13, -1), 5)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(9), got[0].Star.ObjID)
	assert.Equal(t, 25.0, got[0].DistanceSq)
	assert.Equal(t, 5.0, got[0].Distance())
}

func TestTree_MatchesBruteForce(t *testing.T) {
	stars := randomStars(3000, 7)
	tree, err := Build(stars, WithNodeSize(8))
	require.NoError(t, err)
	brute, err := bruteforce.Build(stars)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(11, 12))
	for q := 0; q < 25; q++ {
		x, y := rng.Float64()*400-20, rng.Float64()*200-100
		got := index.Take(tree.Nearest(x, y), 50)
		want := index.Take(brute.Nearest(x, y), 50)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].DistanceSq, got[i].DistanceSq, "query %d rank %d", q, i)
			assert.Equal(t, want[i].Star, got[i].Star, "query %d rank %d", q, i)
		}
	}
}

func TestTree_Ordering(t *testing.T) {
	tree, err := Build(randomStars(1000, 3))
	require.NoError(t, err)

	for _, q := range [][2]float64{{0, 0}, {180, 0}, {359.9, 89.9}, {-50, 500}} {
		all := collect(tree.Nearest(q[0], q[1]))
		for i := 1; i < len(all); i++ {
			require.LessOrEqual(t, all[i-1].DistanceSq, all[i].DistanceSq, "query %v rank %d", q, i)
		}
	}
}

func TestTree_Completeness(t *testing.T) {
	stars := randomStars(777, 5)
	tree, err := Build(stars, WithNodeSize(4))
	require.NoError(t, err)

	got := index.Take(tree.Nearest(42, 42), len(stars))
	require.Len(t, got, len(stars))
	seen := make(map[uint64]int, len(stars))
	for _, n := range got {
		seen[n.Star.ObjID]++
	}
	assert.Len(t, seen, len(stars))
	for id, count := range seen {
		assert.Equal(t, 1, count, "obj_id %d", id)
	}

	// More than Len yields everything without error.
	assert.Len(t, index.Take(tree.Nearest(42, 42), len(stars)+10), len(stars))
}

func TestTree_Truncation(t *testing.T) {
	tree, err := Build(randomStars(500, 9))
	require.NoError(t, err)

	assert.Empty(t, index.Take(tree.Nearest(100, 10), 0))
	for k := 1; k < 40; k++ {
		short := index.Take(tree.Nearest(100, 10), k)
		long := index.Take(tree.Nearest(100, 10), k+1)
		require.Len(t, long, k+1)
		assert.Equal(t, short, long[:k], "k=%d", k)
	}
}

func TestTree_RoundTrip(t *testing.T) {
	stars := randomStars(400, 13)
	tree, err := Build(stars)
	require.NoError(t, err)

	for _, s := range stars {
		n, ok := tree.Nearest(s.RA, s.Dec).Next()
		require.True(t, ok)
		assert.Equal(t, s.ObjID, n.Star.ObjID)
		assert.Zero(t, n.DistanceSq)
	}
}

func TestTree_Ties(t *testing.T) {
	var stars []catalog.Star
	for i := 0; i < 60; i++ {
		stars = append(stars, catalog.Star{ObjID: uint64(i + 1), RA: 5, Dec: 5})
	}
	stars = append(stars, catalog.Star{ObjID: 100, RA: 6, Dec: 5}, catalog.Star{ObjID: 101, RA: 4, Dec: 5})

	first, err := Build(stars, WithNodeSize(4))
	require.NoError(t, err)
	second, err := Build(stars, WithNodeSize(4))
	require.NoError(t, err)

	a := collect(first.Nearest(5, 5))
	b := collect(second.Nearest(5, 5))
	require.Len(t, a, len(stars))
	assert.Equal(t, a, b, "tie order must be deterministic")

	ids := make(map[uint64]bool)
	for i, n := range a {
		assert.False(t, ids[n.Star.ObjID], "duplicate %d", n.Star.ObjID)
		ids[n.Star.ObjID] = true
		if i < 60 {
			assert.Zero(t, n.DistanceSq)
		} else {
			assert.Equal(t, 1.0, n.DistanceSq)
		}
	}
}

func TestTree_Structure(t *testing.T) {
	for _, size := range []int{2, 3, 16} {
		stars := randomStars(1234, uint64(size))
		tree, err := Build(stars, WithNodeSize(size))
		require.NoError(t, err)
		assert.Equal(t, size, tree.NodeSize())

		var leafDepths []int
		var walk func(pos, depth int) BBox
		walk = func(pos, depth int) BBox {
			n := tree.nodes[pos]
			require.Positive(t, n.count)
			require.LessOrEqual(t, n.count, size)
			var box BBox
			for j := n.first; j < n.first+n.count; j++ {
				var child BBox
				if n.leaf {
					child = pointBox(tree.stars[j].RA, tree.stars[j].Dec)
				} else {
					child = walk(j, depth+1)
				}
				if j == n.first {
					box = child
				} else {
					box = box.combine(child)
				}
			}
			if n.leaf {
				leafDepths = append(leafDepths, depth)
			}
			assert.Equal(t, box, n.box, "node %d is not a minimal cover", pos)
			return n.box
		}
		walk(tree.root, 1)
		for _, d := range leafDepths {
			assert.Equal(t, tree.Height(), d)
		}
		bounds, ok := tree.Bounds()
		require.True(t, ok)
		for _, s := range stars {
			assert.True(t, bounds.Contains(s.RA, s.Dec))
		}
	}
}

func TestTree_ParallelBuild(t *testing.T) {
	stars := randomStars(5000, 21)
	serial, err := Build(stars, WithNodeSize(6))
	require.NoError(t, err)
	parallel, err := Build(stars, WithNodeSize(6), WithBuildParallelism(8))
	require.NoError(t, err)

	assert.Equal(t, serial.stars, parallel.stars)
	assert.Equal(t, serial.nodes, parallel.nodes)
	assert.Equal(t, serial.root, parallel.root)
}

func TestTree_ConcurrentQueries(t *testing.T) {
	tree, err := Build(randomStars(2000, 17))
	require.NoError(t, err)

	points := [][2]float64{{1, 1}, {90, -45}, {270, 60}, {180, 0}, {359, -89}, {10, 80}}
	want := make([][]index.Neighbor, len(points))
	for i, p := range points {
		want[i] = index.Take(tree.Nearest(p[0], p[1]), 25)
	}

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		for i, p := range points {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, want[i], index.Take(tree.Nearest(p[0], p[1]), 25))
			}()
		}
	}
	wg.Wait()
}

func TestBuild_Invalid(t *testing.T) {
	_, err := Build([]catalog.Star{{ObjID: 1}, {ObjID: 2, RA: math.Inf(1)}})
	assert.Error(t, err)
}

func TestBuild_CopiesInput(t *testing.T) {
	stars := []catalog.Star{{ObjID: 1, RA: 1, Dec: 1}, {ObjID: 2, RA: 2, Dec: 2}}
	tree, err := Build(stars)
	require.NoError(t, err)
	stars[0].RA = 100

	n, ok := tree.Nearest(1, 1).Next()
	require.True(t, ok)
	assert.Equal(t, uint64(1), n.Star.ObjID)
	assert.Zero(t, n.DistanceSq)
}

func TestWithNodeSize(t *testing.T) {
	assert.Equal(t, DefaultNodeSize, newOptions([]Option{WithNodeSize(0)}).nodeSize)
	assert.Equal(t, 2, newOptions([]Option{WithNodeSize(1)}).nodeSize)
	assert.Equal(t, 1, newOptions([]Option{WithBuildParallelism(-4)}).parallelism)
}

func TestBBox_MinDistanceSq(t *testing.T) {
	b := BBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	assert.Zero(t, b.MinDistanceSq(1, 1))
	assert.Zero(t, b.MinDistanceSq(2, 0))
	assert.Equal(t, 9.0, b.MinDistanceSq(5, 1))
	assert.Equal(t, 2.0, b.MinDistanceSq(-1, 3))
}

func BenchmarkBuild(b *testing.B) {
	stars := randomStars(100_000, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(stars); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNearest10(b *testing.B) {
	tree, err := Build(randomStars(100_000, 1))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		index.Take(tree.Nearest(float64(i%360), 0), 10)
	}
}
