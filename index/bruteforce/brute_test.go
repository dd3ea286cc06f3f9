package bruteforce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/index"
)

func TestIndex_Nearest(t *testing.T) {
	idx, err := Build([]catalog.Star{
		{ObjID: 1, RA: 150.0, Dec: 2.0},
		{ObjID: 2, RA: 150.1, Dec: 2.1},
		{ObjID: 3, RA: 150.2, Dec: 2.2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	got := index.Take(idx.Nearest(150.0, 2.0), 2)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].Star.ObjID)
	assert.Equal(t, 0.0, got[0].DistanceSq)
	assert.Equal(t, uint64(2), got[1].Star.ObjID)
	assert.InDelta(t, 0.02, got[1].DistanceSq, 1e-9)
}

func TestIndex_TiesKeepInputOrder(t *testing.T) {
	idx, err := Build([]catalog.Star{
		{ObjID: 7, RA: 1, Dec: 0},
		{ObjID: 3, RA: -1, Dec: 0},
		{ObjID: 5, RA: 0, Dec: 1},
	})
	require.NoError(t, err)

	var ids []uint64
	for n := range index.Seq(idx.Nearest(0, 0)) {
		ids = append(ids, n.Star.ObjID)
	}
	assert.Equal(t, []uint64{7, 3, 5}, ids)
}

func TestIndex_Empty(t *testing.T) {
	idx, err := Build(nil)
	require.NoError(t, err)
	assert.Zero(t, idx.Len())
	_, ok := idx.Nearest(0, 0).Next()
	assert.False(t, ok)
}

func TestBuild_RejectsNonFinite(t *testing.T) {
	_, err := Build([]catalog.Star{{ObjID: 1, RA: math.NaN()}})
	assert.Error(t, err)
}

func TestBuild_CopiesInput(t *testing.T) {
	stars := []catalog.Star{{ObjID: 1, RA: 0, Dec: 0}}
	idx, err := Build(stars)
	require.NoError(t, err)
	stars[0].ObjID = 99

	n, ok := idx.Nearest(0, 0).Next()
	require.True(t, ok)
	assert.Equal(t, uint64(1), n.Star.ObjID)
}
