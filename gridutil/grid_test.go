package gridutil_test

import (
	"testing"

	"github.com/katalvlaran/gridot/gridutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumNodes(t *testing.T) {
	n, err := gridutil.NumNodes(gridutil.Pos{2, 2})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = gridutil.NumNodes(gridutil.Pos{})
	assert.ErrorIs(t, err, gridutil.ErrEmptyDim)

	_, err = gridutil.NumNodes(gridutil.Pos{3, 0})
	assert.ErrorIs(t, err, gridutil.ErrNonPositiveDim)
}

func TestNumNodesBox(t *testing.T) {
	assert.Equal(t, 6, gridutil.NumNodesBox(gridutil.Pos{1, 1}, gridutil.Pos{4, 3}))
	assert.Equal(t, 0, gridutil.NumNodesBox(gridutil.Pos{2, 2}, gridutil.Pos{2, 2}))
	assert.Equal(t, 0, gridutil.NumNodesBox(gridutil.Pos{3, 2}, gridutil.Pos{1, 5}))
}

func TestStrides(t *testing.T) {
	// Row-major: last axis contiguous.
	assert.Equal(t, gridutil.Pos{8, 4, 1}, gridutil.Strides(gridutil.Pos{5, 2, 4}))
	assert.Equal(t, gridutil.Pos{1}, gridutil.Strides(gridutil.Pos{7}))
}

func TestIDPosRoundTrip(t *testing.T) {
	dim := gridutil.Pos{3, 4, 2}
	strides := gridutil.Strides(dim)
	total, err := gridutil.NumNodes(dim)
	require.NoError(t, err)

	for id := 0; id < total; id++ {
		pos := gridutil.PosFromID(id, strides)
		assert.Equal(t, id, gridutil.IDFromPos(pos, strides), "round trip at id=%d", id)
	}
}

func TestAdvancePosVisitsEveryElementOnce(t *testing.T) {
	min := gridutil.Pos{1, 0}
	max := gridutil.Pos{3, 2}
	pos := min.Clone()

	visited := make(map[[2]int]bool)
	for {
		visited[[2]int{pos[0], pos[1]}] = true
		gridutil.AdvancePos(min, max, pos)
		if pos.Equal(min) {
			break
		}
	}

	assert.Len(t, visited, gridutil.NumNodesBox(min, max))
	for x := min[0]; x < max[0]; x++ {
		for y := min[1]; y < max[1]; y++ {
			assert.True(t, visited[[2]int{x, y}], "missed (%d,%d)", x, y)
		}
	}
}

func TestCoarsenedDimAndPos(t *testing.T) {
	assert.Equal(t, gridutil.Pos{3, 4}, gridutil.CoarsenedDim(2, gridutil.Pos{5, 8}))
	assert.Equal(t, gridutil.Pos{2, 1}, gridutil.CoarsenedPos(2, gridutil.Pos{5, 3}))
}

func TestContainsAndLess(t *testing.T) {
	min, max := gridutil.Pos{0, 0}, gridutil.Pos{2, 2}
	assert.True(t, gridutil.Contains(min, max, gridutil.Pos{1, 1}))
	assert.False(t, gridutil.Contains(min, max, gridutil.Pos{2, 0}))
	assert.True(t, gridutil.Less(min, max))
	assert.False(t, gridutil.Less(max, max))
}

func TestHierarchicalDepth(t *testing.T) {
	depth := gridutil.HierarchicalDepth(gridutil.Pos{8, 8}, gridutil.Pos{8, 8}, 2)
	assert.Equal(t, 2, depth)

	assert.Equal(t, 0, gridutil.HierarchicalDepth(gridutil.Pos{2, 2}, gridutil.Pos{2, 2}, 2))
	assert.Equal(t, 0, gridutil.HierarchicalDepth(gridutil.Pos{1, 1}, gridutil.Pos{1, 1}, 4))
	assert.Equal(t, 0, gridutil.HierarchicalDepth(gridutil.Pos{8, 8}, gridutil.Pos{8, 8}, 1))
}

func TestSquaredEuclidean(t *testing.T) {
	assert.Equal(t, int64(0), gridutil.SquaredEuclidean(gridutil.Pos{1, 1}, gridutil.Pos{1, 1}))
	assert.Equal(t, int64(5), gridutil.SquaredEuclidean(gridutil.Pos{0, 0}, gridutil.Pos{1, 2}))
}
