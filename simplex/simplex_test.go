package simplex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridot/gridgraph"
	"github.com/katalvlaran/gridot/gridutil"
	"github.com/katalvlaran/gridot/instancegen"
	"github.com/katalvlaran/gridot/simplex"
)

func TestNewRejectsNilGraph(t *testing.T) {
	_, err := simplex.New(nil)
	assert.ErrorIs(t, err, simplex.ErrNilGraph)
}

// smallDenseGraph is a 2x2 grid with an explicit, hand-checkable supply
// vector and the complete bipartite arc set.
func smallDenseGraph(t *testing.T) *gridgraph.GridGraph {
	t.Helper()
	xDim := gridutil.Pos{2, 2}
	yDim := gridutil.Pos{2, 2}
	supply := []int64{1, 2, 3, 4, -2, -2, -3, -3}
	g, err := gridgraph.New(xDim, yDim, supply, true)
	require.NoError(t, err)
	return g
}

func TestRunFirstEligibleSmallDense(t *testing.T) {
	g := smallDenseGraph(t)
	solver, err := simplex.New(g)
	require.NoError(t, err)

	outcome := solver.Run(simplex.FirstEligible)
	require.Equal(t, simplex.Optimal, outcome)
	assert.GreaterOrEqual(t, solver.TotalCost(), int64(0))
}

// TestPivotRulesAgreeOnObjective runs every pivot rule over the same fully
// bipartite instance and asserts they all report OPTIMAL with the same
// total cost, since network simplex's optimum is unique in objective value
// regardless of which pivot rule reaches it.
func TestPivotRulesAgreeOnObjective(t *testing.T) {
	rules := []simplex.PivotRule{
		simplex.FirstEligible,
		simplex.BestEligible,
		simplex.BlockSearch,
		simplex.CandidateList,
		simplex.AlteringList,
	}

	var costs []int64
	for _, rule := range rules {
		g := smallDenseGraph(t)
		solver, err := simplex.New(g)
		require.NoError(t, err)

		outcome := solver.Run(rule)
		require.Equalf(t, simplex.Optimal, outcome, "rule %v", rule)
		costs = append(costs, solver.TotalCost())
	}

	for i := 1; i < len(costs); i++ {
		assert.Equalf(t, costs[0], costs[i], "rule index %d disagreed with rule 0", i)
	}
}

// TestRunShieldedMatchesBestEligible grounds the shielded pivot rule against
// a classical full scan on the same instance: a reference solver run on the
// complete bipartite graph must match the shielded solver's objective
// exactly.
func TestRunShieldedMatchesBestEligible(t *testing.T) {
	for _, n := range []int{2, 3, 4} {
		xDim := gridutil.Pos{n, n}
		yDim := gridutil.Pos{n, n}
		nx, ny := n*n, n*n
		supply := make([]int64, nx+ny)
		// Deterministic, reproducible-without-randomness supply: every red
		// supplies one unit and every blue demands one unit.
		for i := 0; i < nx; i++ {
			supply[i] = 1
		}
		for i := 0; i < ny; i++ {
			supply[nx+i] = -1
		}
		if nx != ny {
			t.Fatalf("expected balanced grid, got nx=%d ny=%d", nx, ny)
		}

		refGraph, err := gridgraph.New(xDim, yDim, supply, true)
		require.NoError(t, err)
		ref, err := simplex.New(refGraph)
		require.NoError(t, err)
		require.Equal(t, simplex.Optimal, ref.Run(simplex.BestEligible))

		shieldGraph, err := gridgraph.New(xDim, yDim, supply, true)
		require.NoError(t, err)
		shielded, err := simplex.New(shieldGraph)
		require.NoError(t, err)
		require.Equal(t, simplex.Optimal, shielded.Run(simplex.Shielded))

		assert.Equalf(t, ref.TotalCost(), shielded.TotalCost(), "n=%d", n)
	}
}

// TestRunShieldedOnIncompleteGraph exercises the shielded rule's
// certification phase: the graph starts with a single unit-box shield per
// red, and the solver must still reach OPTIMAL by growing the shield.
func TestRunShieldedOnIncompleteGraph(t *testing.T) {
	n := 3
	xDim := gridutil.Pos{n, n}
	yDim := gridutil.Pos{n, n}
	nx, ny := n*n, n*n
	supply := make([]int64, nx+ny)
	for i := 0; i < nx; i++ {
		supply[i] = 1
	}
	for i := 0; i < ny; i++ {
		supply[nx+i] = -1
	}

	yMin := make([]gridutil.Pos, nx)
	yMax := make([]gridutil.Pos, nx)
	origin := gridutil.Pos{0, 0}
	pos := gridutil.Pos{0, 0}
	for i := 0; i < nx; i++ {
		yMin[i] = pos.Clone()
		yMax[i] = gridutil.Pos{pos[0] + 1, pos[1] + 1}
		gridutil.AdvancePos(origin, yDim, pos)
	}

	g, err := gridgraph.NewWithShield(xDim, yDim, supply, yMin, yMax)
	require.NoError(t, err)
	solver, err := simplex.New(g)
	require.NoError(t, err)

	outcome := solver.Run(simplex.Shielded)
	require.Equal(t, simplex.Optimal, outcome)

	refGraph, err := gridgraph.New(xDim, yDim, supply, true)
	require.NoError(t, err)
	ref, err := simplex.New(refGraph)
	require.NoError(t, err)
	require.Equal(t, simplex.Optimal, ref.Run(simplex.BestEligible))

	assert.Equal(t, ref.TotalCost(), solver.TotalCost())
}

func TestSupportIsNonEmptyAndSortedByXY(t *testing.T) {
	g := smallDenseGraph(t)
	solver, err := simplex.New(g)
	require.NoError(t, err)
	require.Equal(t, simplex.Optimal, solver.Run(simplex.BestEligible))

	support := solver.Support()
	require.NotEmpty(t, support)
	for i := 1; i < len(support); i++ {
		prev, cur := support[i-1], support[i]
		assert.True(t, prev.X < cur.X || (prev.X == cur.X && prev.Y < cur.Y))
	}
}

// TestRunShieldedRandomInstancesOptimal solves seeded random instances on
// n x n grids starting from an arc-less graph; the certification phase must
// grow the candidate set until the basis is provably optimal over the full
// bipartite closure.
func TestRunShieldedRandomInstancesOptimal(t *testing.T) {
	for _, n := range []int{8, 12} {
		dim := gridutil.Pos{n, n}
		inst, err := instancegen.Random(dim, dim, instancegen.WithSeed(0))
		require.NoError(t, err)

		g, err := gridgraph.New(inst.XDim, inst.YDim, inst.Supply, false)
		require.NoError(t, err)
		solver, err := simplex.New(g)
		require.NoError(t, err)

		outcome := solver.Run(simplex.Shielded)
		assert.Equalf(t, simplex.Optimal, outcome, "n=%d", n)
		assert.GreaterOrEqualf(t, solver.TotalCost(), int64(0), "n=%d", n)
	}
}
