package multiscale

import (
	"errors"

	"github.com/katalvlaran/gridot/gridgraph"
	"github.com/katalvlaran/gridot/simplex"
)

// Sentinel errors for multiscale operations.
var (
	// ErrNilLeaf indicates New was called with a nil leaf graph.
	ErrNilLeaf = errors.New("multiscale: leaf graph must not be nil")
	// ErrNonPositiveMerge indicates a merge factor k <= 0.
	ErrNonPositiveMerge = errors.New("multiscale: merge factor must be >= 1")
)

// defaultMergeFactor is the driver's default coarsening factor per axis.
const defaultMergeFactor = 2

// Driver coarsens a leaf grid graph hierarchically and solves it via the
// shielded network-simplex pivot rule, lifting each coarse level's
// positive-flow support into local candidate-arc windows at the next finer
// level. Construct with New, optionally configure via the builder methods,
// then call Run or RunWithRefinement.
type Driver struct {
	leaf    *gridgraph.GridGraph
	k       int
	supType simplex.SupplyType

	problem   simplex.ProblemType
	totalCost int64
	solver    *simplex.NetSimplex

	// refinementRounds counts the extra solve/rebuild-shield iterations
	// RunWithRefinement performed; 0 after a plain Run.
	refinementRounds int
}

// New constructs a Driver over leaf with the default merge factor (2). leaf
// must not be nil and should be freshly constructed with no arcs (any
// existing arcs are cleared by Run/RunWithRefinement at the top level).
func New(leaf *gridgraph.GridGraph) (*Driver, error) {
	if leaf == nil {
		return nil, ErrNilLeaf
	}
	return &Driver{leaf: leaf, k: defaultMergeFactor, supType: simplex.EQ}, nil
}

// MergeFactor overrides the coarsening factor per axis (default 2). k must
// be >= 1.
func (d *Driver) MergeFactor(k int) *Driver {
	if k < 1 {
		panic(ErrNonPositiveMerge)
	}
	d.k = k
	return d
}

// SupplyType overrides how a nonzero total supply is interpreted at every
// level solved (default EQ).
func (d *Driver) SupplyType(st simplex.SupplyType) *Driver {
	d.supType = st
	return d
}

// TotalCost returns the objective of the last completed Run/RunWithRefinement.
func (d *Driver) TotalCost() int64 { return d.totalCost }

// Support returns the leaf graph's flow support from the last completed
// Run/RunWithRefinement.
func (d *Driver) Support() []gridgraph.Pair {
	if d.solver == nil {
		return nil
	}
	return d.solver.Support()
}

// RefinementRounds returns how many extra solve/rebuild-shield iterations
// the last RunWithRefinement call performed (always 0 after a plain Run).
func (d *Driver) RefinementRounds() int { return d.refinementRounds }
