package multiscale

import (
	"github.com/katalvlaran/gridot/gridgraph"
	"github.com/katalvlaran/gridot/gridutil"
	"github.com/katalvlaran/gridot/simplex"
)

// Run coarsens the leaf graph down to hierarchical_depth(x_dim, y_dim, k)
// levels, solves the coarsest level with every arc present, then refines
// one level at a time by restricting each finer level's candidate arcs to
// windows around the coarser level's positive-flow support, finishing with
// a shielded solve of the leaf graph itself.
//
// Complexity: O(log_k(min_extent)) levels, each solved via shielded
// network simplex over a progressively larger but still window-restricted
// arc set.
func (d *Driver) Run() simplex.ProblemType {
	d.refinementRounds = 0
	maxDepth := gridutil.HierarchicalDepth(d.leaf.XDim, d.leaf.YDim, d.k)

	if maxDepth == 0 {
		d.leaf.AddAllArcs()
	} else {
		outcome, err := d.prepareLevel(1, maxDepth, d.leaf)
		if err != nil || outcome != simplex.Optimal {
			d.problem = outcome
			return d.problem
		}
	}

	solver, outcome := d.solveShielded(d.leaf)
	d.solver = solver
	d.problem = outcome
	if outcome == simplex.Optimal {
		d.totalCost = solver.TotalCost()
	}
	return d.problem
}

// RunWithRefinement runs Run, then repeatedly extracts the leaf's flow
// support, rebuilds its shield from that support, resets the simplex, and
// re-solves — a safety net against a pathological initial candidate set —
// until the objective fails to strictly decrease or the instance becomes
// non-optimal.
func (d *Driver) RunWithRefinement() simplex.ProblemType {
	outcome := d.Run()
	if outcome != simplex.Optimal {
		return outcome
	}

	for {
		support := d.solver.Support()
		d.leaf.RebuildShield(support)

		solver, next := d.solveShielded(d.leaf)
		if next != simplex.Optimal {
			return d.problem
		}
		if solver.TotalCost() >= d.totalCost {
			return d.problem
		}

		d.refinementRounds++
		d.solver = solver
		d.totalCost = solver.TotalCost()
	}
}

// prepareLevel builds the coarse graph one level down from parent,
// recursing to the coarsest level, solving bottom-up, and preparing each
// parent's candidate-arc windows from its coarse child's positive-flow
// support before returning.
func (d *Driver) prepareLevel(depth, maxDepth int, parent *gridgraph.GridGraph) (simplex.ProblemType, error) {
	coarse, err := gridgraph.NewCoarsened(parent, d.k)
	if err != nil {
		return simplex.Infeasible, err
	}

	if depth < maxDepth {
		outcome, err := d.prepareLevel(depth+1, maxDepth, coarse)
		if err != nil {
			return simplex.Infeasible, err
		}
		if outcome != simplex.Optimal {
			return outcome, nil
		}
	} else {
		coarse.AddAllArcs()
	}

	solver, outcome := d.solveShielded(coarse)
	if outcome != simplex.Optimal {
		return outcome, nil
	}

	parent.ClearArcs()
	for _, pair := range solver.Support() {
		xPos := coarse.GetPos(coarse.RedNode(pair.X))
		yPos := coarse.GetPos(coarse.BlueNode(pair.Y))
		xMin, xMax := windowBox(d.k, xPos, parent.XDim)
		yMin, yMax := windowBox(d.k, yPos, parent.YDim)
		parent.AddArcsBox(xMin, xMax, yMin, yMax)
	}

	return simplex.Optimal, nil
}

// windowBox returns the fine-grid box [coarsePos*k, min(coarsePos*k+k, dim))
// per axis: the window of fine cells a single coarse cell expands to.
func windowBox(k int, coarsePos, dim gridutil.Pos) (min, max gridutil.Pos) {
	min = make(gridutil.Pos, len(coarsePos))
	max = make(gridutil.Pos, len(coarsePos))
	for i, p := range coarsePos {
		min[i] = p * k
		max[i] = min[i] + k
		if max[i] > dim[i] {
			max[i] = dim[i]
		}
	}
	return min, max
}

// solveShielded runs the shielded pivot rule over g with the driver's
// configured supply type and returns the solver alongside its outcome.
func (d *Driver) solveShielded(g *gridgraph.GridGraph) (*simplex.NetSimplex, simplex.ProblemType) {
	solver, _ := simplex.New(g) // g is always non-nil here
	solver.SupplyTypeOpt(d.supType)
	outcome := solver.Run(simplex.Shielded)
	return solver, outcome
}
