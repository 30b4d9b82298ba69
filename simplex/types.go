package simplex

import (
	"errors"

	"github.com/katalvlaran/gridot/bpgraph"
	"github.com/katalvlaran/gridot/gridgraph"
)

// Sentinel errors for simplex operations.
var (
	// ErrNilGraph indicates New was called with a nil graph.
	ErrNilGraph = errors.New("simplex: graph must not be nil")
)

// ProblemType is the outcome of a solve.
type ProblemType int

const (
	// Infeasible means no flow satisfies the supplies under the chosen
	// supply type.
	Infeasible ProblemType = iota
	// Optimal means the basis found is a proven minimum-cost feasible flow.
	Optimal
	// Unbounded means the objective is unbounded below (never expected for
	// well-posed transport instances).
	Unbounded
)

func (p ProblemType) String() string {
	switch p {
	case Optimal:
		return "OPTIMAL"
	case Unbounded:
		return "UNBOUNDED"
	default:
		return "INFEASIBLE"
	}
}

// PivotRule selects the entering-arc strategy for one Run.
type PivotRule int

const (
	// FirstEligible enters the first negative-reduced-cost arc found while
	// scanning cyclically from a rotating cursor.
	FirstEligible PivotRule = iota
	// BestEligible enters the most negative-reduced-cost arc found by a
	// full scan every pivot.
	BestEligible
	// BlockSearch scans fixed-size blocks of arcs in ascending-id order,
	// entering the best candidate found in the first improving block; the
	// block size is ceil(sqrt(arc_num)).
	BlockSearch
	// CandidateList maintains a short list of the most promising arcs found
	// during a full scan, consuming it before rescanning.
	CandidateList
	// AlteringList behaves like CandidateList but alternates the scan
	// direction between successive refills.
	AlteringList
	// Shielded alternates a BlockSearch inner phase over materialized arcs
	// with a certification phase that grows the graph's shield.
	Shielded
)

// SupplyType fixes how a nonzero sum of supplies is interpreted.
type SupplyType int

const (
	// EQ requires the supplies to sum to exactly zero.
	EQ SupplyType = iota
	// GEQ permits a positive sum (excess supply becomes unrouted slack).
	GEQ
	// LEQ permits a negative sum (excess demand becomes unrouted slack).
	LEQ
)

// bigM is the cost assigned to the artificial arcs on the side whose slack
// the supply type forbids (the other side's artificial arcs cost 0): large
// enough that a
// genuinely feasible instance never leaves one in the basis at positive
// flow once an improving real arc exists.
const bigM int64 = 1 << 40

// infCapacity is the default upper bound for arcs with no explicit cap:
// large relative to any realistic grid-transport instance, but still far
// below bigM/2 so cycle-capacity arithmetic cannot overflow against it.
const infCapacity int64 = 1 << 32

// arcState is the status of one working arc relative to the current basis.
type arcState int8

const (
	atLower arcState = -1
	basic   arcState = 0
	atUpper arcState = 1
)

// NetSimplex solves min-cost flow on a gridgraph.GridGraph via primal
// network simplex. Construct with New, configure via the builder methods,
// then call Run or RunShielded.
type NetSimplex struct {
	graph *gridgraph.GridGraph

	supplyFn func(bpgraph.NodeID) int64
	costFn   func(bpgraph.ArcID) int64
	lowerFn  func(bpgraph.ArcID) int64
	upperFn  func(bpgraph.ArcID) int64
	supType  SupplyType

	// n is the real (non-root) node count; root is node index n.
	n    int
	root int

	// Working arcs: indices [0,n) are artificial node<->root arcs, indices
	// [n, n+graphArcs) mirror graph arc IDs 1:1 (working index = n + int(id)).
	source, target []int
	cost           []int64
	lower, upper   []int64
	flow           []int64
	state          []arcState

	parent     []int
	parentArc  []int
	parentDir  []int8 // +1 if parentArc points parent->node, -1 if node->parent
	depth      []int
	potential  []int64

	scanCursor  int
	candidates  []int
	altForward  bool

	problem   ProblemType
	totalCost int64
}

// New constructs a solver over graph. graph must not be nil; the returned
// NetSimplex borrows it and reads its current (possibly partial) arc set
// lazily, at Run/RunShielded time.
func New(graph *gridgraph.GridGraph) (*NetSimplex, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	return &NetSimplex{graph: graph, supType: EQ}, nil
}

// SupplyMap overrides the per-node supply function (default: graph.Supply).
func (r *NetSimplex) SupplyMap(fn func(bpgraph.NodeID) int64) *NetSimplex {
	r.supplyFn = fn
	return r
}

// CostMap overrides the per-arc cost function (default: graph.Cost).
func (r *NetSimplex) CostMap(fn func(bpgraph.ArcID) int64) *NetSimplex {
	r.costFn = fn
	return r
}

// LowerMap overrides the per-arc lower bound (default: 0 for every arc).
func (r *NetSimplex) LowerMap(fn func(bpgraph.ArcID) int64) *NetSimplex {
	r.lowerFn = fn
	return r
}

// UpperMap overrides the per-arc upper bound (default: infCapacity for
// every arc).
func (r *NetSimplex) UpperMap(fn func(bpgraph.ArcID) int64) *NetSimplex {
	r.upperFn = fn
	return r
}

// SupplyTypeOpt sets how a nonzero total supply is interpreted (default EQ).
func (r *NetSimplex) SupplyTypeOpt(st SupplyType) *NetSimplex {
	r.supType = st
	return r
}

// TotalCost returns the objective of the last completed Run/RunShielded.
func (r *NetSimplex) TotalCost() int64 { return r.totalCost }

// Flow returns the flow currently assigned to graph arc a.
func (r *NetSimplex) Flow(a bpgraph.ArcID) int64 {
	return r.flow[r.n+int(a)]
}

// Support returns every graph arc with strictly positive flow, as
// (red-index, blue-index) pairs stable-sorted by (X, Y).
func (r *NetSimplex) Support() []gridgraph.Pair {
	var out []gridgraph.Pair
	for a := 0; a < r.graph.ArcNum(); a++ {
		if r.flow[r.n+a] > 0 {
			src := r.graph.Source(bpgraph.ArcID(a))
			tgt := r.graph.Target(bpgraph.ArcID(a))
			out = append(out, gridgraph.Pair{
				X: r.graph.RedIndex(src),
				Y: r.graph.BlueIndex(tgt),
			})
		}
	}
	sortPairs(out)
	return out
}

func sortPairs(p []gridgraph.Pair) {
	for i := 1; i < len(p); i++ {
		for j := i; j > 0 && less(p[j], p[j-1]); j-- {
			p[j], p[j-1] = p[j-1], p[j]
		}
	}
}

func less(a, b gridgraph.Pair) bool {
	return a.X < b.X || (a.X == b.X && a.Y < b.Y)
}
