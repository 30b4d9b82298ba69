package gridgraph

import (
	"errors"

	"github.com/katalvlaran/gridot/bpgraph"
	"github.com/katalvlaran/gridot/gridutil"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyDim indicates an x_dim or y_dim with zero axes.
	ErrEmptyDim = errors.New("gridgraph: x_dim and y_dim must have at least one axis")
	// ErrDimMismatch indicates x_dim and y_dim have a different number of axes.
	ErrDimMismatch = errors.New("gridgraph: x_dim and y_dim must share the same dimension")
	// ErrSupplyLength indicates a supply vector whose length is not red_num+blue_num.
	ErrSupplyLength = errors.New("gridgraph: supply length must equal num(x_dim)+num(y_dim)")
	// ErrShieldLength indicates a y_min/y_max vector whose length is not red_num.
	ErrShieldLength = errors.New("gridgraph: y_min and y_max length must equal num(x_dim)")
	// ErrSupportUnsorted indicates a support vector not stable-sorted by (X, Y).
	ErrSupportUnsorted = errors.New("gridgraph: support must be sorted by (X, Y)")
	// ErrFlowLength indicates a flow vector whose length does not match its support.
	ErrFlowLength = errors.New("gridgraph: flow length must equal support length")
	// ErrNonPositiveMerge indicates a coarsening factor k <= 0.
	ErrNonPositiveMerge = errors.New("gridgraph: merge factor must be >= 1")
)

// reserveMultiplier is the capacity hint multiplier applied when a
// GridGraph is constructed without an explicit arc count.
const reserveMultiplier = 4

// Pair identifies one (red, blue) flow-support arc by grid-local index:
// X in [0, RedNum), Y in [0, BlueNum).
type Pair struct {
	X, Y int
}

// GridGraph is a bipartite digraph between an X grid (red, supply) and a Y
// grid (blue, demand), with squared-Euclidean arc costs and a per-red
// shield rectangle restricting which Y positions are currently candidate
// neighbors.
type GridGraph struct {
	*bpgraph.Digraph

	XDim, YDim     gridutil.Pos
	xStrides       gridutil.Pos
	yStrides       gridutil.Pos
	xPos           []gridutil.Pos
	yPos           []gridutil.Pos
	supply         []int64
	cost           []int64
	yMin, yMax     []gridutil.Pos
	oldYMin        []gridutil.Pos
	oldYMax        []gridutil.Pos
	fully          bool
}

// Supply returns the signed supply of node n (reds nonnegative, blues
// nonpositive — a blue's demand magnitude is -Supply(n)).
func (g *GridGraph) Supply(n bpgraph.NodeID) int64 { return g.supply[n] }

// Cost returns the squared-Euclidean cost recorded for arc a at the time it
// was appended.
func (g *GridGraph) Cost(a bpgraph.ArcID) int64 { return g.cost[a] }

// GetPos returns the grid position of node n (an X position for a red node,
// a Y position for a blue one).
func (g *GridGraph) GetPos(n bpgraph.NodeID) gridutil.Pos {
	if g.IsRed(n) {
		return g.xPos[g.RedIndex(n)]
	}
	return g.yPos[g.BlueIndex(n)]
}

// ShieldBox returns the current shield rectangle [yMin, yMax) for red index
// x. An empty box (yMax <= yMin componentwise) means x is isolated.
func (g *GridGraph) ShieldBox(x int) (min, max gridutil.Pos) {
	return g.yMin[x], g.yMax[x]
}

// IsIsolated reports whether red index x currently has an empty shield.
func (g *GridGraph) IsIsolated(x int) bool {
	return !gridutil.Less(g.yMin[x], g.yMax[x])
}

// Fully reports whether the graph currently holds the complete bipartite
// arc set (set by New with fully=true or by AddAllArcs).
func (g *GridGraph) Fully() bool { return g.fully }
