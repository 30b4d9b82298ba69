package gridgraph

import (
	"sort"

	"github.com/katalvlaran/gridot/bpgraph"
	"github.com/katalvlaran/gridot/gridutil"
)

// New constructs a GridGraph over an X grid (red, supply) of shape xDim and
// a Y grid (blue, demand) of shape yDim. supply must have length
// num(xDim)+num(yDim), reds first. If fully is true, the complete bipartite
// arc set is materialized immediately (reserving |X|*|Y| arcs); otherwise
// the graph starts arc-less with a small reservation hint.
//
// Complexity: O(num(xDim)+num(yDim)) always; O(num(xDim)*num(yDim)) extra
// if fully.
func New(xDim, yDim gridutil.Pos, supply []int64, fully bool) (*GridGraph, error) {
	g, err := newEmpty(xDim, yDim, supply)
	if err != nil {
		return nil, err
	}
	if fully {
		g.AddAllArcs()
		return g, nil
	}
	g.ReserveArcs(reserveMultiplier * g.NodeNum())
	return g, nil
}

// NewWithShield constructs a GridGraph whose initial arc set is exactly the
// union of the per-red rectangles [yMin[x], yMax[x]).
//
// Complexity: O(num(xDim)+num(yDim)+arcs added).
func NewWithShield(xDim, yDim gridutil.Pos, supply []int64, yMin, yMax []gridutil.Pos) (*GridGraph, error) {
	g, err := newEmpty(xDim, yDim, supply)
	if err != nil {
		return nil, err
	}
	if len(yMin) != g.RedNum() || len(yMax) != g.RedNum() {
		return nil, ErrShieldLength
	}
	for i := range g.yMin {
		g.yMin[i] = yMin[i].Clone()
		g.yMax[i] = yMax[i].Clone()
	}
	g.ReserveArcs(reserveMultiplier * numArcsFromShield(g.yMin, g.yMax))
	g.addArcsWhere(alwaysTrue, false)
	return g, nil
}

// NewCoarsened builds the grid graph obtained from parent by merging k
// points per axis into one, on both the X and Y grids. Coarse supplies are
// the sum of the parent's supplies in each block; the coarse graph starts
// arc-less.
//
// Complexity: O(parent.NodeNum()).
func NewCoarsened(parent *GridGraph, k int) (*GridGraph, error) {
	if k <= 0 {
		return nil, ErrNonPositiveMerge
	}
	cXDim := gridutil.CoarsenedDim(k, parent.XDim)
	cYDim := gridutil.CoarsenedDim(k, parent.YDim)
	redNum, err := gridutil.NumNodes(cXDim)
	if err != nil {
		return nil, err
	}
	blueNum, err := gridutil.NumNodes(cYDim)
	if err != nil {
		return nil, err
	}

	g := &GridGraph{
		Digraph:  bpgraph.New(redNum, blueNum),
		XDim:     cXDim,
		YDim:     cYDim,
		xStrides: gridutil.Strides(cXDim),
		yStrides: gridutil.Strides(cYDim),
		supply:   make([]int64, redNum+blueNum),
	}
	g.initPositions()
	g.allocShield()

	for xx := 0; xx < parent.RedNum(); xx++ {
		cpos := gridutil.CoarsenedPos(k, parent.xPos[xx])
		x := gridutil.IDFromPos(cpos, g.xStrides)
		g.supply[x] += parent.supply[xx]
	}
	for yy := 0; yy < parent.BlueNum(); yy++ {
		cpos := gridutil.CoarsenedPos(k, parent.yPos[yy])
		y := gridutil.IDFromPos(cpos, g.yStrides)
		g.supply[redNum+y] += parent.supply[parent.RedNum()+yy]
	}

	g.ReserveArcs(reserveMultiplier * g.NodeNum())
	return g, nil
}

// newEmpty validates dimensions/supply and builds the common scaffolding
// shared by every exported constructor: digraph, positions, supply, and a
// fully-isolated shield (no arcs yet).
func newEmpty(xDim, yDim gridutil.Pos, supply []int64) (*GridGraph, error) {
	if len(xDim) == 0 || len(yDim) == 0 {
		return nil, ErrEmptyDim
	}
	if len(xDim) != len(yDim) {
		return nil, ErrDimMismatch
	}
	redNum, err := gridutil.NumNodes(xDim)
	if err != nil {
		return nil, err
	}
	blueNum, err := gridutil.NumNodes(yDim)
	if err != nil {
		return nil, err
	}
	if len(supply) != redNum+blueNum {
		return nil, ErrSupplyLength
	}

	g := &GridGraph{
		Digraph:  bpgraph.New(redNum, blueNum),
		XDim:     xDim.Clone(),
		YDim:     yDim.Clone(),
		xStrides: gridutil.Strides(xDim),
		yStrides: gridutil.Strides(yDim),
		supply:   append([]int64(nil), supply...),
	}
	g.initPositions()
	g.allocShield()
	return g, nil
}

func (g *GridGraph) initPositions() {
	g.xPos = positionTable(g.XDim, g.RedNum())
	g.yPos = positionTable(g.YDim, g.BlueNum())
}

func positionTable(dim gridutil.Pos, n int) []gridutil.Pos {
	out := make([]gridutil.Pos, n)
	min := make(gridutil.Pos, len(dim))
	pos := make(gridutil.Pos, len(dim))
	for i := 0; i < n; i++ {
		out[i] = pos.Clone()
		gridutil.AdvancePos(min, dim, pos)
	}
	return out
}

func (g *GridGraph) allocShield() {
	d := len(g.XDim)
	alloc := func() []gridutil.Pos {
		out := make([]gridutil.Pos, g.RedNum())
		for i := range out {
			out[i] = make(gridutil.Pos, d)
		}
		return out
	}
	g.yMin = alloc()
	g.yMax = alloc()
	g.oldYMin = alloc()
	g.oldYMax = alloc()
}

func numArcsFromShield(yMin, yMax []gridutil.Pos) int {
	n := 0
	for i := range yMin {
		n += gridutil.NumNodesBox(yMin[i], yMax[i])
	}
	return n
}

func alwaysTrue(int, int) bool { return true }

// AddArc appends the arc between red index x and blue index y, pricing it
// via the squared-Euclidean metric between their grid positions.
//
// Complexity: O(D) for the cost computation, O(1) amortized otherwise.
func (g *GridGraph) AddArc(x, y int) bpgraph.ArcID {
	xn, yn := g.RedNode(x), g.BlueNode(y)
	a := g.Digraph.AddArc(xn, yn)
	g.cost = append(g.cost, gridutil.SquaredEuclidean(g.xPos[x], g.yPos[y]))
	return a
}

// AddArcsBox adds every arc (x,y) with x in the box [xMin,xMax) and y in
// the box [yMin,yMax), in (x ascending, y ascending) order.
//
// Complexity: O(numNodes(xMin,xMax) * numNodes(yMin,yMax)).
func (g *GridGraph) AddArcsBox(xMin, xMax, yMin, yMax gridutil.Pos) {
	total := gridutil.NumNodesBox(xMin, xMax) * gridutil.NumNodesBox(yMin, yMax)
	if total == 0 {
		return
	}
	g.ReserveArcs(g.ArcNum() + total)

	xPos := xMin.Clone()
	for {
		x := gridutil.IDFromPos(xPos, g.xStrides)
		yPos := yMin.Clone()
		for {
			y := gridutil.IDFromPos(yPos, g.yStrides)
			g.AddArc(x, y)
			gridutil.AdvancePos(yMin, yMax, yPos)
			if yPos.Equal(yMin) {
				break
			}
		}
		gridutil.AdvancePos(xMin, xMax, xPos)
		if xPos.Equal(xMin) {
			break
		}
	}
}

// AddArcsWhere adds every arc (x,y) with x non-isolated, y in the current
// shield rectangle [yMin[x],yMax[x]), and cond(x,y) true.
//
// Complexity: O(sum of shield rectangle sizes).
func (g *GridGraph) AddArcsWhere(cond func(x, y int) bool) {
	g.addArcsWhere(cond, false)
}

// addArcsWhere is the shared implementation behind AddArcsWhere and
// UpdateShield; when collect is true it returns the IDs of every arc it
// added, in the order added.
func (g *GridGraph) addArcsWhere(cond func(x, y int) bool, collect bool) []bpgraph.ArcID {
	var added []bpgraph.ArcID
	for x := 0; x < g.RedNum(); x++ {
		if g.IsIsolated(x) {
			continue
		}
		yPos := g.yMin[x].Clone()
		for {
			y := gridutil.IDFromPos(yPos, g.yStrides)
			if cond(x, y) {
				a := g.AddArc(x, y)
				if collect {
					added = append(added, a)
				}
			}
			gridutil.AdvancePos(g.yMin[x], g.yMax[x], yPos)
			if yPos.Equal(g.yMin[x]) {
				break
			}
		}
	}
	return added
}

// AddAllArcs clears the graph, resets the shield to the full Y box for
// every red with nonzero supply (empty otherwise), and adds every arc in
// that shield.
//
// Complexity: O(RedNum*BlueNum).
func (g *GridGraph) AddAllArcs() {
	g.ClearArcs()
	g.ReserveArcs(g.RedNum() * g.BlueNum())
	g.ResetShield()
	g.addArcsWhere(alwaysTrue, false)
	g.fully = true
}

// ResetShield sets yMin[x]=0, yMax[x]=YDim for every red with nonzero
// supply, and leaves both at zero (empty box) otherwise.
//
// Complexity: O(RedNum).
func (g *GridGraph) ResetShield() {
	d := len(g.XDim)
	for x := 0; x < g.RedNum(); x++ {
		min := make(gridutil.Pos, d)
		var max gridutil.Pos
		if g.supply[x] != 0 {
			max = g.YDim.Clone()
		} else {
			max = make(gridutil.Pos, d)
		}
		g.yMin[x] = min
		g.yMax[x] = max
	}
}

// ClearArcs drops every arc and the per-arc cost vector, and marks the
// graph as not-fully-materialized.
//
// Complexity: O(RedNum+BlueNum).
func (g *GridGraph) ClearArcs() {
	g.Digraph.ClearArcs()
	g.cost = g.cost[:0]
	g.fully = false
}

// updateShieldPair tightens the shield of x's grid-neighbors given that
// (x,y) carries positive flow: the neighbor one step in the negative
// direction of axis i has its yMax[i] tightened to yPos(y)[i]+1; the
// neighbor one step in the positive direction has its yMin[i] tightened (by
// widening, i.e. raised) to yPos(y)[i].
func (g *GridGraph) updateShieldPair(x, y int) {
	xp := g.xPos[x]
	yp := g.yPos[y]
	for i := range xp {
		if xp[i] > 0 {
			nx := x - g.xStrides[i]
			if v := yp[i] + 1; v < g.yMax[nx][i] {
				g.yMax[nx][i] = v
			}
		}
	}
	for i := range xp {
		if xp[i] < g.XDim[i]-1 {
			px := x + g.xStrides[i]
			if yp[i] > g.yMin[px][i] {
				g.yMin[px][i] = yp[i]
			}
		}
	}
}

// RebuildShield recomputes the shield from scratch given support, clears
// the arc set, adds every arc in the new shield, then adds any support arc
// the shield does not already cover.
//
// Complexity: O(|support|*D + arcs rebuilt).
func (g *GridGraph) RebuildShield(support []Pair) {
	g.ResetShield()
	for _, p := range support {
		g.updateShieldPair(p.X, p.Y)
	}
	g.ClearArcs()
	g.ReserveArcs(numArcsFromShield(g.yMin, g.yMax) + g.NodeNum())
	g.addArcsWhere(alwaysTrue, false)

	for _, p := range support {
		if !gridutil.Contains(g.yMin[p.X], g.yMax[p.X], g.yPos[p.Y]) {
			g.AddArc(p.X, p.Y)
		}
	}
}

// RebuildShieldWarm behaves like RebuildShield, but also returns, for each
// support[i], the ArcID it now corresponds to in the rebuilt graph — used
// to warm-start a NetSimplex from a known feasible basis instead of the
// all-lower-bound start. support must be sorted by (X, Y); flow[i] is the
// current flow on support[i] (pairs with zero flow do not tighten the
// shield).
//
// Complexity: O(|support|*D + arcs rebuilt).
func (g *GridGraph) RebuildShieldWarm(support []Pair, flow []int64) ([]bpgraph.ArcID, error) {
	if len(flow) != len(support) {
		return nil, ErrFlowLength
	}
	if !sort.SliceIsSorted(support, func(i, j int) bool {
		return support[i].X < support[j].X || (support[i].X == support[j].X && support[i].Y < support[j].Y)
	}) {
		return nil, ErrSupportUnsorted
	}

	g.ResetShield()
	for i, p := range support {
		if flow[i] != 0 {
			g.updateShieldPair(p.X, p.Y)
		}
	}
	g.ClearArcs()
	g.ReserveArcs(numArcsFromShield(g.yMin, g.yMax) + g.NodeNum())

	supportArcs := make([]bpgraph.ArcID, len(support))
	for i := range supportArcs {
		supportArcs[i] = bpgraph.InvalidArc
	}

	idx := 0
	for x := 0; x < g.RedNum(); x++ {
		if g.IsIsolated(x) {
			continue
		}
		yPos := g.yMin[x].Clone()
		for {
			y := gridutil.IDFromPos(yPos, g.yStrides)
			a := g.AddArc(x, y)
			for idx < len(support) && less(support[idx], x, y) {
				idx++
			}
			if idx < len(support) && support[idx].X == x && support[idx].Y == y {
				supportArcs[idx] = a
				idx++
			}
			gridutil.AdvancePos(g.yMin[x], g.yMax[x], yPos)
			if yPos.Equal(g.yMin[x]) {
				break
			}
		}
	}

	for i, p := range support {
		if supportArcs[i] == bpgraph.InvalidArc {
			supportArcs[i] = g.AddArc(p.X, p.Y)
		}
	}
	return supportArcs, nil
}

func less(p Pair, x, y int) bool {
	return p.X < x || (p.X == x && p.Y < y)
}

// UpdateShield incrementally grows the shield from its current state to
// cover whatever support now requires, without ever shrinking it (so arcs
// already materialized remain valid), and adds only the newly required
// arcs. It returns the IDs of the arcs it added, in the order added, or nil
// if the graph is already fully materialized or the shield did not grow.
//
// Complexity: O(|support|*D + newly added arcs).
func (g *GridGraph) UpdateShield(support []Pair) []bpgraph.ArcID {
	if g.fully {
		return nil
	}

	g.yMin, g.oldYMin = g.oldYMin, g.yMin
	g.yMax, g.oldYMax = g.oldYMax, g.yMax
	g.ResetShield()
	for _, p := range support {
		g.updateShieldPair(p.X, p.Y)
	}

	for x := 0; x < g.RedNum(); x++ {
		for i := range g.yMin[x] {
			if g.oldYMin[x][i] < g.yMin[x][i] {
				g.yMin[x][i] = g.oldYMin[x][i]
			}
			if g.oldYMax[x][i] > g.yMax[x][i] {
				g.yMax[x][i] = g.oldYMax[x][i]
			}
		}
	}

	cond := func(x, y int) bool {
		return !gridutil.Contains(g.oldYMin[x], g.oldYMax[x], g.yPos[y])
	}
	return g.addArcsWhere(cond, true)
}
