package bpgraph

import "errors"

// Sentinel errors for bpgraph operations.
var (
	// ErrNonPositiveNum indicates a negative red or blue node count passed to New.
	ErrNonPositiveNum = errors.New("bpgraph: red_num and blue_num must be >= 0")
)

// NodeID is a dense node identifier. Reds occupy [0, RedNum); blues occupy
// [RedNum, RedNum+BlueNum).
type NodeID int

// ArcID is a dense, insertion-order arc identifier.
type ArcID int

// InvalidArc is the sentinel terminating every out-list and in-list.
const InvalidArc ArcID = -1

// arc is one directed red->blue edge, plus the two index-linked-list
// pointers that thread it into its source's out-list and its target's
// in-list.
type arc struct {
	source, target NodeID
	nextOut, nextIn ArcID
}

// Digraph is an append-only bipartite digraph over a fixed red/blue node
// partition. The zero value is not usable; construct with New.
type Digraph struct {
	redNum, blueNum int
	redHead         []ArcID // per red node: first_out
	blueHead        []ArcID // per blue node: first_in
	arcs            []arc
}

// New allocates a Digraph with redNum red nodes and blueNum blue nodes and
// no arcs.
//
// Complexity: O(redNum + blueNum).
func New(redNum, blueNum int) *Digraph {
	if redNum < 0 || blueNum < 0 {
		panic(ErrNonPositiveNum)
	}
	g := &Digraph{redNum: redNum, blueNum: blueNum}
	g.redHead = make([]ArcID, redNum)
	g.blueHead = make([]ArcID, blueNum)
	for i := range g.redHead {
		g.redHead[i] = InvalidArc
	}
	for i := range g.blueHead {
		g.blueHead[i] = InvalidArc
	}
	return g
}

// RedNum returns the number of red nodes.
func (g *Digraph) RedNum() int { return g.redNum }

// BlueNum returns the number of blue nodes.
func (g *Digraph) BlueNum() int { return g.blueNum }

// NodeNum returns RedNum() + BlueNum().
func (g *Digraph) NodeNum() int { return g.redNum + g.blueNum }

// ArcNum returns the current number of arcs.
func (g *Digraph) ArcNum() int { return len(g.arcs) }

// RedNode returns the NodeID of the red node at index i, i in [0, RedNum).
func (g *Digraph) RedNode(i int) NodeID { return NodeID(i) }

// BlueNode returns the NodeID of the blue node at index i, i in [0, BlueNum).
func (g *Digraph) BlueNode(i int) NodeID { return NodeID(i + g.redNum) }

// IsRed reports whether n is a red node.
func (g *Digraph) IsRed(n NodeID) bool { return int(n) < g.redNum }

// IsBlue reports whether n is a blue node.
func (g *Digraph) IsBlue(n NodeID) bool { return int(n) >= g.redNum }

// RedIndex returns the red-local index of n (n must be red).
func (g *Digraph) RedIndex(n NodeID) int { return int(n) }

// BlueIndex returns the blue-local index of n (n must be blue).
func (g *Digraph) BlueIndex(n NodeID) int { return int(n) - g.redNum }

// Source returns the red endpoint of arc a.
func (g *Digraph) Source(a ArcID) NodeID { return g.arcs[a].source }

// Target returns the blue endpoint of arc a.
func (g *Digraph) Target(a ArcID) NodeID { return g.arcs[a].target }

// FirstOut returns the first arc in u's out-list, or InvalidArc if u has no
// outgoing arcs (u must be red).
func (g *Digraph) FirstOut(u NodeID) ArcID { return g.redHead[u] }

// NextOut returns the next arc after a in its source's out-list, or
// InvalidArc at the end of the list.
func (g *Digraph) NextOut(a ArcID) ArcID { return g.arcs[a].nextOut }

// FirstIn returns the first arc in v's in-list, or InvalidArc if v has no
// incoming arcs (v must be blue).
func (g *Digraph) FirstIn(v NodeID) ArcID { return g.blueHead[v-NodeID(g.redNum)] }

// NextIn returns the next arc after a in its target's in-list, or
// InvalidArc at the end of the list.
func (g *Digraph) NextIn(a ArcID) ArcID { return g.arcs[a].nextIn }

// AddArc appends a new arc u->v and links it into u's out-list and v's
// in-list. u must be red, v must be blue; duplicate (u,v) pairs are
// permitted (callers that care about duplicates must avoid them
// themselves).
//
// Complexity: O(1) amortized.
func (g *Digraph) AddArc(u, v NodeID) ArcID {
	id := ArcID(len(g.arcs))
	ui, vi := int(u), int(v)-g.redNum
	g.arcs = append(g.arcs, arc{
		source:  u,
		target:  v,
		nextOut: g.redHead[ui],
		nextIn:  g.blueHead[vi],
	})
	g.redHead[ui] = id
	g.blueHead[vi] = id
	return id
}

// ReserveArcs hints that m arcs are expected, avoiding repeated
// reallocation during a bulk-add phase.
func (g *Digraph) ReserveArcs(m int) {
	if m < 0 {
		return
	}
	if cap(g.arcs)-len(g.arcs) < m {
		grown := make([]arc, len(g.arcs), len(g.arcs)+m)
		copy(grown, g.arcs)
		g.arcs = grown
	}
}

// ClearArcs drops every arc and resets every node's list head to
// InvalidArc. Individual arcs can never be removed; this is the only way
// to shrink the arc set.
//
// Complexity: O(RedNum + BlueNum).
func (g *Digraph) ClearArcs() {
	g.arcs = g.arcs[:0]
	for i := range g.redHead {
		g.redHead[i] = InvalidArc
	}
	for i := range g.blueHead {
		g.blueHead[i] = InvalidArc
	}
}
