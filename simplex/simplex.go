package simplex

import (
	"math"

	"github.com/katalvlaran/gridot/bpgraph"
)

// Run solves the current graph once with the given pivot rule and returns
// the outcome. Calling Run again re-initializes the solver from scratch
// against the graph's current arc set. Run(Shielded) delegates to
// RunShielded, the inner-phase/certification-phase loop.
//
// Complexity: O(pivots * (NodeNum + ArcNum)) given the full-tree-rebuild
// simplification documented in the package doc comment.
func (r *NetSimplex) Run(rule PivotRule) ProblemType {
	if rule == Shielded {
		return r.RunShielded()
	}
	r.init()
	if r.problem == Infeasible {
		return r.problem
	}
	r.pivotLoop(rule, r.n+r.graph.ArcNum())
	r.finish()
	return r.problem
}

// RunShielded runs the shielded pivot rule: a BlockSearch inner phase over
// the graph's currently materialized arcs, alternated with a certification
// phase that grows the graph's shield via gridgraph.UpdateShield and
// admits only the newly materialized arcs as fresh candidates. It
// terminates OPTIMAL once a certification phase adds nothing new.
func (r *NetSimplex) RunShielded() ProblemType {
	r.init()
	if r.problem == Infeasible {
		return r.problem
	}

	for {
		r.pivotLoop(BlockSearch, r.n+r.graph.ArcNum())
		if r.problem != Optimal {
			r.finish()
			return r.problem
		}

		support := r.Support()
		added := r.graph.UpdateShield(support)
		if len(added) == 0 {
			r.finish()
			return r.problem
		}
		r.syncNewArcs(added)
	}
}

// Reset clears all solver state so the next Run/RunShielded call rebuilds
// everything from the graph's current arc set.
func (r *NetSimplex) Reset() {
	*r = NetSimplex{graph: r.graph, supplyFn: r.supplyFn, costFn: r.costFn,
		lowerFn: r.lowerFn, upperFn: r.upperFn, supType: r.supType}
}

func (r *NetSimplex) init() {
	if r.supplyFn == nil {
		r.supplyFn = r.graph.Supply
	}
	if r.costFn == nil {
		r.costFn = r.graph.Cost
	}
	if r.lowerFn == nil {
		r.lowerFn = func(bpgraph.ArcID) int64 { return 0 }
	}
	if r.upperFn == nil {
		r.upperFn = func(bpgraph.ArcID) int64 { return infCapacity }
	}

	r.n = r.graph.NodeNum()
	r.root = r.n

	supply := make([]int64, r.n)
	var sum int64
	for v := 0; v < r.n; v++ {
		supply[v] = r.supplyFn(bpgraph.NodeID(v))
		sum += supply[v]
	}
	switch r.supType {
	case EQ:
		if sum != 0 {
			r.problem = Infeasible
			return
		}
	case GEQ:
		if sum < 0 {
			r.problem = Infeasible
			return
		}
	case LEQ:
		if sum > 0 {
			r.problem = Infeasible
			return
		}
	}

	nArcs := r.n + r.graph.ArcNum()
	r.source = make([]int, nArcs)
	r.target = make([]int, nArcs)
	r.cost = make([]int64, nArcs)
	r.lower = make([]int64, nArcs)
	r.upper = make([]int64, nArcs)
	r.flow = make([]int64, nArcs)
	r.state = make([]arcState, nArcs)

	// Artificial arcs: supply nodes drain into the root, demand nodes draw
	// from it. The side whose slack the supply type forbids is priced at
	// bigM; the side whose slack it permits is free (under EQ the balance
	// ties both sides together, so pricing only the demand side suffices).
	supplySideCost, demandSideCost := int64(0), bigM
	if r.supType == LEQ {
		supplySideCost, demandSideCost = bigM, 0
	}
	for v := 0; v < r.n; v++ {
		if supply[v] >= 0 {
			r.source[v], r.target[v] = v, r.root
			r.flow[v] = supply[v]
			r.cost[v] = supplySideCost
		} else {
			r.source[v], r.target[v] = r.root, v
			r.flow[v] = -supply[v]
			r.cost[v] = demandSideCost
		}
		r.lower[v] = 0
		r.upper[v] = infCapacity
		r.state[v] = basic
	}

	for a := 0; a < r.graph.ArcNum(); a++ {
		idx := r.n + a
		id := bpgraph.ArcID(a)
		r.source[idx] = int(r.graph.Source(id))
		r.target[idx] = int(r.graph.Target(id))
		r.cost[idx] = r.costFn(id)
		r.lower[idx] = r.lowerFn(id)
		r.upper[idx] = r.upperFn(id)
		r.flow[idx] = r.lower[idx]
		r.state[idx] = atLower
	}

	r.parent = make([]int, r.n+1)
	r.parentArc = make([]int, r.n+1)
	r.parentDir = make([]int8, r.n+1)
	r.depth = make([]int, r.n+1)
	r.potential = make([]int64, r.n+1)
	for v := 0; v < r.n; v++ {
		r.parent[v] = r.root
		r.parentArc[v] = v
		if r.source[v] == r.root {
			r.parentDir[v] = 1
		} else {
			r.parentDir[v] = -1
		}
	}
	r.parent[r.root] = -1
	r.rebuildPotentials()

	r.scanCursor = 0
	r.candidates = nil
	r.altForward = true
	r.problem = Optimal
}

// syncNewArcs extends the working-arc arrays for arcs gridgraph just
// materialized (always appended at the tail of the graph's own arc
// slice), leaving them non-basic at their lower bound.
func (r *NetSimplex) syncNewArcs(added []bpgraph.ArcID) {
	for _, id := range added {
		idx := r.n + int(id)
		for idx >= len(r.source) {
			r.source = append(r.source, 0)
			r.target = append(r.target, 0)
			r.cost = append(r.cost, 0)
			r.lower = append(r.lower, 0)
			r.upper = append(r.upper, 0)
			r.flow = append(r.flow, 0)
			r.state = append(r.state, atLower)
		}
		r.source[idx] = int(r.graph.Source(id))
		r.target[idx] = int(r.graph.Target(id))
		r.cost[idx] = r.costFn(id)
		r.lower[idx] = r.lowerFn(id)
		r.upper[idx] = r.upperFn(id)
		r.flow[idx] = r.lower[idx]
		r.state[idx] = atLower
	}
}

// reducedCost returns cost(a) - potential(source) + potential(target).
func (r *NetSimplex) reducedCost(a int) int64 {
	return r.cost[a] - r.potential[r.source[a]] + r.potential[r.target[a]]
}

// eligible reports whether working arc a currently has a reduced cost that
// would improve the objective if it entered the basis, and the sign of
// that improvement (+1 enter as-is, -1 enter reversed i.e. decrease from
// upper bound).
func (r *NetSimplex) eligible(a int) (sign int64, ok bool) {
	switch r.state[a] {
	case atLower:
		if rc := r.reducedCost(a); rc < 0 {
			return 1, true
		}
	case atUpper:
		if rc := r.reducedCost(a); rc > 0 {
			return -1, true
		}
	}
	return 0, false
}

func (r *NetSimplex) blockSize() int {
	n := r.graph.ArcNum()
	if n < 1 {
		n = 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// enteringArc returns the chosen working-arc index and its sign (+1 means
// increase flow from lower bound, -1 means decrease flow from upper
// bound), or ok=false if no improving arc exists among the first total
// working arcs.
func (r *NetSimplex) enteringArc(rule PivotRule, total int) (idx int, sign int64, ok bool) {
	switch rule {
	case FirstEligible:
		for i := 0; i < total; i++ {
			a := (r.scanCursor + i) % total
			if s, e := r.eligible(a); e {
				r.scanCursor = (a + 1) % total
				return a, s, true
			}
		}
		return 0, 0, false

	case BestEligible:
		best, bestA, bestS := int64(0), -1, int64(0)
		for a := 0; a < total; a++ {
			s, e := r.eligible(a)
			if !e {
				continue
			}
			rc := r.reducedCost(a) * s
			if bestA == -1 || rc < best {
				best, bestA, bestS = rc, a, s
			}
		}
		if bestA == -1 {
			return 0, 0, false
		}
		return bestA, bestS, true

	case BlockSearch:
		block := r.blockSize()
		for scanned := 0; scanned < total; scanned += block {
			bestA, bestS, best := -1, int64(0), int64(0)
			for i := 0; i < block && scanned+i < total; i++ {
				a := (r.scanCursor + scanned + i) % total
				s, e := r.eligible(a)
				if !e {
					continue
				}
				rc := r.reducedCost(a) * s
				if bestA == -1 || rc < best {
					bestA, bestS, best = a, s, rc
				}
			}
			if bestA != -1 {
				r.scanCursor = (bestA + 1) % total
				return bestA, bestS, true
			}
		}
		return 0, 0, false

	case CandidateList, AlteringList:
		for {
			for len(r.candidates) > 0 {
				a := r.candidates[0]
				r.candidates = r.candidates[1:]
				if a >= total {
					continue
				}
				if s, e := r.eligible(a); e {
					return a, s, true
				}
			}
			block := r.blockSize()
			type cand struct {
				a  int
				rc int64
			}
			var pool []cand
			scan := func(a int) {
				if s, e := r.eligible(a); e {
					pool = append(pool, cand{a, r.reducedCost(a) * s})
				}
			}
			if rule == AlteringList && !r.altForward {
				for a := total - 1; a >= 0; a-- {
					scan(a)
				}
			} else {
				for a := 0; a < total; a++ {
					scan(a)
				}
			}
			if rule == AlteringList {
				r.altForward = !r.altForward
			}
			if len(pool) == 0 {
				return 0, 0, false
			}
			for i := 1; i < len(pool); i++ {
				for j := i; j > 0 && pool[j].rc < pool[j-1].rc; j-- {
					pool[j], pool[j-1] = pool[j-1], pool[j]
				}
			}
			if len(pool) > block {
				pool = pool[:block]
			}
			r.candidates = r.candidates[:0]
			for _, c := range pool {
				r.candidates = append(r.candidates, c.a)
			}
		}

	default:
		return 0, 0, false
	}
}

// pivotLoop runs entering/leaving-arc pivots with rule until no improving
// arc exists among the first total working arcs, or the problem is found
// unbounded.
func (r *NetSimplex) pivotLoop(rule PivotRule, total int) {
	for {
		a, sign, ok := r.enteringArc(rule, total)
		if !ok {
			return
		}
		if !r.pivot(a, sign) {
			r.problem = Unbounded
			return
		}
	}
}

// pivot performs one simplex iteration entering working arc a with the
// given sign (+1 from lower, -1 from upper). Returns false if the pivot is
// unbounded.
func (r *NetSimplex) pivot(a int, sign int64) bool {
	u, v := r.source[a], r.target[a]
	if sign < 0 {
		u, v = v, u // treat as if entering forward from u=target to v=source
	}

	uPath := r.pathToRoot(u)
	vPath := r.pathToRoot(v)
	join := r.findJoin(uPath, vPath)

	type cycleArc struct {
		idx     int
		forward bool
	}
	var cycle []cycleArc
	for _, n := range vPath {
		if n == join {
			break
		}
		cycle = append(cycle, cycleArc{r.parentArc[n], r.parentDir[n] == -1})
	}
	for _, n := range uPath {
		if n == join {
			break
		}
		cycle = append(cycle, cycleArc{r.parentArc[n], r.parentDir[n] == 1})
	}

	var delta int64
	if sign > 0 {
		delta = r.upper[a] - r.flow[a]
	} else {
		delta = r.flow[a] - r.lower[a]
	}
	leaving := a
	leavingToUpper := false
	boundedByEntering := true
	for _, c := range cycle {
		var residual int64
		if c.forward {
			residual = r.upper[c.idx] - r.flow[c.idx]
		} else {
			residual = r.flow[c.idx] - r.lower[c.idx]
		}
		if residual <= delta {
			delta = residual
			leaving = c.idx
			leavingToUpper = c.forward
			boundedByEntering = false
		}
	}
	if boundedByEntering && delta >= infCapacity {
		return false
	}

	if delta > 0 {
		if sign > 0 {
			r.flow[a] += delta
		} else {
			r.flow[a] -= delta
		}
		for _, c := range cycle {
			if c.forward {
				r.flow[c.idx] += delta
			} else {
				r.flow[c.idx] -= delta
			}
		}
	}

	r.state[a] = basic
	if leaving == a {
		if sign > 0 {
			r.state[a] = atUpper
		} else {
			r.state[a] = atLower
		}
	} else if leavingToUpper {
		r.state[leaving] = atUpper
	} else {
		r.state[leaving] = atLower
	}

	r.rebuildPotentials()
	return true
}

func (r *NetSimplex) pathToRoot(n int) []int {
	path := []int{n}
	for n != r.root {
		n = r.parent[n]
		path = append(path, n)
	}
	return path
}

func (r *NetSimplex) findJoin(uPath, vPath []int) int {
	seen := make(map[int]bool, len(uPath))
	for _, n := range uPath {
		seen[n] = true
	}
	for _, n := range vPath {
		if seen[n] {
			return n
		}
	}
	return r.root
}

// rebuildPotentials rebuilds the spanning tree (parent/parentArc/parentDir
// /depth) from the current set of basic working arcs via a BFS from root,
// and derives node potentials in the same pass.
func (r *NetSimplex) rebuildPotentials() {
	type edge struct{ to, arc int }
	adj := make([][]edge, r.n+1)
	total := len(r.state)
	for a := 0; a < total; a++ {
		if r.state[a] != basic {
			continue
		}
		s, t := r.source[a], r.target[a]
		adj[s] = append(adj[s], edge{t, a})
		adj[t] = append(adj[t], edge{s, a})
	}

	visited := make([]bool, r.n+1)
	r.parent[r.root] = -1
	r.depth[r.root] = 0
	r.potential[r.root] = 0
	visited[r.root] = true
	queue := []int{r.root}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range adj[u] {
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			r.parent[e.to] = u
			r.parentArc[e.to] = e.arc
			r.depth[e.to] = r.depth[u] + 1
			if r.source[e.arc] == u {
				r.parentDir[e.to] = 1
				r.potential[e.to] = r.potential[u] - r.cost[e.arc]
			} else {
				r.parentDir[e.to] = -1
				r.potential[e.to] = r.potential[u] + r.cost[e.arc]
			}
			queue = append(queue, e.to)
		}
	}
}

func (r *NetSimplex) finish() {
	if r.problem != Optimal {
		return
	}
	// Positive flow left on a bigM-priced artificial arc means some supply
	// (or demand, depending on the supply type) could not be routed; flow on
	// a zero-cost artificial arc is the slack GEQ/LEQ permit.
	for v := 0; v < r.n; v++ {
		if r.cost[v] == bigM && r.flow[v] > 0 {
			r.problem = Infeasible
			return
		}
	}
	var total int64
	for a := 0; a < r.graph.ArcNum(); a++ {
		total += r.cost[r.n+a] * r.flow[r.n+a]
	}
	r.totalCost = total
}
