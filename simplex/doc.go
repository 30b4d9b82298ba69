// Package simplex implements a primal network simplex for integer min-cost
// flow over a gridgraph.GridGraph, with six pivot rules including the
// shielded rule: alternate a block-search inner phase over the graph's
// currently materialized arcs with a certification phase that grows the
// graph's shield and re-enters the inner phase, terminating once the
// shield stops growing.
//
// The spanning-tree basis is rebuilt from scratch (a BFS over the current
// basic arcs) after every pivot rather than updated incrementally; this
// trades the asymptotically optimal O(1)-amortized tree-splice update for
// a simpler, directly traceable O(NodeNum + ArcNum) one.
package simplex
