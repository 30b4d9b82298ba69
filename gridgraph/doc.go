// Package gridgraph specializes bpgraph.Digraph to two Cartesian grids: a
// red (source) grid X and a blue (target) grid Y. It owns per-red supply,
// per-arc squared-Euclidean cost, and the shield — a per-red axis-aligned
// rectangle of target-grid coordinates that is provably sufficient to
// contain the support of an optimal transport plan, given the current
// flow support (Schmitzer, 2016).
//
// A GridGraph is mutated only by arc additions, ClearArcs, and the shield
// operations (ResetShield, RebuildShield, UpdateShield); supplies and
// positions are immutable once constructed.
package gridgraph
