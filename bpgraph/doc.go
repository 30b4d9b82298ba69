// Package bpgraph implements an append-only bipartite digraph: a red
// (source) partition and a blue (target) partition, with arcs running only
// red -> blue. Nodes and arcs are dense integer IDs; out-lists (per red) and
// in-lists (per blue) are singly linked lists threaded through the arc
// slice itself via next_out/next_in indices — the arena-plus-index pattern,
// no pointers, no GC pressure proportional to arc count beyond the slice
// growth itself.
//
// Arcs are never removed individually. The whole arc list can be dropped as
// a unit via ClearArcs, which also resets every node's list head — this is
// the only way gridgraph ever shrinks a Digraph's arc set.
package bpgraph
