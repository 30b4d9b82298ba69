// Package multiscale coarsens a leaf grid graph hierarchically, solves the
// coarsest level with every arc present, and refines one level at a time by
// restricting each finer level's candidate arcs to windows around the
// coarser level's positive-flow support, down to a final shielded solve of
// the leaf graph.
package multiscale
