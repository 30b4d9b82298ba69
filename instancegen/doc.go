// Package instancegen builds seeded synthetic supply/grid instances for
// tests and synthetic benchmarks: a signed supply vector whose first nx
// entries sum to a fixed total and whose last ny entries sum to its
// negation, spread pseudo-randomly across a caller-chosen fraction of the
// nodes on each side.
package instancegen
