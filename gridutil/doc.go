// Package gridutil provides pure arithmetic over integer positions on a
// row-major Cartesian grid of arbitrary fixed dimension: stride computation,
// position/index conversion, box iteration, coarsening, and the
// squared-Euclidean ground metric used throughout gridot.
//
// Every function here is allocation-light and side-effect free except where
// documented (AdvancePos mutates the position in place so a caller-owned
// slice can travel through a whole box iteration without reallocating).
package gridutil
