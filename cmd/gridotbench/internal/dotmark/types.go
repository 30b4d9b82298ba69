// Package dotmark loads DOTmark-style benchmark images and drives the core
// solver across every unordered image pair within each class/resolution
// cell.
package dotmark

import (
	"errors"
	"regexp"
)

// ErrNoClasses indicates Load found no class subdirectories (or none
// contained a recognizable data<R>_1<NNNN>.csv file) under the data
// directory.
var ErrNoClasses = errors.New("dotmark: no class images found under data directory")

// filenamePattern matches "data<resolution>_1<number>.csv", e.g.
// "data512_1006.csv".
var filenamePattern = regexp.MustCompile(`^data(\d+)_1(\d+)\.csv$`)

// image is one class's single image file at one resolution.
type image struct {
	number int    // the "NNNN" component of the filename, identifying the image within its class
	path   string
}

// Dataset indexes every DOTmark image under a data directory by class name
// and resolution.
type Dataset struct {
	dataDir string

	// classImages[class][resolution] is that class's images at that
	// resolution, in directory-read order.
	classImages map[string]map[int][]image
	resolutions []int // ascending, deduplicated
}

// Result is one solved image pair.
type Result struct {
	Class      string
	Resolution int
	I, J       int
	Status     string // "OPTIMAL", "INFEASIBLE", or "UNBOUNDED"
	Optimal    bool
	Objective  int64
	Millis     float64
}
