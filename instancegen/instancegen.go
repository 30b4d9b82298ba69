package instancegen

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/gridot/gridutil"
)

// Random builds a signed supply vector over an X grid of shape xDim (red,
// supply) and a Y grid of shape yDim (blue, demand): a fixed total supply
// of (nx+ny)*1000 is split pseudo-randomly across a density-controlled
// fraction of the red nodes, and its exact negation is split the same way
// across the blue nodes.
//
// Complexity: O(num(xDim)+num(yDim)) plus the RNG draws needed to fill the
// random breakpoint sets (expected O(density*n)).
func Random(xDim, yDim gridutil.Pos, opts ...Option) (*Instance, error) {
	nx, err := gridutil.NumNodes(xDim)
	if err != nil {
		return nil, err
	}
	ny, err := gridutil.NumNodes(yDim)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(opts...)
	total := upscaledTotalSupply(nx, ny)

	supply := make([]int64, nx+ny)
	fillSupply(cfg.rng, total, supply[:nx], cfg.density)
	fillSupply(cfg.rng, total, supply[nx:], cfg.density)
	for i := nx; i < len(supply); i++ {
		supply[i] = -supply[i]
	}

	return &Instance{XDim: xDim.Clone(), YDim: yDim.Clone(), Supply: supply}, nil
}

// upscaledTotalSupply returns a total supply magnitude comfortably larger
// than either side's node count.
func upscaledTotalSupply(nx, ny int) int64 {
	return int64(nx+ny) * scaleFactor
}

// fillSupply spreads totalSupply across out as a stick-breaking partition:
// with npos = len(out)*density, it draws npos-1 distinct breakpoints in
// (0, totalSupply) (plus the fixed boundaries 0 and totalSupply), assigns
// the resulting npos gap
// lengths to npos distinct, randomly chosen indices of out, and leaves
// every other index at zero. The nonzero entries sum to exactly
// totalSupply.
func fillSupply(rng *rand.Rand, totalSupply int64, out []int64, density float64) {
	n := len(out)
	for i := range out {
		out[i] = 0
	}
	if n == 0 || totalSupply <= 1 {
		return
	}

	npos := int(float64(n) * density)
	if npos < 0 {
		npos = 0
	}
	if npos > n {
		npos = n
	}
	if npos == 0 {
		return
	}

	seen := map[int64]bool{0: true, totalSupply: true}
	for int64(len(seen)) <= int64(npos) {
		v := rng.Int63n(totalSupply-1) + 1
		seen[v] = true
	}

	breakpoints := make([]int64, 0, len(seen))
	for v := range seen {
		breakpoints = append(breakpoints, v)
	}
	sort.Slice(breakpoints, func(i, j int) bool { return breakpoints[i] < breakpoints[j] })

	indices := rng.Perm(n)

	var sub int64
	for i := 0; i < npos; i++ {
		bp := breakpoints[i+1]
		out[indices[i]] = bp - sub
		sub = bp
	}
}
