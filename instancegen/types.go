package instancegen

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/gridot/gridutil"
)

// Sentinel errors for instancegen operations.
var (
	// ErrEmptyDim indicates an x_dim or y_dim with zero axes.
	ErrEmptyDim = gridutil.ErrEmptyDim
	// ErrInvalidDensity indicates a density outside (0, 1].
	ErrInvalidDensity = errors.New("instancegen: density must be in (0, 1]")
)

// defaultDensity is the fraction of nodes on each side that receive
// nonzero supply/demand when no WithDensity option is given.
const defaultDensity = 0.4

// scaleFactor multiplies (nx+ny) to obtain the total supply magnitude: a
// value well above max(nx, ny) so integer rounding in the stick-breaking
// split rarely starves a node to exactly zero.
const scaleFactor = 1000

// Option customizes a Random call by mutating a config before generation
// begins.
type Option func(*config)

type config struct {
	rng     *rand.Rand
	density float64
}

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed for
// reproducible runs.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("instancegen: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed creates a new *rand.Rand seeded deterministically.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithDensity overrides the fraction of nodes per side that receive
// nonzero supply/demand (default 0.4). d must lie in (0, 1].
func WithDensity(d float64) Option {
	if d <= 0 || d > 1 {
		panic(ErrInvalidDensity)
	}
	return func(c *config) { c.density = d }
}

func newConfig(opts ...Option) config {
	c := config{rng: rand.New(rand.NewSource(0)), density: defaultDensity}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Instance is a generated grid-transport problem: two grid shapes and a
// signed supply vector of length num(XDim)+num(YDim), reds first.
type Instance struct {
	XDim, YDim gridutil.Pos
	Supply     []int64
}
