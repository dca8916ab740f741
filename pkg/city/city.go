package city

import (
	"math/rand/v2"
	"time"

	"github.com/skylinehq/skyline/pkg/layout"
	"github.com/skylinehq/skyline/pkg/tree"
)

const (
	// MaxNodes is the hard cap on bodies a single solver invocation will
	// place. Depth-first traversal stops admitting nodes once the cap is
	// reached; the remainder of the tree is silently dropped.
	MaxNodes = 400

	// DefaultIterations is the default force-simulation budget.
	// More iterations trade compute for less residual overlap.
	DefaultIterations = 50

	// DefaultSeed seeds the solver's random source when no seed or source
	// is injected, making runs reproducible by default.
	DefaultSeed = uint64(42)
)

// Option configures a [Build] or [Layout] call.
type Option func(*config)

type config struct {
	iterations int
	seed       uint64
	rng        *rand.Rand
	progress   func(done, total int)
}

// WithIterations sets the number of simulation iterations.
// Zero is valid and leaves every body at its initial placement.
// Negative values are treated as zero.
func WithIterations(n int) Option {
	return func(c *config) {
		c.iterations = max(0, n)
	}
}

// WithSeed seeds the solver's random source, which drives initial jitter
// placement and the repulsion tie-break for coincident bodies.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
}

// WithRand injects a caller-owned random source, overriding any seed.
// The resulting [layout.Layout] reports Seed as 0 since the source's
// state is not observable.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.seed = 0
		c.rng = r
	}
}

// WithProgress registers a callback invoked after each simulation
// iteration with the number of completed and total iterations.
// The callback runs on the calling goroutine.
func WithProgress(fn func(done, total int)) Option {
	return func(c *config) {
		c.progress = fn
	}
}

func newConfig(opts []Option) config {
	cfg := config{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.seed = DefaultSeed
		cfg.rng = rand.New(rand.NewPCG(DefaultSeed, DefaultSeed^0xdeadbeef))
	}
	return cfg
}

// Layout solves the placement of root's tree and returns the final blocks.
// A nil or empty tree yields an empty slice. See [Build] for run metadata.
func Layout(root *tree.Node, opts ...Option) []layout.Block {
	return Build(root, opts...).Blocks
}

// Build solves the placement of root's tree and returns the full layout,
// including the seed, iteration count, and whether the node cap truncated
// the input. Build never fails for well-formed trees; see [tree.Node.Validate]
// for the eager checks applied at serialization boundaries.
func Build(root *tree.Node, opts ...Option) layout.Layout {
	cfg := newConfig(opts)

	bodies := flatten(root, MaxNodes, cfg.rng)
	simulate(bodies, cfg.iterations, cfg.rng, cfg.progress)

	return layout.Layout{
		Blocks:     export(bodies, cfg.rng, time.Now()),
		Seed:       cfg.seed,
		Iterations: cfg.iterations,
		NodeCount:  len(bodies),
		Truncated:  root.Count() > len(bodies),
	}
}
