// Package pipeline provides the core layout pipeline for Skyline.
//
// This package implements the import → solve → export pipeline that can be
// used by CLI, API, and worker components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Solve: Run the force-directed solver over the input tree
//  2. Store: Optionally persist the finished layout for later retrieval
//
// Solving dominates the cost, so the Runner caches finished layouts keyed
// by a content hash of the input tree plus the solve options.
//
// # Usage
//
// Create a Runner and solve a layout:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Iterations: 100,
//	    Seed:       7,
//	}
//	result, err := runner.ComputeLayout(ctx, root, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blocks := result.Layout.Blocks
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skylinehq/skyline/pkg/cache"
	"github.com/skylinehq/skyline/pkg/city"
	"github.com/skylinehq/skyline/pkg/errors"
	"github.com/skylinehq/skyline/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultIterations is the default number of simulation iterations.
	// This matches city.DefaultIterations to maintain consistency.
	DefaultIterations = city.DefaultIterations

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = city.DefaultSeed
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Solve options
	Iterations int    `json:"iterations,omitempty"`
	Seed       uint64 `json:"seed,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger           `json:"-"`
	Progress func(done, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the solved city layout.
	Layout layout.Layout

	// TreeHash is the content hash of the input tree.
	TreeHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the layout came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	BlockCount int
	SolveTime  time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the solve options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once. A zero Iterations means "use the default"; callers
// that want a zero-iteration solve (initial placement only) should use the
// city package directly.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateIterations(o.Iterations); err != nil {
		return err
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for the solve.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Iterations: o.Iterations,
		Seed:       o.Seed,
	}
}
