package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skylinehq/skyline/pkg/cache"
	"github.com/skylinehq/skyline/pkg/city"
	"github.com/skylinehq/skyline/pkg/layout"
	"github.com/skylinehq/skyline/pkg/observability"
	"github.com/skylinehq/skyline/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ComputeLayoutWithCacheInfo solves a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tree: %w", err)
	}

	result := &Result{
		Stats: Stats{NodeCount: root.Count()},
	}

	// Compute cache key from tree content
	treeData, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("serialize tree for cache key: %w", err)
	}
	result.TreeHash = cache.Hash(treeData)
	cacheKey := r.Keyer.LayoutKey(result.TreeHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Layout = cached
				result.Stats.BlockCount = len(cached.Blocks)
				result.CacheInfo.LayoutHit = true
				r.Logger.Info("layout cache hit",
					"blocks", len(cached.Blocks),
					"seed", cached.Seed)
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Solve
	solveStart := time.Now()
	observability.Solver().OnSolveStart(ctx, result.Stats.NodeCount, opts.Iterations)

	cityOpts := []city.Option{
		city.WithIterations(opts.Iterations),
		city.WithSeed(opts.Seed),
	}
	if opts.Progress != nil {
		cityOpts = append(cityOpts, city.WithProgress(opts.Progress))
	}
	solved := city.Build(root, cityOpts...)

	result.Stats.SolveTime = time.Since(solveStart)
	observability.Solver().OnFlatten(ctx, solved.NodeCount, solved.Truncated)
	observability.Solver().OnSolveComplete(ctx, solved.NodeCount, result.Stats.SolveTime)

	result.Layout = solved
	result.Stats.BlockCount = len(solved.Blocks)

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"blocks", result.Stats.BlockCount,
		"truncated", solved.Truncated,
		"iterations", opts.Iterations,
		"duration", result.Stats.SolveTime)

	// Cache the result
	if data, err := layout.MarshalLayout(solved); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return result, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo.
func (r *Runner) ComputeLayout(ctx context.Context, root *tree.Node, opts Options) (*Result, error) {
	return r.ComputeLayoutWithCacheInfo(ctx, root, opts)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
