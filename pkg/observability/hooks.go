// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about layout solves, cache
// operations, and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolverHooks(&mySolverHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnSolveStart(ctx, nodeCount, iterations)
//	// ... run the solver ...
//	observability.Solver().OnSolveComplete(ctx, nodeCount, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from the layout solver pipeline.
type SolverHooks interface {
	// OnFlatten records the result of flattening an input tree:
	// how many nodes were admitted and whether the cap truncated the tree.
	OnFlatten(ctx context.Context, nodeCount int, truncated bool)

	// OnSolveStart records the beginning of a force simulation.
	OnSolveStart(ctx context.Context, nodeCount, iterations int)

	// OnSolveComplete records a finished force simulation.
	OnSolveComplete(ctx context.Context, nodeCount int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnFlatten(context.Context, int, bool) {}
func (NoopSolverHooks) OnSolveStart(context.Context, int, int) {}
func (NoopSolverHooks) OnSolveComplete(context.Context, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string) {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Registry
// =============================================================================

var (
	mu          sync.RWMutex
	solverHooks SolverHooks = NoopSolverHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
)

// SetSolverHooks registers solver hooks. Pass nil to restore the no-op.
func SetSolverHooks(h SolverHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopSolverHooks{}
	}
	solverHooks = h
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// SetHTTPHooks registers HTTP hooks. Pass nil to restore the no-op.
func SetHTTPHooks(h HTTPHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopHTTPHooks{}
	}
	httpHooks = h
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	mu.RLock()
	defer mu.RUnlock()
	return solverHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}
